// Package api holds the HTTP API description of the checkout service and the
// request validation derived from it.
package api

import (
	"net/http"

	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/v1/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "List the buyer's orders",
                "operationId": "listOrders",
                "parameters": [
                    {"type": "string", "enum": ["pending", "processing", "completed", "failed", "refunded"], "name": "status", "in": "query"},
                    {"type": "integer", "format": "int64", "minimum": 1, "name": "course_id", "in": "query"},
                    {"type": "integer", "minimum": 1, "maximum": 500, "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/OrderListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Create an order and open it at the payment gateway",
                "operationId": "createOrder",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreateOrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/orders/capture": {
            "post": {
                "security": [{"BearerAuth": []}],
                "summary": "Capture an approved order and grant its entitlements",
                "operationId": "captureOrder",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CaptureOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CaptureOrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/orders/{orderId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "Get one of the buyer's orders",
                "operationId": "getOrder",
                "parameters": [
                    {"type": "integer", "format": "int64", "minimum": 1, "name": "orderId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/OrderResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/webhooks/{gateway}": {
            "post": {
                "summary": "Receive a payment gateway notification",
                "operationId": "receiveWebhook",
                "parameters": [
                    {"type": "string", "name": "gateway", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Acknowledged", "schema": {"$ref": "#/definitions/AckResponse"}}
                }
            }
        }
    },
    "definitions": {
        "CreateOrderRequest": {
            "type": "object",
            "required": ["course", "gateway"],
            "properties": {
                "course": {"type": "string", "minLength": 1, "description": "course id, row id or course key"},
                "gateway": {"type": "string", "minLength": 1}
            }
        },
        "CaptureOrderRequest": {
            "type": "object",
            "required": ["external_order_id", "order_id"],
            "properties": {
                "external_order_id": {"type": "string", "minLength": 1},
                "order_id": {"type": "integer", "format": "int64", "minimum": 1}
            }
        },
        "CreateOrderData": {
            "type": "object",
            "properties": {
                "order_id": {"type": "integer", "format": "int64"},
                "external_order_id": {"type": "string"},
                "gateway": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "CreateOrderResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/CreateOrderData"}
            }
        },
        "CaptureOrderData": {
            "type": "object",
            "properties": {
                "order_id": {"type": "integer", "format": "int64"},
                "external_order_id": {"type": "string"},
                "already_completed": {"type": "boolean"}
            }
        },
        "CaptureOrderResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/CaptureOrderData"}
            }
        },
        "Order": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "format": "int64"},
                "course_id": {"type": "integer", "format": "int64"},
                "gateway": {"type": "string"},
                "external_order_id": {"type": "string"},
                "amount": {"type": "string"},
                "currency": {"type": "string"},
                "status": {"type": "string"},
                "entitlements_granted_at": {"type": "string", "format": "date-time"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "OrderResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"$ref": "#/definitions/Order"}
            }
        },
        "OrderListResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/Order"}}
            }
        },
        "AckResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Course Checkout API",
	Description:      "Creates course orders at payment gateways, captures them and grants the purchased entitlements.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Doc renders the registered API description.
func Doc() (string, error) {
	return swag.ReadDoc(SwaggerInfo.InstanceName())
}

// RegisterDocsRoutes serves the API description at /docs/openapi.json.
func RegisterDocsRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := Doc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})
}
