package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

// ValidationFailure is called when a request does not match the API
// description.
type ValidationFailure func(w http.ResponseWriter, r *http.Request, err error)

// Validator checks incoming requests against the registered API description.
// Authentication is left to the auth middleware.
type Validator struct {
	doc    *openapi3.T
	router routers.Router
	onFail ValidationFailure
}

// LoadOpenAPI3 converts the registered Swagger 2.0 description to OpenAPI 3.
func LoadOpenAPI3() (*openapi3.T, error) {
	raw, err := Doc()
	if err != nil {
		return nil, fmt.Errorf("read api description: %w", err)
	}

	var doc2 openapi2.T
	if err := json.Unmarshal([]byte(raw), &doc2); err != nil {
		return nil, fmt.Errorf("parse api description: %w", err)
	}

	doc3, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("convert api description: %w", err)
	}
	return doc3, nil
}

func NewValidator(onFail ValidationFailure) (*Validator, error) {
	doc, err := LoadOpenAPI3()
	if err != nil {
		return nil, err
	}

	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	return &Validator{doc: doc, router: router, onFail: onFail}, nil
}

// Validate reports why r does not match its documented operation. Requests
// for undocumented routes pass.
func (v *Validator) Validate(r *http.Request) error {
	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		var routeErr *routers.RouteError
		if errors.As(err, &routeErr) {
			return nil
		}
		return err
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	return openapi3filter.ValidateRequest(r.Context(), input)
}

func (v *Validator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := v.Validate(r); err != nil {
			v.onFail(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
