package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/DanielPopoola/course-checkout/internal/interfaces/rest"
	"github.com/golang-jwt/jwt/v5"
)

const ErrCodeUnauthorized = "UNAUTHORIZED"

type buyerKey struct{}

// BuyerFromContext returns the authenticated buyer, or AnonymousBuyer.
func BuyerFromContext(ctx context.Context) domain.BuyerID {
	id, ok := ctx.Value(buyerKey{}).(domain.BuyerID)
	if !ok {
		return domain.AnonymousBuyer
	}
	return id
}

func WithBuyer(ctx context.Context, buyer domain.BuyerID) context.Context {
	return context.WithValue(ctx, buyerKey{}, buyer)
}

// Authenticator validates HS256 bearer tokens whose subject is the numeric
// user id of the buyer.
type Authenticator struct {
	secret []byte
	issuer string
	logger *slog.Logger
}

func NewAuthenticator(secret, issuer string, logger *slog.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer, logger: logger}
}

// Buyer parses a raw token into the buyer it identifies.
func (a *Authenticator) Buyer(tokenStr string) (domain.BuyerID, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return domain.AnonymousBuyer, err
	}
	if !token.Valid {
		return domain.AnonymousBuyer, errors.New("invalid token")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.AnonymousBuyer, errors.New("token subject is not a user id")
	}
	return domain.BuyerID(id), nil
}

// Require rejects requests without a valid bearer token.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			rest.WriteErrorCode(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Missing Authorization header")
			return
		}

		scheme, tokenStr, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			rest.WriteErrorCode(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid Authorization header format (expected 'Bearer <token>')")
			return
		}

		buyer, err := a.Buyer(tokenStr)
		if err != nil {
			a.logger.Debug("rejected bearer token", "error", err, "request_id", RequestIDFromContext(r.Context()))
			rest.WriteErrorCode(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithBuyer(r.Context(), buyer)))
	})
}
