package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-safe-keeper/internal/adapter"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
)

type ctxKey int

// requestTokenCtxKey holds the bearer token of a decrypt request.
const requestTokenCtxKey ctxKey = iota

// requestToken is an HTTP middleware that requires a bearer token and
// stores it in the request context under requestTokenCtxKey. The decrypt
// handler compares it with the token inside the session evidence; the key
// service verifies the token itself.
//
// Requests are rejected with 403 and an Unauthorized reason when:
//   - the "Authorization" header is absent ([ErrEmptyAuthorizationHeader]);
//   - the header is not a bearer token ([ErrInvalidAuthorizationHeader] or
//     [ErrEmptyToken]).
func (h *Handler) requestToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.requestToken").Send()
			writeError(w, r, fmt.Errorf("%w: %v", adapter.ErrUnauthorized, ErrEmptyAuthorizationHeader))
			return
		}

		token, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Str("func", "*Handler.requestToken").Send()
			writeError(w, r, fmt.Errorf("%w: %v", adapter.ErrUnauthorized, err))
			return
		}

		ctx := context.WithValue(r.Context(), requestTokenCtxKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from "Bearer <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
