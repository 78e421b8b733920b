package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/hlog"
)

type contextKey string

// UserIDKey is the context key for the authenticated user id.
const UserIDKey = contextKey("userID")

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext returns the authenticated user id stored by Middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// TokenCookie is the cookie consulted by WebSocketMiddleware when the request
// carries no Authorization header.
const TokenCookie = "token"

// BearerSubprotocol is the Sec-WebSocket-Protocol entry that precedes a token,
// as in `new WebSocket(url, ["bearer", token])`.
const BearerSubprotocol = "bearer"

// CookieToken extracts the token from the TokenCookie cookie.
func CookieToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// SubprotocolToken extracts the token offered after BearerSubprotocol in the
// Sec-WebSocket-Protocol header.
func SubprotocolToken(r *http.Request) (string, bool) {
	protocols := websocket.Subprotocols(r)
	for i := 0; i+1 < len(protocols); i++ {
		if protocols[i] == BearerSubprotocol && protocols[i+1] != "" {
			return protocols[i+1], true
		}
	}
	return "", false
}

type tokenSource func(r *http.Request) (string, bool)

// Middleware rejects requests without a valid bearer token and stores the
// token's user id in the request context for downstream handlers.
func Middleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return authenticate(verifier, BearerToken)
}

// WebSocketMiddleware is Middleware for handshake requests. Browsers cannot
// set headers on a websocket handshake, so after the Authorization header it
// falls back to the token cookie and then the bearer subprotocol.
func WebSocketMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return authenticate(verifier, BearerToken, CookieToken, SubprotocolToken)
}

func authenticate(verifier TokenVerifier, sources ...tokenSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string
			for _, source := range sources {
				if tok, ok := source(r); ok {
					tokenStr = tok
					break
				}
			}
			if tokenStr == "" {
				unauthorized(w, "missing auth token")
				return
			}

			userID, err := verifier.Verify(tokenStr)
			if err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("Rejected bearer token")
				if errors.Is(err, ErrTokenExpired) {
					unauthorized(w, "auth token expired")
					return
				}
				unauthorized(w, "invalid auth token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
