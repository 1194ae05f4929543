package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/propertyhub/propertyhub-go/internal/crypto"
	"github.com/propertyhub/propertyhub-go/internal/model"
	"github.com/propertyhub/propertyhub-go/internal/repository"
)

// Identity is the per-request authentication result. The zero value is
// anonymous; an authenticated identity carries the resolved user.
type Identity struct {
	User *model.User
}

// Authenticated reports whether the identity resolved to a user.
func (id Identity) Authenticated() bool {
	return id.User != nil
}

type identityKey struct{}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext retrieves the identity attached by Authenticate. The
// zero (anonymous) identity is returned when none is present.
func IdentityFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}

// Authenticate returns middleware that resolves a bearer token to a user.
//
// A request whose Authorization header is absent or lacks the exact
// "Bearer " prefix proceeds anonymously; protected routes reject it via
// RequireAuth. Once a bearer credential is presented, any failure is
// terminal: expired or invalid tokens and tokens whose subject no longer
// exists all stop the request with a 401. The user lookup is the sole
// revocation point for otherwise-valid tokens.
func Authenticate(users repository.UserRepository, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := crypto.ValidateToken(token, secret)
			if err != nil {
				if errors.Is(err, crypto.ErrTokenExpired) {
					writeJSONError(w, http.StatusUnauthorized, "Token expired")
					return
				}
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "User not found")
				return
			}

			ctx := WithIdentity(r.Context(), Identity{User: user})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that did not authenticate. It runs after
// Authenticate on protected routes, so anonymous passthrough requests are
// denied here rather than in the gate.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IdentityFromContext(r.Context()).Authenticated() {
			writeJSONError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSONError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
