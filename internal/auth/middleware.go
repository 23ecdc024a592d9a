package auth

import (
	"context"
	"net/http"
	"strings"

	"pointage/internal/errors"
	"pointage/models"
	"pointage/ports"
)

type principalKey struct{}

// PrincipalFrom returns the authenticated principal attached to the request,
// or false if the request was not authenticated
func PrincipalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(models.Principal)
	return p, ok
}

// ErrorWriter renders an auth failure; the api package supplies its envelope
// writer so auth stays decoupled from the response shape
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Middleware authenticates requests: it extracts the bearer token, verifies
// it, loads the user and attaches a Principal to the context. Credentials
// never reach the handlers; they only ever see the principal.
func Middleware(issuer *TokenIssuer, users ports.UserRepository, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, r, errors.New(errors.CodeNoToken, "missing Authorization header"))
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeError(w, r, errors.New(errors.CodeInvalidToken, "malformed Authorization header"))
				return
			}

			userID, err := issuer.Verify(token)
			if err != nil {
				writeError(w, r, err)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeError(w, r, errors.New(errors.CodeUserNotFound, "user not found"))
				return
			}
			if !user.IsActive {
				writeError(w, r, errors.Unauthorized("account disabled"))
				return
			}

			principal := models.Principal{
				ID:            user.ID,
				Username:      user.Username,
				Role:          user.Role,
				WorkstationID: user.WorkstationID,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, principal)))
		})
	}
}

// RequireRole rejects requests whose principal lacks one of the given roles
func RequireRole(writeError ErrorWriter, roles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				writeError(w, r, errors.Unauthorized("not authenticated"))
				return
			}
			if !allowed[principal.Role] {
				writeError(w, r, errors.Forbidden("insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
