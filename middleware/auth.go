package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pulok-thedeveloper/music-spot-server/models"
	"github.com/pulok-thedeveloper/music-spot-server/store"
	"github.com/pulok-thedeveloper/music-spot-server/utils"
	"github.com/rs/zerolog"
)

// Key type for context
type contextKey string

const (
	UserContextKey   = contextKey("user")
	CallerContextKey = contextKey("caller")
)

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

// UserFinder looks up the stored record of the caller
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware verifies the Bearer token and attaches its claims to the context.
// A missing header is 401; any verification failure is 403. Both end the request.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.RespondError(w, http.StatusForbidden, msgForbidden)
			return
		}

		claims, err := utils.ParseJWT(parts[1])
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("rejected token")
			utils.RespondError(w, http.StatusForbidden, msgForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser loads the caller from the database on every request and checks its current role.
// With no roles any registered user passes. Must run after AuthMiddleware.
func RequireUser(users UserFinder, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r)
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()
			caller, err := users.FindByEmail(ctx, claims.Email)
			if errors.Is(err, store.ErrNotFound) {
				utils.RespondError(w, http.StatusForbidden, msgForbidden)
				return
			}
			if err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Str("email", claims.Email).Msg("caller lookup failed")
				utils.RespondError(w, http.StatusInternalServerError, "Database error")
				return
			}

			if !caller.HasRole(roles...) {
				utils.RespondError(w, http.StatusForbidden, msgForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), CallerContextKey, caller)))
		})
	}
}

// ClaimsFrom returns the verified token claims of the request
func ClaimsFrom(r *http.Request) (*utils.Claims, bool) {
	claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
	return claims, ok
}

// CallerFrom returns the user record loaded by RequireUser
func CallerFrom(r *http.Request) (*models.User, bool) {
	caller, ok := r.Context().Value(CallerContextKey).(*models.User)
	return caller, ok
}
