package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskhub/taskhub-backend/internal/domain"
)

type ctxKey string

const userContextKey ctxKey = "taskhub.auth.user"

func withUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext returns the authenticated user placed there by requireAuth.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userContextKey).(*domain.User)
	return u, ok
}

// requireAuth resolves the bearer token into a user and stores it in the
// request context. Requests without a valid token get 401, the JSON
// equivalent of the login redirect.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Authentication required.")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			respondWithError(w, http.StatusUnauthorized, "Invalid authorization header format. Use: Bearer <token>")
			return
		}

		user, err := s.auth.Authenticate(r.Context(), token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// requireVerified gates task and dashboard routes to email-verified users.
// Must run after requireAuth.
func (s *Server) requireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Authentication required.")
			return
		}
		if !user.Verified() {
			respondWithError(w, http.StatusForbidden, "Your email address is not verified.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
