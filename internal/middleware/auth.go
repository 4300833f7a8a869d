// Package middleware contains HTTP middleware for the progress report API.
//
// Middleware functions follow the standard Go pattern of wrapping http.Handler.
// They are designed to be composed using a middleware stack approach.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/progressly/internal/auth"
	"github.com/DukeRupert/progressly/internal/handler"
	"github.com/DukeRupert/progressly/internal/service"
	"github.com/google/uuid"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// AuthMiddleware guards routes behind a bearer token.
//
// Create one instance and use its methods as middleware.
type AuthMiddleware struct {
	tokens      TokenParser
	userService service.UserService
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance.
func NewAuthMiddleware(tokens TokenParser, userService service.UserService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:      tokens,
		userService: userService,
		logger:      logger,
	}
}

// RequireUser rejects requests without a valid bearer token for an active
// account, and stores the account in the request context otherwise.
//
// Flow:
//
//	Request -> RequireUser -> Handler
//	           |
//	           +-> No bearer token:         401 "Access token required"
//	           +-> Bad signature / expired: 403 "Invalid or expired token"
//	           +-> Unknown or inactive:     401 "Invalid or inactive user"
//	           +-> Otherwise: auth.SetUser, call next
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r.Header.Get("Authorization"))
		if token == "" {
			handler.UnauthorizedResponse(w, r, m.logger, "Access token required")
			return
		}

		userID, err := m.tokens.Parse(token)
		if err != nil {
			handler.ForbiddenResponse(w, r, m.logger, "Invalid or expired token")
			return
		}

		user, err := m.userService.GetByID(r.Context(), userID)
		if err != nil || user == nil || !user.IsActive {
			if err != nil {
				m.logger.Debug("token subject lookup failed", "user_id", userID, "error", err)
			}
			handler.UnauthorizedResponse(w, r, m.logger, "Invalid or inactive user")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.SetUser(r.Context(), user)))
	})
}

// RequireUserFunc is RequireUser for a handler function.
func (m *AuthMiddleware) RequireUserFunc(next http.HandlerFunc) http.Handler {
	return m.RequireUser(next)
}

// Stack composes multiple middleware into a single middleware.
//
// Middleware are applied in the order provided, so the first middleware
// in the list will be the outermost (first to execute).
//
// Usage:
//
//	stack := middleware.Stack(
//	    middleware.Logger(logger),
//	    middleware.SecurityHeaders,
//	)
//	handler := stack(mux)
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// Compile-time interface check.
var _ TokenParser = (*auth.TokenIssuer)(nil)
