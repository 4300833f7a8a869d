// Package handler contains the JSON HTTP handlers of the progress report API.
//
// This file implements account registration, login and the current-user
// lookup.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/DukeRupert/progressly/internal/auth"
	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/invite"
	"github.com/DukeRupert/progressly/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
//
// Routes handled:
//   - POST /api/auth/register -> Register
//   - POST /api/auth/login    -> Login
//   - GET  /api/auth/me       -> Me
type AuthHandler struct {
	userService service.UserService
	invites     *invite.Validator
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the required dependencies.
func NewAuthHandler(userService service.UserService, invites *invite.Validator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		invites:     invites,
		logger:      logger,
	}
}

type userData struct {
	User *domain.User `json:"user"`
}

type registerBody struct {
	domain.RegisterParams
	InviteCode string `json:"inviteCode"`
}

// Register creates an account. When invite codes are configured the body
// must carry one of them.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := decodeJSON(w, r, &body); err != nil {
		MessageResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.invites.Allow(body.InviteCode) {
		msg := "Invalid invite code"
		if strings.TrimSpace(body.InviteCode) == "" {
			msg = "Invite code is required"
		}
		ErrorResponse(w, r, h.logger, domain.NewValidationError("AuthHandler.Register", "inviteCode", msg))
		return
	}

	user, err := h.userService.Register(r.Context(), body.RegisterParams)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully", userData{User: user})
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := decodeJSON(w, r, &body); err != nil {
		MessageResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.userService.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Login successful", result)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}
	writeData(w, http.StatusOK, userData{User: user})
}

// RegisterRoutes registers auth routes. limitLogin and limitRegister wrap
// the unauthenticated endpoints with rate limiting.
func (h *AuthHandler) RegisterRoutes(
	mux *http.ServeMux,
	requireUser func(http.Handler) http.Handler,
	limitLogin func(http.Handler) http.Handler,
	limitRegister func(http.Handler) http.Handler,
) {
	mux.Handle("POST /api/auth/register", limitRegister(http.HandlerFunc(h.Register)))
	mux.Handle("POST /api/auth/login", limitLogin(http.HandlerFunc(h.Login)))
	mux.Handle("GET /api/auth/me", requireUser(http.HandlerFunc(h.Me)))
}
