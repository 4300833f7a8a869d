package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/progressly/internal/auth"
	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/service"
	"github.com/google/uuid"
)

// EmailConfigHandler manages the account's SMTP configuration and the
// test sends built on it.
//
// Routes handled:
//   - GET  /api/email-config                 -> Get
//   - POST /api/email-config                 -> Save
//   - POST /api/email-config/test            -> Test
//   - POST /api/email-config/test-connection -> TestConnection
//   - POST /api/admins/{id}/test-email       -> SendAdminTestEmail
type EmailConfigHandler struct {
	configs    service.EmailConfigService
	dispatcher service.Dispatcher
	logger     *slog.Logger
}

// NewEmailConfigHandler creates a new EmailConfigHandler.
func NewEmailConfigHandler(configs service.EmailConfigService, dispatcher service.Dispatcher, logger *slog.Logger) *EmailConfigHandler {
	return &EmailConfigHandler{
		configs:    configs,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// emailConfigData wraps the configuration so "none yet" encodes as null.
type emailConfigData struct {
	EmailConfiguration *domain.EmailConfigView `json:"emailConfiguration"`
}

// Get returns the configuration without its password.
func (h *EmailConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	view, err := h.configs.Get(r.Context(), user.ID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, emailConfigData{EmailConfiguration: view})
}

// Save creates or replaces the configuration.
func (h *EmailConfigHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	var params domain.SaveEmailConfigParams
	if err := decodeJSON(w, r, &params); err != nil {
		MessageResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	params.UserID = user.ID

	view, err := h.configs.Save(r.Context(), params)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.logger.Info("email configuration saved", "user_id", user.ID, "smtp_host", view.SMTPHost)
	writeMessage(w, http.StatusOK, "Email configuration saved successfully",
		emailConfigData{EmailConfiguration: view})
}

// Test sends a test message to the configured address itself.
func (h *EmailConfigHandler) Test(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	if err := h.dispatcher.TestConfiguration(r.Context(), user.ID); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Email configuration test successful", nil)
}

// TestConnection checks that the SMTP server accepts the credentials
// without sending anything.
func (h *EmailConfigHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	if err := h.dispatcher.VerifyConfiguration(r.Context(), user.ID); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "SMTP connection verified successfully", nil)
}

// SendAdminTestEmail sends a test message to one admin and records it in
// the delivery history.
func (h *EmailConfigHandler) SendAdminTestEmail(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	adminID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.NotFound("EmailConfigHandler.SendAdminTestEmail", "Admin"))
		return
	}

	outcome, err := h.dispatcher.SendAdminTestEmail(r.Context(), user.ID, adminID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if outcome.Status != domain.RecipientSent {
		writeJSON(w, http.StatusBadRequest, ErrorBody{
			Message: "Failed to send test email",
			Error:   outcome.Error,
		})
		return
	}

	writeMessage(w, http.StatusOK, "Test email sent successfully to "+outcome.AdminEmail, outcome)
}

// RegisterRoutes registers configuration routes on the provided ServeMux.
func (h *EmailConfigHandler) RegisterRoutes(mux *http.ServeMux, requireUser func(http.Handler) http.Handler) {
	mux.Handle("GET /api/email-config", requireUser(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/email-config", requireUser(http.HandlerFunc(h.Save)))
	mux.Handle("POST /api/email-config/test", requireUser(http.HandlerFunc(h.Test)))
	mux.Handle("POST /api/email-config/test-connection", requireUser(http.HandlerFunc(h.TestConnection)))
	mux.Handle("POST /api/admins/{id}/test-email", requireUser(http.HandlerFunc(h.SendAdminTestEmail)))
}
