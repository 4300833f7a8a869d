// Package handler contains the JSON HTTP handlers of the progress report API.
//
// This file implements report preview and delivery.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/DukeRupert/progressly/internal/auth"
	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/service"
	"github.com/google/uuid"
)

// ReportHandler handles report preview and send requests.
type ReportHandler struct {
	reports service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger,
	}
}

// reportRequestBody is the JSON body shared by preview and send.
type reportRequestBody struct {
	TraineeID          string   `json:"traineeId"`
	ProjectID          string   `json:"projectId"`
	AdminIDs           []string `json:"adminIds"`
	Subject            string   `json:"subject"`
	CustomMessage      string   `json:"customMessage"`
	IncludeAllProgress bool     `json:"includeAllProgress"`
	IncludeFiles       bool     `json:"includeFiles"`
}

// toRequest converts the body into a domain.ReportRequest. Empty ids are
// left as uuid.Nil for the service to reject; malformed ids fail here.
func (b reportRequestBody) toRequest(ownerID uuid.UUID) (domain.ReportRequest, error) {
	const op = "ReportHandler.parse"

	req := domain.ReportRequest{
		UserID:             ownerID,
		Subject:            b.Subject,
		CustomMessage:      b.CustomMessage,
		IncludeAllProgress: b.IncludeAllProgress,
		IncludeFiles:       b.IncludeFiles,
	}

	var verr error
	var ok bool
	if req.TraineeID, ok = optionalUUID(b.TraineeID); !ok {
		verr = domain.AddFieldError(verr, "traineeId", "must be a valid ID")
	}
	if req.ProjectID, ok = optionalUUID(b.ProjectID); !ok {
		verr = domain.AddFieldError(verr, "projectId", "must be a valid ID")
	}
	for _, raw := range b.AdminIDs {
		id, ok := optionalUUID(raw)
		if !ok || id == uuid.Nil {
			verr = domain.AddFieldError(verr, "adminIds", "must contain valid IDs")
			break
		}
		req.AdminIDs = append(req.AdminIDs, id)
	}

	if verr != nil {
		ve := verr.(*domain.ValidationError)
		ve.Op = op
		return req, ve
	}
	return req, nil
}

// optionalUUID parses s; an empty string yields uuid.Nil and ok.
func optionalUUID(s string) (uuid.UUID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(s)
	return id, err == nil
}

// parseReportRequest decodes and converts the body, writing the error
// response itself when it fails.
func (h *ReportHandler) parseReportRequest(w http.ResponseWriter, r *http.Request) (domain.ReportRequest, bool) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return domain.ReportRequest{}, false
	}

	var body reportRequestBody
	if err := decodeJSON(w, r, &body); err != nil {
		MessageResponse(w, http.StatusBadRequest, "Invalid request body")
		return domain.ReportRequest{}, false
	}

	req, err := body.toRequest(user.ID)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return domain.ReportRequest{}, false
	}
	return req, true
}

// Preview renders the report without sending it.
// POST /api/reports/preview
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseReportRequest(w, r)
	if !ok {
		return
	}

	preview, err := h.reports.Preview(r.Context(), req)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Email preview generated successfully", preview)
}

// Send renders the report and delivers it to every requested admin.
// Per-recipient failures are part of the 200 response.
// POST /api/reports/send
func (h *ReportHandler) Send(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseReportRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reports.Send(r.Context(), req)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeMessage(w, http.StatusOK, "Progress report sent successfully", result)
}

// RegisterRoutes registers report routes on the provided ServeMux.
func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux, requireUser func(http.Handler) http.Handler) {
	mux.Handle("POST /api/reports/preview", requireUser(http.HandlerFunc(h.Preview)))
	mux.Handle("POST /api/reports/send", requireUser(http.HandlerFunc(h.Send)))
}
