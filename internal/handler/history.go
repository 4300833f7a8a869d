package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DukeRupert/progressly/internal/auth"
	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/service"
	"github.com/google/uuid"
)

// HistoryHandler serves the delivery history of the authenticated account.
//
// Routes handled:
//   - GET    /api/reports/email-history         -> List
//   - DELETE /api/reports/email-history         -> Delete (?id= or ?bulk=true&olderThan=N)
//   - GET    /api/reports/email-history/{id}    -> Get
//   - PATCH  /api/reports/email-history/{id}    -> Update
//   - POST   /api/reports/email-history/retry   -> Retry
//   - GET    /api/reports/email-history/export  -> Export
type HistoryHandler struct {
	history service.HistoryService
	logger  *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history service.HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		logger:  logger,
	}
}

// List returns a filtered page of the history with statistics.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	filter, err := parseHistoryFilter(r.URL.Query())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	page, err := h.history.List(r.Context(), user.ID, filter)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, page)
}

// Get returns one history record.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.NotFound("HistoryHandler.Get", "Email record"))
		return
	}

	item, err := h.history.Get(r.Context(), user.ID, id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, item)
}

type updateHistoryBody struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage"`
}

// Update applies a manual status correction.
func (h *HistoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.NotFound("HistoryHandler.Update", "Email record"))
		return
	}

	var body updateHistoryBody
	if err := decodeJSON(w, r, &body); err != nil {
		MessageResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Unknown statuses are passed through so the service can reject them.
	status := service.NormalizeStatus(body.Status)
	if status == "" {
		status = domain.EmailLogStatus(strings.TrimSpace(body.Status))
	}

	item, err := h.history.UpdateStatus(r.Context(), domain.UpdateEmailLogParams{
		UserID:       user.ID,
		ID:           id,
		Status:       status,
		ErrorMessage: body.ErrorMessage,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Email record updated successfully", item)
}

// Delete removes one record (?id=) or every record older than N days
// (?bulk=true&olderThan=N).
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "HistoryHandler.Delete"

	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	q := r.URL.Query()
	olderThan := q.Get("olderThan")

	switch {
	case q.Get("bulk") == "true" && olderThan != "":
		days, err := strconv.Atoi(olderThan)
		if err != nil {
			ErrorResponse(w, r, h.logger, domain.Invalid(op, "olderThan must be a whole number of days"))
			return
		}
		n, err := h.history.DeleteOlderThan(r.Context(), user.ID, days)
		if err != nil {
			ErrorResponse(w, r, h.logger, err)
			return
		}
		writeMessage(w, http.StatusOK,
			fmt.Sprintf("Deleted %d email records older than %d days", n, days),
			map[string]int64{"deletedCount": n})

	case q.Get("id") != "":
		id, err := uuid.Parse(q.Get("id"))
		if err != nil {
			ErrorResponse(w, r, h.logger, domain.NotFound(op, "Email record"))
			return
		}
		if err := h.history.Delete(r.Context(), user.ID, id); err != nil {
			ErrorResponse(w, r, h.logger, err)
			return
		}
		writeMessage(w, http.StatusOK, "Email record deleted successfully", nil)

	default:
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Email ID or bulk delete parameters required"))
	}
}

type retryBody struct {
	EmailID string `json:"emailId"`
}

// Retry re-attempts a Failed record in place.
func (h *HistoryHandler) Retry(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	var body retryBody
	if err := decodeJSON(w, r, &body); err != nil {
		MessageResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(body.EmailID))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.NotFound("HistoryHandler.Retry", "Failed email record"))
		return
	}

	item, err := h.history.Retry(r.Context(), user.ID, id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Email resent successfully", item)
}

// exportBody is the JSON export envelope.
type exportBody struct {
	Success      bool                  `json:"success"`
	Data         []domain.ExportRecord `json:"data"`
	ExportedAt   time.Time             `json:"exportedAt"`
	TotalRecords int                   `json:"totalRecords"`
}

// Export downloads every record matching the filter as JSON or CSV.
func (h *HistoryHandler) Export(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromRequest(r)
	if user == nil {
		UnauthorizedResponse(w, r, h.logger, "Access token required")
		return
	}

	q := r.URL.Query()
	filter, err := parseHistoryFilter(q)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	format := domain.ExportFormat(strings.ToLower(strings.TrimSpace(q.Get("format"))))
	export, err := h.history.Export(r.Context(), user.ID, filter, format)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if export.Format == domain.ExportCSV {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(export.CSV); err != nil {
			h.logger.Error("failed to write export", "error", err, "user_id", user.ID)
		}
		return
	}

	writeJSON(w, http.StatusOK, exportBody{
		Success:      true,
		Data:         export.Records,
		ExportedAt:   export.ExportedAt,
		TotalRecords: len(export.Records),
	})
}

// parseHistoryFilter reads the listing and export query parameters.
// Unparseable paging values fall back to the defaults, as does an unknown
// status.
func parseHistoryFilter(q url.Values) (domain.HistoryFilter, error) {
	const op = "HistoryHandler.parseFilter"

	f := domain.HistoryFilter{
		Status:         domain.EmailLogStatus(q.Get("status")),
		RecipientEmail: q.Get("recipientEmail"),
		Search:         q.Get("search"),
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))

	var verr error
	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			verr = domain.AddFieldError(verr, "startDate", "must be a date (YYYY-MM-DD)")
		} else {
			f.StartDate = &t
		}
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			verr = domain.AddFieldError(verr, "endDate", "must be a date (YYYY-MM-DD)")
		} else {
			f.EndDate = &t
		}
	}
	if verr != nil {
		ve := verr.(*domain.ValidationError)
		ve.Op = op
		return f, ve
	}

	f.Normalize()
	return f, nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// RegisterRoutes registers history routes on the provided ServeMux.
func (h *HistoryHandler) RegisterRoutes(mux *http.ServeMux, requireUser func(http.Handler) http.Handler) {
	mux.Handle("GET /api/reports/email-history", requireUser(http.HandlerFunc(h.List)))
	mux.Handle("DELETE /api/reports/email-history", requireUser(http.HandlerFunc(h.Delete)))
	mux.Handle("GET /api/reports/email-history/export", requireUser(http.HandlerFunc(h.Export)))
	mux.Handle("POST /api/reports/email-history/retry", requireUser(http.HandlerFunc(h.Retry)))
	mux.Handle("GET /api/reports/email-history/{id}", requireUser(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/reports/email-history/{id}", requireUser(http.HandlerFunc(h.Update)))
}
