package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// exportPageSize is how many rows an export reads per query.
const exportPageSize = 500

// csvHeader is the first row of a CSV export.
var csvHeader = []string{
	"Recipient Email", "Recipient Name", "Subject", "Attachment Count",
	"Status", "Error Message", "Sent At", "Created At",
}

// =============================================================================
// Interface Definition
// =============================================================================

// HistoryService exposes an account's delivery history.
type HistoryService interface {
	// List returns a filtered page of log rows with status counts and the
	// trailing 30-day activity series.
	List(ctx context.Context, ownerID uuid.UUID, filter domain.HistoryFilter) (*domain.HistoryPage, error)

	// Get returns one log row. Returns domain.ENOTFOUND if absent.
	Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.HistoryItem, error)

	// UpdateStatus applies a manual status correction.
	// Returns domain.ECONFLICT when the row is Sent and the target is not.
	UpdateStatus(ctx context.Context, params domain.UpdateEmailLogParams) (*domain.HistoryItem, error)

	// Delete removes one log row. Returns domain.ENOTFOUND if absent.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// DeleteOlderThan removes rows created more than days ago and returns
	// how many were removed.
	DeleteOlderThan(ctx context.Context, ownerID uuid.UUID, days int) (int64, error)

	// Retry re-attempts a Failed row in place, without attachments.
	Retry(ctx context.Context, ownerID, id uuid.UUID) (*domain.HistoryItem, error)

	// Export returns every row matching filter, ignoring paging.
	Export(ctx context.Context, ownerID uuid.UUID, filter domain.HistoryFilter, format domain.ExportFormat) (*domain.HistoryExport, error)
}

// =============================================================================
// Implementation
// =============================================================================

type historyService struct {
	queries    repository.Querier
	dispatcher Dispatcher
	now        func() time.Time
	logger     *slog.Logger
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(queries repository.Querier, dispatcher Dispatcher, logger *slog.Logger) HistoryService {
	return &historyService{
		queries:    queries,
		dispatcher: dispatcher,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *historyService) List(ctx context.Context, ownerID uuid.UUID, filter domain.HistoryFilter) (*domain.HistoryPage, error) {
	const op = "HistoryService.List"

	filter.Normalize()
	where := newLogFilter(ownerID, filter)

	rows, err := s.queries.ListEmailLogs(ctx, repository.ListEmailLogsParams{
		UserID:         where.UserID,
		Status:         where.Status,
		RecipientEmail: where.RecipientEmail,
		StartDate:      where.StartDate,
		EndBefore:      where.EndBefore,
		Search:         where.Search,
		RowLimit:       int32(filter.Limit),
		RowOffset:      int32(filter.Offset()),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to fetch email history")
	}

	total, err := s.queries.CountEmailLogs(ctx, where)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to count email history")
	}

	stats, err := s.stats(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to fetch email statistics")
	}

	activity, err := s.activity(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to fetch recent activity")
	}

	items := make([]domain.HistoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, domain.NewHistoryItem(repoEmailLogToDomain(r)))
	}

	return &domain.HistoryPage{
		Items:          items,
		Pagination:     domain.NewPagination(filter.Page, filter.Limit, int(total)),
		Statistics:     stats,
		RecentActivity: activity,
	}, nil
}

func (s *historyService) stats(ctx context.Context, ownerID uuid.UUID) (domain.HistoryStats, error) {
	rows, err := s.queries.CountEmailLogsByStatus(ctx, ownerID)
	if err != nil {
		return domain.HistoryStats{}, err
	}

	var stats domain.HistoryStats
	for _, r := range rows {
		n := int(r.Count)
		stats.Total += n
		switch domain.EmailLogStatus(r.Status) {
		case domain.EmailLogStatusSent:
			stats.Sent = n
		case domain.EmailLogStatusFailed:
			stats.Failed = n
		case domain.EmailLogStatusPending:
			stats.Pending = n
		}
	}
	return stats, nil
}

func (s *historyService) activity(ctx context.Context, ownerID uuid.UUID) ([]domain.DailyActivity, error) {
	since := s.now().AddDate(0, 0, -domain.ActivityWindowDays)
	rows, err := s.queries.ListEmailLogDailyActivity(ctx, repository.ListEmailLogDailyActivityParams{
		UserID:    ownerID,
		CreatedAt: since,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.DailyActivity, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.DailyActivity{
			Date:  r.Day.Format(time.DateOnly),
			Count: int(r.Count),
		})
	}
	return out, nil
}

func (s *historyService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.HistoryItem, error) {
	const op = "HistoryService.Get"

	log, err := s.get(ctx, op, ownerID, id)
	if err != nil {
		return nil, err
	}
	item := domain.NewHistoryItem(log)
	return &item, nil
}

func (s *historyService) get(ctx context.Context, op string, ownerID, id uuid.UUID) (domain.EmailLog, error) {
	row, err := s.queries.GetEmailLog(ctx, repository.GetEmailLogParams{ID: id, UserID: ownerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EmailLog{}, domain.NotFound(op, "Email record")
		}
		return domain.EmailLog{}, domain.Internal(err, op, "Failed to fetch email record")
	}
	return repoEmailLogToDomain(row), nil
}

func (s *historyService) UpdateStatus(ctx context.Context, params domain.UpdateEmailLogParams) (*domain.HistoryItem, error) {
	const op = "HistoryService.UpdateStatus"

	target := params.Status
	if target == "" {
		target = domain.EmailLogStatusPending
	}
	if !target.IsValid() {
		return nil, domain.Invalid(op, "Status must be one of Sent, Failed or Pending")
	}

	current, err := s.get(ctx, op, params.UserID, params.ID)
	if err != nil {
		return nil, err
	}
	if err := current.TransitionTo(target); err != nil {
		return nil, domain.Wrap(err, domain.ECONFLICT, op, "A sent email record cannot change status")
	}

	var sentAt sql.NullTime
	if target == domain.EmailLogStatusSent {
		sentAt = sql.NullTime{Time: s.now(), Valid: true}
	}

	row, err := s.queries.UpdateEmailLogStatus(ctx, repository.UpdateEmailLogStatusParams{
		Status:       string(target),
		ErrorMessage: domain.ToNullString(params.ErrorMessage),
		SentAt:       sentAt,
		ID:           params.ID,
		UserID:       params.UserID,
	})
	if err != nil {
		// The guarded UPDATE matches nothing when the row turned Sent in between.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Conflict(op, "A sent email record cannot change status")
		}
		return nil, domain.Internal(err, op, "Failed to update email record")
	}

	s.logger.Info("email record status updated",
		"log_id", params.ID,
		"from", current.Status,
		"to", target,
	)
	item := domain.NewHistoryItem(repoEmailLogToDomain(row))
	return &item, nil
}

func (s *historyService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const op = "HistoryService.Delete"

	n, err := s.queries.DeleteEmailLog(ctx, repository.DeleteEmailLogParams{ID: id, UserID: ownerID})
	if err != nil {
		return domain.Internal(err, op, "Failed to delete email record")
	}
	if n == 0 {
		return domain.NotFound(op, "Email record")
	}
	return nil
}

func (s *historyService) DeleteOlderThan(ctx context.Context, ownerID uuid.UUID, days int) (int64, error) {
	const op = "HistoryService.DeleteOlderThan"

	if days < 1 {
		return 0, domain.Invalid(op, "olderThan must be at least 1 day")
	}

	n, err := s.queries.DeleteEmailLogsOlderThan(ctx, repository.DeleteEmailLogsOlderThanParams{
		UserID:    ownerID,
		CreatedAt: s.now().AddDate(0, 0, -days),
	})
	if err != nil {
		return 0, domain.Internal(err, op, "Failed to delete email records")
	}

	s.logger.Info("email records purged", "user_id", ownerID, "older_than_days", days, "deleted", n)
	return n, nil
}

func (s *historyService) Retry(ctx context.Context, ownerID, id uuid.UUID) (*domain.HistoryItem, error) {
	const op = "HistoryService.Retry"

	log, err := s.get(ctx, op, ownerID, id)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, domain.Errorf(domain.ENOTFOUND, op, "Failed email record not found")
		}
		return nil, err
	}
	if !log.IsRetryable() {
		return nil, domain.Errorf(domain.ENOTFOUND, op, "Failed email record not found")
	}

	updated, err := s.dispatcher.Resend(ctx, log)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, domain.Internal(&domain.DeliveryError{Err: err}, op, "Failed to resend email")
	}

	item := domain.NewHistoryItem(updated)
	return &item, nil
}

func (s *historyService) Export(ctx context.Context, ownerID uuid.UUID, filter domain.HistoryFilter, format domain.ExportFormat) (*domain.HistoryExport, error) {
	const op = "HistoryService.Export"

	if format == "" {
		format = domain.ExportJSON
	}
	if format != domain.ExportJSON && format != domain.ExportCSV {
		return nil, domain.Invalid(op, "Format must be json or csv")
	}

	where := newLogFilter(ownerID, filter)
	records := []domain.ExportRecord{}
	for offset := 0; ; offset += exportPageSize {
		rows, err := s.queries.ListEmailLogs(ctx, repository.ListEmailLogsParams{
			UserID:         where.UserID,
			Status:         where.Status,
			RecipientEmail: where.RecipientEmail,
			StartDate:      where.StartDate,
			EndBefore:      where.EndBefore,
			Search:         where.Search,
			RowLimit:       exportPageSize,
			RowOffset:      int32(offset),
		})
		if err != nil {
			return nil, domain.Internal(err, op, "Failed to export email history")
		}
		for _, r := range rows {
			l := repoEmailLogToDomain(r)
			records = append(records, domain.ExportRecord{
				RecipientEmail:  l.RecipientEmail,
				RecipientName:   l.RecipientName,
				Subject:         l.Subject,
				AttachmentCount: l.AttachmentCount,
				Status:          l.Status,
				ErrorMessage:    l.ErrorMessage,
				SentAt:          l.SentAt,
				CreatedAt:       l.CreatedAt,
			})
		}
		if len(rows) < exportPageSize {
			break
		}
	}

	now := s.now()
	export := &domain.HistoryExport{
		Format:     format,
		Records:    records,
		ExportedAt: now,
	}
	if format == domain.ExportCSV {
		export.Filename = "email-history-" + now.UTC().Format(time.DateOnly) + ".csv"
		export.CSV = encodeCSV(records)
	}
	return export, nil
}

// =============================================================================
// Helpers
// =============================================================================

// newLogFilter translates a history filter into query parameters. The end
// date covers its whole day.
func newLogFilter(ownerID uuid.UUID, f domain.HistoryFilter) repository.CountEmailLogsParams {
	p := repository.CountEmailLogsParams{
		UserID:         ownerID,
		RecipientEmail: domain.ToNullString(strings.TrimSpace(f.RecipientEmail)),
		Search:         domain.ToNullString(strings.TrimSpace(f.Search)),
	}
	if status := NormalizeStatus(string(f.Status)); status != "" {
		p.Status = sql.NullString{String: string(status), Valid: true}
	}
	if f.StartDate != nil {
		p.StartDate = sql.NullTime{Time: *f.StartDate, Valid: true}
	}
	if f.EndDate != nil {
		end := f.EndDate.Truncate(24 * time.Hour).AddDate(0, 0, 1)
		p.EndBefore = sql.NullTime{Time: end, Valid: true}
	}
	return p
}

// NormalizeStatus maps a user-supplied status ("sent", "FAILED") to its
// canonical form, or "" when it names no known status.
func NormalizeStatus(s string) domain.EmailLogStatus {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	status := domain.EmailLogStatus(cases.Title(language.English).String(strings.ToLower(s)))
	if !status.IsValid() {
		return ""
	}
	return status
}

// encodeCSV renders records with every field quoted. encoding/csv only
// quotes fields that need it, so quoting is done here.
func encodeCSV(records []domain.ExportRecord) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(csvHeader, ","))
	for _, r := range records {
		sentAt := ""
		if r.SentAt != nil {
			sentAt = isoTime(*r.SentAt)
		}
		fields := []string{
			r.RecipientEmail,
			r.RecipientName,
			r.Subject,
			strconv.Itoa(r.AttachmentCount),
			string(r.Status),
			r.ErrorMessage,
			sentAt,
			isoTime(r.CreatedAt),
		}
		buf.WriteByte('\n')
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
			buf.WriteByte('"')
		}
	}
	return buf.Bytes()
}

func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
