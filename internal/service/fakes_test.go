package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/DukeRupert/progressly/internal/email"
	"github.com/DukeRupert/progressly/internal/repository"
	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// =============================================================================
// fakeQuerier
// =============================================================================

// fakeQuerier is an in-memory repository.Querier. Func fields, when set,
// replace the in-memory behavior of the matching method.
type fakeQuerier struct {
	users       map[uuid.UUID]repository.User
	assignments []repository.GetActiveAssignmentForReportRow
	entries     map[uuid.UUID][]repository.ProgressEntry // by assignment, newest first
	files       []repository.File
	admins      []repository.Admin
	configs     map[uuid.UUID]repository.EmailConfiguration
	logs        []repository.EmailLog

	CreateEmailLogFunc func(ctx context.Context, arg repository.CreateEmailLogParams) (repository.EmailLog, error)
	CreateUserFunc     func(ctx context.Context, arg repository.CreateUserParams) (repository.User, error)

	// createdAt supplies created_at for new log rows.
	createdAt func() time.Time
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		users:     make(map[uuid.UUID]repository.User),
		entries:   make(map[uuid.UUID][]repository.ProgressEntry),
		configs:   make(map[uuid.UUID]repository.EmailConfiguration),
		createdAt: fixedClock,
	}
}

var _ repository.Querier = (*fakeQuerier)(nil)

// --- users ---

func (q *fakeQuerier) CreateUser(ctx context.Context, arg repository.CreateUserParams) (repository.User, error) {
	if q.CreateUserFunc != nil {
		return q.CreateUserFunc(ctx, arg)
	}
	for _, u := range q.users {
		if u.Email == arg.Email {
			return repository.User{}, errors.New("duplicate key value violates unique constraint")
		}
	}
	u := repository.User{
		ID:           uuid.New(),
		Name:         arg.Name,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		IsActive:     true,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	q.users[u.ID] = u
	return u, nil
}

func (q *fakeQuerier) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range q.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, sql.ErrNoRows
}

func (q *fakeQuerier) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := q.users[id]
	if !ok {
		return repository.User{}, sql.ErrNoRows
	}
	return u, nil
}

// --- report data ---

func (q *fakeQuerier) GetActiveAssignmentForReport(_ context.Context, arg repository.GetActiveAssignmentForReportParams) (repository.GetActiveAssignmentForReportRow, error) {
	for _, a := range q.assignments {
		if a.UserID == arg.UserID && a.TraineeID == arg.TraineeID && a.ProjectID == arg.ProjectID && a.IsActive {
			return a, nil
		}
	}
	return repository.GetActiveAssignmentForReportRow{}, sql.ErrNoRows
}

func (q *fakeQuerier) ListProgressEntriesByAssignment(_ context.Context, assignmentID uuid.UUID) ([]repository.ProgressEntry, error) {
	return q.entries[assignmentID], nil
}

func (q *fakeQuerier) ListFilesByProgressEntryIDs(_ context.Context, ids []uuid.UUID) ([]repository.File, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []repository.File
	for _, f := range q.files {
		if want[f.ProgressEntryID] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (q *fakeQuerier) GetActiveAdmin(_ context.Context, arg repository.GetActiveAdminParams) (repository.Admin, error) {
	for _, a := range q.admins {
		if a.ID == arg.ID && a.UserID == arg.UserID && a.IsActive {
			return a, nil
		}
	}
	return repository.Admin{}, sql.ErrNoRows
}

// ListActiveAdminsByIDs returns matches in storage order, like the database
// does, so callers must restore the requested order themselves.
func (q *fakeQuerier) ListActiveAdminsByIDs(_ context.Context, arg repository.ListActiveAdminsByIDsParams) ([]repository.Admin, error) {
	want := make(map[uuid.UUID]bool, len(arg.Ids))
	for _, id := range arg.Ids {
		want[id] = true
	}
	var out []repository.Admin
	for _, a := range q.admins {
		if want[a.ID] && a.UserID == arg.UserID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

// --- email configuration ---

func (q *fakeQuerier) GetEmailConfigurationByUserID(_ context.Context, userID uuid.UUID) (repository.EmailConfiguration, error) {
	c, ok := q.configs[userID]
	if !ok {
		return repository.EmailConfiguration{}, sql.ErrNoRows
	}
	return c, nil
}

func (q *fakeQuerier) UpsertEmailConfiguration(_ context.Context, arg repository.UpsertEmailConfigurationParams) (repository.EmailConfiguration, error) {
	c, ok := q.configs[arg.UserID]
	if !ok {
		c = repository.EmailConfiguration{ID: uuid.New(), UserID: arg.UserID, CreatedAt: testNow}
	}
	c.EmailAddress = arg.EmailAddress
	c.SmtpHost = arg.SmtpHost
	c.SmtpPort = arg.SmtpPort
	c.SmtpSecure = arg.SmtpSecure
	c.SmtpUsername = arg.SmtpUsername
	if arg.SmtpPassword != "" {
		c.SmtpPassword = arg.SmtpPassword
	}
	c.IsConfigured = true
	c.TestStatus = "Not Tested"
	c.LastTested = sql.NullTime{}
	c.UpdatedAt = testNow
	q.configs[arg.UserID] = c
	return c, nil
}

func (q *fakeQuerier) UpdateEmailConfigurationTestResult(_ context.Context, arg repository.UpdateEmailConfigurationTestResultParams) error {
	c, ok := q.configs[arg.UserID]
	if !ok {
		return nil
	}
	c.TestStatus = arg.TestStatus
	c.LastTested = arg.LastTested
	q.configs[arg.UserID] = c
	return nil
}

// --- email logs ---

func (q *fakeQuerier) CreateEmailLog(ctx context.Context, arg repository.CreateEmailLogParams) (repository.EmailLog, error) {
	if q.CreateEmailLogFunc != nil {
		return q.CreateEmailLogFunc(ctx, arg)
	}
	l := repository.EmailLog{
		ID:                 uuid.New(),
		UserID:             arg.UserID,
		AdminID:            arg.AdminID,
		RecipientEmail:     arg.RecipientEmail,
		RecipientName:      arg.RecipientName,
		Subject:            arg.Subject,
		Body:               arg.Body,
		AttachmentCount:    arg.AttachmentCount,
		AttachmentManifest: arg.AttachmentManifest,
		Status:             "Pending",
		CreatedAt:          q.createdAt(),
		UpdatedAt:          q.createdAt(),
	}
	q.logs = append(q.logs, l)
	return l, nil
}

func (q *fakeQuerier) find(id, userID uuid.UUID) int {
	for i, l := range q.logs {
		if l.ID == id && l.UserID == userID {
			return i
		}
	}
	return -1
}

func (q *fakeQuerier) GetEmailLog(_ context.Context, arg repository.GetEmailLogParams) (repository.EmailLog, error) {
	i := q.find(arg.ID, arg.UserID)
	if i < 0 {
		return repository.EmailLog{}, sql.ErrNoRows
	}
	return q.logs[i], nil
}

func (q *fakeQuerier) MarkEmailLogSent(_ context.Context, arg repository.MarkEmailLogSentParams) (repository.EmailLog, error) {
	i := q.find(arg.ID, arg.UserID)
	if i < 0 || q.logs[i].Status == "Sent" {
		return repository.EmailLog{}, sql.ErrNoRows
	}
	q.logs[i].Status = "Sent"
	q.logs[i].SentAt = arg.SentAt
	q.logs[i].MessageID = arg.MessageID
	q.logs[i].ErrorMessage = sql.NullString{}
	return q.logs[i], nil
}

func (q *fakeQuerier) MarkEmailLogFailed(_ context.Context, arg repository.MarkEmailLogFailedParams) (repository.EmailLog, error) {
	i := q.find(arg.ID, arg.UserID)
	if i < 0 || q.logs[i].Status == "Sent" {
		return repository.EmailLog{}, sql.ErrNoRows
	}
	q.logs[i].Status = "Failed"
	q.logs[i].ErrorMessage = arg.ErrorMessage
	return q.logs[i], nil
}

func (q *fakeQuerier) UpdateEmailLogStatus(_ context.Context, arg repository.UpdateEmailLogStatusParams) (repository.EmailLog, error) {
	i := q.find(arg.ID, arg.UserID)
	if i < 0 || (q.logs[i].Status == "Sent" && arg.Status != "Sent") {
		return repository.EmailLog{}, sql.ErrNoRows
	}
	q.logs[i].Status = arg.Status
	q.logs[i].ErrorMessage = arg.ErrorMessage
	q.logs[i].SentAt = arg.SentAt
	return q.logs[i], nil
}

func (q *fakeQuerier) matching(userID uuid.UUID, status, recipient sql.NullString, start, endBefore sql.NullTime, search sql.NullString) []repository.EmailLog {
	contains := func(s, sub string) bool {
		return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	var out []repository.EmailLog
	for _, l := range q.logs {
		switch {
		case l.UserID != userID:
		case status.Valid && l.Status != status.String:
		case recipient.Valid && !contains(l.RecipientEmail, recipient.String):
		case start.Valid && l.CreatedAt.Before(start.Time):
		case endBefore.Valid && !l.CreatedAt.Before(endBefore.Time):
		case search.Valid && !contains(l.Subject, search.String) &&
			!contains(l.RecipientName.String, search.String) &&
			!contains(l.RecipientEmail, search.String):
		default:
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (q *fakeQuerier) ListEmailLogs(_ context.Context, arg repository.ListEmailLogsParams) ([]repository.EmailLog, error) {
	rows := q.matching(arg.UserID, arg.Status, arg.RecipientEmail, arg.StartDate, arg.EndBefore, arg.Search)
	start := min(int(arg.RowOffset), len(rows))
	end := min(start+int(arg.RowLimit), len(rows))
	return rows[start:end], nil
}

func (q *fakeQuerier) CountEmailLogs(_ context.Context, arg repository.CountEmailLogsParams) (int64, error) {
	return int64(len(q.matching(arg.UserID, arg.Status, arg.RecipientEmail, arg.StartDate, arg.EndBefore, arg.Search))), nil
}

func (q *fakeQuerier) CountEmailLogsByStatus(_ context.Context, userID uuid.UUID) ([]repository.CountEmailLogsByStatusRow, error) {
	counts := map[string]int64{}
	for _, l := range q.logs {
		if l.UserID == userID {
			counts[l.Status]++
		}
	}
	var out []repository.CountEmailLogsByStatusRow
	for status, n := range counts {
		out = append(out, repository.CountEmailLogsByStatusRow{Status: status, Count: n})
	}
	return out, nil
}

func (q *fakeQuerier) ListEmailLogDailyActivity(_ context.Context, arg repository.ListEmailLogDailyActivityParams) ([]repository.ListEmailLogDailyActivityRow, error) {
	counts := map[time.Time]int64{}
	for _, l := range q.logs {
		if l.UserID == arg.UserID && !l.CreatedAt.Before(arg.CreatedAt) {
			counts[l.CreatedAt.UTC().Truncate(24*time.Hour)]++
		}
	}
	var out []repository.ListEmailLogDailyActivityRow
	for day, n := range counts {
		out = append(out, repository.ListEmailLogDailyActivityRow{Day: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	return out, nil
}

func (q *fakeQuerier) DeleteEmailLog(_ context.Context, arg repository.DeleteEmailLogParams) (int64, error) {
	i := q.find(arg.ID, arg.UserID)
	if i < 0 {
		return 0, nil
	}
	q.logs = append(q.logs[:i], q.logs[i+1:]...)
	return 1, nil
}

func (q *fakeQuerier) DeleteEmailLogsOlderThan(_ context.Context, arg repository.DeleteEmailLogsOlderThanParams) (int64, error) {
	var kept []repository.EmailLog
	var n int64
	for _, l := range q.logs {
		if l.UserID == arg.UserID && l.CreatedAt.Before(arg.CreatedAt) {
			n++
			continue
		}
		kept = append(kept, l)
	}
	q.logs = kept
	return n, nil
}

// =============================================================================
// fakeTransport
// =============================================================================

// fakeTransport records messages and fails for addresses in failFor.
type fakeTransport struct {
	SendFunc   func(ctx context.Context, cfg email.SMTPConfig, msg email.Message) (string, error)
	VerifyFunc func(ctx context.Context, cfg email.SMTPConfig) error

	failFor map[string]error
	sent    []email.Message
	configs []email.SMTPConfig
}

func (t *fakeTransport) Send(ctx context.Context, cfg email.SMTPConfig, msg email.Message) (string, error) {
	t.configs = append(t.configs, cfg)
	if t.SendFunc != nil {
		return t.SendFunc(ctx, cfg, msg)
	}
	if err, ok := t.failFor[msg.To]; ok {
		return "", err
	}
	t.sent = append(t.sent, msg)
	return "<" + uuid.NewString() + "@fake.example>", nil
}

func (t *fakeTransport) Verify(ctx context.Context, cfg email.SMTPConfig) error {
	if t.VerifyFunc != nil {
		return t.VerifyFunc(ctx, cfg)
	}
	return nil
}
