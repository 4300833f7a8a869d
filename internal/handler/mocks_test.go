package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DukeRupert/progressly/internal/auth"
	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/email"
	"github.com/DukeRupert/progressly/internal/report"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var errNotImplemented = errors.New("not implemented")

// =============================================================================
// Service mocks
// =============================================================================

type mockUserService struct {
	RegisterFunc func(ctx context.Context, params domain.RegisterParams) (*domain.User, error)
	LoginFunc    func(ctx context.Context, email, password string) (*domain.LoginResult, error)
}

func (m *mockUserService) Register(ctx context.Context, params domain.RegisterParams) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, params)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, errNotImplemented
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, errNotImplemented
}

type mockReportService struct {
	PreviewFunc func(ctx context.Context, req domain.ReportRequest) (*domain.Preview, error)
	SendFunc    func(ctx context.Context, req domain.ReportRequest) (*domain.SendResult, error)
}

func (m *mockReportService) Preview(ctx context.Context, req domain.ReportRequest) (*domain.Preview, error) {
	if m.PreviewFunc != nil {
		return m.PreviewFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockReportService) Send(ctx context.Context, req domain.ReportRequest) (*domain.SendResult, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, req)
	}
	return nil, errNotImplemented
}

type mockHistoryService struct {
	ListFunc            func(ctx context.Context, ownerID uuid.UUID, filter domain.HistoryFilter) (*domain.HistoryPage, error)
	GetFunc             func(ctx context.Context, ownerID, id uuid.UUID) (*domain.HistoryItem, error)
	UpdateStatusFunc    func(ctx context.Context, params domain.UpdateEmailLogParams) (*domain.HistoryItem, error)
	DeleteFunc          func(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteOlderThanFunc func(ctx context.Context, ownerID uuid.UUID, days int) (int64, error)
	RetryFunc           func(ctx context.Context, ownerID, id uuid.UUID) (*domain.HistoryItem, error)
	ExportFunc          func(ctx context.Context, ownerID uuid.UUID, filter domain.HistoryFilter, format domain.ExportFormat) (*domain.HistoryExport, error)
}

func (m *mockHistoryService) List(ctx context.Context, ownerID uuid.UUID, filter domain.HistoryFilter) (*domain.HistoryPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, filter)
	}
	return nil, errNotImplemented
}

func (m *mockHistoryService) Get(ctx context.Context, ownerID, id uuid.UUID) (*domain.HistoryItem, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, ownerID, id)
	}
	return nil, errNotImplemented
}

func (m *mockHistoryService) UpdateStatus(ctx context.Context, params domain.UpdateEmailLogParams) (*domain.HistoryItem, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, params)
	}
	return nil, errNotImplemented
}

func (m *mockHistoryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	return errNotImplemented
}

func (m *mockHistoryService) DeleteOlderThan(ctx context.Context, ownerID uuid.UUID, days int) (int64, error) {
	if m.DeleteOlderThanFunc != nil {
		return m.DeleteOlderThanFunc(ctx, ownerID, days)
	}
	return 0, errNotImplemented
}

func (m *mockHistoryService) Retry(ctx context.Context, ownerID, id uuid.UUID) (*domain.HistoryItem, error) {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, ownerID, id)
	}
	return nil, errNotImplemented
}

func (m *mockHistoryService) Export(ctx context.Context, ownerID uuid.UUID, filter domain.HistoryFilter, format domain.ExportFormat) (*domain.HistoryExport, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, ownerID, filter, format)
	}
	return nil, errNotImplemented
}

type mockEmailConfigService struct {
	GetFunc  func(ctx context.Context, ownerID uuid.UUID) (*domain.EmailConfigView, error)
	SaveFunc func(ctx context.Context, params domain.SaveEmailConfigParams) (*domain.EmailConfigView, error)
}

func (m *mockEmailConfigService) Get(ctx context.Context, ownerID uuid.UUID) (*domain.EmailConfigView, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, ownerID)
	}
	return nil, errNotImplemented
}

func (m *mockEmailConfigService) Save(ctx context.Context, params domain.SaveEmailConfigParams) (*domain.EmailConfigView, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, params)
	}
	return nil, errNotImplemented
}

type mockDispatcher struct {
	VerifyConfigurationFunc func(ctx context.Context, ownerID uuid.UUID) error
	TestConfigurationFunc   func(ctx context.Context, ownerID uuid.UUID) error
	SendAdminTestEmailFunc  func(ctx context.Context, ownerID, adminID uuid.UUID) (domain.RecipientOutcome, error)
}

func (m *mockDispatcher) SendReport(ctx context.Context, ownerID uuid.UUID, content report.Content, admins []domain.Admin, attachments []email.Attachment) (*domain.SendResult, error) {
	return nil, errNotImplemented
}

func (m *mockDispatcher) SendOne(ctx context.Context, ownerID uuid.UUID, adminID *uuid.UUID, msg email.Message) domain.RecipientOutcome {
	return domain.RecipientOutcome{Status: domain.RecipientFailed, Error: errNotImplemented.Error()}
}

func (m *mockDispatcher) Resend(ctx context.Context, log domain.EmailLog) (domain.EmailLog, error) {
	return log, errNotImplemented
}

func (m *mockDispatcher) VerifyConfiguration(ctx context.Context, ownerID uuid.UUID) error {
	if m.VerifyConfigurationFunc != nil {
		return m.VerifyConfigurationFunc(ctx, ownerID)
	}
	return errNotImplemented
}

func (m *mockDispatcher) TestConfiguration(ctx context.Context, ownerID uuid.UUID) error {
	if m.TestConfigurationFunc != nil {
		return m.TestConfigurationFunc(ctx, ownerID)
	}
	return errNotImplemented
}

func (m *mockDispatcher) SendAdminTestEmail(ctx context.Context, ownerID, adminID uuid.UUID) (domain.RecipientOutcome, error) {
	if m.SendAdminTestEmailFunc != nil {
		return m.SendAdminTestEmailFunc(ctx, ownerID, adminID)
	}
	return domain.RecipientOutcome{}, errNotImplemented
}

// =============================================================================
// Request helpers
// =============================================================================

func testUser() *domain.User {
	return &domain.User{ID: uuid.New(), Name: "Instructor", Email: "instructor@academy.example", IsActive: true}
}

// passThrough stands in for the auth guard: handlers read the user that
// the test put in the request context.
func passThrough(next http.Handler) http.Handler { return next }

// serve routes req through a mux with the handler's routes registered.
func serve(t *testing.T, register func(mux *http.ServeMux), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	register(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// newRequest builds a request as user. A nil body sends none; a string is
// sent verbatim; anything else is JSON encoded.
func newRequest(t *testing.T, user *domain.User, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req = req.WithContext(auth.SetUser(req.Context(), user))
	}
	return req
}
