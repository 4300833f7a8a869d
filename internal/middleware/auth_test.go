package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DukeRupert/progressly/internal/auth"
	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mocks
// =============================================================================

// mockUserService implements the service.UserService interface for testing.
type mockUserService struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *mockUserService) Register(ctx context.Context, params domain.RegisterParams) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

type mockTokenParser struct {
	ParseFunc func(token string) (uuid.UUID, error)
}

func (m *mockTokenParser) Parse(token string) (uuid.UUID, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(token)
	}
	return uuid.Nil, auth.ErrInvalidToken
}

// =============================================================================
// Test Helpers
// =============================================================================

// newTestLogger creates a logger that discards output for testing.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeUser() *domain.User {
	return &domain.User{ID: uuid.New(), Email: "instructor@academy.example", Name: "Instructor", IsActive: true}
}

// usersByID serves a fixed set of users.
func usersByID(users ...*domain.User) *mockUserService {
	return &mockUserService{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, domain.NotFound("UserService.GetByID", "User")
		},
	}
}

// acceptToken parses "good" as id and rejects everything else.
func acceptToken(id uuid.UUID) *mockTokenParser {
	return &mockTokenParser{
		ParseFunc: func(token string) (uuid.UUID, error) {
			if token == "good" {
				return id, nil
			}
			return uuid.Nil, auth.ErrInvalidToken
		},
	}
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	assert.False(t, body.Success)
	return body.Message
}

// =============================================================================
// RequireUser
// =============================================================================

func TestRequireUser_ValidToken_SetsUserInContext(t *testing.T) {
	user := activeUser()
	mw := NewAuthMiddleware(acceptToken(user.ID), usersByID(user), newTestLogger())

	var got *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.GetUserFromRequest(r)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	mw.RequireUser(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
}

func TestRequireUser_Rejections(t *testing.T) {
	user := activeUser()
	inactive := activeUser()
	inactive.IsActive = false

	tests := []struct {
		name       string
		header     string
		tokens     *mockTokenParser
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "no header",
			tokens:     acceptToken(user.ID),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Access token required",
		},
		{
			name:       "not a bearer credential",
			header:     "Basic dXNlcjpwYXNz",
			tokens:     acceptToken(user.ID),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Access token required",
		},
		{
			name:       "bad token",
			header:     "Bearer forged",
			tokens:     acceptToken(user.ID),
			wantStatus: http.StatusForbidden,
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "unknown user",
			header:     "Bearer good",
			tokens:     acceptToken(uuid.New()),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid or inactive user",
		},
		{
			name:       "inactive user",
			header:     "Bearer good",
			tokens:     acceptToken(inactive.ID),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid or inactive user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewAuthMiddleware(tt.tokens, usersByID(user, inactive), newTestLogger())

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

			req := httptest.NewRequest(http.MethodPost, "/api/reports/send", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw.RequireUser(next).ServeHTTP(rec, req)

			assert.False(t, called, "handler must not run")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, message(t, rec))
		})
	}
}

func TestRequireUser_WithTokenIssuer(t *testing.T) {
	user := activeUser()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	token, _, err := issuer.Issue(user.ID, user.Email)
	require.NoError(t, err)

	mw := NewAuthMiddleware(issuer, usersByID(user), newTestLogger())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/email-config", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.RequireUser(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	other := auth.NewTokenIssuer("other-secret", time.Hour)
	forged, _, err := other.Issue(user.ID, user.Email)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/email-config", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec = httptest.NewRecorder()
	mw.RequireUser(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// =============================================================================
// Stack
// =============================================================================

func TestStack_AppliesInOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Stack(mark("outer"), mark("inner"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
