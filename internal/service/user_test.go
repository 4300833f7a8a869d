package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTokenIssuer is a hand-written TokenIssuer.
type mockTokenIssuer struct {
	IssueFunc func(userID uuid.UUID, email string) (string, time.Time, error)
}

func (m *mockTokenIssuer) Issue(userID uuid.UUID, email string) (string, time.Time, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, email)
	}
	return "token-" + userID.String(), testNow.Add(24 * time.Hour), nil
}

func registerParams() domain.RegisterParams {
	return domain.RegisterParams{
		Name:     "Instructor",
		Email:    "  Instructor@Academy.example ",
		Password: "Sup3rSecret!",
	}
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	q := newFakeQuerier()
	svc := NewUserService(q, &mockTokenIssuer{}, testLogger())

	user, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)
	assert.Equal(t, "instructor@academy.example", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.NotEqual(t, "Sup3rSecret!", q.users[user.ID].PasswordHash)

	result, err := svc.Login(context.Background(), "INSTRUCTOR@academy.example", "Sup3rSecret!")
	require.NoError(t, err)
	assert.Equal(t, "token-"+user.ID.String(), result.Token)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Empty(t, result.User.PasswordHash)
}

func TestUserService_Register_Conflict(t *testing.T) {
	q := newFakeQuerier()
	svc := NewUserService(q, &mockTokenIssuer{}, testLogger())

	_, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerParams())
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
	assert.Len(t, q.users, 1)
}

func TestUserService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params domain.RegisterParams
		field  string
	}{
		{"short password", domain.RegisterParams{Name: "Instructor", Email: "a@b.example", Password: "short"}, "password"},
		{"bad email", domain.RegisterParams{Name: "Instructor", Email: "nope", Password: "Sup3rSecret!"}, "email"},
		{"missing name", domain.RegisterParams{Name: " ", Email: "a@b.example", Password: "Sup3rSecret!"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUserService(newFakeQuerier(), &mockTokenIssuer{}, testLogger()).Register(context.Background(), tt.params)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Contains(t, ve.Fields, tt.field)
		})
	}
}

func TestUserService_Login_Failures(t *testing.T) {
	q := newFakeQuerier()
	svc := NewUserService(q, &mockTokenIssuer{}, testLogger())
	user, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "instructor@academy.example", "wrong-password")
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	assert.Equal(t, "Invalid email or password", domain.ErrorMessage(err))

	_, err = svc.Login(context.Background(), "nobody@academy.example", "Sup3rSecret!")
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	assert.Equal(t, "Invalid email or password", domain.ErrorMessage(err))

	u := q.users[user.ID]
	u.IsActive = false
	q.users[user.ID] = u
	_, err = svc.Login(context.Background(), "instructor@academy.example", "Sup3rSecret!")
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestUserService_Login_TokenFailure(t *testing.T) {
	q := newFakeQuerier()
	tokens := &mockTokenIssuer{}
	svc := NewUserService(q, tokens, testLogger())
	_, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)

	tokens.IssueFunc = func(uuid.UUID, string) (string, time.Time, error) {
		return "", time.Time{}, errors.New("signing failed")
	}
	_, err = svc.Login(context.Background(), "instructor@academy.example", "Sup3rSecret!")
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestUserService_GetByID(t *testing.T) {
	q := newFakeQuerier()
	svc := NewUserService(q, &mockTokenIssuer{}, testLogger())
	user, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}
