package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		want  Pagination
	}{
		{"empty", 1, 10, 0, Pagination{1, 0, 0, 10, false, false}},
		{"single page", 1, 10, 7, Pagination{1, 1, 7, 10, false, false}},
		{"first of many", 1, 10, 25, Pagination{1, 3, 25, 10, true, false}},
		{"middle", 2, 10, 25, Pagination{2, 3, 25, 10, true, true}},
		{"last exact", 3, 5, 15, Pagination{3, 3, 15, 5, false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}

func TestHistoryFilter_Normalize(t *testing.T) {
	f := HistoryFilter{}
	f.Normalize()
	assert.Equal(t, DefaultHistoryPage, f.Page)
	assert.Equal(t, DefaultHistoryLimit, f.Limit)
	assert.Equal(t, 0, f.Offset())

	f = HistoryFilter{Page: 3, Limit: 500}
	f.Normalize()
	assert.Equal(t, MaxHistoryLimit, f.Limit)
	assert.Equal(t, 200, f.Offset())
}

func TestNewHistoryItem(t *testing.T) {
	item := NewHistoryItem(EmailLog{
		RecipientEmail: "ops@example.com",
		Subject:        "Progress Report - Aastha - Aahaar CMS",
		Status:         EmailLogStatusFailed,
		ErrorMessage:   "535 authentication failed",
	})

	assert.Equal(t, "Aastha", item.Trainee)
	assert.Equal(t, "Aahaar CMS", item.Project)
	assert.Equal(t, []string{"ops@example.com"}, item.Recipients)
	assert.NotNil(t, item.Attachments)
	assert.Equal(t, "535 authentication failed", item.ErrorMessage)
}

func TestErrorHelpers(t *testing.T) {
	assert.Equal(t, ENOTFOUND, ErrorCode(NotFound("op", "Assignment")))
	assert.Equal(t, "Assignment not found", ErrorMessage(NotFound("op", "Assignment")))
	assert.Equal(t, ECONFIG, ErrorCode(ConfigurationMissing("op")))
	assert.Equal(t, EINVALID, ErrorCode(NewValidationError("op", "email", "required")))
	assert.Equal(t, "An internal error occurred. Please try again later.", ErrorMessage(assert.AnError))

	wrapped := fmt.Errorf("retry: %w", Conflict("op", "Sent emails cannot change status"))
	assert.True(t, IsCode(wrapped, ECONFLICT))
	assert.False(t, IsCode(wrapped, ENOTFOUND))
	assert.False(t, IsCode(nil, EINTERNAL))
}
