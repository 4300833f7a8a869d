package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultHistoryPage  = 1
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100

	// ActivityWindowDays is the trailing window of the daily activity series.
	ActivityWindowDays = 30
)

// HistoryFilter narrows the delivery history listing and export.
type HistoryFilter struct {
	Status         EmailLogStatus // Empty means any status
	RecipientEmail string         // Case-insensitive substring
	StartDate      *time.Time     // Inclusive, on created_at
	EndDate        *time.Time     // Inclusive of the whole day
	Search         string         // Subject, recipient name or recipient email
	Page           int
	Limit          int
}

// Normalize applies defaults and bounds to paging fields.
func (f *HistoryFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultHistoryPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		f.Limit = MaxHistoryLimit
	}
}

// Offset returns the row offset for the current page.
func (f *HistoryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination describes a page of results.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// NewPagination computes pagination metadata.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// HistoryStats holds per-status counts for the account.
type HistoryStats struct {
	Total   int `json:"total"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Pending int `json:"pending"`
}

// DailyActivity is the number of log rows created on one day.
type DailyActivity struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// HistoryItem is one log row enriched for display.
type HistoryItem struct {
	ID              uuid.UUID        `json:"id"`
	RecipientEmail  string           `json:"recipientEmail"`
	RecipientName   string           `json:"recipientName"`
	Subject         string           `json:"subject"`
	AttachmentCount int              `json:"attachmentCount"`
	Attachments     []AttachmentInfo `json:"attachments"`
	Status          EmailLogStatus   `json:"status"`
	ErrorMessage    string           `json:"errorMessage,omitempty"`
	MessageID       string           `json:"messageId,omitempty"`
	SentAt          *time.Time       `json:"sentAt"`
	CreatedAt       time.Time        `json:"createdAt"`
	Trainee         string           `json:"trainee,omitempty"`
	Project         string           `json:"project,omitempty"`
	Recipients      []string         `json:"recipients"`
}

// NewHistoryItem builds a display item from a log row.
func NewHistoryItem(l EmailLog) HistoryItem {
	item := HistoryItem{
		ID:              l.ID,
		RecipientEmail:  l.RecipientEmail,
		RecipientName:   l.RecipientName,
		Subject:         l.Subject,
		AttachmentCount: l.AttachmentCount,
		Attachments:     l.AttachmentManifest,
		Status:          l.Status,
		ErrorMessage:    l.ErrorMessage,
		MessageID:       l.MessageID,
		SentAt:          l.SentAt,
		CreatedAt:       l.CreatedAt,
		Recipients:      []string{l.RecipientEmail},
	}
	if item.Attachments == nil {
		item.Attachments = []AttachmentInfo{}
	}
	if trainee, project, ok := ParseReportSubject(l.Subject); ok {
		item.Trainee = trainee
		item.Project = project
	}
	return item
}

// HistoryPage is the result of a history listing.
type HistoryPage struct {
	Items          []HistoryItem   `json:"emailHistory"`
	Pagination     Pagination      `json:"pagination"`
	Statistics     HistoryStats    `json:"statistics"`
	RecentActivity []DailyActivity `json:"recentActivity"`
}

// UpdateEmailLogParams contains parameters for a manual status correction.
type UpdateEmailLogParams struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	Status       EmailLogStatus // Defaults to Pending when empty
	ErrorMessage string
}

// ExportFormat selects the history export encoding.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

// ExportRecord is one log row as exported.
type ExportRecord struct {
	RecipientEmail  string         `json:"recipientEmail"`
	RecipientName   string         `json:"recipientName"`
	Subject         string         `json:"subject"`
	AttachmentCount int            `json:"attachmentCount"`
	Status          EmailLogStatus `json:"status"`
	ErrorMessage    string         `json:"errorMessage"`
	SentAt          *time.Time     `json:"sentAt"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// HistoryExport is the result of an export. CSV and Filename are set only
// for ExportCSV.
type HistoryExport struct {
	Format     ExportFormat
	Records    []ExportRecord
	ExportedAt time.Time
	Filename   string
	CSV        []byte
}
