// Package domain contains core business types and interfaces.
//
// This file defines the report data aggregates passed between the assembler,
// the renderer and the dispatcher, and the outcome types returned to callers.
package domain

import (
	"github.com/google/uuid"
)

// =============================================================================
// Report Data Aggregates
// =============================================================================

// ReportBundle aggregates all data needed to render and deliver a progress
// report. ProgressEntries are ordered newest-first; Recipients follow the
// caller's requested order. Callers must not mutate a bundle once built.
type ReportBundle struct {
	Assignment      Assignment
	ProgressEntries []ProgressEntry
	Recipients      []Admin
}

// FileCount returns the number of files attached across all entries.
func (b *ReportBundle) FileCount() int {
	n := 0
	for _, e := range b.ProgressEntries {
		n += len(e.Files)
	}
	return n
}

// Files returns every attached file in entry order.
func (b *ReportBundle) Files() []File {
	files := make([]File, 0, b.FileCount())
	for _, e := range b.ProgressEntries {
		files = append(files, e.Files...)
	}
	return files
}

// DefaultReportSubject builds "Progress Report - {trainee} - {project}".
func DefaultReportSubject(traineeName, projectName string) string {
	return ReportSubjectPrefix + traineeName + " - " + projectName
}

// =============================================================================
// Report Request Parameters
// =============================================================================

// ReportRequest contains validated parameters for previewing or sending a
// progress report.
type ReportRequest struct {
	UserID             uuid.UUID // Owner, from auth context
	TraineeID          uuid.UUID
	ProjectID          uuid.UUID
	AdminIDs           []uuid.UUID
	Subject            string // Optional; defaults to DefaultReportSubject
	CustomMessage      string
	IncludeAllProgress bool
	IncludeFiles       bool
}

// =============================================================================
// Delivery Outcomes
// =============================================================================

// RecipientStatus is the per-recipient outcome reported to callers.
type RecipientStatus string

const (
	RecipientSent   RecipientStatus = "sent"
	RecipientFailed RecipientStatus = "failed"
)

// RecipientOutcome is the result of one per-recipient delivery attempt.
type RecipientOutcome struct {
	AdminID    uuid.UUID       `json:"adminId"`
	AdminEmail string          `json:"adminEmail"`
	Status     RecipientStatus `json:"status"`
	MessageID  string          `json:"messageId,omitempty"`
	Error      string          `json:"error,omitempty"`
	LogID      uuid.UUID       `json:"logId,omitempty"`
}

// SendResult is returned by the dispatcher after the recipient loop finishes.
type SendResult struct {
	EmailResults    []RecipientOutcome `json:"emailResults"`
	AttachmentCount int                `json:"attachmentCount"`
}

// SentCount returns how many recipients were delivered to.
func (r *SendResult) SentCount() int {
	n := 0
	for _, o := range r.EmailResults {
		if o.Status == RecipientSent {
			n++
		}
	}
	return n
}

// PreviewAttachment describes an attachment a send would include.
type PreviewAttachment struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Type     string    `json:"type"`
}

// Preview is the rendered report returned without sending anything.
type Preview struct {
	Recipients  []string            `json:"recipients"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
	Attachments []PreviewAttachment `json:"attachments"`
	Trainee     PreviewTrainee      `json:"trainee"`
	Project     PreviewProject      `json:"project"`
}

// PreviewTrainee is the trainee summary included in a preview.
type PreviewTrainee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PreviewProject is the project summary included in a preview.
type PreviewProject struct {
	Name string `json:"name"`
}
