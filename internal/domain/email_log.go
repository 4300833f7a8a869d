package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Email Log Status
// =============================================================================

// EmailLogStatus represents the delivery state of one send attempt.
type EmailLogStatus string

const (
	EmailLogStatusPending EmailLogStatus = "Pending"
	EmailLogStatusSent    EmailLogStatus = "Sent"
	EmailLogStatusFailed  EmailLogStatus = "Failed"
)

// String returns the string representation of the status.
func (s EmailLogStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s EmailLogStatus) IsValid() bool {
	switch s {
	case EmailLogStatusPending, EmailLogStatusSent, EmailLogStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo checks if a log row in this status may move to target.
//
// Valid transitions:
// - Pending -> Sent | Failed (outcome of the first attempt)
// - Pending -> Pending (no-op)
// - Failed -> Sent (successful retry)
// - Failed -> Failed (retry failed, error message replaced)
// - Failed -> Pending (manual correction)
// - Sent -> Sent (no-op); Sent never moves to another status
func (s EmailLogStatus) CanTransitionTo(target EmailLogStatus) bool {
	if !target.IsValid() {
		return false
	}
	switch s {
	case EmailLogStatusPending, EmailLogStatusFailed:
		return true
	case EmailLogStatusSent:
		return target == EmailLogStatusSent
	}
	return false
}

// =============================================================================
// Email Log Domain Type
// =============================================================================

// AttachmentInfo is the metadata recorded for each attachment of a send.
// The bytes themselves are not persisted with the log.
type AttachmentInfo struct {
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

// EmailLog is the persisted record of one delivery attempt.
type EmailLog struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	AdminID            *uuid.UUID // Set when the recipient is a known admin
	RecipientEmail     string
	RecipientName      string
	Subject            string
	Body               string
	AttachmentCount    int
	AttachmentManifest []AttachmentInfo
	Status             EmailLogStatus
	ErrorMessage       string
	MessageID          string
	SentAt             *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TransitionTo moves the log to target if the state machine allows it.
func (l *EmailLog) TransitionTo(target EmailLogStatus) error {
	if !l.Status.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition email log from %s to %s", l.Status, target)
	}
	l.Status = target
	return nil
}

// IsRetryable returns true if the caller may re-attempt delivery.
func (l *EmailLog) IsRetryable() bool {
	return l.Status == EmailLogStatusFailed
}

// ReportSubjectPrefix prefixes every default progress report subject.
const ReportSubjectPrefix = "Progress Report - "

// ParseReportSubject extracts the trainee and project names from a default
// report subject ("Progress Report - Trainee - Project"). ok is false when the
// subject does not follow that shape.
func ParseReportSubject(subject string) (trainee, project string, ok bool) {
	rest, found := strings.CutPrefix(subject, ReportSubjectPrefix)
	if !found {
		return "", "", false
	}
	trainee, project, found = strings.Cut(rest, " - ")
	if !found || trainee == "" || project == "" {
		return "", "", false
	}
	return trainee, project, true
}
