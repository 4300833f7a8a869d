package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProgressStatus is the status reported by a progress entry.
type ProgressStatus string

const (
	ProgressStatusInProgress ProgressStatus = "In Progress"
	ProgressStatusCompleted  ProgressStatus = "Completed"
	ProgressStatusBlocked    ProgressStatus = "Blocked"
	ProgressStatusOnHold     ProgressStatus = "On Hold"
)

// ProgressEntry is a dated status update against an assignment.
//
// Optional free-text fields are empty strings when absent. CompletionPercentage
// and HoursWorked are nil when the entry did not report them.
type ProgressEntry struct {
	ID                   uuid.UUID
	AssignmentID         uuid.UUID
	Title                string
	Description          string
	StartDate            *time.Time
	EndDate              *time.Time
	MilestonesAchieved   string
	CurrentStatus        ProgressStatus
	NextSteps            string
	Blockers             string
	CompletionPercentage *int
	HoursWorked          *float64
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Files []File
}

// File is an attachment uploaded against a progress entry.
// FilePath is the storage key of the file bytes.
type File struct {
	ID              uuid.UUID
	ProgressEntryID uuid.UUID
	OriginalName    string
	FileName        string
	FilePath        string
	FileSize        int64
	MimeType        string
	FileType        string
	UploadDate      time.Time
}
