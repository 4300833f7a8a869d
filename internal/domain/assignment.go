// Package domain contains core business types and interfaces.
//
// This file defines the Assignment aggregate: the binding of one project to
// one trainee under one owning account, together with the trainee and project
// details a progress report needs.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Assignment Status
// =============================================================================

// AssignmentStatus represents the lifecycle state of an assignment.
type AssignmentStatus string

const (
	AssignmentStatusNotStarted AssignmentStatus = "Not Started"
	AssignmentStatusInProgress AssignmentStatus = "In Progress"
	AssignmentStatusCompleted  AssignmentStatus = "Completed"
	AssignmentStatusOnHold     AssignmentStatus = "On Hold"
	AssignmentStatusCancelled  AssignmentStatus = "Cancelled"
)

// IsValid returns true if the status is a recognized value.
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusNotStarted, AssignmentStatusInProgress, AssignmentStatusCompleted,
		AssignmentStatusOnHold, AssignmentStatusCancelled:
		return true
	}
	return false
}

// ProgressType distinguishes individual from group assignments.
type ProgressType string

const (
	ProgressTypeIndividual ProgressType = "Individual"
	ProgressTypeGroup      ProgressType = "Group"
)

// DifficultyLevel is the project's difficulty classification.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
)

// =============================================================================
// Domain Types
// =============================================================================

// Trainee is the person being trained on a project.
type Trainee struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Email       string
	Phone       string
	BatchNumber string // Optional
	JoinDate    *time.Time
	IsActive    bool
}

// Project is a unit of training work that can be assigned to trainees.
type Project struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Description     string
	DifficultyLevel DifficultyLevel // Optional
	IsActive        bool
}

// Assignment links one Project to one Trainee under one owning account.
type Assignment struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	AssignmentCode         string
	Status                 AssignmentStatus
	ProgressType           ProgressType
	StartDate              *time.Time
	ExpectedCompletionDate *time.Time
	ActualCompletionDate   *time.Time
	Notes                  string
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Trainee Trainee
	Project Project
}
