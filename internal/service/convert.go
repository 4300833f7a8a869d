package service

import (
	"encoding/json"
	"strconv"

	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/repository"
	"github.com/sqlc-dev/pqtype"
)

// =============================================================================
// Repository -> domain conversion
// =============================================================================

func repoUserToDomain(u repository.User) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func repoAdminToDomain(a repository.Admin) domain.Admin {
	return domain.Admin{
		ID:         a.ID,
		UserID:     a.UserID,
		Name:       a.Name,
		Email:      a.Email,
		Department: domain.NullStringValue(a.Department),
		Phone:      domain.NullStringValue(a.Phone),
		IsDefault:  a.IsDefault,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
	}
}

func repoAssignmentRowToDomain(r repository.GetActiveAssignmentForReportRow) domain.Assignment {
	return domain.Assignment{
		ID:                     r.ID,
		UserID:                 r.UserID,
		AssignmentCode:         r.AssignmentCode,
		Status:                 domain.AssignmentStatus(r.Status),
		ProgressType:           domain.ProgressType(r.ProgressType),
		StartDate:              domain.NullTimeValue(r.StartDate),
		ExpectedCompletionDate: domain.NullTimeValue(r.ExpectedCompletionDate),
		ActualCompletionDate:   domain.NullTimeValue(r.ActualCompletionDate),
		Notes:                  domain.NullStringValue(r.Notes),
		IsActive:               r.IsActive,
		CreatedAt:              r.CreatedAt,
		UpdatedAt:              r.UpdatedAt,
		Trainee: domain.Trainee{
			ID:          r.TraineeID,
			UserID:      r.UserID,
			Name:        r.TraineeName,
			Email:       r.TraineeEmail,
			Phone:       domain.NullStringValue(r.TraineePhone),
			BatchNumber: domain.NullStringValue(r.TraineeBatchNumber),
			IsActive:    true,
		},
		Project: domain.Project{
			ID:              r.ProjectID,
			UserID:          r.UserID,
			Name:            r.ProjectName,
			Description:     domain.NullStringValue(r.ProjectDescription),
			DifficultyLevel: domain.DifficultyLevel(domain.NullStringValue(r.ProjectDifficultyLevel)),
			IsActive:        true,
		},
	}
}

func repoProgressEntryToDomain(e repository.ProgressEntry) domain.ProgressEntry {
	entry := domain.ProgressEntry{
		ID:                 e.ID,
		AssignmentID:       e.AssignmentID,
		Title:              e.Title,
		Description:        domain.NullStringValue(e.Description),
		StartDate:          domain.NullTimeValue(e.StartDate),
		EndDate:            domain.NullTimeValue(e.EndDate),
		MilestonesAchieved: domain.NullStringValue(e.MilestonesAchieved),
		CurrentStatus:      domain.ProgressStatus(e.CurrentStatus),
		NextSteps:          domain.NullStringValue(e.NextSteps),
		Blockers:           domain.NullStringValue(e.Blockers),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
	if e.CompletionPercentage.Valid {
		p := int(e.CompletionPercentage.Int32)
		entry.CompletionPercentage = &p
	}
	// NUMERIC(5,2) arrives as text.
	if e.HoursWorked.Valid {
		if h, err := strconv.ParseFloat(e.HoursWorked.String, 64); err == nil {
			entry.HoursWorked = &h
		}
	}
	return entry
}

func repoFileToDomain(f repository.File) domain.File {
	return domain.File{
		ID:              f.ID,
		ProgressEntryID: f.ProgressEntryID,
		OriginalName:    f.OriginalName,
		FileName:        f.FileName,
		FilePath:        f.FilePath,
		FileSize:        f.FileSize,
		MimeType:        f.MimeType,
		FileType:        domain.NullStringValue(f.FileType),
		UploadDate:      f.UploadDate,
	}
}

func repoEmailConfigToDomain(c repository.EmailConfiguration) *domain.EmailConfiguration {
	return &domain.EmailConfiguration{
		ID:           c.ID,
		UserID:       c.UserID,
		EmailAddress: c.EmailAddress,
		SMTPHost:     c.SmtpHost,
		SMTPPort:     int(c.SmtpPort),
		SMTPSecure:   c.SmtpSecure,
		SMTPUsername: c.SmtpUsername,
		SMTPPassword: c.SmtpPassword,
		IsConfigured: c.IsConfigured,
		LastTested:   domain.NullTimeValue(c.LastTested),
		TestStatus:   domain.ConfigTestStatus(c.TestStatus),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func repoEmailLogToDomain(l repository.EmailLog) domain.EmailLog {
	log := domain.EmailLog{
		ID:              l.ID,
		UserID:          l.UserID,
		RecipientEmail:  l.RecipientEmail,
		RecipientName:   domain.NullStringValue(l.RecipientName),
		Subject:         l.Subject,
		Body:            l.Body,
		AttachmentCount: int(l.AttachmentCount),
		Status:          domain.EmailLogStatus(l.Status),
		ErrorMessage:    domain.NullStringValue(l.ErrorMessage),
		MessageID:       domain.NullStringValue(l.MessageID),
		SentAt:          domain.NullTimeValue(l.SentAt),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if l.AdminID.Valid {
		id := l.AdminID.UUID
		log.AdminID = &id
	}
	if l.AttachmentManifest.Valid {
		// A malformed manifest only loses display metadata.
		_ = json.Unmarshal(l.AttachmentManifest.RawMessage, &log.AttachmentManifest)
	}
	return log
}

// manifestJSON encodes attachment metadata for the email_logs JSONB column.
func manifestJSON(manifest []domain.AttachmentInfo) pqtype.NullRawMessage {
	if len(manifest) == 0 {
		return pqtype.NullRawMessage{}
	}
	raw, err := json.Marshal(manifest)
	if err != nil {
		return pqtype.NullRawMessage{}
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}
}
