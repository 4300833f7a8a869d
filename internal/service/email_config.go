package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// EmailConfigService manages an account's SMTP configuration.
type EmailConfigService interface {
	// Get returns the configuration without its password, or nil when the
	// account has none yet.
	Get(ctx context.Context, ownerID uuid.UUID) (*domain.EmailConfigView, error)

	// Save creates or replaces the configuration. An empty password keeps
	// the stored one; the first save requires a password.
	Save(ctx context.Context, params domain.SaveEmailConfigParams) (*domain.EmailConfigView, error)
}

type emailConfigService struct {
	queries  repository.Querier
	validate *validator.Validate
	logger   *slog.Logger
}

// NewEmailConfigService creates a new EmailConfigService.
func NewEmailConfigService(queries repository.Querier, logger *slog.Logger) EmailConfigService {
	return &emailConfigService{
		queries:  queries,
		validate: newValidator(),
		logger:   logger,
	}
}

func (s *emailConfigService) Get(ctx context.Context, ownerID uuid.UUID) (*domain.EmailConfigView, error) {
	const op = "EmailConfigService.Get"

	row, err := s.queries.GetEmailConfigurationByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Internal(err, op, "Failed to load email configuration")
	}
	view := repoEmailConfigToDomain(row).View()
	return &view, nil
}

func (s *emailConfigService) Save(ctx context.Context, params domain.SaveEmailConfigParams) (*domain.EmailConfigView, error) {
	const op = "EmailConfigService.Save"

	params.EmailAddress = strings.TrimSpace(params.EmailAddress)
	params.SMTPHost = strings.TrimSpace(params.SMTPHost)
	params.SMTPUsername = strings.TrimSpace(params.SMTPUsername)

	if err := validateStruct(s.validate, op, params); err != nil {
		return nil, err
	}

	if params.SMTPPassword == "" {
		_, err := s.queries.GetEmailConfigurationByUserID(ctx, params.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewValidationError(op, "smtpPassword", "is required")
		}
		if err != nil {
			return nil, domain.Internal(err, op, "Failed to load email configuration")
		}
	}

	row, err := s.queries.UpsertEmailConfiguration(ctx, repository.UpsertEmailConfigurationParams{
		UserID:       params.UserID,
		EmailAddress: params.EmailAddress,
		SmtpHost:     params.SMTPHost,
		SmtpPort:     int32(params.SMTPPort),
		SmtpSecure:   params.SMTPSecure,
		SmtpUsername: params.SMTPUsername,
		SmtpPassword: params.SMTPPassword,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to save email configuration")
	}

	s.logger.Info("email configuration saved",
		"user_id", params.UserID,
		"smtp_host", params.SMTPHost,
		"smtp_port", params.SMTPPort,
	)
	view := repoEmailConfigToDomain(row).View()
	return &view, nil
}
