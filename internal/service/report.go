package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/email"
	"github.com/DukeRupert/progressly/internal/metrics"
	"github.com/DukeRupert/progressly/internal/report"
	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// ReportService composes progress reports and delivers them to admins.
type ReportService interface {
	// Preview renders the report exactly as Send would, without sending.
	Preview(ctx context.Context, req domain.ReportRequest) (*domain.Preview, error)

	// Send renders the report once and delivers it to every requested admin.
	// Per-recipient failures are reported in the result, not as an error.
	Send(ctx context.Context, req domain.ReportRequest) (*domain.SendResult, error)
}

// =============================================================================
// Implementation
// =============================================================================

type reportService struct {
	assembler   ReportAssembler
	attachments AttachmentLoader
	dispatcher  Dispatcher
	now         func() time.Time
	logger      *slog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	assembler ReportAssembler,
	attachments AttachmentLoader,
	dispatcher Dispatcher,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		assembler:   assembler,
		attachments: attachments,
		dispatcher:  dispatcher,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *reportService) Preview(ctx context.Context, req domain.ReportRequest) (*domain.Preview, error) {
	const op = "ReportService.Preview"

	if err := validateReportRequest(op, req); err != nil {
		return nil, err
	}

	bundle, err := s.assembler.AssemblePreview(ctx, req.UserID, req.TraineeID, req.ProjectID, req.AdminIDs)
	if err != nil {
		return nil, err
	}

	content, err := report.Render(bundle, renderOptions(req), s.now())
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to render report")
	}

	preview := &domain.Preview{
		Recipients:  make([]string, 0, len(bundle.Recipients)),
		Subject:     content.Subject,
		HTMLContent: content.HTML,
		Attachments: []domain.PreviewAttachment{},
		Trainee: domain.PreviewTrainee{
			Name:  bundle.Assignment.Trainee.Name,
			Email: bundle.Assignment.Trainee.Email,
		},
		Project: domain.PreviewProject{Name: bundle.Assignment.Project.Name},
	}
	for _, admin := range bundle.Recipients {
		preview.Recipients = append(preview.Recipients, admin.Address())
	}
	if req.IncludeFiles {
		for _, f := range bundle.Files() {
			preview.Attachments = append(preview.Attachments, domain.PreviewAttachment{
				ID:       f.ID,
				Filename: f.OriginalName,
				Size:     f.FileSize,
				Type:     f.MimeType,
			})
		}
	}
	return preview, nil
}

func (s *reportService) Send(ctx context.Context, req domain.ReportRequest) (*domain.SendResult, error) {
	const op = "ReportService.Send"

	if err := validateReportRequest(op, req); err != nil {
		return nil, err
	}

	bundle, err := s.assembler.Assemble(ctx, req.UserID, req.TraineeID, req.ProjectID, req.AdminIDs)
	if err != nil {
		return nil, err
	}

	content, err := report.Render(bundle, renderOptions(req), s.now())
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to render report")
	}

	var attachments []email.Attachment
	if req.IncludeFiles {
		attachments, err = s.attachments.Load(ctx, bundle.Files())
		if err != nil {
			return nil, err
		}
	}

	result, err := s.dispatcher.SendReport(ctx, req.UserID, content, bundle.Recipients, attachments)
	if err != nil {
		return nil, err
	}
	metrics.ReportDispatched()

	s.logger.Info("progress report sent",
		"user_id", req.UserID,
		"assignment_id", bundle.Assignment.ID,
		"sent", result.SentCount(),
		"failed", len(result.EmailResults)-result.SentCount(),
	)
	return result, nil
}

func renderOptions(req domain.ReportRequest) report.Options {
	return report.Options{
		Subject:            req.Subject,
		CustomMessage:      req.CustomMessage,
		IncludeAllProgress: req.IncludeAllProgress,
		IncludeFileList:    req.IncludeFiles,
	}
}

// validateReportRequest enforces the fields every preview and send needs.
func validateReportRequest(op string, req domain.ReportRequest) error {
	if req.TraineeID == uuid.Nil || req.ProjectID == uuid.Nil || len(req.AdminIDs) == 0 {
		return domain.Invalid(op, "Trainee ID, Project ID, and admin IDs are required")
	}
	return nil
}
