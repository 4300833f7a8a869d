package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/email"
	"github.com/DukeRupert/progressly/internal/metrics"
	"github.com/DukeRupert/progressly/internal/report"
	"github.com/DukeRupert/progressly/internal/repository"
	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Dispatcher delivers messages through an account's own SMTP configuration
// and records every attempt as an EmailLog row.
type Dispatcher interface {
	// SendReport delivers content to each admin in order. A failure for one
	// recipient is recorded on its log row and never stops the loop.
	SendReport(ctx context.Context, ownerID uuid.UUID, content report.Content, admins []domain.Admin, attachments []email.Attachment) (*domain.SendResult, error)

	// SendOne creates a log row for msg and attempts delivery once.
	SendOne(ctx context.Context, ownerID uuid.UUID, adminID *uuid.UUID, msg email.Message) domain.RecipientOutcome

	// Resend attempts delivery of an existing log row again, without
	// attachments, and updates that same row. The returned error is the
	// delivery failure, if any.
	Resend(ctx context.Context, log domain.EmailLog) (domain.EmailLog, error)

	// VerifyConfiguration connects and authenticates with the stored
	// configuration and records the outcome as the configuration's test status.
	VerifyConfiguration(ctx context.Context, ownerID uuid.UUID) error

	// TestConfiguration verifies the configuration, then sends a test
	// message to the configured sender address.
	TestConfiguration(ctx context.Context, ownerID uuid.UUID) error

	// SendAdminTestEmail sends the connectivity-check email to one of the
	// owner's active admins. Returns domain.ENOTFOUND for unknown admins and
	// domain.ECONFIG when the account has no usable configuration.
	SendAdminTestEmail(ctx context.Context, ownerID, adminID uuid.UUID) (domain.RecipientOutcome, error)
}

// =============================================================================
// Implementation
// =============================================================================

type dispatcher struct {
	queries   repository.Querier
	transport email.Transport
	now       func() time.Time
	logger    *slog.Logger
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(queries repository.Querier, transport email.Transport, logger *slog.Logger) Dispatcher {
	return &dispatcher{
		queries:   queries,
		transport: transport,
		now:       time.Now,
		logger:    logger,
	}
}

func (d *dispatcher) SendReport(ctx context.Context, ownerID uuid.UUID, content report.Content, admins []domain.Admin, attachments []email.Attachment) (*domain.SendResult, error) {
	const op = "Dispatcher.SendReport"

	if len(admins) == 0 {
		return nil, domain.Errorf(domain.ENOTFOUND, op, "No valid admin recipients found")
	}

	manifest := attachmentManifest(attachments)
	result := &domain.SendResult{
		EmailResults:    make([]domain.RecipientOutcome, 0, len(admins)),
		AttachmentCount: len(attachments),
	}

	for _, admin := range admins {
		adminID := admin.ID
		msg := email.Message{
			To:          admin.Email,
			ToName:      admin.Name,
			Subject:     content.Subject,
			HTMLBody:    content.HTML,
			Attachments: attachments,
		}
		result.EmailResults = append(result.EmailResults,
			d.deliver(ctx, ownerID, &adminID, msg, manifest, metrics.KindReport))
	}

	d.logger.Info("progress report dispatched",
		"user_id", ownerID,
		"recipients", len(admins),
		"sent", result.SentCount(),
		"attachments", len(attachments),
	)
	return result, nil
}

func (d *dispatcher) SendOne(ctx context.Context, ownerID uuid.UUID, adminID *uuid.UUID, msg email.Message) domain.RecipientOutcome {
	return d.deliver(ctx, ownerID, adminID, msg, attachmentManifest(msg.Attachments), metrics.KindTest)
}

// deliver runs one attempt: Pending row, configuration, send, final status.
func (d *dispatcher) deliver(ctx context.Context, ownerID uuid.UUID, adminID *uuid.UUID, msg email.Message, manifest []domain.AttachmentInfo, kind string) domain.RecipientOutcome {
	outcome := domain.RecipientOutcome{
		AdminEmail: msg.To,
		Status:     domain.RecipientFailed,
	}
	if adminID != nil {
		outcome.AdminID = *adminID
	}

	// Bookkeeping must land even if the request is canceled mid-send.
	bg := context.WithoutCancel(ctx)

	row, err := d.queries.CreateEmailLog(bg, repository.CreateEmailLogParams{
		UserID:             ownerID,
		AdminID:            domain.ToNullUUID(adminID),
		RecipientEmail:     msg.To,
		RecipientName:      domain.ToNullString(msg.ToName),
		Subject:            msg.Subject,
		Body:               msg.HTMLBody,
		AttachmentCount:    int32(len(manifest)),
		AttachmentManifest: manifestJSON(manifest),
	})
	if err != nil {
		d.logger.Error("failed to create email log",
			"admin_id", outcome.AdminID,
			"recipient", msg.To,
			"error", err,
		)
		outcome.Error = err.Error()
		return outcome
	}
	outcome.LogID = row.ID

	messageID, sendErr := d.send(ctx, ownerID, msg, kind)
	if sendErr != nil {
		outcome.Error = sendErr.Error()
		d.logger.Warn("email delivery failed",
			"log_id", row.ID,
			"admin_id", outcome.AdminID,
			"recipient", msg.To,
			"error", sendErr,
		)
		if _, err := d.queries.MarkEmailLogFailed(bg, repository.MarkEmailLogFailedParams{
			ID:           row.ID,
			UserID:       ownerID,
			ErrorMessage: domain.ToNullString(sendErr.Error()),
		}); err != nil {
			d.logger.Error("failed to mark email log failed", "log_id", row.ID, "error", err)
		}
		return outcome
	}

	outcome.Status = domain.RecipientSent
	outcome.MessageID = messageID
	if _, err := d.queries.MarkEmailLogSent(bg, repository.MarkEmailLogSentParams{
		ID:        row.ID,
		UserID:    ownerID,
		SentAt:    sql.NullTime{Time: d.now(), Valid: true},
		MessageID: domain.ToNullString(messageID),
	}); err != nil {
		d.logger.Error("failed to mark email log sent", "log_id", row.ID, "error", err)
	}
	return outcome
}

func (d *dispatcher) Resend(ctx context.Context, log domain.EmailLog) (domain.EmailLog, error) {
	const op = "Dispatcher.Resend"

	bg := context.WithoutCancel(ctx)
	msg := email.Message{
		To:       log.RecipientEmail,
		ToName:   log.RecipientName,
		Subject:  log.Subject,
		HTMLBody: log.Body,
	}

	messageID, sendErr := d.send(ctx, log.UserID, msg, metrics.KindRetry)
	if sendErr != nil {
		d.logger.Warn("email resend failed",
			"log_id", log.ID,
			"recipient", log.RecipientEmail,
			"error", sendErr,
		)
		row, err := d.queries.MarkEmailLogFailed(bg, repository.MarkEmailLogFailedParams{
			ID:           log.ID,
			UserID:       log.UserID,
			ErrorMessage: domain.ToNullString(sendErr.Error()),
		})
		if err != nil {
			return log, domain.Internal(err, op, "Failed to update email record")
		}
		return repoEmailLogToDomain(row), sendErr
	}

	row, err := d.queries.MarkEmailLogSent(bg, repository.MarkEmailLogSentParams{
		ID:        log.ID,
		UserID:    log.UserID,
		SentAt:    sql.NullTime{Time: d.now(), Valid: true},
		MessageID: domain.ToNullString(messageID),
	})
	if err != nil {
		return log, domain.Internal(err, op, "Failed to update email record")
	}
	return repoEmailLogToDomain(row), nil
}

// send resolves the owner's configuration and hands msg to the transport.
func (d *dispatcher) send(ctx context.Context, ownerID uuid.UUID, msg email.Message, kind string) (string, error) {
	cfg, err := d.loadConfig(ctx, "Dispatcher.send", ownerID)
	if err != nil {
		return "", err
	}

	start := time.Now()
	messageID, err := d.transport.Send(ctx, smtpConfig(cfg), msg)
	if err != nil {
		metrics.EmailFailed(kind, time.Since(start))
		return "", err
	}
	metrics.EmailSent(kind, time.Since(start))
	return messageID, nil
}

func (d *dispatcher) VerifyConfiguration(ctx context.Context, ownerID uuid.UUID) error {
	const op = "Dispatcher.VerifyConfiguration"

	cfg, err := d.loadConfig(ctx, op, ownerID)
	if err != nil {
		return err
	}

	err = d.transport.Verify(ctx, smtpConfig(cfg))
	d.recordTest(ctx, ownerID, err == nil)
	if err != nil {
		return testFailure(op, "Connection test failed", err)
	}
	return nil
}

func (d *dispatcher) TestConfiguration(ctx context.Context, ownerID uuid.UUID) error {
	const op = "Dispatcher.TestConfiguration"

	cfg, err := d.loadConfig(ctx, op, ownerID)
	if err != nil {
		return err
	}
	smtpCfg := smtpConfig(cfg)

	if err := d.transport.Verify(ctx, smtpCfg); err != nil {
		d.recordTest(ctx, ownerID, false)
		return testFailure(op, "Email test failed", err)
	}

	content, err := report.ConfigTestEmail(cfg.EmailAddress, d.now())
	if err != nil {
		return domain.Internal(err, op, "Failed to render test email")
	}

	start := time.Now()
	_, err = d.transport.Send(ctx, smtpCfg, email.Message{
		To:       cfg.EmailAddress,
		Subject:  content.Subject,
		HTMLBody: content.HTML,
	})
	if err != nil {
		metrics.EmailFailed(metrics.KindTest, time.Since(start))
		d.recordTest(ctx, ownerID, false)
		return testFailure(op, "Email test failed", err)
	}
	metrics.EmailSent(metrics.KindTest, time.Since(start))
	d.recordTest(ctx, ownerID, true)
	return nil
}

func (d *dispatcher) SendAdminTestEmail(ctx context.Context, ownerID, adminID uuid.UUID) (domain.RecipientOutcome, error) {
	const op = "Dispatcher.SendAdminTestEmail"

	row, err := d.queries.GetActiveAdmin(ctx, repository.GetActiveAdminParams{ID: adminID, UserID: ownerID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.RecipientOutcome{}, domain.NotFound(op, "Admin")
		}
		return domain.RecipientOutcome{}, domain.Internal(err, op, "Failed to load admin")
	}
	admin := repoAdminToDomain(row)

	if _, err := d.loadConfig(ctx, op, ownerID); err != nil {
		return domain.RecipientOutcome{}, err
	}

	content, err := report.AdminTestEmail(admin.Name, admin.Email, d.now())
	if err != nil {
		return domain.RecipientOutcome{}, domain.Internal(err, op, "Failed to render test email")
	}

	return d.SendOne(ctx, ownerID, &admin.ID, email.Message{
		To:       admin.Email,
		ToName:   admin.Name,
		Subject:  content.Subject,
		HTMLBody: content.HTML,
	}), nil
}

// loadConfig returns the owner's configuration if it can be used to send.
func (d *dispatcher) loadConfig(ctx context.Context, op string, ownerID uuid.UUID) (*domain.EmailConfiguration, error) {
	row, err := d.queries.GetEmailConfigurationByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ConfigurationMissing(op)
		}
		return nil, domain.Internal(err, op, "Failed to load email configuration")
	}
	cfg := repoEmailConfigToDomain(row)
	if !cfg.Usable() {
		return nil, domain.ConfigurationMissing(op)
	}
	return cfg, nil
}

func (d *dispatcher) recordTest(ctx context.Context, ownerID uuid.UUID, ok bool) {
	metrics.ConfigTested(ok)

	status := domain.ConfigTestFailed
	if ok {
		status = domain.ConfigTestSuccess
	}
	err := d.queries.UpdateEmailConfigurationTestResult(context.WithoutCancel(ctx), repository.UpdateEmailConfigurationTestResultParams{
		UserID:     ownerID,
		TestStatus: string(status),
		LastTested: sql.NullTime{Time: d.now(), Valid: true},
	})
	if err != nil {
		d.logger.Error("failed to record configuration test", "user_id", ownerID, "error", err)
	}
}

func smtpConfig(cfg *domain.EmailConfiguration) email.SMTPConfig {
	return email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Secure:   cfg.SMTPSecure,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.EmailAddress,
	}
}

// testFailure builds the client-facing message for a failed configuration
// test, with a suggestion when the failure is recognized.
func testFailure(op, prefix string, err error) error {
	message := prefix + ": " + err.Error()
	if s := email.Diagnose(err).Suggestion; s != "" {
		message += " Suggestion: " + s
	}
	return domain.Wrap(err, domain.EINVALID, op, message)
}
