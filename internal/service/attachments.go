package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/email"
	"github.com/DukeRupert/progressly/internal/storage"
)

// AttachmentLoader reads progress entry files from object storage.
type AttachmentLoader interface {
	// Load returns the stored files as email attachments, in order.
	// Files missing from storage are skipped. Other storage errors abort.
	Load(ctx context.Context, files []domain.File) ([]email.Attachment, error)
}

type attachmentLoader struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewAttachmentLoader creates a new AttachmentLoader.
func NewAttachmentLoader(store storage.Storage, logger *slog.Logger) AttachmentLoader {
	return &attachmentLoader{
		storage: store,
		logger:  logger,
	}
}

func (l *attachmentLoader) Load(ctx context.Context, files []domain.File) ([]email.Attachment, error) {
	const op = "AttachmentLoader.Load"

	attachments := make([]email.Attachment, 0, len(files))
	for _, f := range files {
		data, err := l.read(ctx, f.FilePath)
		if err != nil {
			if storage.IsNotFound(err) {
				l.logger.Warn("attachment missing from storage",
					"file_id", f.ID,
					"path", f.FilePath,
				)
				continue
			}
			return nil, domain.Internal(err, op, "Failed to read attachment")
		}

		attachments = append(attachments, email.Attachment{
			Filename:    f.OriginalName,
			ContentType: storage.DetectContentType(f.MimeType, f.OriginalName, bytes.NewReader(data)),
			Data:        data,
		})
	}
	return attachments, nil
}

func (l *attachmentLoader) read(ctx context.Context, key string) ([]byte, error) {
	rc, _, err := l.storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// attachmentManifest records the metadata of attachments for an EmailLog.
func attachmentManifest(attachments []email.Attachment) []domain.AttachmentInfo {
	manifest := make([]domain.AttachmentInfo, 0, len(attachments))
	for _, a := range attachments {
		manifest = append(manifest, domain.AttachmentInfo{
			Filename:    a.Filename,
			Size:        a.Size(),
			ContentType: a.ContentType,
		})
	}
	return manifest
}
