package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/DukeRupert/progressly/internal/domain"
	"github.com/DukeRupert/progressly/internal/repository"
	"github.com/google/uuid"
)

// ReportAssembler gathers everything a progress report needs in one pass.
type ReportAssembler interface {
	// Assemble loads the active assignment for (owner, trainee, project),
	// its entries newest-first with files, and the requested active admins.
	// Returns domain.ENOTFOUND when the assignment is missing or no
	// requested admin is an active admin of the owner.
	Assemble(ctx context.Context, ownerID, traineeID, projectID uuid.UUID, adminIDs []uuid.UUID) (*domain.ReportBundle, error)

	// AssemblePreview is Assemble without the non-empty recipient rule.
	AssemblePreview(ctx context.Context, ownerID, traineeID, projectID uuid.UUID, adminIDs []uuid.UUID) (*domain.ReportBundle, error)
}

type reportAssembler struct {
	queries repository.Querier
	logger  *slog.Logger
}

// NewReportAssembler creates a new ReportAssembler.
func NewReportAssembler(queries repository.Querier, logger *slog.Logger) ReportAssembler {
	return &reportAssembler{
		queries: queries,
		logger:  logger,
	}
}

func (a *reportAssembler) Assemble(ctx context.Context, ownerID, traineeID, projectID uuid.UUID, adminIDs []uuid.UUID) (*domain.ReportBundle, error) {
	const op = "ReportAssembler.Assemble"

	bundle, err := a.assemble(ctx, op, ownerID, traineeID, projectID, adminIDs)
	if err != nil {
		return nil, err
	}
	if len(bundle.Recipients) == 0 {
		return nil, domain.Errorf(domain.ENOTFOUND, op, "No valid admin recipients found")
	}
	return bundle, nil
}

func (a *reportAssembler) AssemblePreview(ctx context.Context, ownerID, traineeID, projectID uuid.UUID, adminIDs []uuid.UUID) (*domain.ReportBundle, error) {
	return a.assemble(ctx, "ReportAssembler.AssemblePreview", ownerID, traineeID, projectID, adminIDs)
}

func (a *reportAssembler) assemble(ctx context.Context, op string, ownerID, traineeID, projectID uuid.UUID, adminIDs []uuid.UUID) (*domain.ReportBundle, error) {
	row, err := a.queries.GetActiveAssignmentForReport(ctx, repository.GetActiveAssignmentForReportParams{
		UserID:    ownerID,
		TraineeID: traineeID,
		ProjectID: projectID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "Assignment")
		}
		return nil, domain.Internal(err, op, "Failed to load assignment")
	}

	entries, err := a.loadEntries(ctx, row.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to load progress entries")
	}

	recipients, err := a.loadRecipients(ctx, ownerID, adminIDs)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to load admins")
	}

	a.logger.Debug("assembled report bundle",
		"assignment_id", row.ID,
		"entries", len(entries),
		"recipients", len(recipients),
	)

	return &domain.ReportBundle{
		Assignment:      repoAssignmentRowToDomain(row),
		ProgressEntries: entries,
		Recipients:      recipients,
	}, nil
}

// loadEntries returns entries newest-first with their files attached in
// upload order, using one query for all files.
func (a *reportAssembler) loadEntries(ctx context.Context, assignmentID uuid.UUID) ([]domain.ProgressEntry, error) {
	rows, err := a.queries.ListProgressEntriesByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ProgressEntry, 0, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for i, r := range rows {
		entries = append(entries, repoProgressEntryToDomain(r))
		ids = append(ids, r.ID)
		index[r.ID] = i
	}
	if len(ids) == 0 {
		return entries, nil
	}

	files, err := a.queries.ListFilesByProgressEntryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if i, ok := index[f.ProgressEntryID]; ok {
			entries[i].Files = append(entries[i].Files, repoFileToDomain(f))
		}
	}
	return entries, nil
}

// loadRecipients returns the owner's active admins among adminIDs in the
// caller's order. Unknown, inactive, foreign and duplicate ids are dropped.
func (a *reportAssembler) loadRecipients(ctx context.Context, ownerID uuid.UUID, adminIDs []uuid.UUID) ([]domain.Admin, error) {
	if len(adminIDs) == 0 {
		return []domain.Admin{}, nil
	}

	rows, err := a.queries.ListActiveAdminsByIDs(ctx, repository.ListActiveAdminsByIDsParams{
		UserID: ownerID,
		Ids:    adminIDs,
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]repository.Admin, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}

	recipients := make([]domain.Admin, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(adminIDs))
	for _, id := range adminIDs {
		r, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		recipients = append(recipients, repoAdminToDomain(r))
	}
	return recipients, nil
}
