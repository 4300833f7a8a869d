package service

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DukeRupert/progressly/internal/repository"
	"github.com/DukeRupert/progressly/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// scenario is one instructor account with an active Aastha / Aahaar CMS
// assignment, two admins and a working SMTP configuration.
type scenario struct {
	q         *fakeQuerier
	store     *storage.LocalStorage
	ownerID   uuid.UUID
	traineeID uuid.UUID
	projectID uuid.UUID
	assignID  uuid.UUID
	lead      repository.Admin
	ops       repository.Admin
	entryIDs  []uuid.UUID
}

func newScenario(t *testing.T) *scenario {
	t.Helper()

	store, err := storage.NewLocalStorage(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/uploads",
	}, testLogger())
	require.NoError(t, err)

	s := &scenario{
		q:         newFakeQuerier(),
		store:     store,
		ownerID:   uuid.New(),
		traineeID: uuid.New(),
		projectID: uuid.New(),
		assignID:  uuid.New(),
	}

	s.q.users[s.ownerID] = repository.User{
		ID: s.ownerID, Name: "Instructor", Email: "instructor@academy.example", IsActive: true,
	}
	s.q.assignments = append(s.q.assignments, repository.GetActiveAssignmentForReportRow{
		ID:                     s.assignID,
		UserID:                 s.ownerID,
		ProjectID:              s.projectID,
		TraineeID:              s.traineeID,
		AssignmentCode:         "ASG-2026-001",
		Status:                 "In Progress",
		ProgressType:           "Individual",
		IsActive:               true,
		TraineeName:            "Aastha",
		TraineeEmail:           "aastha@academy.example",
		TraineeBatchNumber:     sql.NullString{String: "B-12", Valid: true},
		ProjectName:            "Aahaar CMS",
		ProjectDifficultyLevel: sql.NullString{String: "Intermediate", Valid: true},
	})

	s.lead = repository.Admin{ID: uuid.New(), UserID: s.ownerID, Name: "Lead Admin", Email: "lead@academy.example", IsActive: true}
	s.ops = repository.Admin{ID: uuid.New(), UserID: s.ownerID, Name: "Ops Admin", Email: "ops@academy.example", IsActive: true}
	s.q.admins = append(s.q.admins, s.lead, s.ops)

	s.q.configs[s.ownerID] = repository.EmailConfiguration{
		ID:           uuid.New(),
		UserID:       s.ownerID,
		EmailAddress: "reports@academy.example",
		SmtpHost:     "smtp.academy.example",
		SmtpPort:     587,
		SmtpUsername: "reports@academy.example",
		SmtpPassword: "app-password",
		IsConfigured: true,
		TestStatus:   "Not Tested",
	}
	return s
}

// addEntry appends an entry older than the ones already added.
func (s *scenario) addEntry(title, status string) uuid.UUID {
	id := uuid.New()
	s.q.entries[s.assignID] = append(s.q.entries[s.assignID], repository.ProgressEntry{
		ID:            id,
		AssignmentID:  s.assignID,
		Title:         title,
		CurrentStatus: status,
		CreatedAt:     testNow.Add(-time.Duration(len(s.q.entries[s.assignID])) * time.Hour),
	})
	s.entryIDs = append(s.entryIDs, id)
	return id
}

// addFile stores data and attaches it to an entry. store=false leaves the
// row without bytes behind it.
func (s *scenario) addFile(t *testing.T, entryID uuid.UUID, name string, data []byte, store bool) repository.File {
	t.Helper()
	key := storage.ProgressFileKey(s.ownerID, entryID, name)
	if store {
		require.NoError(t, s.store.Put(context.Background(), key, bytes.NewReader(data), storage.PutOptions{Overwrite: true}))
	}
	f := repository.File{
		ID:              uuid.New(),
		ProgressEntryID: entryID,
		OriginalName:    name,
		FileName:        name,
		FilePath:        key,
		FileSize:        int64(len(data)),
		MimeType:        "text/plain",
		UploadDate:      testNow,
	}
	s.q.files = append(s.q.files, f)
	return f
}

func (s *scenario) dispatcher(transport *fakeTransport) *dispatcher {
	return &dispatcher{
		queries:   s.q,
		transport: transport,
		now:       fixedClock,
		logger:    testLogger(),
	}
}

func (s *scenario) reportService(transport *fakeTransport) *reportService {
	return &reportService{
		assembler:   NewReportAssembler(s.q, testLogger()),
		attachments: NewAttachmentLoader(s.store, testLogger()),
		dispatcher:  s.dispatcher(transport),
		now:         fixedClock,
		logger:      testLogger(),
	}
}

func (s *scenario) historyService(transport *fakeTransport) *historyService {
	return &historyService{
		queries:    s.q,
		dispatcher: s.dispatcher(transport),
		now:        fixedClock,
		logger:     testLogger(),
	}
}
