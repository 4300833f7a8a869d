// Package report renders progress report emails.
//
// Rendering is a pure function of its inputs: the same bundle, options and
// timestamp always produce byte-identical output. The preview and send paths
// both go through Render so what an instructor previews is exactly what the
// admins receive.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/DukeRupert/progressly/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("report").ParseFS(templateFS, "templates/*.html"))

// LatestEntryLimit is how many entries are shown when not including all.
const LatestEntryLimit = 3

// AdminTestSubject is the subject of the admin connectivity-check email.
const AdminTestSubject = "Test Email - Admin Connectivity Check"

// ConfigTestSubject is the subject of the configuration self-test email.
const ConfigTestSubject = "Test Email Configuration"

// =============================================================================
// Status Colors
// =============================================================================

// StatusColors maps progress statuses to badge colors.
var StatusColors = map[domain.ProgressStatus]string{
	domain.ProgressStatusCompleted:  "#059669", // Green
	domain.ProgressStatusInProgress: "#2563eb", // Blue
	domain.ProgressStatusBlocked:    "#dc2626", // Red
	domain.ProgressStatusOnHold:     "#d97706", // Orange
}

// DefaultStatusColor is used for unrecognized statuses.
const DefaultStatusColor = "#6b7280"

// StatusColor returns the badge color for a status.
func StatusColor(status domain.ProgressStatus) string {
	if color, ok := StatusColors[status]; ok {
		return color
	}
	return DefaultStatusColor
}

// =============================================================================
// Rendering
// =============================================================================

// Options controls what a rendered report includes.
type Options struct {
	Subject            string // Overrides the default subject when non-blank
	CustomMessage      string // Highlighted block when non-blank
	IncludeAllProgress bool   // Otherwise only the latest three entries
	IncludeFileList    bool   // List attached file names per entry
}

// Content is a rendered email.
type Content struct {
	Subject string
	HTML    string
}

type reportView struct {
	Subject         string
	AssignmentCode  string
	TraineeName     string
	TraineeEmail    string
	ProjectName     string
	DifficultyLevel string
	BatchNumber     string
	CustomMessage   string
	Scope           string
	Entries         []entryView
	GeneratedAt     string
}

type entryView struct {
	Title         string
	Status        string
	StatusColor   string
	Description   string
	StartDate     string
	EndDate       string
	HasCompletion bool
	Completion    int
	HoursWorked   string
	Milestones    string
	NextSteps     string
	Blockers      string
	Files         []string
}

// Render turns an assembled bundle into an email subject and HTML body.
// Entries must already be ordered newest-first.
func Render(bundle *domain.ReportBundle, opts Options, generatedAt time.Time) (Content, error) {
	a := bundle.Assignment

	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		subject = domain.DefaultReportSubject(a.Trainee.Name, a.Project.Name)
	}

	entries := bundle.ProgressEntries
	scope := "All"
	if !opts.IncludeAllProgress {
		scope = "Latest 3"
		if len(entries) > LatestEntryLimit {
			entries = entries[:LatestEntryLimit]
		}
	}

	view := reportView{
		Subject:         subject,
		AssignmentCode:  a.AssignmentCode,
		TraineeName:     a.Trainee.Name,
		TraineeEmail:    a.Trainee.Email,
		ProjectName:     a.Project.Name,
		DifficultyLevel: orNA(string(a.Project.DifficultyLevel)),
		BatchNumber:     orNA(a.Trainee.BatchNumber),
		CustomMessage:   strings.TrimSpace(opts.CustomMessage),
		Scope:           scope,
		Entries:         make([]entryView, 0, len(entries)),
		GeneratedAt:     formatTimestamp(generatedAt),
	}
	for _, e := range entries {
		view.Entries = append(view.Entries, newEntryView(e, opts.IncludeFileList))
	}

	html, err := execute("progress_report", view)
	if err != nil {
		return Content{}, err
	}
	return Content{Subject: subject, HTML: html}, nil
}

// AdminTestEmail renders the fixed connectivity-check email sent to one admin.
func AdminTestEmail(name, address string, sentAt time.Time) (Content, error) {
	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}
	html, err := execute("admin_test", map[string]string{
		"Name":   name,
		"Email":  address,
		"SentAt": formatTimestamp(sentAt),
	})
	if err != nil {
		return Content{}, err
	}
	return Content{Subject: AdminTestSubject, HTML: html}, nil
}

// ConfigTestEmail renders the message an account sends to itself when
// testing its SMTP configuration.
func ConfigTestEmail(address string, sentAt time.Time) (Content, error) {
	html, err := execute("config_test", map[string]string{
		"Address": address,
		"SentAt":  formatTimestamp(sentAt),
	})
	if err != nil {
		return Content{}, err
	}
	return Content{Subject: ConfigTestSubject, HTML: html}, nil
}

func newEntryView(e domain.ProgressEntry, includeFiles bool) entryView {
	v := entryView{
		Title:       e.Title,
		Status:      string(e.CurrentStatus),
		StatusColor: StatusColor(e.CurrentStatus),
		Description: strings.TrimSpace(e.Description),
		StartDate:   formatDate(e.StartDate),
		EndDate:     formatDate(e.EndDate),
		Milestones:  strings.TrimSpace(e.MilestonesAchieved),
		NextSteps:   strings.TrimSpace(e.NextSteps),
		Blockers:    strings.TrimSpace(e.Blockers),
	}
	if e.CompletionPercentage != nil {
		v.HasCompletion = true
		v.Completion = ClampPercent(*e.CompletionPercentage)
	}
	if e.HoursWorked != nil {
		v.HoursWorked = strconv.FormatFloat(*e.HoursWorked, 'f', -1, 64)
	}
	if includeFiles {
		for _, f := range e.Files {
			v.Files = append(v.Files, f.OriginalName)
		}
	}
	return v
}

// ClampPercent bounds p to [0, 100].
func ClampPercent(p int) int {
	return min(max(p, 0), 100)
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006 3:04 PM UTC")
}
