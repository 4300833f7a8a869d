package domain

import (
	"time"

	"github.com/google/uuid"
)

// ConfigTestStatus is the cached outcome of the last configuration test.
type ConfigTestStatus string

const (
	ConfigTestSuccess   ConfigTestStatus = "Success"
	ConfigTestFailed    ConfigTestStatus = "Failed"
	ConfigTestNotTested ConfigTestStatus = "Not Tested"
)

// EmailConfiguration is an account's SMTP credential set.
//
// SMTPPassword is populated only for the delivery path; it is never
// serialized in API responses (see EmailConfigView).
type EmailConfiguration struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	EmailAddress string
	SMTPHost     string
	SMTPPort     int
	SMTPSecure   bool
	SMTPUsername string
	SMTPPassword string
	IsConfigured bool
	LastTested   *time.Time
	TestStatus   ConfigTestStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Usable reports whether the configuration can be used to send mail.
func (c *EmailConfiguration) Usable() bool {
	return c != nil && c.IsConfigured
}

// EmailConfigView is the client-facing shape of a configuration.
type EmailConfigView struct {
	ID           uuid.UUID        `json:"id"`
	EmailAddress string           `json:"emailAddress"`
	SMTPHost     string           `json:"smtpHost"`
	SMTPPort     int              `json:"smtpPort"`
	SMTPSecure   bool             `json:"smtpSecure"`
	SMTPUsername string           `json:"smtpUsername"`
	HasPassword  bool             `json:"hasPassword"`
	IsConfigured bool             `json:"isConfigured"`
	LastTested   *time.Time       `json:"lastTested"`
	TestStatus   ConfigTestStatus `json:"testStatus"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// View strips secrets from the configuration.
func (c *EmailConfiguration) View() EmailConfigView {
	return EmailConfigView{
		ID:           c.ID,
		EmailAddress: c.EmailAddress,
		SMTPHost:     c.SMTPHost,
		SMTPPort:     c.SMTPPort,
		SMTPSecure:   c.SMTPSecure,
		SMTPUsername: c.SMTPUsername,
		HasPassword:  c.SMTPPassword != "",
		IsConfigured: c.IsConfigured,
		LastTested:   c.LastTested,
		TestStatus:   c.TestStatus,
		UpdatedAt:    c.UpdatedAt,
	}
}

// SaveEmailConfigParams contains parameters for creating or replacing an
// account's SMTP configuration. An empty SMTPPassword keeps the stored one.
type SaveEmailConfigParams struct {
	UserID       uuid.UUID `json:"-"`
	EmailAddress string    `json:"emailAddress" validate:"required,email"`
	SMTPHost     string    `json:"smtpHost" validate:"required,hostname_rfc1123|ip"`
	SMTPPort     int       `json:"smtpPort" validate:"required,min=1,max=65535"`
	SMTPSecure   bool      `json:"smtpSecure"`
	SMTPUsername string    `json:"smtpUsername" validate:"required"`
	SMTPPassword string    `json:"smtpPassword"`
}
