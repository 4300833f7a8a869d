// Package email provides SMTP delivery for progress reports.
//
// Each account brings its own SMTP credentials, so unlike a single
// application mailer the transport is configured per send. Messages are built
// with gomail and delivered over a net/smtp client that applies the port-based
// TLS policy in NormalizeTransport.
package email

import (
	"context"
	"time"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Transport delivers messages using an account's SMTP configuration.
//
// Implementations:
// - SMTPTransport: dials the account's SMTP server for every call
// - test fakes in service packages
type Transport interface {
	// Send delivers msg and returns the Message-ID the message was sent with.
	Send(ctx context.Context, cfg SMTPConfig, msg Message) (string, error)

	// Verify connects and authenticates without sending anything.
	Verify(ctx context.Context, cfg SMTPConfig) error
}

// =============================================================================
// Email Data Types
// =============================================================================

// Message represents a single email message to one recipient.
type Message struct {
	To          string // Recipient email address
	ToName      string // Optional recipient display name
	Subject     string // Email subject line
	HTMLBody    string // HTML content of the email
	TextBody    string // Optional plain text alternative
	Attachments []Attachment
}

// Attachment represents a file attached to a message.
type Attachment struct {
	Filename    string // Name shown to the recipient
	ContentType string // MIME type
	Data        []byte
}

// Size returns the attachment size in bytes.
func (a Attachment) Size() int64 {
	return int64(len(a.Data))
}

// =============================================================================
// Configuration Types
// =============================================================================

// SMTPConfig holds one account's SMTP server configuration.
type SMTPConfig struct {
	Host     string // SMTP server hostname
	Port     int    // SMTP server port
	Secure   bool   // Stored secure flag (implicit TLS); see NormalizeTransport
	Username string // SMTP authentication username
	Password string // SMTP authentication password
	From     string // Sender email address
}

// Options configures the SMTP transport itself, independent of any account.
type Options struct {
	ConnectionTimeout time.Duration // Dial timeout
	SocketTimeout     time.Duration // Idle timeout for reads and writes
	HeloName          string        // Name sent in EHLO

	// AllowInsecureTLS disables certificate verification and allows TLS 1.0.
	// Some institutional mail servers still present self-signed or legacy
	// certificates; enabling this weakens transport security for every account.
	AllowInsecureTLS bool
}

// =============================================================================
// Common Constants
// =============================================================================

const (
	// DefaultTimeout is the default connection and socket timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultHeloName is sent in EHLO when none is configured.
	DefaultHeloName = "localhost"
)
