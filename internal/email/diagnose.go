package email

import (
	"crypto/tls"
	"errors"
	"net"
	"net/textproto"
	"strings"
)

// Failure classes reported by Diagnose.
const (
	FailureTLS        = "tls"
	FailureAuth       = "auth"
	FailureConnection = "connection"
	FailureUnknown    = "unknown"
)

// Diagnosis is a human-oriented explanation of a transport failure.
type Diagnosis struct {
	Class      string
	Suggestion string
}

// Diagnose classifies a transport error and suggests a fix.
func Diagnose(err error) Diagnosis {
	if err == nil {
		return Diagnosis{}
	}
	msg := strings.ToLower(err.Error())

	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) ||
		errors.Is(err, ErrStartTLSUnsupported) ||
		strings.Contains(msg, "wrong version number") ||
		strings.Contains(msg, "first record does not look like a tls handshake") ||
		strings.Contains(msg, "tls:") {
		return Diagnosis{
			Class:      FailureTLS,
			Suggestion: "TLS/SSL mismatch. Try port 587 with STARTTLS, or port 465 with SSL enabled.",
		}
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) && (protoErr.Code == 530 || protoErr.Code == 534 || protoErr.Code == 535) ||
		strings.Contains(msg, "smtp auth") {
		return Diagnosis{
			Class:      FailureAuth,
			Suggestion: "Authentication failed. Check your username and password (some providers require an app password).",
		}
	}

	var netErr net.Error
	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.As(err, &netErr) || strings.Contains(msg, "connect ") {
		return Diagnosis{
			Class:      FailureConnection,
			Suggestion: "Connection failed. Check the SMTP host and port.",
		}
	}

	return Diagnosis{Class: FailureUnknown}
}
