package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// =============================================================================
// SMTP Transport Implementation
// =============================================================================

// SMTPTransport sends messages over SMTP, opening a fresh connection for
// every Send and Verify call. There is no connection pooling.
type SMTPTransport struct {
	opts   Options
	logger *slog.Logger
}

// NewSMTPTransport creates a new SMTP transport.
func NewSMTPTransport(opts Options, logger *slog.Logger) *SMTPTransport {
	if opts.ConnectionTimeout <= 0 {
		opts.ConnectionTimeout = DefaultTimeout
	}
	if opts.SocketTimeout <= 0 {
		opts.SocketTimeout = DefaultTimeout
	}
	if opts.HeloName == "" {
		opts.HeloName = DefaultHeloName
	}
	if opts.AllowInsecureTLS {
		logger.Warn("SMTP certificate verification disabled; TLS 1.0 allowed for all accounts")
	}
	return &SMTPTransport{
		opts:   opts,
		logger: logger,
	}
}

// Send delivers msg through the account's SMTP server.
func (t *SMTPTransport) Send(ctx context.Context, cfg SMTPConfig, msg Message) (string, error) {
	m, messageID := BuildMessage(cfg, msg)

	sender, err := t.dial(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer sender.Close()

	if err := gomail.Send(sender, m); err != nil {
		return "", err
	}

	t.logger.Debug("smtp message accepted",
		"host", cfg.Host,
		"to", msg.To,
		"message_id", messageID,
		"attachments", len(msg.Attachments),
	)
	return messageID, nil
}

// Verify connects, negotiates TLS and authenticates, then quits.
func (t *SMTPTransport) Verify(ctx context.Context, cfg SMTPConfig) error {
	sender, err := t.dial(ctx, cfg)
	if err != nil {
		return err
	}
	return sender.Close()
}

// =============================================================================
// Message Building
// =============================================================================

// BuildMessage converts msg into a MIME message and returns it with the
// generated Message-ID.
func BuildMessage(cfg SMTPConfig, msg Message) (*gomail.Message, string) {
	m := gomail.NewMessage()
	messageID := newMessageID(cfg.From)

	m.SetHeader("From", cfg.From)
	if msg.ToName != "" {
		m.SetAddressHeader("To", msg.To, msg.ToName)
	} else {
		m.SetHeader("To", msg.To)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", messageID)
	m.SetDateHeader("Date", time.Now())

	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	for _, a := range msg.Attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.Rename(a.Filename),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		m.Attach(a.Filename, settings...)
	}

	return m, messageID
}

func newMessageID(from string) string {
	host := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		host = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), host)
}

// =============================================================================
// Connection Handling
// =============================================================================

// dial opens a connection to the account's server and applies the TLS
// policy from NormalizeTransport. The returned sender owns the connection.
func (t *SMTPTransport) dial(ctx context.Context, cfg SMTPConfig) (*smtpSender, error) {
	policy := NormalizeTransport(cfg.Port, cfg.Secure)
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	tlsConfig := t.tlsConfig(cfg.Host)

	dialCtx, cancel := context.WithTimeout(ctx, t.opts.ConnectionTimeout)
	defer cancel()

	netDialer := &net.Dialer{Timeout: t.opts.ConnectionTimeout}
	var (
		conn net.Conn
		err  error
	)
	if policy.Secure {
		tlsDialer := &tls.Dialer{NetDialer: netDialer, Config: tlsConfig}
		conn, err = tlsDialer.DialContext(dialCtx, "tcp", addr)
	} else {
		conn, err = netDialer.DialContext(dialCtx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}

	conn = &idleTimeoutConn{Conn: conn, timeout: t.opts.SocketTimeout}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp greeting: %w", err)
	}

	if err := client.Hello(t.opts.HeloName); err != nil {
		client.Close()
		return nil, fmt.Errorf("smtp hello: %w", err)
	}

	if !policy.Secure && !policy.IgnoreTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				client.Close()
				return nil, fmt.Errorf("smtp starttls: %w", err)
			}
		} else if policy.RequireTLS {
			client.Close()
			return nil, ErrStartTLSUnsupported
		}
	}

	if cfg.Username != "" {
		if err := authenticate(client, cfg, policy); err != nil {
			client.Close()
			return nil, err
		}
	}

	return &smtpSender{client: client}, nil
}

// tlsConfig returns the TLS settings for host. Certificate checks are only
// relaxed when AllowInsecureTLS is set.
func (t *SMTPTransport) tlsConfig(host string) *tls.Config {
	cfg := &tls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}
	if t.opts.AllowInsecureTLS {
		cfg.InsecureSkipVerify = true
		cfg.MinVersion = tls.VersionTLS10
	}
	return cfg
}

// ErrStartTLSUnsupported is returned when the policy requires STARTTLS but
// the server does not advertise it.
var ErrStartTLSUnsupported = errors.New("smtp: server does not support STARTTLS")

// authenticate prefers PLAIN and falls back to LOGIN, which some Exchange
// servers still require. Implicit TLS connections are encrypted even though
// smtp.Client cannot see it through idleTimeoutConn. IgnoreTLS accounts
// authenticate in the clear.
func authenticate(client *smtp.Client, cfg SMTPConfig, policy TransportOptions) error {
	ok, mechs := client.Extension("AUTH")
	if !ok {
		return fmt.Errorf("smtp auth: server does not support authentication")
	}

	allowPlaintext := policy.Secure || policy.IgnoreTLS

	var auth smtp.Auth
	switch {
	case strings.Contains(strings.ToUpper(mechs), "PLAIN"):
		auth = &plainAuth{username: cfg.Username, password: cfg.Password, allowPlaintext: allowPlaintext}
	case strings.Contains(strings.ToUpper(mechs), "LOGIN"):
		auth = &loginAuth{username: cfg.Username, password: cfg.Password, allowPlaintext: allowPlaintext}
	default:
		return fmt.Errorf("smtp auth: no supported mechanism in %q", mechs)
	}

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	return nil
}

// =============================================================================
// gomail.SendCloser adapter
// =============================================================================

// smtpSender adapts an authenticated smtp.Client to gomail.SendCloser.
type smtpSender struct {
	client *smtp.Client
}

func (s *smtpSender) Send(from string, to []string, msg io.WriterTo) error {
	if err := s.client.Mail(from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, addr := range to {
		if err := s.client.Rcpt(addr); err != nil {
			return fmt.Errorf("smtp rcpt to %s: %w", addr, err)
		}
	}
	w, err := s.client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := msg.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	return nil
}

func (s *smtpSender) Close() error {
	if err := s.client.Quit(); err != nil {
		s.client.Close()
		return err
	}
	return nil
}

var _ gomail.SendCloser = (*smtpSender)(nil)

// idleTimeoutConn extends the connection deadline before every read and
// write so a stalled server fails after timeout of inactivity.
type idleTimeoutConn struct {
	net.Conn
	timeout time.Duration
}

func (c *idleTimeoutConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

func (c *idleTimeoutConn) Write(b []byte) (int, error) {
	if err := c.Conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Write(b)
}

// plainAuth implements the PLAIN SASL mechanism.
type plainAuth struct {
	username, password string
	allowPlaintext     bool
}

func (a *plainAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if err := checkEncrypted(server, a.allowPlaintext); err != nil {
		return "", nil, err
	}
	return "PLAIN", []byte("\x00" + a.username + "\x00" + a.password), nil
}

func (a *plainAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if more {
		return nil, fmt.Errorf("unexpected server challenge %q", fromServer)
	}
	return nil, nil
}

// loginAuth implements the LOGIN SASL mechanism.
type loginAuth struct {
	username, password string
	allowPlaintext     bool
}

func (a *loginAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if err := checkEncrypted(server, a.allowPlaintext); err != nil {
		return "", nil, err
	}
	return "LOGIN", nil, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	prompt := strings.ToLower(strings.TrimSpace(string(fromServer)))
	switch {
	case strings.HasPrefix(prompt, "username"):
		return []byte(a.username), nil
	case strings.HasPrefix(prompt, "password"):
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unexpected server challenge %q", fromServer)
	}
}

// checkEncrypted refuses to send credentials over a plaintext connection to
// a remote host unless the transport policy allows it.
func checkEncrypted(server *smtp.ServerInfo, allowPlaintext bool) error {
	if allowPlaintext || server.TLS || isLocalhost(server.Name) {
		return nil
	}
	return errors.New("unencrypted connection")
}

func isLocalhost(name string) bool {
	return name == "localhost" || name == "127.0.0.1" || name == "::1"
}

var _ Transport = (*SMTPTransport)(nil)
