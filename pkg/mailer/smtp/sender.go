// Package smtp provides a mailer.Sender speaking plain SMTP.
//
// Supports STARTTLS, implicit TLS, and unencrypted connections. Useful
// for self-hosted relays and local development catch-all servers.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

// Sender implements mailer.Sender over SMTP.
type Sender struct {
	config Config
	auth   smtp.Auth
}

// New creates an SMTP sender. All fields are required so that a
// misconfigured transport fails at startup, not mid-campaign.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", mailer.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", mailer.ErrInvalidConfig)
	}
	if cfg.TLSMode != "starttls" && cfg.TLSMode != "tls" && cfg.TLSMode != "plain" {
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", mailer.ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", mailer.ErrInvalidConfig)
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &Sender{config: cfg, auth: auth}, nil
}

// Send implements mailer.Sender. net/smtp does not take a context, so
// cancellation is only checked before the transaction starts.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(mailer.ErrSendFailed, err)
	}
	if err := email.Validate(); err != nil {
		return err
	}

	message := s.buildMessage(email)
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	var err error
	switch s.config.TLSMode {
	case "tls":
		err = s.sendWithTLS(addr, email.To, message)
	case "starttls":
		err = s.sendWithSTARTTLS(addr, email.To, message)
	case "plain":
		err = s.sendPlain(addr, email.To, message)
	}
	if err != nil {
		return errors.Join(mailer.ErrSendFailed, err)
	}
	return nil
}

// buildMessage creates the MIME-formatted message. When both parts are
// present the HTML part wins; bulk campaigns default to plain text.
func (s *Sender) buildMessage(email *mailer.Email) []byte {
	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	contentType := "text/plain; charset=\"UTF-8\""
	body := email.Text
	if email.HTML != "" {
		contentType = "text/html; charset=\"UTF-8\""
		body = email.HTML
	}

	var b strings.Builder
	writeHeader := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}

	writeHeader("From", from)
	writeHeader("To", strings.Join(email.To, ", "))
	if email.ReplyTo != "" {
		writeHeader("Reply-To", email.ReplyTo)
	}
	writeHeader("Subject", email.Subject)
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", contentType)
	writeHeader("Date", time.Now().Format(time.RFC1123Z))
	writeHeader("Message-ID", fmt.Sprintf("<%d@%s>", time.Now().UnixNano(), s.config.Host))
	for k, v := range email.Headers {
		writeHeader(k, v)
	}
	b.WriteString("\r\n")
	b.WriteString(body)

	return []byte(b.String())
}

func (s *Sender) sendWithTLS(addr string, to []string, message []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("connect with tls: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return s.transact(client, to, message)
}

func (s *Sender) sendWithSTARTTLS(addr string, to []string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.StartTLS(&tls.Config{ServerName: s.config.Host}); err != nil {
		return fmt.Errorf("start tls: %w", err)
	}
	return s.transact(client, to, message)
}

func (s *Sender) sendPlain(addr string, to []string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = client.Close() }()

	return s.transact(client, to, message)
}

func (s *Sender) transact(client *smtp.Client, to []string, message []byte) error {
	if s.auth != nil {
		if err := client.Auth(s.auth); err != nil {
			return fmt.Errorf("authenticate: %w", err)
		}
	}
	if err := client.Mail(s.config.SenderEmail); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("open data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		_ = w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data writer: %w", err)
	}

	// Quit errors are non-fatal: some servers drop the connection right
	// after DATA even though the message was accepted.
	_ = client.Quit()
	return nil
}
