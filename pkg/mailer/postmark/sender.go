// Package postmark provides a mailer.Sender backed by Postmark's transactional API.
package postmark

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

// Sender implements mailer.Sender using the Postmark API.
type Sender struct {
	client *postmark.Client
	config Config
}

// New creates a new Postmark sender. Both tokens are required for runtime
// operation; this fails fast instead of letting a half-configured sender
// reach the send loop.
func New(cfg Config) (*Sender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: ServerToken is required", mailer.ErrInvalidConfig)
	}
	if cfg.AccountToken == "" {
		return nil, fmt.Errorf("%w: AccountToken is required", mailer.ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", mailer.ErrInvalidConfig)
	}

	return &Sender{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		config: cfg,
	}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	from := email.From
	if from == "" {
		from = mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     from,
		ReplyTo:  email.ReplyTo,
		To:       strings.Join(email.To, ","),
		Subject:  email.Subject,
		TextBody: email.Text,
		HTMLBody: email.HTML,
	})
	if err != nil {
		return errors.Join(mailer.ErrSendFailed, fmt.Errorf("postmark: %w", err))
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			mailer.ErrSendFailed,
			fmt.Errorf("postmark: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
