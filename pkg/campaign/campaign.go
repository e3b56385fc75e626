package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/merge"
	"github.com/dmitrymomot/mailmerge/pkg/sheet"
)

// Identity supplies the operator's own address for self tests.
type Identity interface {
	CurrentUserEmail(ctx context.Context) (string, error)
}

// StaticIdentity adapts a fixed address to Identity.
type StaticIdentity string

// CurrentUserEmail implements Identity.
func (s StaticIdentity) CurrentUserEmail(context.Context) (string, error) {
	return string(s), nil
}

// Campaign binds a workbook, a mail transport, and the run configuration.
type Campaign struct {
	wb       sheet.Workbook
	sender   mailer.Sender
	html     *mailer.Renderer
	identity Identity
	tmpl     *Template
	log      *slog.Logger
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	cfg      Config
	cols     Columns
}

// New creates a campaign over the given workbook and transport.
func New(wb sheet.Workbook, sender mailer.Sender, cfg Config, opts ...Option) *Campaign {
	c := &Campaign{
		wb:     wb,
		sender: sender,
		cfg:    cfg.normalized(),
		cols:   DefaultColumns(),
		log:    logger.NewNope(),
		now:    time.Now,
		sleep:  sleepContext,
	}
	if c.cfg.HTMLBody {
		c.html = mailer.NewRenderer()
	}
	if c.cfg.OperatorEmail != "" {
		c.identity = StaticIdentity(c.cfg.OperatorEmail)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send runs the campaign: resolve pending recipients, render each
// message, deliver it, and write the row status back. With testMode set
// only the first pending recipient is processed.
//
// A returned error means nothing was attempted (missing tab, missing
// email column, no pending recipients) or that the run aborted on a
// sheet write failure. Per-recipient transport failures never abort the
// run; they are reported through Result.Failed and Result.Errors.
func (c *Campaign) Send(ctx context.Context, testMode bool) (*Result, error) {
	sh, err := c.recipientSheet(ctx)
	if err != nil {
		return nil, err
	}
	recipients, err := c.resolve(ctx, sh)
	if err != nil {
		return nil, err
	}
	tmpl, err := c.Template(ctx)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	statusCol, dateCol, err := c.ensureStatusColumns(ctx, sh)
	if err != nil {
		return nil, err
	}

	if testMode {
		recipients = recipients[:1]
	}

	res := &Result{BatchID: uuid.New(), TestMode: testMode}
	log := c.log.With(
		slog.String("batch_id", res.BatchID.String()),
		slog.Bool("test_mode", testMode),
	)
	log.InfoContext(ctx, "send run started", slog.Int("pending", len(recipients)))

	for i, r := range recipients {
		if i > 0 {
			if err := c.sleep(ctx, c.cfg.SendDelay); err != nil {
				return res, fmt.Errorf("send run interrupted: %w", err)
			}
		}

		if err := c.deliver(ctx, tmpl, r); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", r.Email, err))
			log.ErrorContext(ctx, "delivery failed",
				slog.Int("row", r.Row),
				slog.String("email", r.Email),
				slog.Any("error", err),
			)
			if werr := c.markFailed(ctx, sh, r.Row, statusCol); werr != nil {
				return res, werr
			}
			continue
		}

		res.Sent++
		log.InfoContext(ctx, "delivered",
			slog.Int("row", r.Row),
			slog.String("email", r.Email),
		)
		if werr := c.markSent(ctx, sh, r.Row, statusCol, dateCol); werr != nil {
			return res, werr
		}
	}

	log.InfoContext(ctx, "send run finished",
		slog.Int("sent", res.Sent),
		slog.Int("failed", res.Failed),
	)
	return res, nil
}

// SendSelfTest renders the current template for a synthetic recipient
// and sends it to the operator's own address with a " [TEST]" subject
// suffix. The recipient tab is never touched.
func (c *Campaign) SendSelfTest(ctx context.Context) (string, error) {
	if c.identity == nil {
		return "", ErrNoIdentity
	}
	to, err := c.identity.CurrentUserEmail(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve operator email: %w", err)
	}
	if to == "" {
		return "", ErrNoIdentity
	}

	tmpl, err := c.Template(ctx)
	if err != nil {
		return "", err
	}

	fields := map[string]string{
		merge.FieldEmail:   to,
		merge.FieldName:    "Test User",
		merge.FieldMessage: "This is a test email. Please verify the content before actual sending.",
	}
	subject := merge.Render(tmpl.Subject, fields, tmpl.Defaults) + " [TEST]"
	if err := c.send(ctx, subject, merge.Render(tmpl.Body, fields, tmpl.Defaults), to); err != nil {
		return "", err
	}
	return to, nil
}

func (c *Campaign) deliver(ctx context.Context, tmpl Template, r Recipient) error {
	subject := merge.Render(tmpl.Subject, r.Fields, tmpl.Defaults)
	body := merge.Render(tmpl.Body, r.Fields, tmpl.Defaults)
	return c.send(ctx, subject, body, r.Email)
}

func (c *Campaign) send(ctx context.Context, subject, body, to string) error {
	email := &mailer.Email{
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}
	if c.html != nil {
		html, err := c.html.HTML(body)
		if err != nil {
			return err
		}
		email.HTML = html
	}
	return c.sender.Send(ctx, email)
}

// ensureStatusColumns locates the status and sent-date columns,
// appending them by header name when missing. Repeated calls find the
// existing columns and never duplicate them.
func (c *Campaign) ensureStatusColumns(ctx context.Context, sh sheet.Sheet) (statusCol, dateCol int, err error) {
	rows, err := sh.Rows(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("read recipient header: %w", err)
	}
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	sc := resolveSchema(header, c.cols)

	statusCol = sc.status
	if statusCol == 0 {
		if statusCol, err = sh.AppendColumn(ctx, c.cols.Status); err != nil {
			return 0, 0, fmt.Errorf("append status column: %w", err)
		}
	}
	dateCol = sc.sentDate
	if dateCol == 0 {
		if dateCol, err = sh.AppendColumn(ctx, c.cols.SentDate); err != nil {
			return 0, 0, fmt.Errorf("append sent-date column: %w", err)
		}
	}
	return statusCol, dateCol, nil
}

func (c *Campaign) markSent(ctx context.Context, sh sheet.Sheet, row, statusCol, dateCol int) error {
	if err := sh.SetCell(ctx, row, statusCol, StatusSent); err != nil {
		return fmt.Errorf("mark row %d sent: %w", row, err)
	}
	if err := sh.SetCell(ctx, row, dateCol, c.now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("stamp row %d sent date: %w", row, err)
	}
	if err := sh.SetRowColor(ctx, row, sheet.ColorSuccess); err != nil {
		return fmt.Errorf("highlight row %d: %w", row, err)
	}
	return nil
}

func (c *Campaign) markFailed(ctx context.Context, sh sheet.Sheet, row, statusCol int) error {
	if err := sh.SetCell(ctx, row, statusCol, StatusError); err != nil {
		return fmt.Errorf("mark row %d failed: %w", row, err)
	}
	if err := sh.SetRowColor(ctx, row, sheet.ColorFailure); err != nil {
		return fmt.Errorf("highlight row %d: %w", row, err)
	}
	return nil
}

// sleepContext pauses for d or until the context is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
