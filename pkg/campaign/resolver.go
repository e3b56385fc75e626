package campaign

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/mailmerge/pkg/emailaddr"
	"github.com/dmitrymomot/mailmerge/pkg/merge"
	"github.com/dmitrymomot/mailmerge/pkg/sheet"
)

// Row status values written back to the recipient tab. StatusSent is the
// only terminal value: any other status, including StatusError and
// blank, leaves the row eligible for the next run.
const (
	StatusSent  = "Sent"
	StatusError = "Error"
)

// Recipient is a read-only snapshot of one pending row. Row is the
// 1-based index into the recipient tab and stays valid for write-back as
// long as rows are not inserted or deleted mid-run.
type Recipient struct {
	Fields map[string]string
	Email  string
	Row    int
}

// Resolve scans the recipient tab and returns pending recipients in
// ascending row order. Rows with a blank or syntactically invalid email
// are skipped silently, as are rows already marked StatusSent.
func (c *Campaign) Resolve(ctx context.Context) ([]Recipient, error) {
	sh, err := c.recipientSheet(ctx)
	if err != nil {
		return nil, err
	}
	return c.resolve(ctx, sh)
}

func (c *Campaign) resolve(ctx context.Context, sh sheet.Sheet) ([]Recipient, error) {
	rows, err := sh.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read recipients: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	sc := resolveSchema(rows[0], c.cols)
	if sc.email == 0 {
		return nil, ErrMissingEmailColumn
	}

	var recipients []Recipient
	for i, row := range rows[1:] {
		email := strings.TrimSpace(cellAt(row, sc.email))
		if email == "" || !emailaddr.Valid(email) {
			continue
		}
		if sc.status != 0 && cellAt(row, sc.status) == StatusSent {
			continue
		}
		recipients = append(recipients, Recipient{
			Row:   i + 2, // +1 for the header row, +1 for 1-based indexing
			Email: email,
			Fields: map[string]string{
				merge.FieldEmail:   email,
				merge.FieldName:    cellAt(row, sc.name),
				merge.FieldMessage: cellAt(row, sc.message),
			},
		})
	}
	return recipients, nil
}

// recipientSheet opens the recipient tab, decorating a missing tab with
// a hint to run initialization first.
func (c *Campaign) recipientSheet(ctx context.Context) (sheet.Sheet, error) {
	sh, err := c.wb.Sheet(ctx, c.cfg.RecipientsSheet)
	if err != nil {
		return nil, fmt.Errorf("open recipient sheet %q (run init first): %w", c.cfg.RecipientsSheet, err)
	}
	return sh, nil
}
