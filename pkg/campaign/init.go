package campaign

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/mailmerge/pkg/sheet"
)

// Init creates the recipient and template tabs when absent. Existing
// tabs are never modified, so Init is safe to re-run.
func (c *Campaign) Init(ctx context.Context) error {
	if err := c.initRecipients(ctx); err != nil {
		return err
	}
	return c.initTemplate(ctx)
}

func (c *Campaign) initRecipients(ctx context.Context) error {
	_, err := c.wb.Sheet(ctx, c.cfg.RecipientsSheet)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sheet.ErrSheetNotFound) {
		return fmt.Errorf("open recipient sheet %q: %w", c.cfg.RecipientsSheet, err)
	}

	sh, err := c.wb.CreateSheet(ctx, c.cfg.RecipientsSheet)
	if err != nil {
		return fmt.Errorf("create recipient sheet %q: %w", c.cfg.RecipientsSheet, err)
	}

	rows := [][]string{
		{c.cols.Email, c.cols.Name, c.cols.Message, c.cols.Status, c.cols.SentDate},
		{"example1@email.com", "John", "Your recent video really impressed me"},
		{"example2@email.com", "Jane", "Your recent project is outstanding"},
		{"example3@email.com", "", ""}, // blank fields exercise the defaults
	}
	for i, row := range rows {
		for j, v := range row {
			if v == "" {
				continue
			}
			if err := sh.SetCell(ctx, i+1, j+1, v); err != nil {
				return fmt.Errorf("seed recipient sheet: %w", err)
			}
		}
	}
	return nil
}

func (c *Campaign) initTemplate(ctx context.Context) error {
	_, err := c.wb.Sheet(ctx, c.cfg.TemplateSheet)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sheet.ErrSheetNotFound) {
		return fmt.Errorf("open template sheet %q: %w", c.cfg.TemplateSheet, err)
	}

	sh, err := c.wb.CreateSheet(ctx, c.cfg.TemplateSheet)
	if err != nil {
		return fmt.Errorf("create template sheet %q: %w", c.cfg.TemplateSheet, err)
	}

	cells := []struct {
		ref   cellRef
		value string
	}{
		{cellRef{row: 1, col: 1}, "Email Template Settings"},
		{cellRef{row: subjectCell.row, col: 1}, "Subject"},
		{subjectCell, DefaultSubject},
		{cellRef{row: 5, col: 1}, "Body Template"},
		{bodyCell, DefaultBody},
		{cellRef{row: 11, col: 1}, "Default Values"},
		{cellRef{row: defaultNameCell.row, col: 1}, "Default Greeting (used when name is empty)"},
		{defaultNameCell, DefaultName},
		{cellRef{row: defaultMessageCell.row, col: 1}, "Default Message (used when message is empty)"},
		{defaultMessageCell, DefaultMessage},
	}
	for _, cell := range cells {
		if err := sh.SetCell(ctx, cell.ref.row, cell.ref.col, cell.value); err != nil {
			return fmt.Errorf("seed template sheet: %w", err)
		}
	}
	return nil
}
