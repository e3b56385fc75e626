package campaign

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailmerge/pkg/merge"
	"github.com/dmitrymomot/mailmerge/pkg/sheet"
)

// Built-in template fallbacks, applied per field when the template tab
// is missing or a cell is empty.
const (
	DefaultSubject = "Hello"
	DefaultName    = "Sir/Madam"
	DefaultMessage = "This is a test email"
)

// DefaultBody is the built-in body template.
const DefaultBody = "Dear {{greeting_first_name}},\n\n{{message}}\n\nBest regards"

// Fixed cell locations in the template tab. The tab is a small settings
// form, not a data table, so fields live at well-known addresses.
var (
	subjectCell        = cellRef{row: 3, col: 2}
	bodyCell           = cellRef{row: 6, col: 1}
	defaultNameCell    = cellRef{row: 13, col: 2}
	defaultMessageCell = cellRef{row: 14, col: 2}
)

type cellRef struct{ row, col int }

// Template is the subject/body pair plus template-level defaults.
type Template struct {
	Subject  string
	Body     string
	Defaults merge.Defaults
}

// DefaultTemplate returns the built-in template.
func DefaultTemplate() Template {
	return Template{
		Subject:  DefaultSubject,
		Body:     DefaultBody,
		Defaults: merge.Defaults{Name: DefaultName, Message: DefaultMessage},
	}
}

// Template loads the current template from the workbook. A missing
// template tab or an empty cell falls back to the built-in defaults.
// The body is not validated here: unknown or malformed tokens surface at
// render time, never as load errors.
func (c *Campaign) Template(ctx context.Context) (Template, error) {
	if c.tmpl != nil {
		return *c.tmpl, nil
	}

	sh, err := c.wb.Sheet(ctx, c.cfg.TemplateSheet)
	if errors.Is(err, sheet.ErrSheetNotFound) {
		return DefaultTemplate(), nil
	}
	if err != nil {
		return Template{}, fmt.Errorf("open template sheet %q: %w", c.cfg.TemplateSheet, err)
	}

	read := func(ref cellRef, fallback string) (string, error) {
		v, err := sh.Cell(ctx, ref.row, ref.col)
		if err != nil {
			return "", fmt.Errorf("read template cell (%d,%d): %w", ref.row, ref.col, err)
		}
		if v == "" {
			return fallback, nil
		}
		return v, nil
	}

	var tmpl Template
	if tmpl.Subject, err = read(subjectCell, DefaultSubject); err != nil {
		return Template{}, err
	}
	if tmpl.Body, err = read(bodyCell, DefaultBody); err != nil {
		return Template{}, err
	}
	if tmpl.Defaults.Name, err = read(defaultNameCell, DefaultName); err != nil {
		return Template{}, err
	}
	if tmpl.Defaults.Message, err = read(defaultMessageCell, DefaultMessage); err != nil {
		return Template{}, err
	}
	return tmpl, nil
}

// fileTemplate mirrors the on-disk template file layout.
type fileTemplate struct {
	Subject        string `yaml:"subject"`
	Body           string `yaml:"body"`
	DefaultName    string `yaml:"default_name"`
	DefaultMessage string `yaml:"default_message"`
}

// LoadTemplateFile reads a YAML template file. Empty fields fall back to
// the built-in defaults, mirroring the template tab behavior.
func LoadTemplateFile(path string) (Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("read template file: %w", err)
	}

	var ft fileTemplate
	if err := yaml.Unmarshal(raw, &ft); err != nil {
		return Template{}, fmt.Errorf("parse template file %s: %w", path, err)
	}

	tmpl := DefaultTemplate()
	if ft.Subject != "" {
		tmpl.Subject = ft.Subject
	}
	if ft.Body != "" {
		tmpl.Body = ft.Body
	}
	if ft.DefaultName != "" {
		tmpl.Defaults.Name = ft.DefaultName
	}
	if ft.DefaultMessage != "" {
		tmpl.Defaults.Message = ft.DefaultMessage
	}
	return tmpl, nil
}
