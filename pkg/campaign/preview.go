package campaign

import (
	"context"

	"github.com/dmitrymomot/mailmerge/pkg/merge"
)

// Preview is a rendered message for inspection before a run.
type Preview struct {
	To      string
	Subject string
	Body    string
	Pending int  // pending recipients at preview time
	Sample  bool // true when rendered against the built-in sample recipient
}

// Preview renders the current template against the first pending
// recipient, or against a built-in sample when nothing is pending.
// Nothing is sent and nothing is written.
func (c *Campaign) Preview(ctx context.Context) (Preview, error) {
	recipients, err := c.Resolve(ctx)
	if err != nil {
		return Preview{}, err
	}
	tmpl, err := c.Template(ctx)
	if err != nil {
		return Preview{}, err
	}

	p := Preview{Pending: len(recipients)}
	fields := map[string]string{
		merge.FieldEmail:   "sample@example.com",
		merge.FieldName:    "John",
		merge.FieldMessage: "This is a sample message",
	}
	p.To = fields[merge.FieldEmail]
	p.Sample = true
	if len(recipients) > 0 {
		fields = recipients[0].Fields
		p.To = recipients[0].Email
		p.Sample = false
	}

	p.Subject = merge.Render(tmpl.Subject, fields, tmpl.Defaults)
	p.Body = merge.Render(tmpl.Body, fields, tmpl.Defaults)
	return p, nil
}
