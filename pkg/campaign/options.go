package campaign

import (
	"context"
	"log/slog"
	"time"
)

// Option customizes a Campaign.
type Option func(*Campaign)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Campaign) {
		if log != nil {
			c.log = log
		}
	}
}

// WithColumns overrides the recipient tab header names.
func WithColumns(cols Columns) Option {
	return func(c *Campaign) {
		def := DefaultColumns()
		if cols.Email == "" {
			cols.Email = def.Email
		}
		if cols.Name == "" {
			cols.Name = def.Name
		}
		if cols.Message == "" {
			cols.Message = def.Message
		}
		if cols.Status == "" {
			cols.Status = def.Status
		}
		if cols.SentDate == "" {
			cols.SentDate = def.SentDate
		}
		c.cols = cols
	}
}

// WithTemplate pins the template instead of loading it from the
// workbook on every operation. Useful with LoadTemplateFile.
func WithTemplate(tmpl Template) Option {
	return func(c *Campaign) {
		c.tmpl = &tmpl
	}
}

// WithIdentity overrides the operator identity used by SendSelfTest.
func WithIdentity(id Identity) Option {
	return func(c *Campaign) {
		c.identity = id
	}
}

// WithClock overrides the time source used for sent-date stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Campaign) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSleep overrides the inter-send pause implementation.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Campaign) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}
