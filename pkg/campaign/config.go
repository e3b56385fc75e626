package campaign

import "time"

// DefaultSendDelay paces consecutive sends to respect transport-side
// throttling.
const DefaultSendDelay = 500 * time.Millisecond

// Config carries the sheet layout and pacing knobs for a campaign.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	RecipientsSheet string        `env:"MAILMERGE_RECIPIENTS_SHEET" envDefault:"Recipients"`
	TemplateSheet   string        `env:"MAILMERGE_TEMPLATE_SHEET" envDefault:"Template"`
	SendDelay       time.Duration `env:"MAILMERGE_SEND_DELAY" envDefault:"500ms"`
	OperatorEmail   string        `env:"MAILMERGE_OPERATOR_EMAIL"`
	HTMLBody        bool          `env:"MAILMERGE_HTML_BODY" envDefault:"false"`
}

func (c Config) normalized() Config {
	if c.RecipientsSheet == "" {
		c.RecipientsSheet = "Recipients"
	}
	if c.TemplateSheet == "" {
		c.TemplateSheet = "Template"
	}
	if c.SendDelay <= 0 {
		c.SendDelay = DefaultSendDelay
	}
	return c
}

// Columns maps semantic recipient fields to header names in the
// recipient tab. Matching is case-insensitive on trimmed headers.
type Columns struct {
	Email    string
	Name     string
	Message  string
	Status   string
	SentDate string
}

// DefaultColumns returns the standard header names.
func DefaultColumns() Columns {
	return Columns{
		Email:    "email",
		Name:     "greeting_first_name",
		Message:  "message",
		Status:   "status",
		SentDate: "sent_date",
	}
}
