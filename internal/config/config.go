// Package config loads the application configuration from environment
// variables, with optional .env file support for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/mailmerge/pkg/campaign"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/postmark"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/resend"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailmerge/pkg/sheet/googlesheets"
)

// Provider names accepted in MAILMERGE_PROVIDER.
const (
	ProviderResend   = "resend"
	ProviderPostmark = "postmark"
	ProviderSMTP     = "smtp"
)

// Storage backend names accepted in MAILMERGE_STORAGE.
const (
	StorageGoogle = "google"
	StorageCSV    = "csv"
)

// Config aggregates all application settings. Provider and storage
// sections are parsed unconditionally; only the selected ones are
// validated at wiring time.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Provider string `env:"MAILMERGE_PROVIDER" envDefault:"resend"`
	Storage  string `env:"MAILMERGE_STORAGE" envDefault:"google"`
	CSVDir   string `env:"MAILMERGE_CSV_DIR" envDefault:"."`

	Campaign campaign.Config
	Resend   resend.Config
	Postmark postmark.Config
	SMTP     smtp.Config
	Google   googlesheets.Config
}

// Load reads .env when present and parses the environment. A missing
// .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
