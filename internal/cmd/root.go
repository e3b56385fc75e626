// Package cmd provides the mailmerge CLI commands.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailmerge/internal/config"
	"github.com/dmitrymomot/mailmerge/pkg/campaign"
	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/postmark"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/resend"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailmerge/pkg/sheet"
	"github.com/dmitrymomot/mailmerge/pkg/sheet/csvfile"
	"github.com/dmitrymomot/mailmerge/pkg/sheet/googlesheets"
)

var templateFile string

var rootCmd = &cobra.Command{
	Use:   "mailmerge",
	Short: "Spreadsheet-driven bulk email sender",
	Long: `Mailmerge sends templated emails to recipients listed in a
spreadsheet and writes the delivery status back to each row.

Recipients live in one tab, the subject and body template in another.
Rows already marked "Sent" are skipped, so interrupted runs can simply
be restarted.

Example:
  mailmerge init            # create the recipient and template tabs
  mailmerge preview         # render the first pending message
  mailmerge send --test     # send to the first recipient only
  mailmerge self-test       # send a test message to yourself
  mailmerge send            # run the full campaign`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&templateFile, "template", "t", "", "YAML template file overriding the template tab")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(selfTestCmd)
}

// newCampaign wires a campaign from the environment configuration and
// the global flags. Commands that never deliver pass withSender false
// so a missing provider configuration does not block them.
func newCampaign(ctx context.Context, withSender bool) (*campaign.Campaign, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	wb, err := newWorkbook(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var sender mailer.Sender
	if withSender {
		if sender, err = newSender(cfg); err != nil {
			return nil, err
		}
	}

	opts := []campaign.Option{
		campaign.WithLogger(logger.New(logger.ParseLevel(cfg.LogLevel))),
	}
	if templateFile != "" {
		tmpl, err := campaign.LoadTemplateFile(templateFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, campaign.WithTemplate(tmpl))
	}

	return campaign.New(wb, sender, cfg.Campaign, opts...), nil
}

func newWorkbook(ctx context.Context, cfg config.Config) (sheet.Workbook, error) {
	switch cfg.Storage {
	case config.StorageGoogle:
		return googlesheets.New(ctx, cfg.Google)
	case config.StorageCSV:
		return csvfile.New(cfg.CSVDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

func newSender(cfg config.Config) (mailer.Sender, error) {
	switch cfg.Provider {
	case config.ProviderResend:
		return resend.New(cfg.Resend), nil
	case config.ProviderPostmark:
		return postmark.New(cfg.Postmark)
	case config.ProviderSMTP:
		return smtp.New(cfg.SMTP)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
