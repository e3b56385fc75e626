package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailmerge/pkg/campaign"
)

var testMode bool

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send the campaign to all pending recipients",
	Long: `Send renders the template for every pending recipient and
delivers the messages one by one, marking each row "Sent" or "Error".

With --test only the first pending recipient receives a message; the
remaining rows are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := newCampaign(ctx, true)
		if err != nil {
			return err
		}

		res, err := c.Send(ctx, testMode)
		if errors.Is(err, campaign.ErrNoRecipients) {
			fmt.Println("Nothing to send: no pending recipients.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Sent %d, failed %d (batch %s)\n", res.Sent, res.Failed, res.BatchID)
		for _, e := range res.Errors {
			fmt.Println("  " + e)
		}
		if res.Failed > 0 {
			return fmt.Errorf("%d deliveries failed", res.Failed)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().BoolVar(&testMode, "test", false, "send to the first pending recipient only")
}
