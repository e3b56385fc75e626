package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var selfTestCmd = &cobra.Command{
	Use:   "self-test",
	Short: "Send a test message to the operator address",
	Long: `Self-test renders the current template for a synthetic
recipient and sends it to the configured operator address with a
" [TEST]" subject suffix. The recipient tab is never touched.

Set MAILMERGE_OPERATOR_EMAIL to the address that should receive the
test message.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := newCampaign(ctx, true)
		if err != nil {
			return err
		}

		to, err := c.SendSelfTest(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Test message sent to %s\n", to)
		return nil
	},
}
