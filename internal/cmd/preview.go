package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the next message without sending",
	Long: `Preview renders the current template against the first pending
recipient, or against a built-in sample row when nothing is pending.
Nothing is sent and nothing is written back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := newCampaign(ctx, false)
		if err != nil {
			return err
		}

		p, err := c.Preview(ctx)
		if err != nil {
			return err
		}

		if p.Sample {
			fmt.Println("No pending recipients; rendering a sample message.")
		}
		fmt.Printf("To:      %s\n", p.To)
		fmt.Printf("Subject: %s\n", p.Subject)
		fmt.Printf("Pending: %d\n\n", p.Pending)
		fmt.Println(p.Body)
		return nil
	},
}
