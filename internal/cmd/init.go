package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the recipient and template tabs",
	Long: `Init creates the recipient tab with sample rows and the
template tab with the built-in defaults. Existing tabs are left
untouched, so init is safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, err := newCampaign(ctx, false)
		if err != nil {
			return err
		}

		if err := c.Init(ctx); err != nil {
			return err
		}

		fmt.Println("Recipient and template tabs are ready.")
		return nil
	},
}
