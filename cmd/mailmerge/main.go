// Command mailmerge sends spreadsheet-driven email campaigns.
package main

import (
	"os"

	"github.com/dmitrymomot/mailmerge/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
