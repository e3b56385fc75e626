package googlesheets

// Config holds Google Sheets backend configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// SpreadsheetID is the document ID from the spreadsheet URL.
	SpreadsheetID string `env:"GOOGLE_SPREADSHEET_ID"`

	// ServiceAccount is either a path to a service account JSON key file
	// or the raw JSON itself.
	ServiceAccount string `env:"GOOGLE_SERVICE_ACCOUNT"`
}
