// Package campaign orchestrates spreadsheet-driven bulk email runs.
//
// A Campaign binds a sheet.Workbook (recipient and template tabs), a
// mailer.Sender, and a Config. The recipient tab is scanned into
// validated Recipient snapshots, the template tab supplies the subject,
// body, and template-level defaults, and Send walks the pending
// recipients strictly in row order, rendering each message with
// pkg/merge and writing per-row status back to the sheet.
//
// # Row lifecycle
//
// A row with a valid email and any status other than "Sent" is pending.
// After an attempt its status cell becomes "Sent" (terminal, excluded
// from future runs) or "Error" (retried on the next run). Nothing is
// ever rolled back: a run aborted mid-way leaves earlier rows marked and
// later rows pending, and a repeated run resumes from the pending rows.
// This is at-least-once-attempt delivery; a transport failure after
// acceptance can lead to a duplicate send on retry.
//
// # Basic usage
//
//	c := campaign.New(workbook, sender, campaign.Config{})
//	res, err := c.Send(ctx, false)
//	if err != nil {
//		// nothing was attempted
//	}
//	// res.Sent / res.Failed / res.Errors describe the run; per-recipient
//	// failures do not surface as an error.
package campaign
