package campaign

import "errors"

var (
	// ErrMissingEmailColumn indicates the recipient tab header row has no
	// email column.
	ErrMissingEmailColumn = errors.New("recipient sheet has no email column")

	// ErrNoRecipients indicates no pending recipients resolved: the tab
	// is empty, every row is already sent, or no row holds a valid email.
	ErrNoRecipients = errors.New("no recipients to send to")

	// ErrNoIdentity indicates a self test without a configured operator
	// address.
	ErrNoIdentity = errors.New("operator email is not configured")
)
