package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates neither a text nor an HTML body was provided.
	ErrNoContent = errors.New("email must have a body")

	// ErrRenderFailed indicates HTML body rendering failed.
	ErrRenderFailed = errors.New("failed to render html body")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrInvalidConfig indicates a provider was constructed with incomplete configuration.
	ErrInvalidConfig = errors.New("invalid mailer configuration")
)
