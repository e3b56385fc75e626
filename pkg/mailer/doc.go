// Package mailer provides a provider-agnostic email sending interface.
//
// The package defines the Email message type and the Sender contract that
// transport providers implement. Built-in providers live in the
// subpackages resend, postmark, and smtp.
//
// # Usage
//
//	sender := resend.New(resend.Config{
//		APIKey:      os.Getenv("RESEND_API_KEY"),
//		SenderEmail: "team@example.com",
//		SenderName:  "Team",
//	})
//
//	err := sender.Send(ctx, &mailer.Email{
//		To:      []string{"user@example.com"},
//		Subject: "Hello",
//		Text:    "Plain text body",
//	})
//
// # HTML alternative part
//
// Campaign bodies are plain text that may use markdown formatting.
// Renderer converts such a body into an HTML part while the text part
// stays verbatim:
//
//	r := mailer.NewRenderer()
//	html, err := r.HTML("Hello **world**")
//
// # Custom providers
//
// Implement Sender to add another transport:
//
//	type MySender struct{}
//
//	func (s *MySender) Send(ctx context.Context, email *mailer.Email) error {
//		// deliver via your provider's API
//		return nil
//	}
package mailer
