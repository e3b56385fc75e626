package campaign

import "github.com/google/uuid"

// Result summarizes one send run. Per-row status effects are written to
// the recipient tab directly; Result only carries the counters. A run
// that completes with failures still returns a nil error, so callers
// must inspect Failed and Errors.
type Result struct {
	BatchID  uuid.UUID
	Errors   []string // "email: message" per failed recipient, in send order
	Sent     int
	Failed   int
	TestMode bool
}
