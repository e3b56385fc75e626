package mailer

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
)

// Renderer converts a plain-text body with markdown formatting into an
// HTML alternative part. Safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
	mu sync.Mutex // goldmark converters are not documented as concurrency-safe
}

// NewRenderer creates a renderer with the default markdown dialect.
func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// HTML renders the body to an HTML fragment. The input is returned
// untouched as the text part by callers; only the HTML part is derived.
func (r *Renderer) HTML(body string) (string, error) {
	var buf bytes.Buffer

	r.mu.Lock()
	err := r.md.Convert([]byte(body), &buf)
	r.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}
