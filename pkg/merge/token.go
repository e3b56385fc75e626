package merge

import "regexp"

// Well-known placeholder names. FieldName and FieldMessage have
// template-level fallbacks; FieldEmail resolves like any other field.
const (
	FieldEmail   = "email"
	FieldName    = "greeting_first_name"
	FieldMessage = "message"
)

// Segment is one piece of a tokenized template: literal text when Name is
// empty, otherwise a placeholder to resolve.
type Segment struct {
	Text    string // literal text between tokens
	Name    string // placeholder name, word characters only
	Default string // inline default from {{name|default:'...'}}
}

// IsPlaceholder reports whether the segment is a placeholder.
func (s Segment) IsPlaceholder() bool { return s.Name != "" }

// tokenRe matches {{ name }} and {{ name|default:'literal' }}.
// Whitespace around the name is insignificant. Names are restricted to
// word characters; anything else is not a token.
var tokenRe = regexp.MustCompile(`\{\{\s*(\w+)(?:\|default:'([^']*)')?\s*\}\}`)

// Tokenize splits template into literal and placeholder segments in
// source order. Text not matching the token syntax is preserved as-is.
func Tokenize(template string) []Segment {
	matches := tokenRe.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		if template == "" {
			return nil
		}
		return []Segment{{Text: template}}
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: template[last:m[0]]})
		}
		seg := Segment{Name: template[m[2]:m[3]]}
		if m[4] >= 0 {
			seg.Default = template[m[4]:m[5]]
		}
		segments = append(segments, seg)
		last = m[1]
	}
	if last < len(template) {
		segments = append(segments, Segment{Text: template[last:]})
	}
	return segments
}
