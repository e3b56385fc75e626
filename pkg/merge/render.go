package merge

import "strings"

// Defaults carries template-level fallback values applied when a
// recipient field is blank and no usable inline default is present.
type Defaults struct {
	Name    string // fallback for greeting_first_name
	Message string // fallback for message
}

// Render substitutes every placeholder in template using the recipient
// fields, inline defaults, and template-level defaults, in that order.
//
// An inline default of '' is treated as absent and falls through to the
// template-level tier. The clause gives no way to force an empty
// substitution; unknown names without a default render as "".
func Render(template string, fields map[string]string, defaults Defaults) string {
	segments := Tokenize(template)

	var b strings.Builder
	b.Grow(len(template))
	for _, seg := range segments {
		if seg.IsPlaceholder() {
			b.WriteString(resolve(seg, fields, defaults))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

func resolve(seg Segment, fields map[string]string, defaults Defaults) string {
	// Blankness is decided on the trimmed value, but the substitution
	// keeps the original spacing.
	if v, ok := fields[seg.Name]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	if seg.Default != "" {
		return seg.Default
	}
	switch seg.Name {
	case FieldName:
		return defaults.Name
	case FieldMessage:
		return defaults.Message
	}
	return ""
}
