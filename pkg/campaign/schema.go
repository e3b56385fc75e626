package campaign

import "strings"

// schema maps semantic recipient fields to 1-based column indexes,
// resolved once per operation from the header row. Zero means the
// column is absent.
type schema struct {
	email    int
	name     int
	message  int
	status   int
	sentDate int
}

// resolveSchema normalizes the header row (lower-case, trimmed) and
// locates each configured column. The first matching header wins.
func resolveSchema(header []string, cols Columns) schema {
	var s schema
	for i, h := range header {
		col := i + 1
		switch normalizeHeader(h) {
		case normalizeHeader(cols.Email):
			if s.email == 0 {
				s.email = col
			}
		case normalizeHeader(cols.Name):
			if s.name == 0 {
				s.name = col
			}
		case normalizeHeader(cols.Message):
			if s.message == 0 {
				s.message = col
			}
		case normalizeHeader(cols.Status):
			if s.status == 0 {
				s.status = col
			}
		case normalizeHeader(cols.SentDate):
			if s.sentDate == 0 {
				s.sentDate = col
			}
		}
	}
	return s
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// cellAt reads a 1-based column from a possibly jagged row.
func cellAt(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return row[col-1]
}
