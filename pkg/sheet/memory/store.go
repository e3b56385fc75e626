// Package memory provides an in-memory sheet.Workbook for tests and dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/dmitrymomot/mailmerge/pkg/sheet"
)

// Workbook is a thread-safe in-memory sheet.Workbook.
type Workbook struct {
	mu     sync.RWMutex
	sheets map[string]*Sheet
}

// New creates an empty workbook.
func New() *Workbook {
	return &Workbook{sheets: make(map[string]*Sheet)}
}

// Seed creates (or replaces) a tab with the given rows and returns it.
// Intended for test setup.
func (w *Workbook) Seed(name string, rows [][]string) *Sheet {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := &Sheet{rows: copyRows(rows), colors: make(map[int]sheet.Color)}
	w.sheets[name] = s
	return s
}

// Sheet implements sheet.Workbook.
func (w *Workbook) Sheet(_ context.Context, name string) (sheet.Sheet, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s, ok := w.sheets[name]
	if !ok {
		return nil, sheet.ErrSheetNotFound
	}
	return s, nil
}

// CreateSheet implements sheet.Workbook.
func (w *Workbook) CreateSheet(_ context.Context, name string) (sheet.Sheet, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.sheets[name]; ok {
		return s, nil
	}
	s := &Sheet{colors: make(map[int]sheet.Color)}
	w.sheets[name] = s
	return s, nil
}

// Sheet is one in-memory tab. Rows may be jagged; SetCell grows the
// grid as needed.
type Sheet struct {
	mu     sync.RWMutex
	rows   [][]string
	colors map[int]sheet.Color
}

// Rows implements sheet.Sheet. The returned slice is a deep copy.
func (s *Sheet) Rows(context.Context) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyRows(s.rows), nil
}

// Cell implements sheet.Sheet.
func (s *Sheet) Cell(_ context.Context, row, col int) (string, error) {
	if row < 1 || col < 1 {
		return "", sheet.ErrInvalidCell
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if row > len(s.rows) || col > len(s.rows[row-1]) {
		return "", nil
	}
	return s.rows[row-1][col-1], nil
}

// SetCell implements sheet.Sheet.
func (s *Sheet) SetCell(_ context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return sheet.ErrInvalidCell
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.rows) < row {
		s.rows = append(s.rows, nil)
	}
	for len(s.rows[row-1]) < col {
		s.rows[row-1] = append(s.rows[row-1], "")
	}
	s.rows[row-1][col-1] = value
	return nil
}

// AppendColumn implements sheet.Sheet.
func (s *Sheet) AppendColumn(ctx context.Context, header string) (int, error) {
	s.mu.RLock()
	width := 0
	for _, row := range s.rows {
		if len(row) > width {
			width = len(row)
		}
	}
	s.mu.RUnlock()

	col := width + 1
	if err := s.SetCell(ctx, 1, col, header); err != nil {
		return 0, err
	}
	return col, nil
}

// SetRowColor implements sheet.Sheet.
func (s *Sheet) SetRowColor(_ context.Context, row int, color sheet.Color) error {
	if row < 1 {
		return sheet.ErrInvalidCell
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.colors[row] = color
	return nil
}

// RowColor returns the highlight applied to a row. Intended for test
// assertions.
func (s *Sheet) RowColor(row int) sheet.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.colors[row]
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
