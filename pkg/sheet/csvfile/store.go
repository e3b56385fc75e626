// Package csvfile provides a sheet.Workbook backed by CSV files in a directory.
//
// Each tab maps to "<dir>/<name>.csv". Writes rewrite the whole file,
// which keeps the on-disk state consistent after every cell update. Row
// highlights are not representable in CSV and are silently dropped.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrymomot/mailmerge/pkg/sheet"
)

// Workbook maps sheet names to CSV files under a single directory.
type Workbook struct {
	dir string
	mu  sync.Mutex // serializes file access across all tabs
}

// New creates a workbook rooted at dir. The directory must exist.
func New(dir string) *Workbook {
	return &Workbook{dir: dir}
}

// Sheet implements sheet.Workbook.
func (w *Workbook) Sheet(_ context.Context, name string) (sheet.Sheet, error) {
	path := w.path(name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, sheet.ErrSheetNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &Sheet{wb: w, path: path}, nil
}

// CreateSheet implements sheet.Workbook.
func (w *Workbook) CreateSheet(ctx context.Context, name string) (sheet.Sheet, error) {
	s, err := w.Sheet(ctx, name)
	if err == nil {
		return s, nil
	}

	path := w.path(name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &Sheet{wb: w, path: path}, nil
}

func (w *Workbook) path(name string) string {
	return filepath.Join(w.dir, name+".csv")
}

// Sheet is one CSV-backed tab.
type Sheet struct {
	wb   *Workbook
	path string
}

// Rows implements sheet.Sheet.
func (s *Sheet) Rows(context.Context) ([][]string, error) {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	return s.load()
}

// Cell implements sheet.Sheet.
func (s *Sheet) Cell(_ context.Context, row, col int) (string, error) {
	if row < 1 || col < 1 {
		return "", sheet.ErrInvalidCell
	}

	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return "", err
	}
	if row > len(rows) || col > len(rows[row-1]) {
		return "", nil
	}
	return rows[row-1][col-1], nil
}

// SetCell implements sheet.Sheet.
func (s *Sheet) SetCell(_ context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return sheet.ErrInvalidCell
	}

	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return err
	}
	for len(rows) < row {
		rows = append(rows, nil)
	}
	for len(rows[row-1]) < col {
		rows[row-1] = append(rows[row-1], "")
	}
	rows[row-1][col-1] = value
	return s.save(rows)
}

// AppendColumn implements sheet.Sheet.
func (s *Sheet) AppendColumn(_ context.Context, header string) (int, error) {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return 0, err
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	col := width + 1
	for len(rows) < 1 {
		rows = append(rows, nil)
	}
	for len(rows[0]) < col {
		rows[0] = append(rows[0], "")
	}
	rows[0][col-1] = header
	if err := s.save(rows); err != nil {
		return 0, err
	}
	return col, nil
}

// SetRowColor implements sheet.Sheet. CSV carries no presentation, so
// highlights are dropped.
func (s *Sheet) SetRowColor(_ context.Context, row int, _ sheet.Color) error {
	if row < 1 {
		return sheet.ErrInvalidCell
	}
	return nil
}

func (s *Sheet) load() ([][]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sheet.ErrSheetNotFound
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow jagged rows
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return rows, nil
}

func (s *Sheet) save(rows [][]string) error {
	// Pad every row to the grid width. A fully empty record would
	// serialize as a blank line, which csv readers skip, shifting all
	// row indexes below it.
	width := 1
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		padded[i] = append(append([]string(nil), row...), make([]string, width-len(row))...)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(padded); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
