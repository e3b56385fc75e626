// Package googlesheets provides a sheet.Workbook backed by the Google Sheets API.
//
// Authentication uses a service account with the spreadsheets scope. The
// adapter addresses tabs by title and maps row highlights to cell
// background colors via batch updates.
package googlesheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	sheetpkg "github.com/dmitrymomot/mailmerge/pkg/sheet"
)

// Workbook is a Google Sheets-backed sheet.Workbook addressing one spreadsheet.
type Workbook struct {
	svc           *sheets.Service
	spreadsheetID string
}

// New creates a workbook authenticated as a service account.
func New(ctx context.Context, cfg Config) (*Workbook, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("googlesheets: SpreadsheetID is required")
	}
	if cfg.ServiceAccount == "" {
		return nil, fmt.Errorf("googlesheets: ServiceAccount is required")
	}

	key := []byte(cfg.ServiceAccount)
	if raw, err := os.ReadFile(cfg.ServiceAccount); err == nil {
		key = raw
	}

	jwt, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("googlesheets: parse service account key: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("googlesheets: create service: %w", err)
	}

	return &Workbook{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// Sheet implements sheet.Workbook.
func (w *Workbook) Sheet(ctx context.Context, name string) (sheetpkg.Sheet, error) {
	doc, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("googlesheets: get spreadsheet: %w", err)
	}
	for _, s := range doc.Sheets {
		if s.Properties != nil && s.Properties.Title == name {
			return &tab{wb: w, title: name, sheetID: s.Properties.SheetId}, nil
		}
	}
	return nil, sheetpkg.ErrSheetNotFound
}

// CreateSheet implements sheet.Workbook.
func (w *Workbook) CreateSheet(ctx context.Context, name string) (sheetpkg.Sheet, error) {
	s, err := w.Sheet(ctx, name)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sheetpkg.ErrSheetNotFound) {
		return nil, err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}
	resp, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("googlesheets: add sheet %q: %w", name, err)
	}

	var sheetID int64
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}
	return &tab{wb: w, title: name, sheetID: sheetID}, nil
}

// tab is one spreadsheet tab.
type tab struct {
	wb      *Workbook
	title   string
	sheetID int64
}

// Rows implements sheet.Sheet.
func (t *tab) Rows(ctx context.Context) ([][]string, error) {
	resp, err := t.wb.svc.Spreadsheets.Values.Get(t.wb.spreadsheetID, t.title).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("googlesheets: read %q: %w", t.title, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprint(v)
		}
		rows[i] = cells
	}
	return rows, nil
}

// Cell implements sheet.Sheet.
func (t *tab) Cell(ctx context.Context, row, col int) (string, error) {
	if row < 1 || col < 1 {
		return "", sheetpkg.ErrInvalidCell
	}
	rows, err := t.Rows(ctx)
	if err != nil {
		return "", err
	}
	if row > len(rows) || col > len(rows[row-1]) {
		return "", nil
	}
	return rows[row-1][col-1], nil
}

// SetCell implements sheet.Sheet.
func (t *tab) SetCell(ctx context.Context, row, col int, value string) error {
	if row < 1 || col < 1 {
		return sheetpkg.ErrInvalidCell
	}

	vr := &sheets.ValueRange{Values: [][]any{{value}}}
	rng := fmt.Sprintf("%s!%s%d", t.title, columnLetters(col), row)
	_, err := t.wb.svc.Spreadsheets.Values.Update(t.wb.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("googlesheets: write %s: %w", rng, err)
	}
	return nil
}

// AppendColumn implements sheet.Sheet.
func (t *tab) AppendColumn(ctx context.Context, header string) (int, error) {
	rows, err := t.Rows(ctx)
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
	if err := t.SetCell(ctx, 1, col, header); err != nil {
		return 0, err
	}
	return col, nil
}

// SetRowColor implements sheet.Sheet.
func (t *tab) SetRowColor(ctx context.Context, row int, color sheetpkg.Color) error {
	if row < 1 {
		return sheetpkg.ErrInvalidCell
	}

	bg := backgroundFor(color)
	if bg == nil {
		return nil
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       t.sheetID,
					StartRowIndex: int64(row - 1),
					EndRowIndex:   int64(row),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{BackgroundColor: bg},
				},
				Fields: "userEnteredFormat.backgroundColor",
			},
		}},
	}
	if _, err := t.wb.svc.Spreadsheets.BatchUpdate(t.wb.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("googlesheets: highlight row %d: %w", row, err)
	}
	return nil
}

func backgroundFor(color sheetpkg.Color) *sheets.Color {
	switch color {
	case sheetpkg.ColorSuccess:
		// #d4edda
		return &sheets.Color{Red: 0.83, Green: 0.93, Blue: 0.85}
	case sheetpkg.ColorFailure:
		// #f8d7da
		return &sheets.Color{Red: 0.97, Green: 0.84, Blue: 0.85}
	default:
		return nil
	}
}

// columnLetters converts a 1-based column index to A1 letters.
func columnLetters(col int) string {
	var out []byte
	for col > 0 {
		col--
		out = append([]byte{byte('A' + col%26)}, out...)
		col /= 26
	}
	return string(out)
}
