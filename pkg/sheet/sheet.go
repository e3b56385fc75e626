package sheet

import "context"

// Color is a whole-row highlight applied after a send attempt.
type Color int

const (
	ColorNone Color = iota
	ColorSuccess
	ColorFailure
)

// Sheet is a single tab of tabular data. Rows and columns are 1-based;
// row 1 is the header row by convention.
type Sheet interface {
	// Rows returns the full used range, header row included. Rows may be
	// jagged; callers must bounds-check column access.
	Rows(ctx context.Context) ([][]string, error)

	// Cell returns the value at row/col, or "" when the address is
	// outside the used range.
	Cell(ctx context.Context, row, col int) (string, error)

	// SetCell writes a value, growing the used range as needed.
	SetCell(ctx context.Context, row, col int, value string) error

	// AppendColumn adds a column after the current last one, writes the
	// header into row 1, and returns the new 1-based column index.
	AppendColumn(ctx context.Context, header string) (int, error)

	// SetRowColor applies a background highlight to the entire row.
	// Backends without presentation support ignore it.
	SetRowColor(ctx context.Context, row int, color Color) error
}

// Workbook is a named collection of sheets.
type Workbook interface {
	// Sheet opens an existing tab. Returns ErrSheetNotFound when absent.
	Sheet(ctx context.Context, name string) (Sheet, error)

	// CreateSheet creates an empty tab, or opens the existing one when a
	// tab with that name is already present.
	CreateSheet(ctx context.Context, name string) (Sheet, error)
}
