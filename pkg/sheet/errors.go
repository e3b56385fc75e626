package sheet

import "errors"

var (
	// ErrSheetNotFound indicates the requested tab does not exist in the workbook.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrInvalidCell indicates a row or column index below 1.
	ErrInvalidCell = errors.New("cell address must be positive")
)
