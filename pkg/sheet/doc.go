// Package sheet defines the tabular storage contract used by campaigns.
//
// A Workbook is a named collection of tabs; a Sheet is one tab of rows
// and columns addressed with 1-based indexes. Backends live in the
// subpackages memory, csvfile, and googlesheets. Presentation features
// such as row highlights are optional: backends without them treat
// SetRowColor as a no-op.
package sheet
