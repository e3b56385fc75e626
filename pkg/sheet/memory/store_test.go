package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/sheet"
	"github.com/dmitrymomot/mailmerge/pkg/sheet/memory"
)

func TestWorkbook_SheetNotFound(t *testing.T) {
	t.Parallel()

	wb := memory.New()
	_, err := wb.Sheet(context.Background(), "Recipients")
	require.ErrorIs(t, err, sheet.ErrSheetNotFound)
}

func TestWorkbook_CreateSheetIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()

	first, err := wb.CreateSheet(ctx, "Recipients")
	require.NoError(t, err)
	require.NoError(t, first.SetCell(ctx, 1, 1, "email"))

	second, err := wb.CreateSheet(ctx, "Recipients")
	require.NoError(t, err)

	v, err := second.Cell(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, "email", v)
}

func TestSheet_SetCellGrowsGrid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	s := wb.Seed("data", nil)

	require.NoError(t, s.SetCell(ctx, 3, 2, "x"))

	rows, err := s.Rows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"", "x"}, rows[2])
}

func TestSheet_CellOutOfRange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	s := wb.Seed("data", [][]string{{"a"}})

	v, err := s.Cell(ctx, 5, 5)
	require.NoError(t, err)
	require.Empty(t, v)

	_, err = s.Cell(ctx, 0, 1)
	require.ErrorIs(t, err, sheet.ErrInvalidCell)
}

func TestSheet_AppendColumn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	s := wb.Seed("data", [][]string{
		{"email", "message"},
		{"a@x.com", "hi"},
	})

	col, err := s.AppendColumn(ctx, "status")
	require.NoError(t, err)
	require.Equal(t, 3, col)

	v, err := s.Cell(ctx, 1, 3)
	require.NoError(t, err)
	require.Equal(t, "status", v)
}

func TestSheet_RowsReturnsCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	s := wb.Seed("data", [][]string{{"a"}})

	rows, err := s.Rows(ctx)
	require.NoError(t, err)
	rows[0][0] = "mutated"

	v, err := s.Cell(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, "a", v)
}

func TestSheet_RowColor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	wb := memory.New()
	s := wb.Seed("data", [][]string{{"a"}})

	require.Equal(t, sheet.ColorNone, s.RowColor(2))
	require.NoError(t, s.SetRowColor(ctx, 2, sheet.ColorSuccess))
	require.Equal(t, sheet.ColorSuccess, s.RowColor(2))
}
