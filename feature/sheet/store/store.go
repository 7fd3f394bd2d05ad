package store

import "context"

// Store is the contract for the tabular backing store of one sheet.
// Rows and columns are 1-based. A missing cell reads as the empty string.
type Store interface {
	// ReadRow returns the cell values of one row, dense up to the last
	// populated column of that row.
	ReadRow(ctx context.Context, row int) ([]string, error)

	// ReadRange returns a rectangular region of cells in one call.
	ReadRange(ctx context.Context, row, col, rows, cols int) ([][]string, error)

	// WriteCell sets a single cell value.
	WriteCell(ctx context.Context, row, col int, value string) error

	// SetBackground sets a single cell's background color. Empty clears it.
	SetBackground(ctx context.Context, row, col int, color string) error

	// SetRowBackground sets the background color of every populated cell
	// in a row. Empty clears it.
	SetRowBackground(ctx context.Context, row int, color string) error

	// LastRow returns the index of the last populated row, 0 when empty.
	LastRow(ctx context.Context) (int, error)

	// LastColumn returns the index of the last populated column, 0 when empty.
	LastColumn(ctx context.Context) (int, error)
}
