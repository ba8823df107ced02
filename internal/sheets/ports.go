package sheets

import "context"

// Store is the outbound port to the tabular store. Sheets act as append-only
// month partitions; rows are plain string cells.
type Store interface {
	// HasSheet reports whether a sheet with the given title exists. A
	// false return with a nil error means "not found"; a non-nil error
	// means the lookup itself failed and nothing can be assumed about
	// the sheet.
	HasSheet(ctx context.Context, title string) (bool, error)

	// AddSheet creates an empty sheet with the given column count and
	// row capacity hint.
	AddSheet(ctx context.Context, title string, cols, rows int64) error

	// WriteRow writes one row at a fixed cell range, e.g. "A1:F1" for a
	// header.
	WriteRow(ctx context.Context, title, cellRange string, row []string) error

	// AppendRow adds one row after the last populated row. It never
	// overwrites existing rows.
	AppendRow(ctx context.Context, title string, row []string) error

	// ReadRange returns all populated rows within the given range, e.g.
	// "A:F".
	ReadRange(ctx context.Context, title, cellRange string) ([][]string, error)
}
