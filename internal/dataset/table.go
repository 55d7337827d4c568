package dataset

import "mit-dashboard/internal/models"

// Table is the immutable in-memory snapshot of the dataset. It is built
// once at startup and only ever read afterwards; every request filters,
// projects, or exports the same snapshot without coordination.
type Table struct {
	rows   []models.Shipment
	loaded bool
}

// NewTable builds a loaded snapshot from normalized rows, preserving
// their order.
func NewTable(rows []models.Shipment) *Table {
	return &Table{rows: rows, loaded: true}
}

// EmptyTable is the degraded "no data" state used when the source file is
// missing or unreadable. It is fully queryable and trivially empty.
func EmptyTable() *Table {
	return &Table{}
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Loaded reports whether a source file was successfully read. An empty
// but loaded table (a spreadsheet with only a header) is still loaded.
func (t *Table) Loaded() bool {
	return t.loaded
}

// Rows returns the snapshot's rows in source order. Callers must not
// mutate the returned slice.
func (t *Table) Rows() []models.Shipment {
	return t.rows
}

// Normalize re-canonicalizes every row, returning a new snapshot. Rows
// are normalized at load, so this is a no-op on any table produced by the
// loader.
func (t *Table) Normalize() *Table {
	rows := make([]models.Shipment, len(t.rows))
	for i, r := range t.rows {
		rows[i] = r.Normalize()
	}
	return &Table{rows: rows, loaded: t.loaded}
}
