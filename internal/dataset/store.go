package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mit-dashboard/internal/models"
)

// Store holds the process-wide snapshot and answers every read over it.
// The table is replaced at most once after startup (and by tests); reads
// take the RLock only to fetch the snapshot pointer, then scan without
// coordination.
type Store struct {
	mu       sync.RWMutex
	table    *Table
	loadedAt time.Time
	logger   *slog.Logger
}

func NewStore() *Store {
	return &Store{
		table:  EmptyTable(),
		logger: slog.Default(),
	}
}

// Load reads the source spreadsheet into the store. Failures leave the
// empty table in place and are returned for the caller to log; the store
// stays queryable either way.
func (s *Store) Load(ctx context.Context, path, sheet string) error {
	table, err := LoadExcel(ctx, path, sheet)

	s.mu.Lock()
	s.table = table
	s.loadedAt = time.Now()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.logger.Info("dataset loaded", "path", path, "rows", table.Len())
	return nil
}

// SetTable installs a snapshot directly; used by tests.
func (s *Store) SetTable(t *Table) {
	s.mu.Lock()
	s.table = t
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

func (s *Store) snapshot() *Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Data returns the pre-pagination row count and the matching records in
// source order. Pagination is the consumer's concern.
func (s *Store) Data(c Criteria) (int, []models.Shipment) {
	rows := s.snapshot().Filter(c)
	return len(rows), rows
}

// Facets returns the filter vocabulary for the current snapshot.
func (s *Store) Facets() Facets {
	return Vocabulary(s.snapshot())
}

// Summary aggregates the filtered result set for the dashboard cards.
func (s *Store) Summary(c Criteria) Summary {
	return Summarize(s.snapshot().Filter(c))
}

// Export serializes the filtered result set as an .xlsx workbook.
// Returns ErrNoData while no data is loaded.
func (s *Store) Export(c Criteria) ([]byte, error) {
	return Export(s.snapshot(), c)
}

// Status never fails; an unloaded store reports zero records.
type Status struct {
	Status       string `json:"status"`
	DataLoaded   bool   `json:"data_loaded"`
	TotalRecords int    `json:"total_records"`
}

func (s *Store) Status() Status {
	t := s.snapshot()
	return Status{
		Status:       "running",
		DataLoaded:   t.Len() > 0,
		TotalRecords: t.Len(),
	}
}

// Stats reports snapshot metadata for the admin endpoint.
func (s *Store) Stats() map[string]any {
	s.mu.RLock()
	t := s.table
	loadedAt := s.loadedAt
	s.mu.RUnlock()

	facets := Vocabulary(t)
	return map[string]any{
		"record_count": t.Len(),
		"loaded":       t.Loaded(),
		"loaded_at":    loadedAt,
		"divisions":    len(facets.Divisions),
		"transporters": len(facets.Transporters),
		"age_buckets":  len(facets.AgeBuckets),
	}
}
