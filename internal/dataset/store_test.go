package dataset

import (
	"errors"
	"testing"
)

func TestStore_EmptyByDefault(t *testing.T) {
	s := NewStore()

	status := s.Status()
	if status.DataLoaded {
		t.Error("fresh store should report data_loaded=false")
	}
	if status.TotalRecords != 0 {
		t.Errorf("TotalRecords = %d, want 0", status.TotalRecords)
	}

	if _, err := s.Export(Criteria{}); !errors.Is(err, ErrNoData) {
		t.Errorf("Export on empty store: got %v, want ErrNoData", err)
	}
}

func TestStore_Data(t *testing.T) {
	s := NewStore()
	s.SetTable(testTable())

	total, rows := s.Data(Criteria{Division: strPtr("SPD")})
	if total != 2 || len(rows) != 2 {
		t.Errorf("Data() = %d rows (total %d), want 2", len(rows), total)
	}

	status := s.Status()
	if !status.DataLoaded || status.TotalRecords != 4 {
		t.Errorf("Status() = %+v, want loaded with 4 records", status)
	}
}

func TestStore_Stats(t *testing.T) {
	s := NewStore()
	s.SetTable(testTable())

	stats := s.Stats()
	if stats["record_count"] != 4 {
		t.Errorf("record_count = %v, want 4", stats["record_count"])
	}
	if stats["divisions"] != 2 {
		t.Errorf("divisions = %v, want 2", stats["divisions"])
	}
}
