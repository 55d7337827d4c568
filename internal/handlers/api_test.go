package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"mit-dashboard/internal/dataset"
	"mit-dashboard/internal/models"
)

func row(division, poNo, transporter, lrNo, ageBucket string) models.Shipment {
	return models.Shipment{
		Division:        models.Str(division).Normalize(),
		PoNo:            models.Str(poNo).Normalize(),
		TransporterName: models.Str(transporter).Normalize(),
		LRNo:            models.Str(lrNo).Normalize(),
		AgeBucket:       models.Str(ageBucket).Normalize(),
	}
}

func newTestStore() *dataset.Store {
	s := dataset.NewStore()
	s.SetTable(dataset.NewTable([]models.Shipment{
		row("SPD", "PO-100", "Gati", "LR-1", "<5 Days"),
		row("SPD", "po-100x", "VRL", "", "5-10 Days"),
		row("CVD", "PO-200", "Gati", "LR-2", ">60 Days"),
	}))
	return s
}

func decodeSuccess(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if success, ok := response["success"].(bool); !ok || !success {
		t.Fatalf("expected success=true, body: %v", response)
	}
	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", response["data"])
	}
	return data
}

func TestAPIHandlers_HandleFilters(t *testing.T) {
	h := NewAPIHandlers(newTestStore(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/filters", nil)
	w := httptest.NewRecorder()
	h.HandleFilters(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if cc := w.Header().Get("Cache-Control"); cc != cacheMaxAge {
		t.Errorf("Cache-Control = %q, want %q", cc, cacheMaxAge)
	}

	data := decodeSuccess(t, w)
	divisions, _ := data["divisions"].([]any)
	if len(divisions) != 2 {
		t.Errorf("divisions = %v, want [CVD SPD]", divisions)
	}
	buckets, _ := data["age_buckets"].([]any)
	if len(buckets) != 3 || buckets[0] != "<5 Days" {
		t.Errorf("age_buckets = %v, want canonical order starting with <5 Days", buckets)
	}
}

func TestAPIHandlers_HandleData(t *testing.T) {
	h := NewAPIHandlers(newTestStore(), slog.Default())

	tests := []struct {
		name      string
		query     string
		wantTotal float64
	}{
		{"no filters", "", 3},
		{"division", "?division=SPD", 2},
		{"division All sentinel", "?division=All", 3},
		{"po substring case-insensitive", "?po_no=po-1", 2},
		{"lr not generated", "?lr_status=not_generated", 1},
		{"conjunction", "?division=SPD&lr_status=generated", 1},
		{"unknown division matches nothing", "?division=NOPE", 0},
		{"malformed criteria ignored", "?division=SPD&bogus=1", 2},
		{"whitespace-only is no constraint", "?division=%20%20", 3},
		{"surrounding whitespace trimmed", "?division=%20SPD%20", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/data"+tt.query, nil)
			w := httptest.NewRecorder()
			h.HandleData(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			data := decodeSuccess(t, w)
			if got := data["total_records"].(float64); got != tt.wantTotal {
				t.Errorf("total_records = %v, want %v", got, tt.wantTotal)
			}
		})
	}
}

func TestAPIHandlers_HandleData_BlankSerialization(t *testing.T) {
	h := NewAPIHandlers(newTestStore(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/data?lr_status=not_generated", nil)
	w := httptest.NewRecorder()
	h.HandleData(w, req)

	data := decodeSuccess(t, w)
	records := data["data"].([]any)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	record := records[0].(map[string]any)
	if record["LR No."] != "" {
		t.Errorf(`blank LR No. serialized as %v, want ""`, record["LR No."])
	}
	if record["Division"] != "SPD" {
		t.Errorf("Division = %v, want SPD", record["Division"])
	}
}

func TestAPIHandlers_HandleExport(t *testing.T) {
	h := NewAPIHandlers(newTestStore(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/export?division=SPD", nil)
	w := httptest.NewRecorder()
	h.HandleExport(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename=Material_Intransit_Export.xlsx` {
		t.Errorf("Content-Disposition = %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a valid workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 { // header + 2 SPD rows
		t.Errorf("exported %d rows, want 3", len(rows))
	}
}

func TestAPIHandlers_HandleExport_NoData(t *testing.T) {
	h := NewAPIHandlers(dataset.NewStore(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	w := httptest.NewRecorder()
	h.HandleExport(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatal(err)
	}
	errObj, _ := response["error"].(map[string]any)
	if errObj["code"] != "NO_DATA" {
		t.Errorf("error code = %v, want NO_DATA", errObj["code"])
	}
}

func TestAPIHandlers_HandleStatus(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		h := NewAPIHandlers(newTestStore(), slog.Default())
		req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
		w := httptest.NewRecorder()
		h.HandleStatus(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		data := decodeSuccess(t, w)
		if data["data_loaded"] != true || data["total_records"].(float64) != 3 {
			t.Errorf("status = %v", data)
		}
	})

	t.Run("empty store never fails", func(t *testing.T) {
		h := NewAPIHandlers(dataset.NewStore(), slog.Default())
		req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
		w := httptest.NewRecorder()
		h.HandleStatus(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		data := decodeSuccess(t, w)
		if data["data_loaded"] != false || data["total_records"].(float64) != 0 {
			t.Errorf("status = %v", data)
		}
	})
}

func TestAPIHandlers_HandleFilters_EmptyStore(t *testing.T) {
	h := NewAPIHandlers(dataset.NewStore(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/filters", nil)
	w := httptest.NewRecorder()
	h.HandleFilters(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("empty table is not an error for filters, status = %d", w.Code)
	}
	data := decodeSuccess(t, w)
	for _, key := range []string{"divisions", "age_buckets", "transporters", "lr_statuses"} {
		if list, _ := data[key].([]any); len(list) != 0 {
			t.Errorf("%s = %v, want empty list", key, data[key])
		}
	}
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	h := NewAPIHandlers(newTestStore(), slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	data := decodeSuccess(t, w)
	if data["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", data["status"])
	}
}
