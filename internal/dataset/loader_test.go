package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"mit-dashboard/internal/models"
)

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func writeTestWorkbook(t *testing.T, header []string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExcel(t *testing.T) {
	path := writeTestWorkbook(t,
		[]string{"Division", "Po No", "Quantity", "Transporter Name", "LR No.", "Age Bucket"},
		[][]any{
			{"SPD", "PO-100", 5, "Gati", "LR-1", "<5 Days"},
			{"CVD", "PO-200", 2.5, "VRL", "", "5-10 Days"},
		},
	)

	table, err := LoadExcel(context.Background(), path, "")
	if err != nil {
		t.Fatalf("LoadExcel() error: %v", err)
	}
	if !table.Loaded() {
		t.Error("table should report loaded")
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	first := table.Rows()[0]
	if first.Division.String() != "SPD" {
		t.Errorf("Division = %q, want SPD", first.Division.String())
	}
	if first.Quantity != models.Num(5) {
		t.Errorf("Quantity = %+v, want Num(5)", first.Quantity)
	}
	// columns absent from the file are present but all Blank
	if !first.NDP.IsBlank() {
		t.Errorf("NDP should be Blank, got %+v", first.NDP)
	}

	second := table.Rows()[1]
	if second.Quantity != models.Num(2.5) {
		t.Errorf("Quantity = %+v, want Num(2.5)", second.Quantity)
	}
	if second.LRGenerated() {
		t.Error("row with empty LR No. should not report LR generated")
	}
}

func TestLoadExcel_MissingFile(t *testing.T) {
	table, err := LoadExcel(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"), "")
	if !errors.Is(err, ErrSourceMissing) {
		t.Errorf("err = %v, want ErrSourceMissing", err)
	}
	if table == nil || table.Len() != 0 {
		t.Error("missing file must still yield an empty, queryable table")
	}
	if table.Loaded() {
		t.Error("fallback table should not report loaded")
	}
}

func TestLoadExcel_NotASpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.xlsx")
	if err := writeFile(path, []byte("not a zip archive")); err != nil {
		t.Fatal(err)
	}

	table, err := LoadExcel(context.Background(), path, "")
	if err == nil {
		t.Error("parse failure should be reported")
	}
	if errors.Is(err, ErrSourceMissing) {
		t.Error("parse failure must be distinct from a missing source")
	}
	if table == nil || table.Len() != 0 {
		t.Error("parse failure must still yield an empty, queryable table")
	}
}

func TestLoadExcel_UnknownColumnsDropped(t *testing.T) {
	path := writeTestWorkbook(t,
		[]string{"Division", "Mystery Column", "Po No"},
		[][]any{{"SPD", "ignore me", "PO-1"}},
	)

	table, err := LoadExcel(context.Background(), path, "")
	if err != nil {
		t.Fatalf("LoadExcel() error: %v", err)
	}
	row := table.Rows()[0]
	if row.Division.String() != "SPD" || row.PoNo.String() != "PO-1" {
		t.Errorf("known columns mis-mapped: %+v", row)
	}
	for _, v := range row.Values() {
		if v.Kind == models.KindString && v.Str == "ignore me" {
			t.Error("unknown column leaked into the row")
		}
	}
}

func TestLoadExcel_BlankNormalization(t *testing.T) {
	path := writeTestWorkbook(t,
		[]string{"Division", "Po No", "LR No."},
		[][]any{{"SPD", "nan", "   "}},
	)

	table, err := LoadExcel(context.Background(), path, "")
	if err != nil {
		t.Fatalf("LoadExcel() error: %v", err)
	}
	row := table.Rows()[0]
	if !row.PoNo.IsBlank() {
		t.Errorf("nan Po No should be Blank, got %+v", row.PoNo)
	}
	if !row.LRNo.IsBlank() {
		t.Errorf("whitespace LR No. should be Blank, got %+v", row.LRNo)
	}
}

// Load-then-export-then-load yields the same row count and column order.
func TestLoadExcel_ExportRoundTrip(t *testing.T) {
	path := writeTestWorkbook(t,
		[]string{"Division", "Po No", "Quantity", "LR No."},
		[][]any{
			{"SPD", "PO-100", 5, "LR-1"},
			{"CVD", "PO-200", 7, ""},
			{"SPD", "PO-300", 1, "LR-2"},
		},
	)

	table, err := LoadExcel(context.Background(), path, "")
	if err != nil {
		t.Fatal(err)
	}

	payload, err := Export(table, Criteria{})
	if err != nil {
		t.Fatal(err)
	}

	exportPath := filepath.Join(t.TempDir(), "export.xlsx")
	if err := writeFile(exportPath, payload); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadExcel(context.Background(), exportPath, "")
	if err != nil {
		t.Fatalf("reload exported workbook: %v", err)
	}
	if reloaded.Len() != table.Len() {
		t.Errorf("round-trip row count = %d, want %d", reloaded.Len(), table.Len())
	}
	for i, row := range reloaded.Rows() {
		if row.Division != table.Rows()[i].Division || row.PoNo != table.Rows()[i].PoNo {
			t.Errorf("row %d changed in round-trip: %+v vs %+v", i, row, table.Rows()[i])
		}
	}
}
