package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"mit-dashboard/internal/models"
)

const (
	normalizeBatchSize = 2000
	maxWorkers         = 8
)

// ErrSourceMissing marks the degraded "no source file" state. Callers are
// expected to log it and keep serving the empty table.
var ErrSourceMissing = errors.New("source spreadsheet not found")

// LoadExcel reads the source spreadsheet into a normalized snapshot. On a
// missing file or a parse failure it returns the empty table together
// with the failure reason, so the service can degrade to zero records
// instead of refusing to start. Sheet may be empty to use the workbook's
// first sheet.
func LoadExcel(ctx context.Context, path, sheet string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return EmptyTable(), fmt.Errorf("%w: %s", ErrSourceMissing, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return EmptyTable(), fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return EmptyTable(), fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return NewTable(nil), nil
	}

	// Map schema columns onto the header row; a column missing from the
	// file is treated as present but all Blank, and unknown columns are
	// dropped.
	colIndex := make([]int, len(models.Columns))
	header := make(map[string]int, len(raw[0]))
	for i, name := range raw[0] {
		header[name] = i
	}
	for j, name := range models.Columns {
		if i, ok := header[name]; ok {
			colIndex[j] = i
		} else {
			colIndex[j] = -1
		}
	}

	data := raw[1:]
	rows := make([]models.Shipment, len(data))

	// Normalization is per-row independent; batches write into the
	// preallocated slice by index so source order is preserved.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for start := 0; start < len(data); start += normalizeBatchSize {
		end := min(start+normalizeBatchSize, len(data))
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			for i := start; i < end; i++ {
				rows[i] = parseRow(data[i], colIndex)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return EmptyTable(), fmt.Errorf("normalize rows: %w", err)
	}

	return NewTable(rows), nil
}

func parseRow(raw []string, colIndex []int) models.Shipment {
	cells := make([]models.Value, len(colIndex))
	for j, i := range colIndex {
		if i < 0 || i >= len(raw) {
			cells[j] = models.Blank
			continue
		}
		cells[j] = models.Str(raw[i]).Normalize()
	}
	return models.FromCells(cells)
}
