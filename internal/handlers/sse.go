package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"mit-dashboard/internal/dataset"
	"mit-dashboard/internal/models"
)

const maxTableRows = 50

var shipmentTableTemplate = template.Must(template.New("shipmentTable").Parse(`
<div id="shipment-table">
<table class="data-table">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>
{{range .}}<td>{{.}}</td>{{end}}
</tr>{{end}}
</tbody>
</table>
<p class="table-note">Showing {{len .Rows}} of {{.Total}} records</p>
</div>`))

var summaryTemplate = template.Must(template.New("summary").Parse(`
<div id="summary-cards">
<div class="card"><span class="card-value">{{.TotalRecords}}</span><span class="card-label">Total Records</span></div>
<div class="card"><span class="card-value">{{.LRGenerated}}</span><span class="card-label">LR Generated</span></div>
<div class="card"><span class="card-value">{{.LRNotGenerated}}</span><span class="card-label">LR Pending</span></div>
{{range .AgeBuckets}}<div class="card"><span class="card-value">{{.Count}}</span><span class="card-label">{{.Bucket}}</span></div>
{{end}}</div>`))

type SSEHandlers struct {
	store  *dataset.Store
	logger *slog.Logger
}

// filterSignals mirrors the dashboard page's datastar signal store.
type filterSignals struct {
	Division    string `json:"division"`
	AgeBucket   string `json:"age_bucket"`
	Transporter string `json:"transporter"`
	PoNo        string `json:"po_no"`
	LRStatus    string `json:"lr_status"`
}

// criteria reads filters from the datastar signal payload when present,
// otherwise from plain query parameters so the endpoints stay curl-able.
func (h *SSEHandlers) criteria(r *http.Request) dataset.Criteria {
	if r.URL.Query().Has(datastar.DatastarKey) {
		var sig filterSignals
		if err := datastar.ReadSignals(r, &sig); err == nil {
			return dataset.Criteria{
				Division:    optValue(sig.Division),
				AgeBucket:   optValue(sig.AgeBucket),
				Transporter: optValue(sig.Transporter),
				PoNo:        optValue(sig.PoNo),
				LRStatus:    dataset.ParseLRStatus(sig.LRStatus),
			}
		}
	}
	return criteriaFromQuery(r.URL.Query())
}

func NewSSEHandlers(store *dataset.Store, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		store:  store,
		logger: logger,
	}
}

type tableFragment struct {
	Columns []string
	Rows    [][]string
	Total   int
}

func (h *SSEHandlers) renderTable(total int, rows []models.Shipment) (string, error) {
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
	}

	frag := tableFragment{Columns: models.Columns, Total: total}
	for _, row := range rows {
		cells := make([]string, 0, len(models.Columns))
		for _, v := range row.Values() {
			cells = append(cells, v.String())
		}
		frag.Rows = append(frag.Rows, cells)
	}

	var buf strings.Builder
	err := shipmentTableTemplate.Execute(&buf, frag)
	return buf.String(), err
}

// HandleTable patches the dashboard's data table with the rows matching
// the current filters. Honors the same query parameters as /api/data.
func (h *SSEHandlers) HandleTable(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	total, rows := h.store.Data(h.criteria(r))
	html, err := h.renderTable(total, rows)
	if err != nil {
		h.logger.Error("render shipment table", "error", err)
		return
	}

	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleSummary patches the stat cards above the table.
func (h *SSEHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	summary := h.store.Summary(h.criteria(r))

	var buf strings.Builder
	if err := summaryTemplate.Execute(&buf, summary); err != nil {
		h.logger.Error("render summary cards", "error", err)
		return
	}

	sse.PatchElements(buf.String())

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
