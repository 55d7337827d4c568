package handlers

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mit-dashboard/internal/dataset"
	"mit-dashboard/internal/errors"
	"mit-dashboard/internal/models"
	"mit-dashboard/internal/observability"
)

const cacheMaxAge = "public, max-age=300"

type APIHandlers struct {
	store  *dataset.Store
	logger *slog.Logger
}

func NewAPIHandlers(store *dataset.Store, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		store:  store,
		logger: logger,
	}
}

// criteriaFromQuery builds the filter from request parameters. Empty
// values and the dropdowns' "All" sentinel mean no constraint; malformed
// values are never rejected, they simply match nothing.
func criteriaFromQuery(q url.Values) dataset.Criteria {
	return dataset.Criteria{
		Division:    optParam(q, "division"),
		AgeBucket:   optParam(q, "age_bucket"),
		Transporter: optParam(q, "transporter"),
		PoNo:        optParam(q, "po_no"),
		LRStatus:    dataset.ParseLRStatus(q.Get("lr_status")),
	}
}

func optParam(q url.Values, name string) *string {
	return optValue(q.Get(name))
}

func optValue(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" || v == "All" {
		return nil
	}
	return &v
}

func (h *APIHandlers) HandleFilters(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.store.Facets(), map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

type dataResponse struct {
	TotalRecords int               `json:"total_records"`
	Data         []models.Shipment `json:"data"`
}

func (h *APIHandlers) HandleData(w http.ResponseWriter, r *http.Request) {
	total, rows := h.store.Data(criteriaFromQuery(r.URL.Query()))
	errors.WriteSuccess(w, dataResponse{TotalRecords: total, Data: rows})
}

func (h *APIHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	payload, err := h.store.Export(criteriaFromQuery(r.URL.Query()))
	if err != nil {
		appErr := errors.InternalWrap(err, "Export failed")
		if stderrors.Is(err, dataset.ErrNoData) {
			appErr = errors.NoData("No data available to export")
		}
		errors.WriteError(w, h.logger, appErr, requestID)
		return
	}

	if span := observability.GetSpan(r.Context()); span != nil {
		span.SetTag("export.bytes", strconv.Itoa(len(payload)))
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename=`+dataset.ExportFilename)
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	if _, err := w.Write(payload); err != nil {
		h.logger.Error("failed to write export", "error", err, "request_id", requestID)
	}
}

func (h *APIHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.store.Status())
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.store.Stats())
}
