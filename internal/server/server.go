package server

import (
	"log/slog"
	"net/http"

	"mit-dashboard/internal/dataset"
	"mit-dashboard/internal/handlers"
)

type Server struct {
	store       *dataset.Store
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(store *dataset.Store, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		store:       store,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(store, logger),
		sseHandlers: handlers.NewSSEHandlers(store, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/filters", s.apiHandlers.HandleFilters)
	s.mux.HandleFunc("GET /api/data", s.apiHandlers.HandleData)
	s.mux.HandleFunc("GET /api/export", s.apiHandlers.HandleExport)
	s.mux.HandleFunc("GET /api/status", s.apiHandlers.HandleStatus)

	// Datastar SSE fragments for the dashboard
	s.mux.HandleFunc("GET /sse/table", s.sseHandlers.HandleTable)
	s.mux.HandleFunc("GET /sse/summary", s.sseHandlers.HandleSummary)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
