package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cleansheet/adapters/excel"
	"cleansheet/adapters/render"
	"cleansheet/app"
	"cleansheet/domain/report"
	"cleansheet/domain/table"
	"cleansheet/internal"
	"cleansheet/internal/config"
)

// Server exposes the analysis pipeline over HTTP: upload a file, get the
// analysis bundle back, fetch the rendered report or a workbook export of
// the last analysis
type Server struct {
	router   *chi.Mux
	service  *app.AnalysisService
	exporter *excel.Exporter
	config   config.ServerConfig
	logger   *internal.Logger

	mu         sync.RWMutex
	lastBundle *report.Bundle
	lastTable  *table.Table
}

// NewServer creates a server with its routes mounted
func NewServer(cfg config.ServerConfig, service *app.AnalysisService) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		service:  service,
		exporter: excel.NewExporter(),
		config:   cfg,
		logger:   internal.DefaultLogger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/report", s.handleReport)
		r.Get("/export", s.handleExport)
	})

	return s
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	addr := ":" + s.config.Port
	s.logger.Info("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router returns the mounted router for tests
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a multipart CSV/XLSX upload, runs the pipeline,
// and responds with the analysis bundle. clean=false skips cleaning and
// analyzes the raw table.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	clean := r.URL.Query().Get("clean") != "false"

	t, err := s.ingestUpload(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bundle, err := s.service.Analyze(r.Context(), t, clean)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	active, err := s.service.ActiveTable(r.Context(), t, clean)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	s.lastBundle = &bundle
	s.lastTable = &active
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, bundle)
}

// handleReport renders the last bundle as an HTML report
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	bundle := s.lastBundle
	s.mu.RUnlock()
	if bundle == nil {
		writeError(w, http.StatusNotFound, "no analysis has been run yet")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(render.HTML(*bundle))
}

// handleExport streams the last analysis as an xlsx workbook
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	bundle := s.lastBundle
	t := s.lastTable
	s.mu.RUnlock()
	if bundle == nil || t == nil {
		writeError(w, http.StatusNotFound, "no analysis has been run yet")
		return
	}

	tmp, err := os.CreateTemp("", "cleansheet-*.xlsx")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create export file")
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := s.exporter.WriteWorkbook(*t, *bundle, tmpPath); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="analysis.xlsx"`)
	http.ServeFile(w, r, tmpPath)
}

// ingestUpload spools the upload to disk so the reader can open it by
// path; excelize needs a seekable source
func (s *Server) ingestUpload(file io.Reader, filename string) (table.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".csv" && ext != ".xlsx" {
		return table.Table{}, fmt.Errorf("unsupported file type %q, expected .csv or .xlsx", ext)
	}

	tmp, err := os.CreateTemp("", "cleansheet-upload-*"+ext)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to spool upload: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return table.Table{}, fmt.Errorf("failed to spool upload: %w", err)
	}
	tmp.Close()

	t, err := excel.NewDataReader(tmpPath).ReadTable()
	if err != nil {
		return table.Table{}, err
	}
	t.SourceName = filename
	return t, nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
