// Package gateway exposes HTTP endpoints for health monitoring, metrics
// and the patient facade.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/WebQx/webqx-sub005/internal/core/domain"
	"github.com/WebQx/webqx-sub005/internal/ehr"
	"github.com/WebQx/webqx-sub005/internal/integration/audit"
	"github.com/WebQx/webqx-sub005/internal/sync/interval"
)

const serviceName = "WebQx Healthcare Integration"
const serviceVersion = "1.0.0"

// Server provides the HTTP surface of the integration service.
type Server struct {
	auditLog *audit.Log
	calc     *interval.Calculator
	client   *ehr.Client
	server   *http.Server
}

// NewServer wires the HTTP routes.
func NewServer(auditLog *audit.Log, calc *interval.Calculator, client *ehr.Client, port int) *Server {
	mux := http.NewServeMux()
	s := &Server{
		auditLog: auditLog,
		calc:     calc,
		client:   client,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/health/detailed", s.handleDetailed)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/patients", s.handlePatients)
	mux.HandleFunc("/api/patients/", s.handlePatientByID)
	mux.HandleFunc("/api/audit", s.handleAudit)
	mux.HandleFunc("/api/sync/intervals", s.handleSyncIntervals)

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"service":   serviceName,
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   serviceVersion,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.auditLog.Snapshot()
	code := http.StatusOK
	if snap.Status == audit.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": string(snap.Status)})
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.auditLog.Snapshot())
}

func (s *Server) handlePatients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		res := s.client.ListPatients(r.Context(), actor(r))
		if !res.OK() {
			writeJSON(w, http.StatusBadGateway, res.Err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"patients": res.Value,
			"count":    len(res.Value),
		})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePatientByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/patients/")
	res := s.client.GetPatient(r.Context(), id, actor(r))
	if !res.OK() {
		code := http.StatusBadGateway
		if res.Err.Code == domain.CodeValidationFailed {
			code = http.StatusBadRequest
		} else if strings.Contains(res.Err.Message, "not found") {
			code = http.StatusNotFound
		}
		writeJSON(w, code, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, res.Value)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	entries := s.auditLog.Entries(limit, r.URL.Query().Get("operation"))
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleSyncIntervals(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category":    category,
		"criticality": s.calc.Criticality(category),
		"history":     s.calc.History(category, limit),
	})
}

func actor(r *http.Request) string {
	return r.Header.Get("X-Actor-ID")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
