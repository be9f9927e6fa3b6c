package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Dan9191/finance-insights/internal/models"
	"github.com/Dan9191/finance-insights/internal/observability"
	"github.com/Dan9191/finance-insights/internal/service"
	"github.com/sirupsen/logrus"
)

// DataStore exposes the dataset snapshot and its reload
type DataStore interface {
	Current() (*models.Dataset, bool)
	Reload(ctx context.Context) error
}

type Handler struct {
	svc   *service.Service
	store DataStore
	log   *logrus.Logger
}

func NewHandler(svc *service.Service, store DataStore, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, store: store, log: log}
}

// MaxQueryBytes bounds the size of a /query request body
const MaxQueryBytes = 64 << 10

type queryRequest struct {
	Query       string          `json:"query"`
	Permissions map[string]bool `json:"permissions"`
}

type queryResponse struct {
	Response string `json:"response"`
}

type healthResponse struct {
	Status     string     `json:"status"`
	DataLoaded bool       `json:"data_loaded"`
	LoadedAt   *time.Time `json:"loaded_at,omitempty"`
	Source     string     `json:"source,omitempty"`
}

// Query answers a natural-language finance question
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	r.Body = http.MaxBytesReader(w, r.Body, MaxQueryBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			observability.Entry(r.Context(), h.log).Warnf("Query body exceeds %d bytes", tooLarge.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, queryResponse{Response: "The request body is too large."})
			return
		}
		observability.Entry(r.Context(), h.log).Warnf("Invalid query body: %v", err)
		writeJSON(w, http.StatusBadRequest, queryResponse{Response: "Please send a JSON body with a query and permissions."})
		return
	}

	resp := h.svc.Answer(r.Context(), service.Request{
		Query:       req.Query,
		Permissions: req.Permissions,
	})

	status := http.StatusOK
	if resp.Fault {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, queryResponse{Response: resp.Text})
}

// Health reports whether a dataset snapshot is published
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.store.Current()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded"})
		return
	}
	loadedAt := ds.LoadedAt
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		DataLoaded: true,
		LoadedAt:   &loadedAt,
		Source:     ds.Source,
	})
}

// Reload swaps in a freshly loaded snapshot
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	log := observability.Entry(r.Context(), h.log)
	if err := h.store.Reload(r.Context()); err != nil {
		log.Errorf("Admin reload failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "reload failed; previous data kept"})
		return
	}
	log.Info("Admin reload succeeded")
	h.Health(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
