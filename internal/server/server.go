// Package server exposes the dose store over HTTP with the same action-verb
// contract the spreadsheet web endpoint speaks, so the browser front end can
// point at either interchangeably.
package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
	"github.com/ChaseCares/pill-doser/internal/data/store"
	"github.com/ChaseCares/pill-doser/internal/util"
)

// Handler dispatches get/add/remove actions onto a store.
type Handler struct {
	store store.Store
}

// New creates the endpoint handler.
func New(st store.Store) *Handler {
	return &Handler{store: st}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	switch action {
	case "get":
		h.handleGet(w, r)
	case "add":
		h.handleAdd(w, r)
	case "remove":
		h.handleRemove(w, r)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown action %q", action))
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Events(r.Context())
	if err != nil {
		util.LogErrorf("get: store failure: %v", err)
		writeError(w, http.StatusBadGateway, "store unavailable")
		return
	}
	if records == nil {
		records = []dose.Raw{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "add requires POST")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	var record dose.Raw
	if err := sonic.Unmarshal(body, &record); err != nil {
		writeError(w, http.StatusBadRequest, "malformed record")
		return
	}
	if record.Timestamp == "" {
		writeError(w, http.StatusBadRequest, "timestamp is required")
		return
	}

	if err := h.store.Append(r.Context(), record); err != nil {
		util.LogErrorf("add: store failure: %v", err)
		writeError(w, http.StatusBadGateway, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "remove requires POST")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	var req struct {
		Timestamp string `json:"timestamp"`
	}
	if err := sonic.Unmarshal(body, &req); err != nil || req.Timestamp == "" {
		writeError(w, http.StatusBadRequest, "timestamp is required")
		return
	}

	removed, err := h.store.Remove(r.Context(), req.Timestamp)
	if err != nil {
		util.LogErrorf("remove: store failure: %v", err)
		writeError(w, http.StatusBadGateway, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encoding failure")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"error": %q}`, msg)
}
