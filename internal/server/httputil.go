package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gmorais/backoffice/internal/store"
)

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writeJSON encode error: %v", err)
	}
}

// writeError writes a structured JSON error response. The message key is
// what clients surface to users.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}

// storeErrorToHTTP maps store errors to appropriate HTTP responses.
func storeErrorToHTTP(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "registro não encontrado")
		return
	}
	log.Printf("internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// decodeRecord decodes the request body into an ordered record.
func decodeRecord(r *http.Request) (*store.Record, error) {
	defer r.Body.Close()
	rec := store.NewRecord()
	if err := json.NewDecoder(r.Body).Decode(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// parseListParams extracts page, page_size and search from query params.
// Page size is capped at 100.
func parseListParams(r *http.Request) store.ListParams {
	p := store.ListParams{Page: 1, PageSize: store.DefaultPageSize}
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := q.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.PageSize = n
		}
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	p.Search = q.Get("search")
	return p
}
