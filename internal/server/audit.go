package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gmorais/backoffice/internal/audit"
	"github.com/gmorais/backoffice/internal/events"
)

// auditHandler serves the recent-changes trail.
func auditHandler(trail *audit.Trail) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := audit.QueryOptions{
			Entity: r.URL.Query().Get("entity"),
			Action: r.URL.Query().Get("action"),
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				opts.Limit = n
			}
		}
		if v := r.URL.Query().Get("since"); v != "" {
			ts, err := time.Parse(time.RFC3339, v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "INVALID_SINCE", "since must be RFC3339")
				return
			}
			opts.Since = &ts
		}

		entries, total := trail.Query(opts)
		if entries == nil {
			entries = []events.Change{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"results": entries,
			"count":   total,
		})
	}
}
