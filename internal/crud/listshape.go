package crud

import (
	"bytes"
	"encoding/json"

	"github.com/gmorais/backoffice/internal/store"
)

// pagedEnvelope is the {results, count} list-response shape.
type pagedEnvelope struct {
	Results []*store.Record `json:"results"`
	Count   *int            `json:"count"`
}

// ResolveListResponse normalizes a raw list-response body into the tagged
// union the orchestrator consumes. Backends return one of three shapes: a
// bare array (total = its length), a {results, count} envelope, or something
// unrecognized — treated as empty with total 0, never an error. Resolution
// happens here, once, at the service boundary; nothing downstream sniffs
// shapes again.
func ResolveListResponse(raw []byte) store.ListResult {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return store.ListResult{Shape: store.ShapeUnknown}
	}

	if trimmed[0] == '[' {
		var items []*store.Record
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return store.ListResult{Shape: store.ShapeUnknown}
		}
		return store.ListResult{Shape: store.ShapeArray, Items: items, Total: len(items)}
	}

	var env pagedEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Results == nil {
		return store.ListResult{Shape: store.ShapeUnknown}
	}
	total := len(env.Results)
	if env.Count != nil {
		total = *env.Count
	}
	return store.ListResult{Shape: store.ShapePaged, Items: env.Results, Total: total}
}
