package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gmorais/backoffice/internal/config"
	"github.com/gmorais/backoffice/internal/events"
	"github.com/gmorais/backoffice/internal/schema"
	"github.com/gmorais/backoffice/internal/store"
)

// EntityHandler serves the generic CRUD surface for every entity of a
// backend. There is no per-entity code: the entity name is a path parameter
// and presentation metadata is inferred from stored records plus the
// catalog.
type EntityHandler struct {
	backend store.Backend
	bus     *events.Bus
	catalog config.Catalog
}

// NewEntityHandler creates the handler. bus may be nil when no change feed
// is wanted; catalog may be nil.
func NewEntityHandler(backend store.Backend, bus *events.Bus, catalog config.Catalog) *EntityHandler {
	return &EntityHandler{backend: backend, bus: bus, catalog: catalog}
}

// Routes registers the entity surface on r.
func (h *EntityHandler) Routes(r chi.Router) {
	r.Get("/entities", h.ListEntities)
	r.Route("/{entity}", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/schema", h.Schema)
		r.Get("/proximo-codigo", h.NextCode)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	res, err := h.backend.List(r.Context(), entity, parseListParams(r))
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	items := res.Items
	if items == nil {
		items = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": items,
		"count":   res.Total,
	})
}

func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	rec, err := h.backend.Get(r.Context(), entity, chi.URLParam(r, "id"))
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	rec, err := decodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		return
	}
	created, err := h.backend.Create(r.Context(), entity, rec)
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	h.publish(r, entity, created, events.ActionCreated)
	writeJSON(w, http.StatusCreated, created)
}

func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	partial, err := decodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		return
	}
	updated, err := h.backend.Update(r.Context(), entity, chi.URLParam(r, "id"), partial)
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	h.publish(r, entity, updated, events.ActionUpdated)
	writeJSON(w, http.StatusOK, updated)
}

func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	id := chi.URLParam(r, "id")
	if err := h.backend.Delete(r.Context(), entity, id); err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	if h.bus != nil {
		h.bus.Publish(r.Context(), events.Change{Entity: entity, ID: id, Action: events.ActionDeleted})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntityHandler) NextCode(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	code, err := h.backend.NextCode(r.Context(), entity)
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"proximo_codigo": code})
}

func (h *EntityHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	names, err := h.backend.Entities(r.Context())
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entities": names})
}

// Schema infers the presentation schema from the entity's newest data. With
// no stored records there is nothing to infer from and the schema is empty.
func (h *EntityHandler) Schema(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	res, err := h.backend.List(r.Context(), entity, store.ListParams{Page: 1, PageSize: 1})
	if err != nil {
		storeErrorToHTTP(w, err)
		return
	}

	payload := map[string]any{
		"entity":  entity,
		"columns": []schema.Column{},
		"form":    []schema.FormField{},
	}
	if len(res.Items) > 0 {
		ec := h.catalog.Entity(entity)
		sample := res.Items[0]
		if cols := schema.Compose(res.Items, ec.ColumnConfig()); cols != nil {
			payload["columns"] = cols
		}
		if fields := schema.BuildForm(sample, ec.FormConfig()); fields != nil {
			payload["form"] = fields
		}
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *EntityHandler) publish(r *http.Request, entity string, rec *store.Record, action string) {
	if h.bus == nil {
		return
	}
	id, _ := store.RecordID(rec)
	h.bus.Publish(r.Context(), events.Change{Entity: entity, ID: id, Action: action})
}
