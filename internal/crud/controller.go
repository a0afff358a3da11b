package crud

import (
	"context"
	"sync"

	"github.com/gmorais/backoffice/internal/store"
)

// ConfirmDeletePrompt is shown before a guarded delete.
const ConfirmDeletePrompt = "Tem certeza que deseja excluir este registro?"

// Pagination is the list paging block of a controller snapshot.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// State is a point-in-time snapshot of a controller's screen state. Snapshots
// are values: mutating one never touches the controller.
type State struct {
	Data       []*store.Record
	Current    *store.Record
	Loading    bool
	Err        string
	SearchTerm string
	Pagination Pagination
}

// ControllerConfig binds a Controller to its entity and presentation hooks.
type ControllerConfig struct {
	// BasePath is the route prefix for this entity, e.g. "/clientes".
	BasePath string
	// PageSize overrides the default list page size when positive.
	PageSize int
	// RecordID extracts the identifier of a record. Defaults to the
	// primary-key heuristic over the record's own fields.
	RecordID func(rec *store.Record) string
	// Navigator and Confirmer are optional; absent they become no-ops
	// (deletes proceed unconfirmed).
	Navigator Navigator
	Confirmer Confirmer
}

// Controller orchestrates the CRUD lifecycle for one entity. All state
// transitions happen under its lock; reads go through State(). Concurrent
// loads are serialized by a generation counter: only the newest request may
// commit its result, superseded responses are dropped on the floor.
type Controller struct {
	svc      Service
	basePath string
	pageSize int
	recordID func(rec *store.Record) string
	nav      Navigator
	confirm  Confirmer

	initOnce sync.Once

	mu    sync.Mutex
	gen   uint64
	state State
}

// NewController builds a controller over svc. The zero ControllerConfig is
// usable: default page size, heuristic record ids, no navigation.
func NewController(svc Service, cfg ControllerConfig) *Controller {
	c := &Controller{
		svc:      svc,
		basePath: cfg.BasePath,
		pageSize: cfg.PageSize,
		recordID: cfg.RecordID,
		nav:      cfg.Navigator,
		confirm:  cfg.Confirmer,
	}
	if c.pageSize <= 0 {
		c.pageSize = store.DefaultPageSize
	}
	if c.recordID == nil {
		c.recordID = func(rec *store.Record) string {
			id, _ := store.RecordID(rec)
			return id
		}
	}
	return c
}

// State returns a snapshot of the current screen state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Init loads the first page exactly once. Subsequent calls are no-ops, so
// screens may call it from every render.
func (c *Controller) Init(ctx context.Context) {
	c.initOnce.Do(func() {
		c.LoadList(ctx, 1, "")
	})
}

// LoadList fetches one page and commits it as the visible list. On failure
// the error message is recorded and the list is reset to empty; the error is
// not propagated, list screens recover in place. A response that was
// superseded by a newer load is discarded entirely.
func (c *Controller) LoadList(ctx context.Context, page int, search string) {
	gen := c.beginLoad()

	res, err := c.svc.List(ctx, store.ListParams{
		Page:     page,
		PageSize: c.pageSize,
		Search:   search,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.state.Loading = false
	if err != nil {
		c.state.Err = errorMessage(err)
		c.state.Data = nil
		c.state.Pagination = Pagination{Page: page, PageSize: c.pageSize}
		return
	}
	c.state.Err = ""
	c.state.Data = res.Items
	c.state.SearchTerm = search
	c.state.Pagination = Pagination{Page: page, PageSize: c.pageSize, Total: res.Total}
}

// LoadRecord fetches a single record into Current. On failure it records the
// error, leaves the previous Current in place and returns nil.
func (c *Controller) LoadRecord(ctx context.Context, id string) *store.Record {
	gen := c.beginLoad()

	rec, err := c.svc.Get(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.state.Loading = false
	if err != nil {
		c.state.Err = errorMessage(err)
		return nil
	}
	c.state.Err = ""
	c.state.Current = rec
	return rec
}

// CreateRecord persists a new record, then reloads the current page so the
// list reflects it. The error is both recorded and returned: forms need it
// to stay open.
func (c *Controller) CreateRecord(ctx context.Context, rec *store.Record) (*store.Record, error) {
	created, err := c.svc.Create(ctx, rec)
	if err != nil {
		c.setErr(err)
		return nil, err
	}
	c.reload(ctx)
	return created, nil
}

// UpdateRecord applies a partial update, refreshes Current with the result
// and reloads the current page.
func (c *Controller) UpdateRecord(ctx context.Context, id string, partial *store.Record) (*store.Record, error) {
	updated, err := c.svc.Update(ctx, id, partial)
	if err != nil {
		c.setErr(err)
		return nil, err
	}
	c.mu.Lock()
	c.state.Err = ""
	c.state.Current = updated
	c.mu.Unlock()
	c.reload(ctx)
	return updated, nil
}

// DeleteRecord removes a record and reloads the list. Deleting the record
// currently on screen also clears Current and navigates back to the entity's
// base path.
func (c *Controller) DeleteRecord(ctx context.Context, id string) error {
	if err := c.svc.Delete(ctx, id); err != nil {
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	c.state.Err = ""
	deletedCurrent := c.state.Current != nil && c.recordID(c.state.Current) == id
	if deletedCurrent {
		c.state.Current = nil
	}
	c.mu.Unlock()

	c.reload(ctx)
	if deletedCurrent {
		c.navigate(c.basePath)
	}
	return nil
}

// HandleDelete runs DeleteRecord behind the confirmation hook. Without a
// Confirmer the delete proceeds directly.
func (c *Controller) HandleDelete(ctx context.Context, id string) error {
	if c.confirm != nil && !c.confirm.Confirm(ConfirmDeletePrompt) {
		return nil
	}
	return c.DeleteRecord(ctx, id)
}

// Search starts a fresh query from page 1.
func (c *Controller) Search(ctx context.Context, term string) {
	c.LoadList(ctx, 1, term)
}

// ChangePage moves to another page of the current query.
func (c *Controller) ChangePage(ctx context.Context, page int) {
	c.mu.Lock()
	term := c.state.SearchTerm
	c.mu.Unlock()
	c.LoadList(ctx, page, term)
}

// View navigates to a record's detail route.
func (c *Controller) View(id string) { c.navigate(c.basePath + "/" + id) }

// Edit navigates to a record's edit route.
func (c *Controller) Edit(id string) { c.navigate(c.basePath + "/" + id + "/editar") }

// New navigates to the creation route.
func (c *Controller) New() { c.navigate(c.basePath + "/novo") }

// BasePath returns the entity's route prefix.
func (c *Controller) BasePath() string { return c.basePath }

// NextCode exposes the optional sequential-key hint when the bound service
// supports it.
func (c *Controller) NextCode(ctx context.Context) (int64, bool) {
	nc, ok := c.svc.(NextCoder)
	if !ok {
		return 0, false
	}
	code, err := nc.NextCode(ctx)
	if err != nil {
		return 0, false
	}
	return code, true
}

// beginLoad bumps the generation counter and flips the loading flag; the
// returned generation is the load's commit token.
func (c *Controller) beginLoad() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state.Loading = true
	return c.gen
}

func (c *Controller) reload(ctx context.Context) {
	c.mu.Lock()
	page := c.state.Pagination.Page
	term := c.state.SearchTerm
	c.mu.Unlock()
	if page <= 0 {
		page = 1
	}
	c.LoadList(ctx, page, term)
}

func (c *Controller) setErr(err error) {
	c.mu.Lock()
	c.state.Err = errorMessage(err)
	c.mu.Unlock()
}

func (c *Controller) navigate(path string) {
	if c.nav != nil {
		c.nav.Navigate(path)
	}
}
