package store

import "context"

// EntityView narrows a multi-entity Backend to a single entity. It satisfies
// the CRUD layer's service contract, which is always bound to one entity type.
type EntityView struct {
	backend Backend
	entity  string
}

// NewEntityView binds a backend to one entity.
func NewEntityView(b Backend, entity string) *EntityView {
	return &EntityView{backend: b, entity: entity}
}

// Entity returns the bound entity name.
func (v *EntityView) Entity() string { return v.entity }

func (v *EntityView) List(ctx context.Context, params ListParams) (ListResult, error) {
	return v.backend.List(ctx, v.entity, params)
}

func (v *EntityView) Get(ctx context.Context, id string) (*Record, error) {
	return v.backend.Get(ctx, v.entity, id)
}

func (v *EntityView) Create(ctx context.Context, rec *Record) (*Record, error) {
	return v.backend.Create(ctx, v.entity, rec)
}

func (v *EntityView) Update(ctx context.Context, id string, partial *Record) (*Record, error) {
	return v.backend.Update(ctx, v.entity, id, partial)
}

func (v *EntityView) Delete(ctx context.Context, id string) error {
	return v.backend.Delete(ctx, v.entity, id)
}

func (v *EntityView) NextCode(ctx context.Context) (int64, error) {
	return v.backend.NextCode(ctx, v.entity)
}
