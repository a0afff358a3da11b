// Package crud drives the uniform list/detail/create/update/delete lifecycle
// for any entity type. A Controller is bound to exactly one entity service
// and owns its screen state exclusively; consuming screens read state
// snapshots and invoke the lifecycle operations.
package crud

import (
	"context"

	"github.com/gmorais/backoffice/internal/store"
)

// Service is the abstract entity contract a Controller is bound to. The core
// depends only on this shape, never on a concrete transport: store.EntityView
// satisfies it for embedded backends, rest.Client for remote APIs.
type Service interface {
	List(ctx context.Context, params store.ListParams) (store.ListResult, error)
	Get(ctx context.Context, id string) (*store.Record, error)
	Create(ctx context.Context, rec *store.Record) (*store.Record, error)
	Update(ctx context.Context, id string, partial *store.Record) (*store.Record, error)
	Delete(ctx context.Context, id string) error
}

// NextCoder is the optional extension for services that can produce the next
// sequential business key.
type NextCoder interface {
	NextCode(ctx context.Context) (int64, error)
}

// Navigator receives route changes after mutations. The presentation layer
// supplies the implementation; the core never touches routing machinery.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a plain function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a plain function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }
