// Package audit keeps an in-memory trail of entity changes for inspection.
// Intended for demos and local debugging — the trail is bounded and lost on
// restart.
package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gmorais/backoffice/internal/events"
)

// QueryOptions filters a trail query. Zero values mean no filter.
type QueryOptions struct {
	Entity string
	Action string
	Since  *time.Time
	Until  *time.Time
	Limit  int
}

// Trail is a bounded, in-memory change log. It subscribes to the change bus
// and is safe for concurrent use.
type Trail struct {
	mu      sync.RWMutex
	entries []events.Change
	max     int
}

// NewTrail creates a trail holding at most max changes; older ones are
// evicted first.
func NewTrail(max int) *Trail {
	if max < 1 {
		max = 1000
	}
	return &Trail{max: max}
}

// HandleChange records one change. Satisfies events.Handler.
func (t *Trail) HandleChange(_ context.Context, chg events.Change) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, chg)
	if len(t.entries) > t.max {
		t.entries = t.entries[len(t.entries)-t.max:]
	}
	return nil
}

// Query returns matching changes newest-first plus the total match count
// before the limit was applied.
func (t *Trail) Query(opts QueryOptions) ([]events.Change, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var matched []events.Change
	for _, e := range t.entries {
		if opts.Entity != "" && e.Entity != opts.Entity {
			continue
		}
		if opts.Action != "" && e.Action != opts.Action {
			continue
		}
		if opts.Since != nil && e.At.Before(*opts.Since) {
			continue
		}
		if opts.Until != nil && e.At.After(*opts.Until) {
			continue
		}
		matched = append(matched, e)
	}

	// Sort by change time DESC.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].At.After(matched[j].At)
	})

	total := len(matched)
	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total
}
