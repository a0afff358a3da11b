package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record id does not exist for an entity.
var ErrNotFound = errors.New("record not found")

// Backend is the multi-entity persistence contract. An EntityView narrows a
// Backend to the single-entity service shape the CRUD layer consumes.
type Backend interface {
	List(ctx context.Context, entity string, params ListParams) (ListResult, error)
	Get(ctx context.Context, entity, id string) (*Record, error)
	Create(ctx context.Context, entity string, rec *Record) (*Record, error)
	Update(ctx context.Context, entity, id string, partial *Record) (*Record, error)
	Delete(ctx context.Context, entity, id string) error
	NextCode(ctx context.Context, entity string) (int64, error)
	Entities(ctx context.Context) ([]string, error)
}

// Memory implements Backend using in-memory maps.
// Intended for demos and testing — no database required.
type Memory struct {
	mu       sync.RWMutex
	entities map[string]*memEntity
}

type memEntity struct {
	order   []string // insertion order of ids
	records map[string]*Record
	seq     int64
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{entities: make(map[string]*memEntity)}
}

func (m *Memory) entity(name string) *memEntity {
	e, ok := m.entities[name]
	if !ok {
		e = &memEntity{records: make(map[string]*Record)}
		m.entities[name] = e
	}
	return e
}

func (m *Memory) List(_ context.Context, entity string, params ListParams) (ListResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entities[entity]
	if !ok {
		return ListResult{Shape: ShapePaged}, nil
	}

	var matched []*Record
	for _, id := range e.order {
		rec := e.records[id]
		if params.Search != "" && !recordMatches(rec, params.Search) {
			continue
		}
		matched = append(matched, rec)
	}

	total := len(matched)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit()
	if end > total {
		end = total
	}

	items := make([]*Record, 0, end-start)
	for _, rec := range matched[start:end] {
		items = append(items, rec.Clone())
	}
	return ListResult{Shape: ShapePaged, Items: items, Total: total}, nil
}

func (m *Memory) Get(_ context.Context, entity, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entities[entity]
	if !ok {
		return nil, ErrNotFound
	}
	rec, ok := e.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (m *Memory) Create(_ context.Context, entity string, rec *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entity(entity)
	stored := rec.Clone()
	id := ensureID(stored, func() int64 {
		e.seq++
		return e.seq
	})
	if _, exists := e.records[id]; exists {
		return nil, errors.New("record id already exists: " + id)
	}
	e.records[id] = stored
	e.order = append(e.order, id)
	return stored.Clone(), nil
}

func (m *Memory) Update(_ context.Context, entity, id string, partial *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entities[entity]
	if !ok {
		return nil, ErrNotFound
	}
	rec, ok := e.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Merge(partial)
	return rec.Clone(), nil
}

func (m *Memory) Delete(_ context.Context, entity, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entities[entity]
	if !ok {
		return ErrNotFound
	}
	if _, ok := e.records[id]; !ok {
		return ErrNotFound
	}
	delete(e.records, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) NextCode(_ context.Context, entity string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entity(entity)
	return e.seq + 1, nil
}

func (m *Memory) Entities(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.entities))
	for name := range m.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ensureID makes sure the record carries a primary key and returns its id.
// Records with a codigo_* style key get the next sequential code; records
// with no primary-key field at all get a generated uuid under "id".
func ensureID(rec *Record, nextSeq func() int64) string {
	if id, ok := RecordID(rec); ok {
		return id
	}
	for _, k := range rec.Keys() {
		if strings.HasPrefix(k, "codigo_") {
			rec.Set(k, float64(nextSeq()))
			id, _ := RecordID(rec)
			return id
		}
	}
	id := uuid.NewString()
	rec.Set("id", id)
	return id
}

// recordMatches reports whether any serialized field value contains the
// search term, case-insensitively.
func recordMatches(rec *Record, term string) bool {
	lower := strings.ToLower(term)
	for _, k := range rec.Keys() {
		v, _ := rec.Get(k)
		if v == nil {
			continue
		}
		b, err := json.Marshal(v)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(b)), lower) {
			return true
		}
	}
	return false
}
