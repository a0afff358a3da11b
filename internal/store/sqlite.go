package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLite implements Backend on an embedded SQLite database. Records live in
// one generic table as JSON text; insertion order is the autoincrement pk.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an open database handle. The caller owns the handle and
// must have registered the sqlite driver (modernc.org/sqlite).
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Migrate creates the records and sequences tables.
func (s *SQLite) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			ord    INTEGER PRIMARY KEY AUTOINCREMENT,
			entity TEXT NOT NULL,
			id     TEXT NOT NULL,
			data   TEXT NOT NULL,
			UNIQUE (entity, id)
		);
		CREATE INDEX IF NOT EXISTS idx_records_entity ON records (entity, ord);

		CREATE TABLE IF NOT EXISTS sequences (
			entity TEXT PRIMARY KEY,
			seq    INTEGER NOT NULL
		);
	`)
	return err
}

func (s *SQLite) List(ctx context.Context, entity string, params ListParams) (ListResult, error) {
	where := "entity = ?"
	args := []any{entity}
	if params.Search != "" {
		where += " AND lower(data) LIKE '%' || lower(?) || '%'"
		args = append(args, params.Search)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM records WHERE " + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return ListResult{}, fmt.Errorf("counting records: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT data FROM records WHERE %s ORDER BY ord LIMIT ? OFFSET ?", where)
	rows, err := s.db.QueryContext(ctx, query, append(args, params.Limit(), params.Offset())...)
	if err != nil {
		return ListResult{}, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var items []*Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return ListResult{}, fmt.Errorf("scanning record: %w", err)
		}
		rec := NewRecord()
		if err := json.Unmarshal(raw, rec); err != nil {
			return ListResult{}, fmt.Errorf("decoding record: %w", err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return ListResult{}, err
	}
	return ListResult{Shape: ShapePaged, Items: items, Total: total}, nil
}

func (s *SQLite) Get(ctx context.Context, entity, id string) (*Record, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM records WHERE entity = ? AND id = ?", entity, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec := NewRecord()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return rec, nil
}

func (s *SQLite) Create(ctx context.Context, entity string, rec *Record) (*Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stored := rec.Clone()
	id := ensureID(stored, func() int64 {
		var seq int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO sequences (entity, seq) VALUES (?, 1)
			ON CONFLICT (entity) DO UPDATE SET seq = seq + 1
			RETURNING seq`, entity).Scan(&seq)
		if err != nil {
			return 0
		}
		return seq
	})

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO records (entity, id, data) VALUES (?, ?, ?)", entity, id, data); err != nil {
		return nil, fmt.Errorf("inserting record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *SQLite) Update(ctx context.Context, entity, id string, partial *Record) (*Record, error) {
	rec, err := s.Get(ctx, entity, id)
	if err != nil {
		return nil, err
	}
	rec.Merge(partial)
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE records SET data = ? WHERE entity = ? AND id = ?", data, entity, id); err != nil {
		return nil, fmt.Errorf("updating record: %w", err)
	}
	return rec, nil
}

func (s *SQLite) Delete(ctx context.Context, entity, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM records WHERE entity = ? AND id = ?", entity, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) NextCode(ctx context.Context, entity string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx,
		"SELECT seq FROM sequences WHERE entity = ?", entity).Scan(&seq)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return seq + 1, nil
}

func (s *SQLite) Entities(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT entity FROM records ORDER BY entity")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
