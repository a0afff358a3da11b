package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Backend on a shared Postgres database, mirroring the
// SQLite layout with a JSONB column.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool to the given DSN and pings it.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Postgres) Close() {
	s.pool.Close()
}

// Migrate creates the records and sequences tables.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			ord    BIGSERIAL PRIMARY KEY,
			entity TEXT NOT NULL,
			id     TEXT NOT NULL,
			data   JSONB NOT NULL,
			UNIQUE (entity, id)
		);
		CREATE INDEX IF NOT EXISTS idx_records_entity ON records (entity, ord);

		CREATE TABLE IF NOT EXISTS sequences (
			entity TEXT PRIMARY KEY,
			seq    BIGINT NOT NULL
		);
	`)
	return err
}

func (s *Postgres) List(ctx context.Context, entity string, params ListParams) (ListResult, error) {
	where := "entity = $1"
	args := []any{entity}
	if params.Search != "" {
		where += " AND data::text ILIKE '%' || $2 || '%'"
		args = append(args, params.Search)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM records WHERE " + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return ListResult{}, fmt.Errorf("counting records: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT data FROM records WHERE %s ORDER BY ord LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	rows, err := s.pool.Query(ctx, query, append(args, params.Limit(), params.Offset())...)
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

func (s *Postgres) Get(ctx context.Context, entity, id string) (*Record, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		"SELECT data FROM records WHERE entity = $1 AND id = $2", entity, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
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

func (s *Postgres) Create(ctx context.Context, entity string, rec *Record) (*Record, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	stored := rec.Clone()
	id := ensureID(stored, func() int64 {
		var seq int64
		err := tx.QueryRow(ctx, `
			INSERT INTO sequences (entity, seq) VALUES ($1, 1)
			ON CONFLICT (entity) DO UPDATE SET seq = sequences.seq + 1
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
	if _, err := tx.Exec(ctx,
		"INSERT INTO records (entity, id, data) VALUES ($1, $2, $3)", entity, id, data); err != nil {
		return nil, fmt.Errorf("inserting record: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *Postgres) Update(ctx context.Context, entity, id string, partial *Record) (*Record, error) {
	rec, err := s.Get(ctx, entity, id)
	if err != nil {
		return nil, err
	}
	rec.Merge(partial)
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	if _, err := s.pool.Exec(ctx,
		"UPDATE records SET data = $1 WHERE entity = $2 AND id = $3", data, entity, id); err != nil {
		return nil, fmt.Errorf("updating record: %w", err)
	}
	return rec, nil
}

func (s *Postgres) Delete(ctx context.Context, entity, id string) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM records WHERE entity = $1 AND id = $2", entity, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) NextCode(ctx context.Context, entity string) (int64, error) {
	var seq int64
	err := s.pool.QueryRow(ctx,
		"SELECT seq FROM sequences WHERE entity = $1", entity).Scan(&seq)
	if errors.Is(err, pgx.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return seq + 1, nil
}

func (s *Postgres) Entities(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
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
