// v1
// internal/holiday/store.go
package holiday

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	kindPublic = "public"
	kindSchool = "school"
)

// Store persists fetched holiday calendars in SQLite so repeated runs for
// the same (region, year) do not re-hit the public APIs. Rows never expire:
// a year's calendar is immutable once the year is authoritative, and the
// fallback-computed calendars are cheap to overwrite.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed creates) the cache database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open holiday cache %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS holiday_cache (
    region     TEXT NOT NULL,
    year       INTEGER NOT NULL,
    kind       TEXT NOT NULL,
    payload    TEXT NOT NULL,
    fetched_at TIMESTAMP NOT NULL,
    PRIMARY KEY (region, year, kind)
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init holiday cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, region string, year int, kind string, dst any) (bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM holiday_cache WHERE region = ? AND year = ? AND kind = ?`,
		region, year, kind).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("holiday cache read: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return false, fmt.Errorf("holiday cache payload: %w", err)
	}
	return true, nil
}

func (s *Store) put(ctx context.Context, region string, year int, kind string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("holiday cache encode: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO holiday_cache (region, year, kind, payload, fetched_at) VALUES (?, ?, ?, ?, ?)`,
		region, year, kind, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("holiday cache write: %w", err)
	}
	return nil
}

// Persistent decorates a Source with the SQLite store. Store failures are
// soft: they degrade to a plain pass-through lookup rather than failing the
// projection.
type Persistent struct {
	src   Source
	store *Store
}

// NewPersistent wraps src with the store.
func NewPersistent(src Source, store *Store) *Persistent {
	return &Persistent{src: src, store: store}
}

func (p *Persistent) PublicHolidays(ctx context.Context, region string, year int) ([]PublicHoliday, error) {
	region, err := ValidateRegion(region)
	if err != nil {
		return nil, err
	}
	var cached []PublicHoliday
	if ok, err := p.store.get(ctx, region, year, kindPublic, &cached); err == nil && ok {
		return cached, nil
	}
	out, err := p.src.PublicHolidays(ctx, region, year)
	if err != nil {
		return nil, err
	}
	_ = p.store.put(ctx, region, year, kindPublic, out)
	return out, nil
}

func (p *Persistent) SchoolHolidays(ctx context.Context, region string, year int) ([]SchoolPeriod, error) {
	region, err := ValidateRegion(region)
	if err != nil {
		return nil, err
	}
	var cached []SchoolPeriod
	if ok, err := p.store.get(ctx, region, year, kindSchool, &cached); err == nil && ok {
		return cached, nil
	}
	out, err := p.src.SchoolHolidays(ctx, region, year)
	if err != nil {
		return nil, err
	}
	_ = p.store.put(ctx, region, year, kindSchool, out)
	return out, nil
}
