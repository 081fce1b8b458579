/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package sketchbook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"qdgraphics/internal/config"
	applog "qdgraphics/internal/log"
	"qdgraphics/internal/sketch"
)

// ErrNotFound is returned when no sketch has the requested name.
var ErrNotFound = errors.New("sketch not found")

// Entry is one stored sketch.
type Entry struct {
	Name       string
	Width      float64
	Height     float64
	Primitives int
	SVG        string
	UpdatedAt  time.Time
}

// Store is a named collection of rendered sketches.
type Store struct {
	db     *sql.DB
	driver string
	log    *slog.Logger
}

// OpenSQLite opens (creating if needed) the sketchbook database file at path
// with WAL journaling.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("sketchbook"), "open").With(slog.String("path", path))
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sketchbook path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sketchbook dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	return newStore(ctx, db, config.DriverSQLite, l)
}

// OpenPostgres connects to a shared Postgres sketchbook through pgx.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("sketchbook"), "open").With(slog.String("driver", config.DriverPostgres))
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		l.Error("ping failed", slog.Any("err", err))
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return newStore(ctx, db, config.DriverPostgres, l)
}

// Open picks the backend named by cfg.Driver. dsn is only used for postgres.
func Open(ctx context.Context, cfg config.SketchbookConfig, dsn string) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return OpenSQLite(ctx, cfg.Path)
	case config.DriverPostgres:
		return OpenPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown sketchbook driver %q", cfg.Driver)
	}
}

func newStore(ctx context.Context, db *sql.DB, driver string, l *slog.Logger) (*Store, error) {
	s := &Store{db: db, driver: driver, log: l}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}
	l.Info("sketchbook ready", slog.String("driver", driver))
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Driver reports the backend in use.
func (s *Store) Driver() string { return s.driver }

// rebind rewrites ? placeholders to $1, $2... for postgres.
func (s *Store) rebind(q string) string {
	if s.driver != config.DriverPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Save renders c and stores it under name, replacing any previous version.
func (s *Store) Save(ctx context.Context, name string, c *sketch.Context) error {
	doc, err := c.Render()
	if err != nil {
		return fmt.Errorf("render %q: %w", name, err)
	}
	e := Entry{Name: name, Width: c.Width(), Height: c.Height(), Primitives: c.Len(), SVG: doc}
	if err := s.Put(ctx, e); err != nil {
		return err
	}
	s.log.InfoContext(applog.ContextWithSketch(ctx, e.Name), "sketch saved", applog.Scene(c))
	return nil
}

// Put stores an already rendered entry, replacing any sketch with the same
// name. A zero UpdatedAt is set to the current time.
func (s *Store) Put(ctx context.Context, e Entry) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return errors.New("sketch name is required")
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	q := s.rebind(`INSERT INTO sketches (name, width, height, primitives, svg, updated_at) VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET width=excluded.width, height=excluded.height,
		primitives=excluded.primitives, svg=excluded.svg, updated_at=excluded.updated_at`)
	ts := e.UpdatedAt.UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, q, e.Name, e.Width, e.Height, e.Primitives, e.SVG, ts); err != nil {
		return fmt.Errorf("save %q: %w", e.Name, err)
	}
	return nil
}

// Get returns the sketch stored under name.
func (s *Store) Get(ctx context.Context, name string) (Entry, error) {
	q := s.rebind(`SELECT name, width, height, primitives, svg, updated_at FROM sketches WHERE name=?`)
	e, err := scanEntry(s.db.QueryRowContext(ctx, q, name))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return e, err
}

// List returns every stored sketch ordered by name. SVG bodies are omitted.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, width, height, primitives, '', updated_at FROM sketches ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the sketch stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM sketches WHERE name=?`), name)
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	s.log.InfoContext(applog.ContextWithSketch(ctx, name), "sketch deleted")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (Entry, error) {
	var e Entry
	var ts string
	if err := r.Scan(&e.Name, &e.Width, &e.Height, &e.Primitives, &e.SVG, &ts); err != nil {
		return Entry{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		e.UpdatedAt = t
	}
	return e, nil
}
