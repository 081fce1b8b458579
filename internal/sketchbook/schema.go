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
	"time"

	"qdgraphics/internal/version"
)

// schemaVersion is the current sketchbook schema version.
const schemaVersion = 2

func (s *Store) ensureSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS sketchbook_version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sketches (
			name        TEXT PRIMARY KEY,
			width       DOUBLE PRECISION NOT NULL,
			height      DOUBLE PRECISION NOT NULL,
			primitives  INTEGER NOT NULL,
			svg         TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
	}
	for _, q := range ddl {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var cur int
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT schema FROM sketchbook_version WHERE id=1`)).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Fresh database: the DDL above already matches the first version.
		if _, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO sketchbook_version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`), 1, version.String(), now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
		cur = 1
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}
	return s.migrate(ctx, cur)
}

// migrate applies incremental schema steps up to schemaVersion. Newer
// databases are left alone.
func (s *Store) migrate(ctx context.Context, cur int) error {
	for cur < schemaVersion {
		next := cur + 1
		var stmts []string
		switch next {
		case 2:
			stmts = []string{`CREATE INDEX IF NOT EXISTS idx_sketches_updated ON sketches(updated_at)`}
		}
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", next, err)
		}
		for _, q := range stmts {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d stmt failed: %w", next, err)
			}
		}
		if _, err := tx.ExecContext(ctx, s.rebind(`UPDATE sketchbook_version SET schema=?, app=?, updated_at=? WHERE id=1`), next, version.String(), time.Now().UTC().Format(time.RFC3339)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d update version: %w", next, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d commit: %w", next, err)
		}
		cur = next
	}
	return nil
}

// SchemaVersion reports the schema version recorded in the database.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, `SELECT schema FROM sketchbook_version WHERE id=1`).Scan(&v)
	return v, err
}
