/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cardesigner/internal/card"
	applog "cardesigner/internal/log"
)

// Entry summarizes one saved card.
type Entry struct {
	Name      string
	Revisions int
	UpdatedAt time.Time
}

// Revision describes one saved version of a card.
type Revision struct {
	Name    string
	Number  int
	SavedAt time.Time
	Size    int
}

// language=SQL
// dialect=SQLite
const upsertCardSQL = `INSERT INTO cards(name, created_at, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`

// language=SQL
// dialect=SQLite
const nextRevSQL = `SELECT COALESCE(MAX(rev), 0) + 1 FROM revisions WHERE name = ?`

// language=SQL
// dialect=SQLite
const insertRevisionSQL = `INSERT INTO revisions(name, rev, saved_at, payload) VALUES (?, ?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestSQL = `SELECT payload FROM revisions WHERE name = ? ORDER BY rev DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const selectRevisionSQL = `SELECT payload FROM revisions WHERE name = ? AND rev = ?`

// language=SQL
// dialect=SQLite
const listCardsSQL = `SELECT c.name, c.updated_at, COUNT(r.id)
	FROM cards c LEFT JOIN revisions r ON r.name = c.name
	GROUP BY c.name ORDER BY c.name`

// language=SQL
// dialect=SQLite
const listRevisionsSQL = `SELECT rev, saved_at, LENGTH(payload) FROM revisions WHERE name = ? ORDER BY rev`

// language=SQL
// dialect=SQLite
const pruneRevisionsSQL = `DELETE FROM revisions WHERE name = ? AND id NOT IN (
	SELECT id FROM revisions WHERE name = ? ORDER BY rev DESC LIMIT ?
)`

// Save validates payload as a card and stores it as the next revision of
// name. It returns the stored revision.
func (lib *Library) Save(ctx context.Context, name string, payload []byte) (Revision, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Revision{}, errors.New("card name is required")
	}
	if err := card.Validate(payload); err != nil {
		return Revision{}, fmt.Errorf("save %s: %w", name, err)
	}
	l := applog.WithOperation(applog.WithComponent("library"), "save")
	ctx = applog.WithSource(ctx, name)
	now := time.Now().UTC()
	ts := now.Format(time.RFC3339Nano)

	tx, err := lib.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsertCardSQL, name, ts, ts); err != nil {
		_ = tx.Rollback()
		return Revision{}, fmt.Errorf("upsert card: %w", err)
	}
	var rev int
	if err := tx.QueryRowContext(ctx, nextRevSQL, name).Scan(&rev); err != nil {
		_ = tx.Rollback()
		return Revision{}, fmt.Errorf("next revision: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertRevisionSQL, name, rev, ts, payload); err != nil {
		_ = tx.Rollback()
		return Revision{}, fmt.Errorf("insert revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Revision{}, fmt.Errorf("commit: %w", err)
	}
	l.DebugContext(ctx, "card saved", slog.Int("rev", rev), slog.Int("bytes", len(payload)))
	return Revision{Name: name, Number: rev, SavedAt: now, Size: len(payload)}, nil
}

// Load returns the newest revision of name.
func (lib *Library) Load(ctx context.Context, name string) ([]byte, error) {
	var blob []byte
	err := lib.db.QueryRowContext(ctx, selectLatestSQL, name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return blob, nil
}

// LoadRevision returns revision rev of name.
func (lib *Library) LoadRevision(ctx context.Context, name string, rev int) ([]byte, error) {
	var blob []byte
	err := lib.db.QueryRowContext(ctx, selectRevisionSQL, name, rev).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %s@%d: %w", name, rev, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s@%d: %w", name, rev, err)
	}
	return blob, nil
}

// List returns all saved cards ordered by name.
func (lib *Library) List(ctx context.Context) ([]Entry, error) {
	rows, err := lib.db.QueryContext(ctx, listCardsSQL)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Name, &ts, &e.Revisions); err != nil {
			return nil, err
		}
		e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Revisions lists the revisions of name, oldest first.
func (lib *Library) Revisions(ctx context.Context, name string) ([]Revision, error) {
	rows, err := lib.db.QueryContext(ctx, listRevisionsSQL, name)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()
	var out []Revision
	for rows.Next() {
		r := Revision{Name: name}
		var ts string
		if err := rows.Scan(&r.Number, &ts, &r.Size); err != nil {
			return nil, err
		}
		r.SavedAt, _ = time.Parse(time.RFC3339Nano, ts)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("revisions %s: %w", name, ErrNotFound)
	}
	return out, nil
}

// Prune keeps the newest keep revisions of name and deletes the rest.
func (lib *Library) Prune(ctx context.Context, name string, keep int) (int64, error) {
	if keep < 1 {
		return 0, errors.New("keep must be at least 1")
	}
	res, err := lib.db.ExecContext(ctx, pruneRevisionsSQL, name, name, keep)
	if err != nil {
		return 0, fmt.Errorf("prune %s: %w", name, err)
	}
	return res.RowsAffected()
}

// Delete removes name and all of its revisions.
func (lib *Library) Delete(ctx context.Context, name string) error {
	tx, err := lib.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM revisions WHERE name = ?`, name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete %s revisions: %w", name, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE name = ?`, name)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("delete %s: %w", name, ErrNotFound)
	}
	return tx.Commit()
}
