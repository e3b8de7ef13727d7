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
	"path/filepath"
	"testing"
	"time"

	"cardesigner/internal/card"

	_ "modernc.org/sqlite"
)

func openTemp(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "lib", "library.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func ctxT(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestOpenCreatesWALAndVersion(t *testing.T) {
	lib := openTemp(t)
	ctx := ctxT(t)
	var mode string
	if err := lib.db.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" && mode != "WAL" {
		t.Fatalf("expected WAL mode, got %s", mode)
	}
	v, err := lib.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != schemaVersion {
		t.Fatalf("schema = %d, want %d", v, schemaVersion)
	}
}

func TestSaveAppendsRevisions(t *testing.T) {
	lib := openTemp(t)
	ctx := ctxT(t)
	first := []byte(`{"type":"AdaptiveCard","body":[]}`)
	second := []byte(card.DefaultPayload)

	r1, err := lib.Save(ctx, "review", first)
	if err != nil {
		t.Fatalf("Save 1: %v", err)
	}
	r2, err := lib.Save(ctx, "review", second)
	if err != nil {
		t.Fatalf("Save 2: %v", err)
	}
	if r1.Number != 1 || r2.Number != 2 {
		t.Fatalf("revision numbers = %d, %d", r1.Number, r2.Number)
	}

	got, err := lib.Load(ctx, "review")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != string(second) {
		t.Fatalf("Load returned an older revision")
	}
	old, err := lib.LoadRevision(ctx, "review", 1)
	if err != nil || string(old) != string(first) {
		t.Fatalf("LoadRevision(1) = %q, %v", old, err)
	}

	revs, err := lib.Revisions(ctx, "review")
	if err != nil {
		t.Fatalf("Revisions: %v", err)
	}
	if len(revs) != 2 || revs[0].Number != 1 || revs[1].Size != len(second) {
		t.Fatalf("unexpected revisions: %#v", revs)
	}
}

func TestSaveRejectsInvalidPayload(t *testing.T) {
	lib := openTemp(t)
	ctx := ctxT(t)
	_, err := lib.Save(ctx, "bad", []byte(`{"type":"Container"}`))
	var verr *card.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if _, err := lib.Save(ctx, "  ", []byte(card.DefaultPayload)); err == nil {
		t.Fatalf("expected an error for an empty name")
	}
	if entries, _ := lib.List(ctx); len(entries) != 0 {
		t.Fatalf("nothing should have been stored, got %#v", entries)
	}
}

func TestListAndNotFound(t *testing.T) {
	lib := openTemp(t)
	ctx := ctxT(t)
	for _, name := range []string{"zeta", "alpha", "alpha"} {
		if _, err := lib.Save(ctx, name, []byte(card.DefaultPayload)); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}
	entries, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "alpha" || entries[0].Revisions != 2 || entries[1].Revisions != 1 {
		t.Fatalf("unexpected entries: %#v", entries)
	}
	if entries[0].UpdatedAt.IsZero() {
		t.Fatalf("UpdatedAt not parsed")
	}

	if _, err := lib.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) err = %v", err)
	}
	if _, err := lib.LoadRevision(ctx, "alpha", 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadRevision(9) err = %v", err)
	}
	if _, err := lib.Revisions(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Revisions(missing) err = %v", err)
	}
}

func TestPruneAndDelete(t *testing.T) {
	lib := openTemp(t)
	ctx := ctxT(t)
	for i := 0; i < 4; i++ {
		if _, err := lib.Save(ctx, "c", []byte(card.DefaultPayload)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	n, err := lib.Prune(ctx, "c", 2)
	if err != nil || n != 2 {
		t.Fatalf("Prune = %d, %v", n, err)
	}
	revs, _ := lib.Revisions(ctx, "c")
	if len(revs) != 2 || revs[0].Number != 3 {
		t.Fatalf("unexpected revisions after prune: %#v", revs)
	}
	if _, err := lib.Prune(ctx, "c", 0); err == nil {
		t.Fatalf("keep=0 must be rejected")
	}
	if err := lib.Delete(ctx, "c"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := lib.Load(ctx, "c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("card still loadable after delete: %v", err)
	}
	if err := lib.Delete(ctx, "c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete err = %v", err)
	}
}

// TestMigrationFromV1 opens a database written by schema 1, which lacked the
// revision index.
func TestMigrationFromV1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(2000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ctx := ctxT(t)
	stmts := []string{
		`CREATE TABLE version (id INTEGER PRIMARY KEY CHECK(id=1), schema INTEGER NOT NULL, app TEXT, created_at TEXT NOT NULL, updated_at TEXT NOT NULL);`,
		`INSERT INTO version VALUES (1, 1, 'old', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z');`,
		`CREATE TABLE cards (name TEXT PRIMARY KEY, created_at TEXT NOT NULL, updated_at TEXT NOT NULL);`,
		`CREATE TABLE revisions (id INTEGER PRIMARY KEY, name TEXT NOT NULL, rev INTEGER NOT NULL, saved_at TEXT NOT NULL, payload BLOB NOT NULL);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	_ = db.Close()

	lib, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer lib.Close()
	v, err := lib.SchemaVersion(ctx)
	if err != nil || v != 2 {
		t.Fatalf("schema after migration = %d, %v", v, err)
	}
	var cnt int
	if err := lib.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='ux_revisions_name_rev'`).Scan(&cnt); err != nil || cnt != 1 {
		t.Fatalf("revision index missing: %d, %v", cnt, err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
