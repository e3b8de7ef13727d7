/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardesigner/internal/card"
)

// cli runs one command line with an isolated config and returns stdout.
func cli(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CARDD_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("CARDD_LOG_LEVEL", "error")
	var out bytes.Buffer
	root := newRootCmd(newApp())
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustCLI(t *testing.T, args ...string) string {
	t.Helper()
	out, err := cli(t, args...)
	if err != nil {
		t.Fatalf("cardesigner %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestVersion(t *testing.T) {
	if out := mustCLI(t, "version"); !strings.HasPrefix(out, "cardesigner version ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestInspectSample(t *testing.T) {
	out := mustCLI(t, "inspect", "--select", "1")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.Contains(lines[0], "AdaptiveCard") || !strings.Contains(lines[0], "Add TextBlock inside") {
		t.Fatalf("first line should be the card peer: %q", lines[0])
	}
	if !strings.Contains(lines[1], "*   Container") {
		t.Fatalf("selected container should be marked and indented: %q", lines[1])
	}
	if !strings.Contains(out, "Action.OpenUrl") {
		t.Fatalf("action peers missing:\n%s", out)
	}
}

func TestSheetPrintsFields(t *testing.T) {
	out := mustCLI(t, "sheet", "--peer", "2")
	if !strings.Contains(out, "TextBlock") || !strings.Contains(out, "Wrap") {
		t.Fatalf("unexpected sheet:\n%s", out)
	}
}

func TestExecWritesCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	out := mustCLI(t, "exec", "--peer", "0", "--command", "add textblock inside", "--out", path, "--metrics")
	if !strings.Contains(out, "written to "+path) {
		t.Fatalf("missing write confirmation:\n%s", out)
	}
	if !strings.Contains(out, `cardesigner_peer_commands_total{command="Add TextBlock inside"} 1`) {
		t.Fatalf("metrics missing:\n%s", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "New TextBlock") {
		t.Fatalf("added text block not saved")
	}
	mustCLI(t, "validate", path)
}

func TestExecUnknownCommand(t *testing.T) {
	if _, err := cli(t, "exec", "--peer", "0", "--command", "Fly"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if _, err := cli(t, "exec", "--peer", "999", "--command", "Remove"); err == nil {
		t.Fatalf("expected error for peer out of range")
	}
	if _, err := cli(t, "exec", "--command", "Remove"); err == nil {
		t.Fatalf("the card peer must refuse removal")
	}
}

func TestSetField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.json")
	out := mustCLI(t, "set", "--peer", "2", "--field", "text", "--value", "Changed title", "--out", path)
	if !strings.Contains(out, "text = Changed title") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "Changed title") {
		t.Fatalf("edit not saved")
	}
	if _, err := cli(t, "set", "--peer", "2", "--field", "size", "--value", "huge"); err == nil {
		t.Fatalf("expected rejected choice value")
	}
	if _, err := cli(t, "set", "--peer", "2", "--field", "nope", "--value", "x"); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func firstTextBlock(t *testing.T, path string) *card.TextBlock {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read card: %v", err)
	}
	c, err := card.Parse(data)
	if err != nil {
		t.Fatalf("parse card: %v", err)
	}
	var tb *card.TextBlock
	card.Walk(c, func(e card.Element, _ card.Action) {
		if v, ok := e.(*card.TextBlock); ok && tb == nil {
			tb = v
		}
	})
	return tb
}

func TestSetJudgesOutcomeByNodeChange(t *testing.T) {
	dir := t.TempDir()

	wrapped := filepath.Join(dir, "wrap.json")
	out := mustCLI(t, "set", "--peer", "2", "--field", "Wrap", "--value", "1", "--out", wrapped)
	if !strings.Contains(out, "Wrap = true") {
		t.Fatalf("toggle alias should be accepted:\n%s", out)
	}
	if !firstTextBlock(t, wrapped).Wrap {
		t.Fatalf("wrap not written")
	}

	lines := filepath.Join(dir, "lines.json")
	if _, err := cli(t, "set", "--peer", "2", "--field", "Maximum lines", "--value", "abc", "--out", lines); err == nil {
		t.Fatalf("malformed number must be reported")
	}
	if _, err := os.Stat(lines); err == nil {
		t.Fatalf("a rejected edit must not write the card")
	}
	mustCLI(t, "set", "--peer", "2", "--field", "Maximum lines", "--value", "2", "--out", lines)
	if got := firstTextBlock(t, lines).MaxLines; got != 2 {
		t.Fatalf("maxLines = %d, want 2", got)
	}

	// setting the current value is a no-op, not a rejection
	mustCLI(t, "set", "--peer", "2", "--field", "Wrap", "--value", "false")
}

func TestValidateReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(path, []byte(`{"type":"AdaptiveCard","body":[{"type":"TextBlock"}]}`), 0o644)
	out, err := cli(t, "validate", path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(out, "  - ") {
		t.Fatalf("problems not listed:\n%s", out)
	}
	if out := mustCLI(t, "validate"); !strings.Contains(out, "card is valid") {
		t.Fatalf("sample should validate: %s", out)
	}
}

func TestExportSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.svg")
	mustCLI(t, "export", "--out", path, "--select", "2")
	data, err := os.ReadFile(path)
	if err != nil || !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Fatalf("svg not written: %v", err)
	}
}

func TestLibraryFlow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lib.db")
	mustCLI(t, "library", "save", "review", "--db", db)
	if out := mustCLI(t, "library", "save", "review", "--db", db); !strings.Contains(out, "revision 2") {
		t.Fatalf("second save: %s", out)
	}
	out := mustCLI(t, "library", "list", "--db", db)
	if !strings.Contains(out, "review") || !strings.Contains(out, "2") {
		t.Fatalf("list:\n%s", out)
	}
	if out := mustCLI(t, "library", "show", "review", "--rev", "1", "--db", db); !strings.Contains(out, "AdaptiveCard") {
		t.Fatalf("show:\n%s", out)
	}
	if out := mustCLI(t, "library", "prune", "review", "--keep", "1", "--db", db); !strings.Contains(out, "pruned 1") {
		t.Fatalf("prune:\n%s", out)
	}
	mustCLI(t, "library", "delete", "review", "--db", db)
	if _, err := cli(t, "library", "show", "review", "--db", db); err == nil {
		t.Fatalf("deleted card still shown")
	}
}

func TestConfigFlagLoadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	_ = os.WriteFile(path, []byte("[peers]\nunbind = [\"TextBlock\"]\n"), 0o644)
	out := mustCLI(t, "--config", path, "sheet", "--peer", "2")
	if !strings.Contains(out, "TextBlock") || strings.Contains(out, "Wrap") {
		t.Fatalf("unbound text blocks should get the generic sheet:\n%s", out)
	}
}

func TestUIStub(t *testing.T) {
	if _, err := cli(t, "ui"); err == nil {
		t.Fatalf("expected the headless stub error")
	}
}
