/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package crash turns panics into a crash report and an autosave of the card
// being edited.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "cardesigner/internal/log"
	"cardesigner/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// State describes what was running when a panic happened. A nil State is
// valid and only writes the report to the temp dir.
type State struct {
	// Dir receives the report and the autosave; os.TempDir() when empty.
	Dir     string
	Command string
	// Card returns the payload of the card being edited, if any.
	Card func() []byte
}

// Recover captures a panic, logs an error with stacktrace,
// writes an error report file, and attempts a crash-safe autosave
// of the card being edited (if provided).
//
// Usage: defer crash.Recover(st)
func Recover(st *State) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, err := writeReport(st, r, stack)
		if err != nil {
			l.Error("write crash report failed", slog.Any("err", err))
		}
		if path, err := autosave(st); err != nil {
			l.Error("autosave card failed", slog.Any("err", err))
		} else if path != "" {
			l.Info("autosave card written", slog.String("path", path))
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		// Exit with a non-zero code to indicate failure in CLI context.
		exitFn(2)
	}
}

func reportDir(st *State) string {
	if st != nil && st.Dir != "" {
		_ = os.MkdirAll(st.Dir, 0o755)
		return st.Dir
	}
	return os.TempDir()
}

func writeReport(st *State, panicVal any, stack []byte) (string, error) {
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(reportDir(st), fmt.Sprintf("crash-%s.log", stamp))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Card Designer Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if st != nil && st.Command != "" {
		_, _ = fmt.Fprintf(&buf, "Command: %s\n", st.Command)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}

// autosave writes the current card payload next to the report. It returns
// an empty path when there is nothing to save.
func autosave(st *State) (path string, err error) {
	if st == nil || st.Card == nil {
		return "", nil
	}
	// the card callback may itself panic on a corrupted model
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read card payload: %v", r)
		}
	}()
	data := st.Card()
	if len(data) == 0 {
		return "", nil
	}
	stamp := time.Now().Format("20060102-150405")
	path = filepath.Join(reportDir(st), fmt.Sprintf("card-autosave-%s.json", stamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("write autosave: %w", err)
	}
	return path, nil
}
