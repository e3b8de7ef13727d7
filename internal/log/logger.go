/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log provides the designer's slog setup: a compact console handler
// tuned for the attributes the designer logs (component, operation, card,
// peer), an optional rotated JSON file, and helpers that pre-set those
// attributes.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"cardesigner/internal/version"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Attribute keys with a fixed place in console output.
const (
	KeyComponent = "component"
	KeyOperation = "op"
	KeyCard      = "card"
	KeyPeer      = "peer"
	KeyBadge     = "badge"
)

// Options controls logger initialization. FromEnv reads them from
// CARDD_LOG_LEVEL (debug|info|warn|error), CARDD_LOG_FORMAT (console|json),
// CARDD_LOG_SOURCE (true|false) and CARDD_LOG_FILE (rotated JSON file).
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string
}

var (
	mu      sync.RWMutex
	current *slog.Logger

	// console is where the console handler writes; tests swap it.
	console io.Writer = os.Stderr
)

// L returns the application logger, initializing it from env on first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l == nil {
		Init(FromEnv())
		mu.RLock()
		l = current
		mu.RUnlock()
	}
	return l
}

// Init configures the application logger and installs it as slog.Default.
func Init(opts Options) {
	lvl := parseLevel(opts.Level)
	jsonOpts := &slog.HandlerOptions{Level: lvl, AddSource: opts.AddSource, ReplaceAttr: standardKeys}

	var hs fanout
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		hs = append(hs, slog.NewJSONHandler(console, jsonOpts))
	} else {
		hs = append(hs, &consoleHandler{level: lvl, source: opts.AddSource, w: console, mu: &sync.Mutex{}})
	}
	if f := strings.TrimSpace(opts.File); f != "" {
		w := &lj.Logger{Filename: f, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		hs = append(hs, slog.NewJSONHandler(w, jsonOpts))
	}
	var h slog.Handler = hs
	if len(hs) == 1 {
		h = hs[0]
	}

	logger := slog.New(cardSource{h}).With(
		slog.String("app", "cardesigner"),
		slog.String("ver", version.Version),
	)
	mu.Lock()
	current = logger
	mu.Unlock()
	slog.SetDefault(logger)
}

// FromEnv builds Options from the CARDD_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("CARDD_LOG_LEVEL", "info"),
		Format:    getenv("CARDD_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("CARDD_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("CARDD_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String(KeyComponent, name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger {
	return l.With(slog.String(KeyOperation, op))
}

// Peer returns the attributes identifying a peer: its id and badge text.
func Peer(id, badge string) slog.Attr {
	return slog.Group("", slog.String(KeyPeer, id), slog.String(KeyBadge, badge))
}

// Nop returns a logger that discards everything, for hosts that bring their
// own logging.
func Nop() *slog.Logger { return slog.New(slog.DiscardHandler) }

type sourceKey struct{}

// WithSource returns a context carrying the card source (file path or library
// name); records logged with that context get a "card" attribute.
func WithSource(ctx context.Context, src string) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}

// standardKeys renames "error" to "err" so both spellings end up in one column.
func standardKeys(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// cardSource adds the card attribute carried by the context.
type cardSource struct{ next slog.Handler }

func (c cardSource) Enabled(ctx context.Context, l slog.Level) bool { return c.next.Enabled(ctx, l) }

func (c cardSource) Handle(ctx context.Context, r slog.Record) error {
	if src, ok := ctx.Value(sourceKey{}).(string); ok && src != "" {
		r.AddAttrs(slog.String(KeyCard, src))
	}
	return c.next.Handle(ctx, r)
}

func (c cardSource) WithAttrs(as []slog.Attr) slog.Handler { return cardSource{c.next.WithAttrs(as)} }
func (c cardSource) WithGroup(name string) slog.Handler    { return cardSource{c.next.WithGroup(name)} }

// fanout sends every record to all handlers and returns the first error.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(as []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(as)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// consoleHandler prints one line per record:
//
//	15:04:05.000 INF [designer/Render] card saved card=welcome peer=TextBlock#1a2b3c4d rev=3
//
// Component and operation form the bracketed prefix, the card and the peer
// (badge plus short id) come first, and the remaining attributes follow in
// order. Groups prefix keys with "group.".
type consoleHandler struct {
	level  slog.Level
	source bool
	w      io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	group  string
}

func (h *consoleHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *consoleHandler) WithAttrs(as []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), qualify(h.group, as)...)
	return &c
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.group = h.group + name + "."
	return &c
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	all := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		all = append(all, qualify(h.group, []slog.Attr{a})...)
		return true
	})

	var component, op, card, peer, badge string
	rest := all[:0:0]
	for _, a := range all {
		switch a.Key {
		case KeyComponent:
			component = a.Value.String()
		case KeyOperation:
			op = a.Value.String()
		case KeyCard:
			card = a.Value.String()
		case KeyPeer:
			peer = a.Value.String()
		case KeyBadge:
			badge = a.Value.String()
		case "app", "ver":
		default:
			rest = append(rest, a)
		}
	}

	var b strings.Builder
	b.WriteString(r.Time.Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(levelTag(r.Level))
	if component != "" || op != "" {
		b.WriteString(" [")
		b.WriteString(component)
		if op != "" {
			b.WriteByte('/')
			b.WriteString(op)
		}
		b.WriteByte(']')
	}
	b.WriteByte(' ')
	b.WriteString(r.Message)
	if card != "" {
		writePair(&b, KeyCard, card)
	}
	if peer != "" || badge != "" {
		writePair(&b, KeyPeer, peerLabel(badge, peer))
	}
	for _, a := range rest {
		writePair(&b, a.Key, valueString(a.Value))
	}
	if h.source && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		writePair(&b, "src", filepath.Base(f.File)+":"+strconv.Itoa(f.Line))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// qualify flattens inline groups, standardizes error keys and prefixes keys
// with the open group.
func qualify(group string, as []slog.Attr) []slog.Attr {
	var out []slog.Attr
	for _, a := range as {
		a.Value = a.Value.Resolve()
		if a.Value.Kind() == slog.KindGroup {
			prefix := group
			if a.Key != "" {
				prefix += a.Key + "."
			}
			out = append(out, qualify(prefix, a.Value.Group())...)
			continue
		}
		if a.Key == "" {
			continue
		}
		a.Key = group + standardKeys(nil, a).Key
		out = append(out, a)
	}
	return out
}

// peerLabel renders a peer as Badge#shortid.
func peerLabel(badge, id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	switch {
	case badge == "":
		return id
	case id == "":
		return badge
	}
	return badge + "#" + id
}

func writePair(b *strings.Builder, k, v string) {
	b.WriteByte(' ')
	b.WriteString(k)
	b.WriteByte('=')
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		v = strconv.Quote(v)
	}
	b.WriteString(v)
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERR"
	case l >= slog.LevelWarn:
		return "WRN"
	case l >= slog.LevelInfo:
		return "INF"
	}
	return "DBG"
}

func valueString(v slog.Value) string {
	switch v.Kind() {
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindDuration:
		return v.Duration().Round(time.Microsecond).String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	}
	return v.String()
}
