/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"cardesigner/internal/card"
	"cardesigner/internal/config"
	"cardesigner/internal/designer"
	applog "cardesigner/internal/log"
)

func open(t *testing.T, cfg config.AppConfig) *Session {
	t.Helper()
	s, err := New(cfg, nil, designer.WithLogger(applog.Nop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Open(""); err != nil {
		t.Fatalf("Open sample: %v", err)
	}
	return s
}

func firstOf[T card.Element](s *Session) T {
	var out T
	var found bool
	card.Walk(s.Card(), func(e card.Element, _ card.Action) {
		if v, ok := e.(T); ok && !found {
			out, found = v, true
		}
	})
	return out
}

func TestOpenSampleBuildsPeers(t *testing.T) {
	s := open(t, config.Defaults())
	if s.Card() == nil || len(s.Designer().Peers()) == 0 {
		t.Fatalf("sample card not designed")
	}
	if !strings.Contains(s.Markup(), "ac-") {
		t.Fatalf("markup not rendered: %.80s", s.Markup())
	}
	if s.Dirty() || s.Path() != "" {
		t.Fatalf("fresh sample should be clean and unnamed")
	}
	p, err := s.PeerAt(0)
	if err != nil || p.BadgeText() != "AdaptiveCard" {
		t.Fatalf("PeerAt(0) = %v, %v", p, err)
	}
	if s.PeerIndex(p) != 0 {
		t.Fatalf("PeerIndex mismatch")
	}
	if _, err := s.PeerAt(len(s.Designer().Peers())); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestCommandsMarkDirtyAndSaveRoundTrips(t *testing.T) {
	s := open(t, config.Defaults())
	if err := s.Save(); err == nil {
		t.Fatalf("Save without a path must fail")
	}
	root, _ := s.PeerAt(0)
	before := len(s.Designer().Peers())
	if !root.Execute("Add TextBlock inside") {
		t.Fatalf("command not executed")
	}
	if !s.Dirty() || len(s.Designer().Peers()) != before+1 {
		t.Fatalf("add did not register: dirty=%v peers=%d", s.Dirty(), len(s.Designer().Peers()))
	}

	path := filepath.Join(t.TempDir(), "cards", "review.json")
	if err := s.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if s.Dirty() || s.Path() != path {
		t.Fatalf("SaveAs should clean the session")
	}

	again := open(t, config.Defaults())
	if err := again.Open(path); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(again.Designer().Peers()) != before+1 {
		t.Fatalf("reopened card has %d peers, want %d", len(again.Designer().Peers()), before+1)
	}
}

func TestOpenRejectsNonCard(t *testing.T) {
	s := open(t, config.Defaults())
	path := filepath.Join(t.TempDir(), "x.json")
	_ = os.WriteFile(path, []byte(`{"type":"Container"}`), 0o644)
	if err := s.Open(path); err == nil {
		t.Fatalf("expected parse error")
	}
	if err := s.Open(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected read error")
	}
	if s.Card() == nil {
		t.Fatalf("failed open must keep the previous card")
	}
}

func TestPeerBindingsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Peers.Bind = map[string]string{"Image": "ElementPeer"}
	cfg.Peers.Unbind = []string{"TextBlock"}
	s := open(t, cfg)

	img := s.Designer().PeerFor(firstOf[*card.Image](s))
	if _, ok := img.Variant().(*designer.ElementPeer); !ok {
		t.Fatalf("image peer variant = %T, want *designer.ElementPeer", img.Variant())
	}
	tb := s.Designer().PeerFor(firstOf[*card.TextBlock](s))
	if _, ok := tb.Variant().(*designer.ElementPeer); !ok {
		t.Fatalf("unbound text block should fall back, got %T", tb.Variant())
	}

	// the shared registry is untouched
	other := open(t, config.Defaults())
	if _, ok := other.Designer().PeerFor(firstOf[*card.Image](other)).Variant().(*designer.ImagePeer); !ok {
		t.Fatalf("bindings leaked into another session")
	}
}

func TestBadBindingsAreReported(t *testing.T) {
	cfg := config.Defaults()
	cfg.Peers.Bind = map[string]string{"Image": "NoSuchPeer"}
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
	cfg = config.Defaults()
	cfg.Peers.Unbind = []string{"Carousel"}
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestExportUsesExtensionThenConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Export.Format = "png"
	s := open(t, cfg)
	s.Designer().Select(s.Designer().PeerFor(firstOf[*card.TextBlock](s)))
	dir := t.TempDir()

	svg := filepath.Join(dir, "card.svg")
	if err := s.Export(svg, ""); err != nil {
		t.Fatalf("Export svg: %v", err)
	}
	b, _ := os.ReadFile(svg)
	if !strings.HasPrefix(string(b), "<?xml") {
		t.Fatalf("not an svg")
	}

	raw := filepath.Join(dir, "card")
	if err := s.Export(raw, ""); err != nil {
		t.Fatalf("Export default: %v", err)
	}
	b, _ = os.ReadFile(raw)
	if !strings.HasPrefix(string(b), "\x89PNG") {
		t.Fatalf("expected png from config default")
	}
	if err := s.Export(filepath.Join(dir, "card.gif"), ""); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestCanvasFontFromConfig(t *testing.T) {
	font := filepath.Join(t.TempDir(), "go.ttf")
	if err := os.WriteFile(font, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Defaults()
	cfg.Canvas.Font = font
	withFont := open(t, cfg)
	plain := open(t, config.Defaults())
	if withFont.Markup() == plain.Markup() {
		t.Fatalf("loaded font should change where text wraps")
	}

	cfg.Canvas.Font = filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := New(cfg, nil); err == nil {
		t.Fatalf("expected error for a missing canvas font")
	}
}
