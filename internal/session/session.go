/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package session ties a card file to a live designer. Both the CLI and the
// desktop UI edit cards through a Session.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cardesigner/internal/card"
	"cardesigner/internal/config"
	"cardesigner/internal/designer"
	"cardesigner/internal/export"
	applog "cardesigner/internal/log"
	"cardesigner/internal/render"
	"cardesigner/internal/textlayout"
)

const canvasFamily = "canvas"

// Session is one open card. It is not safe for concurrent use.
type Session struct {
	cfg      config.AppConfig
	designer *designer.Designer
	host     *designer.HostBuffer
	log      *slog.Logger

	path  string
	dirty bool
}

// New builds a designer configured from cfg. Peer bindings in cfg are
// applied to a private element registry so they never leak into the shared
// one. Extra designer options are applied last.
func New(cfg config.AppConfig, overlays designer.OverlaySurface, opts ...designer.Option) (*Session, error) {
	elements := designer.NewElementRegistry()
	if err := designer.Bind(elements, cfg.Peers.Bind); err != nil {
		return nil, fmt.Errorf("peer bindings: %w", err)
	}
	if err := designer.Unbind(elements, cfg.Peers.Unbind); err != nil {
		return nil, fmt.Errorf("peer bindings: %w", err)
	}
	if overlays == nil {
		overlays = &designer.Layer{}
	}
	s := &Session{
		cfg:  cfg,
		host: &designer.HostBuffer{},
		log:  applog.WithComponent("session"),
	}
	ropts := render.Options{Width: cfg.Canvas.Width, Padding: cfg.Canvas.Padding}
	if cfg.Canvas.Font != "" {
		lib := textlayout.NewFontLibrary()
		if err := lib.LoadFile(canvasFamily, 400, false, cfg.Canvas.Font); err != nil {
			return nil, fmt.Errorf("canvas font: %w", err)
		}
		ropts.Fonts = textlayout.OTProvider{Lib: lib, Family: canvasFamily}
	}
	engine := render.New(ropts)
	base := []designer.Option{
		designer.WithElementRegistry(elements),
		designer.WithActionRegistry(designer.NewActionRegistry()),
	}
	s.designer = designer.New(s.host, overlays, engine, append(base, opts...)...)
	s.designer.AddListener(func(ev designer.Event) {
		switch ev.Type {
		case designer.EventChanged, designer.EventRemoved, designer.EventPeerCreated:
			s.dirty = true
		}
	})
	return s, nil
}

// Designer returns the live designer.
func (s *Session) Designer() *designer.Designer { return s.designer }

// Card returns the card being edited.
func (s *Session) Card() *card.AdaptiveCard { return s.designer.Card() }

// Markup returns the last rendered markup.
func (s *Session) Markup() string { return s.host.Content() }

// Path returns the file the card was loaded from; empty for the sample card.
func (s *Session) Path() string { return s.path }

// Dirty reports whether the card changed since it was loaded or saved.
func (s *Session) Dirty() bool { return s.dirty }

// Open loads the card at path. An empty path opens the sample card.
func (s *Session) Open(path string) error {
	if path == "" {
		return s.Load([]byte(card.DefaultPayload), "")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read card: %w", err)
	}
	return s.Load(data, path)
}

// Load replaces the card with the parsed payload.
func (s *Session) Load(data []byte, path string) error {
	c, err := card.Parse(data)
	if err != nil {
		return err
	}
	s.designer.SetCard(c)
	s.path = path
	s.dirty = false
	s.log.Debug("card loaded", slog.String("path", path), slog.Int("peers", len(s.designer.Peers())))
	return nil
}

// Payload serializes the current card.
func (s *Session) Payload() ([]byte, error) {
	if s.Card() == nil {
		return nil, errors.New("no card loaded")
	}
	return card.Marshal(s.Card())
}

// Save writes the card back to its file.
func (s *Session) Save() error {
	if s.path == "" {
		return errors.New("card has no file yet; use save as")
	}
	return s.SaveAs(s.path)
}

// SaveAs writes the card to path and makes path the session file.
func (s *Session) SaveAs(path string) error {
	data, err := s.Payload()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure card dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write card: %w", err)
	}
	s.path = path
	s.dirty = false
	return nil
}

// Regions collects the overlay regions of every live peer, bottom first.
func (s *Session) Regions() []*designer.Region {
	var out []*designer.Region
	for _, p := range s.designer.Peers() {
		out = append(out, p.Regions()...)
	}
	return out
}

// Snapshot freezes the design surface for export.
func (s *Session) Snapshot() (export.Snapshot, error) {
	return export.Capture(s.Card(), s.Regions())
}

// Export writes a snapshot to path. An empty format is taken from the file
// extension, then from the configured default.
func (s *Session) Export(path, format string) error {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	if format == "" {
		format = s.cfg.Export.Format
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	snap, err := s.Snapshot()
	if err != nil {
		return err
	}
	opt := export.DefaultOptions()
	opt.Badges = s.cfg.Export.Badges
	return export.WriteFile(path, f, snap, opt)
}

// PeerIndex returns the position of p in depth-first peer order, or -1.
func (s *Session) PeerIndex(p *designer.Peer) int {
	for i, q := range s.designer.Peers() {
		if q == p {
			return i
		}
	}
	return -1
}

// PeerAt returns the n-th peer in depth-first order.
func (s *Session) PeerAt(n int) (*designer.Peer, error) {
	peers := s.designer.Peers()
	if n < 0 || n >= len(peers) {
		return nil, fmt.Errorf("peer %d out of range [0,%d)", n, len(peers))
	}
	return peers[n], nil
}
