/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export writes snapshots of the design surface: the rendered card
// boxes with the designer overlays drawn on top.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cardesigner/internal/card"
	"cardesigner/internal/designer"
	"cardesigner/internal/geom"
)

// Color is an 8-bit RGBA color.
type Color struct{ R, G, B, A uint8 }

// Box is one rendered card node.
type Box struct {
	Type   string
	Bounds geom.Rect
	Text   string
	Action bool
}

// Overlay is one designer region as it was on screen.
type Overlay struct {
	Badge     string
	Bounds    geom.Rect
	Separator bool
	Selected  bool
	Hover     bool
}

// Snapshot is a frozen picture of the design surface.
type Snapshot struct {
	Width, Height float32
	Boxes         []Box
	Overlays      []Overlay
}

// Options controls how a snapshot is drawn. Zero colors fall back to the
// defaults.
type Options struct {
	Badges        bool
	Scale         float32
	BoxStroke     Color
	SelectedColor Color
	HoverColor    Color
}

// DefaultOptions draws badges at 1:1 scale.
func DefaultOptions() Options {
	return Options{Badges: true, Scale: 1}
}

func (o Options) resolved() Options {
	zero := Color{}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.BoxStroke == zero {
		o.BoxStroke = Color{R: 200, G: 200, B: 200, A: 255}
	}
	if o.SelectedColor == zero {
		o.SelectedColor = Color{R: 0, G: 120, B: 215, A: 255}
	}
	if o.HoverColor == zero {
		o.HoverColor = Color{R: 140, G: 190, B: 240, A: 255}
	}
	return o
}

// ErrNotRendered is returned when the card has no layout yet.
var ErrNotRendered = errors.New("card has not been rendered")

// Capture freezes the rendered layout of c together with the overlay
// regions. Hidden regions and regions that are neither selected nor hovered
// are skipped since the designer draws them transparent.
func Capture(c *card.AdaptiveCard, regions []*designer.Region) (Snapshot, error) {
	if c == nil || c.RenderedElement() == nil {
		return Snapshot{}, ErrNotRendered
	}
	root := c.RenderedElement().Bounds
	s := Snapshot{Width: root.W, Height: root.H}
	card.Walk(c, func(e card.Element, a card.Action) {
		switch {
		case a != nil:
			if r := a.RenderedElement(); r != nil {
				s.Boxes = append(s.Boxes, Box{Type: a.TypeName(), Bounds: r.Bounds, Text: a.Base().Title, Action: true})
			}
		case e == card.Element(c):
		default:
			if r := e.RenderedElement(); r != nil {
				s.Boxes = append(s.Boxes, Box{Type: e.TypeName(), Bounds: r.Bounds, Text: boxText(e)})
			}
		}
	})
	for _, r := range regions {
		if r == nil || !r.Visible || !(r.Selected || r.Hover) {
			continue
		}
		s.Overlays = append(s.Overlays, Overlay{
			Badge:     r.Badge,
			Bounds:    r.Bounds,
			Separator: r.Role == designer.RoleSeparator,
			Selected:  r.Selected,
			Hover:     r.Hover,
		})
	}
	return s, nil
}

func boxText(e card.Element) string {
	switch v := e.(type) {
	case *card.TextBlock:
		return v.Text
	case *card.Image:
		return v.AltText
	case *card.TextInput:
		return v.Placeholder
	case *card.DateInput:
		return v.Placeholder
	}
	return ""
}

// Format names an output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatSVG, FormatPNG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Write encodes s in format f.
func Write(w io.Writer, f Format, s Snapshot, opt Options) error {
	switch f {
	case FormatSVG:
		return WriteSVG(w, s, opt)
	case FormatPNG:
		return WritePNG(w, s, opt)
	case FormatPDF:
		return WritePDF(w, s, opt)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// WriteFile writes s to path, creating the directory if needed.
func WriteFile(path string, f Format, s Snapshot, opt Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", f, err)
	}
	if err := Write(out, f, s, opt); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", f, err)
	}
	return nil
}

// overlayColor picks the stroke of an overlay region.
func overlayColor(o Overlay, opt Options) Color {
	if o.Selected {
		return opt.SelectedColor
	}
	return opt.HoverColor
}
