/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout measures and breaks card text. Fonts sit behind a
// Provider so hosts with real fonts can swap it, while tests use the
// deterministic 7x13 bitmap face.
package textlayout

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name; empty means the provider default
	SizePt float32
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineHeight is the distance between two baselines.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 for every spec.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Block is one text element as the card renderer sees it. Text is measured
// at the base size and the result multiplied by Scale, the text size tier.
// MaxLines > 0 keeps only that many wrapped lines.
type Block struct {
	Text     string
	Width    float32
	Wrap     bool
	MaxLines int
	Scale    float32
	Weight   int
}

// Box is a laid out Block. Lines carry no trailing spaces; Width is the
// widest kept line, never more than the block width when wrapping.
type Box struct {
	Lines      []string
	Width      float32
	Height     float32
	LineHeight float32
	// Truncated is set when MaxLines or a disabled wrap dropped text.
	Truncated bool
}

// Layouter breaks blocks into lines with a greedy word wrap. It does no
// shaping or hyphenation; a word wider than the block gets a line of its
// own. Layout cannot fail.
type Layouter struct{ fonts Provider }

func New(fonts Provider) *Layouter {
	if fonts == nil {
		fonts = BasicProvider{}
	}
	return &Layouter{fonts: fonts}
}

func (l *Layouter) Layout(b Block) Box {
	if b.Scale <= 0 {
		b.Scale = 1
	}
	face, met := l.fonts.Resolve(FontSpec{Weight: b.Weight})
	d := &font.Drawer{Face: face}
	limit := float32(0)
	if b.Wrap && b.Width > 0 {
		limit = b.Width / b.Scale
	}

	var lines []string
	var widths []float32
	for _, para := range strings.Split(b.Text, "\n") {
		ls, ws := breakParagraph(d, para, limit)
		lines = append(lines, ls...)
		widths = append(widths, ws...)
	}

	box := Box{LineHeight: met.LineHeight() * b.Scale}
	keep := len(lines)
	if !b.Wrap {
		keep = 1
	}
	if b.MaxLines > 0 && keep > b.MaxLines {
		keep = b.MaxLines
	}
	box.Truncated = keep < len(lines)
	box.Lines = lines[:keep]
	for _, w := range widths[:keep] {
		box.Width = max(box.Width, w*b.Scale)
	}
	if b.Wrap && b.Width > 0 {
		box.Width = min(box.Width, b.Width)
	}
	box.Height = float32(keep) * box.LineHeight
	return box
}

// breakParagraph splits one paragraph on spaces; limit 0 means no wrapping.
// An empty paragraph still yields one empty line.
func breakParagraph(d *font.Drawer, para string, limit float32) ([]string, []float32) {
	space := advance(d, " ")
	var lines []string
	var widths []float32
	var cur strings.Builder
	var curW float32
	flush := func() {
		lines = append(lines, cur.String())
		widths = append(widths, curW)
		cur.Reset()
		curW = 0
	}
	for _, word := range strings.Fields(para) {
		w := advance(d, word)
		if cur.Len() > 0 && limit > 0 && curW+space+w > limit {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
			curW += space
		}
		cur.WriteString(word)
		curW += w
	}
	flush()
	return lines, widths
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}

// Measure returns the single-line width of text in the face spec resolves to.
func Measure(fonts Provider, spec FontSpec, text string) float32 {
	if fonts == nil {
		fonts = BasicProvider{}
	}
	face, _ := fonts.Resolve(spec)
	return advance(&font.Drawer{Face: face}, text)
}
