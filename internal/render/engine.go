/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package render lays out a card document on a fixed-width canvas and emits
// HTML markup for it. Every element and action gets its rendered bounds
// attached, which is all the designer needs to place overlays.
package render

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"cardesigner/internal/card"
	"cardesigner/internal/geom"
	applog "cardesigner/internal/log"
	"cardesigner/internal/textlayout"
)

// ErrNoCard is returned when Render is called without a document.
var ErrNoCard = errors.New("render: no card")

const (
	buttonHeight   = 30
	buttonGap      = 8
	inputHeight    = 30
	multilineInput = 60
	emptyBoxHeight = 20
	columnGap      = 8
	unknownHeight  = 20
)

// Options controls the canvas the card is laid out on.
type Options struct {
	Width   float32
	Padding float32
	// Fonts measures text; nil means the built-in bitmap face.
	Fonts textlayout.Provider
}

func DefaultOptions() Options { return Options{Width: 400, Padding: card.SpacingPadding.Pixels()} }

// Engine renders cards. The zero value is not usable; call New.
type Engine struct {
	opts Options
	text *textlayout.Layouter
}

func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	if opts.Fonts == nil {
		opts.Fonts = textlayout.BasicProvider{}
	}
	return &Engine{opts: opts, text: textlayout.New(opts.Fonts)}
}

func (e *Engine) Options() Options { return e.opts }

// Render lays out c, attaches the rendered bounds to every node and returns
// the markup.
func (e *Engine) Render(c *card.AdaptiveCard) (string, error) {
	if c == nil {
		return "", ErrNoCard
	}
	l := applog.WithOperation(applog.WithComponent("render"), "Render")
	var b strings.Builder
	p := e.opts.Padding
	inner := e.opts.Width - 2*p
	if inner < 0 {
		inner = 0
	}
	fmt.Fprintf(&b, `<div class="ac-adaptiveCard" style="width:%gpx;padding:%gpx">`, e.opts.Width, p)
	y := e.items(&b, c, p, p, inner)
	if c.ActionCount() > 0 {
		if c.ItemCount() > 0 {
			y += card.SpacingDefault.Pixels()
		}
		y += e.actions(&b, c, p, y, inner)
	}
	b.WriteString(`</div>`)
	c.SetRenderedElement(&card.Rendered{Bounds: geom.R(0, 0, e.opts.Width, y+p)})
	l.Debug("card rendered", slog.Float64("height", float64(y+p)))
	return b.String(), nil
}

// items lays out the children of c in a vertical stack starting at (x, y)
// and returns the y coordinate below the last child.
func (e *Engine) items(b *strings.Builder, c card.Branch, x, y, w float32) float32 {
	for i := 0; i < c.ItemCount(); i++ {
		el := c.ItemAt(i)
		base := el.Base()
		var sep geom.Rect
		if i > 0 {
			gap := base.Spacing.Pixels()
			if gap > 0 {
				sep = geom.R(x, y, w, gap)
				if base.Separator {
					fmt.Fprintf(b, `<div class="ac-separator" style="height:%gpx;border-top:1px solid #eee"></div>`, gap)
				} else {
					fmt.Fprintf(b, `<div class="ac-spacer" style="height:%gpx"></div>`, gap)
				}
			}
			y += gap
		}
		h := e.element(b, el, x, y, w)
		if r := el.RenderedElement(); r != nil {
			r.Separator = sep
		}
		y += h
	}
	return y
}

// element renders a single element at (x, y) and returns its height.
func (e *Engine) element(b *strings.Builder, el card.Element, x, y, w float32) float32 {
	var bounds geom.Rect
	switch v := el.(type) {
	case *card.TextBlock:
		box := e.text.Layout(textlayout.Block{
			Text:     v.Text,
			Width:    w,
			Wrap:     v.Wrap,
			MaxLines: v.MaxLines,
			Scale:    v.Size.Scale(),
			Weight:   fontWeight(v.Weight),
		})
		bounds = geom.R(x, y, w, box.Height)
		fmt.Fprintf(b, `<div class="ac-textBlock%s" data-size="%s" data-weight="%s" data-color="%s"%s>`,
			subtleClass(v.IsSubtle), v.Size, v.Weight, v.Color, alignStyle(v.HorizontalAlignment))
		for i, ln := range box.Lines {
			if i > 0 {
				b.WriteString("<br/>")
			}
			b.WriteString(html.EscapeString(ln))
		}
		b.WriteString(`</div>`)
	case *card.Image:
		side := imageSide(v.Size, w)
		bounds = geom.R(alignX(v.HorizontalAlignment, x, w, side), y, side, side)
		fmt.Fprintf(b, `<img class="ac-image" src="%s" alt="%s" data-style="%s" width="%g" height="%g"/>`,
			html.EscapeString(v.URL), html.EscapeString(v.AltText), v.Style, side, side)
	case *card.ColumnSet:
		b.WriteString(`<div class="ac-columnSet">`)
		cols := v.Columns()
		var h float32
		if n := float32(len(cols)); n > 0 {
			cw := (w - columnGap*(n-1)) / n
			for i, col := range cols {
				cx := x + float32(i)*(cw+columnGap)
				fmt.Fprintf(b, `<div class="ac-column" style="width:%gpx">`, cw)
				ch := e.items(b, col, cx, y, cw) - y
				if ch < emptyBoxHeight && col.ItemCount() == 0 {
					ch = emptyBoxHeight
				}
				b.WriteString(`</div>`)
				col.SetRenderedElement(&card.Rendered{Bounds: geom.R(cx, y, cw, ch)})
				h = max(h, ch)
			}
			// Columns share the height of the tallest one.
			for _, col := range cols {
				col.RenderedElement().Bounds.H = h
			}
		} else {
			h = emptyBoxHeight
		}
		b.WriteString(`</div>`)
		bounds = geom.R(x, y, w, h)
	case card.ItemContainer:
		b.WriteString(`<div class="ac-container">`)
		h := e.items(b, v, x, y, w) - y
		if v.ItemCount() == 0 {
			h = emptyBoxHeight
		}
		b.WriteString(`</div>`)
		bounds = geom.R(x, y, w, h)
	case *card.ActionSet:
		h := e.actions(b, v, x, y, w)
		if v.ActionCount() == 0 {
			h = emptyBoxHeight
		}
		bounds = geom.R(x, y, w, h)
	case *card.FactSet:
		line := e.text.Layout(textlayout.Block{Text: "x"}).LineHeight
		b.WriteString(`<table class="ac-factSet">`)
		for _, f := range v.Facts {
			fmt.Fprintf(b, `<tr><td>%s</td><td>%s</td></tr>`, html.EscapeString(f.Title), html.EscapeString(f.Value))
		}
		b.WriteString(`</table>`)
		bounds = geom.R(x, y, w, float32(len(v.Facts))*line)
	case *card.TextInput:
		h := float32(inputHeight)
		if v.IsMultiline {
			h = multilineInput
		}
		fmt.Fprintf(b, `<input class="ac-textInput" placeholder="%s" value="%s"/>`,
			html.EscapeString(v.Placeholder), html.EscapeString(v.Value))
		bounds = geom.R(x, y, w, h)
	case *card.DateInput:
		fmt.Fprintf(b, `<input class="ac-dateInput" type="date" value="%s"/>`, html.EscapeString(v.Value))
		bounds = geom.R(x, y, w, inputHeight)
	default:
		fmt.Fprintf(b, `<div class="ac-unknown" data-type="%s"></div>`, html.EscapeString(el.TypeName()))
		bounds = geom.R(x, y, w, unknownHeight)
	}
	el.SetRenderedElement(&card.Rendered{Bounds: bounds})
	return bounds.H
}

// actions renders the actions of h as one row of equally sized buttons and
// returns the row height.
func (e *Engine) actions(b *strings.Builder, h card.ActionHolder, x, y, w float32) float32 {
	n := h.ActionCount()
	if n == 0 {
		return 0
	}
	bw := (w - buttonGap*float32(n-1)) / float32(n)
	b.WriteString(`<div class="ac-actionSet">`)
	for i := 0; i < n; i++ {
		a := h.ActionAt(i)
		fmt.Fprintf(b, `<button class="ac-pushButton" data-type="%s">%s</button>`,
			html.EscapeString(a.TypeName()), html.EscapeString(a.Base().Title))
		a.SetRenderedElement(&card.Rendered{Bounds: geom.R(x+float32(i)*(bw+buttonGap), y, bw, buttonHeight)})
	}
	b.WriteString(`</div>`)
	return buttonHeight
}

func imageSide(s card.ImageSize, w float32) float32 {
	var side float32
	switch s {
	case card.ImageSizeSmall:
		side = 40
	case card.ImageSizeMedium:
		side = 80
	case card.ImageSizeLarge:
		side = 160
	case card.ImageSizeStretch:
		side = w
	default:
		side = 100
	}
	return min(side, w)
}

func alignX(a card.HorizontalAlignment, x, w, inner float32) float32 {
	switch a {
	case card.AlignCenter:
		return x + (w-inner)/2
	case card.AlignRight:
		return x + w - inner
	}
	return x
}

func alignStyle(a card.HorizontalAlignment) string {
	if a == card.AlignUnset {
		return ""
	}
	return fmt.Sprintf(` style="text-align:%s"`, a)
}

func subtleClass(subtle bool) string {
	if subtle {
		return " ac-subtle"
	}
	return ""
}

func fontWeight(w card.TextWeight) int {
	switch w {
	case card.TextWeightLighter:
		return 300
	case card.TextWeightBolder:
		return 700
	}
	return 400
}
