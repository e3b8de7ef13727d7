//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"cardesigner/internal/card"
	"cardesigner/internal/designer"
	"cardesigner/internal/geom"
)

var (
	surfaceColor  = color.RGBA{R: 243, G: 242, B: 241, A: 255}
	boxStroke     = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	selectedColor = color.RGBA{R: 0, G: 120, B: 215, A: 255}
	hoverColor    = color.RGBA{R: 140, G: 190, B: 240, A: 255}
	transparent   = color.RGBA{}
)

// CardCanvas draws the rendered card boxes and the designer overlays. It is
// the designer's OverlaySurface; taps select and pointer moves hover.
type CardCanvas struct {
	widget.BaseWidget

	margin  float32
	regions []*designer.Region
	card    func() *card.AdaptiveCard

	// OnTap and OnHover receive points in card coordinates.
	OnTap   func(geom.Pt)
	OnHover func(geom.Pt)
}

// NewCardCanvas returns a canvas reading the card to draw from current.
func NewCardCanvas(current func() *card.AdaptiveCard) *CardCanvas {
	c := &CardCanvas{margin: 24, card: current}
	c.ExtendBaseWidget(c)
	return c
}

func (c *CardCanvas) Attach(r *designer.Region) {
	if r == nil || slices.Contains(c.regions, r) {
		return
	}
	c.regions = append(c.regions, r)
}

func (c *CardCanvas) Detach(r *designer.Region) {
	if i := slices.Index(c.regions, r); i >= 0 {
		c.regions = slices.Delete(c.regions, i, i+1)
	}
}

func (c *CardCanvas) Clear() { c.regions = nil }

// toCard maps a widget position to card coordinates.
func (c *CardCanvas) toCard(pos fyne.Position) geom.Pt {
	return geom.Pt{X: pos.X - c.margin, Y: pos.Y - c.margin}
}

func (c *CardCanvas) toScreen(r geom.Rect) (fyne.Position, fyne.Size) {
	return fyne.NewPos(r.X+c.margin, r.Y+c.margin), fyne.NewSize(r.W, r.H)
}

func (c *CardCanvas) Tapped(e *fyne.PointEvent) {
	if c.OnTap != nil {
		c.OnTap(c.toCard(e.Position))
	}
	c.Refresh()
}

func (c *CardCanvas) MouseIn(e *desktop.MouseEvent) { c.MouseMoved(e) }

func (c *CardCanvas) MouseMoved(e *desktop.MouseEvent) {
	if c.OnHover != nil {
		c.OnHover(c.toCard(e.Position))
	}
	c.Refresh()
}

func (c *CardCanvas) MouseOut() {
	if c.OnHover != nil {
		// a point left of the card hits nothing
		c.OnHover(geom.Pt{X: -1, Y: -1})
	}
	c.Refresh()
}

func (c *CardCanvas) MinSize() fyne.Size {
	w, h := float32(400), float32(300)
	if cd := c.current(); cd != nil && cd.RenderedElement() != nil {
		b := cd.RenderedElement().Bounds
		w, h = b.W, b.H
	}
	return fyne.NewSize(w+2*c.margin, h+2*c.margin)
}

func (c *CardCanvas) current() *card.AdaptiveCard {
	if c.card == nil {
		return nil
	}
	return c.card()
}

func (c *CardCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &cardCanvasRenderer{cc: c, bg: canvas.NewRectangle(surfaceColor)}
	r.rebuild()
	return r
}

type cardCanvasRenderer struct {
	cc      *CardCanvas
	bg      *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *cardCanvasRenderer) Destroy()                     {}
func (r *cardCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *cardCanvasRenderer) MinSize() fyne.Size           { return r.cc.MinSize() }
func (r *cardCanvasRenderer) Layout(size fyne.Size)        { r.bg.Resize(size) }

func (r *cardCanvasRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.cc.Size())
	canvas.Refresh(r.cc)
}

// rebuild recreates the drawing objects: card surface, element boxes, then
// overlays on top in attach order.
func (r *cardCanvasRenderer) rebuild() {
	cc := r.cc
	r.objects = []fyne.CanvasObject{r.bg}
	cd := cc.current()
	if cd == nil || cd.RenderedElement() == nil {
		return
	}
	page := canvas.NewRectangle(color.White)
	page.StrokeColor = boxStroke
	page.StrokeWidth = 1
	pos, size := cc.toScreen(cd.RenderedElement().Bounds)
	page.Move(pos)
	page.Resize(size)
	r.objects = append(r.objects, page)

	card.Walk(cd, func(e card.Element, a card.Action) {
		var rendered *card.Rendered
		var text string
		fill := color.Color(transparent)
		switch {
		case a != nil:
			rendered, text = a.RenderedElement(), a.Base().Title
			fill = surfaceColor
		case e == card.Element(cd):
			return
		default:
			rendered = e.RenderedElement()
			if tb, ok := e.(*card.TextBlock); ok {
				text = tb.Text
			}
		}
		if rendered == nil {
			return
		}
		box := canvas.NewRectangle(fill)
		box.StrokeColor = boxStroke
		box.StrokeWidth = 0.5
		pos, size := cc.toScreen(rendered.Bounds)
		box.Move(pos)
		box.Resize(size)
		r.objects = append(r.objects, box)
		if text != "" {
			t := canvas.NewText(text, color.Black)
			t.TextSize = 11
			t.Move(pos.AddXY(2, 0))
			r.objects = append(r.objects, t)
		}
	})

	for _, reg := range cc.regions {
		r.objects = append(r.objects, overlayObjects(cc, reg)...)
	}
}

// overlayObjects draws one region. Regions neither selected nor hovered
// stay transparent.
func overlayObjects(cc *CardCanvas, reg *designer.Region) []fyne.CanvasObject {
	if !reg.Visible || !(reg.Selected || reg.Hover) {
		return nil
	}
	col := hoverColor
	if reg.Selected {
		col = selectedColor
	}
	pos, size := cc.toScreen(reg.Bounds)
	rect := canvas.NewRectangle(transparent)
	if reg.Role == designer.RoleSeparator {
		rect.FillColor = color.RGBA{R: col.R, G: col.G, B: col.B, A: 80}
	} else {
		rect.StrokeColor = col
		rect.StrokeWidth = 1
	}
	rect.Move(pos)
	rect.Resize(size)
	out := []fyne.CanvasObject{rect}
	if reg.Role == designer.RoleMain && reg.Selected && reg.Badge != "" {
		badge := canvas.NewText(reg.Badge, color.White)
		badge.TextSize = 10
		bg := canvas.NewRectangle(col)
		bsize := badge.MinSize()
		bg.Resize(fyne.NewSize(bsize.Width+6, bsize.Height))
		bg.Move(pos.SubtractXY(0, bsize.Height))
		badge.Move(pos.SubtractXY(-3, bsize.Height))
		out = append(out, bg, badge)
	}
	return out
}
