/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package render

import (
	"errors"
	"strings"
	"testing"

	"cardesigner/internal/card"
	"cardesigner/internal/geom"
)

func TestRenderNilCard(t *testing.T) {
	if _, err := New(Options{}).Render(nil); !errors.Is(err, ErrNoCard) {
		t.Fatalf("expected ErrNoCard, got %v", err)
	}
}

func TestRenderStacksElements(t *testing.T) {
	c := card.NewAdaptiveCard()
	a := card.NewTextBlock("hello")
	b := card.NewTextBlock("world & more")
	c.AddItem(a)
	c.AddItem(b)

	markup, err := New(Options{Width: 400, Padding: 15}).Render(c)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !strings.Contains(markup, "hello") || !strings.Contains(markup, "world &amp; more") {
		t.Fatalf("markup missing text: %s", markup)
	}
	ra := a.RenderedElement()
	if ra == nil || ra.Bounds != geom.R(15, 15, 370, 13) {
		t.Fatalf("unexpected bounds for first block: %+v", ra)
	}
	if !ra.Separator.Empty() {
		t.Fatalf("first element must not have a separator strip")
	}
	rb := b.RenderedElement()
	if rb.Bounds.Y != 36 {
		t.Fatalf("expected second block at y=36, got %v", rb.Bounds.Y)
	}
	if rb.Separator != geom.R(15, 28, 370, 8) {
		t.Fatalf("unexpected separator strip %v", rb.Separator)
	}
	if got := c.RenderedElement().Bounds; got != geom.R(0, 0, 400, 64) {
		t.Fatalf("unexpected card bounds %v", got)
	}
}

func TestRenderSpacingNoneHasNoStrip(t *testing.T) {
	c := card.NewAdaptiveCard()
	a, b := card.NewTextBlock("a"), card.NewTextBlock("b")
	b.Spacing = card.SpacingNone
	c.AddItem(a)
	c.AddItem(b)
	if _, err := New(DefaultOptions()).Render(c); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !b.RenderedElement().Separator.Empty() {
		t.Fatalf("spacing none must not produce a separator strip")
	}
	if b.RenderedElement().Bounds.Y != a.RenderedElement().Bounds.Max().Y {
		t.Fatalf("expected b directly below a")
	}
}

func TestRenderWrapGrowsTextBlock(t *testing.T) {
	c := card.NewAdaptiveCard()
	tb := card.NewTextBlock(strings.Repeat("word ", 40))
	c.AddItem(tb)
	e := New(DefaultOptions())
	if _, err := e.Render(c); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	single := tb.RenderedElement().Bounds.H
	tb.Wrap = true
	if _, err := e.Render(c); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	wrapped := tb.RenderedElement().Bounds.H
	if wrapped <= single {
		t.Fatalf("expected wrapped height > %v, got %v", single, wrapped)
	}
	tb.MaxLines = 1
	if _, err := e.Render(c); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if tb.RenderedElement().Bounds.H != single {
		t.Fatalf("maxLines=1 should collapse to a single line")
	}
}

func TestRenderColumnsAndActions(t *testing.T) {
	c := card.NewAdaptiveCard()
	set := card.NewColumnSet()
	left, right := card.NewColumn(), card.NewColumn()
	right.AddItem(card.NewTextBlock("r"))
	set.AddColumn(left)
	set.AddColumn(right)
	c.AddItem(set)
	open := card.NewOpenURLAction("Open")
	submit := card.NewSubmitAction("Send")
	c.AddAction(open)
	c.AddAction(submit)

	markup, err := New(Options{Width: 400, Padding: 15}).Render(c)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	lb, rb := left.RenderedElement().Bounds, right.RenderedElement().Bounds
	if lb.W != rb.W || lb.W != 181 {
		t.Fatalf("expected equal column widths of 181, got %v and %v", lb.W, rb.W)
	}
	if rb.X != 15+181+8 {
		t.Fatalf("unexpected right column x %v", rb.X)
	}
	if lb.H != rb.H || lb.H != emptyBoxHeight {
		t.Fatalf("columns should share the tallest height: %v vs %v", lb.H, rb.H)
	}
	ob, sb := open.RenderedElement().Bounds, submit.RenderedElement().Bounds
	if ob.H != buttonHeight || ob.Y != sb.Y || sb.X <= ob.X {
		t.Fatalf("unexpected action row: %v %v", ob, sb)
	}
	if !strings.Contains(markup, `data-type="Action.Submit"`) {
		t.Fatalf("markup missing action button: %s", markup)
	}
}

func TestImageSizeAndAlignment(t *testing.T) {
	c := card.NewAdaptiveCard()
	img := card.NewImage("https://example.com/a.png")
	img.Size = card.ImageSizeSmall
	img.HorizontalAlignment = card.AlignRight
	c.AddItem(img)
	if _, err := New(Options{Width: 400, Padding: 15}).Render(c); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if got := img.RenderedElement().Bounds; got != geom.R(345, 15, 40, 40) {
		t.Fatalf("unexpected image bounds %v", got)
	}
}
