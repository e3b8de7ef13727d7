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

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"cardesigner/internal/card"
	"cardesigner/internal/config"
	"cardesigner/internal/designer"
	"cardesigner/internal/geom"
	applog "cardesigner/internal/log"
	"cardesigner/internal/session"
)

func newCanvasSession(t *testing.T) (*CardCanvas, *session.Session) {
	t.Helper()
	test.NewTempApp(t)
	var sess *session.Session
	cc := NewCardCanvas(func() *card.AdaptiveCard { return sess.Card() })
	var err error
	sess, err = session.New(config.Defaults(), cc, designer.WithLogger(applog.Nop()))
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if err := sess.Open(""); err != nil {
		t.Fatalf("open: %v", err)
	}
	d := sess.Designer()
	cc.OnTap = func(pt geom.Pt) { d.Select(d.PeerAt(pt)) }
	cc.OnHover = func(pt geom.Pt) { d.Hover(pt) }
	return cc, sess
}

func firstTextBlock(c *card.AdaptiveCard) *card.TextBlock {
	var tb *card.TextBlock
	card.Walk(c, func(e card.Element, _ card.Action) {
		if v, ok := e.(*card.TextBlock); ok && tb == nil {
			tb = v
		}
	})
	return tb
}

func TestCardCanvas_AttachesEveryRegion(t *testing.T) {
	cc, sess := newCanvasSession(t)
	if len(cc.regions) != len(sess.Regions()) {
		t.Fatalf("canvas holds %d regions, designer has %d", len(cc.regions), len(sess.Regions()))
	}
	sz := cc.MinSize()
	b := sess.Card().RenderedElement().Bounds
	if sz.Width != b.W+48 || sz.Height != b.H+48 {
		t.Fatalf("MinSize = %v for card %v", sz, b)
	}
}

func TestCardCanvas_TapSelectsPeer(t *testing.T) {
	cc, sess := newCanvasSession(t)
	tb := firstTextBlock(sess.Card())
	r := tb.RenderedElement().Bounds
	test.TapAt(cc, fyne.NewPos(r.X+cc.margin+1, r.Y+cc.margin+1))

	sel := sess.Designer().SelectedPeer()
	if sel == nil || sel.Node() != tb {
		t.Fatalf("tap selected %v, want the text block peer", sel)
	}
	test.TapAt(cc, fyne.NewPos(1, 1))
	if sess.Designer().SelectedPeer() != nil {
		t.Fatalf("tapping the margin should clear the selection")
	}
}

func TestCardCanvas_RendererDrawsSelectionBadge(t *testing.T) {
	cc, sess := newCanvasSession(t)
	r := test.TempWidgetRenderer(t, cc).(*cardCanvasRenderer)
	before := len(r.Objects())

	sess.Designer().Select(sess.Designer().PeerFor(firstTextBlock(sess.Card())))
	r.Refresh()
	if got := len(r.Objects()); got < before+3 {
		t.Fatalf("expected outline and badge objects, %d -> %d", before, got)
	}
}

func TestPropertyPanel_WritesBack(t *testing.T) {
	_, sess := newCanvasSession(t)
	tb := firstTextBlock(sess.Card())
	p := sess.Designer().PeerFor(tb)

	objs := propertyPanel(p, nil)
	var form *widget.Form
	for _, o := range objs {
		if f, ok := o.(*widget.Form); ok {
			form = f
		}
	}
	if form == nil || len(form.Items) != p.BuildPropertySheet().Len() {
		t.Fatalf("form does not mirror the property sheet")
	}
	for _, it := range form.Items {
		if it.Text != "Wrap" {
			continue
		}
		chk := it.Widget.(*widget.Check)
		chk.SetChecked(!tb.Wrap)
		if tb.Wrap != chk.Checked {
			t.Fatalf("wrap not written back")
		}
		return
	}
	t.Fatalf("no Wrap field")
}

func TestPropertyPanel_NilPeer(t *testing.T) {
	if objs := propertyPanel(nil, nil); len(objs) != 1 {
		t.Fatalf("expected a single hint, got %d objects", len(objs))
	}
}
