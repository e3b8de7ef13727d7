/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardesigner/internal/card"
	"cardesigner/internal/designer"
	"cardesigner/internal/geom"
	applog "cardesigner/internal/log"
	"cardesigner/internal/render"
)

// designed renders the sample payload and selects its first text block.
func designed(t *testing.T) (*card.AdaptiveCard, *designer.Layer) {
	t.Helper()
	c, err := card.Parse([]byte(card.DefaultPayload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	layer := &designer.Layer{}
	d := designer.New(&designer.HostBuffer{}, layer, render.New(render.DefaultOptions()),
		designer.WithLogger(applog.Nop()),
		designer.WithElementRegistry(designer.NewElementRegistry()),
		designer.WithActionRegistry(designer.NewActionRegistry()),
	)
	d.SetCard(c)
	var text *card.TextBlock
	card.Walk(c, func(e card.Element, _ card.Action) {
		if tb, ok := e.(*card.TextBlock); ok && text == nil {
			text = tb
		}
	})
	d.Select(d.PeerFor(text))
	if d.SelectedPeer() == nil {
		t.Fatalf("no peer selected")
	}
	return c, layer
}

func TestCaptureKeepsBoxesAndActiveOverlays(t *testing.T) {
	c, layer := designed(t)
	s, err := Capture(c, layer.Regions())
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if s.Width != 400 || s.Height <= 0 {
		t.Fatalf("unexpected size %gx%g", s.Width, s.Height)
	}
	var actions, texts int
	for _, b := range s.Boxes {
		if b.Action {
			actions++
		}
		if b.Type == "TextBlock" {
			texts++
		}
	}
	if actions != 2 || texts == 0 {
		t.Fatalf("boxes: %d actions, %d text blocks", actions, texts)
	}
	if len(s.Overlays) == 0 {
		t.Fatalf("selected peer overlay missing")
	}
	for _, o := range s.Overlays {
		if !o.Selected {
			t.Fatalf("only the selected peer should be captured, got %#v", o)
		}
	}
	if s.Overlays[0].Badge != "TextBlock" {
		t.Fatalf("badge = %q", s.Overlays[0].Badge)
	}
}

func TestCaptureRequiresRenderedCard(t *testing.T) {
	if _, err := Capture(card.NewAdaptiveCard(), nil); err != ErrNotRendered {
		t.Fatalf("err = %v, want ErrNotRendered", err)
	}
	if _, err := Capture(nil, nil); err != ErrNotRendered {
		t.Fatalf("nil card err = %v", err)
	}
}

func TestWriteSVG(t *testing.T) {
	c, layer := designed(t)
	s, _ := Capture(c, layer.Regions())
	var buf bytes.Buffer
	if err := WriteSVG(&buf, s, DefaultOptions()); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "viewBox=\"0 0 400 ") {
		t.Fatalf("unexpected svg header: %.120s", out)
	}
	if !strings.Contains(out, ">TextBlock</text>") {
		t.Fatalf("badge label missing")
	}
	buf.Reset()
	if err := WriteSVG(&buf, s, Options{}); err != nil {
		t.Fatalf("WriteSVG without badges: %v", err)
	}
	if strings.Contains(buf.String(), ">TextBlock</text>") {
		t.Fatalf("badges drawn although disabled")
	}
}

func TestWritePNGSizeAndSelection(t *testing.T) {
	s := Snapshot{
		Width: 100, Height: 60,
		Boxes:    []Box{{Type: "TextBlock", Bounds: geom.R(10, 20, 80, 20), Text: "hi"}},
		Overlays: []Overlay{{Badge: "TextBlock", Bounds: geom.R(10, 20, 80, 20), Selected: true}},
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, s, Options{Scale: 2, Badges: true}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 120 {
		t.Fatalf("image size = %v", b)
	}
	r, g, b, _ := img.At(20, 60).RGBA()
	if r>>8 != 0 || g>>8 != 120 || b>>8 != 215 {
		t.Fatalf("selection stroke color = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestWriteFileAllFormats(t *testing.T) {
	c, layer := designed(t)
	s, _ := Capture(c, layer.Regions())
	dir := t.TempDir()
	for _, name := range []string{"svg", ".png", "PDF"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}
		path := filepath.Join(dir, "out", "card."+string(f))
		if err := WriteFile(path, f, s, DefaultOptions()); err != nil {
			t.Fatalf("WriteFile %s: %v", f, err)
		}
		st, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if st.Size() <= 0 {
			t.Fatalf("%s file empty", f)
		}
	}
	if _, err := ParseFormat("cbz"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
