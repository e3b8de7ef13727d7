/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestOTProviderFallsBackWithoutFonts(t *testing.T) {
	otp := OTProvider{Lib: NewFontLibrary()}
	w := Measure(otp, FontSpec{Family: "Nonexistent", SizePt: 12}, "Hello")
	if bw := Measure(BasicProvider{}, FontSpec{}, "Hello"); w != bw {
		t.Fatalf("fallback measure = %v, want %v", w, bw)
	}
}

func TestOTProviderUsesLoadedFont(t *testing.T) {
	lib := NewFontLibrary()
	if err := lib.Load("Go", 400, false, goregular.TTF); err != nil {
		t.Fatalf("load regular: %v", err)
	}
	if err := lib.Load("Go", 700, false, gobold.TTF); err != nil {
		t.Fatalf("load bold: %v", err)
	}
	otp := OTProvider{Lib: lib, Family: "go"}
	regular := Measure(otp, FontSpec{SizePt: 24}, "Wide words")
	basic := Measure(BasicProvider{}, FontSpec{}, "Wide words")
	if regular <= 0 || regular == basic {
		t.Fatalf("expected the loaded face to measure differently: %v vs %v", regular, basic)
	}
	bold := Measure(otp, FontSpec{SizePt: 24, Weight: 800}, "Wide words")
	if bold <= regular {
		t.Fatalf("closest weight should pick the bold face: bold=%v regular=%v", bold, regular)
	}

	box := New(otp).Layout(Block{Text: "one two three four five six", Width: 60, Wrap: true, Weight: 700})
	if len(box.Lines) < 2 {
		t.Fatalf("expected wrapping with the loaded face: %q", box.Lines)
	}
}

func TestLoadFileErrors(t *testing.T) {
	lib := NewFontLibrary()
	if err := lib.LoadFile("x", 400, false, filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatalf("expected read error")
	}
	bad := filepath.Join(t.TempDir(), "bad.ttf")
	_ = os.WriteFile(bad, []byte("not a font"), 0o644)
	if err := lib.LoadFile("x", 400, false, bad); err == nil {
		t.Fatalf("expected parse error")
	}
	if lib.Len() != 0 {
		t.Fatalf("failed loads must not register faces")
	}
}
