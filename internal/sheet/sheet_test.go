/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package sheet

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetValueNotifiesOnlyOnChange(t *testing.T) {
	in := NewText("a", false, WithPlaceholder("(not set)"), WithDefault("d"))
	calls := 0
	in.OnValueChanged(func(got Input) {
		calls++
		if got != Input(in) {
			t.Fatalf("callback received a different input")
		}
	})
	in.SetValue("a")
	if calls != 0 {
		t.Fatalf("expected no notification for unchanged value")
	}
	in.SetValue("b")
	if calls != 1 || in.Value() != "b" {
		t.Fatalf("expected one notification and value b, got %d %q", calls, in.Value())
	}
	if in.Placeholder() != "(not set)" || in.DefaultValue() != "d" {
		t.Fatalf("options not applied")
	}
}

func TestNumberInputKeepsRawText(t *testing.T) {
	n := NewNumber(2)
	if v, ok := n.Int(); !ok || v != 2 {
		t.Fatalf("expected 2, got %d %v", v, ok)
	}
	n.SetValue("abc")
	if n.Value() != "abc" {
		t.Fatalf("raw text should be kept, got %q", n.Value())
	}
	if _, ok := n.Int(); ok {
		t.Fatalf("expected parse failure")
	}
	n.SetValue(" 7 ")
	if v, ok := n.Int(); !ok || v != 7 {
		t.Fatalf("expected 7, got %d %v", v, ok)
	}
}

func TestToggleNormalisesValues(t *testing.T) {
	tg := NewToggle(false)
	calls := 0
	tg.OnValueChanged(func(Input) { calls++ })
	tg.SetValue("maybe")
	if calls != 0 || tg.Checked() {
		t.Fatalf("invalid value must be ignored")
	}
	tg.SetValue("1")
	if !tg.Checked() || tg.Value() != "true" || calls != 1 {
		t.Fatalf("expected checked, got %q calls=%d", tg.Value(), calls)
	}
	tg.SetChecked(true)
	if calls != 1 {
		t.Fatalf("SetChecked with same state must not notify")
	}
}

func TestChoiceSetRejectsUnknownValues(t *testing.T) {
	type size string
	c := NewChoiceSet("small", Choices([]size{"small", "large"}))
	c.SetValue("huge")
	if c.Value() != "small" {
		t.Fatalf("unknown choice accepted: %q", c.Value())
	}
	c.SetValue("")
	if c.Value() != "small" {
		t.Fatalf("empty accepted without AllowEmpty")
	}
	c.AllowEmpty().SetValue("")
	if c.Value() != "" {
		t.Fatalf("empty rejected with AllowEmpty")
	}
	c.SetValue("large")
	if c.Value() != "large" {
		t.Fatalf("expected large, got %q", c.Value())
	}
}

func TestSheetLookupAndWrite(t *testing.T) {
	s := New()
	s.Header = "Element type: **TextBlock**"
	s.Add("Id", NewText("", false, WithPlaceholder("(not set)")))
	s.Add("Wrap", NewToggle(true))
	if got := strings.Join(s.Labels(), ","); got != "Id,Wrap" {
		t.Fatalf("unexpected labels %q", got)
	}
	if _, ok := s.Lookup("wrap"); !ok {
		t.Fatalf("lookup should ignore case")
	}
	if _, ok := s.Lookup("Size"); ok {
		t.Fatalf("unexpected entry")
	}
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Element type: **TextBlock**") || !strings.Contains(out, "(not set)") || !strings.Contains(out, `[toggle] "true"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
