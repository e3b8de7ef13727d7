/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package sheet is a small headless widget toolkit for property sheets. Each
// input holds a string value, a default, a placeholder and one value-changed
// callback. Hosts map inputs onto real widgets; tests drive them directly
// through SetValue.
package sheet

import (
	"strconv"
	"strings"
)

// Input is an editable field of a property sheet.
type Input interface {
	// Type names the widget kind: text, number, toggle or choice.
	Type() string
	Value() string
	DefaultValue() string
	Placeholder() string
	// SetValue stores v as if the user had entered it and fires the
	// value-changed callback when the stored value changed.
	SetValue(v string)
	// OnValueChanged replaces the value-changed callback.
	OnValueChanged(fn func(Input))
}

// Option configures an input at construction.
type Option func(*field)

func WithDefault(v string) Option { return func(f *field) { f.def = v } }

func WithPlaceholder(p string) Option { return func(f *field) { f.placeholder = p } }

type field struct {
	value       string
	def         string
	placeholder string
	onChange    func(Input)
}

func (f *field) Value() string                 { return f.value }
func (f *field) DefaultValue() string          { return f.def }
func (f *field) Placeholder() string           { return f.placeholder }
func (f *field) OnValueChanged(fn func(Input)) { f.onChange = fn }

func (f *field) set(self Input, v string) {
	if v == f.value {
		return
	}
	f.value = v
	if f.onChange != nil {
		f.onChange(self)
	}
}

func newField(value string, opts []Option) field {
	f := field{value: value}
	for _, o := range opts {
		o(&f)
	}
	return f
}

// TextInput is a single or multi line text field.
type TextInput struct {
	field
	multiline bool
}

func NewText(value string, multiline bool, opts ...Option) *TextInput {
	return &TextInput{field: newField(value, opts), multiline: multiline}
}

func (*TextInput) Type() string        { return "text" }
func (t *TextInput) Multiline() bool   { return t.multiline }
func (t *TextInput) SetValue(v string) { t.set(t, v) }

// NumberInput is a numeric field. It accepts any text, the way a browser
// number box does, and Int reports whether the text parses.
type NumberInput struct {
	field
}

func NewNumber(value int, opts ...Option) *NumberInput {
	return &NumberInput{field: newField(strconv.Itoa(value), opts)}
}

func (*NumberInput) Type() string        { return "number" }
func (n *NumberInput) SetValue(v string) { n.set(n, v) }

// Int parses the current value.
func (n *NumberInput) Int() (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(n.value))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Toggle is a checkbox; its value is "true" or "false".
type Toggle struct {
	field
}

func NewToggle(checked bool, opts ...Option) *Toggle {
	return &Toggle{field: newField(strconv.FormatBool(checked), opts)}
}

func (*Toggle) Type() string    { return "toggle" }
func (t *Toggle) Checked() bool { return t.value == "true" }

// SetValue accepts the spellings strconv.ParseBool knows and ignores
// anything else.
func (t *Toggle) SetValue(v string) {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return
	}
	t.set(t, strconv.FormatBool(b))
}

func (t *Toggle) SetChecked(b bool) { t.set(t, strconv.FormatBool(b)) }

// Choice is one entry of a ChoiceSet.
type Choice struct {
	Title string
	Value string
}

// Choices builds a choice list from a set of enumerated string values.
func Choices[T ~string](values []T) []Choice {
	out := make([]Choice, 0, len(values))
	for _, v := range values {
		out = append(out, Choice{Title: string(v), Value: string(v)})
	}
	return out
}

// ChoiceSet picks one value from a fixed list. The empty value is accepted
// only when the set was built with AllowEmpty.
type ChoiceSet struct {
	field
	choices    []Choice
	allowEmpty bool
}

func NewChoiceSet(value string, choices []Choice, opts ...Option) *ChoiceSet {
	return &ChoiceSet{field: newField(value, opts), choices: choices}
}

// AllowEmpty lets the user clear the selection.
func (c *ChoiceSet) AllowEmpty() *ChoiceSet {
	c.allowEmpty = true
	return c
}

func (*ChoiceSet) Type() string        { return "choice" }
func (c *ChoiceSet) Choices() []Choice { return c.choices }

func (c *ChoiceSet) SetValue(v string) {
	if v == "" && c.allowEmpty {
		c.set(c, v)
		return
	}
	for _, ch := range c.choices {
		if ch.Value == v {
			c.set(c, v)
			return
		}
	}
}
