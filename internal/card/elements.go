/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package card

// AdaptiveCard is the root of a card document.
type AdaptiveCard struct {
	ElementBase `mapstructure:",squash"`
	Version     string `mapstructure:"version"`
	Schema      string `mapstructure:"$schema"`

	items
	actions
}

func NewAdaptiveCard() *AdaptiveCard {
	c := &AdaptiveCard{Version: "1.0"}
	c.applyDefaults()
	return c
}

func (*AdaptiveCard) Kind() Kind          { return KindAdaptiveCard }
func (*AdaptiveCard) TypeName() string    { return KindAdaptiveCard.String() }
func (c *AdaptiveCard) AddItem(e Element) { c.items.add(c, e) }
func (c *AdaptiveCard) InsertItemAfter(e, after Element) bool {
	return c.items.insertAfter(c, e, after)
}
func (c *AdaptiveCard) AddAction(a Action) { c.actions.add(c, a) }

// Container groups elements vertically.
type Container struct {
	ElementBase `mapstructure:",squash"`
	Style       string `mapstructure:"style"`

	items
}

func NewContainer() *Container {
	c := &Container{}
	c.applyDefaults()
	return c
}

func (*Container) Kind() Kind          { return KindContainer }
func (*Container) TypeName() string    { return KindContainer.String() }
func (c *Container) AddItem(e Element) { c.items.add(c, e) }
func (c *Container) InsertItemAfter(e, after Element) bool {
	return c.items.insertAfter(c, e, after)
}

// ColumnSet lays its columns out side by side. It only accepts columns, so
// it is a Branch but not an ItemContainer.
type ColumnSet struct {
	ElementBase `mapstructure:",squash"`

	items
}

func NewColumnSet() *ColumnSet {
	s := &ColumnSet{}
	s.applyDefaults()
	return s
}

func (*ColumnSet) Kind() Kind       { return KindColumnSet }
func (*ColumnSet) TypeName() string { return KindColumnSet.String() }

func (s *ColumnSet) AddColumn(c *Column) { s.items.add(s, c) }

// Columns returns the columns in order.
func (s *ColumnSet) Columns() []*Column {
	out := make([]*Column, 0, len(s.list))
	for _, e := range s.list {
		if c, ok := e.(*Column); ok {
			out = append(out, c)
		}
	}
	return out
}

// Column is one column of a ColumnSet.
type Column struct {
	ElementBase `mapstructure:",squash"`
	Width       string `mapstructure:"width"`

	items
}

func NewColumn() *Column {
	c := &Column{}
	c.applyDefaults()
	return c
}

func (*Column) Kind() Kind          { return KindColumn }
func (*Column) TypeName() string    { return KindColumn.String() }
func (c *Column) AddItem(e Element) { c.items.add(c, e) }
func (c *Column) InsertItemAfter(e, after Element) bool {
	return c.items.insertAfter(c, e, after)
}

// TextBlock displays text.
type TextBlock struct {
	ElementBase `mapstructure:",squash"`
	Text        string     `mapstructure:"text"`
	Wrap        bool       `mapstructure:"wrap"`
	MaxLines    int        `mapstructure:"maxLines"`
	Size        TextSize   `mapstructure:"size"`
	Weight      TextWeight `mapstructure:"weight"`
	Color       TextColor  `mapstructure:"color"`
	IsSubtle    bool       `mapstructure:"isSubtle"`
}

func NewTextBlock(text string) *TextBlock {
	t := &TextBlock{Text: text}
	t.applyDefaults()
	return t
}

func (t *TextBlock) applyDefaults() {
	t.ElementBase.applyDefaults()
	if t.Size == "" {
		t.Size = TextSizeDefault
	}
	if t.Weight == "" {
		t.Weight = TextWeightDefault
	}
	if t.Color == "" {
		t.Color = TextColorDefault
	}
}

func (*TextBlock) Kind() Kind       { return KindTextBlock }
func (*TextBlock) TypeName() string { return KindTextBlock.String() }

// Image displays an image referenced by URL.
type Image struct {
	ElementBase     `mapstructure:",squash"`
	URL             string     `mapstructure:"url"`
	AltText         string     `mapstructure:"altText"`
	Size            ImageSize  `mapstructure:"size"`
	Style           ImageStyle `mapstructure:"style"`
	BackgroundColor string     `mapstructure:"backgroundColor"`
}

func NewImage(url string) *Image {
	i := &Image{URL: url}
	i.applyDefaults()
	return i
}

func (i *Image) applyDefaults() {
	i.ElementBase.applyDefaults()
	if i.Size == "" {
		i.Size = ImageSizeAuto
	}
	if i.Style == "" {
		i.Style = ImageStyleDefault
	}
}

func (*Image) Kind() Kind       { return KindImage }
func (*Image) TypeName() string { return KindImage.String() }

// ActionSet is an element that only carries actions.
type ActionSet struct {
	ElementBase `mapstructure:",squash"`

	actions
}

func NewActionSet() *ActionSet {
	s := &ActionSet{}
	s.applyDefaults()
	return s
}

func (*ActionSet) Kind() Kind           { return KindActionSet }
func (*ActionSet) TypeName() string     { return KindActionSet.String() }
func (s *ActionSet) AddAction(a Action) { s.actions.add(s, a) }

// Fact is one title/value row of a FactSet.
type Fact struct {
	Title string `mapstructure:"title"`
	Value string `mapstructure:"value"`
}

// FactSet displays a list of facts.
type FactSet struct {
	ElementBase `mapstructure:",squash"`
	Facts       []Fact `mapstructure:"facts"`
}

func NewFactSet() *FactSet {
	f := &FactSet{}
	f.applyDefaults()
	return f
}

func (*FactSet) Kind() Kind       { return KindFactSet }
func (*FactSet) TypeName() string { return KindFactSet.String() }

// TextInput collects free text.
type TextInput struct {
	ElementBase `mapstructure:",squash"`
	Placeholder string `mapstructure:"placeholder"`
	Value       string `mapstructure:"value"`
	IsMultiline bool   `mapstructure:"isMultiline"`
	MaxLength   int    `mapstructure:"maxLength"`
}

func NewTextInput() *TextInput {
	t := &TextInput{}
	t.applyDefaults()
	return t
}

func (*TextInput) Kind() Kind       { return KindTextInput }
func (*TextInput) TypeName() string { return KindTextInput.String() }

// DateInput collects a date.
type DateInput struct {
	ElementBase `mapstructure:",squash"`
	Placeholder string `mapstructure:"placeholder"`
	Value       string `mapstructure:"value"`
	Min         string `mapstructure:"min"`
	Max         string `mapstructure:"max"`
}

func NewDateInput() *DateInput {
	d := &DateInput{}
	d.applyDefaults()
	return d
}

func (*DateInput) Kind() Kind       { return KindDateInput }
func (*DateInput) TypeName() string { return KindDateInput.String() }

// Unknown preserves an element of a type this package does not model, so a
// payload survives a parse/marshal round trip.
type Unknown struct {
	ElementBase `mapstructure:",squash"`
	Type        string         `mapstructure:"-"`
	Raw         map[string]any `mapstructure:"-"`
}

func (*Unknown) Kind() Kind         { return KindUnknown }
func (u *Unknown) TypeName() string { return u.Type }

// Walk visits root and its descendants depth first, calling fn for every
// element and for every action after the element that carries it.
func Walk(root Element, fn func(e Element, a Action)) {
	if root == nil {
		return
	}
	fn(root, nil)
	if h, ok := root.(ActionHolder); ok {
		for i := 0; i < h.ActionCount(); i++ {
			fn(nil, h.ActionAt(i))
		}
	}
	if c, ok := root.(Branch); ok {
		for i := 0; i < c.ItemCount(); i++ {
			Walk(c.ItemAt(i), fn)
		}
	}
}
