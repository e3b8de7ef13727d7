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

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Marshal encodes the card as indented JSON. Attributes at their zero value
// are omitted.
func Marshal(c *AdaptiveCard) ([]byte, error) {
	if c == nil {
		return nil, ErrNotCard
	}
	b, err := json.MarshalIndent(ToMap(c), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode card json: %w", err)
	}
	return b, nil
}

// ToMap converts an element tree into its JSON object form.
func ToMap(e Element) map[string]any {
	m := map[string]any{}
	if u, ok := e.(*Unknown); ok {
		maps.Copy(m, u.Raw)
	}
	m["type"] = e.TypeName()
	b := e.Base()
	put(m, "id", b.ID)
	if b.Spacing != SpacingDefault {
		put(m, "spacing", string(b.Spacing))
	}
	put(m, "separator", b.Separator)
	put(m, "horizontalAlignment", string(b.HorizontalAlignment))
	if b.Height != HeightAuto {
		put(m, "height", string(b.Height))
	}

	switch v := e.(type) {
	case *AdaptiveCard:
		put(m, "version", v.Version)
		put(m, "$schema", v.Schema)
		m["body"] = itemMaps(v)
	case *Container:
		put(m, "style", v.Style)
		m["items"] = itemMaps(v)
	case *ColumnSet:
		m["columns"] = itemMaps(v)
	case *Column:
		put(m, "width", v.Width)
		m["items"] = itemMaps(v)
	case *TextBlock:
		m["text"] = v.Text
		put(m, "wrap", v.Wrap)
		put(m, "maxLines", v.MaxLines)
		putUnlessDefault(m, "size", string(v.Size), string(TextSizeDefault))
		putUnlessDefault(m, "weight", string(v.Weight), string(TextWeightDefault))
		putUnlessDefault(m, "color", string(v.Color), string(TextColorDefault))
		put(m, "isSubtle", v.IsSubtle)
	case *Image:
		m["url"] = v.URL
		put(m, "altText", v.AltText)
		putUnlessDefault(m, "size", string(v.Size), string(ImageSizeAuto))
		putUnlessDefault(m, "style", string(v.Style), string(ImageStyleDefault))
		put(m, "backgroundColor", v.BackgroundColor)
	case *FactSet:
		facts := make([]any, 0, len(v.Facts))
		for _, f := range v.Facts {
			facts = append(facts, map[string]any{"title": f.Title, "value": f.Value})
		}
		m["facts"] = facts
	case *TextInput:
		put(m, "placeholder", v.Placeholder)
		put(m, "value", v.Value)
		put(m, "isMultiline", v.IsMultiline)
		put(m, "maxLength", v.MaxLength)
	case *DateInput:
		put(m, "placeholder", v.Placeholder)
		put(m, "value", v.Value)
		put(m, "min", v.Min)
		put(m, "max", v.Max)
	}
	if h, ok := e.(ActionHolder); ok && h.ActionCount() > 0 {
		list := make([]any, 0, h.ActionCount())
		for i := 0; i < h.ActionCount(); i++ {
			list = append(list, ActionToMap(h.ActionAt(i)))
		}
		m["actions"] = list
	}
	return m
}

// ActionToMap converts an action into its JSON object form.
func ActionToMap(a Action) map[string]any {
	m := map[string]any{}
	if u, ok := a.(*UnknownAction); ok {
		maps.Copy(m, u.Raw)
	}
	m["type"] = a.TypeName()
	b := a.Base()
	put(m, "id", b.ID)
	put(m, "title", b.Title)
	switch v := a.(type) {
	case *OpenURLAction:
		m["url"] = v.URL
	case *ShowCardAction:
		if v.Card != nil {
			m["card"] = ToMap(v.Card)
		}
	case *HTTPAction:
		put(m, "method", v.Method)
		put(m, "url", v.URL)
		put(m, "body", v.Body)
	case *SubmitAction:
		if v.Data != nil {
			m["data"] = v.Data
		}
	}
	return m
}

func itemMaps(c Branch) []any {
	out := make([]any, 0, c.ItemCount())
	for i := 0; i < c.ItemCount(); i++ {
		out = append(out, ToMap(c.ItemAt(i)))
	}
	return out
}

func put[T comparable](m map[string]any, key string, v T) {
	var zero T
	if v != zero {
		m[key] = v
	}
}

func putUnlessDefault(m map[string]any, key, v, def string) {
	if v != "" && v != def {
		m[key] = v
	}
}
