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
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ErrNotCard is returned when a payload's root is not an AdaptiveCard.
var ErrNotCard = errors.New("card: root type is not AdaptiveCard")

type defaulter interface {
	applyDefaults()
}

// Parse decodes a JSON card payload. Element and action types this package
// does not model are kept as Unknown and UnknownAction.
func Parse(data []byte) (*AdaptiveCard, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode card json: %w", err)
	}
	return FromMap(raw)
}

// FromMap builds a card from an already decoded JSON object.
func FromMap(raw map[string]any) (*AdaptiveCard, error) {
	if t, _ := raw["type"].(string); t != KindAdaptiveCard.String() {
		return nil, ErrNotCard
	}
	c := NewAdaptiveCard()
	if err := decodeFields(raw, c); err != nil {
		return nil, err
	}
	if err := eachObject(raw, "body", func(m map[string]any) error {
		e, err := decodeElement(m)
		if err != nil {
			return err
		}
		c.AddItem(e)
		return nil
	}); err != nil {
		return nil, err
	}
	if err := decodeActions(raw, c); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeFields(raw map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decode %v: %w", raw["type"], err)
	}
	if d, ok := target.(defaulter); ok {
		d.applyDefaults()
	}
	return nil
}

func newElement(typeName string) Element {
	switch KindOf(typeName) {
	case KindContainer:
		return &Container{}
	case KindColumnSet:
		return &ColumnSet{}
	case KindColumn:
		return &Column{}
	case KindTextBlock:
		return &TextBlock{}
	case KindImage:
		return &Image{}
	case KindActionSet:
		return &ActionSet{}
	case KindFactSet:
		return &FactSet{}
	case KindTextInput:
		return &TextInput{}
	case KindDateInput:
		return &DateInput{}
	}
	return &Unknown{Type: typeName}
}

func decodeElement(raw map[string]any) (Element, error) {
	typeName, _ := raw["type"].(string)
	e := newElement(typeName)
	if err := decodeFields(raw, e); err != nil {
		return nil, err
	}
	switch v := e.(type) {
	case *Unknown:
		v.Raw = raw
	case *ColumnSet:
		err := eachObject(raw, "columns", func(m map[string]any) error {
			col := &Column{}
			if err := decodeFields(m, col); err != nil {
				return err
			}
			if err := decodeItems(m, col); err != nil {
				return err
			}
			v.AddColumn(col)
			return nil
		})
		if err != nil {
			return nil, err
		}
	case ItemContainer:
		if err := decodeItems(raw, v); err != nil {
			return nil, err
		}
	}
	if h, ok := e.(ActionHolder); ok {
		if err := decodeActions(raw, h); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func decodeItems(raw map[string]any, c ItemContainer) error {
	return eachObject(raw, "items", func(m map[string]any) error {
		e, err := decodeElement(m)
		if err != nil {
			return err
		}
		c.AddItem(e)
		return nil
	})
}

func decodeActions(raw map[string]any, h ActionHolder) error {
	return eachObject(raw, "actions", func(m map[string]any) error {
		a, err := decodeAction(m)
		if err != nil {
			return err
		}
		h.AddAction(a)
		return nil
	})
}

func decodeAction(raw map[string]any) (Action, error) {
	typeName, _ := raw["type"].(string)
	var a Action
	switch ActionKindOf(typeName) {
	case ActionOpenURL:
		a = &OpenURLAction{}
	case ActionShowCard:
		sc := &ShowCardAction{}
		if m, ok := raw["card"].(map[string]any); ok {
			nested, err := FromMap(m)
			if err != nil {
				return nil, fmt.Errorf("decode show card: %w", err)
			}
			sc.Card = nested
		}
		a = sc
	case ActionHTTP:
		a = &HTTPAction{}
	case ActionSubmit:
		a = &SubmitAction{}
	default:
		a = &UnknownAction{Type: typeName, Raw: raw}
	}
	if err := decodeFields(raw, a); err != nil {
		return nil, err
	}
	return a, nil
}

// eachObject calls fn for every object in the array stored under key. A
// missing key is not an error.
func eachObject(raw map[string]any, key string, fn func(map[string]any) error) error {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return fmt.Errorf("card: %q is not an array", key)
	}
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return fmt.Errorf("card: %s[%d] is not an object", key, i)
		}
		if err := fn(m); err != nil {
			return fmt.Errorf("%s[%d]: %w", key, i, err)
		}
	}
	return nil
}
