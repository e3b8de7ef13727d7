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

// Action is an action attached to a card or an action set.
type Action interface {
	Kind() ActionKind
	TypeName() string
	Base() *ActionBase
	// Owner is the element the action is attached to, nil when detached.
	Owner() ActionHolder
	// Remove detaches the action from its owner; false when it has none.
	Remove() bool
	RenderedElement() *Rendered
	SetRenderedElement(r *Rendered)
}

type actionRemover interface {
	removeAction(b *ActionBase) bool
}

// ActionBase holds the attributes shared by every action.
type ActionBase struct {
	ID    string `mapstructure:"id"`
	Title string `mapstructure:"title"`

	owner    ActionHolder
	rendered *Rendered
}

func (b *ActionBase) Base() *ActionBase { return b }

func (b *ActionBase) Owner() ActionHolder { return b.owner }

func (b *ActionBase) RenderedElement() *Rendered { return b.rendered }

func (b *ActionBase) SetRenderedElement(r *Rendered) { b.rendered = r }

func (b *ActionBase) Remove() bool {
	r, ok := b.owner.(actionRemover)
	if !ok {
		return false
	}
	if !r.removeAction(b) {
		return false
	}
	b.owner = nil
	return true
}

// OpenURLAction opens a URL.
type OpenURLAction struct {
	ActionBase `mapstructure:",squash"`
	URL        string `mapstructure:"url"`
}

func NewOpenURLAction(title string) *OpenURLAction {
	return &OpenURLAction{ActionBase: ActionBase{Title: title}}
}

func (*OpenURLAction) Kind() ActionKind { return ActionOpenURL }
func (*OpenURLAction) TypeName() string { return ActionOpenURL.String() }

// ShowCardAction reveals a nested card.
type ShowCardAction struct {
	ActionBase `mapstructure:",squash"`
	Card       *AdaptiveCard `mapstructure:"-"`
}

func NewShowCardAction(title string) *ShowCardAction {
	return &ShowCardAction{ActionBase: ActionBase{Title: title}, Card: NewAdaptiveCard()}
}

func (*ShowCardAction) Kind() ActionKind { return ActionShowCard }
func (*ShowCardAction) TypeName() string { return ActionShowCard.String() }

// HTTPAction issues an HTTP request.
type HTTPAction struct {
	ActionBase `mapstructure:",squash"`
	Method     string `mapstructure:"method"`
	URL        string `mapstructure:"url"`
	Body       string `mapstructure:"body"`
}

func NewHTTPAction(title string) *HTTPAction {
	return &HTTPAction{ActionBase: ActionBase{Title: title}, Method: "POST"}
}

func (*HTTPAction) Kind() ActionKind { return ActionHTTP }
func (*HTTPAction) TypeName() string { return ActionHTTP.String() }

// SubmitAction gathers input values and submits them with Data.
type SubmitAction struct {
	ActionBase `mapstructure:",squash"`
	Data       any `mapstructure:"data"`
}

func NewSubmitAction(title string) *SubmitAction {
	return &SubmitAction{ActionBase: ActionBase{Title: title}}
}

func (*SubmitAction) Kind() ActionKind { return ActionSubmit }
func (*SubmitAction) TypeName() string { return ActionSubmit.String() }

// UnknownAction preserves an action type this package does not model.
type UnknownAction struct {
	ActionBase `mapstructure:",squash"`
	Type       string         `mapstructure:"-"`
	Raw        map[string]any `mapstructure:"-"`
}

func (*UnknownAction) Kind() ActionKind   { return ActionUnknown }
func (a *UnknownAction) TypeName() string { return a.Type }
