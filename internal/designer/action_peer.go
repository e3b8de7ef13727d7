/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package designer

import (
	"cardesigner/internal/card"
	"cardesigner/internal/sheet"
)

// ActionPeer controls an action. It is the fallback for every action kind.
type ActionPeer struct {
	peer   *Peer
	action card.Action
}

func NewActionPeer(d *Designer, a card.Action) *Peer {
	p := newPeer(d)
	p.variant = &ActionPeer{peer: p, action: a}
	return p
}

func (ap *ActionPeer) Peer() *Peer { return ap.peer }

func (ap *ActionPeer) Action() card.Action { return ap.action }

func (ap *ActionPeer) Node() any { return ap.action }

func (ap *ActionPeer) BadgeText() string { return ap.action.TypeName() }

func (ap *ActionPeer) HeaderText() string { return "Action type: **" + ap.BadgeText() + "**" }

func (ap *ActionPeer) ReferenceRenderedElement() *card.Rendered {
	return ap.action.RenderedElement()
}

func (ap *ActionPeer) RemoveNode() bool { return ap.action.Remove() }

func (ap *ActionPeer) Commands() []Command { return baseCommands(ap.peer) }

func (ap *ActionPeer) AddPropertySheetEntries(s *sheet.Sheet) {
	b := ap.action.Base()
	s.Add("Id", edited(ap.peer, sheet.NewText(b.ID, false, sheet.WithPlaceholder(notSet)), func(v string) bool {
		b.ID = v
		return true
	}))
	s.Add("Title", edited(ap.peer, sheet.NewText(b.Title, false), func(v string) bool {
		b.Title = v
		return true
	}))
}
