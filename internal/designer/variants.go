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
	"strconv"

	"cardesigner/internal/card"
	"cardesigner/internal/sheet"
)

// CardPeer controls the card root.
type CardPeer struct {
	ElementPeer
	Typed[*card.AdaptiveCard]
}

func NewCardPeer(d *Designer, c *card.AdaptiveCard) *Peer {
	return newTypedPeer(d, c, func(ep ElementPeer, t Typed[*card.AdaptiveCard]) Variant {
		return &CardPeer{ElementPeer: ep, Typed: t}
	})
}

func (cp *CardPeer) Commands() []Command {
	cmds := append(cp.ElementPeer.Commands(), cp.addItemCommand(cp.Element()))
	return append(cmds, cp.actionCommands(cp.Element())...)
}

// ContainerPeer controls a Container.
type ContainerPeer struct {
	ElementPeer
	Typed[*card.Container]
}

func NewContainerPeer(d *Designer, c *card.Container) *Peer {
	return newTypedPeer(d, c, func(ep ElementPeer, t Typed[*card.Container]) Variant {
		return &ContainerPeer{ElementPeer: ep, Typed: t}
	})
}

func (cp *ContainerPeer) Commands() []Command {
	return append(cp.ElementPeer.Commands(), cp.addItemCommand(cp.Element()))
}

// ColumnSetPeer controls a ColumnSet.
type ColumnSetPeer struct {
	ElementPeer
	Typed[*card.ColumnSet]
}

func NewColumnSetPeer(d *Designer, s *card.ColumnSet) *Peer {
	return newTypedPeer(d, s, func(ep ElementPeer, t Typed[*card.ColumnSet]) Variant {
		return &ColumnSetPeer{ElementPeer: ep, Typed: t}
	})
}

func (sp *ColumnSetPeer) Commands() []Command {
	return append(sp.ElementPeer.Commands(), Command{
		Name: "Add Column",
		Execute: func() {
			col := card.NewColumn()
			sp.Element().AddColumn(col)
			sp.adopt(col)
		},
	})
}

// ColumnPeer controls a Column.
type ColumnPeer struct {
	ElementPeer
	Typed[*card.Column]
}

func NewColumnPeer(d *Designer, c *card.Column) *Peer {
	return newTypedPeer(d, c, func(ep ElementPeer, t Typed[*card.Column]) Variant {
		return &ColumnPeer{ElementPeer: ep, Typed: t}
	})
}

func (cp *ColumnPeer) Commands() []Command {
	return append(cp.ElementPeer.Commands(), cp.addItemCommand(cp.Element()))
}

// ActionSetPeer controls an ActionSet.
type ActionSetPeer struct {
	ElementPeer
	Typed[*card.ActionSet]
}

func NewActionSetPeer(d *Designer, s *card.ActionSet) *Peer {
	return newTypedPeer(d, s, func(ep ElementPeer, t Typed[*card.ActionSet]) Variant {
		return &ActionSetPeer{ElementPeer: ep, Typed: t}
	})
}

func (sp *ActionSetPeer) Commands() []Command {
	return append(sp.ElementPeer.Commands(), sp.actionCommands(sp.Element())...)
}

// ImagePeer controls an Image.
type ImagePeer struct {
	ElementPeer
	Typed[*card.Image]
}

func NewImagePeer(d *Designer, img *card.Image) *Peer {
	return newTypedPeer(d, img, func(ep ElementPeer, t Typed[*card.Image]) Variant {
		return &ImagePeer{ElementPeer: ep, Typed: t}
	})
}

func (ip *ImagePeer) AddPropertySheetEntries(s *sheet.Sheet) {
	ip.ElementPeer.AddPropertySheetEntries(s)
	img := ip.Element()
	s.Add("Url", edited(ip.peer, sheet.NewText(img.URL, false), func(v string) bool {
		img.URL = v
		return true
	}))
	s.Add("Alternate text", edited(ip.peer, sheet.NewText(img.AltText, false), func(v string) bool {
		img.AltText = v
		return true
	}))
	s.Add("Size", edited(ip.peer, sheet.NewChoiceSet(string(img.Size), sheet.Choices(card.ImageSizeValues)), func(v string) bool {
		img.Size = card.ImageSize(v)
		return true
	}))
	s.Add("Style", edited(ip.peer, sheet.NewChoiceSet(string(img.Style), sheet.Choices(card.ImageStyleValues)), func(v string) bool {
		img.Style = card.ImageStyle(v)
		return true
	}))
	s.Add("Background color", edited(ip.peer, sheet.NewText(img.BackgroundColor, false), func(v string) bool {
		img.BackgroundColor = v
		return true
	}))
}

// TextBlockPeer controls a TextBlock.
type TextBlockPeer struct {
	ElementPeer
	Typed[*card.TextBlock]
}

func NewTextBlockPeer(d *Designer, tb *card.TextBlock) *Peer {
	return newTypedPeer(d, tb, func(ep ElementPeer, t Typed[*card.TextBlock]) Variant {
		return &TextBlockPeer{ElementPeer: ep, Typed: t}
	})
}

func (tp *TextBlockPeer) AddPropertySheetEntries(s *sheet.Sheet) {
	tp.ElementPeer.AddPropertySheetEntries(s)
	tb := tp.Element()
	s.Add("Text", edited(tp.peer, sheet.NewText(tb.Text, true), func(v string) bool {
		tb.Text = v
		return true
	}))
	s.Add("Wrap", edited(tp.peer, sheet.NewToggle(tb.Wrap), func(v string) bool {
		tb.Wrap = v == "true"
		return true
	}))
	maxLines := sheet.NewNumber(tb.MaxLines, sheet.WithPlaceholder(notSet), sheet.WithDefault(strconv.Itoa(tb.MaxLines)))
	s.Add("Maximum lines", edited(tp.peer, maxLines, func(string) bool {
		n, ok := maxLines.Int()
		if !ok || n < 0 {
			return false
		}
		tb.MaxLines = n
		return true
	}))
	s.Add("Size", edited(tp.peer, sheet.NewChoiceSet(string(tb.Size), sheet.Choices(card.TextSizeValues)), func(v string) bool {
		tb.Size = card.TextSize(v)
		return true
	}))
	s.Add("Weight", edited(tp.peer, sheet.NewChoiceSet(string(tb.Weight), sheet.Choices(card.TextWeightValues)), func(v string) bool {
		tb.Weight = card.TextWeight(v)
		return true
	}))
	s.Add("Color", edited(tp.peer, sheet.NewChoiceSet(string(tb.Color), sheet.Choices(card.TextColorValues)), func(v string) bool {
		tb.Color = card.TextColor(v)
		return true
	}))
	s.Add("Subtle", edited(tp.peer, sheet.NewToggle(tb.IsSubtle), func(v string) bool {
		tb.IsSubtle = v == "true"
		return true
	}))
}
