//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"cardesigner/internal/designer"
	"cardesigner/internal/sheet"
)

// propertyPanel lists the header, the property form and the command
// buttons of p. A nil peer yields a hint.
func propertyPanel(p *designer.Peer, w fyne.Window) []fyne.CanvasObject {
	if p == nil {
		return []fyne.CanvasObject{widget.NewLabel("Select an element on the card.")}
	}
	s := p.BuildPropertySheet()
	form := widget.NewForm()
	for _, e := range s.Entries() {
		form.Append(e.Label, inputWidget(e.Input))
	}
	out := []fyne.CanvasObject{widget.NewRichTextFromMarkdown(s.Header), form, widget.NewSeparator()}
	for _, cmd := range p.Commands() {
		name := cmd.Name
		out = append(out, widget.NewButton(name, func() {
			if !p.Execute(name) && w != nil {
				dialog.ShowInformation(name, "The command could not be applied.", w)
			}
		}))
	}
	return out
}

// inputWidget binds a property input to an editable widget. Edits are
// written back on every change.
func inputWidget(in sheet.Input) fyne.CanvasObject {
	switch v := in.(type) {
	case *sheet.Toggle:
		chk := widget.NewCheck("", nil)
		chk.SetChecked(v.Checked())
		chk.OnChanged = v.SetChecked
		return chk
	case *sheet.ChoiceSet:
		titles := make([]string, 0, len(v.Choices()))
		byTitle := make(map[string]string, len(v.Choices()))
		selected := ""
		for _, c := range v.Choices() {
			titles = append(titles, c.Title)
			byTitle[c.Title] = c.Value
			if c.Value == v.Value() {
				selected = c.Title
			}
		}
		sel := widget.NewSelect(titles, nil)
		if selected != "" {
			sel.SetSelected(selected)
		}
		sel.PlaceHolder = v.Placeholder()
		sel.OnChanged = func(title string) { v.SetValue(byTitle[title]) }
		return sel
	case *sheet.TextInput:
		entry := widget.NewEntry()
		if v.Multiline() {
			entry = widget.NewMultiLineEntry()
			entry.Wrapping = fyne.TextWrapWord
		}
		entry.SetText(v.Value())
		entry.SetPlaceHolder(v.Placeholder())
		entry.OnChanged = v.SetValue
		return entry
	default:
		entry := widget.NewEntry()
		entry.SetText(in.Value())
		entry.SetPlaceHolder(in.Placeholder())
		entry.OnChanged = in.SetValue
		return entry
	}
}
