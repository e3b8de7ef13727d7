//go:build fyne && cgo

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
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"cardesigner/internal/card"
	"cardesigner/internal/config"
	"cardesigner/internal/crash"
	"cardesigner/internal/designer"
	"cardesigner/internal/geom"
	"cardesigner/internal/library"
	applog "cardesigner/internal/log"
	"cardesigner/internal/session"
	"cardesigner/internal/version"
)

// Run starts the desktop designer. path may be empty to open the sample
// card.
func Run(path string, cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	var sess *session.Session
	defer crash.Recover(&crash.State{Command: "ui", Card: func() []byte {
		if sess == nil {
			return nil
		}
		b, _ := sess.Payload()
		return b
	}})

	fyneApp := app.NewWithID("cardesigner")
	w := fyneApp.NewWindow("Card Designer")
	status := widget.NewLabel("")

	cc := NewCardCanvas(func() *card.AdaptiveCard {
		if sess == nil {
			return nil
		}
		return sess.Card()
	})
	var err error
	sess, err = session.New(cfg, cc, designer.WithLogger(applog.WithComponent("designer")))
	if err != nil {
		return err
	}
	d := sess.Designer()

	markup := widget.NewMultiLineEntry()
	markup.Wrapping = fyne.TextWrapBreak
	props := container.NewVBox()

	setTitle := func() {
		name := sess.Path()
		if name == "" {
			name = "sample card"
		}
		if sess.Dirty() {
			name += " *"
		}
		w.SetTitle("Card Designer - " + filepath.Base(name))
	}
	showProps := func(p *designer.Peer) {
		props.Objects = propertyPanel(p, w)
		props.Refresh()
		if p == nil {
			status.SetText("Nothing selected")
		} else {
			status.SetText(fmt.Sprintf("%s selected", p.BadgeText()))
		}
	}
	d.OnSelectedPeerChanged(func(p *designer.Peer) {
		showProps(p)
		cc.Refresh()
	})
	d.AddListener(func(ev designer.Event) {
		markup.SetText(sess.Markup())
		setTitle()
		cc.Refresh()
		if ev.Type == designer.EventPeerCreated {
			l.Debug("peer added", applog.Peer(ev.Child.ID(), ev.Child.BadgeText()))
		}
	})
	cc.OnTap = func(pt geom.Pt) { d.Select(d.PeerAt(pt)) }
	cc.OnHover = func(pt geom.Pt) { d.Hover(pt) }

	reload := func() {
		markup.SetText(sess.Markup())
		showProps(nil)
		setTitle()
		cc.Refresh()
	}
	if err := sess.Open(path); err != nil {
		l.Error("open card failed", slog.String("path", path), slog.Any("err", err))
		dialog.ShowError(err, w)
		_ = sess.Open("")
	}
	reload()

	openItem := fyne.NewMenuItem("Open…", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			p := rc.URI().Path()
			_ = rc.Close()
			if err := sess.Open(p); err != nil {
				dialog.ShowError(err, w)
				return
			}
			reload()
		}, w)
		fd.Show()
	})
	saveAs := func() {
		fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			p := wc.URI().Path()
			_ = wc.Close()
			if err := sess.SaveAs(p); err != nil {
				dialog.ShowError(err, w)
				return
			}
			setTitle()
		}, w)
		fd.SetFileName("card.json")
		fd.Show()
	}
	saveItem := fyne.NewMenuItem("Save", func() {
		if sess.Path() == "" {
			saveAs()
			return
		}
		if err := sess.Save(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		setTitle()
	})
	saveAsItem := fyne.NewMenuItem("Save As…", saveAs)
	exportItem := fyne.NewMenuItem("Export Snapshot…", func() {
		fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			p := wc.URI().Path()
			_ = wc.Close()
			if err := sess.Export(p, ""); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export", "Exported to "+p, w)
		}, w)
		fd.SetFileName("card." + cfg.Export.Format)
		fd.Show()
	})
	libraryItem := fyne.NewMenuItem("Save to Library…", func() {
		nameEntry := widget.NewEntry()
		if sess.Path() != "" {
			nameEntry.SetText(filepath.Base(sess.Path()))
		}
		form := dialog.NewForm("Save to Library", "Save", "Cancel", []*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
		}, func(ok bool) {
			if !ok {
				return
			}
			rev, err := saveToLibrary(cfg, sess, nameEntry.Text)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText(fmt.Sprintf("Saved %s revision %d", rev.Name, rev.Number))
		}, w)
		form.Show()
	})
	removeItem := fyne.NewMenuItem("Remove Selected", func() {
		if !d.RemoveSelected() {
			dialog.ShowInformation("Remove", "Nothing removable is selected.", w)
		}
	})
	openItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}
	saveItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}

	w.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File", openItem, saveItem, saveAsItem, fyne.NewMenuItemSeparator(), exportItem, libraryItem),
		fyne.NewMenu("Edit", removeItem),
	))
	w.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		if e.Name == fyne.KeyDelete {
			removeItem.Action()
		}
	})

	tabs := container.NewAppTabs(
		container.NewTabItem("Properties", container.NewVScroll(props)),
		container.NewTabItem("Markup", markup),
	)
	split := container.NewHSplit(container.NewScroll(cc), tabs)
	split.Offset = 0.62
	w.SetContent(container.NewBorder(nil, status, nil, nil, split))
	w.Resize(fyne.NewSize(1100, 720))
	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}

func saveToLibrary(cfg config.AppConfig, sess *session.Session, name string) (library.Revision, error) {
	path, err := cfg.LibraryPath()
	if err != nil {
		return library.Revision{}, err
	}
	lib, err := library.Open(path)
	if err != nil {
		return library.Revision{}, err
	}
	defer lib.Close()
	payload, err := sess.Payload()
	if err != nil {
		return library.Revision{}, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return lib.Save(ctx, name, payload)
}
