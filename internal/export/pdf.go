/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF writes s as a single-page PDF. One layout pixel maps to one
// point times opt.Scale.
func WritePDF(w io.Writer, s Snapshot, opt Options) error {
	opt = opt.resolved()
	k := float64(opt.Scale)
	f := func(v float32) float64 { return float64(v) * k }
	pageW, pageH := f(s.Width), f(s.Height)
	if pageW <= 0 || pageH <= 0 {
		return fmt.Errorf("empty snapshot %gx%g", s.Width, s.Height)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetTitle("Card design snapshot", false)
	pdf.SetAuthor("cardesigner", false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pageW, Ht: pageH})

	// Built-in Helvetica keeps text vector without embedding
	pdf.SetFont("Helvetica", "", 9*k)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	setDrawColor(pdf, opt.BoxStroke)
	pdf.SetLineWidth(0.5)
	for _, b := range s.Boxes {
		r := b.Bounds
		style := "D"
		if b.Action {
			pdf.SetFillColor(243, 243, 243)
			style = "FD"
		}
		pdf.Rect(f(r.X), f(r.Y), f(r.W), f(r.H), style)
		if b.Text != "" {
			pdf.SetTextColor(0, 0, 0)
			pdf.Text(f(r.X)+2, f(r.Y)+9*k, tr(b.Text))
		}
	}

	for _, o := range s.Overlays {
		r := o.Bounds
		c := overlayColor(o, opt)
		if o.Separator {
			pdf.SetAlpha(0.3, "Normal")
			setFillColor(pdf, c)
			pdf.Rect(f(r.X), f(r.Y), f(r.W), f(r.H), "F")
			pdf.SetAlpha(1, "Normal")
			continue
		}
		setDrawColor(pdf, c)
		pdf.SetLineWidth(1)
		pdf.Rect(f(r.X), f(r.Y), f(r.W), f(r.H), "D")
		if opt.Badges && o.Badge != "" {
			setFillColor(pdf, c)
			bw := pdf.GetStringWidth(o.Badge) + 6
			pdf.Rect(f(r.X), f(r.Y)-12*k, bw, 12*k, "F")
			pdf.SetTextColor(255, 255, 255)
			pdf.Text(f(r.X)+3, f(r.Y)-3*k, tr(o.Badge))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
