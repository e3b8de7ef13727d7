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
	"bytes"
	"fmt"
	"io"
	"math"
)

// WriteSVG writes s as an SVG document. Coordinates are the layout's
// pixels multiplied by opt.Scale.
func WriteSVG(w io.Writer, s Snapshot, opt Options) error {
	opt = opt.resolved()
	k := float64(opt.Scale)
	pxW := int(math.Ceil(float64(s.Width) * k))
	pxH := int(math.Ceil(float64(s.Height) * k))

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", pxW, pxH, s.Width, s.Height)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", s.Width, s.Height)

	bc := svgColor(opt.BoxStroke)
	for _, b := range s.Boxes {
		r := b.Bounds
		if b.Action {
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" rx=\"3\" ry=\"3\" fill=\"#f3f3f3\" stroke=\"%s\" stroke-width=\"1\"/>\n", r.X, r.Y, r.W, r.H, bc)
		} else {
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"0.5\"/>\n", r.X, r.Y, r.W, r.H, bc)
		}
		if b.Text != "" {
			wf("  <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"11\" fill=\"#000\">%s</text>\n", r.X+2, r.Y+11, escAttr("Segoe UI, Helvetica, Arial, sans-serif"), escText(b.Text))
		}
	}

	for _, o := range s.Overlays {
		r := o.Bounds
		oc := svgColor(overlayColor(o, opt))
		if o.Separator {
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" fill-opacity=\"0.3\"/>\n", r.X, r.Y, r.W, r.H, oc)
			continue
		}
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\"/>\n", r.X, r.Y, r.W, r.H, oc)
		if opt.Badges && o.Badge != "" {
			bw := float32(len(o.Badge))*6 + 6
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"12\" fill=\"%s\"/>\n", r.X, r.Y-12, bw, oc)
			wf("  <text x=\"%g\" y=\"%g\" font-family=\"monospace\" font-size=\"10\" fill=\"#fff\">%s</text>\n", r.X+3, r.Y-3, escText(o.Badge))
		}
	}
	wf("</svg>\n")

	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escAttr(s string) string {
	// naive escaping sufficient for our simple usage
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		case '\n':
			out = append(out, ' ')
		case '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		case '\n':
			out = append(out, ' ')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
