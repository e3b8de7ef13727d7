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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// WritePNG rasterizes s. Labels use the 7x13 bitmap face so output is
// identical across machines.
func WritePNG(w io.Writer, s Snapshot, opt Options) error {
	img := Rasterize(s, opt)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Rasterize draws s into a new image.
func Rasterize(s Snapshot, opt Options) *image.RGBA {
	opt = opt.resolved()
	k := float64(opt.Scale)
	px := func(v float32) int { return int(math.Round(float64(v) * k)) }

	img := image.NewRGBA(image.Rect(0, 0, max(px(s.Width), 1), max(px(s.Height), 1)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	bc := toRGBA(opt.BoxStroke)
	for _, b := range s.Boxes {
		x, y := px(b.Bounds.X), px(b.Bounds.Y)
		x1, y1 := px(b.Bounds.X+b.Bounds.W)-1, px(b.Bounds.Y+b.Bounds.H)-1
		if b.Action {
			fillRect(img, x, y, x1, y1, color.RGBA{243, 243, 243, 255})
		}
		strokeRect(img, x, y, x1, y1, bc)
		if b.Text != "" {
			label(img, x+2, y+11, b.Text, color.RGBA{0, 0, 0, 255}, x1)
		}
	}

	for _, o := range s.Overlays {
		oc := toRGBA(overlayColor(o, opt))
		x, y := px(o.Bounds.X), px(o.Bounds.Y)
		x1, y1 := px(o.Bounds.X+o.Bounds.W)-1, px(o.Bounds.Y+o.Bounds.H)-1
		if o.Separator {
			fillRect(img, x, y, x1, y1, blend(oc, 0.3))
			continue
		}
		strokeRect(img, x, y, x1, y1, oc)
		if opt.Badges && o.Badge != "" {
			bw := len(o.Badge)*7 + 6
			fillRect(img, x, y-14, x+bw, y-1, oc)
			label(img, x+3, y-3, o.Badge, color.RGBA{255, 255, 255, 255}, x+bw)
		}
	}
	return img
}

// label draws s with its baseline at (x, y), clipped at maxX.
func label(img *image.RGBA, x, y int, s string, col color.RGBA, maxX int) {
	clip := img.SubImage(image.Rect(x, y-13, maxX, y+4)).(*image.RGBA)
	d := &font.Drawer{
		Dst:  clip,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func toRGBA(c Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// blend mixes c with white at the given opacity.
func blend(c color.RGBA, alpha float64) color.RGBA {
	mix := func(v uint8) uint8 { return uint8(math.Round(float64(v)*alpha + 255*(1-alpha))) }
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 255}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	// top and bottom
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	// left and right
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
