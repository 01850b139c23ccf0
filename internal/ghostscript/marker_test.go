// seehuhn.de/go/psutils - rearrange pages of PostScript documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ghostscript

import (
	"image"
	"image/color"
	"testing"
)

func TestFindMarker(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := range 50 {
		for x := range 100 {
			img.Set(x, y, color.White)
		}
	}
	// a 4x2 pixel marker covering x in [10, 14) and y in [40, 42) in
	// PostScript coordinates
	for y := 8; y < 10; y++ {
		for x := 10; x < 14; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	x, y, ok := FindMarker(img)
	if !ok {
		t.Fatal("marker not found")
	}
	if x != 12 || y != 41 {
		t.Errorf("got (%g, %g), want (12, 41)", x, y)
	}
}

func TestFindMarkerEmpty(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	if _, _, ok := FindMarker(img); ok {
		t.Error("marker found on an empty page")
	}
}
