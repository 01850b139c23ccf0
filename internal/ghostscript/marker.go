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

import "image"

// FindMarker returns the centre of the red pixels in a rendered page, in
// PostScript coordinates.  The last return value is false if the page
// contains no red pixels.
func FindMarker(img image.Image) (x, y float64, ok bool) {
	var xSum, ySum, weight float64
	b := img.Bounds()
	for yPix := b.Min.Y; yPix < b.Max.Y; yPix++ {
		for xPix := b.Min.X; xPix < b.Max.X; xPix++ {
			red, green, blue, _ := img.At(xPix, yPix).RGBA()
			if red > 0x8000 && green < 0x4000 && blue < 0x4000 {
				xSum += float64(xPix)
				ySum += float64(yPix)
				weight++
			}
		}
	}
	if weight == 0 {
		return 0, 0, false
	}

	// Pixel (0, 0) covers the square from (0, H-1) to (1, H) in
	// PostScript coordinates, where H is the image height.
	x = xSum/weight - float64(b.Min.X) + 0.5
	y = float64(b.Max.Y) - (ySum/weight + 0.5)
	return x, y, true
}
