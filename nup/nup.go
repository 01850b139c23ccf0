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

// Package nup computes layouts which place several pages side by side on
// one sheet of paper.
package nup

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/psutils/pagespec"
)

// DefaultTolerance is the default limit for the wasted area of a layout,
// in square points.
const DefaultTolerance = 100000

// Params describes the desired layout.
type Params struct {
	// PaperSize is the size of the output pages.
	PaperSize rect.Rect

	// InSize is the size of the input pages.
	InSize rect.Rect

	// N is the number of input pages per output page.
	N int

	// Margin is the width of the unused margin around each output page.
	Margin float64

	// Border is the width of the gap around each input page.
	Border float64

	// Tolerance is the largest acceptable wasted area.
	// If this is 0, DefaultTolerance is used.
	Tolerance float64

	RotatedLeft  bool // the input pages are rotated left by 90 degrees
	RotatedRight bool // the input pages are rotated right by 90 degrees
	Flip         bool // swap the width and height of the output pages
	ColumnMajor  bool // fill columns first, instead of rows
}

var (
	// ErrNoLayout indicates that no layout with acceptable waste exists.
	ErrNoLayout = errors.New("can't find acceptable layout")

	ErrMargin = errors.New("margin is too large")
	ErrBorder = errors.New("border is too large")
)

// Layout finds the arrangement of p.N input pages on an output page which
// wastes the least amount of paper.  All factorisations of p.N into rows
// and columns are tried, both with upright and with rotated pages.
//
// The function returns a page specification implementing the layout,
// together with the size of the output pages.
func Layout(p *Params) (*pagespec.Spec, rect.Rect, error) {
	if p.N < 1 {
		return nil, rect.Rect{}, fmt.Errorf("invalid number of pages per sheet %d", p.N)
	}
	tolerance := p.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	rowMajor, leftRight, topBottom := !p.ColumnMajor, true, true
	if p.RotatedLeft {
		rowMajor = !rowMajor
		topBottom = !topBottom
	}
	if p.RotatedRight {
		rowMajor = !rowMajor
		leftRight = !leftRight
	}

	width, height := p.PaperSize.Dx(), p.PaperSize.Dy()
	if p.Flip {
		width, height = height, width
	}
	inWidth, inHeight := p.InSize.Dx(), p.InSize.Dy()

	pageWidth := width - 2*p.Margin
	pageHeight := height - 2*p.Margin
	if pageWidth <= 0 || pageHeight <= 0 {
		return nil, rect.Rect{}, ErrMargin
	}
	if p.Border > min(pageWidth, pageHeight) {
		return nil, rect.Rect{}, ErrBorder
	}

	best := tolerance
	var horiz, vert int
	rotate := false
	try := func(h, v int, w, ht float64, rot bool) {
		fh, fv := float64(h), float64(v)
		scale := min(pageHeight/(ht*fv), pageWidth/(w*fh))
		dx := pageWidth - scale*w*fh
		dy := pageHeight - scale*ht*fv
		if waste := dx*dx + dy*dy; waste < best {
			best, horiz, vert, rotate = waste, h, v, rot
		}
	}
	for h := 1; h <= p.N; h++ {
		if p.N%h != 0 {
			continue
		}
		v := p.N / h
		try(h, v, inWidth, inHeight, false)
		try(v, h, inHeight, inWidth, true)
	}
	if horiz == 0 {
		return nil, rect.Rect{}, fmt.Errorf("%w for %d-up", ErrNoLayout, p.N)
	}

	if rotate {
		topBottom, leftRight, rowMajor = !leftRight, topBottom, !rowMajor
		inWidth, inHeight = inHeight, inWidth
	}

	fh, fv := float64(horiz), float64(vert)
	scale := min((pageHeight-2*p.Border*fv)/(inHeight*fv),
		(pageWidth-2*p.Border*fh)/(inWidth*fh))

	// centre the pages in their cells
	hShift := (pageWidth/fh - inWidth*scale) / 2
	vShift := (pageHeight/fv - inHeight*scale) / 2

	tmpl := make(pagespec.Template, p.N)
	for page := range tmpl {
		var across, up int
		if rowMajor {
			across, up = page%horiz, page/horiz
		} else {
			across, up = page/vert, page%vert
		}
		if !leftRight {
			across = horiz - 1 - across
		}
		if topBottom {
			up = vert - 1 - up
		}

		l := pagespec.Layer{
			Page:  page,
			Scale: scale,
			YOff:  p.Margin + float64(up)*pageHeight/fv + vShift,
		}
		if rotate {
			// After rotating by 90 degrees, the page extends to the left
			// of the origin.
			l.Rotate = 90
			l.XOff = p.Margin + float64(across+1)*pageWidth/fh - hShift
		} else {
			l.XOff = p.Margin + float64(across)*pageWidth/fh + hShift
		}
		tmpl[page] = l
	}

	spec := &pagespec.Spec{
		Modulo:    p.N,
		Templates: []pagespec.Template{tmpl},
	}
	return spec, rect.Rect{URx: width, URy: height}, nil
}
