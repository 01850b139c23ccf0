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


// Package epsf fits Encapsulated PostScript images into a given box.
//
// The image is scaled, and optionally rotated, so that its bounding box
// fits into the target box.  The PostScript code of the image is copied
// unchanged, framed by the code which sets up the coordinate system.
package epsf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Options controls how an image is placed by [Fit].
type Options struct {
	// Box is the target area, in PostScript points.
	Box rect.Rect

	Center   bool // centre the image in Box
	Rotate   bool // rotate the image by 90 degrees counter-clockwise
	Aspect   bool // scale the two axes separately, to fill all of Box
	Maximize bool // rotate the image if this makes it fit Box better

	// ShowPage disables showpage and related operators inside the image,
	// and appends a showpage at the end, so that the output can be
	// printed on its own.
	ShowPage bool
}

var (
	// ErrNoBoundingBox is returned by [Fit] if the header comments of the
	// input contain no usable %%BoundingBox: comment.
	ErrNoBoundingBox = errors.New("no %%BoundingBox:")

	errEmptyImage = errors.New("bounding box of the image has zero width or height")
	errEmptyBox   = errors.New("target box has zero width or height")
)

// Placement describes where an image ends up.  The image is scaled first,
// then rotated if Rotate is set, and finally moved by the offsets.
type Placement struct {
	XOffset, YOffset float64
	XScale, YScale   float64
	Rotate           bool

	// BoundingBox is the bounding box of the placed image, in the
	// integer form used for the %%BoundingBox: comment.
	BoundingBox [4]int
}

// Place computes the placement of an image with bounding box bbox.
func Place(bbox rect.Rect, opt *Options) (*Placement, error) {
	width, height := bbox.Dx(), bbox.Dy()
	if width <= 0 || height <= 0 {
		return nil, errEmptyImage
	}
	box := opt.Box
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return nil, errEmptyBox
	}

	rotate := opt.Rotate
	if opt.Maximize {
		if width > height && box.Dy() > box.Dx() || width < height && box.Dy() < box.Dx() {
			rotate = true
		}
	}

	fWidth, fHeight := box.Dx(), box.Dy()
	if rotate {
		fWidth, fHeight = fHeight, fWidth
	}
	xScale, yScale := fWidth/width, fHeight/height
	if !opt.Aspect {
		xScale = min(xScale, yScale)
		yScale = xScale
	}

	// size of the image after scaling
	width *= xScale
	height *= yScale

	xOff, yOff := box.LLx, box.LLy
	if opt.Center {
		if rotate {
			xOff += (fHeight - height) / 2
			yOff += (fWidth - width) / 2
		} else {
			xOff += (fWidth - width) / 2
			yOff += (fHeight - height) / 2
		}
	}

	p := &Placement{XScale: xScale, YScale: yScale, Rotate: rotate}
	if rotate {
		p.BoundingBox = [4]int{int(xOff), int(yOff), int(xOff + height), int(yOff + width)}
		p.XOffset = xOff + height + bbox.LLy*yScale
		p.YOffset = yOff - bbox.LLx*xScale
	} else {
		p.BoundingBox = [4]int{int(xOff), int(yOff), int(xOff + width), int(yOff + height)}
		p.XOffset = xOff - bbox.LLx*xScale
		p.YOffset = yOff - bbox.LLy*yScale
	}
	return p, nil
}

// Matrix returns the transformation from image coordinates to page
// coordinates.
func (p *Placement) Matrix() matrix.Matrix {
	m := matrix.Scale(p.XScale, p.YScale)
	if p.Rotate {
		m = m.Mul(matrix.Matrix{0, 1, -1, 0, 0, 0})
	}
	return m.Translate(p.XOffset, p.YOffset)
}

// Fit reads an EPS image from r and writes the image, placed as described
// by opt, to w.
//
// The header comments of the input are copied, except for the
// %%BoundingBox: comment which is replaced by the bounding box of the
// placed image.
func Fit(w io.Writer, r io.Reader, opt *Options) error {
	in := bufio.NewReader(r)
	out := &lineWriter{w: bufio.NewWriter(w)}

	var bbox rect.Rect
	found := false
	var body string
	for {
		line, err := in.ReadString('\n')
		if line == "" && err != nil {
			if err != io.EOF {
				return err
			}
			break
		}
		if !strings.HasPrefix(line, "%%") && !strings.HasPrefix(line, "%!") {
			body = line
			break
		}
		if strings.HasPrefix(line, "%%BoundingBox:") {
			if b, ok := parseBoundingBox(line); ok {
				bbox = b
				found = true
			}
		} else if strings.HasPrefix(line, "%%EndComments") {
			break
		} else {
			out.print(line)
		}
	}
	if !found {
		return ErrNoBoundingBox
	}

	p, err := Place(bbox, opt)
	if err != nil {
		return err
	}

	bb := p.BoundingBox
	fmt.Fprintf(out, "%%%%BoundingBox: %d %d %d %d\n", bb[0], bb[1], bb[2], bb[3])
	out.print("%%EndComments\n")
	if opt.ShowPage {
		out.print("save /showpage{}def /copypage{}def /erasepage{}def\n")
	} else {
		out.print("%%BeginProcSet: epsffit 1 0\n")
	}
	fmt.Fprintf(out, "gsave %.3f %.3f translate\n", p.XOffset, p.YOffset)
	if p.Rotate {
		out.print("90 rotate\n")
	}
	fmt.Fprintf(out, "%.3f %.3f scale\n", p.XScale, p.YScale)
	if !opt.ShowPage {
		out.print("%%EndProcSet\n")
	}

	out.print(body)
	_, err = io.Copy(out, in)
	if err != nil {
		return err
	}
	out.endLine()
	out.print("grestore\n")
	if opt.ShowPage {
		out.print("restore showpage\n")
	}
	if out.err != nil {
		return out.err
	}
	return out.w.Flush()
}

// parseBoundingBox parses a %%BoundingBox: comment.  The lower left
// corner is truncated and the upper right corner is rounded to integers.
func parseBoundingBox(line string) (rect.Rect, bool) {
	fields := strings.Fields(strings.TrimPrefix(line, "%%BoundingBox:"))
	if len(fields) != 4 {
		return rect.Rect{}, false
	}
	var x [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return rect.Rect{}, false
		}
		x[i] = v
	}
	return rect.Rect{
		LLx: math.Trunc(x[0]),
		LLy: math.Trunc(x[1]),
		URx: math.Trunc(x[2] + 0.5),
		URy: math.Trunc(x[3] + 0.5),
	}, true
}

// lineWriter remembers the first write error and the last byte written.
type lineWriter struct {
	w    *bufio.Writer
	last byte
	err  error
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	if lw.err != nil {
		return 0, lw.err
	}
	n, err := lw.w.Write(p)
	if n > 0 {
		lw.last = p[n-1]
	}
	lw.err = err
	return n, err
}

func (lw *lineWriter) print(s string) {
	lw.Write([]byte(s))
}

// endLine terminates an incomplete last line.
func (lw *lineWriter) endLine() {
	if lw.last != 0 && lw.last != '\n' {
		lw.print("\n")
	}
}
