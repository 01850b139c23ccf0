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

// Package pagespec implements the page specification language used to
// describe the arrangement of input pages on output pages.
//
// A specification has the form
//
//	[MODULO:]LAYER[+LAYER...][,LAYER[+LAYER...]...]
//	LAYER = [-]PAGENO[L|R|U|H|V...][@SCALE][(XOFF,YOFF)]
//
// The input is processed in blocks of MODULO pages.  Each comma-separated
// template produces one output page for every block, and each "+" separated
// layer of a template places one page of the block onto this output page.
package pagespec

import (
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Spec is a compiled page specification.
type Spec struct {
	// Modulo is the number of input pages in each block.
	Modulo int

	// Templates describes the output pages generated for each block.
	Templates []Template

	// Flipping is set by [Parse] if any layer mirrors its page.  Mirroring
	// needs the size of the input pages.
	Flipping bool
}

// Template describes one output page.  Each layer places one input page.
type Template []Layer

// Layer describes how one input page is placed onto an output page.
type Layer struct {
	// Reversed indicates that Page counts backwards from the end of the
	// document rather than forward from the start.
	Reversed bool

	// Page is the position of the page within the current block, in the
	// range 0, ..., Modulo-1.
	Page int

	// Rotate is the rotation in degrees, counter-clockwise.
	// The value is one of 0, 90, 180 and 270.
	Rotate int

	HFlip bool // mirror left to right
	VFlip bool // mirror top to bottom

	Scale float64

	// XOff and YOff give the position of the page on the output page,
	// in PostScript points.
	XOff, YOff float64
}

// HasTransform reports whether the layer changes the coordinate system of
// the page.
func (l Layer) HasTransform() bool {
	return l.Rotate != 0 || l.HFlip || l.VFlip || l.Scale != 1 ||
		l.XOff != 0 || l.YOff != 0
}

// Angle returns the rotation of the layer combined with an additional
// global rotation, normalised to the range [0, 360).
func (l Layer) Angle(global int) int {
	return normalizeAngle(l.Rotate + global)
}

// Matrix returns the transformation which maps the coordinate system of
// an input page of size in onto the output page.  The global scale factor
// and rotation are applied on top of the layer's own transformation.
// A scale of 0 is treated as 1.
//
// The result is the composition, in this order, of scaling, vertical
// flip, horizontal flip, rotation and translation.
func (l Layer) Matrix(in rect.Rect, scale float64, rotate int) matrix.Matrix {
	if scale == 0 {
		scale = 1
	}
	s := l.Scale * scale

	m := matrix.Identity
	if l.XOff != 0 || l.YOff != 0 {
		m = matrix.Translate(l.XOff, l.YOff)
	}
	if angle := l.Angle(rotate); angle != 0 {
		m = matrix.RotateDeg(float64(angle)).Mul(m)
	}
	if l.HFlip {
		m = matrix.Matrix{-1, 0, 0, 1, in.Dx() * s, 0}.Mul(m)
	}
	if l.VFlip {
		m = matrix.Matrix{1, 0, 0, -1, 0, in.Dy() * s}.Mul(m)
	}
	if s != 1 {
		m = matrix.Scale(s, s).Mul(m)
	}
	return m
}

// Mirrors reports whether any layer of s mirrors its page.  Unlike the
// Flipping field, the result is computed from the layers.
func (s *Spec) Mirrors() bool {
	for _, t := range s.Templates {
		for _, l := range t {
			if l.HFlip || l.VFlip {
				return true
			}
		}
	}
	return false
}

// NeedsProcSet reports whether any output page combines several input
// pages or places a page with a non-trivial transformation.
func (s *Spec) NeedsProcSet() bool {
	for _, t := range s.Templates {
		if len(t) > 1 {
			return true
		}
		for _, l := range t {
			if l.HasTransform() {
				return true
			}
		}
	}
	return false
}

// String returns the specification in the form accepted by [Parse].
// The modulo is omitted when it equals 1.
func (s *Spec) String() string {
	b := &strings.Builder{}
	if s.Modulo != 1 {
		b.WriteString(strconv.Itoa(s.Modulo))
		b.WriteByte(':')
	}
	for i, t := range s.Templates {
		if i > 0 {
			b.WriteByte(',')
		}
		for j, l := range t {
			if j > 0 {
				b.WriteByte('+')
			}
			l.format(b)
		}
	}
	return b.String()
}

func (l Layer) format(b *strings.Builder) {
	if l.Reversed {
		b.WriteByte('-')
	}
	b.WriteString(strconv.Itoa(l.Page))
	switch normalizeAngle(l.Rotate) {
	case 90:
		b.WriteByte('L')
	case 180:
		b.WriteByte('U')
	case 270:
		b.WriteByte('R')
	}
	if l.HFlip {
		b.WriteByte('H')
	}
	if l.VFlip {
		b.WriteByte('V')
	}
	if l.Scale != 1 {
		b.WriteByte('@')
		b.WriteString(formatNumber(l.Scale))
	}
	if l.XOff != 0 || l.YOff != 0 {
		b.WriteByte('(')
		b.WriteString(formatNumber(l.XOff))
		b.WriteByte(',')
		b.WriteString(formatNumber(l.YOff))
		b.WriteByte(')')
	}
}

// formatNumber never uses exponential notation, since a "+" in an
// exponent would be read as a layer separator.
func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func normalizeAngle(a int) int {
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}
