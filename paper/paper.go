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

// Package paper resolves paper sizes and physical dimensions.
//
// All lengths are measured in PostScript points (1/72 inch).
package paper

import (
	"math"
	"strings"

	"golang.org/x/exp/slices"
	"seehuhn.de/go/geom/rect"
)

// Common paper sizes.
var (
	A4     = rect.Rect{URx: 595, URy: 842}
	A5     = rect.Rect{URx: 420, URy: 595}
	Letter = rect.Rect{URx: 612, URy: 792}
)

const (
	mm   = 72 / 25.4
	inch = 72
)

// sizes lists the known paper sizes as width and height in points.
var sizes = map[string][2]float64{
	"a0":  {841 * mm, 1189 * mm},
	"a1":  {594 * mm, 841 * mm},
	"a2":  {420 * mm, 594 * mm},
	"a3":  {297 * mm, 420 * mm},
	"a4":  {210 * mm, 297 * mm},
	"a5":  {148 * mm, 210 * mm},
	"a6":  {105 * mm, 148 * mm},
	"a7":  {74 * mm, 105 * mm},
	"a8":  {52 * mm, 74 * mm},
	"a9":  {37 * mm, 52 * mm},
	"a10": {26 * mm, 37 * mm},

	"b0":  {1000 * mm, 1414 * mm},
	"b1":  {707 * mm, 1000 * mm},
	"b2":  {500 * mm, 707 * mm},
	"b3":  {353 * mm, 500 * mm},
	"b4":  {250 * mm, 353 * mm},
	"b5":  {176 * mm, 250 * mm},
	"b6":  {125 * mm, 176 * mm},
	"b7":  {88 * mm, 125 * mm},
	"b8":  {62 * mm, 88 * mm},
	"b9":  {44 * mm, 62 * mm},
	"b10": {31 * mm, 44 * mm},

	"c0":  {917 * mm, 1297 * mm},
	"c1":  {648 * mm, 917 * mm},
	"c2":  {458 * mm, 648 * mm},
	"c3":  {324 * mm, 458 * mm},
	"c4":  {229 * mm, 324 * mm},
	"c5":  {162 * mm, 229 * mm},
	"c6":  {114 * mm, 162 * mm},
	"c7":  {81 * mm, 114 * mm},
	"c8":  {57 * mm, 81 * mm},
	"c9":  {40 * mm, 57 * mm},
	"c10": {28 * mm, 40 * mm},

	"dl":        {110 * mm, 220 * mm},
	"comm10":    {4.125 * inch, 9.5 * inch},
	"letter":    {8.5 * inch, 11 * inch},
	"legal":     {8.5 * inch, 14 * inch},
	"executive": {7.25 * inch, 10.5 * inch},
	"statement": {5.5 * inch, 8.5 * inch},
	"tabloid":   {11 * inch, 17 * inch},
	"ledger":    {17 * inch, 11 * inch},
	"folio":     {8.5 * inch, 13 * inch},
	"quarto":    {215 * mm, 275 * mm},
	"10x14":     {10 * inch, 14 * inch},
	"11x17":     {11 * inch, 17 * inch},
}

// Lookup returns the size of the named paper.  Names are case-insensitive.
// The dimensions are rounded to whole points.
func Lookup(name string) (rect.Rect, bool) {
	wh, ok := sizes[strings.ToLower(name)]
	if !ok {
		return rect.Rect{}, false
	}
	return rect.Rect{URx: math.Round(wh[0]), URy: math.Round(wh[1])}, true
}

// Names returns the names of all known paper sizes, in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Parse interprets text either as a paper name or as a pair of
// dimensions of the form WIDTHxHEIGHT, for example "210mmx297mm".
func Parse(text string) (rect.Rect, error) {
	if r, ok := Lookup(text); ok {
		return r, nil
	}

	wText, hText, ok := strings.Cut(text, "x")
	if !ok || wText == "" || hText == "" {
		return rect.Rect{}, &UnknownPaperError{Name: text}
	}
	w, err := ParseDimen(wText, nil)
	if err != nil {
		return rect.Rect{}, &UnknownPaperError{Name: text}
	}
	h, err := ParseDimen(hText, nil)
	if err != nil {
		return rect.Rect{}, &UnknownPaperError{Name: text}
	}
	return rect.Rect{URx: w, URy: h}, nil
}

// UnknownPaperError is returned by [Parse] if a paper size is neither a
// known name nor a valid pair of dimensions.
type UnknownPaperError struct {
	Name string
}

func (err *UnknownPaperError) Error() string {
	return "paper size '" + err.Name + "' unknown"
}
