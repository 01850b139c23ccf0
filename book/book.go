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

// Package book arranges pages into signatures for printing booklets.
//
// A signature is a stack of sheets which are printed on both sides with
// two pages per side, folded in the middle and bound together.  For a
// signature of n pages the first sheet carries the pages n, 1, 2 and n-1,
// in this order.
package book

import (
	"errors"
	"strconv"

	"seehuhn.de/go/psutils/pagerange"
)

// ErrSignature is returned if the signature size is invalid.
var ErrSignature = errors.New("signature must be a multiple of 4")

// Ranges returns the page order for printing a document with numPages
// pages as a booklet with signatures of the given size.
//
// A signature of 0 puts all pages into a single signature, a signature
// of 1 leaves the page order unchanged.  Otherwise the signature must be
// a positive multiple of 4.  Blank pages are added where the number of
// pages is not a multiple of the signature size.
func Ranges(numPages, signature int) ([]pagerange.Range, error) {
	if signature < 0 || signature > 1 && signature%4 != 0 {
		return nil, ErrSignature
	}

	var maxPage int
	if signature == 0 {
		maxPage = roundUp(numPages, 4)
		signature = maxPage
	} else {
		maxPage = roundUp(numPages, signature)
	}

	res := make([]pagerange.Range, maxPage)
	for i := range res {
		p := sheetPage(signature, i)
		if p > numPages {
			res[i] = pagerange.Range{Blank: true, Text: "_"}
		} else {
			res[i] = pagerange.Range{Start: p, End: p, Text: strconv.Itoa(p)}
		}
	}
	return res, nil
}

// sheetPage returns the 1-based input page which becomes output page i
// in a signature of the given size.
func sheetPage(signature, i int) int {
	p := i - i%signature
	half := (i % signature) / 2
	switch i % 4 {
	case 0, 3:
		p += signature - 1 - half
	default:
		p += half
	}
	return p + 1
}

func roundUp(n, k int) int {
	return n + (k-n%k)%k
}
