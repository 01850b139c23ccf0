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

package pagerange

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// Page is either a page of the input document, or an inserted blank page.
// The zero value is a blank page.
type Page struct {
	index int // 0 for blank pages, page index + 1 otherwise
}

// Blank is an inserted blank page.
var Blank = Page{}

// Real returns the page with the given 0-based index.
func Real(index int) Page {
	return Page{index: index + 1}
}

// Index returns the 0-based page index.
// The second return value is false for blank pages.
func (p Page) Index() (int, bool) {
	return p.index - 1, p.index > 0
}

// IsBlank reports whether p is an inserted blank page.
func (p Page) IsBlank() bool {
	return p.index == 0
}

// String returns the 1-based page number, or "*" for a blank page.
func (p Page) String() string {
	if p.index == 0 {
		return "*"
	}
	return strconv.Itoa(p.index)
}

// Filter restricts and reorders the pages selected by [Select].
type Filter struct {
	Odd     bool // keep only odd-numbered pages
	Even    bool // keep only even-numbered pages
	Reverse bool // reverse the order of the result
}

// keep reports whether the 1-based page number n passes the filter.
// If both Odd and Even are set, all pages are kept.
func (f Filter) keep(n int) bool {
	if f.Odd && !f.Even && n%2 == 0 {
		return false
	}
	if f.Even && !f.Odd && n%2 == 1 {
		return false
	}
	return true
}

// Select returns the pages of a document with numPages pages which are
// described by ranges.  If ranges is empty, all pages are selected.
//
// The odd/even filter applies to the page numbers in the input document,
// inserted blank pages are always kept.  Reversal is applied after
// filtering.  If a range refers to a page beyond the end of the document,
// an [*OutOfRangeError] is returned.
func Select(ranges []Range, numPages int, f Filter) ([]Page, error) {
	if len(ranges) == 0 {
		ranges = []Range{All}
	}

	var res []Page
	for _, r := range ranges {
		if r.Blank {
			res = append(res, Blank)
			continue
		}

		start := resolve(r.Start, numPages)
		end := resolve(r.End, numPages)
		inc := 1
		if end < start {
			inc = -1
		}
		for cur := start; end-cur != -inc; cur += inc {
			if cur > numPages {
				return nil, &OutOfRangeError{Range: r.Text}
			}
			if cur == 0 {
				res = append(res, Blank)
			} else if f.keep(cur) {
				res = append(res, Real(cur-1))
			}
		}
	}

	if f.Reverse {
		slices.Reverse(res)
	}
	return res, nil
}

// resolve converts a page number which counts from the end of the
// document into a normal page number.
func resolve(n, numPages int) int {
	if n < 0 {
		n += numPages + 1
		if n < 1 {
			n = 1
		}
	}
	return n
}

// OutOfRangeError indicates that a page range refers to pages which are not
// in the document.
type OutOfRangeError struct {
	Range string
}

func (err *OutOfRangeError) Error() string {
	return "page range " + err.Range + " is invalid"
}
