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

// Package pagerange parses lists of page ranges and selects the
// corresponding pages of a document.
//
// A page range list is a comma-separated list of ranges START-END.  Page
// numbers start at 1, and a number prefixed with "_" counts from the end of
// the document, so that "_1" is the last page.  If START is omitted it
// defaults to the first page, if END is omitted after the "-" it defaults
// to the last page.  A single number selects one page, and a lone "_"
// inserts a blank page.
package pagerange

import (
	"strconv"
	"strings"
)

// Range is one element of a page range list.
type Range struct {
	// Start and End are 1-based page numbers.  Negative values count from
	// the end of the document.  If Start is greater than End, the pages
	// are visited in reverse order.
	Start, End int

	// Blank indicates an inserted blank page.  Start and End are unused in
	// this case.
	Blank bool

	// Text is the range as given by the user.
	Text string
}

func (r Range) String() string {
	return r.Text
}

// All is the range which selects every page of a document.
var All = Range{Start: 1, End: -1, Text: "1-_1"}

// Parse parses a comma-separated list of page ranges.
func Parse(text string) ([]Range, error) {
	var res []Range
	for _, rText := range strings.Split(text, ",") {
		r, err := parseRange(rText)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

func parseRange(text string) (Range, error) {
	if text == "_" {
		return Range{Blank: true, Text: text}, nil
	}
	if text == "" {
		return Range{}, &SyntaxError{Text: text}
	}

	startText, endText, hasDash := strings.Cut(text, "-")
	start, ok := parsePageNumber(startText, 1)
	if !ok {
		return Range{}, &SyntaxError{Text: text}
	}
	end := start
	if hasDash {
		end, ok = parsePageNumber(endText, -1)
		if !ok {
			return Range{}, &SyntaxError{Text: text}
		}
	}
	return Range{Start: start, End: end, Text: text}, nil
}

// parsePageNumber parses a page number of the form [_]DIGITS.
// The empty string gives def.
func parsePageNumber(s string, def int) (int, bool) {
	if s == "" {
		return def, true
	}
	sign := 1
	if s[0] == '_' {
		sign = -1
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return sign * n, true
}

// SyntaxError is returned by [Parse] for malformed page ranges.
type SyntaxError struct {
	Text string
}

func (err *SyntaxError) Error() string {
	return "`" + err.Text + "' is not a page range"
}
