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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want []Range
	}{
		{"1", []Range{{Start: 1, End: 1, Text: "1"}}},
		{"2-5", []Range{{Start: 2, End: 5, Text: "2-5"}}},
		{"5-2", []Range{{Start: 5, End: 2, Text: "5-2"}}},
		{"-3", []Range{{Start: 1, End: 3, Text: "-3"}}},
		{"3-", []Range{{Start: 3, End: -1, Text: "3-"}}},
		{"-", []Range{{Start: 1, End: -1, Text: "-"}}},
		{"_1", []Range{{Start: -1, End: -1, Text: "_1"}}},
		{"_1-_1", []Range{{Start: -1, End: -1, Text: "_1-_1"}}},
		{"_2-1", []Range{{Start: -2, End: 1, Text: "_2-1"}}},
		{"_", []Range{{Blank: true, Text: "_"}}},
		{"1,_,2-3", []Range{
			{Start: 1, End: 1, Text: "1"},
			{Blank: true, Text: "_"},
			{Start: 2, End: 3, Text: "2-3"},
		}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", c.in, err)
			continue
		}
		if d := cmp.Diff(c.want, got); d != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", c.in, d)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "a", "1,", ",1", "1-2-3", "__1", "_-", "1_", "1.5", " 1"} {
		_, err := Parse(in)
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("Parse(%q): got error %v, want *SyntaxError", in, err)
		}
	}
}

func pages(idx ...int) []Page {
	res := make([]Page, len(idx))
	for i, k := range idx {
		if k < 0 {
			res[i] = Blank
		} else {
			res[i] = Real(k)
		}
	}
	return res
}

func TestSelect(t *testing.T) {
	cases := []struct {
		ranges   string
		numPages int
		filter   Filter
		want     []Page
	}{
		{"", 3, Filter{}, pages(0, 1, 2)},
		{"_1", 5, Filter{}, pages(4)},
		{"_1-_1", 5, Filter{}, pages(4)},
		{"-1", 5, Filter{}, pages(0)},
		{"3-1", 5, Filter{}, pages(2, 1, 0)},
		{"2-", 4, Filter{}, pages(1, 2, 3)},
		{"_9-2", 4, Filter{}, pages(0, 1)},
		{"1,_,2", 2, Filter{}, pages(0, -1, 1)},
		{"0", 2, Filter{}, pages(-1)},
		{"", 3, Filter{Reverse: true}, pages(2, 1, 0)},
		{"", 5, Filter{Odd: true}, pages(0, 2, 4)},
		{"", 5, Filter{Even: true}, pages(1, 3)},
		{"", 5, Filter{Odd: true, Even: true}, pages(0, 1, 2, 3, 4)},
		{"", 5, Filter{Odd: true, Reverse: true}, pages(4, 2, 0)},
		{"1,_,2", 2, Filter{Even: true}, pages(-1, 1)},
		{"1-2,1-2", 2, Filter{}, pages(0, 1, 0, 1)},
	}
	for _, c := range cases {
		var ranges []Range
		if c.ranges != "" {
			var err error
			ranges, err = Parse(c.ranges)
			if err != nil {
				t.Fatal(err)
			}
		}
		got, err := Select(ranges, c.numPages, c.filter)
		if err != nil {
			t.Errorf("Select(%q, %d): %v", c.ranges, c.numPages, err)
			continue
		}
		if d := cmp.Diff(c.want, got, cmp.AllowUnexported(Page{})); d != "" {
			t.Errorf("Select(%q, %d, %v) mismatch (-want +got):\n%s",
				c.ranges, c.numPages, c.filter, d)
		}
	}
}

func TestSelectLastPage(t *testing.T) {
	got, err := Select([]Range{{Start: -1, End: -1, Text: "_1"}}, 5, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d pages, want 1", len(got))
	}
	if idx, ok := got[0].Index(); !ok || idx != 4 {
		t.Errorf("got page index %d, %t, want 4, true", idx, ok)
	}
	if got[0].String() != "5" {
		t.Errorf("got page %s, want 5", got[0])
	}
}

// "-1" is a range with an empty start, so it selects the first page.
// The last page is written "_1".
func TestLeadingDash(t *testing.T) {
	ranges, err := Parse("-1")
	if err != nil {
		t.Fatal(err)
	}
	want := []Range{{Start: 1, End: 1, Text: "-1"}}
	if d := cmp.Diff(want, ranges); d != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", d)
	}
	pages, err := Select(ranges, 5, Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || pages[0].String() != "1" {
		t.Errorf("got pages %v, want [1]", pages)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	ranges, err := Parse("2-7")
	if err != nil {
		t.Fatal(err)
	}
	_, err = Select(ranges, 5, Filter{})
	var rangeErr *OutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("got error %v, want *OutOfRangeError", err)
	}
	if rangeErr.Range != "2-7" {
		t.Errorf("wrong range %q", rangeErr.Range)
	}
}

func TestPage(t *testing.T) {
	if !Blank.IsBlank() || Blank.String() != "*" {
		t.Error("Blank is not blank")
	}
	if _, ok := Blank.Index(); ok {
		t.Error("Blank has an index")
	}
	p := Real(0)
	if p.IsBlank() {
		t.Error("Real(0) is blank")
	}
	if idx, ok := p.Index(); !ok || idx != 0 {
		t.Errorf("Real(0).Index() = %d, %t", idx, ok)
	}
	if p.String() != "1" {
		t.Errorf("Real(0).String() = %q", p.String())
	}
}
