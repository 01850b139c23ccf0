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

package book

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/psutils/pagerange"
)

func order(t *testing.T, numPages, signature int) string {
	t.Helper()
	ranges, err := Ranges(numPages, signature)
	if err != nil {
		t.Fatal(err)
	}
	texts := make([]string, len(ranges))
	for i, r := range ranges {
		texts[i] = r.Text
	}
	return strings.Join(texts, ",")
}

func TestRanges(t *testing.T) {
	cases := []struct {
		numPages, signature int
		want                string
	}{
		{4, 0, "4,1,2,3"},
		{8, 0, "8,1,2,7,6,3,4,5"},
		{6, 0, "_,1,2,_,6,3,4,5"},
		{3, 1, "1,2,3"},
		{8, 4, "4,1,2,3,8,5,6,7"},
		{5, 4, "4,1,2,3,_,5,_,_"},
		{0, 0, ""},
	}
	for _, c := range cases {
		got := order(t, c.numPages, c.signature)
		if got != c.want {
			t.Errorf("Ranges(%d, %d) = %q, want %q", c.numPages, c.signature, got, c.want)
		}
	}
}

func TestRangesSelect(t *testing.T) {
	ranges, err := Ranges(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	pages, err := pagerange.Select(ranges, 3, pagerange.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	want := []pagerange.Page{pagerange.Blank, pagerange.Real(0), pagerange.Real(1), pagerange.Real(2)}
	if d := cmp.Diff(want, pages, cmp.Comparer(func(a, b pagerange.Page) bool { return a == b })); d != "" {
		t.Errorf("Select() mismatch (-want +got):\n%s", d)
	}
}

func TestBadSignature(t *testing.T) {
	for _, sig := range []int{-4, 2, 3, 6, 10} {
		_, err := Ranges(8, sig)
		if !errors.Is(err, ErrSignature) {
			t.Errorf("Ranges(8, %d): got error %v", sig, err)
		}
	}
}
