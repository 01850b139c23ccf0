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

package pstops

import (
	"bytes"
	"strings"
	"testing"

	"seehuhn.de/go/psutils/dsc"
)

func TestCopyUpTo(t *testing.T) {
	const data = "0123SKIP4567skip89"
	cases := []struct {
		skip   []dsc.Skip
		from   int64
		to     int64
		want   string
		remain int
	}{
		{nil, 0, 18, data, 0},
		{[]dsc.Skip{{Start: 4, End: 8}}, 0, 18, "01234567skip89", 0},
		{[]dsc.Skip{{Start: 4, End: 8}, {Start: 12, End: 16}}, 0, 18, "0123456789", 0},
		{[]dsc.Skip{{Start: 4, End: 8}, {Start: 12, End: 16}}, 0, 12, "01234567", 1},
		{[]dsc.Skip{{Start: 4, End: 8}, {Start: 12, End: 16}}, 6, 18, "IP456789", 0},
		{[]dsc.Skip{{Start: 12, End: 16}}, 0, 4, "0123", 1},
	}
	for i, c := range cases {
		out := &bytes.Buffer{}
		cp := newCopier(out, strings.NewReader(data))
		cp.skip = c.skip
		err := cp.seek(c.from)
		if err != nil {
			t.Fatal(err)
		}
		err = cp.copyUpTo(c.to)
		if err == nil {
			err = cp.flush()
		}
		if err != nil {
			t.Fatal(err)
		}
		if got := out.String(); got != c.want {
			t.Errorf("%d: got %q, want %q", i, got, c.want)
		}
		if cp.pos != c.to {
			t.Errorf("%d: position %d, want %d", i, cp.pos, c.to)
		}
		if len(cp.skip) != c.remain {
			t.Errorf("%d: %d skip ranges left, want %d", i, len(cp.skip), c.remain)
		}
	}
}

func TestReadLine(t *testing.T) {
	cp := newCopier(&bytes.Buffer{}, strings.NewReader("ab\ncd"))
	for _, want := range []string{"ab\n", "cd"} {
		line, err := cp.readLine()
		if err != nil {
			t.Fatal(err)
		}
		if string(line) != want {
			t.Errorf("got %q, want %q", line, want)
		}
	}
	if cp.pos != 5 {
		t.Errorf("position %d, want 5", cp.pos)
	}
	_, err := cp.readLine()
	if err == nil {
		t.Error("missing EOF")
	}
}

func TestCopyTruncated(t *testing.T) {
	cp := newCopier(&bytes.Buffer{}, strings.NewReader("short"))
	if err := cp.copyTo(10); err == nil {
		t.Error("copying past the end of input succeeded")
	}
}
