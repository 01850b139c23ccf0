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


package resource

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const doc = `%!PS-Adobe-3.0
%%EndComments
%%BeginProlog
%%BeginResource: procset Foo 1 0
/foo {} def
%%EndResource
%%EndProlog
%%Page: 1 1
%%BeginFont: Bar
/bar
%%EndFont
%%BeginFont: Bar
/bar2
%%EndFont
showpage
%%EOF
`

func extract(t *testing.T, dir string, merge bool) string {
	t.Helper()
	out := &bytes.Buffer{}
	_, err := Extract(out, strings.NewReader(doc), &ExtractOptions{Dir: dir, Merge: merge})
	if err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	got := extract(t, dir, false)
	want := `%!PS-Adobe-3.0
%%EndComments
%%BeginProlog
%%IncludeResource: procset Foo 1 0
%%IncludeResource: font Bar
%%EndProlog
%%Page: 1 1
showpage
%%EOF
`
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("document mismatch (-want +got):\n%s", d)
	}

	files := map[string]string{
		"Foo10.ps": "%%BeginResource: procset Foo 1 0\n/foo {} def\n%%EndResource\n",
		"Bar.pfa":  "%%BeginFont: Bar\n/bar\n%%EndFont\n",
	}
	for name, want := range files {
		if got := readFile(t, filepath.Join(dir, name)); got != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}
}

func TestExtractMerge(t *testing.T) {
	dir := t.TempDir()
	extract(t, dir, true)
	want := "%%BeginFont: Bar\n/bar\n%%EndFont\n%%BeginFont: Bar\n/bar2\n%%EndFont\n"
	if got := readFile(t, filepath.Join(dir, "Bar.pfa")); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractExisting(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "Foo10.ps")
	if err := os.WriteFile(old, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got := extract(t, dir, false)
	if !strings.Contains(got, "%%IncludeResource: procset Foo 1 0\n") || strings.Contains(got, "/foo") {
		t.Errorf("resource not replaced:\n%s", got)
	}
	if data := readFile(t, old); data != "old\n" {
		t.Errorf("existing resource file overwritten with %q", data)
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	extracted := extract(t, dir, false)

	out := &bytes.Buffer{}
	missing, err := Include(out, strings.NewReader(extracted), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) > 0 {
		t.Errorf("missing resources %q", missing)
	}
	want := `%!PS-Adobe-3.0
%%EndComments
%%BeginProlog
%%BeginResource: procset Foo 1 0
/foo {} def
%%EndResource
%%BeginFont: Bar
/bar
%%EndFont
%%EndProlog
%%Page: 1 1
showpage
%%EOF
`
	if d := cmp.Diff(want, out.String()); d != "" {
		t.Errorf("document mismatch (-want +got):\n%s", d)
	}
}

func TestIncludeMissing(t *testing.T) {
	in := "%!PS\n%%IncludeResource:   font  Baz\nshowpage\n"
	out := &bytes.Buffer{}
	missing, err := Include(out, strings.NewReader(in), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"Baz"}, missing); d != "" {
		t.Errorf("missing (-want +got):\n%s", d)
	}
	if got, want := out.String(), "%!PS\n%%IncludeResource: font Baz\nshowpage\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"Times-Roman", ".pfa"}, "Times-Roman.pfa"},
		{[]string{"PStoPS", "1", "15", ".ps"}, "PStoPS115.ps"},
		{[]string{"(My", "Font)", ""}, "MyFont"},
		{[]string{"../../etc/passwd"}, "passwd"},
	}
	for _, c := range cases {
		got, err := FileName(c.in...)
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
		} else if got != c.want {
			t.Errorf("%q: got %q, want %q", c.in, got, c.want)
		}
	}

	_, err := FileName("()", "dir/")
	var nameErr *NameError
	if !errors.As(err, &nameErr) {
		t.Errorf("got error %v, want *NameError", err)
	}
}
