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


package main

import (
	"bytes"
	"os"
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

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(doc))
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	return stdout.String()
}

func TestRun(t *testing.T) {
	t.Chdir(t.TempDir())

	out := run(t)
	if !strings.Contains(out, "%%IncludeResource: font Bar\n") {
		t.Errorf("resource comment missing:\n%s", out)
	}
	if strings.Contains(out, "/foo") {
		t.Errorf("resource not removed:\n%s", out)
	}

	data, err := os.ReadFile("Bar.pfa")
	if err != nil {
		t.Fatal(err)
	}
	want := "%%BeginFont: Bar\n/bar\n%%EndFont\n"
	if d := cmp.Diff(want, string(data)); d != "" {
		t.Errorf("Bar.pfa (-want +got):\n%s", d)
	}
}

func TestMerge(t *testing.T) {
	t.Chdir(t.TempDir())

	run(t, "-m")
	data, err := os.ReadFile("Bar.pfa")
	if err != nil {
		t.Fatal(err)
	}
	want := "%%BeginFont: Bar\n/bar\n%%EndFont\n%%BeginFont: Bar\n/bar2\n%%EndFont\n"
	if d := cmp.Diff(want, string(data)); d != "" {
		t.Errorf("Bar.pfa (-want +got):\n%s", d)
	}
}
