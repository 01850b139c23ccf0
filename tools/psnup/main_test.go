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
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/psutils/paper"
	"seehuhn.de/go/psutils/pstops"
)

func makeDoc(n int) string {
	b := &strings.Builder{}
	b.WriteString("%!PS-Adobe-3.0\n")
	b.WriteString("%%DocumentMedia: a4 595 842 0 () ()\n")
	fmt.Fprintf(b, "%%%%Pages: %d\n", n)
	b.WriteString("%%EndComments\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(b, "%%%%Page: (%d) %d\n(page %d) show showpage\n", i, i, i)
	}
	b.WriteString("%%Trailer\n%%EOF\n")
	return b.String()
}

func readOptionsForTest(t *testing.T, args ...string) (*pstops.Options, error) {
	t.Helper()
	cmd := newRootCmd()
	if err := cmd.ParseFlags(expandArgs(args)); err != nil {
		return nil, err
	}
	job, err := readOptions(cmd, cmd.Flags().Args())
	if err != nil {
		return nil, err
	}
	return job.Setup(nil)
}

func TestExpandArgs(t *testing.T) {
	cases := []struct {
		in, out []string
	}{
		{[]string{"-4"}, []string{"--nup=4"}},
		{[]string{"-q", "-2", "in.ps"}, []string{"-q", "--nup=2", "in.ps"}},
		{[]string{"-m", "1cm", "-16"}, []string{"-m", "1cm", "--nup=16"}},
		{[]string{"-2", "--", "-3"}, []string{"--nup=2", "--", "-3"}},
		{[]string{"-d2", "-N", "4"}, []string{"--draw=2", "-N", "4"}},
		{[]string{"-4", "-d", "2pt", "in.ps"}, []string{"--nup=4", "--draw=2pt", "in.ps"}},
		{[]string{"-d", "-2", "in.ps"}, []string{"--draw", "--nup=2", "in.ps"}},
	}
	for _, c := range cases {
		got := expandArgs(c.in)
		if d := cmp.Diff(c.out, got); d != "" {
			t.Errorf("%q: (-want +got):\n%s", c.in, d)
		}
	}
}

func TestReadOptions(t *testing.T) {
	opt, err := readOptionsForTest(t, "-2", "-p", "a4")
	if err != nil {
		t.Fatal(err)
	}
	if opt.Spec.Modulo != 2 || len(opt.Spec.Templates) != 1 {
		t.Fatalf("unexpected spec %s", opt.Spec)
	}
	want := 595.0 / 842.0
	for _, l := range opt.Spec.Templates[0] {
		if l.Rotate != 90 {
			t.Errorf("layer %d is not rotated", l.Page)
		}
		if math.Abs(l.Scale-want) > 1e-9 {
			t.Errorf("layer %d: scale %g, want %g", l.Page, l.Scale, want)
		}
	}
	if *opt.PaperSize != paper.A4 || opt.InPaperSize != nil {
		t.Errorf("PaperSize, InPaperSize = %v, %v", opt.PaperSize, opt.InPaperSize)
	}
}

func TestToggles(t *testing.T) {
	// With two pages per sheet the pages form a single column, so only
	// a layout with several rows and columns shows the effect of -l.
	base, err := readOptionsForTest(t, "--nup", "4", "-p", "a4")
	if err != nil {
		t.Fatal(err)
	}
	twice, err := readOptionsForTest(t, "--nup", "4", "-p", "a4", "-l", "-l")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(base.Spec, twice.Spec); d != "" {
		t.Errorf("-l given twice changed the layout (-want +got):\n%s", d)
	}

	once, err := readOptionsForTest(t, "-N", "4", "-p", "a4", "-l")
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(base.Spec, once.Spec) {
		t.Errorf("-l did not change the layout %s", base.Spec)
	}

	// For 2-up, -l and no option give the same layout.
	plain, err := readOptionsForTest(t, "-2", "-p", "a4")
	if err != nil {
		t.Fatal(err)
	}
	left, err := readOptionsForTest(t, "-2", "-p", "a4", "-l")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(plain.Spec, left.Spec); d != "" {
		t.Errorf("2-up layout changed by -l (-want +got):\n%s", d)
	}
}

func TestDrawWidth(t *testing.T) {
	opt, err := readOptionsForTest(t, "-2", "-pa4", "-d", "3pt", "in.ps")
	if err != nil {
		t.Fatal(err)
	}
	if opt.Draw != 3 {
		t.Errorf("Draw = %g, want 3", opt.Draw)
	}
}

func TestFlip(t *testing.T) {
	opt, err := readOptionsForTest(t, "-2", "-f", "-pa4")
	if err != nil {
		t.Fatal(err)
	}
	if opt.PaperSize.Dx() != 842 || opt.PaperSize.Dy() != 595 {
		t.Errorf("PaperSize = %v, want landscape A4", *opt.PaperSize)
	}
	if opt.InPaperSize == nil || *opt.InPaperSize != paper.A4 {
		t.Errorf("InPaperSize = %v, want A4", opt.InPaperSize)
	}
}

func TestReadOptionsErrors(t *testing.T) {
	cases := []struct {
		args []string
		want error
	}{
		{[]string{"-p", "a4"}, errNupMissing},
		{[]string{"-0", "-p", "a4"}, errNupZero},
	}
	for _, c := range cases {
		_, err := readOptionsForTest(t, c.args...)
		if err != c.want {
			t.Errorf("%q: got %v, want %v", c.args, err, c.want)
		}
	}

	for _, args := range [][]string{
		{"-7", "-p", "a4"},
		{"-2", "-p", "a4", "-m", "300"},
		{"-2", "-w", "10cm"},
	} {
		if _, err := readOptionsForTest(t, args...); err == nil {
			t.Errorf("%q: expected an error", args)
		}
	}
}

func TestRun(t *testing.T) {
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(makeDoc(3)))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(expandArgs([]string{"-2", "-pa4", "-d"}))
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if want := "[1,2] [3,*] \nWrote 2 pages\n"; stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
	out := stdout.String()
	for _, s := range []string{
		"%%DocumentMedia: plain 595 842 0 () ()\n",
		"%%BoundingBox: 0 0 595 842\n",
		"%%Pages: 2 0\n",
		"setlinewidth stroke",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q", s)
		}
	}
	if strings.Contains(out, "%%DocumentMedia: a4") {
		t.Error("original size comment was not removed")
	}
}
