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
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/psutils/paper"
	"seehuhn.de/go/psutils/pstops"
)

const a5Doc = "%!PS-Adobe-3.0\n" +
	"%%BoundingBox: 0 0 420 595\n" +
	"%%Pages: 1\n" +
	"%%EndComments\n" +
	"%%Page: (1) 1\n" +
	"(hello) show showpage\n" +
	"%%EOF\n"

func readOptionsForTest(t *testing.T, args ...string) (*pstops.Options, error) {
	t.Helper()
	cmd := newRootCmd()
	if err := cmd.ParseFlags(args); err != nil {
		return nil, err
	}
	job, err := readOptions(cmd, cmd.Flags().Args())
	if err != nil {
		return nil, err
	}
	return job.Setup(nil)
}

func TestReadOptions(t *testing.T) {
	opt, err := readOptionsForTest(t, "-p", "a4", "-P", "a5")
	if err != nil {
		t.Fatal(err)
	}
	if *opt.PaperSize != paper.A4 || *opt.InPaperSize != paper.A5 {
		t.Errorf("PaperSize, InPaperSize = %v, %v", *opt.PaperSize, *opt.InPaperSize)
	}
	tmpl := opt.Spec.Templates
	if opt.Spec.Modulo != 1 || len(tmpl) != 1 || len(tmpl[0]) != 1 {
		t.Fatalf("unexpected spec %s", opt.Spec)
	}
	l := tmpl[0][0]
	if l.Rotate != 0 {
		t.Errorf("page is rotated by %d degrees", l.Rotate)
	}
	want := min(595.0/420.0, 842.0/595.0)
	if math.Abs(l.Scale-want) > 1e-9 {
		t.Errorf("scale = %g, want %g", l.Scale, want)
	}
	// the scaled page is centred on the output page
	w, h := 420*l.Scale, 595*l.Scale
	if math.Abs(2*l.XOff+w-595) > 1e-6 || math.Abs(2*l.YOff+h-842) > 1e-6 {
		t.Errorf("page is not centred: offset (%g, %g)", l.XOff, l.YOff)
	}
}

func TestBadPaper(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"-p", "a99"}); err == nil {
		t.Error("unknown paper size accepted")
	}
}

func TestRun(t *testing.T) {
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(a5Doc))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"-q", "-pa4", "-Pa5"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q", stderr.String())
	}
	out := stdout.String()
	if strings.Contains(out, "%%BoundingBox: 0 0 420 595") {
		t.Error("old bounding box was not removed")
	}
	for _, s := range []string{"%%BoundingBox: 0 0 595 842\n", "(hello) show", "%%EOF\n"} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q", s)
		}
	}
}
