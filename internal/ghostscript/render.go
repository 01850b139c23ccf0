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

// Package ghostscript renders PostScript documents in unit tests.
package ghostscript

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"seehuhn.de/go/geom/rect"
)

// Render uses the ghostscript command-line tool to render all pages of a
// PostScript document.  The pages are rendered at 72 dpi onto paper of the
// given size, so that one pixel corresponds to one PostScript point.
//
// The test is skipped if ghostscript is not installed.
func Render(t *testing.T, ps []byte, paper rect.Rect) []image.Image {
	t.Helper()

	if !isAvailable() {
		t.Skip("ghostscript not found")
	}

	dir := t.TempDir()
	psName := filepath.Join(dir, "doc.ps")
	err := os.WriteFile(psName, ps, 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command(
		"gs", "-q", "-dSAFER", "-dBATCH", "-dNOPAUSE",
		"-sDEVICE=png16m", "-r72",
		fmt.Sprintf("-dDEVICEWIDTHPOINTS=%d", int(paper.Dx())),
		fmt.Sprintf("-dDEVICEHEIGHTPOINTS=%d", int(paper.Dy())),
		"-dFIXEDMEDIA",
		"-o", filepath.Join(dir, "page%03d.png"),
		psName)
	cmd.Dir = dir
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("ghostscript failed: %v\n%s", err, stderr)
	}
	if len(out) > 0 {
		t.Logf("unexpected ghostscript output:\n%s", out)
	}

	var res []image.Image
	for i := 1; ; i++ {
		fd, err := os.Open(filepath.Join(dir, fmt.Sprintf("page%03d.png", i)))
		if os.IsNotExist(err) {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(fd)
		fd.Close()
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, img)
	}
	return res
}

// isAvailable returns true if the ghostscript command-line tool is available.
func isAvailable() bool {
	gsOnce.Do(func() {
		out, err := exec.Command("gs", "-h").Output()
		if err != nil {
			return
		}
		gsFound = gsPNGRe.Match(out)
	})
	return gsFound
}

var (
	gsOnce  sync.Once
	gsPNGRe = regexp.MustCompile(`\bpng16m\b`)
	gsFound bool
)
