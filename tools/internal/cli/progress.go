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

package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// progress reports the labels of the output pages as they are written.
type progress struct {
	w     io.Writer
	width int
	col   int
}

func newProgress(w io.Writer) *progress {
	width := defaultWidth
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}
	}
	return &progress{w: w, width: width}
}

func (p *progress) Page(label string) {
	s := "[" + label + "] "
	if p.col > 0 && p.col+len(s) > p.width {
		fmt.Fprintln(p.w)
		p.col = 0
	}
	io.WriteString(p.w, s)
	p.col += len(s)
}

func (p *progress) Done(pages int) {
	if p.col > 0 {
		fmt.Fprintln(p.w)
		p.col = 0
	}
	fmt.Fprintf(p.w, "Wrote %d pages\n", pages)
}
