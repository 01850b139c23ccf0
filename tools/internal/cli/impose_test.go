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
	"testing"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/psutils/nup"
	"seehuhn.de/go/psutils/paper"
)

func TestImposeOptions(t *testing.T) {
	a4 := paper.A4
	a5 := paper.A5

	opt, err := ImposeOptions(&nup.Params{N: 2}, &a4, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if *opt.PaperSize != a4 {
		t.Errorf("PaperSize = %v, want %v", *opt.PaperSize, a4)
	}
	if opt.InPaperSize != nil {
		t.Errorf("InPaperSize = %v, want nil", *opt.InPaperSize)
	}
	if opt.Spec.Modulo != 2 || len(opt.Spec.Templates[0]) != 2 {
		t.Errorf("unexpected spec %s", opt.Spec)
	}

	// the input size is used for the output if no output size is given
	opt, err = ImposeOptions(&nup.Params{N: 1}, nil, &a5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if *opt.PaperSize != a5 || opt.InPaperSize != nil || opt.Draw != 2 {
		t.Errorf("unexpected options %+v", opt)
	}

	opt, err = ImposeOptions(&nup.Params{N: 1}, &a4, &a5, 0)
	if err != nil {
		t.Fatal(err)
	}
	if opt.InPaperSize == nil || *opt.InPaperSize != a5 {
		t.Errorf("InPaperSize = %v, want %v", opt.InPaperSize, a5)
	}

	// flipping changes the output size, so the input size must be passed on
	opt, err = ImposeOptions(&nup.Params{N: 2, Flip: true}, &a4, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := rect.Rect{URx: a4.URy, URy: a4.URx}
	if *opt.PaperSize != want {
		t.Errorf("PaperSize = %v, want %v", *opt.PaperSize, want)
	}
	if opt.InPaperSize == nil || *opt.InPaperSize != a4 {
		t.Errorf("InPaperSize = %v, want %v", opt.InPaperSize, a4)
	}
}

func TestImposeOptionsDefaultPaper(t *testing.T) {
	t.Setenv("PAPERSIZE", "letter")
	opt, err := ImposeOptions(&nup.Params{N: 4}, nil, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if *opt.PaperSize != paper.Letter {
		t.Errorf("PaperSize = %v, want %v", *opt.PaperSize, paper.Letter)
	}
}
