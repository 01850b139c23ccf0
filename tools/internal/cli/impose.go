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

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/psutils/nup"
	"seehuhn.de/go/psutils/paper"
	"seehuhn.de/go/psutils/pstops"
)

// ImposeOptions computes the rewriting options for putting p.N input
// pages onto each output page.
//
// The page sizes p.PaperSize and p.InSize are filled in from size and
// inSize.  Missing values default to each other, and finally to the
// default paper size of the system.
func ImposeOptions(p *nup.Params, size, inSize *rect.Rect, draw float64) (*pstops.Options, error) {
	if size == nil {
		size = inSize
	}
	if size == nil {
		def, ok := paper.Default()
		if !ok {
			return nil, fmt.Errorf("output %w", paper.ErrNoSize)
		}
		size = &def
	}
	if inSize == nil {
		inSize = size
	}
	p.PaperSize = *size
	p.InSize = *inSize

	spec, outSize, err := nup.Layout(p)
	if err != nil {
		return nil, err
	}

	opt := &pstops.Options{
		Spec:      spec,
		PaperSize: &outSize,
		Draw:      draw,
	}
	if outSize.Dx() != inSize.Dx() || outSize.Dy() != inSize.Dy() {
		opt.InPaperSize = inSize
	}
	return opt, nil
}
