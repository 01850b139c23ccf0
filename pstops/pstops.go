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

// Package pstops rearranges the pages of a PostScript document.
//
// The pages of the input are processed in blocks, as described by a
// [pagespec.Spec].  Every block produces one output page per template of
// the specification, and every output page can combine several scaled,
// rotated and mirrored input pages.  Everything outside the page bodies
// is copied unchanged, apart from the %%Pages: comment and, if a new
// paper size is set, the page size comments in the header.
package pstops

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript"

	"seehuhn.de/go/psutils/dsc"
	"seehuhn.de/go/psutils/pagerange"
	"seehuhn.de/go/psutils/pagespec"
)

// Options controls the rewriting of a document.
// A nil or zero Options value copies all pages unchanged.
type Options struct {
	// Spec describes the arrangement of pages.  If this is nil, the
	// specification "0" is used, which keeps every page in place.
	Spec *pagespec.Spec

	// Pages selects the input pages.  If this is empty, all pages are used.
	Pages []pagerange.Range

	// Filter restricts the selected pages to odd or even page numbers,
	// and optionally reverses their order.
	Filter pagerange.Filter

	// PaperSize, if set, is the size of the output pages.
	PaperSize *rect.Rect

	// InPaperSize, if set, is the size of the input pages.  If this is nil,
	// the size is taken from the %%DocumentMedia: comment of the input,
	// or else from PaperSize.
	InPaperSize *rect.Rect

	// Scale and Rotate are applied to every page, on top of the
	// transformations given in Spec.  A Scale of 0 is the same as 1.
	Scale  float64
	Rotate int

	// Draw, if positive, is the line width for a border drawn around every
	// input page.
	Draw float64

	// NoBind disables the PostScript bind operator in the output.
	NoBind bool

	// Progress, if not nil, is called for every output page with the
	// label of the page.  The label lists the numbers of the input pages
	// on this output page, with "*" for blank pages.
	Progress func(label string)

	// Logger receives debug messages.  If this is nil, nothing is logged.
	Logger *slog.Logger
}

// Result summarises a rewrite.
type Result struct {
	// Pages is the number of output pages.
	Pages int

	// ProcSet indicates whether the PStoPS procset was included.
	ProcSet bool
}

// ErrNoInputSize is returned if the page specification mirrors pages, but
// the input page size is not known.
var ErrNoInputSize = errors.New("input page size must be set when flipping the page")

// ErrBadSpec is returned by [Rewrite] if a page specification cannot be
// applied.
var ErrBadSpec = errors.New("invalid page specification")

var identity = &pagespec.Spec{
	Modulo:    1,
	Templates: []pagespec.Template{{{Scale: 1}}},
}

type rewriter struct {
	*copier

	doc  *dsc.Table
	spec *pagespec.Spec
	opt  *Options
	log  *slog.Logger

	pages  []pagerange.Page
	inSize *rect.Rect
	scale  float64

	globalTransform bool
	useProcSet      bool
}

// Rewrite reads the document r, with structure doc as found by
// [dsc.Scan], and writes the rearranged document to w.
//
// Errors in the options are detected before anything is written.
// Once writing has started, a failure leaves an incomplete document in w.
func Rewrite(w io.Writer, r io.ReadSeeker, doc *dsc.Table, opt *Options) (*Result, error) {
	if opt == nil {
		opt = &Options{}
	}
	rw := &rewriter{
		copier: newCopier(w, r),
		doc:    doc,
		spec:   opt.Spec,
		opt:    opt,
		log:    opt.Logger,
		scale:  opt.Scale,
	}
	if rw.spec == nil {
		rw.spec = identity
	}
	if rw.log == nil {
		rw.log = slog.New(slog.DiscardHandler)
	}
	if err := checkSpec(rw.spec); err != nil {
		return nil, err
	}
	if rw.scale == 0 {
		rw.scale = 1
	}

	rw.globalTransform = rw.scale != 1 || opt.Rotate%360 != 0
	rw.useProcSet = rw.globalTransform || rw.spec.NeedsProcSet()

	switch {
	case opt.InPaperSize != nil:
		rw.inSize = opt.InPaperSize
	case doc.InSize != nil:
		rw.inSize = doc.InSize
	case opt.PaperSize != nil:
		rw.inSize = opt.PaperSize
	}
	if rw.spec.Mirrors() && rw.inSize == nil {
		return nil, ErrNoInputSize
	}

	pages, err := pagerange.Select(opt.Pages, doc.NumPages(), opt.Filter)
	if err != nil {
		return nil, err
	}
	rw.pages = pages

	rw.log.Debug("rewriting document",
		"input pages", doc.NumPages(),
		"selected", len(pages),
		"spec", rw.spec.String(),
		"procset", rw.useProcSet,
		"upgrade", rw.useProcSet && doc.HasProcSet())

	modulo := rw.spec.Modulo
	maxPage := len(pages) + (modulo-len(pages)%modulo)%modulo

	err = rw.writeHeader(maxPage)
	if err != nil {
		return nil, err
	}

	outPage := 0
	for base := 0; base < maxPage; base += modulo {
		for _, tmpl := range rw.spec.Templates {
			outPage++
			err := rw.writePage(tmpl, outPage, maxPage, base)
			if err != nil {
				return nil, err
			}
		}
	}

	err = rw.seek(doc.Pages[len(doc.Pages)-1])
	if err != nil {
		return nil, &IOError{Phase: "seek", Err: err}
	}
	err = rw.copyAll()
	if err == nil {
		err = rw.flush()
	}
	if err != nil {
		return nil, &IOError{Phase: "trailer", Err: err}
	}

	return &Result{Pages: outPage, ProcSet: rw.useProcSet}, nil
}

// checkSpec verifies that every layer of s refers to a page within the
// block.
func checkSpec(s *pagespec.Spec) error {
	if s.Modulo < 1 {
		return fmt.Errorf("%w: modulo %d is less than 1", ErrBadSpec, s.Modulo)
	}
	if len(s.Templates) == 0 {
		return fmt.Errorf("%w: no output pages", ErrBadSpec)
	}
	for _, t := range s.Templates {
		for _, l := range t {
			if l.Page < 0 || l.Page >= s.Modulo {
				return fmt.Errorf("%w: page %d is outside a block of %d pages",
					ErrBadSpec, l.Page, s.Modulo)
			}
		}
	}
	return nil
}

// writeHeader copies the header, prologue and setup of the document,
// and inserts the procset if needed.
func (rw *rewriter) writeHeader(maxPage int) error {
	doc := rw.doc
	size := rw.opt.PaperSize
	if size != nil {
		rw.skip = doc.SizeComments
		rw.log.Debug("removing size comments", "count", len(doc.SizeComments))
	}

	err := rw.seek(0)
	if err != nil {
		return &IOError{Phase: "seek", Err: err}
	}

	if doc.PagesComment >= 0 {
		err = rw.copyUpTo(doc.PagesComment)
		if err == nil {
			_, err = rw.readLine()
		}
		if err == nil && size != nil {
			w, h := int(size.Dx()), int(size.Dy())
			err = rw.writeString(fmt.Sprintf("%%%%DocumentMedia: plain %d %d 0 () ()\n", w, h))
			if err == nil {
				err = rw.writeString(fmt.Sprintf("%%%%BoundingBox: 0 0 %d %d\n", w, h))
			}
		}
		if err == nil {
			numPages := maxPage / rw.spec.Modulo * len(rw.spec.Templates)
			err = rw.writeString(fmt.Sprintf("%%%%Pages: %d 0\n", numPages))
		}
		if err != nil {
			return &IOError{Phase: "header", Err: err}
		}
	}

	err = rw.copyUpTo(doc.HeaderEnd)
	if err != nil {
		return &IOError{Phase: "header", Err: err}
	}

	if rw.useProcSet {
		name := procSetName
		if rw.opt.NoBind {
			name = procSetNoBindName
		}
		b := &strings.Builder{}
		b.WriteString("%%BeginProcSet: " + name + " " + procSetVersion + "\n")
		b.WriteString(procSet)
		if rw.opt.NoBind {
			b.WriteString(noBind)
		}
		b.WriteString("%%EndProcSet\n")
		err = rw.writeString(b.String())
		if err != nil {
			return &IOError{Phase: "prologue", Err: err}
		}
	}

	// If we write a new procset, any existing copy is removed.
	if rw.useProcSet && doc.HasProcSet() {
		err = rw.copyUpTo(doc.BeginProcSet)
		if err != nil {
			return &IOError{Phase: "prologue", Err: err}
		}
		err = rw.seek(doc.EndProcSet)
		if err != nil {
			return &IOError{Phase: "seek", Err: err}
		}
	}
	err = rw.copyUpTo(doc.EndSetup)
	if err == nil && rw.useProcSet && !doc.HasProcSet() {
		err = rw.writeString(saveXForm)
	}
	if err == nil {
		err = rw.copyUpTo(doc.Pages[0])
	}
	if err != nil {
		return &IOError{Phase: "prologue", Err: err}
	}
	return nil
}

// inputPage returns the input page shown by layer l on the output page
// for the block starting at base.
func (rw *rewriter) inputPage(l pagespec.Layer, maxPage, base int) pagerange.Page {
	n := base + l.Page
	if l.Reversed {
		n = maxPage - base - rw.spec.Modulo + l.Page
	}
	if n < 0 || n >= len(rw.pages) {
		return pagerange.Blank
	}
	return rw.pages[n]
}

// writePage writes one output page, combining the input pages given by the
// layers of tmpl.
func (rw *rewriter) writePage(tmpl pagespec.Template, outPage, maxPage, base int) error {
	labels := make([]string, len(tmpl))
	for i, l := range tmpl {
		labels[i] = rw.inputPage(l, maxPage, base).String()
	}
	label := strings.Join(labels, ",")
	if rw.opt.Progress != nil {
		rw.opt.Progress(label)
	}

	psLabel := postscript.String(label)
	err := rw.writeString(fmt.Sprintf("%%%%Page: %s %d\n", psLabel.PS(), outPage))
	if err != nil {
		return &IOError{Phase: "page setup", Page: outPage, Err: err}
	}

	for i, l := range tmpl {
		page := rw.inputPage(l, maxPage, base)
		idx, isReal := page.Index()
		if isReal {
			err = rw.seek(rw.doc.Pages[idx])
			if err == nil {
				_, err = rw.readLine() // the %%Page: comment
			}
			if err != nil {
				return &IOError{Phase: "seek", Page: outPage, Err: err}
			}
		}

		err = rw.writeString(rw.layerSetup(l, i == len(tmpl)-1))
		if err != nil {
			return &IOError{Phase: "page setup", Page: outPage, Err: err}
		}

		if isReal && rw.useProcSet && rw.doc.HasProcSet() {
			err = rw.copyPageSetup()
			if err != nil {
				return &IOError{Phase: "page setup", Page: outPage, Err: err}
			}
		}
		if !rw.doc.HasProcSet() && rw.useProcSet {
			err = rw.writeString("PStoPSxform concat\n")
			if err != nil {
				return &IOError{Phase: "page setup", Page: outPage, Err: err}
			}
		}

		if isReal {
			err = rw.copyUpTo(rw.doc.Pages[idx+1])
		} else {
			err = rw.writeString("showpage\n")
		}
		if err == nil && rw.useProcSet {
			err = rw.writeString("PStoPSsaved restore\n")
		}
		if err != nil {
			return &IOError{Phase: "page body", Page: outPage, Err: err}
		}
	}
	return nil
}

// copyPageSetup copies the page setup code which an earlier run of the
// program placed at the start of the page, up to and excluding the line
// which applies PStoPSxform.
func (rw *rewriter) copyPageSetup() error {
	for {
		line, err := rw.readLine()
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		} else if err != nil {
			return err
		}
		if strings.HasPrefix(string(line), "PStoPSxform") {
			return nil
		}
		err = rw.writeString(string(line))
		if err != nil {
			return err
		}
	}
}

// layerSetup returns the PostScript code which sets up the coordinate
// system for one layer of an output page.
func (rw *rewriter) layerSetup(l pagespec.Layer, last bool) string {
	b := &strings.Builder{}
	if rw.useProcSet {
		b.WriteString("userdict/PStoPSsaved save put\n")
	}

	if rw.globalTransform || l.HasTransform() {
		s := l.Scale * rw.scale
		b.WriteString("PStoPSmatrix setmatrix\n")
		if l.XOff != 0 || l.YOff != 0 {
			fmt.Fprintf(b, "%f %f translate\n", l.XOff, l.YOff)
		}
		if angle := l.Angle(rw.opt.Rotate); angle != 0 {
			fmt.Fprintf(b, "%d rotate\n", angle)
		}
		if l.HFlip {
			fmt.Fprintf(b, "[ -1 0 0 1 %.6g 0 ] concat\n", rw.inSize.Dx()*s)
		}
		if l.VFlip {
			fmt.Fprintf(b, "[ 1 0 0 -1 0 %.6g ] concat\n", rw.inSize.Dy()*s)
		}
		if s != 1 {
			fmt.Fprintf(b, "%f dup scale\n", s)
		}
		b.WriteString("userdict/PStoPSmatrix matrix currentmatrix put\n")
		if in := rw.inSize; in != nil {
			w, h := in.Dx(), in.Dy()
			fmt.Fprintf(b, "userdict/PStoPSclip{0 0 moveto\n %f 0 rlineto 0 %f rlineto %f 0 rlineto\n closepath}put initclip\n", w, h, -w)
			if rw.opt.Draw > 0 {
				fmt.Fprintf(b, "gsave clippath 0 setgray %g setlinewidth stroke grestore\n", rw.opt.Draw)
			}
		}
	}

	if !last {
		b.WriteString("/PStoPSenablepage false def\n")
	}
	return b.String()
}

// IOError is returned when reading the input or writing the output fails.
type IOError struct {
	// Phase describes the part of the document which was being processed,
	// for example "header" or "page body".
	Phase string

	// Page is the output page number, or 0 outside the pages.
	Page int

	Err error
}

func (err *IOError) Error() string {
	msg := "I/O error in " + err.Phase
	if err.Page > 0 {
		msg += fmt.Sprintf(" of page %d", err.Page)
	}
	return msg + ": " + err.Err.Error()
}

func (err *IOError) Unwrap() error {
	return err.Err
}
