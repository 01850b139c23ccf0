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


// Package concat joins PostScript documents into a single document.
//
// By default the prolog and trailer of the input documents are stripped.
// The most widely used prolog is emitted once, in the prolog of the
// output.  Pages of documents with a different prolog get a copy of their
// own prolog and trailer, enclosed in save and restore.
package concat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Options controls how documents are joined.
type Options struct {
	// Even pads every document to an even number of pages, so that
	// each document starts on a new sheet in duplex printing.
	Even bool

	// Save encloses the pages of each document in a save/restore pair
	// which also closes save operators left open by the document.
	Save bool

	// NoStrip keeps prolog and trailer of every document in place.
	NoStrip bool
}

// Document is one input document.
type Document struct {
	// Name identifies the document in comments of the output.  Only the
	// last element of the path is used.
	Name string

	Data []byte
}

// ErrNoInput is returned by [Join] if no documents are given.
var ErrNoInput = errors.New("no input documents")

const (
	saveCode       = "save %psjoin\n"
	restoreCode    = "restore %psjoin\n"
	saveDefCode    = "/#psjoin-save# save def %psjoin\n"
	restoreDefCode = "#psjoin-save# restore %psjoin\n"
	noStripMark    = "% psjoin: don't strip\n"
)

// Join writes the concatenation of docs to w, and returns the number of
// pages in the output.
func Join(w io.Writer, docs []Document, opt *Options) (int, error) {
	if len(docs) == 0 {
		return 0, ErrNoInput
	}
	if opt == nil {
		opt = &Options{}
	}

	parts := make([]*document, len(docs))
	for i, d := range docs {
		parts[i] = split(d.Data)
	}

	// shared is the document whose prolog and trailer are used for the
	// whole output, or -1 if nothing is stripped.
	shared := -1
	var comments, prolog, trailer string
	if opt.NoStrip {
		prolog, trailer = noStripMark, noStripMark
	} else {
		shared = sharedProlog(parts)
		p := parts[shared]
		comments = p.comments()
		prolog = p.prolog
		trailer = escape(p.trailer)
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = filepath.Base(d.Name)
	}

	out := &errWriter{w: bufio.NewWriter(w)}
	out.print("%!PS-Adobe-3.0\n")
	out.print("%%Title: " + strings.Join(names, " ") + "\n")
	out.print("%%Creator: psjoin (from PSUtils)\n")
	out.print("%%Pages: (atend)\n")
	out.print(comments)
	out.print("\n" + prolog)

	save, restore := saveCode, restoreCode
	if opt.Save {
		save, restore = saveDefCode, restoreDefCode
	}

	total := 0
	for i, p := range parts {
		own := shared < 0 || p.prolog != parts[shared].prolog
		var ownProlog, ownTrailer string
		if !opt.NoStrip {
			ownProlog, ownTrailer = escape(p.prolog), escape(p.trailer)
		}

		out.print("% psjoin: file: " + names[i] + "\n")
		if own {
			out.print("% psjoin: Prolog/Trailer will be inserted in each page\n")
		} else {
			out.print("% psjoin: common Prolog/Trailer will be used\n")
		}

		lines := p.lines
		if !opt.NoStrip {
			lines = append(p.lines[:p.headerEnd:p.headerEnd], p.lines[p.bodyStart:p.bodyEnd]...)
		}

		saved := false
		pages := 0
		for _, l := range lines {
			switch {
			case l.embedded:
				out.print(l.text)
			case strings.HasPrefix(l.text, "%%Page:"):
				if saved {
					out.print(ownTrailer)
					out.print(restore)
					saved = false
				}
				pages++
				total++
				fmt.Fprintf(out, "\n%%%%Page: (%d-%d) %d\n", i, pages, total)
				if own {
					out.print(save)
					out.print(ownProlog)
					saved = true
				} else if opt.Save {
					out.print(save)
				}
			default:
				out.print(escape(l.text))
			}
		}

		if opt.Even && pages%2 != 0 {
			total++
			fmt.Fprintf(out, "\n%%%%Page: (%d-E) %d\n", i, total)
			out.print("% psjoin: empty page inserted to force even pages\n")
			out.print("showpage\n")
		}
		if saved {
			out.print(ownTrailer)
		}
		if saved || opt.Save {
			out.print(restore)
		}
	}

	out.print("\n%%Trailer\n")
	out.print(trailer)
	fmt.Fprintf(out, "\n%%%%Pages: %d\n%%%%EOF\n", total)

	if out.err != nil {
		return 0, out.err
	}
	err := out.w.Flush()
	if err != nil {
		return 0, err
	}
	return total, nil
}

// sharedProlog returns the index of the document whose prolog accounts
// for the largest share of the output.  Documents with identical prologs
// are counted together.
func sharedProlog(parts []*document) int {
	pages := make([]int, len(parts))
	for i, p := range parts {
		pages[i] = p.pages
	}
	for i, p := range parts {
		if p.prolog == "" {
			continue
		}
		for j := range i {
			if parts[j].prolog == p.prolog {
				pages[j] += pages[i]
				break
			}
		}
	}

	best, largest := 0, 0
	for i, p := range parts {
		if size := len(p.prolog) * pages[i]; size > largest {
			best, largest = i, size
		}
	}
	return best
}

// escape turns DSC comments in s into plain comments.
func escape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "%%") || strings.HasPrefix(l, "%!") {
			lines[i] = "% " + l
		}
	}
	return strings.Join(lines, "")
}

type line struct {
	text string

	// embedded is set for the lines of an embedded document, from
	// %%BeginDocument to %%EndDocument.
	embedded bool
}

// document is an input document split into its sections.
type document struct {
	lines []line

	// The header comments are lines[:headerEnd], the pages are
	// lines[bodyStart:bodyEnd].  The prolog and trailer are stored as text.
	headerEnd, bodyStart, bodyEnd int

	prolog  string
	trailer string
	pages   int
}

func split(data []byte) *document {
	d := &document{}

	depth := 0
	text := string(data)
	for len(text) > 0 {
		k := strings.IndexByte(text, '\n')
		var l string
		if k < 0 {
			l, text = text+"\n", ""
		} else {
			l, text = text[:k+1], text[k+1:]
		}
		if strings.HasPrefix(l, "%%BeginDocument") {
			depth++
		}
		d.lines = append(d.lines, line{text: l, embedded: depth > 0})
		if depth > 0 && strings.HasPrefix(l, "%%EndDocument") {
			depth--
		}
	}

	n := len(d.lines)
	d.headerEnd = n
	for i, l := range d.lines {
		if !strings.HasPrefix(l.text, "%") {
			d.headerEnd = i
			break
		}
		if strings.HasPrefix(l.text, "%%EndComments") {
			d.headerEnd = i + 1
			break
		}
	}
	d.bodyStart = n
	for i := d.headerEnd; i < n; i++ {
		if isComment(d.lines[i], "%%Page:") {
			d.bodyStart = i
			break
		}
	}
	d.bodyEnd = n
	for i := d.bodyStart; i < n; i++ {
		l := d.lines[i]
		if isComment(l, "%%Trailer") {
			d.bodyEnd = i
			break
		}
		if isComment(l, "%%Page:") {
			d.pages++
		}
	}

	d.prolog = joinLines(d.lines[d.headerEnd:d.bodyStart])
	d.trailer = joinLines(d.lines[d.bodyEnd:])
	return d
}

// comments returns the header comments which are carried over to the
// output.  Comments describing the document as a whole are dropped.
func (d *document) comments() string {
	b := &strings.Builder{}
	hasEnd := false
	for _, l := range d.lines[:d.headerEnd] {
		t := l.text
		switch {
		case strings.HasPrefix(t, "%!PS-Adobe-"),
			strings.HasPrefix(t, "%%Title"),
			strings.HasPrefix(t, "%%Pages"),
			strings.HasPrefix(t, "%%Creator"):
			continue
		case strings.HasPrefix(t, "%%EndComments"):
			hasEnd = true
		}
		b.WriteString(t)
	}
	if !hasEnd {
		b.WriteString("%%EndComments\n")
	}
	return b.String()
}

func isComment(l line, prefix string) bool {
	return !l.embedded && strings.HasPrefix(l.text, prefix)
}

func joinLines(lines []line) string {
	b := &strings.Builder{}
	for _, l := range lines {
		b.WriteString(l.text)
	}
	return b.String()
}

type errWriter struct {
	w   *bufio.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = ew.w.WriteString(s)
}
