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

// Package dsc locates the structural parts of a PostScript document which
// follows the Document Structuring Conventions.
//
// The scanner only looks at "%%" comments; the PostScript code itself is
// never interpreted.
package dsc

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"

	"seehuhn.de/go/geom/rect"
)

// Table describes the location of the parts of a document.
// All positions are byte offsets from the start of the file.
// Optional positions are -1 if the corresponding comment is missing.
type Table struct {
	// Pages holds the start of every %%Page: comment, followed by the
	// start of the trailer (or the end of file).
	Pages []int64

	// HeaderEnd is the end of the header comments.
	HeaderEnd int64

	// PagesComment is the start of the %%Pages: line in the header (optional).
	PagesComment int64

	// BeginProcSet and EndProcSet delimit an embedded PStoPS procset
	// (optional).  EndProcSet points past the %%EndProcSet line.
	BeginProcSet int64
	EndProcSet   int64

	// EndSetup is the start of the %%EndSetup line, or the start of the
	// first page if there is no document setup.
	EndSetup int64

	// SizeComments lists the lines of the header which give the page size
	// of the document.
	SizeComments []Skip

	// InSize is the page size given by the %%DocumentMedia: comment in the
	// header, or nil if unknown.
	InSize *rect.Rect
}

// Skip is a byte range [Start, End) of the input file.
type Skip struct {
	Start, End int64
}

// NumPages returns the number of pages in the document.
func (t *Table) NumPages() int {
	return len(t.Pages) - 1
}

// HasProcSet reports whether the document contains a complete PStoPS
// procset, as written by an earlier run of the program.
func (t *Table) HasProcSet() bool {
	return t.BeginProcSet >= 0 && t.EndProcSet >= 0
}

// Scan reads a PostScript document and locates its parts.
func Scan(r io.ReadSeeker) (*Table, error) {
	_, err := r.Seek(0, io.SeekStart)
	if err != nil {
		return nil, err
	}

	t := &Table{
		HeaderEnd:    -1,
		PagesComment: -1,
		BeginProcSet: -1,
		EndProcSet:   -1,
		EndSetup:     -1,
	}

	br := bufio.NewReader(r)
	var pos, next int64
	nesting := 0
	inHeader := func() bool { return t.HeaderEnd < 0 }

scanLoop:
	for {
		line, err := br.ReadBytes('\n')
		if len(line) == 0 && err == io.EOF {
			break
		} else if err != nil && err != io.EOF {
			return nil, err
		}
		next = pos + int64(len(line))

		if pos == 0 && !bytes.HasPrefix(line, []byte("%!")) {
			return nil, &MalformedFileError{Err: errNotPostScript}
		}

		keyword, value := parseComment(line)
		switch {
		case keyword == "":
			if !bytes.HasPrefix(line, []byte("%%")) && inHeader() && pos > 0 {
				t.HeaderEnd = pos
			}

		case nesting == 0 && keyword == "Page:":
			t.Pages = append(t.Pages, pos)

		case inHeader() && isSizeComment(keyword):
			t.SizeComments = append(t.SizeComments, Skip{Start: pos, End: next})
			if keyword == "DocumentMedia:" && t.InSize == nil {
				t.InSize = parseMedia(value)
			}

		case inHeader() && keyword == "Pages:":
			t.PagesComment = pos

		case inHeader() && keyword == "EndComments":
			t.HeaderEnd = next

		case keyword == "BeginDocument:" || keyword == "BeginBinary:" || keyword == "BeginFile:":
			nesting++

		case keyword == "EndDocument" || keyword == "EndBinary" || keyword == "EndFile":
			if nesting > 0 {
				nesting--
			}

		case nesting == 0 && keyword == "EndSetup":
			t.EndSetup = pos

		case nesting == 0 && keyword == "BeginProlog":
			t.HeaderEnd = next

		case nesting == 0 && keyword == "BeginProcSet:" && bytes.HasPrefix(value, []byte("PStoPS")):
			if t.BeginProcSet < 0 {
				t.BeginProcSet = pos
			}

		case t.BeginProcSet >= 0 && t.EndProcSet < 0 && keyword == "EndProcSet":
			t.EndProcSet = next

		case nesting == 0 && (keyword == "Trailer" || keyword == "EOF"):
			break scanLoop
		}

		pos = next
		if err == io.EOF {
			break
		}
	}
	if pos == 0 {
		return nil, &MalformedFileError{Err: io.ErrUnexpectedEOF}
	}

	t.Pages = append(t.Pages, pos)
	firstPage := t.Pages[0]
	if t.HeaderEnd < 0 || t.HeaderEnd > firstPage {
		t.HeaderEnd = firstPage
	}
	if t.EndSetup < 0 || t.EndSetup > firstPage {
		t.EndSetup = firstPage
	}
	if t.EndSetup < t.HeaderEnd {
		t.EndSetup = t.HeaderEnd
	}

	return t, nil
}

// parseComment splits a DSC comment line into its keyword and value.
// If line is not a DSC comment, the keyword is empty.
func parseComment(line []byte) (string, []byte) {
	if !bytes.HasPrefix(line, []byte("%%")) {
		return "", nil
	}
	line = bytes.TrimRight(line[2:], " \t\r\n")
	end := bytes.IndexAny(line, " \t")
	if end < 0 {
		return string(line), nil
	}
	return string(line[:end]), bytes.TrimLeft(line[end:], " \t")
}

func isSizeComment(keyword string) bool {
	switch keyword {
	case "BoundingBox:", "HiResBoundingBox:", "DocumentPaperSizes:", "DocumentMedia:":
		return true
	}
	return false
}

// parseMedia extracts the page size from the value of a %%DocumentMedia:
// comment, which has the form "name width height weight color type".
func parseMedia(value []byte) *rect.Rect {
	words := bytes.Fields(value)
	if len(words) < 3 {
		return nil
	}
	w, err := strconv.ParseFloat(string(words[1]), 64)
	if err != nil {
		return nil
	}
	h, err := strconv.ParseFloat(string(words[2]), 64)
	if err != nil {
		return nil
	}
	return &rect.Rect{URx: w, URy: h}
}

var errNotPostScript = errors.New("missing %! header")

// MalformedFileError indicates that the input is not a PostScript document.
type MalformedFileError struct {
	Pos int64
	Err error
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid PostScript file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}
