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

package pstops

import (
	"bufio"
	"io"

	"seehuhn.de/go/psutils/dsc"
)

// copier copies byte ranges from a seekable input to the output.
type copier struct {
	r   io.ReadSeeker
	br  *bufio.Reader
	pos int64 // position of br in r

	w *bufio.Writer

	// skip lists byte ranges of the input which are omitted by copyUpTo.
	// Ranges are sorted and are removed once the input has moved past
	// their start.
	skip []dsc.Skip
}

func newCopier(w io.Writer, r io.ReadSeeker) *copier {
	return &copier{
		r:  r,
		br: bufio.NewReader(r),
		w:  bufio.NewWriter(w),
	}
}

func (c *copier) seek(pos int64) error {
	_, err := c.r.Seek(pos, io.SeekStart)
	if err != nil {
		return err
	}
	c.br.Reset(c.r)
	c.pos = pos
	return nil
}

// readLine reads the next line of input, including the line terminator.
// The last line of the file may lack a terminator.
func (c *copier) readLine() ([]byte, error) {
	line, err := c.br.ReadBytes('\n')
	c.pos += int64(len(line))
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	return line, err
}

// copyTo copies the input from the current position up to offset.
func (c *copier) copyTo(offset int64) error {
	if offset <= c.pos {
		return nil
	}
	n, err := io.CopyN(c.w, c.br, offset-c.pos)
	c.pos += n
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// discardTo advances the input to offset without copying.
func (c *copier) discardTo(offset int64) error {
	if offset <= c.pos {
		return nil
	}
	n, err := c.br.Discard(int(offset - c.pos))
	c.pos += int64(n)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// copyUpTo copies the input from the current position up to offset,
// leaving out all skip ranges which start in between.
func (c *copier) copyUpTo(offset int64) error {
	for len(c.skip) > 0 && c.skip[0].Start < offset {
		s := c.skip[0]
		c.skip = c.skip[1:]
		if s.Start < c.pos {
			continue
		}
		err := c.copyTo(s.Start)
		if err != nil {
			return err
		}
		err = c.discardTo(s.End)
		if err != nil {
			return err
		}
	}
	return c.copyTo(offset)
}

// copyAll copies the remaining input.
func (c *copier) copyAll() error {
	n, err := io.Copy(c.w, c.br)
	c.pos += n
	return err
}

func (c *copier) writeString(s string) error {
	_, err := c.w.WriteString(s)
	return err
}

func (c *copier) flush() error {
	return c.w.Flush()
}
