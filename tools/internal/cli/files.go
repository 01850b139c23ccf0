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
	"bytes"
	"fmt"
	"io"
	"os"
)

// InOut interprets the positional INFILE and OUTFILE arguments.
// Missing arguments, and the name "-", denote standard input and output.
func InOut(args []string) (in, out string) {
	if len(args) > 0 && args[0] != "-" {
		in = args[0]
	}
	if len(args) > 1 && args[1] != "-" {
		out = args[1]
	}
	return in, out
}

// OpenInput opens the named input file, or reads stdin if name is empty.
// Input which does not come from a regular file is read into memory,
// since rewriting a document requires random access.
func OpenInput(name string, stdin io.Reader) (io.ReadSeekCloser, error) {
	if name == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("cannot read standard input: %w", err)
		}
		return memFile{bytes.NewReader(data)}, nil
	}

	fd, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file %s: %w", name, err)
	}
	fi, err := fd.Stat()
	if err == nil && fi.Mode().IsRegular() {
		return fd, nil
	}
	data, err := io.ReadAll(fd)
	fd.Close()
	if err != nil {
		return nil, fmt.Errorf("cannot read input file %s: %w", name, err)
	}
	return memFile{bytes.NewReader(data)}, nil
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error {
	return nil
}

// Output is the destination of a rewritten document.  Output for
// standard output is held in memory until the run has succeeded, and an
// output file is removed again if the run fails.
type Output struct {
	w      io.Writer
	file   *os.File
	buf    *bytes.Buffer
	stdout io.Writer
}

// CreateOutput creates the named output file, or prepares to write to
// stdout if name is empty.
func CreateOutput(name string, stdout io.Writer) (*Output, error) {
	if name == "" {
		buf := &bytes.Buffer{}
		return &Output{w: buf, buf: buf, stdout: stdout}, nil
	}
	fd, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open output file %s: %w", name, err)
	}
	return &Output{w: fd, file: fd}, nil
}

func (o *Output) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// Commit completes the output after a successful run.
func (o *Output) Commit() error {
	if o.buf != nil {
		_, err := o.buf.WriteTo(o.stdout)
		o.buf = nil
		return err
	}
	if o.file == nil {
		return nil
	}
	err := o.file.Close()
	if err != nil {
		os.Remove(o.file.Name())
	}
	o.file = nil
	return err
}

// Abort discards the output after a failed run.
func (o *Output) Abort() {
	o.buf = nil
	if o.file == nil {
		return
	}
	o.file.Close()
	os.Remove(o.file.Name())
	o.file = nil
}
