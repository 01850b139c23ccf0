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
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/dsc"
	"seehuhn.de/go/psutils/pstops"
	"seehuhn.de/go/psutils/tools/internal/profile"
)

// Job is one run of a tool: read a document, rearrange its pages and
// write the result.
type Job struct {
	Common *Common

	// In and Out are the file names.  Empty names denote standard
	// input and output.
	In, Out string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Setup computes the options for rewriting the document, once the
	// input has been scanned.
	Setup func(doc *dsc.Table) (*pstops.Options, error)

	// Convert, if set, is used instead of rearranging pages.  It reads
	// the input from r and writes the result to w.
	Convert func(w io.Writer, r io.Reader) error
}

// NewJob returns a job for the positional arguments args, using the
// common options and the standard streams of cmd.
func NewJob(cmd *cobra.Command, args []string) (*Job, error) {
	common, err := ReadCommon(cmd.Flags(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	in, out := InOut(args)
	job := &Job{
		Common: common,
		In:     in,
		Out:    out,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
	return job, nil
}

// Run executes the job.
func (j *Job) Run() (err error) {
	logger := j.Common.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	prof, err := profile.Start(j.Common.CPUProfile, j.Common.MemProfile)
	if err != nil {
		return err
	}
	defer func() {
		if err2 := prof.Stop(); err == nil {
			err = err2
		}
	}()

	in, err := OpenInput(j.In, j.Stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	if j.Convert != nil {
		out, err := CreateOutput(j.Out, j.Stdout)
		if err != nil {
			return err
		}
		err = j.Convert(out, in)
		if err != nil {
			out.Abort()
			return err
		}
		return out.Commit()
	}

	doc, err := dsc.Scan(in)
	if err != nil {
		return err
	}
	logger.Debug("scanned input", "file", j.In, "pages", doc.NumPages())

	opt, err := j.Setup(doc)
	if err != nil {
		return err
	}
	opt.Logger = logger
	var prog *progress
	if !j.Common.Quiet {
		prog = newProgress(j.Stderr)
		opt.Progress = prog.Page
	}

	out, err := CreateOutput(j.Out, j.Stdout)
	if err != nil {
		return err
	}
	res, err := pstops.Rewrite(out, in, doc, opt)
	if err != nil {
		out.Abort()
		return err
	}
	err = out.Commit()
	if err != nil {
		return err
	}

	if prog != nil {
		prog.Done(res.Pages)
	}
	return nil
}
