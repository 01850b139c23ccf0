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


// Psjoin concatenates PostScript documents.
//
// Usage:
//
//	psjoin [OPTION...] FILE...
//
// The joined document is written to standard output.  A FILE of "-"
// denotes standard input.
package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/concat"
	"seehuhn.de/go/psutils/tools/internal/cli"
	"seehuhn.de/go/psutils/tools/internal/profile"
)

func main() {
	cli.Main(newRootCmd())
}

func newRootCmd() *cobra.Command {
	cmd := cli.NewCommand("psjoin", "[OPTION...] FILE...",
		"Concatenate PostScript documents.")
	cmd.Args = cobra.MinimumNArgs(1)

	flags := cmd.Flags()
	flags.BoolP("even", "e", false, "force each file to an even number of pages")
	flags.BoolP("save", "s", false, "try to close unclosed save operators")
	flags.BoolP("nostrip", "n", false, "do not strip prolog or trailer from input files")
	cli.AddCommonFlags(flags)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		j, err := readOptions(cmd, args)
		if err != nil {
			return err
		}
		return j.run()
	}
	return cmd
}

type job struct {
	common *cli.Common
	files  []string
	opt    *concat.Options

	stdin  io.Reader
	stdout io.Writer
}

func readOptions(cmd *cobra.Command, args []string) (*job, error) {
	flags := cmd.Flags()
	common, err := cli.ReadCommon(flags, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	opt := &concat.Options{}
	opt.Even, _ = flags.GetBool("even")
	opt.Save, _ = flags.GetBool("save")
	opt.NoStrip, _ = flags.GetBool("nostrip")

	j := &job{
		common: common,
		files:  args,
		opt:    opt,
		stdin:  cmd.InOrStdin(),
		stdout: cmd.OutOrStdout(),
	}
	return j, nil
}

func (j *job) run() (err error) {
	prof, err := profile.Start(j.common.CPUProfile, j.common.MemProfile)
	if err != nil {
		return err
	}
	defer func() {
		if err2 := prof.Stop(); err == nil {
			err = err2
		}
	}()

	docs := make([]concat.Document, len(j.files))
	for i, name := range j.files {
		data, err := readDocument(name, j.stdin)
		if err != nil {
			return err
		}
		docs[i] = concat.Document{Name: name, Data: data}
	}

	out, err := cli.CreateOutput("", j.stdout)
	if err != nil {
		return err
	}
	n, err := concat.Join(out, docs, j.opt)
	if err != nil {
		out.Abort()
		return err
	}
	err = out.Commit()
	if err != nil {
		return err
	}
	j.common.Logger.Info("joined documents", "files", len(docs), "pages", n)
	return nil
}

// readDocument reads a PostScript document from the named file, or from
// stdin if name is "-".
func readDocument(name string, stdin io.Reader) ([]byte, error) {
	in, _ := cli.InOut([]string{name})
	r, err := cli.OpenInput(in, stdin)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", name, err)
	}
	if !bytes.HasPrefix(data, []byte("%!")) {
		return nil, fmt.Errorf("%s is not a PostScript document", name)
	}
	return data, nil
}
