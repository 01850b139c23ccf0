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


// Extractres moves the resources of a PostScript document into separate
// files in the current directory.  The resources are replaced by
// %%IncludeResource: comments, which includeres can undo.
package main

import (
	"io"

	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/resource"
	"seehuhn.de/go/psutils/tools/internal/cli"
)

func main() {
	cli.Main(newRootCmd())
}

func newRootCmd() *cobra.Command {
	cmd := cli.NewCommand("extractres", "[OPTION...] [INFILE [OUTFILE]]",
		"Extract resources from a PostScript document.")
	cmd.Args = cobra.MaximumNArgs(2)

	flags := cmd.Flags()
	flags.BoolP("merge", "m", false, "merge resources of the same name into one file")
	cli.AddCommonFlags(flags)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		job, err := readOptions(cmd, args)
		if err != nil {
			return err
		}
		return job.Run()
	}
	return cmd
}

func readOptions(cmd *cobra.Command, args []string) (*cli.Job, error) {
	opt := &resource.ExtractOptions{}
	opt.Merge, _ = cmd.Flags().GetBool("merge")

	job, err := cli.NewJob(cmd, args)
	if err != nil {
		return nil, err
	}
	logger := job.Common.Logger
	job.Convert = func(w io.Writer, r io.Reader) error {
		files, err := resource.Extract(w, r, opt)
		if err != nil {
			return err
		}
		logger.Info("extracted resources", "files", files)
		return nil
	}
	return job, nil
}
