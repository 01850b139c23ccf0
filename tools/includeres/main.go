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


// Includeres replaces the %%IncludeResource: comments of a PostScript
// document by the contents of the corresponding files in the current
// directory.
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
	cmd := cli.NewCommand("includeres", "[OPTION...] [INFILE [OUTFILE]]",
		"Include resources into a PostScript document.")
	cmd.Args = cobra.MaximumNArgs(2)
	cli.AddCommonFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		job, err := cli.NewJob(cmd, args)
		if err != nil {
			return err
		}
		logger := job.Common.Logger
		job.Convert = func(w io.Writer, r io.Reader) error {
			missing, err := resource.Include(w, r, "")
			for _, name := range missing {
				logger.Warn("resource not found", "file", name)
			}
			return err
		}
		return job.Run()
	}
	return cmd
}
