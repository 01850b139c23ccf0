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

// Psbook rearranges the pages of a PostScript document into signatures,
// for printing booklets.
package main

import (
	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/book"
	"seehuhn.de/go/psutils/dsc"
	"seehuhn.de/go/psutils/pstops"
	"seehuhn.de/go/psutils/tools/internal/cli"
)

func main() {
	cli.Main(newRootCmd())
}

func newRootCmd() *cobra.Command {
	cmd := cli.NewCommand("psbook", "[OPTION...] [INFILE [OUTFILE]]",
		"Rearrange pages in a PostScript document into signatures.")
	cmd.Args = cobra.MaximumNArgs(2)

	flags := cmd.Flags()
	flags.IntP("signature", "s", 0, "number of pages per signature;\n"+
		"0 = all pages in one signature [default];\n"+
		"1 = do not rearrange the pages;\n"+
		"otherwise, a multiple of 4")
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
	signature, _ := cmd.Flags().GetInt("signature")
	if _, err := book.Ranges(0, signature); err != nil {
		return nil, err
	}

	job, err := cli.NewJob(cmd, args)
	if err != nil {
		return nil, err
	}
	job.Setup = func(doc *dsc.Table) (*pstops.Options, error) {
		ranges, err := book.Ranges(doc.NumPages(), signature)
		if err != nil {
			return nil, err
		}
		job.Common.Logger.Debug("page order", "signature", signature, "pages", len(ranges))
		return &pstops.Options{Pages: ranges}, nil
	}
	return job, nil
}
