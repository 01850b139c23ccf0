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

// Psresize scales and centres the pages of a PostScript document to fit
// a different paper size.
package main

import (
	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/dsc"
	"seehuhn.de/go/psutils/nup"
	"seehuhn.de/go/psutils/pstops"
	"seehuhn.de/go/psutils/tools/internal/cli"
)

func main() {
	cli.Main(newRootCmd())
}

func newRootCmd() *cobra.Command {
	cmd := cli.NewCommand("psresize", "[OPTION...] [INFILE [OUTFILE]]",
		"Change the page size of a PostScript document.")
	cmd.Args = cobra.MaximumNArgs(2)

	flags := cmd.Flags()
	flags.VarP(&cli.PaperValue{}, "paper", "p", "output paper name or dimensions (WIDTHxHEIGHT)")
	flags.VarP(&cli.PaperValue{}, "inpaper", "P", "input paper name or dimensions (WIDTHxHEIGHT)")
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
	flags := cmd.Flags()
	size := cli.ReadPaperValue(flags, "paper")
	inSize := cli.ReadPaperValue(flags, "inpaper")

	opt, err := cli.ImposeOptions(&nup.Params{N: 1}, size, inSize, 0)
	if err != nil {
		return nil, err
	}

	job, err := cli.NewJob(cmd, args)
	if err != nil {
		return nil, err
	}
	job.Setup = func(*dsc.Table) (*pstops.Options, error) {
		return opt, nil
	}
	return job, nil
}
