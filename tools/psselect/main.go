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

// Psselect selects pages from a PostScript document.
//
// Usage:
//
//	psselect [OPTION...] [PAGES] [INFILE [OUTFILE]]
//
// For compatibility with older versions, the page ranges can be given as
// the first positional argument instead of with --pages.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/dsc"
	"seehuhn.de/go/psutils/pagerange"
	"seehuhn.de/go/psutils/pstops"
	"seehuhn.de/go/psutils/tools/internal/cli"
)

const epilog = `
PAGES is a comma-separated list of pages and page ranges; see
pstops(1) for more details.`

var (
	errPagesTwice   = errors.New("PAGES specified both with and without an option flag")
	errPagesMissing = errors.New("--pages must be used when --even, --odd or --reverse is used")
)

func main() {
	cli.Main(newRootCmd())
}

func newRootCmd() *cobra.Command {
	cmd := cli.NewCommand("psselect", "[OPTION...] [PAGES] [INFILE [OUTFILE]]",
		"Select pages from a PostScript document.")
	cmd.Long = cmd.Short + "\n" + epilog
	cmd.Args = cobra.MaximumNArgs(3)

	flags := cmd.Flags()
	pages := flags.StringP("pages", "R", "", "select the given page ranges")
	flags.StringVarP(pages, "page-list", "p", "", "select the given page ranges")
	flags.MarkHidden("page-list")
	flags.BoolP("even", "e", false, "select even-numbered output pages")
	flags.BoolP("odd", "o", false, "select odd-numbered output pages")
	flags.BoolP("reverse", "r", false, "reverse the order of the output pages")
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

	var filter pagerange.Filter
	filter.Even, _ = flags.GetBool("even")
	filter.Odd, _ = flags.GetBool("odd")
	filter.Reverse, _ = flags.GetBool("reverse")

	pagesText, _ := flags.GetString("pages")
	pagesSet := flags.Changed("pages") || flags.Changed("page-list")

	files := args
	if len(args) > 0 {
		switch {
		case !pagesSet && filter == (pagerange.Filter{}):
			pagesText = args[0]
			pagesSet = true
			files = args[1:]
		case len(args) == 3 && pagesSet:
			return nil, errPagesTwice
		case len(args) == 3:
			return nil, errPagesMissing
		}
	}

	var ranges []pagerange.Range
	if pagesSet {
		var err error
		ranges, err = pagerange.Parse(pagesText)
		if err != nil {
			return nil, err
		}
	}

	job, err := cli.NewJob(cmd, files)
	if err != nil {
		return nil, err
	}
	job.Setup = func(*dsc.Table) (*pstops.Options, error) {
		opt := &pstops.Options{
			Pages:  ranges,
			Filter: filter,
		}
		return opt, nil
	}
	return job, nil
}
