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

// Pstops rearranges the pages of a PostScript document.
//
// Usage:
//
//	pstops [OPTION...] [INFILE [OUTFILE]]
//
// The page specification given with -S describes how the input pages are
// combined into output pages.  See the documentation of package pagespec
// for the syntax.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/dsc"
	"seehuhn.de/go/psutils/pagerange"
	"seehuhn.de/go/psutils/pagespec"
	"seehuhn.de/go/psutils/pstops"
	"seehuhn.de/go/psutils/tools/internal/cli"
)

const epilog = `
PAGES is a comma-separated list of pages and page ranges.

SPECS is a list of page specifications [default is "0", which selects
each page in its normal order].`

func main() {
	cmd := newRootCmd()
	cmd.SetArgs(cli.ExpandDrawArgs(os.Args[1:]))
	cli.Main(cmd)
}

func newRootCmd() *cobra.Command {
	cmd := cli.NewCommand("pstops", "[OPTION...] [INFILE [OUTFILE]]",
		"Rearrange pages of a PostScript document.")
	cmd.Long = cmd.Short + "\n" + epilog
	cmd.Args = cobra.MaximumNArgs(2)

	flags := cmd.Flags()
	flags.StringP("specs", "S", "0", "page specifications (see below)")
	flags.StringP("pages", "R", "", "select the given page ranges")
	flags.BoolP("even", "e", false, "select even-numbered output pages")
	flags.BoolP("odd", "o", false, "select odd-numbered output pages")
	flags.BoolP("reverse", "r", false, "reverse the order of the output pages")
	cli.AddPaperFlags(flags)
	cli.AddDrawFlag(flags)
	flags.BoolP("nobind", "b", false, "disable PostScript bind operators in the procset")
	flags.MarkHidden("nobind")
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

// readOptions converts the command line arguments into a job.
// Errors in the page specification are reported before the input is read.
func readOptions(cmd *cobra.Command, args []string) (*cli.Job, error) {
	flags := cmd.Flags()

	size, inSize, err := cli.ReadPaper(flags)
	if err != nil {
		return nil, err
	}

	specText, _ := flags.GetString("specs")
	spec, err := pagespec.Parse(specText, size)
	if err != nil {
		return nil, err
	}

	var ranges []pagerange.Range
	if flags.Changed("pages") {
		rangeText, _ := flags.GetString("pages")
		ranges, err = pagerange.Parse(rangeText)
		if err != nil {
			return nil, err
		}
	}

	opt := &pstops.Options{
		Spec:        spec,
		Pages:       ranges,
		PaperSize:   size,
		InPaperSize: inSize,
		Draw:        cli.ReadDraw(flags),
	}
	opt.Filter.Even, _ = flags.GetBool("even")
	opt.Filter.Odd, _ = flags.GetBool("odd")
	opt.Filter.Reverse, _ = flags.GetBool("reverse")
	opt.NoBind, _ = flags.GetBool("nobind")

	job, err := cli.NewJob(cmd, args)
	if err != nil {
		return nil, err
	}
	job.Setup = func(*dsc.Table) (*pstops.Options, error) {
		return opt, nil
	}
	return job, nil
}
