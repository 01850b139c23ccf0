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

// Psnup puts multiple pages of a PostScript document onto each sheet.
//
// Usage:
//
//	psnup [OPTION...] -NUMBER [INFILE [OUTFILE]]
//
// The number of pages per sheet can be given either as -NUMBER, for
// example -4, or with the --nup option.
package main

import (
	"errors"
	"os"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/dsc"
	"seehuhn.de/go/psutils/nup"
	"seehuhn.de/go/psutils/pstops"
	"seehuhn.de/go/psutils/tools/internal/cli"
)

var (
	errNupMissing = errors.New("number of pages per sheet must be given")
	errNupZero    = errors.New("number of pages per sheet must be greater than 0")
)

func main() {
	cmd := newRootCmd()
	cmd.SetArgs(expandArgs(os.Args[1:]))
	cli.Main(cmd)
}

var numberArg = regexp.MustCompile(`^-[0-9]+$`)

// expandArgs replaces the traditional -NUMBER argument by --nup=NUMBER,
// and rewrites the -d option as described for [cli.ExpandDrawArgs].
func expandArgs(args []string) []string {
	res := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			res = append(res, args[i:]...)
			break
		}
		if numberArg.MatchString(arg) {
			arg = "--nup=" + arg[1:]
		}
		res = append(res, arg)
	}
	return cli.ExpandDrawArgs(res)
}

// toggle is a boolean flag which changes its value each time it is given.
type toggle bool

func (t *toggle) String() string {
	return strconv.FormatBool(bool(*t))
}

func (t *toggle) Set(string) error {
	*t = !*t
	return nil
}

func (t *toggle) Type() string {
	return "bool"
}

func newRootCmd() *cobra.Command {
	cmd := cli.NewCommand("psnup", "[OPTION...] -NUMBER [INFILE [OUTFILE]]",
		"Put multiple pages of a PostScript document on to one page.")
	cmd.Args = cobra.MaximumNArgs(2)

	flags := cmd.Flags()
	flags.IntP("nup", "N", 0, "number of pages to impose on each output page")
	cli.AddPaperFlags(flags)
	flags.VarP(&cli.DimenValue{}, "margin", "m", "width of margin around each output page\n"+
		"[default 0pt]; useful for thumbnail sheets,\n"+
		"as the original page margins will be shrunk")
	flags.VarP(&cli.DimenValue{}, "border", "b", "width of border around each input page")
	cli.AddDrawFlag(flags)
	for _, f := range []struct{ name, short, usage string }{
		{"rotatedleft", "l", "input pages are rotated left 90 degrees"},
		{"rotatedright", "r", "input pages are rotated right 90 degrees"},
		{"flip", "f", "swap output pages' width and height"},
		{"transpose", "c", "swap columns and rows (column-major order)"},
	} {
		var t toggle
		flags.VarP(&t, f.name, f.short, f.usage)
		flags.Lookup(f.name).NoOptDefVal = "true"
	}
	flags.IntP("tolerance", "t", nup.DefaultTolerance, "maximum wasted area in square pt")
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

	if !flags.Changed("nup") {
		return nil, errNupMissing
	}
	n, _ := flags.GetInt("nup")
	if n <= 0 {
		return nil, errNupZero
	}
	size, inSize, err := cli.ReadPaper(flags)
	if err != nil {
		return nil, err
	}
	tolerance, _ := flags.GetInt("tolerance")

	p := &nup.Params{
		N:            n,
		Margin:       flags.Lookup("margin").Value.(*cli.DimenValue).Value,
		Border:       flags.Lookup("border").Value.(*cli.DimenValue).Value,
		Tolerance:    float64(tolerance),
		RotatedLeft:  isToggled(cmd, "rotatedleft"),
		RotatedRight: isToggled(cmd, "rotatedright"),
		Flip:         isToggled(cmd, "flip"),
		ColumnMajor:  isToggled(cmd, "transpose"),
	}
	opt, err := cli.ImposeOptions(p, size, inSize, cli.ReadDraw(flags))
	if err != nil {
		return nil, err
	}

	job, err := cli.NewJob(cmd, args)
	if err != nil {
		return nil, err
	}
	job.Common.Logger.Debug("layout", "n", n, "spec", opt.Spec.String())
	job.Setup = func(*dsc.Table) (*pstops.Options, error) {
		return opt, nil
	}
	return job, nil
}

func isToggled(cmd *cobra.Command, name string) bool {
	return bool(*cmd.Flags().Lookup(name).Value.(*toggle))
}
