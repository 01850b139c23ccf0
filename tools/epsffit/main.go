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


// Epsffit fits an Encapsulated PostScript file to a given bounding box.
//
// Usage:
//
//	epsffit [OPTION...] LLX LLY URX URY [INFILE [OUTFILE]]
//
// The coordinates of the box may be given with units, for example 2cm.
package main

import (
	"io"

	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/psutils/epsf"
	"seehuhn.de/go/psutils/paper"
	"seehuhn.de/go/psutils/tools/internal/cli"
)

func main() {
	cli.Main(newRootCmd())
}

func newRootCmd() *cobra.Command {
	cmd := cli.NewCommand("epsffit", "[OPTION...] LLX LLY URX URY [INFILE [OUTFILE]]",
		"Fit an Encapsulated PostScript file to a given bounding box.")
	cmd.Args = cobra.RangeArgs(4, 6)

	flags := cmd.Flags()
	center := flags.BoolP("center", "c", false, "center the image in the given bounding box")
	flags.BoolVar(center, "centre", false, "center the image in the given bounding box")
	flags.MarkHidden("centre")
	flags.BoolP("rotate", "r", false, "rotate the image by 90 degrees counter-clockwise")
	flags.BoolP("aspect", "a", false, "adjust the aspect ratio to fit the bounding box")
	maximize := flags.BoolP("maximize", "m", false, "rotate the image to fill more of the page if possible")
	flags.BoolVar(maximize, "maximise", false, "rotate the image to fill more of the page if possible")
	flags.MarkHidden("maximise")
	flags.BoolP("showpage", "s", false, "append a /showpage to the file to force printing")
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

	var x [4]float64
	for i, arg := range args[:4] {
		v, err := paper.ParseDimen(arg, nil)
		if err != nil {
			return nil, err
		}
		x[i] = v
	}

	opt := &epsf.Options{
		Box: rect.Rect{LLx: x[0], LLy: x[1], URx: x[2], URy: x[3]},
	}
	opt.Center, _ = flags.GetBool("center")
	opt.Rotate, _ = flags.GetBool("rotate")
	opt.Aspect, _ = flags.GetBool("aspect")
	opt.Maximize, _ = flags.GetBool("maximize")
	opt.ShowPage, _ = flags.GetBool("showpage")

	job, err := cli.NewJob(cmd, args[4:])
	if err != nil {
		return nil, err
	}
	job.Convert = func(w io.Writer, r io.Reader) error {
		return epsf.Fit(w, r, opt)
	}
	return job, nil
}
