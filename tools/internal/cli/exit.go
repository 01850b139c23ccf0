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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/epsf"
	"seehuhn.de/go/psutils/pagerange"
	"seehuhn.de/go/psutils/pstops"
	"seehuhn.de/go/psutils/resource"
	"seehuhn.de/go/psutils/tools/internal/buildinfo"
)

// NewCommand returns a root command with the settings shared by all tools.
// The help option has no short form, so that -h is free for --height.
func NewCommand(name, usage, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name + " " + usage,
		Short:         short,
		Version:       buildinfo.Short(name),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetVersionTemplate(buildinfo.Banner(name))
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\nTry '%s --help' for more information", err, c.Name())
	})
	cmd.Flags().SortFlags = false
	cmd.Flags().Bool("help", false, "show this help message and exit")
	return cmd
}

// ExitCode returns the exit status for a failed run.  Errors in the
// input document exit with status 2.  These are invalid page ranges, I/O
// errors while rewriting, EPS files without bounding box and resources
// without a usable name.  All other errors exit with status 1.
func ExitCode(err error) int {
	var rangeErr *pagerange.OutOfRangeError
	var ioErr *pstops.IOError
	var nameErr *resource.NameError
	if errors.As(err, &rangeErr) || errors.As(err, &ioErr) ||
		errors.As(err, &nameErr) || errors.Is(err, epsf.ErrNoBoundingBox) {
		return 2
	}
	return 1
}

// Main runs cmd and terminates the program if an error occurs.
func Main(cmd *cobra.Command) {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.Name(), err)
		os.Exit(ExitCode(err))
	}
}
