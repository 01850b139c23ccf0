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

// Licensify adds the license header to all Go source files of the
// module.  Run it from the module root.
package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/psutils/tools/internal/buildinfo"
)

const header = `// seehuhn.de/go/psutils - rearrange pages of PostScript documents
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

`

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "licensify:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "licensify [--check] [DIR]",
		Short:         "Add the license header to Go source files.",
		Version:       buildinfo.Short("licensify"),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.Flags().Bool("check", false, "only list files without header, don't modify them")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		check, _ := cmd.Flags().GetBool("check")
		missing, err := licensify(root, check, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if check && missing > 0 {
			return fmt.Errorf("%d files without license header", missing)
		}
		return nil
	}
	return cmd
}

// licensify adds the header to all Go files below root which lack it.
// If check is set, the files are only listed.  The function returns the
// number of files which lacked the header.
func licensify(root string, check bool, log io.Writer) (int, error) {
	missing := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		newBody, ok := addHeader(body)
		if !ok {
			fmt.Fprintln(log, "ATTENTION "+path)
			return nil
		}
		if newBody == nil {
			return nil
		}

		missing++
		if check {
			fmt.Fprintln(log, "missing "+path)
			return nil
		}
		fmt.Fprintln(log, "updating "+path)
		return os.WriteFile(path, newBody, 0o644)
	})
	return missing, err
}

// addHeader returns body with the license header prepended.  The result
// is nil if body already has the header.  The second return value is
// false if body starts with something other than the package clause,
// for example with a different comment, and must be checked manually.
func addHeader(body []byte) ([]byte, bool) {
	if bytes.HasPrefix(body, []byte(header)) {
		return nil, true
	}
	if !bytes.HasPrefix(body, []byte("package ")) {
		return nil, false
	}
	res := make([]byte, 0, len(header)+len(body))
	res = append(res, header...)
	res = append(res, body...)
	return res, true
}
