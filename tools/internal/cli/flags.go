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

// Package cli contains the code shared by the psutils command line tools.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/psutils/paper"
)

// Common holds the options understood by all tools.
type Common struct {
	Quiet      bool
	Logger     *slog.Logger
	CPUProfile string
	MemProfile string
}

// AddCommonFlags registers the options understood by all tools.
func AddCommonFlags(flags *pflag.FlagSet) {
	flags.BoolP("quiet", "q", false, "don't show page numbers being output")
	flags.String("log-level", "warn", "show diagnostic messages at `LEVEL` (debug, info, warn, error)")
	flags.String("cpuprofile", "", "write CPU profile to `FILE`")
	flags.String("memprofile", "", "write memory profile to `FILE`")
	flags.MarkHidden("cpuprofile")
	flags.MarkHidden("memprofile")
}

// ReadCommon reads the options registered by [AddCommonFlags].
// Log messages are written to logOut.
func ReadCommon(flags *pflag.FlagSet, logOut io.Writer) (*Common, error) {
	c := &Common{}
	c.Quiet, _ = flags.GetBool("quiet")
	c.CPUProfile, _ = flags.GetString("cpuprofile")
	c.MemProfile, _ = flags.GetString("memprofile")

	levelName, _ := flags.GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", levelName)
	}
	h := slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})
	c.Logger = slog.New(h)
	return c, nil
}

// PaperValue is a flag value holding a paper size, given either as a paper
// name or as WIDTHxHEIGHT.
type PaperValue struct {
	Size *rect.Rect
	text string
}

func (v *PaperValue) String() string {
	return v.text
}

func (v *PaperValue) Set(s string) error {
	r, err := paper.Parse(s)
	if err != nil {
		return err
	}
	v.Size = &r
	v.text = s
	return nil
}

func (v *PaperValue) Type() string {
	return "PAPER"
}

// DimenValue is a flag value holding a length, converted to points.
type DimenValue struct {
	Value float64
	IsSet bool
}

func (v *DimenValue) String() string {
	if !v.IsSet {
		return ""
	}
	return strconv.FormatFloat(v.Value, 'f', -1, 64)
}

func (v *DimenValue) Set(s string) error {
	x, err := paper.ParseDimen(s, nil)
	if err != nil {
		return err
	}
	v.Value = x
	v.IsSet = true
	return nil
}

func (v *DimenValue) Type() string {
	return "DIMEN"
}

// DrawValue is the value of the --draw option.  The option can be given
// without a value, to draw lines of width 1pt.
type DrawValue float64

func (v *DrawValue) String() string {
	if *v == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(*v), 'f', -1, 64)
}

func (v *DrawValue) Set(s string) error {
	x, err := paper.ParseDraw(s)
	if err != nil {
		return err
	}
	*v = DrawValue(x)
	return nil
}

func (v *DrawValue) Type() string {
	return "DIMEN"
}

// AddDrawFlag registers the --draw option.
func AddDrawFlag(flags *pflag.FlagSet) {
	var v DrawValue
	flags.VarP(&v, "draw", "d", "draw a line of given width (relative to original\npage) around each page [argument defaults to 1pt;\ndefault is no line]")
	flags.Lookup("draw").NoOptDefVal = "1pt"
}

// ExpandDrawArgs rewrites the -d option in args, so that its optional
// argument can be given as -dWIDTH or as -d WIDTH.  The argument following
// a bare -d or --draw is taken as the line width only if it is a valid
// dimension.
func ExpandDrawArgs(args []string) []string {
	res := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(res, args[i:]...)
		case arg == "-d" || arg == "--draw":
			arg = "--draw"
			if i+1 < len(args) && isDrawWidth(args[i+1]) {
				i++
				arg += "=" + args[i]
			}
		case strings.HasPrefix(arg, "-d"):
			arg = "--draw=" + strings.TrimPrefix(arg[2:], "=")
		}
		res = append(res, arg)
	}
	return res
}

func isDrawWidth(arg string) bool {
	if arg == "" || arg[0] == '-' {
		return false
	}
	_, err := paper.ParseDraw(arg)
	return err == nil
}

// ReadDraw returns the line width given by the --draw option.
func ReadDraw(flags *pflag.FlagSet) float64 {
	return float64(*flags.Lookup("draw").Value.(*DrawValue))
}

// AddPaperFlags registers the page size options of pstops and psnup.
// The single dimension options are kept for compatibility and are not
// shown in the help text.
func AddPaperFlags(flags *pflag.FlagSet) {
	flags.VarP(&PaperValue{}, "paper", "p", "output paper name or dimensions (WIDTHxHEIGHT)")
	flags.VarP(&PaperValue{}, "inpaper", "P", "input paper name or dimensions (WIDTHxHEIGHT)")
	flags.VarP(&DimenValue{}, "width", "w", "output page width")
	flags.VarP(&DimenValue{}, "height", "h", "output page height")
	flags.VarP(&DimenValue{}, "inwidth", "W", "input page width")
	flags.VarP(&DimenValue{}, "inheight", "H", "input page height")
	for _, name := range []string{"width", "height", "inwidth", "inheight"} {
		flags.MarkHidden(name)
	}
}

// ReadPaper returns the output and input page sizes given by the options
// registered by [AddPaperFlags].  Sizes which were not given are nil.
func ReadPaper(flags *pflag.FlagSet) (size, inSize *rect.Rect, err error) {
	size, err = pickSize(flags, "paper", "width", "height", "output")
	if err != nil {
		return nil, nil, err
	}
	inSize, err = pickSize(flags, "inpaper", "inwidth", "inheight", "input")
	if err != nil {
		return nil, nil, err
	}
	return size, inSize, nil
}

// ReadPaperValue returns the page size given by a [PaperValue] option,
// or nil if the option was not used.
func ReadPaperValue(flags *pflag.FlagSet, name string) *rect.Rect {
	return flags.Lookup(name).Value.(*PaperValue).Size
}

func pickSize(flags *pflag.FlagSet, paperName, wName, hName, which string) (*rect.Rect, error) {
	if size := ReadPaperValue(flags, paperName); size != nil {
		return size, nil
	}
	w := flags.Lookup(wName).Value.(*DimenValue)
	h := flags.Lookup(hName).Value.(*DimenValue)
	if w.IsSet != h.IsSet {
		return nil, errors.New(which + " page width and height must both be set, or neither")
	}
	if !w.IsSet {
		return nil, nil
	}
	return &rect.Rect{URx: w.Value, URy: h.Value}, nil
}
