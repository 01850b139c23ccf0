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

package paper

import (
	"errors"
	"strconv"

	"seehuhn.de/go/geom/rect"
)

// ErrNoSize indicates that a dimension relative to the page size was used
// while no page size was known.
var ErrNoSize = errors.New("page size not set, and could not get default paper size")

// DimenError is returned when a dimension cannot be parsed.
type DimenError struct {
	Text string
	Err  error
}

func (err *DimenError) Error() string {
	if err.Err != nil {
		return "dimension `" + err.Text + "': " + err.Err.Error()
	}
	return "bad dimension `" + err.Text + "'"
}

func (err *DimenError) Unwrap() error {
	return err.Err
}

// ParseDimen converts a dimension like "1.5in" or "-2cm" to points.
//
// A dimension is a decimal number, optionally followed by one of the units
// pt, in, cm or mm.  A number without a unit is in points.  The units w and
// h denote multiples of the width or height of size; in this case size
// must be non-nil.
func ParseDimen(text string, size *rect.Rect) (float64, error) {
	n := scanNumber(text)
	if n == 0 {
		return 0, &DimenError{Text: text}
	}
	num, err := strconv.ParseFloat(text[:n], 64)
	if err != nil {
		return 0, &DimenError{Text: text}
	}

	switch unit := text[n:]; unit {
	case "", "pt":
		// pass
	case "in":
		num *= 72
	case "cm":
		num *= 28.346456692913385211
	case "mm":
		num *= 2.8346456692913385211
	case "w", "h":
		if size == nil {
			return 0, &DimenError{Text: text, Err: ErrNoSize}
		}
		if unit == "w" {
			num *= size.Dx()
		} else {
			num *= size.Dy()
		}
	default:
		return 0, &DimenError{Text: text}
	}
	return num, nil
}

// ParseDraw interprets the argument of a "draw border" option.
// An empty string means a line width of 1pt.
func ParseDraw(text string) (float64, error) {
	if text == "" {
		text = "1"
	}
	return ParseDimen(text, nil)
}

// scanNumber returns the length of the longest prefix of s which is a
// number in the format accepted by C's strtod(), without hexadecimal and
// special values.  The result is 0 if s does not start with a number.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	hasDigits := i > intStart
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > i+1 {
			hasDigits = true
		}
		if hasDigits {
			i = j
		}
	}
	if !hasDigits {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > expStart {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
