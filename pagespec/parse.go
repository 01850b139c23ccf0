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

package pagespec

import (
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/psutils/paper"
)

// Parse compiles a page specification.
//
// Offsets are dimensions in the format understood by [paper.ParseDimen];
// the units "w" and "h" refer to size, which may be nil if unknown.
// Invalid specifications give a [*SyntaxError], invalid offsets a
// [*paper.DimenError].
func Parse(text string, size *rect.Rect) (*Spec, error) {
	spec := &Spec{Modulo: 1}

	body := text
	if modText, rest, ok := strings.Cut(text, ":"); ok {
		modulo, err := strconv.Atoi(modText)
		if err != nil || modulo < 1 {
			return nil, &SyntaxError{Spec: text, Reason: "invalid modulo " + strconv.Quote(modText)}
		}
		spec.Modulo = modulo
		body = rest
	}

	for _, tText := range splitTemplates(body) {
		var t Template
		for _, lText := range strings.Split(tText, "+") {
			l, err := parseLayer(lText, size)
			if err != nil {
				if syntaxErr, ok := err.(*SyntaxError); ok {
					syntaxErr.Spec = text
				}
				return nil, err
			}
			if l.Page >= spec.Modulo {
				return nil, &SyntaxError{
					Spec:   text,
					Reason: fmt.Sprintf("page number %d is not less than modulo %d", l.Page, spec.Modulo),
				}
			}
			if l.HFlip || l.VFlip {
				spec.Flipping = true
			}
			t = append(t, l)
		}
		spec.Templates = append(spec.Templates, t)
	}

	return spec, nil
}

// splitTemplates splits s at all commas which are not enclosed in
// parentheses.
func splitTemplates(s string) []string {
	var res []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				res = append(res, s[start:i])
				start = i + 1
			}
		}
	}
	return append(res, s[start:])
}

func parseLayer(text string, size *rect.Rect) (Layer, error) {
	l := Layer{Scale: 1}
	s := text

	if strings.HasPrefix(s, "-") {
		l.Reversed = true
		s = s[1:]
	}

	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return l, layerError(text, "missing page number")
	}
	page, err := strconv.Atoi(s[:n])
	if err != nil {
		return l, layerError(text, "invalid page number")
	}
	l.Page = page
	s = s[n:]

modifiers:
	for len(s) > 0 {
		switch s[0] {
		case 'L', 'l':
			l.Rotate += 90
		case 'R', 'r':
			l.Rotate -= 90
		case 'U', 'u':
			l.Rotate += 180
		case 'H', 'h':
			l.HFlip = !l.HFlip
		case 'V', 'v':
			l.VFlip = !l.VFlip
		default:
			break modifiers
		}
		s = s[1:]
	}
	if l.HFlip && l.VFlip {
		l.HFlip = false
		l.VFlip = false
		l.Rotate += 180
	}
	l.Rotate = normalizeAngle(l.Rotate)

	if strings.HasPrefix(s, "@") {
		end := strings.IndexByte(s, '(')
		if end < 0 {
			end = len(s)
		}
		scaleText := s[1:end]
		if scaleText == "" || strings.Contains(scaleText, ")") {
			return l, layerError(text, "missing scale factor")
		}
		scale, err := strconv.ParseFloat(scaleText, 64)
		if err != nil {
			return l, layerError(text, "invalid scale factor "+strconv.Quote(scaleText))
		}
		l.Scale = scale
		s = s[end:]
	}

	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return l, layerError(text, "unterminated offset")
		}
		xText, yText, ok := strings.Cut(s[1:len(s)-1], ",")
		if !ok || strings.ContainsAny(yText, ",()") || strings.ContainsAny(xText, "()") {
			return l, layerError(text, "offset must have the form (XOFF,YOFF)")
		}
		l.XOff, err = paper.ParseDimen(xText, size)
		if err != nil {
			return l, err
		}
		l.YOff, err = paper.ParseDimen(yText, size)
		if err != nil {
			return l, err
		}
		s = ""
	}

	if s != "" {
		return l, layerError(text, "unexpected "+strconv.Quote(s))
	}
	return l, nil
}

func layerError(layer, reason string) error {
	return &SyntaxError{Reason: "in " + strconv.Quote(layer) + ": " + reason}
}

// SyntaxError is returned by [Parse] for malformed page specifications.
type SyntaxError struct {
	Spec   string
	Reason string
}

func (err *SyntaxError) Error() string {
	return "bad page specification `" + err.Spec + "': " + err.Reason
}
