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
	"bufio"
	"os"
	"strings"

	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"
)

// letterRegions lists the regions where letter sized paper is the norm.
var letterRegions = map[string]bool{
	"US": true, "CA": true, "MX": true, "CL": true, "CO": true,
	"CR": true, "GT": true, "PA": true, "PH": true, "PR": true,
	"SV": true, "VE": true, "DO": true, "NI": true,
}

// Default returns the system default paper size.
//
// The paper name is taken from the environment variable PAPERSIZE, from the
// file named by PAPERCONF, from /etc/papersize, or finally derived from the
// region of the current locale.  The second return value is false if the
// name found this way is not a known paper size.
func Default() (rect.Rect, bool) {
	return Lookup(DefaultName())
}

// DefaultName returns the name of the system default paper size.
// See [Default] for how the name is determined.
func DefaultName() string {
	if name := strings.TrimSpace(os.Getenv("PAPERSIZE")); name != "" {
		return name
	}
	if fname := os.Getenv("PAPERCONF"); fname != "" {
		if name := readPaperFile(fname); name != "" {
			return name
		}
	}
	if name := readPaperFile("/etc/papersize"); name != "" {
		return name
	}
	return localePaper(localeName())
}

// readPaperFile returns the first paper name listed in a papersize file.
// Empty lines and lines starting with '#' are ignored.
func readPaperFile(fname string) string {
	fd, err := os.Open(fname)
	if err != nil {
		return ""
	}
	defer fd.Close()

	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		return fields[0]
	}
	return ""
}

func localeName() string {
	for _, key := range []string{"LC_ALL", "LC_PAPER", "LANG"} {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}

// localePaper maps a POSIX locale name like "en_US.UTF-8" to a paper name.
func localePaper(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "a4"
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "a4"
	}
	region, conf := tag.Region()
	if conf == language.No {
		return "a4"
	}
	if letterRegions[region.String()] {
		return "letter"
	}
	return "a4"
}
