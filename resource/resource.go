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


// Package resource moves DSC resources between documents and files.
//
// [Extract] replaces the fonts, procsets and other resources embedded in
// a document by %%IncludeResource: comments, and saves the resources as
// separate files.  [Include] does the reverse.
package resource

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extension returns the file name extension used for resources of the
// given type.
func Extension(resourceType string) string {
	switch resourceType {
	case "font":
		return ".pfa"
	case "file", "procset":
		return ".ps"
	case "pattern":
		return ".pat"
	case "form":
		return ".frm"
	case "encoding":
		return ".enc"
	}
	return ""
}

// NameError is returned if no file name can be formed for a resource.
type NameError struct {
	Resource string
}

func (err *NameError) Error() string {
	return "filename not found for resource " + err.Resource
}

// FileName returns the name of the file which holds the resource
// described by components.  Characters which are special to the shell
// and directory names are removed.
func FileName(components ...string) (string, error) {
	b := &strings.Builder{}
	for _, c := range components {
		for _, r := range c {
			if !strings.ContainsRune("!()$#*&\\|`'\"~{}[]<>?", r) {
				b.WriteRune(r)
			}
		}
	}
	name := b.String()
	name = name[strings.LastIndexByte(name, '/')+1:]
	if name == "" {
		return "", &NameError{Resource: strings.Join(components, " ")}
	}
	return name, nil
}

// ExtractOptions controls [Extract].
type ExtractOptions struct {
	// Dir is the directory for the resource files.  The empty string
	// denotes the current directory.
	Dir string

	// Merge joins resources of the same name into one file.  This is
	// needed for fonts which are written in several blocks.
	Merge bool
}

// target collects lines for one part of the output.  If file is set,
// the lines belong to a resource which is written to this file.
type target struct {
	lines  strings.Builder
	file   string
	append bool
}

// Extract copies the document from r to w, moving every resource into a
// file of its own.  Resources whose file already exists are removed from
// the document without overwriting the file.  The names of the files
// written are returned.
func Extract(w io.Writer, r io.Reader, opt *ExtractOptions) ([]string, error) {
	if opt == nil {
		opt = &ExtractOptions{}
	}

	prolog := &target{}
	body := &target{}
	out := prolog
	var stack []*target

	seen := make(map[string]bool)
	merge := make(map[string]bool)
	var written []string

	in := bufio.NewReader(r)
	for {
		line, err := in.ReadString('\n')
		if line == "" && err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}

		switch {
		case isBegin(line):
			fields := strings.Fields(line)
			resType, res := beginType(fields[0]), fields[1:]
			if resType == "" {
				if len(res) == 0 {
					break
				}
				resType, res = res[0], res[1:]
			}
			name, err := FileName(append(res[:len(res):len(res)], Extension(resType))...)
			if err != nil {
				return nil, err
			}
			path := filepath.Join(opt.Dir, name)

			stack = append(stack, out)
			switch {
			case !seen[name]:
				fmt.Fprintf(&prolog.lines, "%%%%IncludeResource: %s\n",
					strings.Join(append([]string{resType}, res...), " "))
				if _, err := os.Stat(path); err == nil {
					out = nil
					break
				}
				seen[name] = true
				merge[name] = opt.Merge
				out = &target{file: path}
			case merge[name]:
				out = &target{file: path, append: true}
			default:
				out = nil
			}

		case isEnd(line):
			if out != nil {
				out.lines.WriteString(line)
				if out.file != "" {
					err := out.save()
					if err != nil {
						return nil, err
					}
					written = append(written, out.file)
				}
			}
			if n := len(stack); n > 0 {
				out, stack = stack[n-1], stack[:n-1]
			}
			continue

		case strings.HasPrefix(line, "%%EndProlog"),
			strings.HasPrefix(line, "%%EndSetup"),
			strings.HasPrefix(line, "%%Page:"):
			out = body
		}
		if out != nil {
			out.lines.WriteString(line)
		}
	}

	_, err := io.WriteString(w, prolog.lines.String())
	if err == nil {
		_, err = io.WriteString(w, body.lines.String())
	}
	if err != nil {
		return nil, err
	}
	return written, nil
}

func (t *target) save() error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if t.append {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	fd, err := os.OpenFile(t.file, flags, 0o644)
	if err != nil {
		return fmt.Errorf("cannot write resource file %s: %w", t.file, err)
	}
	_, err = fd.WriteString(t.lines.String())
	err2 := fd.Close()
	if err == nil {
		err = err2
	}
	return err
}

func isBegin(line string) bool {
	return strings.HasPrefix(line, "%%BeginResource:") ||
		strings.HasPrefix(line, "%%BeginFont:") ||
		strings.HasPrefix(line, "%%BeginProcSet:")
}

func isEnd(line string) bool {
	return strings.HasPrefix(line, "%%EndResource") ||
		strings.HasPrefix(line, "%%EndFont") ||
		strings.HasPrefix(line, "%%EndProcSet")
}

// beginType returns the resource type implied by a begin comment, or ""
// if the type is given as the first argument.
func beginType(comment string) string {
	switch comment {
	case "%%BeginFile:":
		return "file"
	case "%%BeginProcSet:":
		return "procset"
	case "%%BeginFont:":
		return "font"
	}
	return ""
}

// Include copies the document from r to w, replacing every
// %%IncludeResource: comment by the contents of the resource file in
// directory dir.  Comments for resources which cannot be read are kept,
// and the names of these resources are returned.
func Include(w io.Writer, r io.Reader, dir string) (missing []string, err error) {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)
	for {
		line, err := in.ReadString('\n')
		if line == "" && err != nil {
			if err != io.EOF {
				return nil, err
			}
			break
		}

		fields := strings.Fields(line)
		if !strings.HasPrefix(line, "%%IncludeResource:") || len(fields) < 2 {
			out.WriteString(line)
			continue
		}
		resType, res := fields[1], fields[2:]
		name, err := FileName(res...)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			path += Extension(resType)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			out.WriteString("%%IncludeResource: " + strings.Join(fields[1:], " ") + "\n")
			missing = append(missing, name)
			continue
		}
		out.Write(data)
	}
	err = out.Flush()
	if err != nil {
		return nil, err
	}
	return missing, nil
}
