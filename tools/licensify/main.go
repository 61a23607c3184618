// seehuhn.de/go/iconsubset - select glyphs for icon font subsets
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

// Licensify adds the GPL header to all Go source files below the current
// directory which don't have it yet.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const header = `// seehuhn.de/go/iconsubset - select glyphs for icon font subsets
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
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(path) {
				fmt.Println("skip " + path)
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
		out, changed, err := addHeader(body)
		if err != nil {
			fmt.Println("ATTENTION " + path)
			return nil
		}
		if !changed {
			return nil
		}

		fmt.Println("updating " + path)
		return os.WriteFile(path, out, 0o644)
	})
	if err != nil {
		log.Fatal(err)
	}
}

// skipDir reports whether a directory holds code which is not covered by
// the project license.
func skipDir(path string) bool {
	base := filepath.Base(path)
	if base == "." {
		return false
	}
	return strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".") ||
		base == "testdata"
}

// addHeader prepends the license header to a Go source file.
// Files which already carry the header are returned unchanged.
// An error is returned for files which start with something other than
// the package clause, since these need to be inspected by hand.
func addHeader(body []byte) ([]byte, bool, error) {
	if bytes.HasPrefix(body, []byte(header)) {
		return body, false, nil
	}
	if !bytes.HasPrefix(body, []byte("package ")) {
		return nil, false, errUnexpectedStart
	}
	out := make([]byte, 0, len(header)+len(body))
	out = append(out, header...)
	out = append(out, body...)
	return out, true, nil
}

var errUnexpectedStart = errors.New("file does not start with a package clause")
