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

package main

import (
	"bytes"
	"testing"
)

func TestAddHeader(t *testing.T) {
	src := []byte("package foo\n")

	out, changed, err := addHeader(src)
	if err != nil {
		t.Fatal(err)
	}
	if !changed || !bytes.HasPrefix(out, []byte(header)) || !bytes.HasSuffix(out, src) {
		t.Fatalf("header not added: %q", out)
	}

	again, changed, err := addHeader(out)
	if err != nil {
		t.Fatal(err)
	}
	if changed || !bytes.Equal(again, out) {
		t.Error("header added twice")
	}

	_, _, err = addHeader([]byte("// Copyright someone else\npackage foo\n"))
	if err != errUnexpectedStart {
		t.Errorf("got %v, want %v", err, errUnexpectedStart)
	}
}

func TestSkipDir(t *testing.T) {
	cases := map[string]bool{
		".":                 false,
		"subset":            false,
		"_examples":         true,
		".git":              true,
		"shape/testdata":    true,
		"tools/subset-icons": false,
	}
	for path, want := range cases {
		if got := skipDir(path); got != want {
			t.Errorf("skipDir(%q) = %t, want %t", path, got, want)
		}
	}
}
