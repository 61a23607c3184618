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


package testfont

import (
	"bytes"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/sfnt"
)

// GoRegularData is the binary sfnt data of the Go Regular font.
// It has glyf outlines, a GSUB table with ligatures and no icons.
var GoRegularData = goregular.TTF

// GoRegular returns a freshly decoded copy of the Go Regular font.
// Callers may modify the returned font.
func GoRegular() *sfnt.Font {
	f, err := sfnt.Read(bytes.NewReader(GoRegularData))
	if err != nil {
		panic(err)
	}
	return f
}
