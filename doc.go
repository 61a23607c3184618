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

// Package iconsubset reduces an icon font to a given list of icons.
//
// In icon fonts like Material Icons, every icon is a ligature: typing the
// icon name, for example "alarm_on", produces a single glyph.  Subsetting
// such a font to a list of icon names keeps three groups of glyphs:
//
//   - the icon glyphs, one for each name,
//   - the glyphs of the characters used in the names, shaped one by one,
//   - all glyphs which the substitution rules can produce from the icon
//     glyphs.
//
// The substitution closure starts from the icon glyphs only.  Starting from
// the characters instead would also keep every icon whose name uses the
// same letters, for example "alarm" when only "alarm_on" was requested.
//
// A typical use is
//
//	res, err := iconsubset.SubsetFile("icons.ttf", "", []string{"alarm_on", "menu"}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Path)
//
// The command line tool in tools/subset-icons wraps [SubsetFile].
package iconsubset
