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
	"testing"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/iconsubset/shape"
)

func TestShaperFeatures(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"calt", "alarm.alt"},
		{"rlig", "alarm.alt"},
		{"ss01", "alarm"},
		{"salt", "alarm"},
	}
	for _, tc := range tests {
		t.Run(tc.tag, func(t *testing.T) {
			f := IconFont("alarm")
			alarm := GID(f, "alarm")
			alt := AddGlyph(f, "alarm.alt")
			AddLookup(f, tc.tag, &gtab.Gsub1_2{
				Cov:                coverage.Table{alarm: 0},
				SubstituteGlyphIDs: []glyph.ID{alt},
			})

			shaper, err := NewShaper(f)
			if err != nil {
				t.Fatal(err)
			}
			gg, err := shaper.Shape("alarm")
			if err != nil {
				t.Fatal(err)
			}
			if got := Describe(f, shape.GIDs(gg)); got != tc.want {
				t.Errorf("alarm shapes to %q, want %q", got, tc.want)
			}
		})
	}
}
