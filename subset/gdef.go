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

package subset

import (
	"seehuhn.de/go/sfnt/opentype/gdef"
)

// subsetGdef rewrites the glyph classes of a GDEF table.  Mark glyph sets
// keep their positions, because lookups refer to them by index.
func subsetGdef(t *gdef.Table, m *Mapping) *gdef.Table {
	if t == nil {
		return nil
	}
	res := &gdef.Table{
		GlyphClass:      remapClasses(t.GlyphClass, m),
		MarkAttachClass: remapClasses(t.MarkAttachClass, m),
	}
	for _, set := range t.MarkGlyphSets {
		res.MarkGlyphSets = append(res.MarkGlyphSets, remapCoverage(set, m))
	}
	return res
}
