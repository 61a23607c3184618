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
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
)

func subsetGlyf(outlines *glyf.Outlines, m *Mapping) *glyf.Outlines {
	o2 := &glyf.Outlines{}
	*o2 = *outlines
	o2.Glyphs = nil
	o2.Widths = nil
	o2.Names = nil

	for _, gid := range m.newToOld {
		o2.Glyphs = append(o2.Glyphs, outlines.Glyphs[gid].FixComponents(m.oldToNew))
		if int(gid) < len(outlines.Widths) {
			o2.Widths = append(o2.Widths, outlines.Widths[gid])
		}
		if int(gid) < len(outlines.Names) {
			o2.Names = append(o2.Names, outlines.Names[gid])
		}
	}
	if len(o2.Widths) != len(o2.Glyphs) {
		o2.Widths = nil
	}
	if len(o2.Names) != len(o2.Glyphs) {
		o2.Names = nil
	}
	return o2
}

func subsetCFF(outlines *cff.Outlines, m *Mapping) *cff.Outlines {
	o2 := &cff.Outlines{}
	*o2 = *outlines
	o2.Glyphs = outlines.Glyphs[:0:0]
	o2.Private = outlines.Private[:0:0]
	if outlines.FontMatrices != nil {
		o2.FontMatrices = outlines.FontMatrices[:0:0]
	}

	pIdxMap := make(map[int]int)
	fdSel := make(map[glyph.ID]int)
	for subsetGID, gid := range m.newToOld {
		o2.Glyphs = append(o2.Glyphs, outlines.Glyphs[gid])
		oldPIdx := 0
		if outlines.FDSelect != nil {
			oldPIdx = outlines.FDSelect(gid)
		}
		if _, ok := pIdxMap[oldPIdx]; !ok {
			pIdxMap[oldPIdx] = len(o2.Private)
			o2.Private = append(o2.Private, outlines.Private[oldPIdx])
			if outlines.FontMatrices != nil {
				o2.FontMatrices = append(o2.FontMatrices, outlines.FontMatrices[oldPIdx])
			}
		}
		fdSel[glyph.ID(subsetGID)] = pIdxMap[oldPIdx]
	}
	o2.FDSelect = func(gid glyph.ID) int { return fdSel[gid] }

	if outlines.GIDToCID != nil {
		o2.GIDToCID = outlines.GIDToCID[:0:0]
		for _, gid := range m.newToOld {
			o2.GIDToCID = append(o2.GIDToCID, outlines.GIDToCID[gid])
		}
	}

	if outlines.Encoding != nil {
		o2.Encoding = make([]glyph.ID, len(outlines.Encoding))
		for code, old := range outlines.Encoding {
			o2.Encoding[code], _ = m.New(old)
		}
	}

	return o2
}
