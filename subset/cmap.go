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
	"encoding/binary"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// subsetCMap returns a cmap table for the subset font.  Every code point
// of the original font which maps to a kept glyph is carried over.
func subsetCMap(table cmap.Table, m *Mapping) cmap.Table {
	codes := remapCodes(table, m)
	if len(codes) == 0 {
		return nil
	}

	bmp := cmap.Format4{}
	wide := false
	for r, gid := range codes {
		if r > 0xFFFF {
			wide = true
			continue
		}
		bmp[uint16(r)] = gid
	}

	res := cmap.Table{}
	if len(bmp) > 0 {
		data := bmp.Encode(0)
		res[cmap.Key{PlatformID: 0, EncodingID: 3}] = data
		res[cmap.Key{PlatformID: 3, EncodingID: 1}] = data
	}
	if wide {
		data := encodeFormat12(codes, 0)
		res[cmap.Key{PlatformID: 0, EncodingID: 4}] = data
		res[cmap.Key{PlatformID: 3, EncodingID: 10}] = data
	}
	return res
}

// remapCodes returns the character map of the subset font, from code points
// to new glyph IDs.
func remapCodes(table cmap.Table, m *Mapping) map[rune]glyph.ID {
	if table == nil {
		return nil
	}
	sub, err := table.GetBest()
	if err != nil {
		return nil
	}

	res := make(map[rune]glyph.ID)
	low, high := sub.CodeRange()
	for r := low; r <= high; r++ {
		old := sub.Lookup(r)
		if old == 0 {
			continue
		}
		if gid, ok := m.New(old); ok {
			res[r] = gid
		}
	}
	return res
}

// encodeFormat12 encodes a segmented coverage subtable, for fonts which map
// code points outside the Basic Multilingual Plane.
func encodeFormat12(codes map[rune]glyph.ID, language uint32) []byte {
	type segment struct {
		start, end rune
		gid        glyph.ID
	}

	rr := maps.Keys(codes)
	slices.Sort(rr)
	var segments []segment
	for _, r := range rr {
		gid := codes[r]
		if k := len(segments) - 1; k >= 0 {
			seg := &segments[k]
			if r == seg.end+1 && gid == seg.gid+glyph.ID(r-seg.start) {
				seg.end = r
				continue
			}
		}
		segments = append(segments, segment{start: r, end: r, gid: gid})
	}

	l := 16 + 12*len(segments)
	out := make([]byte, l)
	binary.BigEndian.PutUint16(out[0:], 12)
	binary.BigEndian.PutUint32(out[4:], uint32(l))
	binary.BigEndian.PutUint32(out[8:], language)
	binary.BigEndian.PutUint32(out[12:], uint32(len(segments)))
	for i, seg := range segments {
		base := 16 + 12*i
		binary.BigEndian.PutUint32(out[base:], uint32(seg.start))
		binary.BigEndian.PutUint32(out[base+4:], uint32(seg.end))
		binary.BigEndian.PutUint32(out[base+8:], uint32(seg.gid))
	}
	return out
}
