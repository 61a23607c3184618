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
	"slices"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/iconsubset/shape"
)

// Shaper is a minimal shaping engine for the fonts in this package.
//
// Characters are mapped through the cmap table, and then the lookups of
// the features in [DefaultFeatures] are applied in lookup order.  Only
// single and ligature substitutions are applied, everything else is
// ignored.
type Shaper struct {
	cmap    cmap.Subtable
	lookups []*gtab.LookupTable
}

// DefaultFeatures lists the GSUB features which a shaping engine applies
// to horizontal text without being asked.
var DefaultFeatures = map[string]bool{
	"ccmp": true,
	"locl": true,
	"rlig": true,
	"liga": true,
	"clig": true,
	"calt": true,
}

// NewShaper returns a Shaper for f.
func NewShaper(f *sfnt.Font) (*Shaper, error) {
	sub, err := f.CMapTable.GetBest()
	if err != nil {
		return nil, err
	}
	s := &Shaper{cmap: sub}
	if f.Gsub != nil {
		var idx []gtab.LookupIndex
		for _, feature := range f.Gsub.FeatureList {
			if !DefaultFeatures[feature.Tag] {
				continue
			}
			idx = append(idx, feature.Lookups...)
		}
		slices.Sort(idx)
		idx = slices.Compact(idx)
		for _, i := range idx {
			if int(i) < len(f.Gsub.LookupList) {
				s.lookups = append(s.lookups, f.Gsub.LookupList[i])
			}
		}
	}
	return s, nil
}

// Shape implements the [shape.Shaper] interface.
func (s *Shaper) Shape(text string) ([]shape.Glyph, error) {
	var seq []shape.Glyph
	for i, r := range []rune(text) {
		seq = append(seq, shape.Glyph{GID: s.cmap.Lookup(r), Cluster: i})
	}

	for _, l := range s.lookups {
		var out []shape.Glyph
		for pos := 0; pos < len(seq); {
			n, g := applyAt(l, seq, pos)
			if n == 0 {
				out = append(out, seq[pos])
				pos++
				continue
			}
			out = append(out, g)
			pos += n
		}
		seq = out
	}
	return seq, nil
}

// applyAt tries the subtables of l at position pos.  It returns the number
// of glyphs consumed and the replacement glyph, or 0 if nothing applied.
func applyAt(l *gtab.LookupTable, seq []shape.Glyph, pos int) (int, shape.Glyph) {
	g := seq[pos]
	for _, subtable := range l.Subtables {
		switch st := subtable.(type) {
		case *gtab.Gsub1_1:
			if _, ok := st.Cov[g.GID]; ok {
				return 1, shape.Glyph{GID: g.GID + st.Delta, Cluster: g.Cluster}
			}
		case *gtab.Gsub1_2:
			if idx, ok := st.Cov[g.GID]; ok && idx < len(st.SubstituteGlyphIDs) {
				return 1, shape.Glyph{GID: st.SubstituteGlyphIDs[idx], Cluster: g.Cluster}
			}
		case *gtab.Gsub4_1:
			idx, ok := st.Cov[g.GID]
			if !ok || idx >= len(st.Repl) {
				continue
			}
		ligLoop:
			for _, lig := range st.Repl[idx] {
				if pos+1+len(lig.In) > len(seq) {
					continue
				}
				for k, gid := range lig.In {
					if seq[pos+1+k].GID != gid {
						continue ligLoop
					}
				}
				return 1 + len(lig.In), shape.Glyph{GID: lig.Out, Cluster: g.Cluster}
			}
		}
	}
	return 0, shape.Glyph{}
}
