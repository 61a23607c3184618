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

// Package testfont builds small icon fonts in memory, for use in tests.
//
// In a font returned by [IconFont], every icon name is a ligature of the
// glyphs for its characters, collected in a single "liga" lookup.  Further
// lookups can be added with [AddLookup] and [AddNested].
package testfont

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/postscript/funit"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"
)

// IconFont returns a font with one glyph for each character occurring in
// the icon names, and one ligature glyph for each icon.
//
// Character glyphs come first, in code point order, followed by the icon
// glyphs in the order given.  Glyph 0 is .notdef.
func IconFont(icons ...string) *sfnt.Font {
	charSet := make(map[rune]bool)
	for _, icon := range icons {
		for _, r := range icon {
			charSet[r] = true
		}
	}
	chars := maps.Keys(charSet)
	slices.Sort(chars)

	names := []string{".notdef"}
	cmap4 := cmap.Format4{}
	charGID := make(map[rune]glyph.ID, len(chars))
	for _, r := range chars {
		gid := glyph.ID(len(names))
		names = append(names, CharName(r))
		cmap4[uint16(r)] = gid
		charGID[r] = gid
	}

	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}
	iconGID := make(map[string]glyph.ID, len(icons))
	for _, icon := range icons {
		if _, dup := iconGID[icon]; dup {
			continue
		}
		name := icon
		if taken[name] {
			name += ".liga"
		}
		taken[name] = true
		iconGID[icon] = glyph.ID(len(names))
		names = append(names, name)
	}

	// Ligatures are grouped by their first glyph.  Within a group, longer
	// ligatures are tried first, so that "alarm_on" wins over "alarm".
	groups := make(map[glyph.ID][]gtab.Ligature)
	for icon, out := range iconGID {
		var in []glyph.ID
		for _, r := range icon {
			in = append(in, charGID[r])
		}
		if len(in) < 2 {
			continue
		}
		groups[in[0]] = append(groups[in[0]], gtab.Ligature{In: in[1:], Out: out})
	}
	firsts := maps.Keys(groups)
	slices.Sort(firsts)
	cov := make(coverage.Table, len(firsts))
	repl := make([][]gtab.Ligature, len(firsts))
	for i, first := range firsts {
		cov[first] = i
		ligs := groups[first]
		slices.SortFunc(ligs, func(a, b gtab.Ligature) int {
			if len(a.In) != len(b.In) {
				return len(b.In) - len(a.In)
			}
			return int(a.Out) - int(b.Out)
		})
		repl[i] = ligs
	}

	n := len(names)
	f := &sfnt.Font{
		FamilyName: "Test Icons",
		UnitsPerEm: 1000,
		Outlines: &glyf.Outlines{
			Glyphs: make(glyf.Glyphs, n),
			Widths: make([]funit.Int16, n),
			Names:  names,
		},
		CMapTable: cmap.Table{
			{PlatformID: 3, EncodingID: 1}: cmap4.Encode(0),
		},
		Gsub: &gtab.Info{},
	}
	if len(firsts) > 0 {
		AddLookup(f, "liga", &gtab.Gsub4_1{Cov: cov, Repl: repl})
	}
	return f
}

// CharName returns the glyph name used for the character r.
func CharName(r rune) string {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return string(r)
	case r >= '0' && r <= '9':
		return digitNames[r-'0']
	case r == '_':
		return "underscore"
	case r == '-':
		return "hyphen"
	}
	return fmt.Sprintf("uni%04X", r)
}

var digitNames = []string{
	"zero", "one", "two", "three", "four",
	"five", "six", "seven", "eight", "nine",
}

// AddGlyph appends an empty glyph with the given name to f.
func AddGlyph(f *sfnt.Font, name string) glyph.ID {
	o := f.Outlines.(*glyf.Outlines)
	gid := glyph.ID(len(o.Glyphs))
	o.Glyphs = append(o.Glyphs, nil)
	o.Widths = append(o.Widths, 0)
	o.Names = append(o.Names, name)
	return gid
}

// AddLookup appends a lookup to the GSUB table of f and registers it under
// a new feature with the given tag.
func AddLookup(f *sfnt.Font, tag string, subtables ...gtab.Subtable) gtab.LookupIndex {
	idx := AddNested(f, subtables...)
	f.Gsub.FeatureList = append(f.Gsub.FeatureList, &gtab.Feature{
		Tag:     tag,
		Lookups: []gtab.LookupIndex{idx},
	})
	return idx
}

// AddNested appends a lookup to the GSUB table of f, without referencing it
// from any feature.  Such lookups are only reachable from contextual rules.
func AddNested(f *sfnt.Font, subtables ...gtab.Subtable) gtab.LookupIndex {
	if f.Gsub == nil {
		f.Gsub = &gtab.Info{}
	}
	var lookupType uint16
	if len(subtables) > 0 {
		lookupType = LookupType(subtables[0])
	}
	idx := gtab.LookupIndex(len(f.Gsub.LookupList))
	f.Gsub.LookupList = append(f.Gsub.LookupList, &gtab.LookupTable{
		Meta:      &gtab.LookupMetaInfo{LookupType: lookupType},
		Subtables: subtables,
	})
	return idx
}

// LookupType returns the GSUB lookup type of a subtable.
func LookupType(subtable gtab.Subtable) uint16 {
	switch subtable.(type) {
	case *gtab.Gsub1_1, *gtab.Gsub1_2:
		return 1
	case *gtab.Gsub2_1:
		return 2
	case *gtab.Gsub3_1:
		return 3
	case *gtab.Gsub4_1:
		return 4
	case *gtab.SeqContext1, *gtab.SeqContext2, *gtab.SeqContext3:
		return 5
	case *gtab.ChainedSeqContext1, *gtab.ChainedSeqContext2, *gtab.ChainedSeqContext3:
		return 6
	case *gtab.Gsub8_1:
		return 8
	}
	return 0
}

// GID returns the glyph with the given name.  It panics if there is no
// such glyph.
func GID(f *sfnt.Font, name string) glyph.ID {
	names := f.Outlines.(*glyf.Outlines).Names
	for i, n := range names {
		if n == name {
			return glyph.ID(i)
		}
	}
	panic("testfont: no glyph " + name)
}

// Glyphs returns the glyph IDs with the given names.
func Glyphs(f *sfnt.Font, names ...string) []glyph.ID {
	res := make([]glyph.ID, len(names))
	for i, name := range names {
		res[i] = GID(f, name)
	}
	return res
}

// CharGlyphs returns the glyphs for the characters of s, without applying
// any substitutions.
func CharGlyphs(f *sfnt.Font, s string) []glyph.ID {
	var res []glyph.ID
	for _, r := range s {
		res = append(res, GID(f, CharName(r)))
	}
	return res
}

// Describe formats a glyph sequence using glyph names, for test failure
// messages.
func Describe(f *sfnt.Font, gids []glyph.ID) string {
	names := f.Outlines.(*glyf.Outlines).Names
	parts := make([]string, len(gids))
	for i, gid := range gids {
		if int(gid) < len(names) {
			parts[i] = names[gid]
		} else {
			parts[i] = fmt.Sprintf("#%d", gid)
		}
	}
	return strings.Join(parts, " ")
}
