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

// Package glyphorder translates between glyph IDs and glyph names.
//
// The names are taken from the font where possible.  Glyphs without a name
// get a synthetic name of the form "glyph00042", and repeated names are made
// unique by appending "#1", "#2", and so on.  This makes the mapping
// invertible within one font.
package glyphorder

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"
)

// Order is the glyph order of one font.
type Order struct {
	names []string
	ids   map[string]glyph.ID
}

// New returns the glyph order of the given font.
func New(f *sfnt.Font) *Order {
	n := f.NumGlyphs()
	names := make([]string, n)
	for i := range names {
		names[i] = f.GlyphName(glyph.ID(i))
	}
	return FromNames(names)
}

// FromNames constructs an Order from a list of glyph names, indexed by
// glyph ID.  Empty names are replaced by synthetic ones.
func FromNames(names []string) *Order {
	o := &Order{
		names: make([]string, len(names)),
		ids:   make(map[string]glyph.ID, len(names)),
	}

	// Reserve all names the font provides before synthesising any,
	// so that a synthetic name never shadows a real one.
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		if name != "" {
			taken[name] = true
		}
	}

	seen := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			if i == 0 {
				name = ".notdef"
			} else {
				name = fmt.Sprintf("glyph%05d", i)
			}
			for taken[name] {
				name += "_"
			}
		}
		base := name
		for k := seen[base]; ; k++ {
			if k > 0 {
				name = fmt.Sprintf("%s#%d", base, k)
			}
			if _, dup := o.ids[name]; !dup {
				seen[base] = k + 1
				break
			}
		}
		o.names[i] = name
		o.ids[name] = glyph.ID(i)
	}
	return o
}

// Len returns the number of glyphs.
func (o *Order) Len() int {
	return len(o.names)
}

// Name returns the name of the glyph gid.
// For out-of-range glyph IDs the empty string is returned.
func (o *Order) Name(gid glyph.ID) string {
	if int(gid) >= len(o.names) {
		return ""
	}
	return o.names[gid]
}

// ID returns the glyph ID for the given name.
func (o *Order) ID(name string) (glyph.ID, bool) {
	gid, ok := o.ids[name]
	return gid, ok
}

// Names returns the names of the glyphs in the set, in glyph order.
func (o *Order) Names(set coverage.Set) []string {
	gids := maps.Keys(set)
	slices.Sort(gids)
	res := make([]string, 0, len(gids))
	for _, gid := range gids {
		if name := o.Name(gid); name != "" {
			res = append(res, name)
		}
	}
	return res
}

// IDs converts glyph names back to a set of glyph IDs.
func (o *Order) IDs(names []string) (coverage.Set, error) {
	res := make(coverage.Set, len(names))
	for _, name := range names {
		gid, ok := o.ids[name]
		if !ok {
			return nil, &UnknownGlyphError{Name: name}
		}
		res[gid] = true
	}
	return res, nil
}

// UnknownGlyphError is returned when a glyph name does not occur in the
// glyph order.
type UnknownGlyphError struct {
	Name string
}

func (err *UnknownGlyphError) Error() string {
	return fmt.Sprintf("unknown glyph name %q", err.Name)
}
