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

// Package closure computes the set of glyphs reachable through the glyph
// substitution rules of a font.
//
// Starting from a seed set, every lookup referenced by a feature is applied
// symbolically: whenever a rule can fire on glyphs in the current set, the
// glyphs it produces are added.  This is repeated until the set is stable.
// Nested lookups of contextual rules are followed as well.
package closure

import (
	"fmt"
	"slices"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/iconsubset/glyphorder"
)

// tracer traces with key 'iconsubset.closure'
func tracer() tracing.Trace {
	return tracing.Select("iconsubset.closure")
}

// TableGSUB is the table tag used for glyph substitution closures.
const TableGSUB = "GSUB"

// State accumulates the glyphs known to be reachable.
//
// A State is owned by the caller.  [Glyphs] adds newly reached glyph names
// to it in place.
type State struct {
	// Table is the tag of the table being traversed.
	Table string

	// Glyphs is the set of reachable glyph names.
	Glyphs map[string]bool
}

// NewState returns a State for the given table, seeded with the given glyph
// names.
func NewState(table string, names ...string) *State {
	s := &State{
		Table:  table,
		Glyphs: make(map[string]bool, len(names)),
	}
	for _, name := range names {
		s.Glyphs[name] = true
	}
	return s
}

// Sorted returns the glyph names in s, in lexical order.
func (s *State) Sorted() []string {
	names := maps.Keys(s.Glyphs)
	slices.Sort(names)
	return names
}

// Glyphs closes the glyph set in s over the substitution rules in gsub.
// Glyph names are translated through order.  If gsub is nil, or has no
// lookups, s is left unchanged.
func Glyphs(gsub *gtab.Info, order *glyphorder.Order, s *State) error {
	if s.Table != TableGSUB {
		return &UnsupportedTableError{Table: s.Table}
	}

	seed, err := order.IDs(s.Sorted())
	if err != nil {
		return err
	}

	for gid := range Set(gsub, seed) {
		if name := order.Name(gid); name != "" {
			s.Glyphs[name] = true
		}
	}
	return nil
}

// Set returns the closure of seed over the substitution rules in gsub.
// The result always contains the seed glyphs.  The seed is not modified.
func Set(gsub *gtab.Info, seed coverage.Set) coverage.Set {
	res := make(coverage.Set, len(seed))
	for gid := range seed {
		res[gid] = true
	}
	if gsub == nil || len(gsub.LookupList) == 0 {
		return res
	}

	c := &closer{
		lookups: gsub.LookupList,
		glyphs:  res,
		active:  make(map[gtab.LookupIndex]bool),
	}
	roots := featureLookups(gsub)

	for pass := 1; ; pass++ {
		before := len(c.glyphs)
		for _, idx := range roots {
			c.lookup(idx, nil)
		}
		tracer().Debugf("closure pass %d: %d -> %d glyphs", pass, before, len(c.glyphs))
		if len(c.glyphs) == before {
			break
		}
	}
	return res
}

// featureLookups lists the lookups referenced by any feature, in increasing
// order and without repetitions.
func featureLookups(gsub *gtab.Info) []gtab.LookupIndex {
	seen := make(map[gtab.LookupIndex]bool)
	for _, feature := range gsub.FeatureList {
		if feature == nil {
			continue
		}
		for _, idx := range feature.Lookups {
			if int(idx) < len(gsub.LookupList) {
				seen[idx] = true
			}
		}
	}
	res := maps.Keys(seen)
	slices.Sort(res)
	return res
}

// closer holds the state of a single closure computation.
type closer struct {
	lookups gtab.LookupList
	glyphs  coverage.Set

	// active records the lookups currently on the call stack.
	active map[gtab.LookupIndex]bool
}

// lookup applies the lookup idx to the glyphs in cur.  If cur is nil, the
// lookup may apply to any glyph in the closure set.
func (c *closer) lookup(idx gtab.LookupIndex, cur coverage.Set) {
	if int(idx) >= len(c.lookups) || c.active[idx] {
		return
	}
	l := c.lookups[idx]
	if l == nil {
		return
	}

	c.active[idx] = true
	defer delete(c.active, idx)

	for _, subtable := range l.Subtables {
		c.subtable(subtable, cur)
	}
}

// has reports whether gid may occur at a position which is restricted to
// cur.
func (c *closer) has(cur coverage.Set, gid glyph.ID) bool {
	if cur == nil {
		return c.glyphs[gid]
	}
	return cur[gid] && c.glyphs[gid]
}

func (c *closer) add(gids ...glyph.ID) {
	for _, gid := range gids {
		c.glyphs[gid] = true
	}
}

// hasAll reports whether all glyphs in the list are in the closure set.
func (c *closer) hasAll(gids []glyph.ID) bool {
	for _, gid := range gids {
		if !c.glyphs[gid] {
			return false
		}
	}
	return true
}

// mayChangeLength reports whether applying the lookup idx can change the
// number of glyphs in the sequence.  After such a lookup, positions in a
// contextual rule cannot be tracked any more.
func (c *closer) mayChangeLength(idx gtab.LookupIndex) bool {
	if int(idx) >= len(c.lookups) || c.lookups[idx] == nil {
		return false
	}
	for _, subtable := range c.lookups[idx].Subtables {
		switch subtable.(type) {
		case *gtab.Gsub1_1, *gtab.Gsub1_2, *gtab.Gsub3_1, *gtab.Gsub8_1:
			// one-to-one
		default:
			return true
		}
	}
	return false
}

// UnsupportedTableError is returned by [Glyphs] if the State refers to a
// table other than GSUB.
type UnsupportedTableError struct {
	Table string
}

func (err *UnsupportedTableError) Error() string {
	return fmt.Sprintf("closure over table %q not supported", err.Table)
}
