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

// Package subset reduces a font to a given set of glyphs.
//
// Both glyf and CFF outlines are supported.  Besides the outlines, the
// tables which refer to glyph IDs are rewritten: "cmap", "GSUB" and "GDEF".
// Lookups in GSUB keep their indices, so that feature lists and nested
// lookup references stay valid; rules which mention a removed glyph are
// dropped.  The "GPOS" table is not carried over.
package subset

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cff"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"

	"seehuhn.de/go/iconsubset/closure"
)

// Options control the subsetting process.
type Options struct {
	// LayoutClosure, if set, extends the glyph set by all glyphs reachable
	// through GSUB before subsetting.  Callers which compute their own
	// closure leave this unset, so that the given glyph set is used as is.
	LayoutClosure bool
}

// Subsetter collects the glyphs to keep, and then produces the subset font.
type Subsetter struct {
	opt  Options
	gids coverage.Set
}

// New returns a Subsetter.  If opt is nil, the default options are used.
func New(opt *Options) *Subsetter {
	s := &Subsetter{gids: make(coverage.Set)}
	if opt != nil {
		s.opt = *opt
	}
	return s
}

// Populate adds glyphs to the set of glyphs to keep.
func (s *Subsetter) Populate(gids ...glyph.ID) {
	for _, gid := range gids {
		s.gids[gid] = true
	}
}

// Glyphs returns the glyph list of the subset font for f.
// The list starts with .notdef and is ordered by original glyph ID.
// Components of composite glyphs are included.
func (s *Subsetter) Glyphs(f *sfnt.Font) ([]glyph.ID, error) {
	keep := make(coverage.Set, len(s.gids)+1)
	keep[0] = true
	for gid := range s.gids {
		keep[gid] = true
	}
	if s.opt.LayoutClosure {
		keep = closure.Set(f.Gsub, keep)
	}

	numGlyphs := f.NumGlyphs()
	for gid := range keep {
		if int(gid) >= numGlyphs {
			return nil, &GlyphRangeError{GID: gid, NumGlyphs: numGlyphs}
		}
	}

	if outlines, ok := f.Outlines.(*glyf.Outlines); ok {
		addComponents(outlines, keep)
	}

	glyphs := maps.Keys(keep)
	slices.Sort(glyphs)
	return glyphs, nil
}

// addComponents adds the components of composite glyphs to keep,
// recursively.
func addComponents(outlines *glyf.Outlines, keep coverage.Set) {
	todo := make(map[glyph.ID]bool)
	for gid := range keep {
		todo[gid] = true
	}
	for len(todo) > 0 {
		gid := pop(todo)
		if int(gid) >= len(outlines.Glyphs) {
			continue
		}
		for _, gid2 := range outlines.Glyphs[gid].Components() {
			if !keep[gid2] {
				keep[gid2] = true
				todo[gid2] = true
			}
		}
	}
}

func pop(todo map[glyph.ID]bool) glyph.ID {
	for key := range todo {
		delete(todo, key)
		return key
	}
	panic("empty map")
}

// Subset returns a new font which contains only the populated glyphs.
// The original font is not modified.
func (s *Subsetter) Subset(f *sfnt.Font) (*sfnt.Font, *Mapping, error) {
	if f.NumGlyphs() == 0 {
		return nil, nil, ErrNoGlyphs
	}
	glyphs, err := s.Glyphs(f)
	if err != nil {
		return nil, nil, err
	}
	m := newMapping(glyphs)

	res := &sfnt.Font{}
	*res = *f
	res.Gpos = nil

	switch outlines := f.Outlines.(type) {
	case *glyf.Outlines:
		res.Outlines = subsetGlyf(outlines, m)
	case *cff.Outlines:
		res.Outlines = subsetCFF(outlines, m)
	default:
		return nil, nil, errors.New("unsupported outline format")
	}
	if res.NumGlyphs() != len(glyphs) {
		return nil, nil, fmt.Errorf("subset has %d glyphs, expected %d",
			res.NumGlyphs(), len(glyphs))
	}

	res.CMapTable = subsetCMap(f.CMapTable, m)
	res.Gsub = subsetGsub(f.Gsub, m)
	res.Gdef = subsetGdef(f.Gdef, m)

	return res, m, nil
}

// Mapping records how glyph IDs change during subsetting.
type Mapping struct {
	oldToNew map[glyph.ID]glyph.ID
	newToOld []glyph.ID
}

func newMapping(glyphs []glyph.ID) *Mapping {
	m := &Mapping{
		oldToNew: make(map[glyph.ID]glyph.ID, len(glyphs)),
		newToOld: glyphs,
	}
	for i, gid := range glyphs {
		m.oldToNew[gid] = glyph.ID(i)
	}
	return m
}

// New returns the glyph ID in the subset font for the original glyph old.
// The second return value is false if the glyph was removed.
func (m *Mapping) New(old glyph.ID) (glyph.ID, bool) {
	gid, ok := m.oldToNew[old]
	return gid, ok
}

// Old returns the original glyph ID of the subset glyph gid.
func (m *Mapping) Old(gid glyph.ID) glyph.ID {
	return m.newToOld[gid]
}

// Len returns the number of glyphs in the subset font.
func (m *Mapping) Len() int {
	return len(m.newToOld)
}

// NewSet translates a set of original glyph IDs to subset glyph IDs.
// Removed glyphs are ignored.
func (m *Mapping) NewSet(set coverage.Set) coverage.Set {
	res := make(coverage.Set, len(set))
	for old := range set {
		if gid, ok := m.oldToNew[old]; ok {
			res[gid] = true
		}
	}
	return res
}

// GlyphRangeError is returned when a glyph ID to keep does not exist in the
// font.
type GlyphRangeError struct {
	GID       glyph.ID
	NumGlyphs int
}

func (err *GlyphRangeError) Error() string {
	return fmt.Sprintf("glyph %d out of range (font has %d glyphs)", err.GID, err.NumGlyphs)
}

// ErrNoGlyphs is returned by [Subsetter.Subset] for a font without glyphs.
var ErrNoGlyphs = errors.New("font has no glyphs")
