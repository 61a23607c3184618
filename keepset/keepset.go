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

// Package keepset combines the activation glyphs, the icon glyphs and
// their substitution closure into the final set of glyphs to keep.
package keepset

import (
	"fmt"
	"slices"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"

	"seehuhn.de/go/iconsubset/activation"
	"seehuhn.de/go/iconsubset/subset"
)

func tracer() tracing.Trace {
	return tracing.Select("iconsubset.keepset")
}

// Assemble returns the union of the activation glyphs, the icon glyphs and
// the closure of the icon glyphs.
func Assemble(act *activation.Result, closed coverage.Set) coverage.Set {
	keep := make(coverage.Set, len(act.Activation)+len(act.IconGlyphs)+len(closed))
	for _, set := range []coverage.Set{act.Activation, act.IconGlyphs, closed} {
		for gid := range set {
			keep[gid] = true
		}
	}
	tracer().Debugf("keep %d glyphs: %d activation, %d icons, %d closure",
		len(keep), len(act.Activation), len(act.IconGlyphs), len(closed))
	return keep
}

// Check verifies that all icon glyphs are in the keep set.
func Check(keep coverage.Set, act *activation.Result) error {
	var missing []glyph.ID
	for gid := range act.IconGlyphs {
		if !keep[gid] {
			missing = append(missing, gid)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return &MissingIconsError{GIDs: missing}
	}
	return nil
}

// Apply subsets the font to exactly the glyphs in keep.  The layout closure
// of the subsetter is disabled, since keep is already closed.
func Apply(f *sfnt.Font, keep coverage.Set) (*sfnt.Font, *subset.Mapping, error) {
	s := subset.New(&subset.Options{LayoutClosure: false})
	gids := maps.Keys(keep)
	slices.Sort(gids)
	s.Populate(gids...)
	return s.Subset(f)
}

// MissingIconsError indicates that icon glyphs are absent from the keep
// set.  This is an internal error.
type MissingIconsError struct {
	GIDs []glyph.ID
}

func (err *MissingIconsError) Error() string {
	return fmt.Sprintf("keep set misses icon glyphs %v", err.GIDs)
}
