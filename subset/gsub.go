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
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/classdef"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"
)

// subsetGsub rewrites a GSUB table for the subset font.
//
// All lookups are kept, so that lookup indices in the feature list and in
// contextual rules remain valid.  Subtables which no longer match any glyph
// are removed.
func subsetGsub(info *gtab.Info, m *Mapping) *gtab.Info {
	if info == nil {
		return nil
	}

	res := &gtab.Info{
		ScriptList:  info.ScriptList,
		FeatureList: info.FeatureList,
		LookupList:  make(gtab.LookupList, len(info.LookupList)),
	}
	for i, lookup := range info.LookupList {
		if lookup == nil {
			continue
		}
		newLookup := &gtab.LookupTable{Meta: lookup.Meta}
		for _, subtable := range lookup.Subtables {
			if st := subsetSubtable(subtable, m); st != nil {
				newLookup.Subtables = append(newLookup.Subtables, st)
			}
		}
		res.LookupList[i] = newLookup
	}
	return res
}

// subsetSubtable rewrites one GSUB subtable.  The result is nil if the
// subtable has become empty.
func subsetSubtable(subtable gtab.Subtable, m *Mapping) gtab.Subtable {
	switch l := subtable.(type) {
	case *gtab.Gsub1_1:
		// The glyph ID differences are not preserved by subsetting.
		res := &gtab.Gsub1_2{}
		cov := make(map[glyph.ID]glyph.ID)
		for old := range l.Cov {
			gid, ok1 := m.New(old)
			repl, ok2 := m.New(old + l.Delta)
			if ok1 && ok2 {
				cov[gid] = repl
			}
		}
		if len(cov) == 0 {
			return nil
		}
		res.Cov = newCoverage(maps.Keys(cov))
		res.SubstituteGlyphIDs = make([]glyph.ID, len(cov))
		for gid, idx := range res.Cov {
			res.SubstituteGlyphIDs[idx] = cov[gid]
		}
		return res

	case *gtab.Gsub1_2:
		cov, old := remapIndexed(l.Cov, m, func(idx int) bool {
			if idx >= len(l.SubstituteGlyphIDs) {
				return false
			}
			_, ok := m.New(l.SubstituteGlyphIDs[idx])
			return ok
		})
		if len(cov) == 0 {
			return nil
		}
		res := &gtab.Gsub1_2{Cov: cov, SubstituteGlyphIDs: make([]glyph.ID, len(old))}
		for i, idx := range old {
			res.SubstituteGlyphIDs[i], _ = m.New(l.SubstituteGlyphIDs[idx])
		}
		return res

	case *gtab.Gsub2_1:
		cov, old := remapIndexed(l.Cov, m, func(idx int) bool {
			return idx < len(l.Repl) && keepsAll(m, l.Repl[idx])
		})
		if len(cov) == 0 {
			return nil
		}
		res := &gtab.Gsub2_1{Cov: cov, Repl: make([][]glyph.ID, len(old))}
		for i, idx := range old {
			res.Repl[i] = remapGlyphs(m, l.Repl[idx])
		}
		return res

	case *gtab.Gsub3_1:
		alternates := make([][]glyph.ID, len(l.Alternates))
		for i, alt := range l.Alternates {
			alternates[i] = keptGlyphs(m, alt)
		}
		cov, old := remapIndexed(l.Cov, m, func(idx int) bool {
			return idx < len(alternates) && len(alternates[idx]) > 0
		})
		if len(cov) == 0 {
			return nil
		}
		res := &gtab.Gsub3_1{Cov: cov, Alternates: make([][]glyph.ID, len(old))}
		for i, idx := range old {
			res.Alternates[i] = alternates[idx]
		}
		return res

	case *gtab.Gsub4_1:
		repl := make([][]gtab.Ligature, len(l.Repl))
		for i, ligs := range l.Repl {
			for _, lig := range ligs {
				out, ok := m.New(lig.Out)
				if !ok || !keepsAll(m, lig.In) {
					continue
				}
				repl[i] = append(repl[i], gtab.Ligature{In: remapGlyphs(m, lig.In), Out: out})
			}
		}
		cov, old := remapIndexed(l.Cov, m, func(idx int) bool {
			return idx < len(repl) && len(repl[idx]) > 0
		})
		if len(cov) == 0 {
			return nil
		}
		res := &gtab.Gsub4_1{Cov: cov, Repl: make([][]gtab.Ligature, len(old))}
		for i, idx := range old {
			res.Repl[i] = repl[idx]
		}
		return res

	case *gtab.SeqContext1:
		rules := make([][]*gtab.SeqRule, len(l.Rules))
		for i, rr := range l.Rules {
			for _, rule := range rr {
				if rule == nil || !keepsAll(m, rule.Input) {
					continue
				}
				rules[i] = append(rules[i], &gtab.SeqRule{
					Input:   remapGlyphs(m, rule.Input),
					Actions: rule.Actions,
				})
			}
		}
		cov, old := remapIndexed(l.Cov, m, func(idx int) bool {
			return idx < len(rules) && len(rules[idx]) > 0
		})
		if len(cov) == 0 {
			return nil
		}
		res := &gtab.SeqContext1{Cov: cov, Rules: make([][]*gtab.SeqRule, len(old))}
		for i, idx := range old {
			res.Rules[i] = rules[idx]
		}
		return res

	case *gtab.SeqContext2:
		cov := remapCoverage(l.Cov, m)
		if len(cov) == 0 {
			return nil
		}
		return &gtab.SeqContext2{
			Cov:   cov,
			Input: remapClasses(l.Input, m),
			Rules: l.Rules,
		}

	case *gtab.SeqContext3:
		input, ok := remapSeq(l.Input, m)
		if !ok || len(input) == 0 {
			return nil
		}
		return &gtab.SeqContext3{Input: input, Actions: l.Actions}

	case *gtab.ChainedSeqContext1:
		rules := make([][]*gtab.ChainedSeqRule, len(l.Rules))
		for i, rr := range l.Rules {
			for _, rule := range rr {
				if rule == nil ||
					!keepsAll(m, rule.Backtrack) ||
					!keepsAll(m, rule.Input) ||
					!keepsAll(m, rule.Lookahead) {
					continue
				}
				rules[i] = append(rules[i], &gtab.ChainedSeqRule{
					Backtrack: remapGlyphs(m, rule.Backtrack),
					Input:     remapGlyphs(m, rule.Input),
					Lookahead: remapGlyphs(m, rule.Lookahead),
					Actions:   rule.Actions,
				})
			}
		}
		cov, old := remapIndexed(l.Cov, m, func(idx int) bool {
			return idx < len(rules) && len(rules[idx]) > 0
		})
		if len(cov) == 0 {
			return nil
		}
		res := &gtab.ChainedSeqContext1{Cov: cov, Rules: make([][]*gtab.ChainedSeqRule, len(old))}
		for i, idx := range old {
			res.Rules[i] = rules[idx]
		}
		return res

	case *gtab.ChainedSeqContext2:
		cov := remapCoverage(l.Cov, m)
		if len(cov) == 0 {
			return nil
		}
		return &gtab.ChainedSeqContext2{
			Cov:       cov,
			Backtrack: remapClasses(l.Backtrack, m),
			Input:     remapClasses(l.Input, m),
			Lookahead: remapClasses(l.Lookahead, m),
			Rules:     l.Rules,
		}

	case *gtab.ChainedSeqContext3:
		backtrack, ok1 := remapSeq(l.Backtrack, m)
		input, ok2 := remapSeq(l.Input, m)
		lookahead, ok3 := remapSeq(l.Lookahead, m)
		if !ok1 || !ok2 || !ok3 || len(input) == 0 {
			return nil
		}
		return &gtab.ChainedSeqContext3{
			Backtrack: backtrack,
			Input:     input,
			Lookahead: lookahead,
			Actions:   l.Actions,
		}

	case *gtab.Gsub8_1:
		backtrack, ok1 := remapSeq(l.Backtrack, m)
		lookahead, ok2 := remapSeq(l.Lookahead, m)
		if !ok1 || !ok2 {
			return nil
		}
		cov, old := remapIndexed(l.Input, m, func(idx int) bool {
			if idx >= len(l.SubstituteGlyphIDs) {
				return false
			}
			_, ok := m.New(l.SubstituteGlyphIDs[idx])
			return ok
		})
		if len(cov) == 0 {
			return nil
		}
		res := &gtab.Gsub8_1{
			Input:              cov,
			Backtrack:          backtrack,
			Lookahead:          lookahead,
			SubstituteGlyphIDs: make([]glyph.ID, len(old)),
		}
		for i, idx := range old {
			res.SubstituteGlyphIDs[i], _ = m.New(l.SubstituteGlyphIDs[idx])
		}
		return res
	}

	// Unknown subtable types cannot be remapped.
	return nil
}

// remapIndexed renumbers a coverage table whose indices point into a
// per-glyph array.  Only glyphs which are kept, and for which keep(idx)
// is true, are carried over.  The second return value lists, for each
// new index, the corresponding old index.
func remapIndexed(cov coverage.Table, m *Mapping, keep func(idx int) bool) (coverage.Table, []int) {
	type entry struct {
		gid glyph.ID
		idx int
	}
	var entries []entry
	for old, idx := range cov {
		gid, ok := m.New(old)
		if ok && keep(idx) {
			entries = append(entries, entry{gid, idx})
		}
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return int(a.gid) - int(b.gid)
	})

	res := make(coverage.Table, len(entries))
	old := make([]int, len(entries))
	for i, e := range entries {
		res[e.gid] = i
		old[i] = e.idx
	}
	return res, old
}

// newCoverage returns a coverage table for the given glyphs, with indices
// in glyph order.
func newCoverage(gids []glyph.ID) coverage.Table {
	slices.Sort(gids)
	res := make(coverage.Table, len(gids))
	for i, gid := range gids {
		res[gid] = i
	}
	return res
}

// remapCoverage translates the keys of a glyph set.  Coverage table
// indices are renumbered to match the new glyph order.
func remapCoverage[M ~map[glyph.ID]V, V any](cov M, m *Mapping) M {
	if cov == nil {
		return nil
	}
	res := make(M, len(cov))
	for old, v := range cov {
		if gid, ok := m.New(old); ok {
			res[gid] = v
		}
	}
	if tab, ok := any(res).(coverage.Table); ok {
		gids := maps.Keys(tab)
		slices.Sort(gids)
		for i, gid := range gids {
			tab[gid] = i
		}
	}
	return res
}

// remapSeq translates a sequence of glyph sets.  The second return value
// is false if one of the positions has become empty.
func remapSeq[M ~map[glyph.ID]V, V any](seq []M, m *Mapping) ([]M, bool) {
	if seq == nil {
		return nil, true
	}
	res := make([]M, len(seq))
	for i, cov := range seq {
		res[i] = remapCoverage(cov, m)
		if len(res[i]) == 0 {
			return nil, false
		}
	}
	return res, true
}

func remapClasses(cd classdef.Table, m *Mapping) classdef.Table {
	return remapCoverage(cd, m)
}

// keepsAll reports whether all glyphs in gids are kept.
func keepsAll(m *Mapping, gids []glyph.ID) bool {
	for _, old := range gids {
		if _, ok := m.New(old); !ok {
			return false
		}
	}
	return true
}

// remapGlyphs translates a glyph sequence in which all glyphs are kept.
func remapGlyphs(m *Mapping, gids []glyph.ID) []glyph.ID {
	if gids == nil {
		return nil
	}
	res := make([]glyph.ID, len(gids))
	for i, old := range gids {
		res[i], _ = m.New(old)
	}
	return res
}

// keptGlyphs returns the kept glyphs of gids, translated to new glyph IDs.
func keptGlyphs(m *Mapping, gids []glyph.ID) []glyph.ID {
	var res []glyph.ID
	for _, old := range gids {
		if gid, ok := m.New(old); ok {
			res = append(res, gid)
		}
	}
	return res
}
