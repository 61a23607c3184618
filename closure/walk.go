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

package closure

import (
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/classdef"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"
)

// subtable adds the glyphs which one subtable can produce from the glyphs
// in cur.
func (c *closer) subtable(subtable gtab.Subtable, cur coverage.Set) {
	switch l := subtable.(type) {
	case *gtab.Gsub1_1:
		for gid := range l.Cov {
			if c.has(cur, gid) {
				c.add(gid + l.Delta)
			}
		}

	case *gtab.Gsub1_2:
		for gid, idx := range l.Cov {
			if c.has(cur, gid) && idx < len(l.SubstituteGlyphIDs) {
				c.add(l.SubstituteGlyphIDs[idx])
			}
		}

	case *gtab.Gsub2_1:
		for gid, idx := range l.Cov {
			if c.has(cur, gid) && idx < len(l.Repl) {
				c.add(l.Repl[idx]...)
			}
		}

	case *gtab.Gsub3_1:
		for gid, idx := range l.Cov {
			if c.has(cur, gid) && idx < len(l.Alternates) {
				c.add(l.Alternates[idx]...)
			}
		}

	case *gtab.Gsub4_1:
		for gid, idx := range l.Cov {
			if !c.has(cur, gid) || idx >= len(l.Repl) {
				continue
			}
			for _, lig := range l.Repl[idx] {
				if c.hasAll(lig.In) {
					c.add(lig.Out)
				}
			}
		}

	case *gtab.SeqContext1:
		for gid, idx := range l.Cov {
			if !c.has(cur, gid) || idx >= len(l.Rules) {
				continue
			}
			for _, rule := range l.Rules[idx] {
				if rule == nil || !c.hasAll(rule.Input) {
					continue
				}
				c.nested(glyphSeq(gid, rule.Input), rule.Actions)
			}
		}

	case *gtab.SeqContext2:
		classes := c.classSets(l.Input)
		for gid := range l.Cov {
			if !c.has(cur, gid) {
				continue
			}
			first := l.Input[gid]
			if int(first) >= len(l.Rules) {
				continue
			}
			for _, rule := range l.Rules[first] {
				if rule == nil {
					continue
				}
				input, ok := classSeq(gid, rule.Input, classes)
				if ok {
					c.nested(input, rule.Actions)
				}
			}
		}

	case *gtab.SeqContext3:
		if len(l.Input) == 0 {
			return
		}
		input := make([]coverage.Set, len(l.Input))
		for i, cov := range l.Input {
			restrict := cur
			if i > 0 {
				restrict = nil
			}
			input[i] = intersect(c, cov, restrict)
			if len(input[i]) == 0 {
				return
			}
		}
		c.nested(input, l.Actions)

	case *gtab.ChainedSeqContext1:
		for gid, idx := range l.Cov {
			if !c.has(cur, gid) || idx >= len(l.Rules) {
				continue
			}
			for _, rule := range l.Rules[idx] {
				if rule == nil ||
					!c.hasAll(rule.Backtrack) ||
					!c.hasAll(rule.Input) ||
					!c.hasAll(rule.Lookahead) {
					continue
				}
				c.nested(glyphSeq(gid, rule.Input), rule.Actions)
			}
		}

	case *gtab.ChainedSeqContext2:
		backtrack := c.classSets(l.Backtrack)
		input := c.classSets(l.Input)
		lookahead := c.classSets(l.Lookahead)
		for gid := range l.Cov {
			if !c.has(cur, gid) {
				continue
			}
			first := l.Input[gid]
			if int(first) >= len(l.Rules) {
				continue
			}
			for _, rule := range l.Rules[first] {
				if rule == nil ||
					!hasClasses(backtrack, rule.Backtrack) ||
					!hasClasses(lookahead, rule.Lookahead) {
					continue
				}
				seq, ok := classSeq(gid, rule.Input, input)
				if ok {
					c.nested(seq, rule.Actions)
				}
			}
		}

	case *gtab.ChainedSeqContext3:
		if len(l.Input) == 0 || !hasContext(c, l.Backtrack) || !hasContext(c, l.Lookahead) {
			return
		}
		input := make([]coverage.Set, len(l.Input))
		for i, cov := range l.Input {
			restrict := cur
			if i > 0 {
				restrict = nil
			}
			input[i] = intersect(c, cov, restrict)
			if len(input[i]) == 0 {
				return
			}
		}
		c.nested(input, l.Actions)

	case *gtab.Gsub8_1:
		if !hasContext(c, l.Backtrack) || !hasContext(c, l.Lookahead) {
			return
		}
		for gid, idx := range l.Input {
			if c.has(cur, gid) && idx < len(l.SubstituteGlyphIDs) {
				c.add(l.SubstituteGlyphIDs[idx])
			}
		}
	}
}

// nested runs the actions of a contextual rule.  The input sequence gives,
// for each position, the glyphs which can occur there.
//
// Once an action has been applied at some position, the glyphs there are no
// longer known and later actions at that position may see any glyph in the
// closure set.  If the action can change the sequence length, this applies
// to all later positions, too.
func (c *closer) nested(input []coverage.Set, actions []gtab.SeqLookup) {
	chaos := make(map[int]bool)
	for _, action := range actions {
		pos := int(action.SequenceIndex)
		if pos >= len(input) {
			continue
		}

		var posGlyphs coverage.Set
		if !chaos[pos] {
			posGlyphs = input[pos]
		}

		if c.mayChangeLength(action.LookupListIndex) {
			for i := pos; i < len(input); i++ {
				chaos[i] = true
			}
		} else {
			chaos[pos] = true
		}

		c.lookup(action.LookupListIndex, posGlyphs)
	}
}

// hasContext reports whether every position of a backtrack or lookahead
// sequence can be matched by a glyph in the closure set.
func hasContext[M ~map[glyph.ID]V, V any](c *closer, seq []M) bool {
	for _, cov := range seq {
		found := false
		for gid := range cov {
			if c.glyphs[gid] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// classSets groups the glyphs in the closure set by their class.
// Glyphs not listed in cd are in class 0.
func (c *closer) classSets(cd classdef.Table) map[uint16]coverage.Set {
	res := make(map[uint16]coverage.Set)
	for gid := range c.glyphs {
		class := cd[gid]
		set := res[class]
		if set == nil {
			set = make(coverage.Set)
			res[class] = set
		}
		set[gid] = true
	}
	return res
}

// intersect returns the glyphs in cov which may occur at a position
// restricted to cur.
func intersect[M ~map[glyph.ID]V, V any](c *closer, cov M, cur coverage.Set) coverage.Set {
	res := make(coverage.Set)
	for gid := range cov {
		if c.has(cur, gid) {
			res[gid] = true
		}
	}
	return res
}

// glyphSeq returns the positions of a glyph-based input sequence.
func glyphSeq(first glyph.ID, rest []glyph.ID) []coverage.Set {
	seq := make([]coverage.Set, 1+len(rest))
	seq[0] = coverage.Set{first: true}
	for i, gid := range rest {
		seq[i+1] = coverage.Set{gid: true}
	}
	return seq
}

// classSeq returns the positions of a class-based input sequence.
// The second return value is false if some class has no glyphs in the
// closure set.
func classSeq(first glyph.ID, rest []uint16, classes map[uint16]coverage.Set) ([]coverage.Set, bool) {
	seq := make([]coverage.Set, 1+len(rest))
	seq[0] = coverage.Set{first: true}
	for i, class := range rest {
		set := classes[class]
		if len(set) == 0 {
			return nil, false
		}
		seq[i+1] = set
	}
	return seq, true
}

func hasClasses(classes map[uint16]coverage.Set, seq []uint16) bool {
	for _, class := range seq {
		if len(classes[class]) == 0 {
			return false
		}
	}
	return true
}
