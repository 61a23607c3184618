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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/classdef"
	"seehuhn.de/go/sfnt/opentype/coverage"
	"seehuhn.de/go/sfnt/opentype/gtab"

	"seehuhn.de/go/iconsubset/glyphorder"
	"seehuhn.de/go/iconsubset/internal/testfont"
)

func closeNames(t *testing.T, f *sfnt.Font, seed ...string) []string {
	t.Helper()
	s := NewState(TableGSUB, seed...)
	err := Glyphs(f.Gsub, glyphorder.New(f), s)
	if err != nil {
		t.Fatal(err)
	}
	return s.Sorted()
}

func TestNoGSUB(t *testing.T) {
	f := testfont.IconFont("alarm", "alarm_on")
	f.Gsub = nil

	got := closeNames(t, f, "alarm_on")
	if d := cmp.Diff([]string{"alarm_on"}, got); d != "" {
		t.Errorf("closure (-want +got):\n%s", d)
	}

	f.Gsub = &gtab.Info{}
	got = closeNames(t, f, "alarm_on")
	if d := cmp.Diff([]string{"alarm_on"}, got); d != "" {
		t.Errorf("closure with empty GSUB (-want +got):\n%s", d)
	}
}

// The icon glyph alone never completes a ligature of characters, so
// sibling icons stay out.
func TestSiblingExclusion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "iconsubset.closure")
	defer teardown()

	f := testfont.IconFont("alarm", "alarm_on", "menu")

	got := closeNames(t, f, "alarm_on")
	if d := cmp.Diff([]string{"alarm_on"}, got); d != "" {
		t.Errorf("closure (-want +got):\n%s", d)
	}
}

// Seeding from the character glyphs is exactly what pulls in the siblings.
func TestCharacterSeedAdmitsSiblings(t *testing.T) {
	f := testfont.IconFont("alarm", "alarm_on", "menu")

	seed := make(coverage.Set)
	for _, gid := range testfont.CharGlyphs(f, "alarm_on") {
		seed[gid] = true
	}
	got := Set(f.Gsub, seed)

	alarm := testfont.GID(f, "alarm")
	alarmOn := testfont.GID(f, "alarm_on")
	menu := testfont.GID(f, "menu")
	if !got[alarm] || !got[alarmOn] {
		t.Errorf("expected both alarm and alarm_on in %v", got)
	}
	if got[menu] {
		t.Errorf("menu must not be reachable from the characters of alarm_on")
	}
	if len(seed) != 7 {
		t.Errorf("seed was modified: %v", seed)
	}
}

func TestSimpleLookups(t *testing.T) {
	type setup func(f *sfnt.Font, icon glyph.ID) []string

	tests := []struct {
		name  string
		setup setup
	}{
		{
			name: "single format 1",
			setup: func(f *sfnt.Font, icon glyph.ID) []string {
				v := testfont.AddGlyph(f, "icon.v1")
				testfont.AddLookup(f, "ss01", &gtab.Gsub1_1{
					Cov:   coverage.Set{icon: true},
					Delta: v - icon,
				})
				return []string{"icon.v1"}
			},
		},
		{
			name: "single format 2",
			setup: func(f *sfnt.Font, icon glyph.ID) []string {
				v := testfont.AddGlyph(f, "icon.v1")
				testfont.AddLookup(f, "ss01", &gtab.Gsub1_2{
					Cov:                coverage.Table{icon: 0},
					SubstituteGlyphIDs: []glyph.ID{v},
				})
				return []string{"icon.v1"}
			},
		},
		{
			name: "multiple",
			setup: func(f *sfnt.Font, icon glyph.ID) []string {
				p1 := testfont.AddGlyph(f, "icon.part1")
				p2 := testfont.AddGlyph(f, "icon.part2")
				testfont.AddLookup(f, "ccmp", &gtab.Gsub2_1{
					Cov:  coverage.Table{icon: 0},
					Repl: [][]glyph.ID{{p1, p2}},
				})
				return []string{"icon.part1", "icon.part2"}
			},
		},
		{
			name: "alternate",
			setup: func(f *sfnt.Font, icon glyph.ID) []string {
				a1 := testfont.AddGlyph(f, "icon.alt1")
				a2 := testfont.AddGlyph(f, "icon.alt2")
				testfont.AddLookup(f, "salt", &gtab.Gsub3_1{
					Cov:        coverage.Table{icon: 0},
					Alternates: [][]glyph.ID{{a1, a2}},
				})
				return []string{"icon.alt1", "icon.alt2"}
			},
		},
		{
			name: "ligature of icon glyphs",
			setup: func(f *sfnt.Font, icon glyph.ID) []string {
				pair := testfont.AddGlyph(f, "icon_icon")
				testfont.AddLookup(f, "dlig", &gtab.Gsub4_1{
					Cov:  coverage.Table{icon: 0},
					Repl: [][]gtab.Ligature{{{In: []glyph.ID{icon}, Out: pair}}},
				})
				return []string{"icon_icon"}
			},
		},
		{
			name: "reverse chaining",
			setup: func(f *sfnt.Font, icon glyph.ID) []string {
				v := testfont.AddGlyph(f, "icon.rev")
				testfont.AddLookup(f, "rclt", &gtab.Gsub8_1{
					Input:              coverage.Table{icon: 0},
					SubstituteGlyphIDs: []glyph.ID{v},
				})
				return []string{"icon.rev"}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := testfont.IconFont("alarm", "alarm_on")
			icon := testfont.GID(f, "alarm_on")
			extra := tc.setup(f, icon)

			got := closeNames(t, f, "alarm_on")
			want := append([]string{"alarm_on"}, extra...)
			if d := cmp.Diff(sorted(want), got); d != "" {
				t.Errorf("closure (-want +got):\n%s", d)
			}
		})
	}
}

// A ligature which needs a glyph outside the closure set does not fire.
func TestLigatureNeedsAllComponents(t *testing.T) {
	f := testfont.IconFont("alarm", "alarm_on")
	icon := testfont.GID(f, "alarm_on")
	x := testfont.AddGlyph(f, "x")
	out := testfont.AddGlyph(f, "alarm_on_x")
	testfont.AddLookup(f, "dlig", &gtab.Gsub4_1{
		Cov:  coverage.Table{icon: 0},
		Repl: [][]gtab.Ligature{{{In: []glyph.ID{x}, Out: out}}},
	})

	got := closeNames(t, f, "alarm_on")
	if d := cmp.Diff([]string{"alarm_on"}, got); d != "" {
		t.Errorf("closure (-want +got):\n%s", d)
	}

	got = closeNames(t, f, "alarm_on", "x")
	if d := cmp.Diff([]string{"alarm_on", "alarm_on_x", "x"}, got); d != "" {
		t.Errorf("closure with x (-want +got):\n%s", d)
	}
}

func TestContextual(t *testing.T) {
	type setup func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex)

	tests := []struct {
		name  string
		setup setup
		seed  []string
		want  []string
	}{
		{
			name: "context format 1",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.SeqContext1{
					Cov: coverage.Table{icon: 0},
					Rules: [][]*gtab.SeqRule{{
						{Actions: []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: nested}}},
					}},
				})
			},
			seed: []string{"alarm_on"},
			want: []string{"alarm_on", "alarm_on.ctx"},
		},
		{
			name: "context format 1, second glyph missing",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.SeqContext1{
					Cov: coverage.Table{icon: 0},
					Rules: [][]*gtab.SeqRule{{
						{
							Input:   []glyph.ID{other},
							Actions: []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: nested}},
						},
					}},
				})
			},
			seed: []string{"alarm_on"},
			want: []string{"alarm_on"},
		},
		{
			name: "context format 2",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.SeqContext2{
					Cov:   coverage.Table{icon: 0},
					Input: classdef.Table{icon: 1},
					Rules: [][]*gtab.ClassSeqRule{
						nil,
						{{Actions: []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: nested}}}},
					},
				})
			},
			seed: []string{"alarm_on"},
			want: []string{"alarm_on", "alarm_on.ctx"},
		},
		{
			name: "context format 3",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.SeqContext3{
					Input:   []coverage.Set{{icon: true}},
					Actions: []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: nested}},
				})
			},
			seed: []string{"alarm_on"},
			want: []string{"alarm_on", "alarm_on.ctx"},
		},
		{
			name: "chained format 1",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.ChainedSeqContext1{
					Cov: coverage.Table{icon: 0},
					Rules: [][]*gtab.ChainedSeqRule{{
						{
							Lookahead: []glyph.ID{icon},
							Actions:   []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: nested}},
						},
					}},
				})
			},
			seed: []string{"alarm_on"},
			want: []string{"alarm_on", "alarm_on.ctx"},
		},
		{
			name: "chained format 1, backtrack missing",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.ChainedSeqContext1{
					Cov: coverage.Table{icon: 0},
					Rules: [][]*gtab.ChainedSeqRule{{
						{
							Backtrack: []glyph.ID{other},
							Actions:   []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: nested}},
						},
					}},
				})
			},
			seed: []string{"alarm_on"},
			want: []string{"alarm_on"},
		},
		{
			name: "chained format 1, backtrack present",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.ChainedSeqContext1{
					Cov: coverage.Table{icon: 0},
					Rules: [][]*gtab.ChainedSeqRule{{
						{
							Backtrack: []glyph.ID{other},
							Actions:   []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: nested}},
						},
					}},
				})
			},
			seed: []string{"alarm_on", "alarm"},
			want: []string{"alarm", "alarm_on", "alarm_on.ctx"},
		},
		{
			name: "chained format 2",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.ChainedSeqContext2{
					Cov:       coverage.Table{icon: 0},
					Backtrack: classdef.Table{other: 1},
					Input:     classdef.Table{icon: 1},
					Lookahead: classdef.Table{},
					Rules: [][]*gtab.ChainedClassSeqRule{
						nil,
						{{
							Backtrack: []uint16{1},
							Actions:   []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: nested}},
						}},
					},
				})
			},
			seed: []string{"alarm_on"},
			want: []string{"alarm_on"},
		},
		{
			name: "chained format 3",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.ChainedSeqContext3{
					Input:   []coverage.Set{{icon: true}},
					Actions: []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: nested}},
				})
			},
			seed: []string{"alarm_on"},
			want: []string{"alarm_on", "alarm_on.ctx"},
		},
		{
			name: "action beyond input",
			setup: func(f *sfnt.Font, icon, other glyph.ID, nested gtab.LookupIndex) {
				testfont.AddLookup(f, "calt", &gtab.SeqContext3{
					Input:   []coverage.Set{{icon: true}},
					Actions: []gtab.SeqLookup{{SequenceIndex: 3, LookupListIndex: nested}},
				})
			},
			seed: []string{"alarm_on"},
			want: []string{"alarm_on"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := testfont.IconFont("alarm", "alarm_on")
			icon := testfont.GID(f, "alarm_on")
			other := testfont.GID(f, "alarm")
			v := testfont.AddGlyph(f, "alarm_on.ctx")
			nested := testfont.AddNested(f, &gtab.Gsub1_2{
				Cov:                coverage.Table{icon: 0},
				SubstituteGlyphIDs: []glyph.ID{v},
			})
			tc.setup(f, icon, other, nested)

			got := closeNames(t, f, tc.seed...)
			if d := cmp.Diff(tc.want, got); d != "" {
				t.Errorf("closure (-want +got):\n%s", d)
			}
		})
	}
}

// A nested lookup only sees the glyphs at its own position.
func TestNestedPosition(t *testing.T) {
	f := testfont.IconFont("alarm", "alarm_on")
	icon := testfont.GID(f, "alarm_on")
	other := testfont.GID(f, "alarm")
	vIcon := testfont.AddGlyph(f, "alarm_on.ctx")
	vOther := testfont.AddGlyph(f, "alarm.ctx")
	nested := testfont.AddNested(f, &gtab.Gsub1_2{
		Cov:                coverage.Table{icon: 0, other: 1},
		SubstituteGlyphIDs: []glyph.ID{vIcon, vOther},
	})
	// icon followed by alarm: substitute at position 1 only
	testfont.AddLookup(f, "calt", &gtab.SeqContext1{
		Cov: coverage.Table{icon: 0},
		Rules: [][]*gtab.SeqRule{{
			{
				Input:   []glyph.ID{other},
				Actions: []gtab.SeqLookup{{SequenceIndex: 1, LookupListIndex: nested}},
			},
		}},
	})

	got := closeNames(t, f, "alarm_on", "alarm")
	want := []string{"alarm", "alarm.ctx", "alarm_on"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("closure (-want +got):\n%s", d)
	}
}

// A substitution chain which runs against lookup order needs more than one
// pass.
func TestFixpoint(t *testing.T) {
	f := testfont.IconFont("alarm", "alarm_on")
	icon := testfont.GID(f, "alarm_on")
	v1 := testfont.GID(f, "alarm")
	v2 := testfont.AddGlyph(f, "alarm.v2")
	v3 := testfont.AddGlyph(f, "alarm.v3")

	// lookup order: v2->v3, v1->v2, icon->v1
	testfont.AddLookup(f, "ss03", &gtab.Gsub1_2{
		Cov:                coverage.Table{v2: 0},
		SubstituteGlyphIDs: []glyph.ID{v3},
	})
	testfont.AddLookup(f, "ss02", &gtab.Gsub1_2{
		Cov:                coverage.Table{v1: 0},
		SubstituteGlyphIDs: []glyph.ID{v2},
	})
	testfont.AddLookup(f, "ss01", &gtab.Gsub1_2{
		Cov:                coverage.Table{icon: 0},
		SubstituteGlyphIDs: []glyph.ID{v1},
	})

	got := closeNames(t, f, "alarm_on")
	want := []string{"alarm", "alarm.v2", "alarm.v3", "alarm_on"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("closure (-want +got):\n%s", d)
	}
}

// A contextual lookup calling itself must terminate.
func TestRecursion(t *testing.T) {
	f := testfont.IconFont("alarm", "alarm_on")
	icon := testfont.GID(f, "alarm_on")
	self := gtab.LookupIndex(len(f.Gsub.LookupList))
	testfont.AddLookup(f, "calt", &gtab.SeqContext3{
		Input:   []coverage.Set{{icon: true}},
		Actions: []gtab.SeqLookup{{SequenceIndex: 0, LookupListIndex: self}},
	})

	got := closeNames(t, f, "alarm_on")
	if d := cmp.Diff([]string{"alarm_on"}, got); d != "" {
		t.Errorf("closure (-want +got):\n%s", d)
	}
}

// Closing a closed set again gives the same set.
func TestIdempotent(t *testing.T) {
	f := testfont.IconFont("alarm", "alarm_on")
	icon := testfont.GID(f, "alarm_on")
	a1 := testfont.AddGlyph(f, "alarm_on.alt1")
	a2 := testfont.AddGlyph(f, "alarm_on.alt2")
	testfont.AddLookup(f, "salt", &gtab.Gsub3_1{
		Cov:        coverage.Table{icon: 0, a1: 1},
		Alternates: [][]glyph.ID{{a1}, {a2}},
	})

	once := Set(f.Gsub, coverage.Set{icon: true})
	twice := Set(f.Gsub, once)
	if d := cmp.Diff(once, twice); d != "" {
		t.Errorf("closure not idempotent (-once +twice):\n%s", d)
	}
	if len(once) != 3 {
		t.Errorf("got %d glyphs, want 3", len(once))
	}
}

func TestErrors(t *testing.T) {
	f := testfont.IconFont("alarm", "alarm_on")
	order := glyphorder.New(f)

	err := Glyphs(f.Gsub, order, NewState("GPOS", "alarm"))
	var tableErr *UnsupportedTableError
	if !errors.As(err, &tableErr) {
		t.Errorf("got %v, want UnsupportedTableError", err)
	}

	err = Glyphs(f.Gsub, order, NewState(TableGSUB, "no_such_icon"))
	var nameErr *glyphorder.UnknownGlyphError
	if !errors.As(err, &nameErr) {
		t.Errorf("got %v, want UnknownGlyphError", err)
	}
}

func sorted(names []string) []string {
	s := NewState(TableGSUB, names...)
	return s.Sorted()
}
