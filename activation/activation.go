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

// Package activation finds the glyphs which a list of icon names selects.
//
// Every icon name must shape to exactly one glyph, the icon glyph.  In
// addition, the characters used in the names are shaped one by one, to find
// the glyphs which typing these characters can produce on their own.
package activation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"

	"seehuhn.de/go/iconsubset/glyphorder"
	"seehuhn.de/go/iconsubset/shape"
)

func tracer() tracing.Trace {
	return tracing.Select("iconsubset.activation")
}

// DefaultSeparator is placed between the characters when the activation
// glyphs are shaped.
const DefaultSeparator = "\n"

// Options control the activation resolver.
type Options struct {
	// Separator is inserted between characters, to prevent them from
	// forming ligatures with each other.  If this is empty,
	// [DefaultSeparator] is used.
	Separator string
}

// Icon describes the glyph of one icon name.
type Icon struct {
	Name      string
	GID       glyph.ID
	GlyphName string
}

// Result holds the glyphs selected by a list of icon names.
type Result struct {
	// Activation contains the glyphs produced by the characters of the icon
	// names, shaped in isolation.
	Activation coverage.Set

	// IconGlyphs contains one glyph per icon name.
	IconGlyphs coverage.Set

	// Icons lists the icon names in sorted order.
	Icons []Icon
}

// IconGlyphNames returns the glyph names of the icon glyphs, in the order of
// r.Icons.  Icons without a glyph name are skipped.
func (r *Result) IconGlyphNames() []string {
	var res []string
	for _, icon := range r.Icons {
		if icon.GlyphName != "" {
			res = append(res, icon.GlyphName)
		}
	}
	return res
}

// Resolve shapes the icon names and returns the selected glyphs.
//
// If order is non-nil, it is used to record the glyph names of the icon
// glyphs.  Resolution fails as a whole if any of the names does not shape
// to a single glyph.
func Resolve(s shape.Shaper, order *glyphorder.Order, names []string, opt *Options) (*Result, error) {
	if opt == nil {
		opt = &Options{}
	}
	sep := opt.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	names = slices.Clone(names)
	slices.Sort(names)
	names = slices.Compact(names)
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	activation, err := activationGlyphs(s, names, sep)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Activation: activation,
		IconGlyphs: make(coverage.Set, len(names)),
	}
	ambiguous := &AmbiguousNameError{}
	for _, name := range names {
		gg, err := s.Shape(name)
		if err != nil {
			return nil, fmt.Errorf("shaping %q: %w", name, err)
		}
		if len(gg) != 1 {
			ambiguous.Icons = append(ambiguous.Icons, Ambiguous{Name: name, NumGlyphs: len(gg)})
			continue
		}

		icon := Icon{Name: name, GID: gg[0].GID}
		if order != nil {
			icon.GlyphName = order.Name(icon.GID)
		}
		res.Icons = append(res.Icons, icon)
		res.IconGlyphs[icon.GID] = true
		tracer().Debugf("icon %q -> glyph %d %q", name, icon.GID, icon.GlyphName)
	}
	if len(ambiguous.Icons) > 0 {
		return nil, ambiguous
	}

	return res, nil
}

// activationGlyphs shapes the distinct characters of all names, joined by
// sep, and returns the glyphs produced.
func activationGlyphs(s shape.Shaper, names []string, sep string) (coverage.Set, error) {
	charSet := make(map[rune]bool)
	for _, name := range names {
		for _, r := range name {
			charSet[r] = true
		}
	}
	chars := maps.Keys(charSet)
	slices.Sort(chars)

	parts := make([]string, len(chars))
	for i, r := range chars {
		parts[i] = string(r)
	}
	text := strings.Join(parts, sep)

	gg, err := s.Shape(text)
	if err != nil {
		return nil, fmt.Errorf("shaping activation text: %w", err)
	}

	// Every character must start a cluster of its own.  Otherwise the
	// separator has formed a ligature with one of the characters.
	clusters := make(map[int]bool, len(gg))
	for _, g := range gg {
		clusters[g.Cluster] = true
	}
	pos := 0
	sepLen := len([]rune(sep))
	for range chars {
		if !clusters[pos] {
			return nil, fmt.Errorf("separator %q: %w", sep, ErrSeparatorLigates)
		}
		pos += 1 + sepLen
	}

	res := make(coverage.Set, len(gg))
	for _, g := range gg {
		res[g.GID] = true
	}
	tracer().Debugf("%d characters -> %d activation glyphs", len(chars), len(res))
	return res, nil
}

var (
	// ErrNoNames is returned if no icon names are given.
	ErrNoNames = errors.New("no icon names given")

	// ErrSeparatorLigates is returned if the separator joins with the icon
	// characters during shaping.
	ErrSeparatorLigates = errors.New("separator forms ligatures")
)

// Ambiguous describes an icon name which does not shape to a single glyph.
type Ambiguous struct {
	Name      string
	NumGlyphs int
}

// AmbiguousNameError is returned if one or more icon names do not shape to
// exactly one glyph.  The names are listed in sorted order.
type AmbiguousNameError struct {
	Icons []Ambiguous
}

func (err *AmbiguousNameError) Error() string {
	parts := make([]string, len(err.Icons))
	for i, icon := range err.Icons {
		parts[i] = fmt.Sprintf("%q (%d glyphs)", icon.Name, icon.NumGlyphs)
	}
	if len(parts) == 1 {
		return "ambiguous or unrecognized icon name " + parts[0]
	}
	return "ambiguous or unrecognized icon names " + strings.Join(parts, ", ")
}

// Names returns the offending icon names.
func (err *AmbiguousNameError) Names() []string {
	res := make([]string, len(err.Icons))
	for i, icon := range err.Icons {
		res[i] = icon.Name
	}
	return res
}
