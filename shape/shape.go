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

// Package shape converts text to glyph sequences.
//
// Two shaping engines are available: a HarfBuzz port, which is the
// reference for how icon names render in browsers, and the OpenType
// layouter of seehuhn.de/go/sfnt.
package shape

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

// tracer traces with key 'iconsubset.shape'
func tracer() tracing.Trace {
	return tracing.Select("iconsubset.shape")
}

// Glyph is one glyph of a shaped text.
type Glyph struct {
	GID glyph.ID

	// Cluster is the index of the first rune of the text which
	// produced this glyph.
	Cluster int
}

// Shaper maps a text to a sequence of glyphs, applying the
// substitution rules of a font.
type Shaper interface {
	Shape(text string) ([]Glyph, error)
}

// Kind selects a shaping engine.
type Kind string

// These are the supported shaping engines.
const (
	KindHarfBuzz Kind = "harfbuzz"
	KindSfnt     Kind = "sfnt"
)

// ParseKind converts a command line value to a Kind.
// The empty string selects HarfBuzz.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", KindHarfBuzz:
		return KindHarfBuzz, nil
	case KindSfnt:
		return KindSfnt, nil
	}
	return "", fmt.Errorf("unknown shaper %q (want %q or %q)", s, KindHarfBuzz, KindSfnt)
}

// New returns a shaper of the given kind.  The HarfBuzz engine works on
// the binary font data, the sfnt engine on the decoded font.  The language
// is only used by the sfnt engine.
func New(kind Kind, data []byte, f *sfnt.Font, lang language.Tag) (Shaper, error) {
	switch kind {
	case "", KindHarfBuzz:
		h, err := NewHarfBuzz(data)
		if err != nil {
			return nil, err
		}
		return h, nil
	case KindSfnt:
		l, err := NewLayouter(f, lang)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, fmt.Errorf("unknown shaper %q", kind)
}

// GIDs returns the glyph IDs of a shaped text.
func GIDs(gg []Glyph) []glyph.ID {
	res := make([]glyph.ID, len(gg))
	for i, g := range gg {
		res[i] = g.GID
	}
	return res
}
