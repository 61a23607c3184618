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

package shape

import (
	"golang.org/x/text/language"

	"seehuhn.de/go/sfnt"
)

// Layouter shapes text using the OpenType layout engine of
// seehuhn.de/go/sfnt.
type Layouter struct {
	layouter *sfnt.Layouter
}

// NewLayouter returns a shaper which applies the default GSUB features of
// the font for the given language.
func NewLayouter(f *sfnt.Font, lang language.Tag) (*Layouter, error) {
	layouter, err := f.NewLayouter(lang, nil, nil)
	if err != nil {
		return nil, err
	}
	return &Layouter{layouter: layouter}, nil
}

// Shape implements the [Shaper] interface.
func (l *Layouter) Shape(text string) ([]Glyph, error) {
	buf := l.layouter.Layout(text)

	res := make([]Glyph, len(buf))
	pos := 0
	for i, g := range buf {
		res[i] = Glyph{GID: g.GID, Cluster: pos}
		pos += len(g.Text)
	}
	tracer().Debugf("sfnt: %q -> %d glyphs", text, len(res))
	return res, nil
}
