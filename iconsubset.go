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

package iconsubset

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/maps"
	"golang.org/x/text/language"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/opentype/coverage"

	"seehuhn.de/go/iconsubset/activation"
	"seehuhn.de/go/iconsubset/closure"
	"seehuhn.de/go/iconsubset/glyphorder"
	"seehuhn.de/go/iconsubset/keepset"
	"seehuhn.de/go/iconsubset/shape"
	"seehuhn.de/go/iconsubset/subset"
	"seehuhn.de/go/iconsubset/woff"
)

func tracer() tracing.Trace {
	return tracing.Select("iconsubset")
}

// Options control the subsetting process.
// The zero value selects the defaults.
type Options struct {
	// Separator is placed between the characters of the activation text.
	// The default is a newline.
	Separator string

	// Shaper selects the shaping engine.  The default is HarfBuzz.
	Shaper shape.Kind

	// Language is passed to the sfnt shaping engine.
	Language language.Tag

	// LayoutClosure, if set, lets the subsetter close the activation
	// glyphs over all substitution rules.  This keeps sibling icons, for
	// example "alarm" for "alarm_on".
	LayoutClosure bool

	// Flavor selects the output format used by [SubsetFile].
	Flavor woff.Flavor
}

// Result describes a subset font.
type Result struct {
	// Font is the subset font.
	Font *sfnt.Font

	// Icons lists the requested icons, in sorted order.  Glyph IDs refer to
	// the original font.
	Icons []activation.Icon

	// Keep is the set of glyphs kept from the original font.
	Keep coverage.Set

	// Mapping translates glyph IDs from the original font to the subset.
	Mapping *subset.Mapping

	// OrigGlyphs is the number of glyphs in the original font.
	OrigGlyphs int

	// Path is the output file name.  This is only set by [SubsetFile].
	Path string
}

// Run subsets the font in data to the given icon names.
func Run(data []byte, names []string, opt *Options) (*Result, error) {
	if opt == nil {
		opt = &Options{}
	}
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	shaper, err := shape.New(opt.Shaper, data, f, opt.Language)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return RunFont(f, shaper, names, opt)
}

// RunFont subsets the font f to the given icon names, using shaper to map
// names to glyphs.  The font f is not modified.
func RunFont(f *sfnt.Font, shaper shape.Shaper, names []string, opt *Options) (*Result, error) {
	if opt == nil {
		opt = &Options{}
	}

	order := glyphorder.New(f)
	act, err := activation.Resolve(shaper, order, names, &activation.Options{
		Separator: opt.Separator,
	})
	if err != nil {
		return nil, err
	}

	var (
		out *sfnt.Font
		m   *subset.Mapping
	)
	keep := keepset.Assemble(act, nil)
	if opt.LayoutClosure {
		s := subset.New(&subset.Options{LayoutClosure: true})
		s.Populate(sortedGlyphs(keep)...)
		out, m, err = s.Subset(f)
		if err != nil {
			return nil, err
		}
		keep = make(coverage.Set, m.Len())
		for gid := 0; gid < m.Len(); gid++ {
			keep[m.Old(glyph.ID(gid))] = true
		}
	} else {
		state := closure.NewState(closure.TableGSUB, act.IconGlyphNames()...)
		err = closure.Glyphs(f.Gsub, order, state)
		if err != nil {
			return nil, err
		}
		closed, err := order.IDs(state.Sorted())
		if err != nil {
			return nil, err
		}
		keep = keepset.Assemble(act, closed)
		err = keepset.Check(keep, act)
		if err != nil {
			return nil, err
		}
		out, m, err = keepset.Apply(f, keep)
		if err != nil {
			return nil, err
		}
	}
	tracer().Infof("kept %d of %d glyphs for %d icons", m.Len(), f.NumGlyphs(), len(act.Icons))

	return &Result{
		Font:       out,
		Icons:      act.Icons,
		Keep:       keep,
		Mapping:    m,
		OrigGlyphs: f.NumGlyphs(),
	}, nil
}

// KeepList returns the kept glyphs of the original font, in glyph order.
func (r *Result) KeepList() []glyph.ID {
	return sortedGlyphs(r.Keep)
}

func sortedGlyphs(set coverage.Set) []glyph.ID {
	gids := maps.Keys(set)
	slices.Sort(gids)
	return gids
}

// Encode writes the subset font to w.
func (r *Result) Encode(w io.Writer, flavor woff.Flavor) (int64, error) {
	buf := &bytes.Buffer{}
	_, err := r.Font.Write(buf)
	if err != nil {
		return 0, fmt.Errorf("encoding subset font: %w", err)
	}
	return woff.Write(w, buf.Bytes(), flavor)
}
