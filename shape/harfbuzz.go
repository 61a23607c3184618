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
	"bytes"
	"fmt"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"

	"seehuhn.de/go/sfnt/glyph"
)

// HarfBuzz shapes text with the HarfBuzz port from
// github.com/benoitkugler/textlayout.
type HarfBuzz struct {
	font *hb.Font
}

// NewHarfBuzz parses the binary font data for use with HarfBuzz.
func NewHarfBuzz(data []byte) (*HarfBuzz, error) {
	face, err := hbtt.Parse(bytes.NewReader(data), true)
	if err != nil {
		return nil, fmt.Errorf("harfbuzz: %w", err)
	}
	return &HarfBuzz{font: hb.NewFont(face)}, nil
}

// Shape implements the [Shaper] interface.
//
// Direction, script and language are guessed from the text.
// Only the default features of the font are applied.
func (h *HarfBuzz) Shape(text string) ([]Glyph, error) {
	runes := []rune(text)

	buf := hb.NewBuffer()
	buf.Props = segmentProperties(runes)
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(h.font, nil)

	res := make([]Glyph, len(buf.Info))
	for i, info := range buf.Info {
		res[i] = Glyph{
			GID:     glyph.ID(info.Glyph),
			Cluster: int(info.Cluster),
		}
	}
	tracer().Debugf("harfbuzz: %q -> %d glyphs", text, len(res))
	return res, nil
}

// segmentProperties guesses script, direction and language for a text.
// The script is that of the first rune which has a script of its own.
func segmentProperties(runes []rune) hb.SegmentProperties {
	props := hb.SegmentProperties{
		Script:    hblang.Common,
		Direction: hb.LeftToRight,
		Language:  hblang.DefaultLanguage(),
	}
	for _, r := range runes {
		if script := hblang.LookupScript(r); script.IsRealScript() {
			props.Script = script
			break
		}
	}
	if rightToLeft[props.Script] {
		props.Direction = hb.RightToLeft
	}
	return props
}

// rightToLeft lists the scripts which are written horizontally from right
// to left.
var rightToLeft = map[hblang.Script]bool{
	hblang.Adlam:                  true,
	hblang.Arabic:                 true,
	hblang.Avestan:                true,
	hblang.Chorasmian:             true,
	hblang.Cypriot:                true,
	hblang.Elymaic:                true,
	hblang.Hanifi_Rohingya:        true,
	hblang.Hatran:                 true,
	hblang.Hebrew:                 true,
	hblang.Imperial_Aramaic:       true,
	hblang.Inscriptional_Pahlavi:  true,
	hblang.Inscriptional_Parthian: true,
	hblang.Kharoshthi:             true,
	hblang.Lydian:                 true,
	hblang.Mandaic:                true,
	hblang.Manichaean:             true,
	hblang.Mende_Kikakui:          true,
	hblang.Meroitic_Cursive:       true,
	hblang.Meroitic_Hieroglyphs:   true,
	hblang.Nabataean:              true,
	hblang.Nko:                    true,
	hblang.Old_North_Arabian:      true,
	hblang.Old_Sogdian:            true,
	hblang.Old_South_Arabian:      true,
	hblang.Old_Turkic:             true,
	hblang.Palmyrene:              true,
	hblang.Phoenician:             true,
	hblang.Psalter_Pahlavi:        true,
	hblang.Samaritan:              true,
	hblang.Sogdian:                true,
	hblang.Syriac:                 true,
	hblang.Thaana:                 true,
	hblang.Yezidi:                 true,
}
