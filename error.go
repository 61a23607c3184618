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
	"errors"

	"seehuhn.de/go/iconsubset/activation"
)

// ErrNoNames is returned if no icon names are given.
var ErrNoNames = activation.ErrNoNames

// ErrSeparatorLigates is returned if the separator used for the activation
// text joins with the icon characters.
var ErrSeparatorLigates = activation.ErrSeparatorLigates

// ErrSameFile is returned by [SubsetFile] if the output file would
// overwrite the input file.
var ErrSameFile = errors.New("output file is the input file")

// LoadError is returned if the input font cannot be read.
type LoadError struct {
	File string
	Err  error
}

func (err *LoadError) Error() string {
	middle := ""
	if err.File != "" {
		middle = " " + err.File
	}
	tail := ""
	if err.Err != nil {
		tail = ": " + err.Err.Error()
	}
	return "cannot load font" + middle + tail
}

func (err *LoadError) Unwrap() error {
	return err.Err
}
