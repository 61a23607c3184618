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

// Package woff packages sfnt fonts as web fonts.
//
// Both WOFF 1.0 and WOFF 2.0 are supported.  For WOFF 2.0, all tables are
// stored with the null transform.  No metadata or private data blocks are
// written.
package woff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/sfnt/header"
)

// Flavor selects the container format of a font file.
type Flavor int

// These are the supported flavors.
const (
	None  Flavor = iota // plain sfnt font
	WOFF                // WOFF 1.0
	WOFF2               // WOFF 2.0
)

// ParseFlavor converts a flavor name into a Flavor.
// The empty string selects [None].
func ParseFlavor(s string) (Flavor, error) {
	switch s {
	case "", "none":
		return None, nil
	case "woff":
		return WOFF, nil
	case "woff2":
		return WOFF2, nil
	}
	return None, fmt.Errorf("unknown flavor %q", s)
}

func (f Flavor) String() string {
	switch f {
	case None:
		return "none"
	case WOFF:
		return "woff"
	case WOFF2:
		return "woff2"
	}
	return fmt.Sprintf("Flavor(%d)", int(f))
}

// Extension returns the file name extension for the flavor, or the empty
// string for [None].
func (f Flavor) Extension() string {
	switch f {
	case WOFF:
		return ".woff"
	case WOFF2:
		return ".woff2"
	}
	return ""
}

// Write writes the sfnt font in sfntData to w, using the given flavor.
func Write(w io.Writer, sfntData []byte, flavor Flavor) (int64, error) {
	if flavor == None {
		n, err := w.Write(sfntData)
		return int64(n), err
	}

	font, err := readTables(sfntData)
	if err != nil {
		return 0, err
	}

	switch flavor {
	case WOFF:
		return writeWOFF(w, font)
	case WOFF2:
		return writeWOFF2(w, font)
	}
	return 0, fmt.Errorf("unknown flavor %d", int(flavor))
}

// sfntTables holds the contents of an sfnt file.
type sfntTables struct {
	ScalerType uint32
	Tables     map[string][]byte
}

func readTables(data []byte) (*sfntTables, error) {
	if len(data) < 4 {
		return nil, errMalformed
	}
	r := bytes.NewReader(data)
	h, err := header.Read(r)
	if err != nil {
		return nil, err
	}

	res := &sfntTables{
		ScalerType: binary.BigEndian.Uint32(data),
		Tables:     make(map[string][]byte, len(h.Toc)),
	}
	for name := range h.Toc {
		body, err := h.ReadTableBytes(r, name)
		if err != nil {
			return nil, err
		}
		res.Tables[name] = body
	}
	return res, nil
}

// Names returns the table names in tag order.
func (f *sfntTables) Names() []string {
	names := maps.Keys(f.Tables)
	slices.Sort(names)
	return names
}

// SfntSize returns the size of the uncompressed font.
func (f *sfntTables) SfntSize() uint32 {
	size := uint32(12 + 16*len(f.Tables))
	for _, body := range f.Tables {
		size += pad4(uint32(len(body)))
	}
	return size
}

func pad4(n uint32) uint32 {
	return (n + 3) &^ 3
}

// checksum computes the sfnt checksum of a table.
func checksum(data []byte) uint32 {
	var sum uint32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}
	if len(data) > 0 {
		var buf [4]byte
		copy(buf[:], data)
		sum += binary.BigEndian.Uint32(buf[:])
	}
	return sum
}

var errMalformed = errors.New("woff: malformed sfnt data")
