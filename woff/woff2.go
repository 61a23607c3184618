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

package woff

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/andybalholm/brotli"
)

const woff2Signature = 0x774F4632 // "wOF2"

// woff2Header is the fixed-size start of a WOFF 2.0 file.
type woff2Header struct {
	Signature           uint32
	Flavor              uint32
	Length              uint32
	NumTables           uint16
	Reserved            uint16
	TotalSfntSize       uint32
	TotalCompressedSize uint32
	MajorVersion        uint16
	MinorVersion        uint16
	MetaOffset          uint32
	MetaLength          uint32
	MetaOrigLength      uint32
	PrivOffset          uint32
	PrivLength          uint32
}

// woff2Tags lists the tables which have a short code in the WOFF 2.0 table
// directory.
var woff2Tags = []string{
	"cmap", "head", "hhea", "hmtx", "maxp", "name", "OS/2", "post",
	"cvt ", "fpgm", "glyf", "loca", "prep", "CFF ", "VORG", "EBDT",
	"EBLC", "gasp", "hdmx", "kern", "LTSH", "PCLT", "VDMX", "vhea",
	"vmtx", "BASE", "GDEF", "GPOS", "GSUB", "EBSC", "JSTF", "MATH",
	"CBDT", "CBLC", "COLR", "CPAL", "SVG ", "sbix", "acnt", "avar",
	"bdat", "bloc", "bsln", "cvar", "fdsc", "feat", "fmtx", "fvar",
	"gvar", "hsty", "just", "lcar", "mort", "morx", "opbd", "prop",
	"trak", "Zapf", "Silf", "Glat", "Gloc", "Feat", "Sill",
}

// In WOFF 2.0, transform version 0 of glyf and loca is the glyph transform.
// Version 3 is the null transform for these two tables.
const nullTransformGlyf = 3

// woff2Order returns the table names in directory order.  The loca table
// must directly follow glyf.
func woff2Order(font *sfntTables) []string {
	var res []string
	for _, name := range font.Names() {
		switch name {
		case "loca":
			if _, ok := font.Tables["glyf"]; !ok {
				res = append(res, name)
			}
		case "glyf":
			res = append(res, name)
			if _, ok := font.Tables["loca"]; ok {
				res = append(res, "loca")
			}
		default:
			res = append(res, name)
		}
	}
	return res
}

// writeWOFF2 writes a WOFF 2.0 file.  All tables are concatenated and
// compressed together into a single Brotli stream.
func writeWOFF2(w io.Writer, font *sfntTables) (int64, error) {
	names := woff2Order(font)

	dir := &bytes.Buffer{}
	stream := &bytes.Buffer{}
	bw := brotli.NewWriterLevel(stream, brotli.BestCompression)
	for _, name := range names {
		body := font.Tables[name]
		writeDirEntry(dir, name)
		dir.Write(appendBase128(nil, uint32(len(body))))
		_, err := bw.Write(body)
		if err != nil {
			return 0, err
		}
	}
	err := bw.Close()
	if err != nil {
		return 0, err
	}

	const headerSize = 48
	compressedSize := uint32(stream.Len())
	length := pad4(headerSize + uint32(dir.Len()) + compressedSize)
	header := &woff2Header{
		Signature:           woff2Signature,
		Flavor:              font.ScalerType,
		Length:              length,
		NumTables:           uint16(len(names)),
		TotalSfntSize:       font.SfntSize(),
		TotalCompressedSize: compressedSize,
		MajorVersion:        1,
	}

	buf := &bytes.Buffer{}
	err = binary.Write(buf, binary.BigEndian, header)
	if err != nil {
		return 0, err
	}
	buf.Write(dir.Bytes())
	buf.Write(stream.Bytes())
	for uint32(buf.Len()) < length {
		buf.WriteByte(0)
	}

	return buf.WriteTo(w)
}

// writeDirEntry writes the flags byte of a table directory entry, followed
// by the tag if there is no short code for it.
func writeDirEntry(dir *bytes.Buffer, name string) {
	var transform byte
	if name == "glyf" || name == "loca" {
		transform = nullTransformGlyf
	}
	tagIdx := byte(63)
	for i, tag := range woff2Tags {
		if tag == name {
			tagIdx = byte(i)
			break
		}
	}
	dir.WriteByte(transform<<6 | tagIdx)
	if tagIdx == 63 {
		dir.WriteString(name)
	}
}

// appendBase128 appends the UIntBase128 encoding of x to buf.
func appendBase128(buf []byte, x uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(x & 0x7F)
	for x >>= 7; x > 0; x >>= 7 {
		i--
		tmp[i] = byte(x&0x7F) | 0x80
	}
	return append(buf, tmp[i:]...)
}
