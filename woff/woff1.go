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

	"github.com/klauspost/compress/zlib"
)

const woffSignature = 0x774F4646 // "wOFF"

// woffHeader is the fixed-size start of a WOFF 1.0 file.
type woffHeader struct {
	Signature      uint32
	Flavor         uint32
	Length         uint32
	NumTables      uint16
	Reserved       uint16
	TotalSfntSize  uint32
	MajorVersion   uint16
	MinorVersion   uint16
	MetaOffset     uint32
	MetaLength     uint32
	MetaOrigLength uint32
	PrivOffset     uint32
	PrivLength     uint32
}

// woffRecord is one entry of the WOFF 1.0 table directory.
type woffRecord struct {
	Tag          [4]byte
	Offset       uint32
	CompLength   uint32
	OrigLength   uint32
	OrigChecksum uint32
}

const (
	woffHeaderSize = 44
	woffRecordSize = 20
)

// writeWOFF writes a WOFF 1.0 file.  Every table is compressed
// separately, unless compression does not reduce its size.
func writeWOFF(w io.Writer, font *sfntTables) (int64, error) {
	names := font.Names()
	numTables := len(names)

	bodies := make([][]byte, numTables)
	records := make([]woffRecord, numTables)
	offset := uint32(woffHeaderSize + woffRecordSize*numTables)
	for i, name := range names {
		orig := font.Tables[name]
		body, err := compressTable(orig)
		if err != nil {
			return 0, err
		}
		bodies[i] = body

		copy(records[i].Tag[:], name)
		records[i].Offset = offset
		records[i].CompLength = uint32(len(body))
		records[i].OrigLength = uint32(len(orig))
		records[i].OrigChecksum = checksum(orig)

		offset += pad4(uint32(len(body)))
	}

	header := &woffHeader{
		Signature:     woffSignature,
		Flavor:        font.ScalerType,
		Length:        offset,
		NumTables:     uint16(numTables),
		TotalSfntSize: font.SfntSize(),
		MajorVersion:  1,
	}

	buf := &bytes.Buffer{}
	err := binary.Write(buf, binary.BigEndian, header)
	if err != nil {
		return 0, err
	}
	err = binary.Write(buf, binary.BigEndian, records)
	if err != nil {
		return 0, err
	}

	var totalSize int64
	n, err := w.Write(buf.Bytes())
	totalSize += int64(n)
	if err != nil {
		return totalSize, err
	}
	var pad [3]byte
	for _, body := range bodies {
		n, err := w.Write(body)
		totalSize += int64(n)
		if err != nil {
			return totalSize, err
		}
		if k := n % 4; k != 0 {
			l, err := w.Write(pad[:4-k])
			totalSize += int64(l)
			if err != nil {
				return totalSize, err
			}
		}
	}
	return totalSize, nil
}

// compressTable returns the zlib-compressed table data, or the original
// data if compression does not help.
func compressTable(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	_, err = zw.Write(data)
	if err != nil {
		return nil, err
	}
	err = zw.Close()
	if err != nil {
		return nil, err
	}
	if buf.Len() >= len(data) {
		return data, nil
	}
	return buf.Bytes(), nil
}
