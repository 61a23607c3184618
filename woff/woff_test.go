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
	"errors"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseFlavor(t *testing.T) {
	tests := []struct {
		in   string
		want Flavor
		ext  string
	}{
		{"", None, ""},
		{"none", None, ""},
		{"woff", WOFF, ".woff"},
		{"woff2", WOFF2, ".woff2"},
	}
	for _, tc := range tests {
		got, err := ParseFlavor(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %s, want %s", tc.in, got, tc.want)
		}
		if got.Extension() != tc.ext {
			t.Errorf("%q: extension %q, want %q", tc.in, got.Extension(), tc.ext)
		}
	}

	if _, err := ParseFlavor("eot"); err == nil {
		t.Error("expected an error for unknown flavor")
	}
}

func TestNone(t *testing.T) {
	buf := &bytes.Buffer{}
	_, err := Write(buf, goregular.TTF, None)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), goregular.TTF) {
		t.Error("sfnt data was modified")
	}
}

func originalTables(t *testing.T) map[string][]byte {
	t.Helper()
	font, err := readTables(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return font.Tables
}

func TestWOFF(t *testing.T) {
	buf := &bytes.Buffer{}
	n, err := Write(buf, goregular.TTF, WOFF)
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if n != int64(len(data)) {
		t.Errorf("Write returned %d, wrote %d bytes", n, len(data))
	}

	r := bytes.NewReader(data)
	header := &woffHeader{}
	err = binary.Read(r, binary.BigEndian, header)
	if err != nil {
		t.Fatal(err)
	}
	if header.Signature != woffSignature {
		t.Errorf("wrong signature 0x%08x", header.Signature)
	}
	if header.Flavor != 0x00010000 {
		t.Errorf("wrong flavor 0x%08x", header.Flavor)
	}
	if int(header.Length) != len(data) {
		t.Errorf("length field %d, file size %d", header.Length, len(data))
	}

	records := make([]woffRecord, header.NumTables)
	err = binary.Read(r, binary.BigEndian, records)
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string][]byte)
	prevTag := ""
	for _, rec := range records {
		tag := string(rec.Tag[:])
		if tag <= prevTag {
			t.Errorf("table %q out of order", tag)
		}
		prevTag = tag
		if rec.Offset%4 != 0 {
			t.Errorf("table %q not aligned", tag)
		}

		body := data[rec.Offset : rec.Offset+rec.CompLength]
		if rec.CompLength < rec.OrigLength {
			zr, err := zlib.NewReader(bytes.NewReader(body))
			if err != nil {
				t.Fatal(err)
			}
			body, err = io.ReadAll(zr)
			if err != nil {
				t.Fatal(err)
			}
		}
		if checksum(body) != rec.OrigChecksum {
			t.Errorf("table %q: wrong checksum", tag)
		}
		got[tag] = body
	}

	if d := cmp.Diff(originalTables(t), got); d != "" {
		t.Errorf("tables (-want +got):\n%s", d)
	}
}

func TestWOFF2(t *testing.T) {
	buf := &bytes.Buffer{}
	_, err := Write(buf, goregular.TTF, WOFF2)
	if err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	r := bytes.NewReader(data)
	header := &woff2Header{}
	err = binary.Read(r, binary.BigEndian, header)
	if err != nil {
		t.Fatal(err)
	}
	if header.Signature != woff2Signature {
		t.Errorf("wrong signature 0x%08x", header.Signature)
	}
	if int(header.Length) != len(data) || len(data)%4 != 0 {
		t.Errorf("length field %d, file size %d", header.Length, len(data))
	}

	type entry struct {
		tag    string
		length uint32
	}
	var entries []entry
	for i := 0; i < int(header.NumTables); i++ {
		flags, err := r.ReadByte()
		if err != nil {
			t.Fatal(err)
		}
		var tag string
		if idx := flags & 0x3F; idx == 63 {
			var raw [4]byte
			_, err = io.ReadFull(r, raw[:])
			if err != nil {
				t.Fatal(err)
			}
			tag = string(raw[:])
		} else {
			tag = woff2Tags[idx]
		}
		transform := flags >> 6
		if (tag == "glyf" || tag == "loca") && transform != 3 {
			t.Errorf("table %q has transform %d", tag, transform)
		} else if tag != "glyf" && tag != "loca" && transform != 0 {
			t.Errorf("table %q has transform %d", tag, transform)
		}
		length, err := readBase128(r)
		if err != nil {
			t.Fatal(err)
		}
		entries = append(entries, entry{tag, length})
	}

	start := len(data) - r.Len()
	compressed := data[start : start+int(header.TotalCompressedSize)]
	stream, err := io.ReadAll(brotli.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string][]byte)
	for _, e := range entries {
		if int(e.length) > len(stream) {
			t.Fatalf("table %q truncated", e.tag)
		}
		got[e.tag] = stream[:e.length]
		stream = stream[e.length:]
	}
	if len(stream) != 0 {
		t.Errorf("%d extra bytes in stream", len(stream))
	}

	if d := cmp.Diff(originalTables(t), got); d != "" {
		t.Errorf("tables (-want +got):\n%s", d)
	}
}

func TestBase128(t *testing.T) {
	tests := []struct {
		in   uint32
		want []byte
	}{
		{0, []byte{0x00}},
		{63, []byte{0x3F}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x00}},
		{16383, []byte{0xFF, 0x7F}},
		{16384, []byte{0x81, 0x80, 0x00}},
		{0xFFFFFFFF, []byte{0x8F, 0xFF, 0xFF, 0xFF, 0x7F}},
	}
	for _, tc := range tests {
		got := appendBase128(nil, tc.in)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("%d: got % x, want % x", tc.in, got, tc.want)
		}
		back, err := readBase128(bytes.NewReader(got))
		if err != nil || back != tc.in {
			t.Errorf("%d: decoded %d, %v", tc.in, back, err)
		}
	}
}

func TestMalformed(t *testing.T) {
	_, err := Write(io.Discard, []byte{1, 2}, WOFF)
	if err == nil {
		t.Error("expected an error for truncated data")
	}
}

func readBase128(r io.ByteReader) (uint32, error) {
	var x uint32
	for i := 0; i < 5; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if i == 0 && b == 0x80 {
			return 0, errors.New("leading zero")
		}
		x = x<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return x, nil
		}
	}
	return 0, errors.New("sequence too long")
}

func TestHeaderSizes(t *testing.T) {
	tests := []struct {
		name string
		data any
		want int
	}{
		{"woffHeader", &woffHeader{}, woffHeaderSize},
		{"woffRecord", &woffRecord{}, woffRecordSize},
		{"woff2Header", &woff2Header{}, 48},
	}
	for _, tc := range tests {
		if got := binary.Size(tc.data); got != tc.want {
			t.Errorf("%s: encoded size %d, want %d", tc.name, got, tc.want)
		}
	}
}

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

// TestWriteError checks that errors from the output are passed on.
func TestWriteError(t *testing.T) {
	for _, flavor := range []Flavor{None, WOFF, WOFF2} {
		_, err := Write(failingWriter{}, goregular.TTF, flavor)
		if !errors.Is(err, errWrite) {
			t.Errorf("%s: got %v, want %v", flavor, err, errWrite)
		}
	}
}
