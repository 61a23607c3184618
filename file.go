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
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/iconsubset/woff"
)

// OutputPath returns the default output file name for the input font in.
// The suffix "-subset" is added to the file name stem.  If a flavor is
// given, the extension is replaced by the extension of the flavor.
func OutputPath(in string, flavor woff.Flavor) string {
	ext := filepath.Ext(in)
	stem := strings.TrimSuffix(in, ext)
	if flavorExt := flavor.Extension(); flavorExt != "" {
		ext = flavorExt
	}
	return stem + "-subset" + ext
}

// SubsetFile reads the font file in, subsets it to the given icon names and
// writes the result to out.  If out is empty, [OutputPath] is used.
//
// The output file is only created after all names have been resolved
// successfully, and is either written completely or not at all.
func SubsetFile(in, out string, names []string, opt *Options) (*Result, error) {
	if opt == nil {
		opt = &Options{}
	}
	if len(names) == 0 {
		return nil, ErrNoNames
	}
	if out == "" {
		out = OutputPath(in, opt.Flavor)
	}
	if sameFile(in, out) {
		return nil, ErrSameFile
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return nil, &LoadError{File: in, Err: err}
	}
	res, err := Run(data, names, opt)
	if err != nil {
		if loadErr, ok := err.(*LoadError); ok {
			loadErr.File = in
		}
		return nil, err
	}

	buf := &bytes.Buffer{}
	_, err = res.Encode(buf, opt.Flavor)
	if err != nil {
		return nil, err
	}
	err = writeFile(out, buf.Bytes())
	if err != nil {
		return nil, err
	}
	res.Path = out
	return res, nil
}

// writeFile writes data to a temporary file next to fname, and then
// renames it into place.
func writeFile(fname string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(fname), "."+filepath.Base(fname)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	err = tmp.Close()
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	err = os.Chmod(tmpName, 0o644)
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	err = os.Rename(tmpName, fname)
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	if absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}
