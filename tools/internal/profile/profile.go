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

// Package profile wires the -cpuprofile and -memprofile flags of the
// command line tools to runtime/pprof.
package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Start starts CPU profiling if cpuFile is non-empty.  The returned
// function stops CPU profiling and, if memFile is non-empty, writes an
// allocation profile.  Errors during stop are reported on stderr.
func Start(cpuFile, memFile string) (stop func(), err error) {
	var cpu *os.File
	if cpuFile != "" {
		cpu, err = os.Create(cpuFile)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		err = pprof.StartCPUProfile(cpu)
		if err != nil {
			cpu.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
	}

	stop = func() {
		if cpu != nil {
			pprof.StopCPUProfile()
			cpu.Close()
		}
		if memFile != "" {
			err := writeAllocs(memFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "memory profile: %v\n", err)
			}
		}
	}
	return stop, nil
}

func writeAllocs(fname string) error {
	allocs := pprof.Lookup("allocs")
	if allocs == nil {
		return errors.New("allocs profile not available")
	}
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	runtime.GC()
	err = allocs.WriteTo(fd, 0)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
