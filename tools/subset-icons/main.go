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

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"golang.org/x/term"
	"golang.org/x/text/language"

	"seehuhn.de/go/iconsubset"
	"seehuhn.de/go/iconsubset/shape"
	"seehuhn.de/go/iconsubset/tools/internal/buildinfo"
	"seehuhn.de/go/iconsubset/tools/internal/profile"
	"seehuhn.de/go/iconsubset/woff"
)

var (
	flavorArg     = flag.String("flavor", "", "output `format`: none, woff or woff2")
	outArg        = flag.String("o", "", "output `file`, or - for standard output")
	sepArg        = flag.String("sep", "", "separator between characters when shaping (default newline)")
	shaperArg     = flag.String("shaper", "harfbuzz", "shaping `engine`: harfbuzz or sfnt")
	langArg       = flag.String("lang", "und", "BCP 47 `language` tag for the sfnt shaper")
	layoutClosure = flag.Bool("layout-closure", false, "close the character glyphs over GSUB (keeps sibling icons)")
	verbose       = flag.Bool("v", false, "print debug information")
	cpuprofile    = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile    = flag.String("memprofile", "", "write memory profile to `file`")
)

// traceKeys lists the tracers used by the library packages.
var traceKeys = []string{
	"iconsubset",
	"iconsubset.activation",
	"iconsubset.closure",
	"iconsubset.keepset",
	"iconsubset.shape",
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "subset-icons \u2014 reduce an icon font to the given icons\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("subset-icons"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  subset-icons [options] <font.ttf> <icon name>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  font.ttf    the icon font (TrueType or OpenType)\n")
		fmt.Fprintf(os.Stderr, "  icon name   one or more icon names, e.g. alarm_on\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  subset-icons MaterialIcons-Regular.ttf alarm_on menu\n")
		fmt.Fprintf(os.Stderr, "  subset-icons -flavor woff2 -o icons.woff2 MaterialIcons-Regular.ttf home\n")
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	err := setupTracing(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupTracing(debug bool) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = "Error"
	}
	err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true))
	if err != nil {
		return errors.New("error configuring tracing")
	}
	tracing.SetTraceSelector(trace2go.Selector())

	if debug {
		for _, key := range traceKeys {
			tracing.Select(key).SetTraceLevel(tracing.LevelDebug)
		}
	}
	return nil
}

func run() error {
	stop, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	opt, err := options()
	if err != nil {
		return err
	}
	in := flag.Arg(0)
	names := flag.Args()[1:]

	if *outArg == "-" {
		return writeStdout(in, names, opt)
	}

	res, err := iconsubset.SubsetFile(in, *outArg, names, opt)
	if err != nil {
		return err
	}
	fmt.Println("Wrote subset to", res.Path)
	printSummary(res)
	return nil
}

// options converts the command line flags into subsetting options.
func options() (*iconsubset.Options, error) {
	flavor, err := woff.ParseFlavor(*flavorArg)
	if err != nil {
		return nil, err
	}
	kind, err := shape.ParseKind(*shaperArg)
	if err != nil {
		return nil, err
	}
	lang, err := language.Parse(*langArg)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", *langArg, err)
	}

	opt := &iconsubset.Options{
		Separator:     *sepArg,
		Shaper:        kind,
		Language:      lang,
		LayoutClosure: *layoutClosure,
		Flavor:        flavor,
	}
	return opt, nil
}

func writeStdout(in string, names []string, opt *iconsubset.Options) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("refusing to write font data to a terminal")
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return &iconsubset.LoadError{File: in, Err: err}
	}
	res, err := iconsubset.Run(data, names, opt)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	_, err = res.Encode(buf, opt.Flavor)
	if err != nil {
		return err
	}
	_, err = buf.WriteTo(os.Stdout)
	if err != nil {
		return err
	}
	printSummary(res)
	return nil
}

func printSummary(res *iconsubset.Result) {
	fmt.Fprintf(os.Stderr, "%d icons, kept %d of %d glyphs\n",
		len(res.Icons), res.Mapping.Len(), res.OrigGlyphs)
	if *verbose {
		for _, icon := range res.Icons {
			newGID, _ := res.Mapping.New(icon.GID)
			fmt.Fprintf(os.Stderr, "  %-24s glyph %5d -> %5d  %s\n",
				icon.Name, icon.GID, newGID, icon.GlyphName)
		}
	}
}
