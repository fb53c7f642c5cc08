// Command genfeatures reads features.csv, implied.csv and clashing.csv from
// a directory and regenerates the shell fragments and C headers derived
// from them, so that the option list, their implications, and their clashes
// never need to be kept consistent by hand across multiple files.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/pflag"

	"github.com/arminbiere/satch/internal/features"
)

var (
	verbose  = pflag.BoolP("verbose", "v", false, "increase verbose level")
	pedantic = pflag.BoolP("pedantic", "p", false, "pedantically treat unsorted features and pairs as error")
	list     = pflag.BoolP("list", "l", false, "list features files that can be generated")
	dir      = pflag.String("dir", ".", "directory containing features.csv, implied.csv, clashing.csv")
	out      = pflag.String("out", ".", "directory to write generated files into")
)

func die(format string, args ...any) {
	fmt.Fprint(os.Stderr, "genfeatures: error: ")
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func message(format string, args ...any) {
	if *verbose {
		fmt.Printf(format+"\n", args...)
	}
}

func main() {
	pflag.Parse()

	if *list {
		names := features.GeneratorNames()
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	requested := pflag.Args()
	all := len(requested) == 0
	for _, name := range requested {
		if name == "all" {
			all = true
			continue
		}
		if _, ok := features.Generators[name]; !ok {
			die("can not generate '%s' (try '-l')", name)
		}
	}

	featuresFile := openFile(filepath.Join(*dir, "features.csv"))
	impliedFile := openFile(filepath.Join(*dir, "implied.csv"))
	clashingFile := openFile(filepath.Join(*dir, "clashing.csv"))
	defer featuresFile.Close()
	defer impliedFile.Close()
	defer clashingFile.Close()

	set, diags, err := features.Load(featuresFile, impliedFile, clashingFile, features.LoadOptions{Pedantic: *pedantic})
	if err != nil {
		die("%v", err)
	}
	for _, w := range diags {
		fmt.Fprintf(os.Stderr, "genfeatures: warning: %s\n", w)
	}
	message("read %d features", len(set.Features))

	if all {
		message("generating all files")
		for _, name := range features.GeneratorNames() {
			generate(set, name)
		}
		return
	}

	for _, name := range requested {
		if name == "all" {
			continue
		}
		generate(set, name)
	}
}

func openFile(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		die("could not read '%s'", path)
	}
	return f
}

func generate(set *features.Set, name string) {
	gen := features.Generators[name]
	path := filepath.Join(*out, name)
	f, err := os.Create(path)
	if err != nil {
		die("could not write '%s'", path)
	}
	defer f.Close()
	if err := gen(f, set); err != nil {
		die("generating '%s': %v", path, err)
	}
	message("generated '%s'", path)
}
