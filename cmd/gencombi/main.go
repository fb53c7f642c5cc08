// Command gencombi computes build configurations covering every valid pair
// of compile-time options, either by searching for a minimum-size cover
// with an embedded SAT solver, by exhaustively enumerating combinations, or
// by emitting the covering problem as a DIMACS CNF.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/arminbiere/satch/internal/configgen"
)

var (
	help    = pflag.BoolP("help", "h", false, "print this command line option summary")
	all     = pflag.BoolP("all", "a", false, "print all possible combinations of options up to <k>")
	dimacs  = pflag.BoolP("dimacs", "d", false, "CNF encoding all pairs for <k>")
	invalid = pflag.BoolP("invalid", "i", false, "only print invalid combinations")
	verbose = pflag.BoolP("verbose", "v", false, "set verbose mode")
	weak    = pflag.Bool("weak", false, "do not require every pair to also be absent from some configuration")
	noSym   = pflag.Bool("no-symmetry-breaking", false, "disable lexicographic symmetry breaking in the search/DIMACS encodings")
)

func die(format string, args ...any) {
	fmt.Fprint(os.Stderr, "gencombi: error: ")
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: gencombi [ <option> ] [ <k> ]\n\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nBy default the embedded SAT solver is used to search for as few as\n"+
			"possible configurations which contain all valid pairs of options.\n"+
			"Use --all to instead generate all valid combinations of at most <k>\n"+
			"options, or --dimacs to print the covering problem as a CNF.\n")
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	k := -1
	switch pflag.NArg() {
	case 0:
	case 1:
		n, err := strconv.Atoi(pflag.Arg(0))
		if err != nil || n <= 0 {
			die("invalid number '%s' (try '-h')", pflag.Arg(0))
		}
		k = n
	default:
		die("multiple numbers '%s' and '%s' (try '-h')", pflag.Arg(0), pflag.Arg(1))
	}

	if k < 0 {
		if *all {
			die("'--all' requires <k> (try '-h')")
		}
		k = 1
	} else if !*dimacs && !*all {
		die("can not use '<k> = %d' in default mode", k)
	}

	if *invalid && !*all {
		die("can only use '--invalid' with '--all'")
	}

	catalog := configgen.DefaultCatalog

	switch {
	case *all:
		for _, cfg := range configgen.EnumerateAll(catalog, k, *invalid) {
			printConfiguration(cfg)
		}

	case *dimacs:
		if err := configgen.WriteDIMACS(os.Stdout, catalog, k, *weak, !*noSym); err != nil {
			die("writing DIMACS output: %v", err)
		}

	default:
		opts := configgen.SearchOptions{
			Catalog:          catalog,
			Weak:             *weak,
			SymmetryBreaking: !*noSym,
		}
		if *verbose {
			opts.Verbose = func(format string, args ...any) {
				fmt.Fprintf(os.Stdout, "c "+format+"\n", args...)
			}
		}
		for _, cfg := range configgen.Search(opts) {
			printConfiguration(cfg)
		}
	}
}

func printConfiguration(cfg configgen.Configuration) {
	fmt.Print("./configure")
	for _, flag := range cfg {
		fmt.Print(" ", flag)
	}
	fmt.Println()
}
