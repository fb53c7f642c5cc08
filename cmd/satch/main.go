// Command satch is the stand-alone SAT solver binary: it reads a DIMACS or
// XNF instance, searches for a model, and optionally writes a DRUP proof.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/arminbiere/satch/internal/frontend"
)

const version = "1.0.0"

var usage = `usage: satch [ <option> ... ] [ <dimacs> [ <proof> ] ]

where '<option>' is one of the following

  -h                   print this option summary
  --version            print solver version and exit
  --id                 print build identifier

  -a, --ascii          use ASCII format to write proof to file
  -b, --binary         use binary format to write proof to '<stdout>'
  -f, --force          overwrite proof files and relax parsing
  -n, --no-witness     disable printing of satisfying assignment

  -l, --log            enable logging messages
  -q, --quiet          disable verbose messages
  -v, --verbose        increment verbose level
  --conflicts N        limit the search to N conflicts (-1: unlimited)

where '<dimacs>' is an optionally compressed CNF/XNF in DIMACS format, by
default read from '<stdin>'. Decompression is picked by path suffix
('.gz', '.bz2', '.xz').

Finally '<proof>' is the path to a file to which, if specified, a proof is
written in the DRUP format. Both '<dimacs>' and '<proof>' can also be '-'
in which case the input is read from '<stdin>' and the proof is written to
'<stdout>'.
`

var (
	help      = pflag.BoolP("help", "h", false, "print this option summary")
	showVer   = pflag.Bool("version", false, "print solver version and exit")
	id        = pflag.Bool("id", false, "print build identifier and exit")
	ascii     = pflag.BoolP("ascii", "a", false, "use ASCII format to write proof to file")
	binary    = pflag.BoolP("binary", "b", false, "use binary format to write proof to '<stdout>'")
	force     = pflag.BoolP("force", "f", false, "overwrite proof files and relax parsing")
	noWitness = pflag.BoolP("no-witness", "n", false, "disable printing of satisfying assignment")
	logFlag   = pflag.BoolP("log", "l", false, "enable logging messages")
	quiet     = pflag.BoolP("quiet", "q", false, "disable verbose messages")
	verbose   = pflag.CountP("verbose", "v", "increment verbose level")
	conflicts = pflag.Int64("conflicts", -1, "limit the search to N conflicts (-1: unlimited)")
)

func die(format string, args ...any) {
	fmt.Fprint(os.Stderr, "satch: error: ")
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(1)
}

func main() {
	pflag.Usage = func() { fmt.Fprint(os.Stdout, usage) }
	pflag.Parse()

	if *help {
		fmt.Print(usage)
		return
	}
	if *showVer {
		fmt.Println(version)
		return
	}
	if *id {
		fmt.Println("unknown")
		return
	}

	if *quiet && *verbose > 1 {
		die("can use '--quiet' and increase verbosity")
	}

	args := pflag.Args()
	if len(args) > 2 {
		die("too many files %v (try '-h')", args)
	}
	dimacsPath := "-"
	proofPath := ""
	if len(args) >= 1 {
		dimacsPath = args[0]
	}
	if len(args) >= 2 {
		proofPath = args[1]
	}

	cfg := frontend.Config{
		DimacsPath: dimacsPath,
		ProofPath:  proofPath,
		Force:      *force,
		ASCII:      *ascii,
		Binary:     *binary,
		NoWitness:  *noWitness,
		Quiet:      *quiet,
		Verbose:    *verbose,
		Logging:    *logFlag,
		Conflicts:  *conflicts,
	}

	result := frontend.Run(cfg)
	os.Exit(result.Code)
}
