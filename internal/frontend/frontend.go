// Package frontend ties the DIMACS/XNF parser, the online proof checker,
// and the CDCL solver into the stand-alone solving pipeline: parse once,
// feed both consumers from the same literal stream, search under an
// optional conflict budget, print the result and witness, and manage the
// proof output file.
package frontend

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arminbiere/satch/internal/checker"
	"github.com/arminbiere/satch/internal/dimacs"
	"github.com/arminbiere/satch/internal/proof"
	"github.com/arminbiere/satch/internal/sat"
)

// Config collects everything a run of the front end needs, already
// resolved from CLI flags (cmd/satch) or constructed directly by a test.
type Config struct {
	DimacsPath string // "-" means stdin
	ProofPath  string // "" means no proof requested, "-" means stdout

	Force      bool // relax parsing, overwrite proof files
	ASCII      bool
	Binary     bool
	NoWitness  bool
	Quiet      bool
	Verbose    int
	Logging    bool
	Conflicts  int64 // < 0 means unlimited

	Stdout io.Writer
	Stderr io.Writer
}

// Result is what a Run reports back: the process should exit with Code.
type Result struct {
	Code int
}

// Run executes one solve: parse, search, report, and proof management.
// It never returns an error for a sound input — parse errors and CLI
// configuration errors are reported on Stderr and reflected in Result.Code
// the same way the reference binary's error() does (exit 1), while a
// completed search always returns 0/10/20 regardless of outcome.
func Run(cfg Config) Result {
	out := cfg.Stdout
	if out == nil {
		out = os.Stdout
	}
	errw := cfg.Stderr
	if errw == nil {
		errw = os.Stderr
	}
	log := newLogger(errw, cfg.Logging)

	if cfg.ASCII && cfg.Binary {
		fmt.Fprintln(errw, "satch: error: both '--ascii' and '--binary' specified")
		return Result{Code: 1}
	}
	if cfg.ASCII && cfg.ProofPath == "" {
		fmt.Fprintln(errw, "satch: error: invalid '--ascii' without proof file")
		return Result{Code: 1}
	}
	if cfg.Binary && cfg.ProofPath == "" {
		fmt.Fprintln(errw, "satch: error: invalid '--binary' without proof file")
		return Result{Code: 1}
	}
	if cfg.ASCII && cfg.ProofPath == "-" {
		fmt.Fprintln(errw, "satch: error: invalid '--ascii' for proof written to '<stdout>'")
		return Result{Code: 1}
	}
	if cfg.Binary && cfg.ProofPath != "" && cfg.ProofPath != "-" {
		fmt.Fprintln(errw, "satch: error: invalid '--binary' for proof written to a file")
		return Result{Code: 1}
	}

	pw, closeProof, err := openProof(cfg, errw)
	if err != nil {
		fmt.Fprintf(errw, "satch: error: %v\n", err)
		return Result{Code: 1}
	}
	defer closeProof()

	message(out, cfg.Quiet, "Satch SAT Solver")
	message(out, cfg.Quiet, "Copyright (c) 2021 Armin Biere JKU Linz")

	col := sat.NewCollaborator(sat.DefaultOptions)

	// The online checker only needs to exist, and only needs to see the
	// original clauses, when a proof is actually being produced — it is
	// the thing that verifies that proof inline, not a general-purpose
	// always-on correctness oracle.
	var chk *checker.Checker
	if pw != nil {
		chk = checker.New()
		chk.SetLogging(cfg.Logging)
		col.TraceProof(&checkedProofSink{proof: pw, checker: chk})
		defer chk.Release()
	}

	sink := &emitter{col: col, chk: chk}

	dimacsPath := cfg.DimacsPath
	if dimacsPath == "" {
		dimacsPath = "-"
	}
	message(out, cfg.Quiet, "%sparsing '%s'", forcePrefix(cfg.Force), dimacsPath)

	start := time.Now()
	stats, err := dimacs.Parse(dimacsPath, cfg.Force, sink)
	if err != nil {
		fmt.Fprintf(errw, "satch: %v\n", err)
		return Result{Code: 1}
	}
	log.Logf("parsed %d clauses in %.2fs", stats.ParsedClauses, time.Since(start).Seconds())
	message(out, cfg.Quiet, "parsed %d clauses in %.2f seconds", stats.ParsedClauses, time.Since(start).Seconds())
	if stats.ParsedVariables == 0 {
		message(out, cfg.Quiet, "input file does not contain any variable")
	} else {
		message(out, cfg.Quiet, "found maximum variable index %d", stats.ParsedVariables)
	}

	installHandler := installSignalHandler(func() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "c")
			printStatistics(out, col.Solver(), chk)
		}
	})
	defer installHandler.restore()

	res := col.Solve(cfg.Conflicts)

	variables := stats.DeclaredVariables
	if stats.ParsedVariables > variables {
		variables = stats.ParsedVariables
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "c")
	}
	switch res {
	case sat.ResultSatisfiable:
		fmt.Fprintln(out, "s SATISFIABLE")
		if !cfg.NoWitness {
			printWitness(out, col, variables)
		}
	case sat.ResultUnsatisfiable:
		fmt.Fprintln(out, "s UNSATISFIABLE")
	default:
		message(out, cfg.Quiet, "no result")
	}

	if !cfg.Quiet {
		printStatistics(out, col.Solver(), chk)
	}

	return Result{Code: int(res)}
}

func forcePrefix(force bool) string {
	if force {
		return "force "
	}
	return ""
}

func message(w io.Writer, quiet bool, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(w, "c "+format+"\n", args...)
}

// checkedProofSink fans every learned/deleted clause the solver reports out
// to both the proof writer (so it lands on disk) and the online checker (so
// unsoundness is caught immediately rather than only by an offline replay).
type checkedProofSink struct {
	proof   *proof.Writer
	checker *checker.Checker
}

func (s *checkedProofSink) AddClause(lits []int) error {
	for _, l := range lits {
		s.checker.AddLiteral(l)
	}
	s.checker.AddLearned()
	return s.proof.AddClause(lits)
}

func (s *checkedProofSink) DeleteClause(lits []int) error {
	for _, l := range lits {
		s.checker.AddLiteral(l)
	}
	s.checker.Delete()
	return s.proof.DeleteClause(lits)
}

// emitter adapts the parser's Emitter interface to the pair of consumers
// (solver, checker) every original clause must reach.
type emitter struct {
	col *sat.Collaborator
	chk *checker.Checker
}

func (e *emitter) AddLiteral(lit int) {
	e.col.Add(lit)
	if e.chk != nil {
		e.chk.AddLiteral(lit)
	}
}

func (e *emitter) AddOriginal() {
	e.col.Add(0)
	if e.chk != nil {
		e.chk.AddOriginal()
	}
}
