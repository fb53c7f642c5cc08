package frontend

import (
	"fmt"
	"io"
	"os"

	"github.com/arminbiere/satch/internal/proof"
)

// openProof resolves cfg's proof flags into a Writer (nil if no proof was
// requested) and a close function the caller must always run. Proofs
// written to '<stdout>' default to ASCII (unless --binary is given);
// proofs written to a file default to the more compact binary format
// (unless --ascii is given) — matching the reference binary's defaults.
// Existing files are not overwritten unless Force is set.
func openProof(cfg Config, errw io.Writer) (*proof.Writer, func(), error) {
	noop := func() {}
	if cfg.ProofPath == "" {
		return nil, noop, nil
	}

	if cfg.ProofPath == "-" {
		binary := cfg.Binary
		if !cfg.ASCII && !cfg.Binary {
			binary = false
		}
		if binary {
			return proof.NewBinary(os.Stdout), noop, nil
		}
		return proof.NewASCII(os.Stdout), noop, nil
	}

	if !cfg.Force && cfg.ProofPath != "/dev/null" && fileReadable(cfg.ProofPath) {
		return nil, noop, fmt.Errorf("will not overwrite '%s' without '-f' (try '-h')", cfg.ProofPath)
	}

	f, err := os.Create(cfg.ProofPath)
	if err != nil {
		return nil, noop, fmt.Errorf("can not write DRUP file '%s'", cfg.ProofPath)
	}
	closeFn := func() { f.Close() }

	if cfg.ASCII {
		return proof.NewASCII(f), closeFn, nil
	}
	return proof.NewBinary(f), closeFn, nil
}

func fileReadable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
