package dimacs

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// eof is the sentinel byte value returned by reader.next at end of input,
// mirroring the C parser's use of EOF alongside ordinary int bytes.
const eof = -1

// reader wraps the raw input stream and implements the "squeeze out
// carriage returns, count lines and bytes" byte source the parser runs on.
type reader struct {
	br   *bufio.Reader
	path string
	line int
}

func newReader(path string, br *bufio.Reader) *reader {
	return &reader{br: br, path: path, line: 1}
}

// next reads one logical byte, translating "\r\n" into a bare "\n" and
// rejecting a lone "\r" not immediately followed by "\n". It tracks the
// current line number the way the reference parser does, so error messages
// can cite a line.
func (r *reader) next() (int, error) {
	b, err := r.br.ReadByte()
	if err == io.EOF {
		return eof, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", r.path, err)
	}
	if b == '\r' {
		b2, err2 := r.br.ReadByte()
		if err2 != nil && err2 != io.EOF {
			return 0, fmt.Errorf("%s: %w", r.path, err2)
		}
		if err2 == io.EOF || b2 != '\n' {
			return 0, r.errorf("expected new line after carriage return")
		}
		b = '\n'
	}
	if b == '\n' {
		r.line++
	}
	return int(b), nil
}

func (r *reader) errorf(format string, args ...any) error {
	return &ParseError{Path: r.path, Line: r.line, Msg: fmt.Sprintf(format, args...)}
}

// ParseError reports a malformed DIMACS/XNF input: where (path, line) and
// what went wrong.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// closer closes the underlying file handle and, for a piped decompressor,
// waits for the external process to finish so errors surface.
type closer struct {
	file *os.File
	cmd  *exec.Cmd
	pipe io.Closer
}

func (c *closer) Close() error {
	var errs []error
	if c.pipe != nil {
		if err := c.pipe.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.cmd != nil {
		if err := c.cmd.Wait(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.file != nil {
		if err := c.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// open returns a reader over path, transparently decompressing by suffix:
// ".gz" via klauspost/compress, ".xz" via ulikunitz/xz, ".bz2" via the
// standard library's bzip2 (no third-party bzip2 decoder appears anywhere
// in the example pack, so this one spot falls back to the standard
// library — see DESIGN.md). "-" means standard input, read raw.
func open(path string) (io.Reader, io.Closer, error) {
	if path == "-" {
		return os.Stdin, io.NopCloser(nil), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		return gz, &closer{file: f, pipe: gz}, nil
	case strings.HasSuffix(path, ".xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		return xr, &closer{file: f}, nil
	case strings.HasSuffix(path, ".bz2"):
		return bzip2.NewReader(f), &closer{file: f}, nil
	default:
		return f, &closer{file: f}, nil
	}
}
