// Package proof writes a DRUP proof trace — the sequence of clause
// additions and deletions a checker or solver emits — in either of the two
// formats satch accepts: a human-readable ASCII form, and the more compact
// binary form used in SAT-competition proof checking.
package proof

import "io"

// Writer emits one DRUP proof. It is not safe for concurrent use; proof
// events are expected to arrive in the same total order the checker sees
// them.
type Writer struct {
	w      io.Writer
	binary bool
	buf    []byte
}

// NewASCII returns a Writer using the ASCII format: each clause's literals
// as signed decimals separated by single spaces, terminated by a literal
// "0"; deletion lines are prefixed by "d ".
func NewASCII(w io.Writer) *Writer { return &Writer{w: w} }

// NewBinary returns a Writer using the binary format: each literal is
// folded to an unsigned integer (2*|lit| + (lit<0)) and written as a
// base-128 varint (continuation bit set on every byte but the last),
// followed by a single zero byte marking the end of the clause. Deletion
// lines are prefixed by the single byte 'd'.
func NewBinary(w io.Writer) *Writer { return &Writer{w: w, binary: true} }

// AddClause writes one clause addition.
func (p *Writer) AddClause(lits []int) error {
	return p.writeClause(lits, false)
}

// DeleteClause writes one clause deletion.
func (p *Writer) DeleteClause(lits []int) error {
	return p.writeClause(lits, true)
}

func (p *Writer) writeClause(lits []int, deletion bool) error {
	if p.binary {
		return p.writeBinary(lits, deletion)
	}
	return p.writeASCII(lits, deletion)
}

func (p *Writer) writeASCII(lits []int, deletion bool) error {
	p.buf = p.buf[:0]
	if deletion {
		p.buf = append(p.buf, 'd', ' ')
	}
	for _, l := range lits {
		p.buf = appendInt(p.buf, l)
		p.buf = append(p.buf, ' ')
	}
	p.buf = append(p.buf, '0', '\n')
	_, err := p.w.Write(p.buf)
	return err
}

func (p *Writer) writeBinary(lits []int, deletion bool) error {
	p.buf = p.buf[:0]
	if deletion {
		p.buf = append(p.buf, 'd')
	}
	for _, l := range lits {
		enc := foldLiteral(l)
		for enc >= 0x80 {
			p.buf = append(p.buf, byte(enc)|0x80)
			enc >>= 7
		}
		p.buf = append(p.buf, byte(enc))
	}
	p.buf = append(p.buf, 0)
	_, err := p.w.Write(p.buf)
	return err
}

// foldLiteral maps a signed external literal to the unsigned varint payload
// the binary format encodes: 2*|lit| + (lit<0 ? 1 : 0). This is never zero
// for a valid literal, so the clause-terminating zero byte is unambiguous.
func foldLiteral(lit int) uint64 {
	v := lit
	sign := uint64(0)
	if v < 0 {
		sign = 1
		v = -v
	}
	return uint64(v)*2 + sign
}

func appendInt(buf []byte, v int) []byte {
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	start := len(buf)
	if v == 0 {
		return append(buf, '0')
	}
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	reverse(buf[start:])
	return buf
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
