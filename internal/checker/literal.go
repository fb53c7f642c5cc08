package checker

import "math"

// Lit is an internal literal: internal = 2*(|external|-1) + (external<0 ? 1 : 0).
// Bit 0 carries the sign; XOR 1 negates. This is the same encoding contract
// every component of this module shares.
type Lit uint32

// fromExternal converts a signed, nonzero external literal (1-based
// variable, sign is polarity) to its internal form. It reports an error for
// the two values the contract forbids: zero and math.MinInt32 (which has no
// positive counterpart to negate).
func fromExternal(elit int) (Lit, error) {
	if elit == 0 {
		return 0, errAPIMisuse("add_literal", "literal must not be zero")
	}
	if elit == math.MinInt32 {
		return 0, errAPIMisuse("add_literal", "literal must not be INT_MIN")
	}
	v := elit
	neg := false
	if v < 0 {
		neg = true
		v = -v
	}
	l := Lit(2 * (v - 1))
	if neg {
		l |= 1
	}
	return l, nil
}

// external converts an internal literal back to its external (signed,
// 1-based) form, used for error messages and leak-check reports.
func (l Lit) external() int {
	v := int(l>>1) + 1
	if l&1 != 0 {
		return -v
	}
	return v
}

// negate returns the complementary literal (literal XOR 1).
func (l Lit) negate() Lit { return l ^ 1 }

// var_ returns the 0-based internal variable index of l.
func (l Lit) var_() int { return int(l >> 1) }
