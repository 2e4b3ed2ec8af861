package value

import (
	"math"
	"math/big"
)

// StringToBigInt parses s with the StringIntegerLiteral grammar.
// The empty (or all-whitespace) string is 0n.
func StringToBigInt(s string) (*big.Int, bool) {
	s = trimJSSpace(s)
	if s == "" {
		return new(big.Int), true
	}
	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			s = s[2:]
		}
	}
	neg := false
	if base == 10 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return nil, false
	}
	for i := 0; i < len(s); i++ {
		if digitValue(s[i]) >= base {
			return nil, false
		}
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, false
	}
	if neg {
		n.Neg(n)
	}
	return n, true
}

// CompareBigIntNumber compares b with f exactly. ok is false when f is NaN.
func CompareBigIntNumber(b *big.Int, f float64) (cmp int, ok bool) {
	switch {
	case f != f:
		return 0, false
	case math.IsInf(f, 1):
		return -1, true
	case math.IsInf(f, -1):
		return 1, true
	}
	return new(big.Float).SetInt(b).Cmp(big.NewFloat(f)), true
}

// bigIntEqualsNumber is the BigInt/Number arm of loose equality.
func bigIntEqualsNumber(b *big.Int, f float64) bool {
	if f != f || math.IsInf(f, 0) || f != math.Trunc(f) {
		return false
	}
	cmp, _ := CompareBigIntNumber(b, f)
	return cmp == 0
}

// BigIntToString returns the decimal form of b without the n suffix.
func BigIntToString(b *big.Int) string {
	return b.String()
}

// BigIntArith applies a binary arithmetic operator to two BigInt values and
// returns a new owned BigInt.
func BigIntArith(op byte, a, b *big.Int) (Value, bool) {
	r := new(big.Int)
	switch op {
	case '+':
		r.Add(a, b)
	case '-':
		r.Sub(a, b)
	case '*':
		r.Mul(a, b)
	case '/':
		if b.Sign() == 0 {
			return Empty, false
		}
		// BigInt division truncates toward zero
		r.Quo(a, b)
	default:
		return Empty, false
	}
	return bigIntOwned(r), true
}

// BigIntNegate returns -a.
func BigIntNegate(a *big.Int) Value {
	return bigIntOwned(new(big.Int).Neg(a))
}
