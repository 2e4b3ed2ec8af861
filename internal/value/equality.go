package value

import (
	"math/big"
)

// IsStrictlyEqual implements ===. NaN is never equal to itself and +0 equals -0.
func IsStrictlyEqual(x, y Value) bool {
	if x.kind != y.kind {
		return false
	}
	if x.kind == KindNumber {
		return x.AsNumber() == y.AsNumber()
	}
	return sameNonNumber(x, y)
}

// SameValue implements Object.is: NaN equals NaN and +0 differs from -0.
func SameValue(x, y Value) bool {
	if x.kind != y.kind {
		return false
	}
	if x.kind == KindNumber {
		// NaN is canonical, so bit identity covers both special cases
		return x.bits == y.bits
	}
	return sameNonNumber(x, y)
}

// SameValueZero is SameValue except that +0 equals -0.
func SameValueZero(x, y Value) bool {
	if x.kind != y.kind {
		return false
	}
	if x.kind == KindNumber {
		if x.IsNaN() && y.IsNaN() {
			return true
		}
		return x.AsNumber() == y.AsNumber()
	}
	return sameNonNumber(x, y)
}

func sameNonNumber(x, y Value) bool {
	switch x.kind {
	case KindEmpty, KindUndefined, KindNull:
		return true
	case KindBoolean:
		return x.bits == y.bits
	case KindString:
		return x.AsString().Equal(y.AsString())
	case KindBigInt:
		return x.AsBigInt().Cmp(y.AsBigInt()) == 0
	case KindSymbol:
		return x.AsSymbol() == y.AsSymbol()
	case KindObject:
		return x.AsObject() == y.AsObject()
	}
	return false
}

// IsLooselyEqual implements ==. Only the ToPrimitive hooks of objects can fail.
func IsLooselyEqual(x, y Value) (bool, error) {
	for {
		if x.kind == y.kind {
			if ref := x.heapRef(); ref != nil && ref == y.heapRef() {
				return true, nil
			}
			return IsStrictlyEqual(x, y), nil
		}
		if x.IsNullish() && y.IsNullish() {
			return true, nil
		}

		switch {
		case x.kind == KindNumber && y.kind == KindString:
			return x.AsNumber() == StringToNumber(y.AsString().String()), nil
		case x.kind == KindString && y.kind == KindNumber:
			return StringToNumber(x.AsString().String()) == y.AsNumber(), nil

		case x.kind == KindBigInt && y.kind == KindString:
			return bigIntEqualsString(x.AsBigInt(), y.AsString()), nil
		case x.kind == KindString && y.kind == KindBigInt:
			return bigIntEqualsString(y.AsBigInt(), x.AsString()), nil

		case x.kind == KindBoolean:
			x = booleanToNumber(x)
			continue
		case y.kind == KindBoolean:
			y = booleanToNumber(y)
			continue

		case x.kind == KindObject && isLooseObjectPeer(y.kind):
			p, err := ToPrimitive(x, HintNumber)
			if err != nil {
				return false, err
			}
			x = p
			continue
		case y.kind == KindObject && isLooseObjectPeer(x.kind):
			p, err := ToPrimitive(y, HintNumber)
			if err != nil {
				return false, err
			}
			y = p
			continue

		case x.kind == KindBigInt && y.kind == KindNumber:
			return bigIntEqualsNumber(x.AsBigInt(), y.AsNumber()), nil
		case x.kind == KindNumber && y.kind == KindBigInt:
			return bigIntEqualsNumber(y.AsBigInt(), x.AsNumber()), nil
		}
		return false, nil
	}
}

func isLooseObjectPeer(k Kind) bool {
	switch k {
	case KindString, KindNumber, KindBigInt, KindSymbol:
		return true
	}
	return false
}

func booleanToNumber(v Value) Value {
	if v.AsBoolean() {
		return Number(1)
	}
	return PositiveZero
}

func bigIntEqualsString(b *big.Int, s *String) bool {
	n, ok := StringToBigInt(s.String())
	return ok && n.Cmp(b) == 0
}
