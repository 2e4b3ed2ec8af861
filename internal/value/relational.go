package value

import (
	"math"
)

// IsLessThan implements IsLessThan(x, y, LeftFirst). The result is True,
// False or Undefined, the latter when either side is NaN.
func IsLessThan(x, y Value, leftFirst bool) (Value, error) {
	var px, py Value
	var err error
	if leftFirst {
		if px, err = ToPrimitive(x, HintNumber); err != nil {
			return Empty, err
		}
		if py, err = ToPrimitive(y, HintNumber); err != nil {
			return Empty, err
		}
	} else {
		if py, err = ToPrimitive(y, HintNumber); err != nil {
			return Empty, err
		}
		if px, err = ToPrimitive(x, HintNumber); err != nil {
			return Empty, err
		}
	}

	if px.IsString() && py.IsString() {
		return Bool(px.AsString().Compare(py.AsString()) < 0), nil
	}
	if px.IsBigInt() && py.IsString() {
		ny, ok := StringToBigInt(py.AsString().String())
		if !ok {
			return Undefined, nil
		}
		return Bool(px.AsBigInt().Cmp(ny) < 0), nil
	}
	if px.IsString() && py.IsBigInt() {
		nx, ok := StringToBigInt(px.AsString().String())
		if !ok {
			return Undefined, nil
		}
		return Bool(nx.Cmp(py.AsBigInt()) < 0), nil
	}

	nx, err := ToNumeric(px)
	if err != nil {
		return Empty, err
	}
	ny, err := ToNumeric(py)
	if err != nil {
		return Empty, err
	}
	switch {
	case nx.IsNumber() && ny.IsNumber():
		a, b := nx.AsNumber(), ny.AsNumber()
		if math.IsNaN(a) || math.IsNaN(b) {
			return Undefined, nil
		}
		return Bool(a < b), nil
	case nx.IsBigInt() && ny.IsBigInt():
		return Bool(nx.AsBigInt().Cmp(ny.AsBigInt()) < 0), nil
	case nx.IsBigInt():
		cmp, ok := CompareBigIntNumber(nx.AsBigInt(), ny.AsNumber())
		if !ok {
			return Undefined, nil
		}
		return Bool(cmp < 0), nil
	default:
		cmp, ok := CompareBigIntNumber(ny.AsBigInt(), nx.AsNumber())
		if !ok {
			return Undefined, nil
		}
		return Bool(cmp > 0), nil
	}
}
