package value

import (
	"math"
	"math/big"

	"github.com/leonardinius/esvalue/internal/jserrors"
)

// Hint is the preferred type passed to ToPrimitive.
type Hint uint8

const (
	HintDefault Hint = iota
	HintNumber
	HintString
)

// String implements fmt.Stringer. It yields the argument passed to @@toPrimitive.
func (h Hint) String() string {
	switch h {
	case HintNumber:
		return "number"
	case HintString:
		return "string"
	}
	return "default"
}

var (
	keyValueOf  = Str("valueOf")
	keyToString = Str("toString")
)

// objectMethod is GetMethod for a receiver known to be an object.
func objectMethod(o Object, receiver Value, key Value) (Callable, error) {
	f, err := o.Get(key, receiver)
	if err != nil {
		return nil, err
	}
	if f.IsNullish() {
		return nil, nil
	}
	c, ok := AsCallable(f)
	if !ok {
		return nil, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotCallable,
			"Value returned for property '%s' of object is not a function", key)
	}
	return c, nil
}

// ToPrimitive converts v to a non-object value. Objects consult @@toPrimitive
// first and fall back to OrdinaryToPrimitive.
func ToPrimitive(v Value, hint Hint) (Value, error) {
	o, ok := v.TryObject()
	if !ok {
		return v, nil
	}
	exotic, err := objectMethod(o, v, SymbolOf(SymbolToPrimitive))
	if err != nil {
		return Empty, err
	}
	if exotic != nil {
		result, err := exotic.Call(v, Str(hint.String()))
		if err != nil {
			return Empty, err
		}
		if result.IsObject() {
			return Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrCannotConvertPrimitive,
				"Cannot convert object to primitive value")
		}
		return result, nil
	}
	if hint == HintDefault {
		hint = HintNumber
	}
	return OrdinaryToPrimitive(o, hint)
}

// OrdinaryToPrimitive tries valueOf and toString in hint order.
func OrdinaryToPrimitive(o Object, hint Hint) (Value, error) {
	order := [2]Value{keyValueOf, keyToString}
	if hint == HintString {
		order = [2]Value{keyToString, keyValueOf}
	}
	receiver := ObjectOf(o)
	for _, key := range order {
		f, err := o.Get(key, receiver)
		if err != nil {
			return Empty, err
		}
		c, ok := AsCallable(f)
		if !ok {
			continue
		}
		result, err := c.Call(receiver)
		if err != nil {
			return Empty, err
		}
		if !result.IsObject() {
			return result, nil
		}
	}
	return Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrCannotConvertPrimitive,
		"Cannot convert object to primitive value")
}

// ToNumber implements the ToNumber abstract operation.
func ToNumber(v Value) (float64, error) {
	switch v.kind {
	case KindNumber:
		return v.AsNumber(), nil
	case KindUndefined:
		return math.NaN(), nil
	case KindNull:
		return 0, nil
	case KindBoolean:
		if v.AsBoolean() {
			return 1, nil
		}
		return 0, nil
	case KindString:
		return StringToNumber(v.AsString().String()), nil
	case KindSymbol:
		return 0, jserrors.TypeError("Cannot convert a Symbol value to a number")
	case KindBigInt:
		return 0, jserrors.TypeError("Cannot convert a BigInt value to a number")
	case KindObject:
		p, err := ToPrimitive(v, HintNumber)
		if err != nil {
			return 0, err
		}
		return ToNumber(p)
	}
	panic("value: ToNumber of empty value")
}

// ToNumeric returns a Number or BigInt value.
func ToNumeric(v Value) (Value, error) {
	p, err := ToPrimitive(v, HintNumber)
	if err != nil {
		return Empty, err
	}
	if p.IsBigInt() {
		return p, nil
	}
	f, err := ToNumber(p)
	if err != nil {
		return Empty, err
	}
	return Number(f), nil
}

// ToString implements the ToString abstract operation. A string value is
// returned as is, builder form included.
func ToString(v Value) (*String, error) {
	switch v.kind {
	case KindString:
		return v.AsString(), nil
	case KindUndefined:
		return NewString("undefined"), nil
	case KindNull:
		return NewString("null"), nil
	case KindBoolean:
		if v.AsBoolean() {
			return NewString("true"), nil
		}
		return NewString("false"), nil
	case KindNumber:
		return NewString(NumberToString(v.AsNumber())), nil
	case KindBigInt:
		return NewString(BigIntToString(v.AsBigInt())), nil
	case KindSymbol:
		return nil, jserrors.TypeError("Cannot convert a Symbol value to a string")
	case KindObject:
		p, err := ToPrimitive(v, HintString)
		if err != nil {
			return nil, err
		}
		return ToString(p)
	}
	panic("value: ToString of empty value")
}

// ToGoString is ToString followed by a UTF-8 conversion.
func ToGoString(v Value) (string, error) {
	s, err := ToString(v)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// ToBigInt implements the ToBigInt abstract operation.
func ToBigInt(v Value) (*big.Int, error) {
	p, err := ToPrimitive(v, HintNumber)
	if err != nil {
		return nil, err
	}
	switch p.kind {
	case KindBigInt:
		return p.AsBigInt(), nil
	case KindBoolean:
		if p.AsBoolean() {
			return big.NewInt(1), nil
		}
		return new(big.Int), nil
	case KindString:
		b, ok := StringToBigInt(p.AsString().String())
		if !ok {
			return nil, jserrors.Throw(jserrors.KindSyntaxError, "Cannot convert %s to a BigInt", p.AsString())
		}
		return b, nil
	}
	return nil, jserrors.TypeError("Cannot convert %s to a BigInt", p)
}

// TypeOf implements the typeof operator.
func TypeOf(v Value) string {
	switch v.kind {
	case KindObject:
		if IsCallable(v) {
			return "function"
		}
		return "object"
	case KindNull:
		return "object"
	case KindEmpty:
		return "undefined"
	}
	return v.kind.String()
}
