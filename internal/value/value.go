package value

import (
	"fmt"
	"math"
	"math/big"
)

// Kind is the discriminant of a Value.
type Kind uint8

const (
	// KindEmpty is the internal "no value yet" marker used for uninitialized
	// bindings and lazy slots. It is never observable to script code.
	KindEmpty Kind = iota
	KindUndefined
	KindNull
	KindBoolean
	KindNumber
	KindBigInt
	KindString
	KindSymbol
	KindObject
)

var kindNames = [...]string{
	KindEmpty:     "empty",
	KindUndefined: "undefined",
	KindNull:      "null",
	KindBoolean:   "boolean",
	KindNumber:    "number",
	KindBigInt:    "bigint",
	KindString:    "string",
	KindSymbol:    "symbol",
	KindObject:    "object",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

const (
	canonicalNaNBits uint64 = 0x7FF8000000000000
	negativeZeroBits uint64 = 1 << 63
)

// Value is the single representation of every runtime value.
//
// Numbers and booleans live in bits; strings, big integers, symbols and objects
// live in ref, which is never nil for those kinds. The zero Value is Empty.
type Value struct {
	kind Kind
	bits uint64
	ref  any
}

var (
	Empty            = Value{}
	Undefined        = Value{kind: KindUndefined}
	Null             = Value{kind: KindNull}
	True             = Value{kind: KindBoolean, bits: 1}
	False            = Value{kind: KindBoolean}
	NaN              = Value{kind: KindNumber, bits: canonicalNaNBits}
	PositiveZero     = Value{kind: KindNumber}
	NegativeZero     = Value{kind: KindNumber, bits: negativeZeroBits}
	PositiveInfinity = Value{kind: KindNumber, bits: math.Float64bits(math.Inf(1))}
	NegativeInfinity = Value{kind: KindNumber, bits: math.Float64bits(math.Inf(-1))}
)

// Number returns a Number value. Every NaN payload collapses to one canonical NaN.
func Number(f float64) Value {
	if f != f {
		return NaN
	}
	return Value{kind: KindNumber, bits: math.Float64bits(f)}
}

func Int(i int64) Value {
	return Number(float64(i))
}

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Str returns a flat String value for s.
func Str(s string) Value {
	return StringOf(NewString(s))
}

func StringOf(s *String) Value {
	if s == nil {
		panic("value: nil string payload")
	}
	return Value{kind: KindString, ref: s}
}

// BigInt returns a BigInt value holding a private copy of b.
func BigInt(b *big.Int) Value {
	if b == nil {
		panic("value: nil bigint payload")
	}
	return Value{kind: KindBigInt, ref: new(big.Int).Set(b)}
}

func BigIntFromInt64(i int64) Value {
	return Value{kind: KindBigInt, ref: big.NewInt(i)}
}

// bigIntOwned wraps b without copying. b must not be reachable elsewhere.
func bigIntOwned(b *big.Int) Value {
	return Value{kind: KindBigInt, ref: b}
}

func SymbolOf(s *Symbol) Value {
	if s == nil {
		panic("value: nil symbol payload")
	}
	return Value{kind: KindSymbol, ref: s}
}

func ObjectOf(o Object) Value {
	if o == nil {
		panic("value: nil object payload")
	}
	return Value{kind: KindObject, ref: o}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Type returns the ECMAScript language type name of v.
func (v Value) Type() string {
	return v.kind.String()
}

func (v Value) IsEmpty() bool     { return v.kind == KindEmpty }
func (v Value) IsUndefined() bool { return v.kind == KindUndefined }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) IsNullish() bool   { return v.kind == KindUndefined || v.kind == KindNull }
func (v Value) IsBoolean() bool   { return v.kind == KindBoolean }
func (v Value) IsNumber() bool    { return v.kind == KindNumber }
func (v Value) IsBigInt() bool    { return v.kind == KindBigInt }
func (v Value) IsString() bool    { return v.kind == KindString }
func (v Value) IsSymbol() bool    { return v.kind == KindSymbol }
func (v Value) IsObject() bool    { return v.kind == KindObject }

// IsPrimitive reports whether v is neither an object nor Empty.
func (v Value) IsPrimitive() bool {
	return v.kind != KindObject && v.kind != KindEmpty
}

func (v Value) IsNaN() bool {
	return v.kind == KindNumber && v.bits == canonicalNaNBits
}

func (v Value) IsNegativeZero() bool {
	return v.kind == KindNumber && v.bits == negativeZeroBits
}

func (v Value) IsPositiveZero() bool {
	return v.kind == KindNumber && v.bits == 0
}

// Bits returns the raw payload of a Number or Boolean value.
func (v Value) Bits() uint64 {
	return v.bits
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("value: %s value accessed as %s", v.kind, k))
	}
}

func (v Value) AsBoolean() bool {
	v.mustBe(KindBoolean)
	return v.bits != 0
}

func (v Value) AsNumber() float64 {
	v.mustBe(KindNumber)
	return math.Float64frombits(v.bits)
}

func (v Value) AsString() *String {
	v.mustBe(KindString)
	return v.ref.(*String)
}

// AsBigInt returns the payload. Callers must treat it as read-only.
func (v Value) AsBigInt() *big.Int {
	v.mustBe(KindBigInt)
	return v.ref.(*big.Int)
}

func (v Value) AsSymbol() *Symbol {
	v.mustBe(KindSymbol)
	return v.ref.(*Symbol)
}

func (v Value) AsObject() Object {
	v.mustBe(KindObject)
	return v.ref.(Object)
}

// TryObject returns the object payload when v is an object.
func (v Value) TryObject() (Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.ref.(Object), true
}

// UninitializedToUndefined maps Empty to Undefined and leaves everything else alone.
func (v Value) UninitializedToUndefined() Value {
	if v.kind == KindEmpty {
		return Undefined
	}
	return v
}

// ToBoolean implements the ECMAScript ToBoolean abstract operation.
func (v Value) ToBoolean() bool {
	switch v.kind {
	case KindBoolean:
		return v.bits != 0
	case KindNumber:
		// +0, -0 and the canonical NaN are the only falsy numbers.
		return v.bits != 0 && v.bits != negativeZeroBits && v.bits != canonicalNaNBits
	case KindUndefined, KindNull:
		return false
	case KindString:
		// a string is a reference payload, but "" is falsy
		return v.ref.(*String).Length() > 0
	case KindBigInt:
		return v.ref.(*big.Int).Sign() != 0
	case KindSymbol, KindObject:
		return true
	}
	panic("value: ToBoolean of empty value")
}

// Clone returns a value safe to store in a second location. Only builder
// strings need a real copy; sharing one would let two bindings observe each
// other's appends.
func (v Value) Clone() Value {
	if v.kind == KindString {
		if s := v.ref.(*String); s.IsBuilder() {
			return StringOf(s.Snapshot())
		}
	}
	return v
}

// heapRef returns the reference payload, or nil for inline kinds.
func (v Value) heapRef() any {
	return v.ref
}

// String implements fmt.Stringer. It is a debugging representation and never
// invokes script code.
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return "<empty>"
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.bits != 0 {
			return "true"
		}
		return "false"
	case KindNumber:
		if v.IsNegativeZero() {
			return "-0"
		}
		return NumberToString(v.AsNumber())
	case KindBigInt:
		return v.AsBigInt().String() + "n"
	case KindString:
		return v.AsString().String()
	case KindSymbol:
		return v.AsSymbol().DescriptiveString()
	case KindObject:
		if s, ok := v.ref.(fmt.Stringer); ok {
			return s.String()
		}
		return "[object " + v.AsObject().Kind().String() + "]"
	}
	return "<invalid>"
}

// GoString implements fmt.GoStringer.
func (v Value) GoString() string {
	if v.kind == KindString {
		return fmt.Sprintf("%q", v.AsString().String())
	}
	return v.String()
}

var (
	_ fmt.Stringer   = Value{}
	_ fmt.GoStringer = Value{}
	_ fmt.Stringer   = Kind(0)
)
