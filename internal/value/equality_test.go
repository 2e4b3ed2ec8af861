package value_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/esvalue/internal/value"
)

func TestEqualityFlavors(t *testing.T) {
	t.Parallel()

	sym := value.SymbolOf(value.NewSymbolString("s"))
	obj := value.ObjectOf(newPlainObject(nil))

	testcases := []struct {
		name          string
		x, y          value.Value
		strict        bool
		sameValue     bool
		sameValueZero bool
	}{
		{"NaN NaN", value.NaN, value.NaN, false, true, true},
		{"+0 -0", value.PositiveZero, value.NegativeZero, true, false, true},
		{"-0 -0", value.NegativeZero, value.NegativeZero, true, true, true},
		{"1 1", value.Number(1), value.Number(1), true, true, true},
		{"1 1n", value.Number(1), value.BigIntFromInt64(1), false, false, false},
		{"1n 1n", value.BigIntFromInt64(1), value.BigIntFromInt64(1), true, true, true},
		{"strings", value.Str("abc"), value.Str("abc"), true, true, true},
		{"different strings", value.Str("abc"), value.Str("abd"), false, false, false},
		{"unicode strings", value.Str("ünï"), value.Str("ünï"), true, true, true},
		{"undefined null", value.Undefined, value.Null, false, false, false},
		{"same symbol", sym, sym, true, true, true},
		{"same description symbols", sym, value.SymbolOf(value.NewSymbolString("s")), false, false, false},
		{"same object", obj, obj, true, true, true},
		{"other object", obj, value.ObjectOf(newPlainObject(nil)), false, false, false},
		{"true true", value.True, value.True, true, true, true},
		{"true false", value.True, value.False, false, false, false},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.strict, value.IsStrictlyEqual(tc.x, tc.y), "strict")
			assert.Equal(t, tc.sameValue, value.SameValue(tc.x, tc.y), "SameValue")
			assert.Equal(t, tc.sameValueZero, value.SameValueZero(tc.x, tc.y), "SameValueZero")
		})
	}
}

func TestBuilderAndFlatStringsCompareEqual(t *testing.T) {
	t.Parallel()

	b := value.NewStringBuilder(nil, 2)
	b.AppendGo("hello ")
	b.AppendGo("wörld")
	flat := value.Str("hello wörld")

	assert.True(t, value.IsStrictlyEqual(value.StringOf(b), flat))
	assert.True(t, value.SameValue(flat, value.StringOf(b)))

	other := value.NewStringBuilder(nil, 0)
	other.AppendGo("hello wörld")
	assert.True(t, value.IsStrictlyEqual(value.StringOf(b), value.StringOf(other)))

	other.AppendGo("!")
	assert.False(t, value.IsStrictlyEqual(value.StringOf(b), value.StringOf(other)))
}

func TestIsLooselyEqual(t *testing.T) {
	t.Parallel()

	valueOf := func(v value.Value) value.Value {
		return value.ObjectOf(newPlainObject(nil).with("valueOf", value.ObjectOf(constant(v))))
	}
	sym := value.NewSymbolString("k")
	symObj := value.ObjectOf(newPlainObject(nil).withSymbol(value.SymbolToPrimitive, value.ObjectOf(constant(value.SymbolOf(sym)))))
	obj := value.ObjectOf(newPlainObject(nil))

	testcases := []struct {
		name     string
		x, y     value.Value
		expected bool
	}{
		{"null undefined", value.Null, value.Undefined, true},
		{"undefined null", value.Undefined, value.Null, true},
		{"null 0", value.Null, value.Number(0), false},
		{"number string", value.Number(1), value.Str("1"), true},
		{"string number", value.Str(" 0x10 "), value.Number(16), true},
		{"empty string zero", value.Str(""), value.Number(0), true},
		{"NaN string", value.Str("abc"), value.NaN, false},
		{"bigint string", value.BigIntFromInt64(10), value.Str("10"), true},
		{"string bigint", value.Str("0x1f"), value.BigIntFromInt64(31), true},
		{"bigint bad string", value.BigIntFromInt64(1), value.Str("1.0"), false},
		{"true one", value.True, value.Number(1), true},
		{"false string zero", value.False, value.Str("0"), true},
		{"true bigint", value.True, value.BigIntFromInt64(1), true},
		{"false bigint", value.False, value.BigIntFromInt64(0), true},
		{"bigint number exact", value.BigIntFromInt64(2), value.Number(2), true},
		{"bigint number fractional", value.BigIntFromInt64(2), value.Number(2.5), false},
		{"bigint NaN", value.BigIntFromInt64(0), value.NaN, false},
		{"bigint Infinity", value.BigIntFromInt64(0), value.PositiveInfinity, false},
		{"object valueOf number", valueOf(value.Number(3)), value.Number(3), true},
		{"number object valueOf", value.Str("3"), valueOf(value.Number(3)), true},
		{"object toPrimitive symbol", symObj, value.SymbolOf(sym), true},
		{"same object", obj, obj, true},
		{"object null", obj, value.Null, false},
		{"object undefined", value.Undefined, obj, false},
		{"NaN NaN", value.NaN, value.NaN, false},
		{"symbol string", value.SymbolOf(sym), value.Str("k"), false},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := value.IsLooselyEqual(tc.x, tc.y)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestIsLooselyEqualUsesNumberHint(t *testing.T) {
	t.Parallel()

	var hints []string
	hook := newFunc(func(_ value.Value, args ...value.Value) (value.Value, error) {
		hints = append(hints, args[0].String())
		if args[0].String() == "number" {
			return value.Number(1), nil
		}
		return value.Str("x"), nil
	})
	obj := value.ObjectOf(newPlainObject(nil).withSymbol(value.SymbolToPrimitive, value.ObjectOf(hook)))

	testcases := []struct {
		name string
		x, y value.Value
	}{
		{"object number", obj, value.Number(1)},
		{"bigint object", value.BigIntFromInt64(1), obj},
		{"string object", value.Str("1"), obj},
	}

	for _, tc := range testcases {
		got, err := value.IsLooselyEqual(tc.x, tc.y)
		require.NoError(t, err, tc.name)
		assert.True(t, got, tc.name)
	}
	assert.Equal(t, []string{"number", "number", "number"}, hints)
}

func TestIsLooselyEqualPropagatesToPrimitiveErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	obj := value.ObjectOf(newPlainObject(nil).withSymbol(value.SymbolToPrimitive,
		value.ObjectOf(newFunc(func(value.Value, ...value.Value) (value.Value, error) { return value.Empty, boom }))))

	_, err := value.IsLooselyEqual(obj, value.Number(1))
	assert.ErrorIs(t, err, boom)

	// the hook is not consulted when the other side is nullish
	got, err := value.IsLooselyEqual(obj, value.Null)
	assert.NoError(t, err)
	assert.False(t, got)
}
