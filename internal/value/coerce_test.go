package value_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

func TestStringToNumber(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    string
		expected float64
	}{
		{"", 0},
		{"   ", 0},
		{"42", 42},
		{" \t\n42 ", 42},
		{"-3.5", -3.5},
		{"+.5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"1E-2", 0.01},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"0x1F", 31},
		{"0o17", 15},
		{"0b101", 5},
		{"1e400", math.Inf(1)},
		{"0x", math.NaN()},
		{"-0x10", math.NaN()},
		{"1_000", math.NaN()},
		{"inf", math.NaN()},
		{"nan", math.NaN()},
		{"0x1p3", math.NaN()},
		{"1e", math.NaN()},
		{".", math.NaN()},
		{"12px", math.NaN()},
	}

	for _, tc := range testcases {
		t.Run(tc.input, func(t *testing.T) {
			got := value.StringToNumber(tc.input)
			if math.IsNaN(tc.expected) {
				assert.True(t, math.IsNaN(got), "got %v", got)
				return
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestStringToNumberNegativeZero(t *testing.T) {
	t.Parallel()

	assert.True(t, value.Number(value.StringToNumber("-0")).IsNegativeZero())
}

func TestNumberToString(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{-1.5, "-1.5"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{123456789012, "123456789012"},
		{1e-7, "1e-7"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tc := range testcases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, value.NumberToString(tc.input))
		})
	}
}

func TestToNumber(t *testing.T) {
	t.Parallel()

	withValueOf := value.ObjectOf(newPlainObject(nil).with("valueOf", value.ObjectOf(constant(value.Str("7")))))

	testcases := []struct {
		name     string
		input    value.Value
		expected float64
		errKind  jserrors.Kind
		wantErr  bool
	}{
		{name: "undefined", input: value.Undefined, expected: math.NaN()},
		{name: "null", input: value.Null, expected: 0},
		{name: "true", input: value.True, expected: 1},
		{name: "string", input: value.Str(" 12 "), expected: 12},
		{name: "object", input: withValueOf, expected: 7},
		{name: "symbol", input: value.SymbolOf(value.NewSymbol(nil)), wantErr: true, errKind: jserrors.KindTypeError},
		{name: "bigint", input: value.BigIntFromInt64(1), wantErr: true, errKind: jserrors.KindTypeError},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := value.ToNumber(tc.input)
			if tc.wantErr {
				assert.True(t, jserrors.IsKind(err, tc.errKind), "err %v", err)
				return
			}
			require.NoError(t, err)
			if math.IsNaN(tc.expected) {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestToString(t *testing.T) {
	t.Parallel()

	withToString := value.ObjectOf(newPlainObject(nil).
		with("toString", value.ObjectOf(constant(value.Str("custom")))).
		with("valueOf", value.ObjectOf(constant(value.Number(1)))))

	testcases := []struct {
		name     string
		input    value.Value
		expected string
	}{
		{"undefined", value.Undefined, "undefined"},
		{"null", value.Null, "null"},
		{"false", value.False, "false"},
		{"-0", value.NegativeZero, "0"},
		{"number", value.Number(2.5), "2.5"},
		{"bigint", value.BigInt(new(big.Int).Lsh(big.NewInt(1), 70)), "1180591620717411303424"},
		{"string hint prefers toString", withToString, "custom"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := value.ToString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.String())
		})
	}

	_, err := value.ToString(value.SymbolOf(value.NewSymbol(nil)))
	assert.True(t, jserrors.IsKind(err, jserrors.KindTypeError))
}

func TestToPrimitive(t *testing.T) {
	t.Parallel()

	var gotHint string
	hook := newFunc(func(_ value.Value, args ...value.Value) (value.Value, error) {
		gotHint = args[0].String()
		return value.Number(9), nil
	})
	exotic := value.ObjectOf(newPlainObject(nil).withSymbol(value.SymbolToPrimitive, value.ObjectOf(hook)))

	p, err := value.ToPrimitive(exotic, value.HintDefault)
	require.NoError(t, err)
	assert.Equal(t, "default", gotHint)
	assert.True(t, value.SameValue(value.Number(9), p))

	_, err = value.ToPrimitive(exotic, value.HintString)
	require.NoError(t, err)
	assert.Equal(t, "string", gotHint)

	returnsObject := value.ObjectOf(newPlainObject(nil).withSymbol(value.SymbolToPrimitive,
		value.ObjectOf(constant(value.ObjectOf(newPlainObject(nil))))))
	_, err = value.ToPrimitive(returnsObject, value.HintNumber)
	assert.ErrorIs(t, err, jserrors.ErrCannotConvertPrimitive)

	notCallable := value.ObjectOf(newPlainObject(nil).withSymbol(value.SymbolToPrimitive, value.Number(1)))
	_, err = value.ToPrimitive(notCallable, value.HintNumber)
	assert.ErrorIs(t, err, jserrors.ErrNotCallable)

	bare := value.ObjectOf(newPlainObject(nil))
	_, err = value.ToPrimitive(bare, value.HintNumber)
	assert.ErrorContains(t, err, "Cannot convert object to primitive value")

	prim := value.Str("p")
	same, err := value.ToPrimitive(prim, value.HintNumber)
	require.NoError(t, err)
	assert.True(t, value.SameValue(prim, same))
}

func TestToBigInt(t *testing.T) {
	t.Parallel()

	b, err := value.ToBigInt(value.Str("123"))
	require.NoError(t, err)
	assert.Equal(t, "123", b.String())

	b, err = value.ToBigInt(value.True)
	require.NoError(t, err)
	assert.Equal(t, "1", b.String())

	_, err = value.ToBigInt(value.Str("1.5"))
	assert.True(t, jserrors.IsKind(err, jserrors.KindSyntaxError))

	_, err = value.ToBigInt(value.Number(1))
	assert.True(t, jserrors.IsKind(err, jserrors.KindTypeError))
}
