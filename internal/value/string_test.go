package value_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

func TestStringLengthCountsCodeUnits(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    string
		expected int
	}{
		{"", 0},
		{"abc", 3},
		{"ü", 1},
		{"日本", 2},
		{"😀", 2},
		{"a😀b", 4},
	}

	for _, tc := range testcases {
		t.Run(tc.input, func(t *testing.T) {
			s := value.NewString(tc.input)
			assert.Equal(t, tc.expected, s.Length())
			assert.Equal(t, tc.input, s.String())
			assert.Len(t, s.UTF16(), tc.expected)
		})
	}
}

func TestStringCodeUnitAt(t *testing.T) {
	t.Parallel()

	s := value.NewString("a😀")
	assert.Equal(t, uint16('a'), s.CodeUnitAt(0))
	assert.Equal(t, uint16(0xD83D), s.CodeUnitAt(1))
	assert.Equal(t, uint16(0xDE00), s.CodeUnitAt(2))
}

func TestStringBuilderReadAfterWrite(t *testing.T) {
	t.Parallel()

	b := value.NewStringBuilder(value.NewString("ab"), 0)
	assert.True(t, b.IsBuilder())
	assert.Equal(t, "ab", b.String())

	b.AppendGo("ç")
	assert.Equal(t, 3, b.Length())
	assert.Equal(t, "abç", b.String())

	b.Append(value.NewString("!"))
	assert.Equal(t, "abç!", b.String())
	assert.Equal(t, uint16('!'), b.CodeUnitAt(3))

	require.NoError(t, b.AppendValue(value.Number(1.5)))
	assert.Equal(t, "abç!1.5", b.String())

	err := b.AppendValue(value.SymbolOf(value.NewSymbol(nil)))
	assert.True(t, jserrors.IsKind(err, jserrors.KindTypeError))
	assert.Equal(t, "abç!1.5", b.String())
}

func TestStringBuilderAmortizedGrowth(t *testing.T) {
	t.Parallel()

	b := value.NewStringBuilder(nil, 0)
	for i := 0; i < 10000; i++ {
		b.AppendGo("x")
	}
	assert.Equal(t, 10000, b.Length())
	assert.Equal(t, strings.Repeat("x", 10000), b.String())

	b.EnsureCapacity(100)
	assert.Equal(t, 10000, b.Length())
}

func TestAppendToFlatStringPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { value.NewString("flat string here").AppendGo("x") })
}

func TestConcat(t *testing.T) {
	t.Parallel()

	v, err := value.Concat(value.Str("a"), value.Number(1))
	require.NoError(t, err)
	assert.True(t, v.AsString().IsBuilder())
	assert.Equal(t, "a1", v.AsString().String())

	// an owned builder on the left is extended in place
	v2, err := value.Concat(v, value.Str("b"))
	require.NoError(t, err)
	assert.Same(t, v.AsString(), v2.AsString())
	assert.Equal(t, "a1b", v2.AsString().String())

	_, err = value.Concat(value.Str("a"), value.SymbolOf(value.NewSymbol(nil)))
	assert.Error(t, err)
}

func TestStringCompare(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		a, b     string
		expected int
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"ab", "ab", 0},
		{"ab", "abc", -1},
		{"", "a", -1},
		{"😀", "￿", -1},
	}

	for _, tc := range testcases {
		t.Run(tc.a+"|"+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.expected, value.NewString(tc.a).Compare(value.NewString(tc.b)))
		})
	}
}

func TestShortStringCache(t *testing.T) {
	t.Parallel()

	a := value.NewString("cached")
	b := value.NewString("cached")
	assert.Same(t, a, b)

	long := "this string is too long for the cache"
	assert.NotSame(t, value.NewString(long), value.NewString(long))
	assert.NotSame(t, value.NewString("x"), value.NewString("x"))
}

func TestNewStringFromUTF16(t *testing.T) {
	t.Parallel()

	s := value.NewStringFromUTF16([]uint16{'h', 'i', 0xD83D, 0xDE00})
	assert.Equal(t, "hi😀", s.String())
	assert.True(t, s.Equal(value.NewString("hi😀")))

	ascii := value.NewStringFromUTF16([]uint16{'o', 'k'})
	assert.True(t, ascii.Equal(value.NewString("ok")))
}

func TestCodePointLengthAtAndSubstring(t *testing.T) {
	t.Parallel()

	s := value.NewStringFromUTF16([]uint16{'a', 0xD83D, 0xDE00, 0xD800, 'b'})
	assert.Equal(t, 1, s.CodePointLengthAt(0))
	assert.Equal(t, 2, s.CodePointLengthAt(1))
	assert.Equal(t, 1, s.CodePointLengthAt(3))
	assert.Equal(t, "😀", s.Substring(1, 3).String())
	assert.Equal(t, "b", s.Substring(4, 5).String())
	assert.Equal(t, "bc", value.NewString("abcd").Substring(1, 3).String())
}
