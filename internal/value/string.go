package value

import (
	"strings"
	"unicode/utf16"

	"github.com/dop251/goja/unistring"
)

// String is the payload of a String value.
//
// A flat string stores its code units in a unistring.String: plain bytes when
// every unit is ASCII, otherwise a BOM-prefixed UTF-16 sequence. A builder
// string owns a growable []uint16 buffer and keeps a flat snapshot that is
// rebuilt on the first observable read after an append.
type String struct {
	flat  unistring.String
	buf   []uint16
	dirty bool
}

// NewString returns a flat string holding the code units of s.
// Short strings are shared through the process-wide cache.
func NewString(s string) *String {
	u := unistring.NewFromString(s)
	if n := flatLength(u); n >= minCachedLength && n <= maxCachedLength {
		return cachedString(u)
	}
	return &String{flat: u}
}

// NewStringFromUTF16 returns a flat string holding a copy of units.
func NewStringFromUTF16(units []uint16) *String {
	return &String{flat: flatFromUTF16(units)}
}

// NewStringBuilder returns a builder string seeded with initial (which may be
// nil) and room for at least capacity code units.
func NewStringBuilder(initial *String, capacity int) *String {
	n := 0
	if initial != nil {
		n = initial.Length()
	}
	if capacity < n {
		capacity = n
	}
	b := &String{buf: make([]uint16, 0, capacity), dirty: true}
	if initial != nil {
		b.buf = initial.appendUnits(b.buf)
	}
	return b
}

func flatLength(u unistring.String) int {
	if units := u.AsUtf16(); units != nil {
		return len(units) - 1
	}
	return len(u)
}

func flatFromUTF16(units []uint16) unistring.String {
	ascii := true
	for _, c := range units {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		var sb strings.Builder
		sb.Grow(len(units))
		for _, c := range units {
			sb.WriteByte(byte(c))
		}
		return unistring.String(sb.String())
	}
	withBOM := make([]uint16, len(units)+1)
	withBOM[0] = unistring.BOM
	copy(withBOM[1:], units)
	return unistring.FromUtf16(withBOM)
}

// IsBuilder reports whether s is in builder form.
func (s *String) IsBuilder() bool {
	return s.buf != nil
}

// Length returns the number of UTF-16 code units. It never flushes a builder.
func (s *String) Length() int {
	if s.buf != nil {
		return len(s.buf)
	}
	return flatLength(s.flat)
}

// CodeUnitAt returns the code unit at index i. It panics when i is out of range.
func (s *String) CodeUnitAt(i int) uint16 {
	if s.buf != nil {
		return s.buf[i]
	}
	if units := s.flat.AsUtf16(); units != nil {
		return units[i+1]
	}
	return uint16(s.flat[i])
}

// Flat returns the flat form of s, flushing a dirty builder first.
func (s *String) Flat() unistring.String {
	if s.buf != nil && s.dirty {
		s.flat = flatFromUTF16(s.buf)
		s.dirty = false
	}
	return s.flat
}

// String returns s as UTF-8. Lone surrogates become U+FFFD.
func (s *String) String() string {
	return s.Flat().String()
}

// UTF16 returns a fresh copy of the code units of s.
func (s *String) UTF16() []uint16 {
	return s.appendUnits(make([]uint16, 0, s.Length()))
}

func (s *String) appendUnits(dst []uint16) []uint16 {
	if s.buf != nil {
		return append(dst, s.buf...)
	}
	if units := s.flat.AsUtf16(); units != nil {
		return append(dst, units[1:]...)
	}
	for i := 0; i < len(s.flat); i++ {
		dst = append(dst, uint16(s.flat[i]))
	}
	return dst
}

// Snapshot returns a flat string with the current contents of s.
func (s *String) Snapshot() *String {
	if s.buf == nil {
		return s
	}
	return &String{flat: s.Flat()}
}

func (s *String) mustBuild() {
	if s.buf == nil {
		panic("value: append to a flat string")
	}
}

// EnsureCapacity grows the builder buffer to hold at least n more code units.
func (s *String) EnsureCapacity(n int) {
	s.mustBuild()
	if cap(s.buf)-len(s.buf) < n {
		grown := make([]uint16, len(s.buf), 2*cap(s.buf)+n)
		copy(grown, s.buf)
		s.buf = grown
	}
}

// Append appends the code units of other to the builder s.
func (s *String) Append(other *String) {
	s.mustBuild()
	s.buf = other.appendUnits(s.buf)
	s.dirty = true
}

// AppendGo appends the UTF-8 string str to the builder s.
func (s *String) AppendGo(str string) {
	s.mustBuild()
	for _, r := range str {
		if r < 0x80 {
			s.buf = append(s.buf, uint16(r))
			continue
		}
		s.buf = utf16.AppendRune(s.buf, r)
	}
	s.dirty = true
}

// AppendValue appends ToString(v) to the builder s.
func (s *String) AppendValue(v Value) error {
	str, err := ToString(v)
	if err != nil {
		return err
	}
	s.Append(str)
	return nil
}

// Equal reports whether s and other hold the same code units.
func (s *String) Equal(other *String) bool {
	if s == other {
		return true
	}
	if s.buf != nil && other.buf != nil {
		if len(s.buf) != len(other.buf) {
			return false
		}
		for i, c := range s.buf {
			if other.buf[i] != c {
				return false
			}
		}
		return true
	}
	if s.Length() != other.Length() {
		return false
	}
	// the flat encoding is canonical, so byte equality is code-unit equality
	return s.Flat() == other.Flat()
}

// Compare orders s and other by code units, the way the relational operators do.
func (s *String) Compare(other *String) int {
	n, m := s.Length(), other.Length()
	for i := 0; i < n && i < m; i++ {
		a, b := s.CodeUnitAt(i), other.CodeUnitAt(i)
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	switch {
	case n < m:
		return -1
	case n > m:
		return 1
	}
	return 0
}

// Concat implements string concatenation for the + operator. When a holds a
// builder string it is extended in place, so a must be owned by the caller.
// Otherwise a new builder is started.
func Concat(a, b Value) (Value, error) {
	left, err := ToString(a)
	if err != nil {
		return Empty, err
	}
	right, err := ToString(b)
	if err != nil {
		return Empty, err
	}
	if left.IsBuilder() {
		left.Append(right)
		return StringOf(left), nil
	}
	builder := NewStringBuilder(left, 2*(left.Length()+right.Length()))
	builder.Append(right)
	return StringOf(builder), nil
}

// CodePointLengthAt returns 2 when a surrogate pair starts at index i and 1
// otherwise. Lone surrogates count as one code point.
func (s *String) CodePointLengthAt(i int) int {
	c := s.CodeUnitAt(i)
	if c >= 0xD800 && c <= 0xDBFF && i+1 < s.Length() {
		if d := s.CodeUnitAt(i + 1); d >= 0xDC00 && d <= 0xDFFF {
			return 2
		}
	}
	return 1
}

// Substring returns the flat string of the code units in [start, end).
func (s *String) Substring(start, end int) *String {
	if s.buf == nil && s.flat.AsUtf16() == nil {
		return NewString(string(s.flat[start:end]))
	}
	units := make([]uint16, end-start)
	for i := range units {
		units[i] = s.CodeUnitAt(start + i)
	}
	return NewStringFromUTF16(units)
}

// CodePointIterator walks the code points of a string snapshot.
type CodePointIterator struct {
	s     *String
	index int
}

// NewCodePointIterator iterates a snapshot of s, so later appends to a
// builder string are not observed.
func NewCodePointIterator(s *String) *CodePointIterator {
	return &CodePointIterator{s: s.Snapshot()}
}

// Next returns the next code point as a string value.
func (it *CodePointIterator) Next() (Value, bool) {
	if it.index >= it.s.Length() {
		return Undefined, false
	}
	n := it.s.CodePointLengthAt(it.index)
	cp := it.s.Substring(it.index, it.index+n)
	it.index += n
	return StringOf(cp), true
}
