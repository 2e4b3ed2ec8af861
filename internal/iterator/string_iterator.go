package iterator

import (
	"github.com/leonardinius/esvalue/internal/value"
)

// StringIterator walks the code points of a string without allocating
// iterator protocol objects. It yields the same sequence as the built-in
// String.prototype[Symbol.iterator].
type StringIterator = value.CodePointIterator

func NewStringIterator(s *value.String) *StringIterator {
	return value.NewCodePointIterator(s)
}
