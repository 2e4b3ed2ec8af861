package object

import (
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

var (
	keyValue = value.Str("value")
	keyDone  = value.Str("done")
)

// CreateIterResult returns a fresh { value, done } object.
func (r *Realm) CreateIterResult(v value.Value, done bool) *Ordinary {
	o := NewOrdinary(value.ObjectOrdinary, r.ObjectPrototype)
	o.Define(keyValue, v)
	o.Define(keyDone, value.Bool(done))
	return o
}

// StringIterator yields the code points of a string, one string value each.
// Lone surrogates are yielded as single code units.
type StringIterator struct {
	Ordinary
	*value.CodePointIterator
}

func (r *Realm) NewStringIterator(s *value.String) *StringIterator {
	return &StringIterator{
		Ordinary:          *NewOrdinary(value.ObjectIterator, r.StringIteratorPrototype),
		CodePointIterator: value.NewCodePointIterator(s),
	}
}

// ArrayIterator yields the elements of an array-like object by index.
type ArrayIterator struct {
	Ordinary
	target value.Object
	index  int
	done   bool
}

func (r *Realm) NewArrayIterator(target value.Object) *ArrayIterator {
	return &ArrayIterator{
		Ordinary: *NewOrdinary(value.ObjectIterator, r.ArrayIteratorPrototype),
		target:   target,
	}
}

// Next advances the iterator. The length is read on every step.
func (it *ArrayIterator) Next() (value.Value, bool, error) {
	if it.done {
		return value.Undefined, false, nil
	}
	receiver := value.ObjectOf(it.target)
	lengthValue, err := it.target.Get(keyLength, receiver)
	if err != nil {
		return value.Empty, false, err
	}
	length, err := value.ToNumber(lengthValue)
	if err != nil {
		return value.Empty, false, err
	}
	if float64(it.index) >= length || length != length {
		it.done = true
		return value.Undefined, false, nil
	}
	v, err := it.target.Get(value.Str(value.NumberToString(float64(it.index))), receiver)
	if err != nil {
		return value.Empty, false, err
	}
	it.index++
	return v, true, nil
}

func installIteratorPrototypes(r *Realm) {
	r.IteratorPrototype.DefineSymbolMethod(r, value.SymbolIterator, NativeFunction0(func(this value.Value) (value.Value, error) {
		return this, nil
	}))

	r.StringIteratorPrototype.DefineMethod(r, "next", NativeFunction0(func(this value.Value) (value.Value, error) {
		it, ok := thisIterator[*StringIterator](this)
		if !ok {
			return value.Empty, jserrors.TypeError("next method called on incompatible receiver %s", this)
		}
		v, ok := it.Next()
		return value.ObjectOf(r.CreateIterResult(v, !ok)), nil
	}))
	r.StringIteratorPrototype.Define(value.SymbolOf(value.SymbolToStringTag), value.Str("String Iterator"))

	r.ArrayIteratorPrototype.DefineMethod(r, "next", NativeFunction0(func(this value.Value) (value.Value, error) {
		it, ok := thisIterator[*ArrayIterator](this)
		if !ok {
			return value.Empty, jserrors.TypeError("next method called on incompatible receiver %s", this)
		}
		v, ok, err := it.Next()
		if err != nil {
			return value.Empty, err
		}
		return value.ObjectOf(r.CreateIterResult(v, !ok)), nil
	}))
	r.ArrayIteratorPrototype.Define(value.SymbolOf(value.SymbolToStringTag), value.Str("Array Iterator"))
}

func thisIterator[T value.Object](this value.Value) (T, bool) {
	var zero T
	o, ok := this.TryObject()
	if !ok {
		return zero, false
	}
	it, ok := o.(T)
	return it, ok
}
