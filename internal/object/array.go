package object

import (
	"math"
	"strconv"
	"strings"

	"github.com/leonardinius/esvalue/internal/value"
)

var keyLength = value.Str("length")

// Array is a dense array exotic object.
type Array struct {
	Ordinary
	elements []value.Value
}

func (r *Realm) NewArray(elements ...value.Value) *Array {
	return &Array{
		Ordinary: *NewOrdinary(value.ObjectArray, r.ArrayPrototype),
		elements: elements,
	}
}

// arrayIndex parses a canonical array index key.
func arrayIndex(key value.Value) (int, bool) {
	if !key.IsString() {
		return 0, false
	}
	s := key.AsString().String()
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == math.MaxUint32 {
		return 0, false
	}
	return int(n), true
}

func (a *Array) Len() int {
	return len(a.elements)
}

func (a *Array) At(i int) value.Value {
	return a.elements[i]
}

// Elements returns a copy of the elements.
func (a *Array) Elements() []value.Value {
	return append([]value.Value(nil), a.elements...)
}

func (a *Array) Push(v value.Value) {
	a.elements = append(a.elements, v)
}

// Get implements value.Object.
func (a *Array) Get(key value.Value, receiver value.Value) (value.Value, error) {
	if key.IsString() && value.IsStrictlyEqual(key, keyLength) {
		return value.Int(int64(len(a.elements))), nil
	}
	if i, ok := arrayIndex(key); ok {
		if i < len(a.elements) {
			return a.elements[i].UninitializedToUndefined(), nil
		}
		return value.Undefined, nil
	}
	return a.Ordinary.Get(key, receiver)
}

// Set implements value.Object. Writing past the end fills holes with undefined.
func (a *Array) Set(key value.Value, v value.Value, receiver value.Value) (bool, error) {
	if i, ok := arrayIndex(key); ok {
		for len(a.elements) <= i {
			a.elements = append(a.elements, value.Undefined)
		}
		a.elements[i] = v
		return true, nil
	}
	return a.Ordinary.Set(key, v, receiver)
}

// String implements fmt.Stringer.
func (a *Array) String() string {
	parts := make([]string, len(a.elements))
	for i, e := range a.elements {
		if e.IsString() {
			parts[i] = strconv.Quote(e.String())
			continue
		}
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func installArrayPrototype(r *Realm) {
	proto := r.ArrayPrototype
	proto.DefineMethod(r, "join", NativeFunction1(func(this, sep value.Value) (value.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return value.Str(""), nil
		}
		separator := ","
		if !sep.IsUndefined() {
			s, err := value.ToGoString(sep)
			if err != nil {
				return value.Empty, err
			}
			separator = s
		}
		b := value.NewStringBuilder(nil, 0)
		for i, e := range arr.elements {
			if i > 0 {
				b.AppendGo(separator)
			}
			if e.IsNullish() || e.IsEmpty() {
				continue
			}
			if err := b.AppendValue(e); err != nil {
				return value.Empty, err
			}
		}
		return value.StringOf(b.Snapshot()), nil
	}))
	proto.DefineMethod(r, "toString", NativeFunction0(func(this value.Value) (value.Value, error) {
		return value.Invoke(r, this, value.Str("join"))
	}))
	proto.DefineMethod(r, "push", NativeFunctionVarArgs(func(this value.Value, args ...value.Value) (value.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return value.Undefined, nil
		}
		for _, v := range args {
			arr.Push(v)
		}
		return value.Int(int64(arr.Len())), nil
	}))
	proto.DefineSymbolMethod(r, value.SymbolIterator, NativeFunction0(func(this value.Value) (value.Value, error) {
		o, err := r.ToObject(this)
		if err != nil {
			return value.Empty, err
		}
		return value.ObjectOf(r.NewArrayIterator(o)), nil
	}))
}

func thisArray(this value.Value) (*Array, bool) {
	o, ok := this.TryObject()
	if !ok {
		return nil, false
	}
	arr, ok := o.(*Array)
	return arr, ok
}
