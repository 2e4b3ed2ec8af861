package value_test

import (
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

// plainObject is a minimal heap object keyed by property display name.
type plainObject struct {
	value.ObjectBase
	props map[string]value.Value
}

func newPlainObject(proto value.Object) *plainObject {
	return &plainObject{
		ObjectBase: value.NewObjectBase(value.ObjectOrdinary, proto),
		props:      map[string]value.Value{},
	}
}

func (o *plainObject) Get(key value.Value, receiver value.Value) (value.Value, error) {
	var cur value.Object = o
	for cur != nil {
		if p, ok := cur.(*plainObject); ok {
			if v, ok := p.props[key.String()]; ok {
				return v, nil
			}
		}
		if f, ok := cur.(*funcObject); ok {
			if v, ok := f.props[key.String()]; ok {
				return v, nil
			}
		}
		next, err := cur.GetPrototypeOf()
		if err != nil {
			return value.Empty, err
		}
		cur = next
	}
	return value.Undefined, nil
}

func (o *plainObject) Set(key value.Value, v value.Value, receiver value.Value) (bool, error) {
	o.props[key.String()] = v
	return true, nil
}

func (o *plainObject) with(key string, v value.Value) *plainObject {
	o.props[key] = v
	return o
}

func (o *plainObject) withSymbol(s *value.Symbol, v value.Value) *plainObject {
	o.props[value.SymbolOf(s).String()] = v
	return o
}

// funcObject is a callable heap object.
type funcObject struct {
	plainObject
	fn func(this value.Value, args ...value.Value) (value.Value, error)
}

func newFunc(fn func(this value.Value, args ...value.Value) (value.Value, error)) *funcObject {
	f := &funcObject{plainObject: *newPlainObject(nil), fn: fn}
	f.ObjectBase = value.NewObjectBase(value.ObjectFunction, nil)
	return f
}

func (f *funcObject) Get(key value.Value, receiver value.Value) (value.Value, error) {
	if v, ok := f.props[key.String()]; ok {
		return v, nil
	}
	return value.Undefined, nil
}

func (f *funcObject) Call(this value.Value, args ...value.Value) (value.Value, error) {
	return f.fn(this, args...)
}

func constant(v value.Value) *funcObject {
	return newFunc(func(value.Value, ...value.Value) (value.Value, error) { return v, nil })
}

// boundFunc delegates instanceof to its target.
type boundFunc struct {
	*funcObject
	target value.Object
}

func (b *boundFunc) BoundTarget() value.Object {
	return b.target
}

type testRealm struct {
	registry          *value.SymbolRegistry
	symbolsAsWeakKeys bool
	stringProto       *plainObject
}

func newTestRealm() *testRealm {
	return &testRealm{registry: value.NewSymbolRegistry(), stringProto: newPlainObject(nil)}
}

func (r *testRealm) ToObject(v value.Value) (value.Object, error) {
	if v.IsNullish() {
		return nil, jserrors.TypeError("Cannot convert undefined or null to object")
	}
	return r.stringProto, nil
}

func (r *testRealm) HasOriginalStringIterator() bool { return true }
func (r *testRealm) SymbolRegistry() *value.SymbolRegistry { return r.registry }
func (r *testRealm) SymbolsAsWeakKeys() bool { return r.symbolsAsWeakKeys }
func (r *testRealm) ErrorValue(err error) value.Value { return value.Str(err.Error()) }

var (
	_ value.Object        = (*plainObject)(nil)
	_ value.Callable      = (*funcObject)(nil)
	_ value.BoundFunction = (*boundFunc)(nil)
	_ value.Realm         = (*testRealm)(nil)
)
