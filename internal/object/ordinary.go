package object

import (
	"fmt"

	"github.com/leonardinius/esvalue/internal/value"
)

// Ordinary is an object with an own property table and a prototype link.
// Other concrete objects embed it.
type Ordinary struct {
	value.ObjectBase
	props properties
}

func NewOrdinary(kind value.ObjectKind, proto value.Object) *Ordinary {
	return &Ordinary{ObjectBase: value.NewObjectBase(kind, proto)}
}

func toKey(key value.Value) (propertyKey, error) {
	if !key.IsString() && !key.IsSymbol() {
		k, err := value.ToPropertyKey(key)
		if err != nil {
			return propertyKey{}, err
		}
		key = k
	}
	return keyOf(key), nil
}

// GetOwn returns the own property stored at key.
func (o *Ordinary) GetOwn(key value.Value) (value.Value, bool) {
	k, err := toKey(key)
	if err != nil {
		return value.Empty, false
	}
	return o.props.get(k)
}

// Get implements value.Object.
func (o *Ordinary) Get(key value.Value, receiver value.Value) (value.Value, error) {
	k, err := toKey(key)
	if err != nil {
		return value.Empty, err
	}
	if v, ok := o.props.get(k); ok {
		return v, nil
	}
	proto, err := o.GetPrototypeOf()
	if err != nil || proto == nil {
		return value.Undefined, err
	}
	return proto.Get(key, receiver)
}

// Set implements value.Object. Properties are plain data slots.
func (o *Ordinary) Set(key value.Value, v value.Value, receiver value.Value) (bool, error) {
	k, err := toKey(key)
	if err != nil {
		return false, err
	}
	o.props.set(k, v)
	return true, nil
}

// Define stores an own property without consulting the prototype chain.
func (o *Ordinary) Define(key value.Value, v value.Value) {
	o.props.set(keyOf(key), v)
}

// DefineMethod stores a built-in function as an own property.
func (o *Ordinary) DefineMethod(r *Realm, name string, fn Native) *Function {
	f := r.NewFunction(name, fn)
	o.Define(value.Str(name), value.ObjectOf(f))
	return f
}

// DefineSymbolMethod stores a built-in function under a symbol key.
func (o *Ordinary) DefineSymbolMethod(r *Realm, sym *value.Symbol, fn Native) *Function {
	f := r.NewFunction("["+sym.DescriptiveString()+"]", fn)
	o.Define(value.SymbolOf(sym), value.ObjectOf(f))
	return f
}

func (o *Ordinary) Delete(key value.Value) bool {
	k, err := toKey(key)
	if err != nil {
		return false
	}
	return o.props.delete(k)
}

// OwnKeys returns the own property keys in insertion order.
func (o *Ordinary) OwnKeys() []value.Value {
	return o.props.keys()
}

// String implements fmt.Stringer.
func (o *Ordinary) String() string {
	return fmt.Sprintf("[object %s]", o.Kind())
}

// GoString implements fmt.GoStringer.
func (o *Ordinary) GoString() string {
	return fmt.Sprintf("%s{%d properties}", o.Kind(), o.props.len())
}

var (
	_ value.Object   = (*Ordinary)(nil)
	_ fmt.Stringer   = (*Ordinary)(nil)
	_ fmt.GoStringer = (*Ordinary)(nil)
)
