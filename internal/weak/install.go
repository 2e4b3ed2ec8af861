package weak

import (
	"github.com/leonardinius/esvalue/internal/agent"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/value"
)

// MapObject is the script-visible face of a Map.
type MapObject struct {
	object.Ordinary
	table *Map
}

// RefObject is the script-visible face of a Ref.
type RefObject struct {
	object.Ordinary
	*Ref
}

func NewMapObject(realm *object.Realm) *MapObject {
	return &MapObject{
		Ordinary: *object.NewOrdinary(value.ObjectWeakMap, realm.WeakMapPrototype),
		table:    NewMap(realm),
	}
}

// Table returns the weak table behind m.
func (m *MapObject) Table() *Map {
	return m.table
}

func NewRefObject(ag *agent.Agent, target value.Value) (*RefObject, error) {
	ref, err := NewRef(ag, target)
	if err != nil {
		return nil, err
	}
	return &RefObject{
		Ordinary: *object.NewOrdinary(value.ObjectWeakRef, ag.Realm().WeakRefPrototype),
		Ref:      ref,
	}, nil
}

func (m *MapObject) String() string {
	return "[object WeakMap]"
}

func (r *RefObject) String() string {
	return "[object WeakRef]"
}

func thisObject[T value.Object](this value.Value, method string) (T, error) {
	var zero T
	if o, ok := this.TryObject(); ok {
		if t, ok := o.(T); ok {
			return t, nil
		}
	}
	return zero, jserrors.TypeError("Method %s called on incompatible receiver %s", method, this)
}

// Install defines the WeakMap and WeakRef globals and their prototype methods.
func Install(ag *agent.Agent) {
	realm := ag.Realm()
	installMap(realm)
	installRef(ag)
}

func installMap(realm *object.Realm) {
	proto := realm.WeakMapPrototype
	proto.DefineMethod(realm, "set", object.NativeFunction2(func(this, k, v value.Value) (value.Value, error) {
		m, err := thisObject[*MapObject](this, "WeakMap.prototype.set")
		if err != nil {
			return value.Empty, err
		}
		if err := m.table.Set(k, v); err != nil {
			return value.Empty, err
		}
		return this, nil
	}))
	proto.DefineMethod(realm, "get", object.NativeFunction1(func(this, k value.Value) (value.Value, error) {
		m, err := thisObject[*MapObject](this, "WeakMap.prototype.get")
		if err != nil {
			return value.Empty, err
		}
		return m.table.Get(k), nil
	}))
	proto.DefineMethod(realm, "has", object.NativeFunction1(func(this, k value.Value) (value.Value, error) {
		m, err := thisObject[*MapObject](this, "WeakMap.prototype.has")
		if err != nil {
			return value.Empty, err
		}
		return value.Bool(m.table.Has(k)), nil
	}))
	proto.DefineMethod(realm, "delete", object.NativeFunction1(func(this, k value.Value) (value.Value, error) {
		m, err := thisObject[*MapObject](this, "WeakMap.prototype.delete")
		if err != nil {
			return value.Empty, err
		}
		return value.Bool(m.table.Delete(k)), nil
	}))
	proto.DefineMethod(realm, "getOrInsert", object.NativeFunction2(func(this, k, v value.Value) (value.Value, error) {
		m, err := thisObject[*MapObject](this, "WeakMap.prototype.getOrInsert")
		if err != nil {
			return value.Empty, err
		}
		return m.table.GetOrInsert(k, v)
	}))
	proto.DefineMethod(realm, "getOrInsertComputed", object.NativeFunction2(func(this, k, fn value.Value) (value.Value, error) {
		m, err := thisObject[*MapObject](this, "WeakMap.prototype.getOrInsertComputed")
		if err != nil {
			return value.Empty, err
		}
		callback, ok := value.AsCallable(fn)
		if !ok {
			return value.Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotCallable, "%s is not a function", fn)
		}
		return m.table.GetOrInsertComputed(k, func(k value.Value) (value.Value, error) {
			return callback.Call(value.Undefined, k)
		})
	}))
	proto.Define(value.SymbolOf(value.SymbolToStringTag), value.Str("WeakMap"))

	ctor := realm.NewConstructor("WeakMap", object.NativeFunction0(func(value.Value) (value.Value, error) {
		return value.ObjectOf(NewMapObject(realm)), nil
	}), proto, func([]value.Value, value.Object) (value.Value, error) {
		return value.ObjectOf(NewMapObject(realm)), nil
	})
	realm.Globals.Define(value.Str("WeakMap"), value.ObjectOf(ctor))
}

func installRef(ag *agent.Agent) {
	realm := ag.Realm()
	proto := realm.WeakRefPrototype
	proto.DefineMethod(realm, "deref", object.NativeFunction0(func(this value.Value) (value.Value, error) {
		r, err := thisObject[*RefObject](this, "WeakRef.prototype.deref")
		if err != nil {
			return value.Empty, err
		}
		return r.Deref(), nil
	}))
	proto.Define(value.SymbolOf(value.SymbolToStringTag), value.Str("WeakRef"))

	newRef := func(target value.Value) (value.Value, error) {
		r, err := NewRefObject(ag, target)
		if err != nil {
			return value.Empty, err
		}
		return value.ObjectOf(r), nil
	}
	ctor := realm.NewConstructor("WeakRef", object.NativeFunction1(func(_, target value.Value) (value.Value, error) {
		return newRef(target)
	}), proto, func(args []value.Value, _ value.Object) (value.Value, error) {
		target := value.Undefined
		if len(args) > 0 {
			target = args[0]
		}
		return newRef(target)
	})
	realm.Globals.Define(value.Str("WeakRef"), value.ObjectOf(ctor))
}
