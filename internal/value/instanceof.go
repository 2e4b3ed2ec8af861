package value

import (
	"github.com/leonardinius/esvalue/internal/jserrors"
)

var keyPrototype = Str("prototype")

// InstanceofOperator implements v instanceof target.
func InstanceofOperator(v Value, target Value) (bool, error) {
	targetObj, ok := target.TryObject()
	if !ok {
		return false, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotAnObject,
			"Right-hand side of 'instanceof' is not an object")
	}
	hasInstance, err := objectMethod(targetObj, target, SymbolOf(SymbolHasInstance))
	if err != nil {
		return false, err
	}
	if hasInstance != nil {
		result, err := hasInstance.Call(target, v)
		if err != nil {
			return false, err
		}
		return result.ToBoolean(), nil
	}
	if !IsCallable(target) {
		return false, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotCallable,
			"Right-hand side of 'instanceof' is not callable")
	}
	return OrdinaryHasInstance(target, v)
}

// OrdinaryHasInstance walks the prototype chain of v looking for c.prototype.
func OrdinaryHasInstance(c Value, v Value) (bool, error) {
	callable, ok := AsCallable(c)
	if !ok {
		return false, nil
	}
	if bound, ok := callable.(BoundFunction); ok {
		return InstanceofOperator(v, ObjectOf(bound.BoundTarget()))
	}
	o, ok := v.TryObject()
	if !ok {
		return false, nil
	}
	p, err := callable.Get(keyPrototype, c)
	if err != nil {
		return false, err
	}
	proto, ok := p.TryObject()
	if !ok {
		return false, jserrors.TypeError("Function has non-object prototype '%s' in instanceof check", p)
	}

	// slow advances one link per two steps of the walk; meeting it again means a cycle
	slow := o
	for step := 0; ; step++ {
		next, err := o.GetPrototypeOf()
		if err != nil {
			return false, err
		}
		if next == nil {
			return false, nil
		}
		if next == proto {
			return true, nil
		}
		o = next
		if step%2 == 1 {
			if slow, err = slow.GetPrototypeOf(); err != nil {
				return false, err
			}
			if slow == o {
				return false, nil
			}
		}
	}
}
