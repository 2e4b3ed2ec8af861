package weak

import (
	"reflect"
	gcweak "weak"

	"github.com/leonardinius/esvalue/internal/agent"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

// Ref is a weak reference to an object or a symbol.
type Ref struct {
	ag     *agent.Agent
	target gcweak.Pointer[cell]
	// typ rebuilds the object interface from the raw pointer; nil for symbols.
	typ reflect.Type
}

// NewRef returns a weak reference to target. The target stays alive until
// the current job ends.
func NewRef(ag *agent.Agent, target value.Value) (*Ref, error) {
	if !value.CanBeHeldWeakly(ag.Realm(), target) {
		return nil, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrInvalidWeakRefTarget,
			"Invalid value used as weak reference target")
	}
	r := &Ref{ag: ag, target: gcweak.Make(heapPointer(target))}
	if target.IsObject() {
		r.typ = reflect.TypeOf(target.AsObject())
	}
	ag.AddToKeptObjects(target)
	return r, nil
}

// Deref returns the target, or Undefined once it has been collected. A live
// target is kept alive until the current job ends.
func (r *Ref) Deref() value.Value {
	p := r.target.Value()
	if p == nil {
		return value.Undefined
	}
	var v value.Value
	if r.typ == nil {
		v = value.SymbolOf((*value.Symbol)(unsafePointer(p)))
	} else {
		o := reflect.NewAt(r.typ.Elem(), unsafePointer(p)).Interface().(value.Object)
		v = value.ObjectOf(o)
	}
	r.ag.AddToKeptObjects(v)
	return v
}
