package object

import (
	"github.com/dop251/goja/unistring"

	"github.com/leonardinius/esvalue/internal/value"
)

// propertyKey identifies an own property. Exactly one field is set.
type propertyKey struct {
	name unistring.String
	sym  *value.Symbol
}

// keyOf converts a property key value. Non-key values are converted with
// ToPropertyKey by the caller beforehand.
func keyOf(key value.Value) propertyKey {
	if key.IsSymbol() {
		return propertyKey{sym: key.AsSymbol()}
	}
	return propertyKey{name: key.AsString().Flat()}
}

func (k propertyKey) value() value.Value {
	if k.sym != nil {
		return value.SymbolOf(k.sym)
	}
	return value.StringOf(value.NewString(k.name.String()))
}

// properties is an insertion-ordered property table.
type properties struct {
	order  []propertyKey
	values map[propertyKey]value.Value
}

func (p *properties) get(k propertyKey) (value.Value, bool) {
	v, ok := p.values[k]
	return v, ok
}

func (p *properties) set(k propertyKey, v value.Value) {
	if p.values == nil {
		p.values = make(map[propertyKey]value.Value)
	}
	if _, ok := p.values[k]; !ok {
		p.order = append(p.order, k)
	}
	p.values[k] = v
}

func (p *properties) delete(k propertyKey) bool {
	if _, ok := p.values[k]; !ok {
		return false
	}
	delete(p.values, k)
	for i, o := range p.order {
		if o == k {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

func (p *properties) keys() []value.Value {
	keys := make([]value.Value, 0, len(p.order))
	for _, k := range p.order {
		keys = append(keys, k.value())
	}
	return keys
}

func (p *properties) len() int {
	return len(p.order)
}
