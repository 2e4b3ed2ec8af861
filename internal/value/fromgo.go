package value

import (
	"math/big"
	"reflect"
)

// FromGo converts a plain host value. ok is false for types without a
// script counterpart, in which case Undefined is returned.
func FromGo(x any) (v Value, ok bool) {
	switch x := x.(type) {
	case nil:
		return Null, true
	case Value:
		return x, true
	case Object:
		if isNilObject(x) {
			return Null, true
		}
		return ObjectOf(x), true
	case *Symbol:
		if x == nil {
			return Null, true
		}
		return SymbolOf(x), true
	case *String:
		if x == nil {
			return Null, true
		}
		return StringOf(x), true
	case bool:
		return Bool(x), true
	case string:
		return Str(x), true
	case int:
		return Int(int64(x)), true
	case int8:
		return Int(int64(x)), true
	case int16:
		return Int(int64(x)), true
	case int32:
		return Int(int64(x)), true
	case int64:
		return Int(x), true
	case uint:
		return Number(float64(x)), true
	case uint8:
		return Number(float64(x)), true
	case uint16:
		return Number(float64(x)), true
	case uint32:
		return Number(float64(x)), true
	case uint64:
		return Number(float64(x)), true
	case float32:
		return Number(float64(x)), true
	case float64:
		return Number(x), true
	case *big.Int:
		if x == nil {
			return Null, true
		}
		return BigInt(x), true
	}
	return Undefined, false
}

// Export converts v into a plain Go value. Objects and symbols are returned
// as their payloads; Undefined and Empty export as nil.
func (v Value) Export() any {
	switch v.kind {
	case KindBoolean:
		return v.AsBoolean()
	case KindNumber:
		return v.AsNumber()
	case KindBigInt:
		return new(big.Int).Set(v.AsBigInt())
	case KindString:
		return v.AsString().String()
	case KindSymbol:
		return v.AsSymbol()
	case KindObject:
		return v.AsObject()
	}
	return nil
}

// isNilObject reports whether o holds a typed nil.
func isNilObject(o Object) bool {
	rv := reflect.ValueOf(o)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
