// Package weak bridges WeakMap and WeakRef semantics onto the Go runtime's
// weak pointers. Keys and targets never keep their referent alive.
//
// Collection is best-effort: there are no ephemerons, so a value that
// references its own key keeps that key reachable.
package weak

import (
	"reflect"
	"runtime"
	"sync"
	"unsafe"
	gcweak "weak"

	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/value"
)

// cell is the untyped anchor of a weak key. Its address is the start of the
// key's heap allocation.
type cell = byte

type entry struct {
	value   value.Value
	cleanup runtime.Cleanup
}

// Map associates values with weakly held keys.
type Map struct {
	realm value.Realm

	mu      sync.Mutex
	entries map[gcweak.Pointer[cell]]*entry
}

func NewMap(realm value.Realm) *Map {
	return &Map{
		realm:   realm,
		entries: make(map[gcweak.Pointer[cell]]*entry),
	}
}

// heapPointer returns the address identifying v. Only objects and symbols
// have one.
func heapPointer(v value.Value) *cell {
	switch v.Kind() {
	case value.KindObject:
		return (*cell)(reflect.ValueOf(v.AsObject()).UnsafePointer())
	case value.KindSymbol:
		return (*cell)(unsafe.Pointer(v.AsSymbol()))
	}
	return nil
}

func unsafePointer(p *cell) unsafe.Pointer {
	return unsafe.Pointer(p)
}

func (m *Map) key(k value.Value) (gcweak.Pointer[cell], *cell, bool) {
	if !value.CanBeHeldWeakly(m.realm, k) {
		return gcweak.Pointer[cell]{}, nil, false
	}
	p := heapPointer(k)
	return gcweak.Make(p), p, true
}

// Set stores v under k. k must be holdable weakly.
func (m *Map) Set(k, v value.Value) error {
	wp, p, ok := m.key(k)
	if !ok {
		return jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrInvalidWeakKey, "Invalid value used as weak map key")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[wp]; ok {
		e.value = v
		return nil
	}
	e := &entry{value: v}
	e.cleanup = runtime.AddCleanup(p, m.remove, wp)
	m.entries[wp] = e
	return nil
}

// remove runs on the runtime cleanup goroutine after a key is collected.
func (m *Map) remove(wp gcweak.Pointer[cell]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, wp)
}

// Get returns the value stored under k, or Undefined.
func (m *Map) Get(k value.Value) value.Value {
	wp, _, ok := m.key(k)
	if !ok {
		return value.Undefined
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[wp]; ok {
		return e.value
	}
	return value.Undefined
}

func (m *Map) Has(k value.Value) bool {
	wp, _, ok := m.key(k)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok = m.entries[wp]
	return ok
}

// Delete removes k and reports whether it was present.
func (m *Map) Delete(k value.Value) bool {
	wp, _, ok := m.key(k)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[wp]
	if !ok {
		return false
	}
	e.cleanup.Stop()
	delete(m.entries, wp)
	return true
}

// GetOrInsert returns the value under k, storing v first when k is absent.
func (m *Map) GetOrInsert(k, v value.Value) (value.Value, error) {
	if !value.CanBeHeldWeakly(m.realm, k) {
		return value.Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrInvalidWeakKey, "Invalid value used as weak map key")
	}
	if m.Has(k) {
		return m.Get(k), nil
	}
	if err := m.Set(k, v); err != nil {
		return value.Empty, err
	}
	return v, nil
}

// GetOrInsertComputed is GetOrInsert with a lazily computed value. The
// callback runs without the lock held; if it inserts k itself, the computed
// value overwrites that entry.
func (m *Map) GetOrInsertComputed(k value.Value, fn func(k value.Value) (value.Value, error)) (value.Value, error) {
	if !value.CanBeHeldWeakly(m.realm, k) {
		return value.Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrInvalidWeakKey, "Invalid value used as weak map key")
	}
	if m.Has(k) {
		return m.Get(k), nil
	}
	v, err := fn(k)
	if err != nil {
		return value.Empty, err
	}
	if err := m.Set(k, v); err != nil {
		return value.Empty, err
	}
	return v, nil
}

// Len returns the number of entries whose key is still alive.
func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for wp := range m.entries {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}
