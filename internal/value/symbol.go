package value

import (
	"sync"
	"sync/atomic"
)

var symbolIDs atomic.Uint64

// Symbol is the payload of a Symbol value. Every NewSymbol call produces a
// distinct symbol, even for equal descriptions.
type Symbol struct {
	id          uint64
	description *string
	registryKey *string
}

// NewSymbol returns a fresh symbol. A nil description is distinct from "".
func NewSymbol(description *string) *Symbol {
	return &Symbol{id: symbolIDs.Add(1), description: description}
}

// NewSymbolString is NewSymbol with a present description.
func NewSymbolString(description string) *Symbol {
	return NewSymbol(&description)
}

// ID returns the creation id of s.
func (s *Symbol) ID() uint64 {
	return s.id
}

func (s *Symbol) Description() (string, bool) {
	if s.description == nil {
		return "", false
	}
	return *s.description, true
}

// DescriptiveString implements SymbolDescriptiveString.
func (s *Symbol) DescriptiveString() string {
	desc, _ := s.Description()
	return "Symbol(" + desc + ")"
}

// IsRegistered reports whether s was created by Symbol.for.
func (s *Symbol) IsRegistered() bool {
	return s.registryKey != nil
}

// String implements fmt.Stringer.
func (s *Symbol) String() string {
	return s.DescriptiveString()
}

var (
	SymbolIterator      = NewSymbolString("Symbol.iterator")
	SymbolAsyncIterator = NewSymbolString("Symbol.asyncIterator")
	SymbolHasInstance   = NewSymbolString("Symbol.hasInstance")
	SymbolToStringTag   = NewSymbolString("Symbol.toStringTag")
	SymbolToPrimitive   = NewSymbolString("Symbol.toPrimitive")
)

// WellKnownSymbols lists the well-known symbols by their property name.
var WellKnownSymbols = map[string]*Symbol{
	"iterator":      SymbolIterator,
	"asyncIterator": SymbolAsyncIterator,
	"hasInstance":   SymbolHasInstance,
	"toStringTag":   SymbolToStringTag,
	"toPrimitive":   SymbolToPrimitive,
}

// SymbolRegistry is the GlobalSymbolRegistry behind Symbol.for and Symbol.keyFor.
type SymbolRegistry struct {
	mu      sync.Mutex
	symbols map[string]*Symbol
}

func NewSymbolRegistry() *SymbolRegistry {
	return &SymbolRegistry{symbols: make(map[string]*Symbol)}
}

// For returns the registered symbol for key, creating it on first use.
func (r *SymbolRegistry) For(key string) *Symbol {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.symbols[key]; ok {
		return s
	}
	s := NewSymbolString(key)
	s.registryKey = s.description
	r.symbols[key] = s
	return s
}

// KeyFor returns the registry key of s, if s is registered.
func (r *SymbolRegistry) KeyFor(s *Symbol) (string, bool) {
	if s.registryKey == nil {
		return "", false
	}
	return *s.registryKey, true
}

// Len returns the number of registered symbols.
func (r *SymbolRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.symbols)
}
