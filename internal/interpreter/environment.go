package interpreter

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/token"
	"github.com/leonardinius/esvalue/internal/value"
)

// environment is one lexical scope. The outermost scope falls back to the
// realm's global object.
type environment struct {
	enclosing *environment
	globals   *object.Ordinary
	values    map[string]value.Value
}

type envCtxKey struct{}

func newGlobalEnvironment(globals *object.Ordinary) *environment {
	return &environment{globals: globals}
}

func EnvFromContext(ctx context.Context) *environment {
	env, ok := ctx.Value(envCtxKey{}).(*environment)
	if !ok {
		panic("unexpected EnvFromContext: no environment in context")
	}
	return env
}

func (e *environment) Define(name string, v value.Value) {
	if e.values == nil {
		e.values = make(map[string]value.Value)
	}
	e.values[name] = v
}

// lookup returns the scope that binds name, or nil when only the global
// object (or nothing) does.
func (e *environment) lookup(name string) *environment {
	for self := e; self != nil; self = self.enclosing {
		if _, ok := self.values[name]; ok {
			return self
		}
	}
	return nil
}

// GetRaw returns the stored binding without snapshotting a builder string.
func (e *environment) GetRaw(name *token.Token) (value.Value, error) {
	if scope := e.lookup(name.Lexeme); scope != nil {
		return scope.values[name.Lexeme], nil
	}
	if v, ok := e.global(name.Lexeme); ok {
		return v, nil
	}
	return value.Empty, e.undefinedVariable(name)
}

// Get returns the binding for name. Builder strings are snapshotted so the
// caller never shares a mutable buffer with the scope.
func (e *environment) Get(name *token.Token) (value.Value, error) {
	v, err := e.GetRaw(name)
	if err != nil {
		return value.Empty, err
	}
	return v.Clone(), nil
}

// Has reports whether name is bound in any scope or on the global object.
func (e *environment) Has(name string) bool {
	if e.lookup(name) != nil {
		return true
	}
	_, ok := e.global(name)
	return ok
}

func (e *environment) Assign(name *token.Token, v value.Value) error {
	if scope := e.lookup(name.Lexeme); scope != nil {
		scope.values[name.Lexeme] = v
		return nil
	}
	if g := e.root().globals; g != nil {
		if _, ok := g.GetOwn(value.Str(name.Lexeme)); ok {
			g.Define(value.Str(name.Lexeme), v)
			return nil
		}
	}
	return e.undefinedVariable(name)
}

func (e *environment) Nest() *environment {
	return &environment{enclosing: e}
}

func (e *environment) Enclosing() *environment {
	return e.enclosing
}

func (e *environment) AsContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, envCtxKey{}, e)
}

func (e *environment) root() *environment {
	self := e
	for self.enclosing != nil {
		self = self.enclosing
	}
	return self
}

func (e *environment) global(name string) (value.Value, bool) {
	g := e.root().globals
	if g == nil {
		return value.Empty, false
	}
	return g.GetOwn(value.Str(name))
}

func (e *environment) undefinedVariable(name *token.Token) error {
	err := jserrors.ThrowCause(jserrors.KindReferenceError,
		jserrors.ErrRuntimeUndefinedVariableError(name.Lexeme), "%s is not defined", name.Lexeme)
	return jserrors.NewRuntimeError(name, err)
}

func (e *environment) String() string {
	w := new(strings.Builder)

	for self := e; self != nil; self = self.enclosing {
		names := maps.Keys(self.values)
		slices.Sort(names)

		_, _ = w.WriteString("{")
		for _, k := range names {
			_, _ = fmt.Fprintf(w, "%s=%#v,", k, self.values[k])
		}
		_, _ = w.WriteString("}")
		if self.enclosing != nil {
			_, _ = w.WriteString(" -> ")
		}
	}

	return w.String()
}

var _ fmt.Stringer = (*environment)(nil)
