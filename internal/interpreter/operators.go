package interpreter

import (
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/token"
	"github.com/leonardinius/esvalue/internal/value"
)

func binaryOperator(op token.TokenType, left, right value.Value) (value.Value, error) {
	switch op {
	case token.EQUAL_EQUAL, token.BANG_EQUAL:
		eq, err := value.IsLooselyEqual(left, right)
		if err != nil {
			return value.Empty, err
		}
		return value.Bool(eq == (op == token.EQUAL_EQUAL)), nil
	case token.EQUAL_EQUAL_EQUAL:
		return value.Bool(value.IsStrictlyEqual(left, right)), nil
	case token.BANG_EQUAL_EQUAL:
		return value.Bool(!value.IsStrictlyEqual(left, right)), nil
	case token.LESS:
		r, err := value.IsLessThan(left, right, true)
		return value.Bool(r.IsBoolean() && r.AsBoolean()), err
	case token.GREATER:
		r, err := value.IsLessThan(right, left, false)
		return value.Bool(r.IsBoolean() && r.AsBoolean()), err
	case token.LESS_EQUAL:
		r, err := value.IsLessThan(right, left, false)
		return value.Bool(r.IsBoolean() && !r.AsBoolean()), err
	case token.GREATER_EQUAL:
		r, err := value.IsLessThan(left, right, true)
		return value.Bool(r.IsBoolean() && !r.AsBoolean()), err
	case token.INSTANCEOF:
		ok, err := value.InstanceofOperator(left, right)
		return value.Bool(ok), err
	case token.PLUS:
		return add(left, right)
	case token.MINUS:
		return arithmetic('-', left, right)
	case token.STAR:
		return arithmetic('*', left, right)
	case token.SLASH:
		return arithmetic('/', left, right)
	}
	return value.Empty, jserrors.Throw(jserrors.KindSyntaxError, "unexpected binary operator %s", op)
}

// add is the + operator: string concatenation when either primitive is a
// string, numeric addition otherwise.
func add(left, right value.Value) (value.Value, error) {
	lp, err := value.ToPrimitive(left, value.HintDefault)
	if err != nil {
		return value.Empty, err
	}
	rp, err := value.ToPrimitive(right, value.HintDefault)
	if err != nil {
		return value.Empty, err
	}
	if lp.IsString() || rp.IsString() {
		return value.Concat(lp, rp)
	}
	return arithmetic('+', lp, rp)
}

func arithmetic(op byte, left, right value.Value) (value.Value, error) {
	ln, err := value.ToNumeric(left)
	if err != nil {
		return value.Empty, err
	}
	rn, err := value.ToNumeric(right)
	if err != nil {
		return value.Empty, err
	}

	switch {
	case ln.IsBigInt() && rn.IsBigInt():
		v, ok := value.BigIntArith(op, ln.AsBigInt(), rn.AsBigInt())
		if !ok {
			return value.Empty, jserrors.ThrowCause(jserrors.KindRangeError, jserrors.ErrRuntimeBigIntDivisionByZero, "Division by zero")
		}
		return v, nil
	case ln.IsBigInt() || rn.IsBigInt():
		return value.Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrRuntimeMixBigIntAndOther,
			"Cannot mix BigInt and other types, use explicit conversions")
	}

	a, b := ln.AsNumber(), rn.AsNumber()
	switch op {
	case '+':
		return value.Number(a + b), nil
	case '-':
		return value.Number(a - b), nil
	case '*':
		return value.Number(a * b), nil
	default:
		return value.Number(a / b), nil
	}
}

func unaryOperator(op token.TokenType, right value.Value) (value.Value, error) {
	switch op {
	case token.BANG:
		return value.Bool(!right.ToBoolean()), nil
	case token.TYPEOF:
		return value.Str(value.TypeOf(right)), nil
	case token.MINUS:
		n, err := value.ToNumeric(right)
		if err != nil {
			return value.Empty, err
		}
		if n.IsBigInt() {
			return value.BigIntNegate(n.AsBigInt()), nil
		}
		return value.Number(-n.AsNumber()), nil
	}
	return value.Empty, jserrors.ThrowCause(jserrors.KindSyntaxError, jserrors.ErrRuntimeInvalidUnaryOperand,
		"unexpected unary operator %s", op)
}
