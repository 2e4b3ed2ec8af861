package interpreter_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leonardinius/esvalue/internal/interpreter"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/parser"
	"github.com/leonardinius/esvalue/internal/scanner"
)

func TestInterpret(t *testing.T) {
	testcases := []struct {
		name string
		in   string // Input
		eval string // Expected eval
		out  string // Expected output
		err  string // Expected error
	}{
		{name: `simple expression`, in: `1 + 2;`, eval: `3`},
		{name: `grouping nested precedence`, in: `((1 + 2) * 3)/2;`, eval: `4.5`},
		{name: `precedence`, in: `1 + 2 * 6 / 4;`, eval: `4`},
		{name: `strings`, in: `"a" + "b";`, eval: `"ab"`},
		{name: `string number concat`, in: `"a" + 1;`, eval: `"a1"`},
		{name: `number string concat`, in: `1 + "a";`, eval: `"1a"`},
		{name: `string bigint concat`, in: `"a" + 1n;`, eval: `"a1"`},
		{name: `boolean addition`, in: `1 + true;`, eval: `2`},
		{name: `numeric strings`, in: `"3" * "4";`, eval: `12`},
		{name: `division by zero`, in: `1 / 0;`, eval: `Infinity`},
		{name: `nan`, in: `0 / 0;`, eval: `NaN`},
		{name: `negative zero`, in: `-0;`, eval: `-0`},
		{name: `hex`, in: `0xff;`, eval: `255`},
		{name: `bigint add`, in: `10n + 20n;`, eval: `30n`},
		{name: `bigint div truncates`, in: `7n / 2n;`, eval: `3n`},
		{name: `bigint negate`, in: `-5n;`, eval: `-5n`},
		{name: `bigint division by zero`, in: `1n / 0n;`, err: `RangeError: Division by zero`},
		{name: `bigint mix`, in: `1n + 1;`, err: `TypeError: Cannot mix BigInt and other types`},
		{name: `boolean t`, in: `true;`, eval: `true`},
		{name: `bang`, in: `!false;`, eval: `true`},
		{name: `bang empty string`, in: `!"";`, eval: `true`},
		{name: `bang zero string`, in: `!"0";`, eval: `false`},
		{name: `bang zero bigint`, in: `!0n;`, eval: `true`},
		{name: `loose eq number string`, in: `1 == "1";`, eval: `true`},
		{name: `strict eq number string`, in: `1 === "1";`, eval: `false`},
		{name: `loose nullish`, in: `null == undefined;`, eval: `true`},
		{name: `strict nullish`, in: `null === undefined;`, eval: `false`},
		{name: `nan eq`, in: `NaN == NaN;`, eval: `false`},
		{name: `signed zeros eq`, in: `0 === -0;`, eval: `true`},
		{name: `bigint loose eq`, in: `1n == 1;`, eval: `true`},
		{name: `strict not eq`, in: `"1" !== 1;`, eval: `true`},
		{name: `loose not eq`, in: `"1" != 1;`, eval: `false`},
		{name: `same value nan`, in: `SameValue(NaN, NaN);`, eval: `true`},
		{name: `same value zeros`, in: `SameValue(0, -0);`, eval: `false`},
		{name: `same value zero zeros`, in: `SameValueZero(0, -0);`, eval: `true`},
		{name: `lt string`, in: `"a" < "b";`, eval: `true`},
		{name: `lt numeric string`, in: `"10" < 9;`, eval: `false`},
		{name: `lt bigint number`, in: `1n < 2;`, eval: `true`},
		{name: `lt nan`, in: `NaN < 1;`, eval: `false`},
		{name: `gte nan`, in: `NaN >= 1;`, eval: `false`},
		{name: `gte number`, in: `2 >= 2;`, eval: `true`},
		{name: `lte number`, in: `2 <= 1;`, eval: `false`},
		{name: `gt number`, in: `2 > 1;`, eval: `true`},
		{name: `typeof number`, in: `typeof 1;`, eval: `"number"`},
		{name: `typeof bigint`, in: `typeof 1n;`, eval: `"bigint"`},
		{name: `typeof null`, in: `typeof null;`, eval: `"object"`},
		{name: `typeof undeclared`, in: `typeof nope;`, eval: `"undefined"`},
		{name: `typeof symbol`, in: `typeof Symbol();`, eval: `"symbol"`},
		{name: `typeof function`, in: `typeof clock;`, eval: `"function"`},
		{name: `typeof object`, in: `typeof Object();`, eval: `"object"`},
		{name: `logic and`, in: `1 && 2;`, eval: `2`},
		{name: `logic and short circuit`, in: `null && nope;`, eval: `null`},
		{name: `logic or`, in: `0 || "x";`, eval: `"x"`},
		{name: `logic or short circuit`, in: `1 || nope;`, eval: `1`},
		{name: `empty var`, in: `var a;`, eval: `undefined`},
		{name: `empty var eval`, in: `var a;a;`, eval: `undefined`},
		{name: `var assign`, in: `var a = 1;a = 2;`, eval: `2`},
		{name: `var assign undeclared`, in: `b = 1;`, err: `ReferenceError: b is not defined`},
		{name: `var read undeclared`, in: `print nope;`, err: `ReferenceError: nope is not defined`},
		{name: `var scope nested`, in: `var a=1;{var a=2;print a;{a=3;print a;}}print a;a;`, eval: `1`, out: "2\n3\n1\n"},
		{name: `var scope top level`, in: `var a=1;{a=2;print a;}a;`, eval: `2`, out: "2\n"},
		{name: `assign invalid target`, in: `var a;(a)=1;`, err: `invalid assignment target.`},
		{name: `print string`, in: `print "a";`, eval: `undefined`, out: "a\n"},
		{name: `print symbol`, in: `print Symbol("s");`, eval: `undefined`, out: "Symbol(s)\n"},
		{name: `print bigint`, in: `print 12n;`, eval: `undefined`, out: "12\n"},
		{name: `print object`, in: `print Object();`, eval: `undefined`, out: "[object Object]\n"},
		{name: `print error`, in: `print TypeError("boom");`, eval: `undefined`, out: "TypeError: boom\n"},
		{name: `string length`, in: `"abc".length;`, eval: `3`},
		{name: `string index`, in: `"abc"[1];`, eval: `"b"`},
		{name: `string computed key`, in: `"abc"["length"];`, eval: `3`},
		{name: `string index out of range`, in: `"abc"[5];`, eval: `undefined`},
		{name: `object property`, in: `var o = Object(); o.x = 1; o.x;`, eval: `1`},
		{name: `object computed property`, in: `var o = Object(); o["y"] = 2; o.y + 1;`, eval: `3`},
		{name: `object missing property`, in: `var o = Object(); o.missing;`, eval: `undefined`},
		{name: `read from undefined`, in: `undefined.x;`, err: `TypeError: Cannot read properties of undefined (reading 'x')`},
		{name: `write to null`, in: `null.x = 1;`, err: `TypeError: Cannot set properties of null (setting 'x')`},
		{name: `write to primitive`, in: `"s".x = 1;`, err: `TypeError: Cannot create property 'x' on string 's'`},
		{name: `call non function`, in: `"nope"();`, err: `TypeError: nope is not a function`},
		{name: `method call string`, in: `"abc".toString();`, eval: `"abc"`},
		{name: `method call number`, in: `(1).toString();`, eval: `"1"`},
		{name: `static method`, in: `Object.is(NaN, NaN);`, eval: `true`},
		{name: `prototype identity`, in: `Object.getPrototypeOf(Object()) === Object.getPrototypeOf(Object());`, eval: `true`},
		{name: `symbol registry`, in: `Symbol.for("k") === Symbol.for("k");`, eval: `true`},
		{name: `symbol unique`, in: `Symbol("k") === Symbol("k");`, eval: `false`},
		{name: `symbol key for`, in: `Symbol.keyFor(Symbol.for("k"));`, eval: `"k"`},
		{name: `symbol key for unregistered`, in: `Symbol.keyFor(Symbol("k"));`, eval: `undefined`},
		{name: `symbol concat`, in: `"a" + Symbol();`, err: `TypeError`},
		{name: `instanceof same kind`, in: `TypeError("x") instanceof TypeError;`, eval: `true`},
		{name: `instanceof base`, in: `TypeError("x") instanceof Error;`, eval: `true`},
		{name: `instanceof other kind`, in: `RangeError("x") instanceof TypeError;`, eval: `false`},
		{name: `instanceof primitive`, in: `1 instanceof Object;`, eval: `false`},
		{name: `instanceof object`, in: `Object() instanceof Object;`, eval: `true`},
		{name: `instanceof non object`, in: `1 instanceof 1;`, err: `TypeError: Right-hand side of 'instanceof' is not an object`},
		{name: `iterate string`, in: `iterate("ab");`, eval: `["a", "b"]`},
		{name: `iterate array`, in: `iterate(iterate("xy"));`, eval: `["x", "y"]`},
		{name: `print array`, in: `print iterate("ab");`, eval: `undefined`, out: "a,b\n"},
		{name: `iterate not iterable`, in: `iterate(1);`, err: `TypeError`},
		{name: `clone`, in: `clone("a" + "b") === "ab";`, eval: `true`},
		{name: `builder append`, in: `var s = ""; s = s + "a"; s = s + "b"; s;`, eval: `"ab"`},
		{name: `builder alias`, in: `var s = "a" + "b"; var t = s; s = s + "c"; t;`, eval: `"ab"`},
		{name: `builder alias source`, in: `var s = "a" + "b"; var t = s; s = s + "c"; s;`, eval: `"abc"`},
		{name: `builder rebind in operand`, in: `var s = "x" + "y"; s = s + (s = "q"); s;`, eval: `"xyq"`},
		{name: `builder extended in operand`, in: `var s = "a" + "b"; s = s + (s = s + "c"); s;`, eval: `"ababc"`},
		{name: `builder numeric operand`, in: `var s = "n" + ""; s = s + 1; s = s + 2n; s;`, eval: `"n12"`},
		{name: `builder stored in property`, in: `var o = Object(); var s = "a" + "b"; o.s = s; s = s + "c"; o.s;`, eval: `"ab"`},
		{name: `pprint`, in: `pprint();`, eval: `undefined`, out: "\n"},
		{name: `pprint varargs`, in: `pprint(1, "a", null, 2n, Symbol("s"));`, eval: `undefined`, out: "1 a null 2 Symbol(s)\n"},
		{name: `delay negative`, in: `delay(-1, 1);`, err: `RangeError: Invalid delay -1`},
		{name: `runtime error line`, in: "var a = 1;\n\nnope;", err: "[line 3] in script"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			evalout, stdout, err := evaluate(tc.in)
			if tc.err != "" {
				assert.ErrorContains(t, err, tc.err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.eval, evalout)
				assert.Equal(t, tc.out, stdout)
			}
		})
	}
}

func TestInterpretErrorKinds(t *testing.T) {
	testcases := []struct {
		in    string
		kind  jserrors.Kind
		cause error
	}{
		{in: `nope;`, kind: jserrors.KindReferenceError, cause: jserrors.ErrRuntimeUndefinedVariable},
		{in: `1n + 1;`, kind: jserrors.KindTypeError, cause: jserrors.ErrRuntimeMixBigIntAndOther},
		{in: `1n / 0n;`, kind: jserrors.KindRangeError, cause: jserrors.ErrRuntimeBigIntDivisionByZero},
		{in: `null.x;`, kind: jserrors.KindTypeError, cause: jserrors.ErrNotAnObject},
		{in: `1();`, kind: jserrors.KindTypeError, cause: jserrors.ErrNotCallable},
		{in: `iterate(1);`, kind: jserrors.KindTypeError, cause: jserrors.ErrNotIterable},
		{in: `WeakMap().set(1, 1);`, kind: jserrors.KindTypeError, cause: jserrors.ErrInvalidWeakKey},
		{in: `WeakRef(Symbol.for("s"));`, kind: jserrors.KindTypeError, cause: jserrors.ErrInvalidWeakRefTarget},
	}

	for _, tc := range testcases {
		t.Run(tc.in, func(t *testing.T) {
			_, _, err := evaluate(tc.in)

			var runtimeErr *jserrors.RuntimeError
			assert.ErrorAs(t, err, &runtimeErr)
			assert.True(t, jserrors.IsKind(err, tc.kind), "kind of %v", err)
			assert.ErrorIs(t, err, tc.cause)
		})
	}
}

func evaluate(script string, options ...interpreter.InterpreterOption) (string, string, error) {
	stdin := strings.NewReader("")
	stdout := strings.Builder{}

	eval := interpreter.NewInterpreter(append([]interpreter.InterpreterOption{
		interpreter.WithStdin(stdin),
		interpreter.WithStdout(&stdout),
		interpreter.WithStderr(&stdout),
		interpreter.WithErrorReporter(jserrors.NewErrReporter(&stdout)),
	}, options...)...)

	stmts, err := parse(script)
	if err != nil {
		return "", stdout.String(), err
	}

	svalue, err := eval.Interpret(context.TODO(), stmts)
	return svalue, stdout.String(), err
}

func parse(script string) ([]parser.Stmt, error) {
	tokens, err := scanner.NewScanner(script).Scan()
	if err != nil {
		return nil, err
	}
	return parser.NewParser(tokens).Parse()
}
