package interpreter_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonardinius/esvalue/internal/agent"
	"github.com/leonardinius/esvalue/internal/interpreter"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/parser"
)

func TestInterpretReplMultiline(t *testing.T) {
	testcases := []struct {
		name string
		in   []string // Input
		eval []string // Expected eval
		out  string   // Expected output
	}{
		{name: `var repl`,
			in:   []string{`var dd;print dd;dd;`, `print dd;dd;`, `dd=5;`, `dd;`},
			eval: []string{`undefined`, `undefined`, `5`, `5`},
			out:  "undefined\nundefined\n"},
		{name: `builder across lines`,
			in:   []string{`var s = "a" + "b";`, `s = s + "c";`, `var t = s;`, `s = s + "d";`, `t;`},
			eval: []string{`undefined`, `"abc"`, `undefined`, `"abcd"`, `"abc"`}},
		{name: `weak map across lines`,
			in:   []string{`var m = WeakMap(); var k = Object();`, `m.set(k, "v");`, `m.get(k);`, `m.delete(k);`, `m.has(k);`},
			eval: []string{`undefined`, `[object WeakMap]`, `"v"`, `true`, `false`}},
		{name: `promise settles between lines`,
			in:   []string{`var p = delay(1, "late");`, `p.then(pprint);`, `print p;`},
			eval: []string{`undefined`, `[object Promise]`, `undefined`},
			out:  "late\n[object Promise]\n"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			output, stdout, err := replLineByLine(tc.in...)
			require.NoError(t, err)
			assert.Equal(t, tc.eval, output)
			assert.Equal(t, tc.out, stdout)
		})
	}
}

func TestInterpretPromises(t *testing.T) {
	testcases := []struct {
		name string
		in   string
		out  string
	}{
		{name: `delay then`, in: `delay(1, "done").then(pprint); print "first";`, out: "first\ndone\n"},
		{name: `delay order`, in: `delay(20, 2).then(pprint); delay(1, 1).then(pprint);`, out: "1\n2\n"},
		{name: `resolve then`, in: `Promise.resolve(1n).then(pprint);`, out: "1\n"},
		{name: `reject catch`, in: `Promise.reject("no").catch(pprint);`, out: "no\n"},
		{name: `chained`, in: `Promise.resolve("a").then(clone).then(pprint);`, out: "a\n"},
		{name: `print promise`, in: `print delay(0, 1);`, out: "[object Promise]\n"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, stdout, err := evaluate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.out, stdout)
		})
	}
}

func TestInterpretCanceled(t *testing.T) {
	stdout := strings.Builder{}
	eval := interpreter.NewInterpreter(interpreter.WithStdout(&stdout))
	stmts, err := parse(`delay(5000, 1).then(pprint);`)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = eval.Interpret(ctx, stmts)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, stdout.String())
}

func TestInterpretCanceledRejectsPendingDelay(t *testing.T) {
	stdout := strings.Builder{}
	eval := interpreter.NewInterpreter(interpreter.WithStdout(&stdout))

	stmts, err := parse(`delay(Infinity, 1).catch(pprint);`)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = eval.Interpret(ctx, stmts)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	stmts, err = parse(`"after";`)
	require.NoError(t, err)
	out, err := eval.Interpret(context.Background(), stmts)
	require.NoError(t, err)
	assert.Equal(t, `"after"`, out)
	assert.Equal(t, "ExecutionCanceledError: Host computation canceled: context deadline exceeded\n", stdout.String())
}

func TestInterpretClearsKeptObjects(t *testing.T) {
	ag := agent.New(object.NewRealm())
	eval := interpreter.NewInterpreter(interpreter.WithAgent(ag), interpreter.WithStdout(&strings.Builder{}))

	stmts, err := parse(`var r = WeakRef(Object()); r.deref() === r.deref();`)
	require.NoError(t, err)

	out, err := eval.Interpret(context.Background(), stmts)
	require.NoError(t, err)
	assert.Equal(t, `true`, out)
	assert.Zero(t, ag.KeptObjects())
	assert.Positive(t, ag.KeptClears())
}

func TestInterpretSymbolsAsWeakKeys(t *testing.T) {
	const script = `WeakMap().set(Symbol("s"), 1).has(Symbol.for("x"));`

	_, _, err := evaluate(script)
	assert.ErrorIs(t, err, jserrors.ErrInvalidWeakKey)

	ag := agent.New(object.NewRealm(object.WithSymbolsAsWeakKeys(true)))
	out, _, err := evaluate(script, interpreter.WithAgent(ag))
	require.NoError(t, err)
	assert.Equal(t, `false`, out)
}

func TestEvaluate(t *testing.T) {
	eval := interpreter.NewInterpreter(interpreter.WithStdout(&strings.Builder{}))

	stmts, err := parse(`var answer = 40;`)
	require.NoError(t, err)
	_, err = eval.Interpret(context.Background(), stmts)
	require.NoError(t, err)

	stmts, err = parse(`answer + 2;`)
	require.NoError(t, err)
	expr := stmts[0].(*parser.StmtExpression).Expression

	v, err := eval.Evaluate(context.Background(), expr)
	require.NoError(t, err)
	assert.Equal(t, float64(42), v.AsNumber())
}

func replLineByLine(script ...string) ([]string, string, error) {
	stdin := strings.NewReader("")
	stdouterr := strings.Builder{}
	reporter := jserrors.NewErrReporter(&stdouterr)
	ctx := context.TODO()

	eval := interpreter.NewInterpreter(
		interpreter.WithStdin(stdin),
		interpreter.WithStdout(&stdouterr),
		interpreter.WithStderr(&stdouterr),
		interpreter.WithErrorReporter(reporter),
	)

	var results []string
	for _, s := range script {
		stmts, err := parse(s)
		if err != nil {
			return nil, stdouterr.String(), err
		}

		svalue, err := eval.Interpret(ctx, stmts)
		if err != nil {
			return nil, stdouterr.String(), err
		}
		results = append(results, svalue)
	}

	return results, stdouterr.String(), nil
}
