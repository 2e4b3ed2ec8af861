package interpreter_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/leonardinius/esvalue/internal/interpreter"
)

func BenchmarkScripts(b *testing.B) {
	benchmarks := []struct {
		name   string
		setup  string
		script string
	}{
		{name: "append in place", setup: `var s = "" + "";`, script: strings.Repeat(`s = s + "abc";`, 1000)},
		{name: "append copy", setup: `var s = "";`, script: strings.Repeat(`s = "" + s + "abc";`, 200)},
		{name: "equality", setup: `var o = Object();`, script: strings.Repeat(`1 == "1"; o === o; 1n == 1; "a" < "b";`, 250)},
		{name: "properties", setup: `var o = Object(); o.x = 1;`, script: strings.Repeat(`o.x = o.x + 1; "abc".length;`, 500)},
		{name: "bigint", setup: `var n = 1n;`, script: strings.Repeat(`n = n * 3n;`, 500)},
	}

	for _, bench := range benchmarks {
		b.Run(bench.name, func(b *testing.B) {
			setup, err := parse(bench.setup)
			if err != nil {
				b.Fatalf("parse setup: %v", err)
			}
			stmts, err := parse(bench.script)
			if err != nil {
				b.Fatalf("parse script: %v", err)
			}

			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				eval := interpreter.NewInterpreter(interpreter.WithStdout(io.Discard))
				if _, err := eval.Interpret(context.Background(), setup); err != nil {
					b.Fatalf("setup: %v", err)
				}
				if _, err := eval.Interpret(context.Background(), stmts); err != nil {
					b.Fatalf("script: %v", err)
				}
			}
		})
	}
}
