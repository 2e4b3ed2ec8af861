package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"

	"github.com/leonardinius/esvalue/internal/agent"
	"github.com/leonardinius/esvalue/internal/interpreter"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/parser"
	"github.com/leonardinius/esvalue/internal/scanner"
)

// Exit codes, sysexits(3) flavored.
const (
	ExitOK      = 0
	ExitUsage   = 64
	ExitDataErr = 65
	ExitRuntime = 70
	ExitIOErr   = 74
)

const (
	prompt             = "> "
	continuationPrompt = "... "
)

type App struct {
	interpreter interpreter.Interpreter
	reporter    jserrors.ErrReporter
	stdout      io.Writer
	stderr      io.Writer
	log         *log.Entry
}

// NewApp builds a realm, an agent and an interpreter according to cfg.
func NewApp(cfg Config, stdout, stderr io.Writer) *App {
	logger := log.StandardLogger()
	realm := object.NewRealm(
		object.WithSymbolsAsWeakKeys(cfg.SymbolsAsWeakKeys),
		object.WithLogger(logger.WithField("component", "realm")),
	)
	ag := agent.New(realm, agent.WithLogger(logger.WithField("component", "agent")))
	reporter := jserrors.NewErrReporter(stderr)

	return &App{
		interpreter: interpreter.NewInterpreter(
			interpreter.WithAgent(ag),
			interpreter.WithLogger(logger.WithField("component", "interpreter")),
			interpreter.WithStdout(stdout),
			interpreter.WithStderr(stderr),
			interpreter.WithErrorReporter(reporter),
		),
		reporter: reporter,
		stdout:   stdout,
		stderr:   stderr,
		log:      logger.WithField("component", "app"),
	}
}

// Main runs the script named by args, or the REPL when args is empty, and
// returns the process exit code.
func (app *App) Main(ctx context.Context, args []string) int {
	switch len(args) {
	case 0:
		if err := app.runPrompt(ctx); err != nil {
			app.reporter.ReportPanic(err)
			return ExitIOErr
		}
		return ExitOK
	case 1:
		return app.runFile(ctx, args[0])
	default:
		_, _ = fmt.Fprintln(app.stderr, "Usage: esvalue [script]")
		return ExitUsage
	}
}

func (app *App) runPrompt(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
		Stdout: app.stdout,
		Stderr: app.stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	var input strings.Builder
	for ctx.Err() == nil {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if input.Len() == 0 {
				return nil
			}
			input.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		_, _ = input.WriteString(line)
		_, _ = input.WriteString("\n")
		if OpenBrackets(input.String()) > 0 {
			rl.SetPrompt(continuationPrompt)
			continue
		}

		if out, code := app.run(ctx, input.String()); code == ExitOK {
			_, _ = fmt.Fprintln(app.stdout, out)
		}
		input.Reset()
		rl.SetPrompt(prompt)
	}
	return nil
}

func (app *App) runFile(ctx context.Context, scriptPath string) int {
	bytes, err := os.ReadFile(scriptPath)
	if err != nil {
		app.reporter.ReportPanic(err)
		return ExitIOErr
	}

	_, code := app.run(ctx, string(bytes))
	return code
}

// run scans, parses and interprets input, reporting any failure. It returns
// the display form of the last statement value and the exit code.
func (app *App) run(ctx context.Context, input string) (string, int) {
	statements, err := parse(input)
	if err != nil {
		app.reporter.ReportPanic(err)
		return "", ExitDataErr
	}

	out, err := app.interpreter.Interpret(ctx, statements)
	if err != nil {
		app.log.WithError(err).Debug("script failed")
		app.reporter.ReportError(err)
		return "", ExitRuntime
	}
	return out, ExitOK
}

// PrintAst writes one line per parsed statement of input. With rpn set,
// expression statements use reverse polish notation.
func (app *App) PrintAst(input string, rpn bool) int {
	statements, err := parse(input)
	if err != nil {
		app.reporter.ReportPanic(err)
		return ExitDataErr
	}

	ast := parser.NewAstPrinter()
	reverse := parser.NewRPNPrinter()
	for _, stmt := range statements {
		if e, ok := stmt.(*parser.StmtExpression); ok && rpn {
			_, _ = fmt.Fprintln(app.stdout, reverse.Print(e.Expression))
			continue
		}
		_, _ = fmt.Fprintln(app.stdout, ast.PrintStmt(stmt))
	}
	return ExitOK
}

func parse(input string) ([]parser.Stmt, error) {
	tokens, err := scanner.NewScanner(input).Scan()
	if err != nil {
		return nil, err
	}
	return parser.NewParser(tokens).Parse()
}

// OpenBrackets returns how many (, [ and { in src are still unclosed, ignoring
// string literals and comments. The REPL keeps reading while it is positive.
func OpenBrackets(src string) int {
	depth := 0
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		switch c := runes[i]; c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '"', '\'':
			for i++; i < len(runes) && runes[i] != c && runes[i] != '\n'; i++ {
				if runes[i] == '\\' {
					i++
				}
			}
		case '/':
			if i+1 >= len(runes) {
				continue
			}
			switch runes[i+1] {
			case '/':
				for i < len(runes) && runes[i] != '\n' {
					i++
				}
			case '*':
				end := strings.Index(string(runes[i+2:]), "*/")
				if end < 0 {
					// An open block comment keeps the input incomplete.
					return depth + 1
				}
				i += 2 + len([]rune(string(runes[i+2:])[:end])) + 1
			}
		}
	}
	return depth
}
