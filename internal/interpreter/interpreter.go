package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/leonardinius/esvalue/internal/agent"
	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/parser"
	"github.com/leonardinius/esvalue/internal/token"
	"github.com/leonardinius/esvalue/internal/value"
)

type Interpreter interface {
	// Interpret runs the statements as one agent job, then drains the
	// job queue and waits for pending host computations.
	// Returns the display form of the last statement's value.
	//
	// Not thread safe. Bindings persist between calls.
	Interpret(ctx context.Context, stmts []parser.Stmt) (string, error)

	// Evaluate evaluates a single expression in the global scope, outside
	// of any job.
	Evaluate(ctx context.Context, expr parser.Expr) (value.Value, error)

	Agent() *agent.Agent
}

type interpreter struct {
	ag       *agent.Agent
	realm    *object.Realm
	globals  *environment
	log      *logrus.Entry
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	reporter jserrors.ErrReporter

	// hostCtx bounds host computations started by built-ins such as delay.
	// It is the context of the running Interpret call.
	hostCtx context.Context
}

func NewInterpreter(options ...InterpreterOption) Interpreter {
	opts := newInterpreterOpts(options...)
	i := &interpreter{
		ag:       opts.agent,
		realm:    opts.agent.Realm(),
		log:      opts.log,
		stdin:    opts.stdin,
		stdout:   opts.stdout,
		stderr:   opts.stderr,
		reporter: opts.reporter,
		hostCtx:  context.Background(),
	}
	i.globals = newGlobalEnvironment(i.realm.Globals)
	installStd(i)
	return i
}

func (i *interpreter) Agent() *agent.Agent {
	return i.ag
}

// Interpret implements Interpreter.
func (i *interpreter) Interpret(ctx context.Context, stmts []parser.Stmt) (string, error) {
	last := value.Undefined
	envCtx := i.globals.AsContext(ctx)
	i.hostCtx = ctx
	err := i.ag.RunJob(func() error {
		v, err := i.executeStmts(envCtx, stmts)
		last = v
		return err
	})
	if err != nil {
		return "", err
	}
	out := i.stringify(last)

	if err := i.ag.RunUntilIdle(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		// The script itself completed; a failing queued job is reported
		// like an uncaught exception.
		i.reporter.ReportError(err)
	}
	return out, nil
}

// Evaluate implements Interpreter.
func (i *interpreter) Evaluate(ctx context.Context, expr parser.Expr) (value.Value, error) {
	return i.evaluate(i.globals.AsContext(ctx), expr)
}

func (i *interpreter) executeStmts(ctx context.Context, stmts []parser.Stmt) (value.Value, error) {
	last := value.Undefined
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return value.Empty, err
		}
		v, err := i.execute(ctx, stmt)
		if err != nil {
			return value.Empty, err
		}
		last = v
	}
	return last, nil
}

func (i *interpreter) execute(ctx context.Context, stmt parser.Stmt) (value.Value, error) {
	v, err := stmt.Accept(ctx, i)
	if err != nil {
		return value.Empty, err
	}
	return v.(value.Value), nil
}

func (i *interpreter) evaluate(ctx context.Context, expr parser.Expr) (value.Value, error) {
	v, err := expr.Accept(ctx, i)
	if err != nil {
		return value.Empty, err
	}
	return v.(value.Value), nil
}

// VisitStmtBlock implements parser.StmtVisitor.
func (i *interpreter) VisitStmtBlock(ctx context.Context, stmt *parser.StmtBlock) (any, error) {
	env := EnvFromContext(ctx).Nest()
	return i.executeStmts(env.AsContext(ctx), stmt.Statements)
}

// VisitStmtExpression implements parser.StmtVisitor.
func (i *interpreter) VisitStmtExpression(ctx context.Context, stmt *parser.StmtExpression) (any, error) {
	return i.evaluate(ctx, stmt.Expression)
}

// VisitStmtPrint implements parser.StmtVisitor.
func (i *interpreter) VisitStmtPrint(ctx context.Context, stmt *parser.StmtPrint) (any, error) {
	v, err := i.evaluate(ctx, stmt.Expression)
	if err != nil {
		return value.Empty, err
	}
	s, err := i.display(v)
	if err != nil {
		return value.Empty, i.fail(stmt.Keyword, err)
	}
	_, _ = fmt.Fprintln(i.stdout, s)
	return value.Undefined, nil
}

// VisitStmtVar implements parser.StmtVisitor.
func (i *interpreter) VisitStmtVar(ctx context.Context, stmt *parser.StmtVar) (any, error) {
	v := value.Undefined
	if stmt.Initializer != nil {
		var err error
		if v, err = i.evaluate(ctx, stmt.Initializer); err != nil {
			return value.Empty, err
		}
	}
	EnvFromContext(ctx).Define(stmt.Name.Lexeme, v)
	return value.Undefined, nil
}

// VisitExprAssign implements parser.ExprVisitor.
func (i *interpreter) VisitExprAssign(ctx context.Context, expr *parser.ExprAssign) (any, error) {
	switch target := expr.Target.(type) {
	case *parser.ExprVariable:
		if v, ok, err := i.appendInPlace(ctx, target, expr.Value); ok || err != nil {
			return v, err
		}
		v, err := i.evaluate(ctx, expr.Value)
		if err != nil {
			return value.Empty, err
		}
		if err := EnvFromContext(ctx).Assign(target.Name, v); err != nil {
			return value.Empty, err
		}
		return v.Clone(), nil

	case *parser.ExprGet:
		obj, err := i.evaluate(ctx, target.Object)
		if err != nil {
			return value.Empty, err
		}
		v, err := i.evaluate(ctx, expr.Value)
		if err != nil {
			return value.Empty, err
		}
		if err := i.setProperty(obj, value.Str(target.Name.Lexeme), v); err != nil {
			return value.Empty, i.fail(expr.Equals, err)
		}
		return v.Clone(), nil

	case *parser.ExprIndex:
		obj, err := i.evaluate(ctx, target.Object)
		if err != nil {
			return value.Empty, err
		}
		index, err := i.evaluate(ctx, target.Index)
		if err != nil {
			return value.Empty, err
		}
		key, err := value.ToPropertyKey(index)
		if err != nil {
			return value.Empty, i.fail(target.Bracket, err)
		}
		v, err := i.evaluate(ctx, expr.Value)
		if err != nil {
			return value.Empty, err
		}
		if err := i.setProperty(obj, key, v); err != nil {
			return value.Empty, i.fail(expr.Equals, err)
		}
		return v.Clone(), nil
	}

	return value.Empty, i.fail(expr.Equals, jserrors.ErrParseInvalidAssignmentTarget)
}

// appendInPlace handles x = x + e when x holds a builder string, extending
// the builder instead of copying it. ok is false when the shortcut does not
// apply and nothing was evaluated.
func (i *interpreter) appendInPlace(ctx context.Context, target *parser.ExprVariable, rhs parser.Expr) (v value.Value, ok bool, err error) {
	bin, isBinary := rhs.(*parser.ExprBinary)
	if !isBinary || bin.Operator.Type != token.PLUS {
		return value.Empty, false, nil
	}
	left, isVar := bin.Left.(*parser.ExprVariable)
	if !isVar || left.Name.Lexeme != target.Name.Lexeme {
		return value.Empty, false, nil
	}

	env := EnvFromContext(ctx)
	current, err := env.GetRaw(left.Name)
	if err != nil || !current.IsString() || !current.AsString().IsBuilder() {
		return value.Empty, false, nil
	}
	builder := current.AsString()
	length := builder.Length()

	right, err := i.evaluate(ctx, bin.Right)
	if err != nil {
		return value.Empty, true, err
	}
	right, err = value.ToPrimitive(right, value.HintDefault)
	if err != nil {
		return value.Empty, true, i.fail(bin.Operator, err)
	}

	// The right operand may have rebound or extended x; the left operand is
	// the value x had before it ran.
	leftValue := current
	if now, _ := env.GetRaw(left.Name); !now.IsString() || now.AsString() != builder || builder.Length() != length {
		leftValue = value.StringOf(builder.Substring(0, length))
	}

	result, err := value.Concat(leftValue, right)
	if err != nil {
		return value.Empty, true, i.fail(bin.Operator, err)
	}
	if err := env.Assign(target.Name, result); err != nil {
		return value.Empty, true, err
	}
	return result.Clone(), true, nil
}

func (i *interpreter) setProperty(obj, key, v value.Value) error {
	o, ok := obj.TryObject()
	if !ok {
		if obj.IsNullish() {
			return jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotAnObject,
				"Cannot set properties of %s (setting '%s')", obj, key)
		}
		return jserrors.TypeError("Cannot create property '%s' on %s '%s'", key, value.TypeOf(obj), obj)
	}
	ok, err := o.Set(key, v, obj)
	if err != nil {
		return err
	}
	if !ok {
		return jserrors.TypeError("Cannot assign to read only property '%s' of object", key)
	}
	return nil
}

// VisitExprBinary implements parser.ExprVisitor.
func (i *interpreter) VisitExprBinary(ctx context.Context, expr *parser.ExprBinary) (any, error) {
	left, err := i.evaluate(ctx, expr.Left)
	if err != nil {
		return value.Empty, err
	}
	right, err := i.evaluate(ctx, expr.Right)
	if err != nil {
		return value.Empty, err
	}

	v, err := binaryOperator(expr.Operator.Type, left, right)
	if err != nil {
		return value.Empty, i.fail(expr.Operator, err)
	}
	return v, nil
}

// VisitExprCall implements parser.ExprVisitor.
func (i *interpreter) VisitExprCall(ctx context.Context, expr *parser.ExprCall) (any, error) {
	this := value.Undefined
	var callee value.Value
	var err error

	switch target := expr.Callee.(type) {
	case *parser.ExprGet:
		if this, err = i.evaluate(ctx, target.Object); err != nil {
			return value.Empty, err
		}
		if callee, err = i.getProperty(this, value.Str(target.Name.Lexeme)); err != nil {
			return value.Empty, i.fail(target.Name, err)
		}
	case *parser.ExprIndex:
		if this, err = i.evaluate(ctx, target.Object); err != nil {
			return value.Empty, err
		}
		index, err := i.evaluate(ctx, target.Index)
		if err != nil {
			return value.Empty, err
		}
		key, err := value.ToPropertyKey(index)
		if err != nil {
			return value.Empty, i.fail(target.Bracket, err)
		}
		if callee, err = i.getProperty(this, key); err != nil {
			return value.Empty, i.fail(target.Bracket, err)
		}
	default:
		if callee, err = i.evaluate(ctx, expr.Callee); err != nil {
			return value.Empty, err
		}
	}

	arguments := make([]value.Value, 0, len(expr.Arguments))
	for _, arg := range expr.Arguments {
		v, err := i.evaluate(ctx, arg)
		if err != nil {
			return value.Empty, err
		}
		arguments = append(arguments, v.Clone())
	}

	result, err := value.Call(callee, this, arguments...)
	if err != nil {
		return value.Empty, i.fail(expr.Paren, err)
	}
	return result.Clone(), nil
}

// VisitExprGet implements parser.ExprVisitor.
func (i *interpreter) VisitExprGet(ctx context.Context, expr *parser.ExprGet) (any, error) {
	obj, err := i.evaluate(ctx, expr.Object)
	if err != nil {
		return value.Empty, err
	}
	v, err := i.getProperty(obj, value.Str(expr.Name.Lexeme))
	if err != nil {
		return value.Empty, i.fail(expr.Name, err)
	}
	return v, nil
}

// VisitExprIndex implements parser.ExprVisitor.
func (i *interpreter) VisitExprIndex(ctx context.Context, expr *parser.ExprIndex) (any, error) {
	obj, err := i.evaluate(ctx, expr.Object)
	if err != nil {
		return value.Empty, err
	}
	index, err := i.evaluate(ctx, expr.Index)
	if err != nil {
		return value.Empty, err
	}
	key, err := value.ToPropertyKey(index)
	if err != nil {
		return value.Empty, i.fail(expr.Bracket, err)
	}
	v, err := i.getProperty(obj, key)
	if err != nil {
		return value.Empty, i.fail(expr.Bracket, err)
	}
	return v, nil
}

func (i *interpreter) getProperty(obj, key value.Value) (value.Value, error) {
	if obj.IsNullish() {
		return value.Empty, jserrors.ThrowCause(jserrors.KindTypeError, jserrors.ErrNotAnObject,
			"Cannot read properties of %s (reading '%s')", obj, key)
	}
	v, err := value.GetV(i.realm, obj, key)
	if err != nil {
		return value.Empty, err
	}
	return v.Clone(), nil
}

// VisitExprGrouping implements parser.ExprVisitor.
func (i *interpreter) VisitExprGrouping(ctx context.Context, expr *parser.ExprGrouping) (any, error) {
	return i.evaluate(ctx, expr.Expression)
}

// VisitExprLiteral implements parser.ExprVisitor.
func (i *interpreter) VisitExprLiteral(ctx context.Context, expr *parser.ExprLiteral) (any, error) {
	return expr.Value, nil
}

// VisitExprLogical implements parser.ExprVisitor.
func (i *interpreter) VisitExprLogical(ctx context.Context, expr *parser.ExprLogical) (any, error) {
	left, err := i.evaluate(ctx, expr.Left)
	if err != nil {
		return value.Empty, err
	}

	truthy := left.ToBoolean()
	if expr.Operator.Type == token.OR_OR && truthy {
		return left, nil
	}
	if expr.Operator.Type == token.AND_AND && !truthy {
		return left, nil
	}

	return i.evaluate(ctx, expr.Right)
}

// VisitExprUnary implements parser.ExprVisitor.
func (i *interpreter) VisitExprUnary(ctx context.Context, expr *parser.ExprUnary) (any, error) {
	if expr.Operator.Type == token.TYPEOF {
		if v, ok := expr.Right.(*parser.ExprVariable); ok && !EnvFromContext(ctx).Has(v.Name.Lexeme) {
			return value.Str("undefined"), nil
		}
	}

	right, err := i.evaluate(ctx, expr.Right)
	if err != nil {
		return value.Empty, err
	}

	v, err := unaryOperator(expr.Operator.Type, right)
	if err != nil {
		return value.Empty, i.fail(expr.Operator, err)
	}
	return v, nil
}

// VisitExprVariable implements parser.ExprVisitor.
func (i *interpreter) VisitExprVariable(ctx context.Context, expr *parser.ExprVariable) (any, error) {
	return EnvFromContext(ctx).Get(expr.Name)
}

// stringify is the REPL display form: strings are quoted.
func (i *interpreter) stringify(v value.Value) string {
	return v.GoString()
}

// display is the print form: ToString for everything but symbols, which
// cannot be converted implicitly.
func (i *interpreter) display(v value.Value) (string, error) {
	if v.IsSymbol() {
		return v.AsSymbol().DescriptiveString(), nil
	}
	return value.ToGoString(v)
}

// fail attaches the source position of tok to err, once.
func (i *interpreter) fail(tok *token.Token, err error) error {
	var runtimeErr *jserrors.RuntimeError
	if errors.As(err, &runtimeErr) {
		return err
	}
	return jserrors.NewRuntimeError(tok, err)
}

var _ Interpreter = (*interpreter)(nil)
var _ parser.ExprVisitor = (*interpreter)(nil)
var _ parser.StmtVisitor = (*interpreter)(nil)
