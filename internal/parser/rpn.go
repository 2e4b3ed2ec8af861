package parser

import (
	"context"
	"strconv"
	"strings"

	"github.com/leonardinius/esvalue/internal/token"
)

// RPNPrinter renders expressions in reverse polish notation. Unary minus is
// written as ~ to keep it apart from subtraction.
type RPNPrinter struct{}

func NewRPNPrinter() *RPNPrinter {
	return &RPNPrinter{}
}

// VisitExprAssign implements ExprVisitor.
func (p *RPNPrinter) VisitExprAssign(ctx context.Context, expr *ExprAssign) (any, error) {
	return p.reverse(ctx, "=", expr.Target, expr.Value), nil
}

// VisitExprBinary implements ExprVisitor.
func (p *RPNPrinter) VisitExprBinary(ctx context.Context, expr *ExprBinary) (any, error) {
	return p.reverse(ctx, expr.Operator.Lexeme, expr.Left, expr.Right), nil
}

// VisitExprCall implements ExprVisitor.
func (p *RPNPrinter) VisitExprCall(ctx context.Context, expr *ExprCall) (any, error) {
	return p.reverse(ctx, "call/"+strconv.Itoa(len(expr.Arguments)), append([]Expr{expr.Callee}, expr.Arguments...)...), nil
}

// VisitExprGet implements ExprVisitor.
func (p *RPNPrinter) VisitExprGet(ctx context.Context, expr *ExprGet) (any, error) {
	return p.reverse(ctx, ".", expr.Object, &ExprVariable{Name: expr.Name}), nil
}

// VisitExprIndex implements ExprVisitor.
func (p *RPNPrinter) VisitExprIndex(ctx context.Context, expr *ExprIndex) (any, error) {
	return p.reverse(ctx, "[]", expr.Object, expr.Index), nil
}

// VisitExprGrouping implements ExprVisitor.
func (p *RPNPrinter) VisitExprGrouping(ctx context.Context, expr *ExprGrouping) (any, error) {
	return p.reverse(ctx, "", expr.Expression), nil
}

// VisitExprLiteral implements ExprVisitor.
func (p *RPNPrinter) VisitExprLiteral(ctx context.Context, expr *ExprLiteral) (any, error) {
	return expr.Value.GoString(), nil
}

// VisitExprLogical implements ExprVisitor.
func (p *RPNPrinter) VisitExprLogical(ctx context.Context, expr *ExprLogical) (any, error) {
	return p.reverse(ctx, expr.Operator.Lexeme, expr.Left, expr.Right), nil
}

// VisitExprUnary implements ExprVisitor.
func (p *RPNPrinter) VisitExprUnary(ctx context.Context, expr *ExprUnary) (any, error) {
	operator := expr.Operator.Lexeme
	if expr.Operator.Type == token.MINUS {
		operator = "~"
	}
	return p.reverse(ctx, operator, expr.Right), nil
}

// VisitExprVariable implements ExprVisitor.
func (p *RPNPrinter) VisitExprVariable(ctx context.Context, expr *ExprVariable) (any, error) {
	return expr.Name.Lexeme, nil
}

func (p *RPNPrinter) reverse(ctx context.Context, name string, exprs ...Expr) string {
	out := new(strings.Builder)
	for _, expr := range exprs {
		_, _ = out.WriteString(p.print(ctx, expr))
		_, _ = out.WriteString(" ")
	}
	_, _ = out.WriteString(name)
	return strings.TrimSuffix(out.String(), " ")
}

func (p *RPNPrinter) Print(expr Expr) string {
	return p.print(context.Background(), expr)
}

func (p *RPNPrinter) print(ctx context.Context, expr Expr) string {
	if expr == nil {
		return "<nil>"
	}
	v, _ := expr.Accept(ctx, p)
	return v.(string)
}

var _ ExprVisitor = (*RPNPrinter)(nil)
