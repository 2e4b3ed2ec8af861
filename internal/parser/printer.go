package parser

import (
	"context"
	"strings"
)

// AstPrinter renders expressions as parenthesized prefix forms, e.g.
// (* (- 123) (group 45.67)).
type AstPrinter struct{}

func NewAstPrinter() *AstPrinter {
	return &AstPrinter{}
}

// VisitExprAssign implements ExprVisitor.
func (p *AstPrinter) VisitExprAssign(ctx context.Context, expr *ExprAssign) (any, error) {
	return p.parenthesize(ctx, "=", expr.Target, expr.Value), nil
}

// VisitExprBinary implements ExprVisitor.
func (p *AstPrinter) VisitExprBinary(ctx context.Context, expr *ExprBinary) (any, error) {
	return p.parenthesize(ctx, expr.Operator.Lexeme, expr.Left, expr.Right), nil
}

// VisitExprCall implements ExprVisitor.
func (p *AstPrinter) VisitExprCall(ctx context.Context, expr *ExprCall) (any, error) {
	return p.parenthesize(ctx, "call", append([]Expr{expr.Callee}, expr.Arguments...)...), nil
}

// VisitExprGet implements ExprVisitor.
func (p *AstPrinter) VisitExprGet(ctx context.Context, expr *ExprGet) (any, error) {
	return p.parenthesize(ctx, ".", expr.Object, &ExprVariable{Name: expr.Name}), nil
}

// VisitExprIndex implements ExprVisitor.
func (p *AstPrinter) VisitExprIndex(ctx context.Context, expr *ExprIndex) (any, error) {
	return p.parenthesize(ctx, "[]", expr.Object, expr.Index), nil
}

// VisitExprGrouping implements ExprVisitor.
func (p *AstPrinter) VisitExprGrouping(ctx context.Context, expr *ExprGrouping) (any, error) {
	return p.parenthesize(ctx, "group", expr.Expression), nil
}

// VisitExprLiteral implements ExprVisitor.
func (p *AstPrinter) VisitExprLiteral(ctx context.Context, expr *ExprLiteral) (any, error) {
	return expr.Value.GoString(), nil
}

// VisitExprLogical implements ExprVisitor.
func (p *AstPrinter) VisitExprLogical(ctx context.Context, expr *ExprLogical) (any, error) {
	return p.parenthesize(ctx, expr.Operator.Lexeme, expr.Left, expr.Right), nil
}

// VisitExprUnary implements ExprVisitor.
func (p *AstPrinter) VisitExprUnary(ctx context.Context, expr *ExprUnary) (any, error) {
	return p.parenthesize(ctx, expr.Operator.Lexeme, expr.Right), nil
}

// VisitExprVariable implements ExprVisitor.
func (p *AstPrinter) VisitExprVariable(ctx context.Context, expr *ExprVariable) (any, error) {
	return expr.Name.Lexeme, nil
}

func (p *AstPrinter) parenthesize(ctx context.Context, name string, exprs ...Expr) string {
	out := new(strings.Builder)
	_, _ = out.WriteString("(")
	_, _ = out.WriteString(name)
	for _, expr := range exprs {
		_, _ = out.WriteString(" ")
		_, _ = out.WriteString(p.print(ctx, expr))
	}
	_, _ = out.WriteString(")")
	return out.String()
}

func (p *AstPrinter) Print(expr Expr) string {
	return p.print(context.Background(), expr)
}

// PrintStmt renders a statement, one line per nested statement.
func (p *AstPrinter) PrintStmt(stmt Stmt) string {
	out := new(strings.Builder)
	p.printStmt(out, stmt, "")
	return strings.TrimSuffix(out.String(), "\n")
}

func (p *AstPrinter) printStmt(out *strings.Builder, stmt Stmt, indent string) {
	_, _ = out.WriteString(indent)
	switch s := stmt.(type) {
	case *StmtBlock:
		_, _ = out.WriteString("(block\n")
		for _, inner := range s.Statements {
			p.printStmt(out, inner, indent+"  ")
		}
		_, _ = out.WriteString(indent + ")\n")
		return
	case *StmtExpression:
		_, _ = out.WriteString(p.Print(s.Expression))
	case *StmtPrint:
		_, _ = out.WriteString("(print " + p.Print(s.Expression) + ")")
	case *StmtVar:
		if s.Initializer == nil {
			_, _ = out.WriteString("(var " + s.Name.Lexeme + ")")
		} else {
			_, _ = out.WriteString("(var " + s.Name.Lexeme + " " + p.Print(s.Initializer) + ")")
		}
	}
	_, _ = out.WriteString("\n")
}

func (p *AstPrinter) print(ctx context.Context, expr Expr) string {
	if expr == nil {
		return "<nil>"
	}
	v, _ := expr.Accept(ctx, p)
	return v.(string)
}

var _ ExprVisitor = (*AstPrinter)(nil)
