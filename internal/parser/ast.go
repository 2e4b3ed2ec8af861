package parser

import (
	"context"

	"github.com/leonardinius/esvalue/internal/token"
	"github.com/leonardinius/esvalue/internal/value"
)

// ExprVisitor is called for every expression node in the tree.
type ExprVisitor interface {
	VisitExprAssign(ctx context.Context, expr *ExprAssign) (any, error)
	VisitExprBinary(ctx context.Context, expr *ExprBinary) (any, error)
	VisitExprCall(ctx context.Context, expr *ExprCall) (any, error)
	VisitExprGet(ctx context.Context, expr *ExprGet) (any, error)
	VisitExprIndex(ctx context.Context, expr *ExprIndex) (any, error)
	VisitExprGrouping(ctx context.Context, expr *ExprGrouping) (any, error)
	VisitExprLiteral(ctx context.Context, expr *ExprLiteral) (any, error)
	VisitExprLogical(ctx context.Context, expr *ExprLogical) (any, error)
	VisitExprUnary(ctx context.Context, expr *ExprUnary) (any, error)
	VisitExprVariable(ctx context.Context, expr *ExprVariable) (any, error)
}

// StmtVisitor is called for every statement node in the tree.
type StmtVisitor interface {
	VisitStmtBlock(ctx context.Context, stmt *StmtBlock) (any, error)
	VisitStmtExpression(ctx context.Context, stmt *StmtExpression) (any, error)
	VisitStmtPrint(ctx context.Context, stmt *StmtPrint) (any, error)
	VisitStmtVar(ctx context.Context, stmt *StmtVar) (any, error)
}

type Expr interface {
	Accept(ctx context.Context, v ExprVisitor) (any, error)
}

type Stmt interface {
	Accept(ctx context.Context, v StmtVisitor) (any, error)
}

// ExprAssign stores Value into Target, which is an *ExprVariable, *ExprGet
// or *ExprIndex.
type ExprAssign struct {
	Target Expr
	Equals *token.Token
	Value  Expr
}

func (e *ExprAssign) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprAssign(ctx, e)
}

type ExprBinary struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

func (e *ExprBinary) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprBinary(ctx, e)
}

type ExprCall struct {
	Callee    Expr
	Paren     *token.Token
	Arguments []Expr
}

func (e *ExprCall) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprCall(ctx, e)
}

// ExprGet is the a.b member access.
type ExprGet struct {
	Object Expr
	Name   *token.Token
}

func (e *ExprGet) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprGet(ctx, e)
}

// ExprIndex is the a[b] member access.
type ExprIndex struct {
	Object  Expr
	Bracket *token.Token
	Index   Expr
}

func (e *ExprIndex) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprIndex(ctx, e)
}

type ExprGrouping struct {
	Expression Expr
}

func (e *ExprGrouping) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprGrouping(ctx, e)
}

type ExprLiteral struct {
	Value value.Value
}

func (e *ExprLiteral) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprLiteral(ctx, e)
}

type ExprLogical struct {
	Left     Expr
	Operator *token.Token
	Right    Expr
}

func (e *ExprLogical) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprLogical(ctx, e)
}

type ExprUnary struct {
	Operator *token.Token
	Right    Expr
}

func (e *ExprUnary) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprUnary(ctx, e)
}

type ExprVariable struct {
	Name *token.Token
}

func (e *ExprVariable) Accept(ctx context.Context, v ExprVisitor) (any, error) {
	return v.VisitExprVariable(ctx, e)
}

type StmtBlock struct {
	Statements []Stmt
}

func (s *StmtBlock) Accept(ctx context.Context, v StmtVisitor) (any, error) {
	return v.VisitStmtBlock(ctx, s)
}

type StmtExpression struct {
	Expression Expr
}

func (s *StmtExpression) Accept(ctx context.Context, v StmtVisitor) (any, error) {
	return v.VisitStmtExpression(ctx, s)
}

type StmtPrint struct {
	Keyword    *token.Token
	Expression Expr
}

func (s *StmtPrint) Accept(ctx context.Context, v StmtVisitor) (any, error) {
	return v.VisitStmtPrint(ctx, s)
}

type StmtVar struct {
	Name        *token.Token
	Initializer Expr
}

func (s *StmtVar) Accept(ctx context.Context, v StmtVisitor) (any, error) {
	return v.VisitStmtVar(ctx, s)
}

var (
	_ Expr = (*ExprAssign)(nil)
	_ Expr = (*ExprBinary)(nil)
	_ Expr = (*ExprCall)(nil)
	_ Expr = (*ExprGet)(nil)
	_ Expr = (*ExprIndex)(nil)
	_ Expr = (*ExprGrouping)(nil)
	_ Expr = (*ExprLiteral)(nil)
	_ Expr = (*ExprLogical)(nil)
	_ Expr = (*ExprUnary)(nil)
	_ Expr = (*ExprVariable)(nil)
	_ Stmt = (*StmtBlock)(nil)
	_ Stmt = (*StmtExpression)(nil)
	_ Stmt = (*StmtPrint)(nil)
	_ Stmt = (*StmtVar)(nil)
)
