package parser

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/token"
	"github.com/leonardinius/esvalue/internal/value"
)

const maxArguments = 255

var (
	nilExpr       Expr   = nil
	nilStmt       Stmt   = nil
	nilStatements []Stmt = nil
)

type Parser interface {
	Parse() ([]Stmt, error)
}

type parser struct {
	tokens  []token.Token
	current int
	err     error
}

func NewParser(tokens []token.Token) Parser {
	if len(tokens) == 0 {
		panic("tokens cannot be empty")
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		panic("tokens must end with EOF")
	}

	return &parser{
		tokens:  tokens,
		current: 0,
	}
}

// GoString implements fmt.GoStringer.
func (p *parser) GoString() string {
	return fmt.Sprintf("parser{tokens: %#v, current: %d, err: %#v}", p.tokens, p.current, p.err)
}

// String implements fmt.Stringer.
func (p *parser) String() string {
	return fmt.Sprintf("parser{tokens: %d, err: %v}", len(p.tokens), p.err)
}

// Parse implements Parser. On failure no statements are returned, and the
// error joins every problem found after resynchronizing.
func (p *parser) Parse() (statements []Stmt, err error) {
	var stmt Stmt
	for !p.isDone() {
		stmt, err = p.declaration(), p.err
		if err != nil {
			break
		}
		statements = append(statements, stmt)
	}

	if err == nil {
		return statements, nil
	}

	errs := []error{p.err}
	for !p.isAtEnd() {
		if p.err != nil {
			p.synchronize()
			p.err = nil
			if p.isAtEnd() {
				break
			}
		}
		if p.declaration(); p.err != nil {
			errs = append(errs, p.err)
		}
	}
	return nilStatements, errors.Join(errs...)
}

func (p *parser) declaration() Stmt {
	if p.match(token.VAR) {
		return p.varDeclaration()
	}

	return p.statement()
}

func (p *parser) varDeclaration() Stmt {
	if !p.match(token.IDENTIFIER) {
		return p.reportStmtError(jserrors.ErrParseUnexpectedVariableName)
	}
	name := p.previous()

	var initializer Expr = nilExpr
	if p.match(token.EQUAL) {
		initializer = p.expression()
	}

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(jserrors.ErrParseExpectedSemicolonTokenAfterVar)
	}

	return &StmtVar{Name: name, Initializer: initializer}
}

func (p *parser) statement() Stmt {
	if p.match(token.PRINT) {
		return p.printStatement()
	}

	if p.match(token.LEFT_BRACE) {
		block := p.blockStatement()
		return &StmtBlock{Statements: block}
	}

	return p.expressionStatement()
}

func (p *parser) printStatement() Stmt {
	keyword := p.previous()
	expr := p.expression()

	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(jserrors.ErrParseExpectedSemicolonTokenAfterPrintValue)
	}

	return &StmtPrint{Keyword: keyword, Expression: expr}
}

func (p *parser) blockStatement() []Stmt {
	var stmts []Stmt

	for !p.check(token.RIGHT_BRACE) && !p.isDone() {
		stmts = append(stmts, p.declaration())
	}

	if !p.match(token.RIGHT_BRACE) {
		return p.reportStmtsError(jserrors.ErrParseExpectedRightCurlyBlockToken)
	}

	return stmts
}

func (p *parser) expressionStatement() Stmt {
	expr := p.expression()
	if !p.match(token.SEMICOLON) {
		return p.reportStmtError(jserrors.ErrParseExpectedSemicolonTokenAfterExpr)
	}
	return &StmtExpression{Expression: expr}
}

func (p *parser) expression() Expr {
	return p.assignment()
}

func (p *parser) assignment() Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch expr.(type) {
		case *ExprVariable, *ExprGet, *ExprIndex:
			return &ExprAssign{Target: expr, Equals: equals, Value: value}
		}

		return p.reportTokenExprError(equals, jserrors.ErrParseInvalidAssignmentTarget)
	}

	return expr
}

func (p *parser) logicOr() Expr {
	expr := p.logicAnd()

	for p.match(token.OR_OR) {
		operator := p.previous()
		right := p.logicAnd()
		expr = &ExprLogical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) logicAnd() Expr {
	expr := p.equality()

	for p.match(token.AND_AND) {
		operator := p.previous()
		right := p.equality()
		expr = &ExprLogical{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) equality() Expr {
	expr := p.comparison()

	for p.anyMatch(token.BANG_EQUAL, token.EQUAL_EQUAL, token.BANG_EQUAL_EQUAL, token.EQUAL_EQUAL_EQUAL) {
		operator := p.previous()
		right := p.comparison()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) comparison() Expr {
	expr := p.term()

	for p.anyMatch(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL, token.INSTANCEOF) {
		operator := p.previous()
		right := p.term()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) term() Expr {
	expr := p.factor()

	for p.anyMatch(token.MINUS, token.PLUS) {
		operator := p.previous()
		right := p.factor()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) factor() Expr {
	expr := p.unary()

	for p.anyMatch(token.SLASH, token.STAR) {
		operator := p.previous()
		right := p.unary()
		expr = &ExprBinary{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) unary() Expr {
	if p.anyMatch(token.BANG, token.MINUS, token.TYPEOF) {
		operator := p.previous()
		right := p.unary()
		return &ExprUnary{
			Operator: operator,
			Right:    right,
		}
	}

	return p.call()
}

func (p *parser) call() Expr {
	expr := p.primary()

	for !p.isDone() {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			if !p.match(token.IDENTIFIER) {
				return p.reportExprError(jserrors.ErrParseUnexpectedPropertyName)
			}
			expr = &ExprGet{Object: expr, Name: p.previous()}
		case p.match(token.LEFT_BRACKET):
			bracket := p.previous()
			index := p.expression()
			if !p.match(token.RIGHT_BRACKET) {
				return p.reportExprError(jserrors.ErrParseExpectedRightBracketToken)
			}
			expr = &ExprIndex{Object: expr, Bracket: bracket, Index: index}
		default:
			return expr
		}
	}

	return expr
}

func (p *parser) finishCall(callee Expr) Expr {
	var arguments []Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(arguments) >= maxArguments {
				return p.reportExprError(jserrors.ErrParseTooManyArguments)
			}
			arguments = append(arguments, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if !p.match(token.RIGHT_PAREN) {
		return p.reportExprError(jserrors.ErrParseExpectedRightParenArgsToken)
	}

	return &ExprCall{Callee: callee, Paren: p.previous(), Arguments: arguments}
}

func (p *parser) primary() Expr {
	switch {
	case p.match(token.FALSE):
		return &ExprLiteral{Value: value.False}
	case p.match(token.TRUE):
		return &ExprLiteral{Value: value.True}
	case p.match(token.NULL):
		return &ExprLiteral{Value: value.Null}
	case p.match(token.UNDEFINED):
		return &ExprLiteral{Value: value.Undefined}
	case p.anyMatch(token.NUMBER, token.STRING, token.BIGINT):
		return &ExprLiteral{Value: literalValue(p.previous())}
	case p.match(token.IDENTIFIER):
		return &ExprVariable{Name: p.previous()}
	}

	return p.grouping()
}

func (p *parser) grouping() Expr {
	if p.match(token.LEFT_PAREN) {
		expr := p.expression()
		if !p.match(token.RIGHT_PAREN) {
			return p.reportExprError(jserrors.ErrParseExpectedRightParenToken)
		}
		return &ExprGrouping{Expression: expr}
	}

	return p.reportExprError(jserrors.ErrParseUnexpectedToken)
}

// literalValue converts a scanned literal payload into a script value.
func literalValue(tok *token.Token) value.Value {
	switch lit := tok.Literal.(type) {
	case float64:
		return value.Number(lit)
	case []uint16:
		return value.StringOf(value.NewStringFromUTF16(lit))
	case *big.Int:
		return value.BigInt(lit)
	}
	panic(fmt.Sprintf("unexpected literal %#v", tok))
}

func (p *parser) anyMatch(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) match(tokType token.TokenType) bool {
	if p.check(tokType) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) check(tokenType token.TokenType) bool {
	return !p.isDone() && p.peek().Type == tokenType
}

func (p *parser) peek() *token.Token {
	return &p.tokens[p.current]
}

func (p *parser) previous() *token.Token {
	return &p.tokens[p.current-1]
}

func (p *parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// isAtEnd ignores parse errors; most callers want isDone.
func (p *parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) isDone() bool {
	return p.isAtEnd() || p.err != nil
}

func (p *parser) reportStmtError(err error) Stmt {
	if p.err != nil {
		return nilStmt
	}

	p.err = jserrors.NewParseError(p.peek(), err)
	return nilStmt
}

func (p *parser) reportStmtsError(err error) []Stmt {
	if p.err != nil {
		return nilStatements
	}

	p.err = jserrors.NewParseError(p.peek(), err)
	return nilStatements
}

func (p *parser) reportExprError(err error) Expr {
	return p.reportTokenExprError(p.peek(), err)
}

func (p *parser) reportTokenExprError(tok *token.Token, err error) Expr {
	if p.err != nil {
		return nilExpr
	}
	p.err = jserrors.NewParseError(tok, err)
	return nilExpr
}

func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}

		switch p.peek().Type {
		case token.VAR, token.PRINT:
			return
		}

		p.advance()
	}
}

var _ Parser = (*parser)(nil)
var _ fmt.Stringer = (*parser)(nil)
var _ fmt.GoStringer = (*parser)(nil)
