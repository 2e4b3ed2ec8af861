package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leonardinius/esvalue/internal/parser"
	"github.com/leonardinius/esvalue/internal/token"
	"github.com/leonardinius/esvalue/internal/value"
)

func sampleTree() parser.Expr {
	return &parser.ExprBinary{
		Left: &parser.ExprUnary{
			Operator: token.NewTokenHeap(token.MINUS, "-", nil, 1),
			Right:    &parser.ExprLiteral{Value: value.Int(123)},
		},
		Operator: token.NewTokenHeap(token.STAR, "*", nil, 1),
		Right: &parser.ExprGrouping{
			Expression: &parser.ExprLiteral{Value: value.Number(45.67)},
		},
	}
}

func TestAstPrinterVisitor(t *testing.T) {
	p := parser.NewAstPrinter()
	out := p.Print(sampleTree())
	assert.Equal(t, "(* (- 123) (group 45.67))", out)
}

func TestRPNPrinterVisitor(t *testing.T) {
	p := parser.NewRPNPrinter()
	out := p.Print(sampleTree())
	assert.Equal(t, "123 ~ 45.67 *", out)
}

func TestPrintersQuoteStrings(t *testing.T) {
	tree := &parser.ExprCall{
		Callee: &parser.ExprGet{
			Object: &parser.ExprVariable{Name: token.NewTokenHeap(token.IDENTIFIER, "o", nil, 1)},
			Name:   token.NewTokenHeap(token.IDENTIFIER, "m", nil, 1),
		},
		Paren:     token.NewTokenHeap(token.RIGHT_PAREN, ")", nil, 1),
		Arguments: []parser.Expr{&parser.ExprLiteral{Value: value.Str("a")}, &parser.ExprLiteral{Value: value.Null}},
	}

	assert.Equal(t, `(call (. o m) "a" null)`, parser.NewAstPrinter().Print(tree))
	assert.Equal(t, `o m . "a" null call/2`, parser.NewRPNPrinter().Print(tree))
}
