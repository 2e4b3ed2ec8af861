package token

import "fmt"

type TokenType int

const (
	// Single-character tokens.
	LEFT_PAREN TokenType = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	// One, two or three character tokens.
	BANG
	BANG_EQUAL
	BANG_EQUAL_EQUAL
	EQUAL
	EQUAL_EQUAL
	EQUAL_EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL
	AND_AND
	OR_OR

	// Literals.
	IDENTIFIER
	STRING
	NUMBER
	BIGINT

	// Keywords.
	FALSE
	INSTANCEOF
	NULL
	PRINT
	TRUE
	TYPEOF
	UNDEFINED
	VAR

	EOF
)

var tokenTypeNames = [...]string{
	LEFT_PAREN:        "LEFT_PAREN",
	RIGHT_PAREN:       "RIGHT_PAREN",
	LEFT_BRACE:        "LEFT_BRACE",
	RIGHT_BRACE:       "RIGHT_BRACE",
	LEFT_BRACKET:      "LEFT_BRACKET",
	RIGHT_BRACKET:     "RIGHT_BRACKET",
	COMMA:             "COMMA",
	DOT:               "DOT",
	MINUS:             "MINUS",
	PLUS:              "PLUS",
	SEMICOLON:         "SEMICOLON",
	SLASH:             "SLASH",
	STAR:              "STAR",
	BANG:              "BANG",
	BANG_EQUAL:        "BANG_EQUAL",
	BANG_EQUAL_EQUAL:  "BANG_EQUAL_EQUAL",
	EQUAL:             "EQUAL",
	EQUAL_EQUAL:       "EQUAL_EQUAL",
	EQUAL_EQUAL_EQUAL: "EQUAL_EQUAL_EQUAL",
	GREATER:           "GREATER",
	GREATER_EQUAL:     "GREATER_EQUAL",
	LESS:              "LESS",
	LESS_EQUAL:        "LESS_EQUAL",
	AND_AND:           "AND_AND",
	OR_OR:             "OR_OR",
	IDENTIFIER:        "IDENTIFIER",
	STRING:            "STRING",
	NUMBER:            "NUMBER",
	BIGINT:            "BIGINT",
	FALSE:             "FALSE",
	INSTANCEOF:        "INSTANCEOF",
	NULL:              "NULL",
	PRINT:             "PRINT",
	TRUE:              "TRUE",
	TYPEOF:            "TYPEOF",
	UNDEFINED:         "UNDEFINED",
	VAR:               "VAR",
	EOF:               "EOF",
}

// String implements fmt.Stringer.
func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

var _ fmt.Stringer = TokenType(0)
