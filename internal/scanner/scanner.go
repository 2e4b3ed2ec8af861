package scanner

import (
	"math/big"
	"strconv"
	"unicode/utf16"

	"github.com/leonardinius/esvalue/internal/jserrors"
	"github.com/leonardinius/esvalue/internal/token"
	"github.com/leonardinius/esvalue/internal/value"
)

type Scanner interface {
	Scan() ([]token.Token, error)
}

var reservedKeywords = map[string]token.TokenType{
	"false":      token.FALSE,
	"instanceof": token.INSTANCEOF,
	"null":       token.NULL,
	"print":      token.PRINT,
	"true":       token.TRUE,
	"typeof":     token.TYPEOF,
	"undefined":  token.UNDEFINED,
	"var":        token.VAR,
}

type scanner struct {
	source               []rune
	tokens               []token.Token
	start, current, line int
	err                  error
}

// NewScanner returns a new Scanner.
func NewScanner(input string) Scanner {
	return &scanner{source: []rune(input), start: 0, current: 0, line: 1}
}

// Scan implements Scanner.
func (s *scanner) Scan() ([]token.Token, error) {
	for !s.isDone() {
		// We are at the beginning of the next lexeme.
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, token.NewToken(token.EOF, "", nil, s.line))

	return s.tokens, s.err
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) hasErr() bool {
	return s.err != nil
}

func (s *scanner) isDone() bool {
	return s.isAtEnd() || s.hasErr()
}

func (s *scanner) scanToken() {
	var c = s.advance()

	switch c {
	case '(':
		s.addToken(token.LEFT_PAREN)
	case ')':
		s.addToken(token.RIGHT_PAREN)
	case '{':
		s.addToken(token.LEFT_BRACE)
	case '}':
		s.addToken(token.RIGHT_BRACE)
	case '[':
		s.addToken(token.LEFT_BRACKET)
	case ']':
		s.addToken(token.RIGHT_BRACKET)
	case ',':
		s.addToken(token.COMMA)
	case '.':
		if s.isDigit(s.peek()) {
			s.number()
		} else {
			s.addToken(token.DOT)
		}
	case '-':
		s.addToken(token.MINUS)
	case '+':
		s.addToken(token.PLUS)
	case ';':
		s.addToken(token.SEMICOLON)
	case '*':
		s.addToken(token.STAR)
	case '!':
		s.addEqualityToken(token.BANG_EQUAL_EQUAL, token.BANG_EQUAL, token.BANG)
	case '=':
		s.addEqualityToken(token.EQUAL_EQUAL_EQUAL, token.EQUAL_EQUAL, token.EQUAL)
	case '<':
		s.addMatchToken('=', token.LESS_EQUAL, token.LESS)
	case '>':
		s.addMatchToken('=', token.GREATER_EQUAL, token.GREATER)
	case '&':
		if !s.match('&') {
			s.reportUnexpectedCharater(c)
			return
		}
		s.addToken(token.AND_AND)
	case '|':
		if !s.match('|') {
			s.reportUnexpectedCharater(c)
			return
		}
		s.addToken(token.OR_OR)
	case '/':
		if s.match('/') {
			s.comment()
		} else if s.match('*') {
			s.blockComment()
		} else {
			s.addToken(token.SLASH)
		}
	case ' ', '\r', '\t', '\n':
		// Ignore whitespace.
	case '"', '\'':
		s.string(c)
	default:
		if s.isDigit(c) {
			s.number()
		} else if s.isAlpha(c) {
			s.reservedOrIdentifier()
		} else {
			s.reportUnexpectedCharater(c)
		}
	}
}

func (s *scanner) peek() rune {
	if s.isAtEnd() {
		return '\000'
	}
	return s.source[s.current]
}

func (s *scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return '\000'
	}
	return s.source[s.current+1]
}

func (s *scanner) advance() rune {
	if s.source[s.current] == '\n' {
		s.line++
	}
	s.current++
	return s.source[s.current-1]
}

func (s *scanner) match(expected rune) bool {
	if !s.isAtEnd() && expected == s.peek() {
		s.advance()
		return true
	}

	return false
}

func (s *scanner) addMatchToken(lookAhead rune, ifMatch, ifNotMatched token.TokenType) {
	if s.match(lookAhead) {
		s.addToken(ifMatch)
	} else {
		s.addToken(ifNotMatched)
	}
}

// addEqualityToken scans the '=' and '==' tails of '!', '!=', '!==' and the
// '=' family.
func (s *scanner) addEqualityToken(strict, loose, single token.TokenType) {
	if !s.match('=') {
		s.addToken(single)
		return
	}
	s.addMatchToken('=', strict, loose)
}

func (s *scanner) addToken(t token.TokenType) {
	s.addTokenLiteral(t, nil)
}

func (s *scanner) addTokenLiteral(t token.TokenType, literal any) {
	s.tokens = append(s.tokens, token.NewToken(t, string(s.source[s.start:s.current]), literal, s.line))
}

func (s *scanner) comment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *scanner) blockComment() {
	depth := 1

	for !s.isAtEnd() && depth > 0 {

		if s.peek() == '*' && s.peekNext() == '/' {
			depth--
			s.advance()
			s.advance()
		} else if s.peek() == '/' && s.peekNext() == '*' {
			depth++
			s.advance()
			s.advance()
		} else {
			s.advance()
		}
	}

	if depth > 0 {
		s.reportError(jserrors.ErrScanUnterminatedComment)
	}
}

// string scans a quoted literal into UTF-16 code units, so escapes can
// produce lone surrogates.
func (s *scanner) string(quote rune) {
	var units []uint16
	for !s.isAtEnd() && s.peek() != quote {
		c := s.advance()
		if c != '\\' {
			units = utf16.AppendRune(units, c)
			continue
		}
		if s.isAtEnd() {
			break
		}
		unit, ok := s.escape()
		if !ok {
			return
		}
		units = append(units, unit...)
	}

	if s.isAtEnd() {
		s.reportError(jserrors.ErrScanUnterminatedString)
		return
	}

	// The closing quote.
	s.advance()

	if units == nil {
		units = []uint16{}
	}
	s.addTokenLiteral(token.STRING, units)
}

func (s *scanner) escape() ([]uint16, bool) {
	c := s.advance()
	switch c {
	case 'n':
		return []uint16{'\n'}, true
	case 't':
		return []uint16{'\t'}, true
	case 'r':
		return []uint16{'\r'}, true
	case 'b':
		return []uint16{'\b'}, true
	case 'f':
		return []uint16{'\f'}, true
	case 'v':
		return []uint16{'\v'}, true
	case '0':
		return []uint16{0}, true
	case '\\', '"', '\'':
		return []uint16{uint16(c)}, true
	case 'u':
		return s.unicodeEscape()
	}
	s.err = jserrors.NewScanError(s.line, jserrors.ErrScanInvalidEscape, strconv.QuoteRune(c))
	return nil, false
}

// unicodeEscape scans \uXXXX and \u{X...}.
func (s *scanner) unicodeEscape() ([]uint16, bool) {
	var digits []rune
	if s.match('{') {
		for !s.isAtEnd() && s.peek() != '}' && s.isHexDigit(s.peek()) {
			digits = append(digits, s.advance())
		}
		if !s.match('}') || len(digits) == 0 || len(digits) > 6 {
			s.reportError(jserrors.ErrScanInvalidEscape)
			return nil, false
		}
	} else {
		for range 4 {
			if !s.isHexDigit(s.peek()) {
				s.reportError(jserrors.ErrScanInvalidEscape)
				return nil, false
			}
			digits = append(digits, s.advance())
		}
	}

	cp, err := strconv.ParseUint(string(digits), 16, 32)
	if err != nil || cp > 0x10FFFF {
		s.reportError(jserrors.ErrScanInvalidEscape)
		return nil, false
	}
	if cp <= 0xFFFF {
		return []uint16{uint16(cp)}, true
	}
	return utf16.AppendRune(nil, rune(cp)), true
}

func (s *scanner) number() {
	if s.source[s.start] == '0' && (s.peek() == 'x' || s.peek() == 'X') {
		s.advance()
		for s.isHexDigit(s.peek()) {
			s.advance()
		}
	} else {
		for s.isDigit(s.peek()) {
			s.advance()
		}

		if s.peek() == '.' && s.isDigit(s.peekNext()) {
			s.advance()

			for s.isDigit(s.peek()) {
				s.advance()
			}
		}

		if s.peek() == 'e' || s.peek() == 'E' {
			next := s.peekNext()
			if s.isDigit(next) || next == '+' || next == '-' {
				s.advance()
				s.advance()
				for s.isDigit(s.peek()) {
					s.advance()
				}
			}
		}
	}

	literal := string(s.source[s.start:s.current])
	if s.peek() == 'n' {
		s.bigint(literal)
		return
	}

	if s.isAlphaNumeric(s.peek()) {
		s.reportNumberError(literal)
		return
	}

	f := value.StringToNumber(literal)
	if f != f {
		s.reportNumberError(literal)
		return
	}
	s.addTokenLiteral(token.NUMBER, f)
}

func (s *scanner) bigint(digits string) {
	s.advance()
	n, ok := new(big.Int).SetString(digits, 0)
	if !ok || (len(digits) > 1 && digits[0] == '0' && digits[1] != 'x' && digits[1] != 'X') {
		s.reportNumberError(digits + "n")
		return
	}
	s.addTokenLiteral(token.BIGINT, n)
}

func (s *scanner) reservedOrIdentifier() {
	for s.isAlphaNumeric(s.peek()) {
		s.advance()
	}

	tokenType := token.IDENTIFIER
	name := string(s.source[s.start:s.current])
	if _type, ok := s.reserved(name); ok {
		tokenType = _type
	}
	s.addToken(tokenType)
}

func (s *scanner) reserved(identifier string) (tokenType token.TokenType, ok bool) {
	tokenType, ok = reservedKeywords[identifier]
	return
}

func (s *scanner) isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func (s *scanner) isHexDigit(c rune) bool {
	return s.isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (s *scanner) isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_' || c == '$'
}

func (s *scanner) isAlphaNumeric(c rune) bool {
	return s.isAlpha(c) || s.isDigit(c)
}

func (s *scanner) reportUnexpectedCharater(c rune) {
	s.err = jserrors.NewScanError(s.line, jserrors.ErrScanUnexpectedCharacter, strconv.QuoteRune(c))
}

func (s *scanner) reportNumberError(literal string) {
	s.err = jserrors.NewScanError(s.line, jserrors.ErrScanInvalidNumber, strconv.Quote(literal))
}

func (s *scanner) reportError(err error) {
	s.err = jserrors.NewScanError(s.line, err, "")
}

var _ Scanner = (*scanner)(nil)
