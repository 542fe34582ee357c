package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/javafront/java/ast"
)

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() ast.Position {
	return ast.Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// skipTrivia consumes whitespace and comments. An unterminated block
// comment runs to the end of input.
func (l *Lexer) skipTrivia() {
	for l.pos < len(l.input) {
		ch := l.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f':
			l.advance()
		case ch == '/' && l.peekN(1) == '/':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekN(1) == '*':
			l.advanceN(2)
			for l.pos < len(l.input) {
				if l.peek() == '*' && l.peekN(1) == '/' {
					l.advanceN(2)
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

// NextToken returns the next significant token; whitespace and comments
// are skipped.
func (l *Lexer) NextToken() Token {
	l.skipTrivia()
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: ast.Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()
	switch {
	case isJavaLetter(ch):
		return l.scanIdentOrKeyword(startPos)
	case isDigit(ch), ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(startPos)
	case ch == '\'':
		return l.scanQuoted(startPos, '\'', TokenCharLiteral)
	case ch == '"':
		return l.scanQuoted(startPos, '"', TokenStringLiteral)
	}
	return l.scanOperator(startPos)
}

// Tokens lexes the whole input. The final token is always TokenEOF.
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) scanIdentOrKeyword(start ast.Position) Token {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRune(l.input[l.pos:])
		if !isJavaIdentRune(r) {
			break
		}
		for i := 0; i < size; i++ {
			l.pos++
		}
		l.column++
	}
	if l.pos == start.Offset {
		_, size := utf8.DecodeRune(l.input[l.pos:])
		l.pos += size
		l.column++
		return l.token(TokenError, start)
	}
	literal := string(l.input[start.Offset:l.pos])
	return l.token(LookupKeyword(literal), start)
}

func (l *Lexer) scanNumber(start ast.Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}

	isFloat := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		isFloat = true
		l.advance()
	case 'l', 'L':
		l.advance()
	}

	if isFloat {
		return l.token(TokenFloatLiteral, start)
	}
	return l.token(TokenIntLiteral, start)
}

// scanQuoted scans a char or string literal. A literal that reaches the
// end of the line unterminated becomes a TokenError.
func (l *Lexer) scanQuoted(start ast.Position, quote byte, kind TokenKind) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != quote && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() != quote {
		return l.token(TokenError, start)
	}
	l.advance()
	return l.token(kind, start)
}

type operator struct {
	text string
	kind TokenKind
}

// operators is ordered so that longer spellings are tried first.
var operators = []operator{
	{">>>=", TokenUShrAssign},
	{"<<=", TokenShlAssign},
	{">>=", TokenShrAssign},
	{">>>", TokenUShr},
	{"==", TokenEQ},
	{"!=", TokenNE},
	{"<=", TokenLE},
	{">=", TokenGE},
	{"&&", TokenAnd},
	{"||", TokenOr},
	{"<<", TokenShl},
	{">>", TokenShr},
	{"++", TokenIncrement},
	{"--", TokenDecrement},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"&=", TokenAndAssign},
	{"|=", TokenOrAssign},
	{"^=", TokenXorAssign},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{";", TokenSemicolon},
	{",", TokenComma},
	{".", TokenDot},
	{"?", TokenQuestion},
	{"=", TokenAssign},
	{"<", TokenLT},
	{">", TokenGT},
	{"!", TokenNot},
	{"&", TokenBitAnd},
	{"|", TokenBitOr},
	{"^", TokenBitXor},
	{"~", TokenBitNot},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
}

func (l *Lexer) scanOperator(start ast.Position) Token {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			l.advanceN(len(op.text))
			return l.token(op.kind, start)
		}
	}
	l.advance()
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start ast.Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    ast.Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaLetter(ch byte) bool {
	if ch >= utf8.RuneSelf {
		return true
	}
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isJavaIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}
