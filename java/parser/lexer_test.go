package parser

import "testing"

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{"public class Main {}", []TokenKind{TokenPublic, TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"123", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"123L", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"0xFF", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"3.14", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"1e10", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"2f", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{".5", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"\"hello\"", []TokenKind{TokenStringLiteral, TokenEOF}},
		{`"say \"hi\""`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{"'a'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{`'\n'`, []TokenKind{TokenCharLiteral, TokenEOF}},
		{"\"open", []TokenKind{TokenError, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"/* unterminated", []TokenKind{TokenEOF}},
		{"+ - * / %", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenEOF}},
		{"== != < <= > >=", []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"&& || !", []TokenKind{TokenAnd, TokenOr, TokenNot, TokenEOF}},
		{"<< >> >>>", []TokenKind{TokenShl, TokenShr, TokenUShr, TokenEOF}},
		{"<<= >>= >>>=", []TokenKind{TokenShlAssign, TokenShrAssign, TokenUShrAssign, TokenEOF}},
		{"++ --", []TokenKind{TokenIncrement, TokenDecrement, TokenEOF}},
		{"a.b", []TokenKind{TokenIdent, TokenDot, TokenIdent, TokenEOF}},
		{"x+=1", []TokenKind{TokenIdent, TokenPlusAssign, TokenIntLiteral, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
		{"café", []TokenKind{TokenIdent, TokenEOF}},
		{"€", []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got []TokenKind
			for _, tok := range NewLexer([]byte(tt.input), "test.java").Tokens() {
				got = append(got, tok.Kind)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"class", TokenClass},
		{"interface", TokenInterface},
		{"extends", TokenExtends},
		{"implements", TokenImplements},
		{"package", TokenPackage},
		{"import", TokenImport},
		{"void", TokenVoid},
		{"int", TokenInt},
		{"this", TokenThis},
		{"new", TokenNew},
		{"null", TokenNull},
		{"true", TokenTrue},
		{"Class", TokenIdent},
		{"var", TokenIdent},
		{"record", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LookupKeyword(tt.input); got != tt.kind {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.input, got, tt.kind)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := NewLexer([]byte("class A {\n  int x;\n}"), "A.java").Tokens()

	tests := []struct {
		index  int
		kind   TokenKind
		line   int
		column int
	}{
		{0, TokenClass, 1, 1},
		{1, TokenIdent, 1, 7},
		{2, TokenLBrace, 1, 9},
		{3, TokenInt, 2, 3},
		{4, TokenIdent, 2, 7},
		{5, TokenSemicolon, 2, 8},
		{6, TokenRBrace, 3, 1},
	}

	for _, tt := range tests {
		tok := tokens[tt.index]
		if tok.Kind != tt.kind {
			t.Errorf("token %d: kind %v, want %v", tt.index, tok.Kind, tt.kind)
		}
		if tok.Span.Start.Line != tt.line || tok.Span.Start.Column != tt.column {
			t.Errorf("token %d: at %d:%d, want %d:%d", tt.index,
				tok.Span.Start.Line, tok.Span.Start.Column, tt.line, tt.column)
		}
		if tok.Span.Start.File != "A.java" {
			t.Errorf("token %d: file %q", tt.index, tok.Span.Start.File)
		}
	}
}
