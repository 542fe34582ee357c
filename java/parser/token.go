package parser

import "github.com/dhamidi/javafront/java/ast"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords
	TokenAbstract
	TokenBoolean
	TokenByte
	TokenChar
	TokenClass
	TokenDouble
	TokenElse
	TokenExtends
	TokenFinal
	TokenFloat
	TokenFor
	TokenIf
	TokenImplements
	TokenImport
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSynchronized
	TokenThis
	TokenThrows
	TokenTransient
	TokenVoid
	TokenVolatile
	TokenWhile

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenQuestion

	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenAbstract:      "abstract",
	TokenBoolean:       "boolean",
	TokenByte:          "byte",
	TokenChar:          "char",
	TokenClass:         "class",
	TokenDouble:        "double",
	TokenElse:          "else",
	TokenExtends:       "extends",
	TokenFinal:         "final",
	TokenFloat:         "float",
	TokenFor:           "for",
	TokenIf:            "if",
	TokenImplements:    "implements",
	TokenImport:        "import",
	TokenInt:           "int",
	TokenInterface:     "interface",
	TokenLong:          "long",
	TokenNative:        "native",
	TokenNew:           "new",
	TokenPackage:       "package",
	TokenPrivate:       "private",
	TokenProtected:     "protected",
	TokenPublic:        "public",
	TokenReturn:        "return",
	TokenShort:         "short",
	TokenStatic:        "static",
	TokenStrictfp:      "strictfp",
	TokenSynchronized:  "synchronized",
	TokenThis:          "this",
	TokenThrows:        "throws",
	TokenTransient:     "transient",
	TokenVoid:          "void",
	TokenVolatile:      "volatile",
	TokenWhile:         "while",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenQuestion:      "?",
	TokenAssign:        "=",
	TokenEQ:            "==",
	TokenNE:            "!=",
	TokenLT:            "<",
	TokenLE:            "<=",
	TokenGT:            ">",
	TokenGE:            ">=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenNot:           "!",
	TokenBitAnd:        "&",
	TokenBitOr:         "|",
	TokenBitXor:        "^",
	TokenBitNot:        "~",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenUShr:          ">>>",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenUShrAssign:    ">>>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    ast.Span
	Literal string
}

var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"boolean":      TokenBoolean,
	"byte":         TokenByte,
	"char":         TokenChar,
	"class":        TokenClass,
	"double":       TokenDouble,
	"else":         TokenElse,
	"extends":      TokenExtends,
	"final":        TokenFinal,
	"float":        TokenFloat,
	"for":          TokenFor,
	"if":           TokenIf,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"new":          TokenNew,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"return":       TokenReturn,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"synchronized": TokenSynchronized,
	"this":         TokenThis,
	"throws":       TokenThrows,
	"transient":    TokenTransient,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,
	"while":        TokenWhile,
	"true":         TokenTrue,
	"false":        TokenFalse,
	"null":         TokenNull,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

var primitiveTokens = map[TokenKind]ast.Primitive{
	TokenBoolean: ast.PrimBoolean,
	TokenByte:    ast.PrimByte,
	TokenChar:    ast.PrimChar,
	TokenShort:   ast.PrimShort,
	TokenInt:     ast.PrimInt,
	TokenLong:    ast.PrimLong,
	TokenFloat:   ast.PrimFloat,
	TokenDouble:  ast.PrimDouble,
	TokenVoid:    ast.PrimVoid,
}

var modifierTokens = map[TokenKind]ast.Modifier{
	TokenPublic:       ast.ModPublic,
	TokenProtected:    ast.ModProtected,
	TokenPrivate:      ast.ModPrivate,
	TokenStatic:       ast.ModStatic,
	TokenFinal:        ast.ModFinal,
	TokenAbstract:     ast.ModAbstract,
	TokenNative:       ast.ModNative,
	TokenSynchronized: ast.ModSynchronized,
	TokenTransient:    ast.ModTransient,
	TokenVolatile:     ast.ModVolatile,
	TokenStrictfp:     ast.ModStrictfp,
}

var assignOps = map[TokenKind]bool{
	TokenAssign:        true,
	TokenPlusAssign:    true,
	TokenMinusAssign:   true,
	TokenStarAssign:    true,
	TokenSlashAssign:   true,
	TokenPercentAssign: true,
	TokenAndAssign:     true,
	TokenOrAssign:      true,
	TokenXorAssign:     true,
	TokenShlAssign:     true,
	TokenShrAssign:     true,
	TokenUShrAssign:    true,
}

// binaryPrecedence orders the binary operators from loosest to tightest.
var binaryPrecedence = map[TokenKind]int{
	TokenOr:      1,
	TokenAnd:     2,
	TokenBitOr:   3,
	TokenBitXor:  4,
	TokenBitAnd:  5,
	TokenEQ:      6,
	TokenNE:      6,
	TokenLT:      7,
	TokenLE:      7,
	TokenGT:      7,
	TokenGE:      7,
	TokenShl:     8,
	TokenShr:     8,
	TokenUShr:    8,
	TokenPlus:    9,
	TokenMinus:   9,
	TokenStar:    10,
	TokenSlash:   10,
	TokenPercent: 10,
}
