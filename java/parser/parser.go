package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/javafront/java/ast"
)

type Option func(*Parser)

// WithMaxErrors stops parsing after n syntax errors. The default is 10.
func WithMaxErrors(n int) Option {
	return func(p *Parser) {
		p.maxErrors = n
	}
}

type Parser struct {
	file      string
	maxErrors int
	tokens    []Token
	pos       int
	errors    ErrorList
}

// bailout is the panic value used to abandon a parse after too many errors.
type bailout struct{}

func newParser(file string, src []byte, opts ...Option) *Parser {
	p := &Parser{
		file:      file,
		maxErrors: 10,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tokens = NewLexer(src, file).Tokens()
	return p
}

// Parse parses src as a compilation unit. The returned tree is complete
// when the error is nil; on syntax errors a partial tree is returned with
// an ErrorList.
func Parse(file string, src []byte, opts ...Option) (unit *ast.CompileUnit, err error) {
	p := newParser(file, src, opts...)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			err = p.errors
		}
	}()
	unit = p.parseCompilationUnit()
	return unit, p.errors.Err()
}

// ParseFile reads and parses the file at path.
func ParseFile(path string, opts ...Option) (*ast.CompileUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, data, opts...)
}

// ParseExpression parses src as a single expression.
func ParseExpression(file string, src []byte, opts ...Option) (expr ast.Node, err error) {
	p := newParser(file, src, opts...)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			err = p.errors
		}
	}()
	expr = p.parseExpression()
	if !p.check(TokenEOF) {
		p.errorf(p.peek().Span.Start, "unexpected %s after expression", describe(p.peek()))
	}
	return expr, p.errors.Err()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind. On mismatch it records an
// error and leaves the current token in place.
func (p *Parser) expect(kind TokenKind) Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return tok
	}
	p.errorf(tok.Span.Start, "expected %s, found %s", kind, describe(tok))
	return tok
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end; a stalled loop is forced forward by one token.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) errorf(pos ast.Position, format string, args ...any) {
	p.errors = append(p.errors, &Error{Message: fmt.Sprintf(format, args...), Pos: pos})
	if p.maxErrors > 0 && len(p.errors) >= p.maxErrors {
		panic(bailout{})
	}
}

func (p *Parser) recoverTo(kinds ...TokenKind) {
	if !p.check(TokenEOF) {
		p.advance()
	}
	for !p.check(TokenEOF) && !p.match(kinds...) {
		p.advance()
	}
}

// span closes a node started at start with the end of the last consumed token.
func (p *Parser) span(start ast.Position) ast.Span {
	end := start
	if p.pos > 0 && p.pos <= len(p.tokens) {
		end = p.tokens[p.pos-1].Span.End
	}
	return ast.Span{Start: start, End: end}
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of file"
	case TokenIdent:
		return fmt.Sprintf("identifier %s", tok.Literal)
	case TokenError:
		return fmt.Sprintf("invalid token %q", tok.Literal)
	}
	if tok.Literal != "" {
		return fmt.Sprintf("%q", tok.Literal)
	}
	return tok.Kind.String()
}

func (p *Parser) parseCompilationUnit() *ast.CompileUnit {
	start := p.peek().Span.Start
	unit := &ast.CompileUnit{File: p.file, Package: ast.Absent}

	if p.check(TokenPackage) {
		p.advance()
		unit.Package = p.parseQualifiedName()
		p.expect(TokenSemicolon)
	}

	for p.check(TokenImport) {
		unit.Imports = append(unit.Imports, p.parseImportDecl())
	}

	for !p.check(TokenEOF) {
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		progress := p.mustProgress()
		if decl := p.parseTypeDecl(); decl != nil {
			unit.Types = append(unit.Types, decl)
		}
		progress()
	}

	unit.Span = p.span(start)
	return unit
}

func (p *Parser) parseIdent() *ast.NameNode {
	tok := p.peek()
	if tok.Kind != TokenIdent {
		p.errorf(tok.Span.Start, "expected identifier, found %s", describe(tok))
		return &ast.NameNode{Span: ast.Span{Start: tok.Span.Start, End: tok.Span.Start}, Qualifier: ast.Absent}
	}
	p.advance()
	return &ast.NameNode{Span: tok.Span, Qualifier: ast.Absent, Ident: tok.Literal}
}

func (p *Parser) parseQualifiedName() *ast.NameNode {
	start := p.peek().Span.Start
	name := p.parseIdent()
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		tok := p.advance()
		name = &ast.NameNode{
			Span:      ast.Span{Start: start, End: tok.Span.End},
			Qualifier: name,
			Ident:     tok.Literal,
		}
	}
	return name
}

func (p *Parser) parseImportDecl() ast.Node {
	start := p.expect(TokenImport).Span.Start
	name := p.parseQualifiedName()
	if p.check(TokenDot) && p.peekN(1).Kind == TokenStar {
		p.advance()
		p.advance()
		p.expect(TokenSemicolon)
		return &ast.ImportOnDemandNode{Span: p.span(start), Name: name}
	}
	p.expect(TokenSemicolon)
	return &ast.ImportNode{Span: p.span(start), Name: name}
}

func (p *Parser) parseModifiers() ast.Modifier {
	var mods ast.Modifier
	for {
		tok := p.peek()
		mod, ok := modifierTokens[tok.Kind]
		if !ok {
			return mods
		}
		if mods.Has(mod) {
			p.errorf(tok.Span.Start, "repeated modifier %s", tok.Literal)
		}
		mods |= mod
		p.advance()
	}
}

func (p *Parser) parseTypeDecl() ast.Node {
	start := p.peek().Span.Start
	mods := p.parseModifiers()
	switch p.peek().Kind {
	case TokenClass:
		return p.parseClassDecl(start, mods)
	case TokenInterface:
		return p.parseInterfaceDecl(start, mods)
	}
	p.errorf(p.peek().Span.Start, "expected class or interface declaration, found %s", describe(p.peek()))
	p.recoverTo(TokenClass, TokenInterface, TokenPublic, TokenAbstract, TokenFinal)
	return nil
}

func (p *Parser) parseClassDecl(start ast.Position, mods ast.Modifier) *ast.ClassDecl {
	p.expect(TokenClass)
	decl := &ast.ClassDecl{Modifiers: mods, Super: ast.Absent}
	decl.Name = p.parseIdent()
	if p.check(TokenExtends) {
		p.advance()
		decl.Super = p.parseClassType()
	}
	if p.check(TokenImplements) {
		p.advance()
		decl.Interfaces = p.parseClassTypeList()
	}
	decl.Members = p.parseClassBody(decl.Name.Ident, false)
	decl.Span = p.span(start)
	return decl
}

func (p *Parser) parseInterfaceDecl(start ast.Position, mods ast.Modifier) *ast.InterfaceDecl {
	p.expect(TokenInterface)
	decl := &ast.InterfaceDecl{Modifiers: mods}
	decl.Name = p.parseIdent()
	if p.check(TokenExtends) {
		p.advance()
		decl.Extends = p.parseClassTypeList()
	}
	decl.Members = p.parseClassBody(decl.Name.Ident, true)
	decl.Span = p.span(start)
	return decl
}

func (p *Parser) parseClassTypeList() []ast.Node {
	list := []ast.Node{p.parseClassType()}
	for p.check(TokenComma) {
		p.advance()
		list = append(list, p.parseClassType())
	}
	return list
}

func (p *Parser) parseClassBody(className string, isInterface bool) []ast.Node {
	var members []ast.Node
	p.expect(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		progress := p.mustProgress()
		members = append(members, p.parseMember(className, isInterface)...)
		progress()
	}
	p.expect(TokenRBrace)
	return members
}

func (p *Parser) parseMember(className string, isInterface bool) []ast.Node {
	start := p.peek().Span.Start
	mods := p.parseModifiers()

	switch p.peek().Kind {
	case TokenClass, TokenInterface:
		p.errorf(p.peek().Span.Start, "nested type declarations are not supported")
		p.parseTypeDecl()
		return nil
	}

	if !isInterface && p.check(TokenIdent) && p.peek().Literal == className && p.peekN(1).Kind == TokenLParen {
		return []ast.Node{p.parseConstructor(start, mods)}
	}

	typ := p.parseType()
	name := p.parseIdent()
	if p.check(TokenLParen) {
		return []ast.Node{p.parseMethod(start, mods, typ, name)}
	}

	p.checkNotVoid(typ)
	var fields []ast.Node
	for {
		field := &ast.FieldDecl{Modifiers: mods, Name: name, Init: ast.Absent}
		field.Type = p.parseDims(typ)
		if p.check(TokenAssign) {
			p.advance()
			field.Init = p.parseExpression()
		}
		field.Span = p.span(start)
		fields = append(fields, field)
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		typ = cloneType(typ)
		name = p.parseIdent()
	}
	p.expect(TokenSemicolon)
	return fields
}

func (p *Parser) parseConstructor(start ast.Position, mods ast.Modifier) *ast.ConstructorDecl {
	decl := &ast.ConstructorDecl{Modifiers: mods}
	decl.Name = p.parseIdent()
	decl.Params = p.parseParameters()
	decl.Throws = p.parseThrows()
	decl.Body = p.parseBlock()
	decl.Span = p.span(start)
	return decl
}

func (p *Parser) parseMethod(start ast.Position, mods ast.Modifier, typ ast.Node, name *ast.NameNode) *ast.MethodDecl {
	decl := &ast.MethodDecl{Modifiers: mods, ReturnType: typ, Name: name, Body: ast.Absent}
	decl.Params = p.parseParameters()
	decl.ReturnType = p.parseDims(typ)
	decl.Throws = p.parseThrows()
	if p.check(TokenSemicolon) {
		p.advance()
	} else {
		decl.Body = p.parseBlock()
	}
	decl.Span = p.span(start)
	return decl
}

func (p *Parser) parseParameters() []*ast.ParameterNode {
	var params []*ast.ParameterNode
	p.expect(TokenLParen)
	if p.check(TokenRParen) {
		p.advance()
		return params
	}
	for {
		start := p.peek().Span.Start
		param := &ast.ParameterNode{Modifiers: p.parseModifiers()}
		typ := p.parseType()
		p.checkNotVoid(typ)
		param.Name = p.parseIdent()
		param.Type = p.parseDims(typ)
		param.Span = p.span(start)
		params = append(params, param)
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	p.expect(TokenRParen)
	return params
}

func (p *Parser) parseThrows() []ast.Node {
	if !p.check(TokenThrows) {
		return nil
	}
	p.advance()
	return p.parseClassTypeList()
}

// parseDims wraps typ in one array level per trailing "[]".
func (p *Parser) parseDims(typ ast.Node) ast.Node {
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		end := p.advance()
		typ = &ast.ArrayTypeNode{
			Span: ast.Span{Start: typ.Pos(), End: end.Span.End},
			Base: typ,
		}
	}
	return typ
}

func (p *Parser) checkNotVoid(typ ast.Node) {
	if prim, ok := typ.(*ast.PrimitiveTypeNode); ok && prim.Type == ast.PrimVoid {
		p.errorf(prim.Pos(), "void is only valid as a method return type")
	}
}

func (p *Parser) parseType() ast.Node {
	tok := p.peek()
	if prim, ok := primitiveTokens[tok.Kind]; ok {
		p.advance()
		return p.parseDims(&ast.PrimitiveTypeNode{Span: tok.Span, Type: prim})
	}
	if tok.Kind == TokenIdent {
		return p.parseDims(p.parseClassType())
	}
	p.errorf(tok.Span.Start, "expected type, found %s", describe(tok))
	return &ast.TypeNameNode{Span: ast.Span{Start: tok.Span.Start, End: tok.Span.Start}, Name: ast.NewName(ast.Absent, "")}
}

func (p *Parser) parseClassType() *ast.TypeNameNode {
	start := p.peek().Span.Start
	typ := &ast.TypeNameNode{Name: p.parseQualifiedName()}
	if p.check(TokenLT) {
		p.advance()
		for {
			if p.check(TokenQuestion) {
				p.errorf(p.peek().Span.Start, "wildcard type arguments are not supported")
				p.advance()
			} else {
				arg := p.parseType()
				if prim, ok := arg.(*ast.PrimitiveTypeNode); ok {
					p.errorf(prim.Pos(), "type argument cannot be primitive type %s", prim.Type)
				}
				typ.TypeArgs = append(typ.TypeArgs, arg)
			}
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
		if !p.expectGT() {
			p.errorf(p.peek().Span.Start, "expected >, found %s", describe(p.peek()))
		}
	}
	typ.Span = p.span(start)
	return typ
}

// expectGT consumes one '>' closing a type argument list, splitting '>>'
// and '>>>' tokens so nested lists can close together.
func (p *Parser) expectGT() bool {
	switch p.peek().Kind {
	case TokenGT:
		p.advance()
		return true
	case TokenShr:
		p.splitShiftToken(TokenGT)
		return true
	case TokenUShr:
		p.splitShiftToken(TokenShr)
		return true
	}
	return false
}

func (p *Parser) splitShiftToken(remainder TokenKind) {
	tok := p.tokens[p.pos]
	start := tok.Span.Start
	start.Offset++
	start.Column++
	p.tokens[p.pos] = Token{
		Kind:    remainder,
		Literal: tok.Literal[1:],
		Span:    ast.Span{Start: start, End: tok.Span.End},
	}
}

func (p *Parser) parseBlock() *ast.Block {
	start := p.peek().Span.Start
	block := &ast.Block{}
	p.expect(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		block.Stmts = append(block.Stmts, p.parseBlockStatement()...)
		progress()
	}
	p.expect(TokenRBrace)
	block.Span = p.span(start)
	return block
}

func (p *Parser) parseBlockStatement() []ast.Node {
	if p.isLocalVarDecl() {
		decls := p.parseLocalVarDecls()
		p.expect(TokenSemicolon)
		return decls
	}
	return []ast.Node{p.parseStatement()}
}

// isLocalVarDecl looks ahead for "Type Identifier" without consuming input.
func (p *Parser) isLocalVarDecl() bool {
	save := p.pos
	defer func() { p.pos = save }()

	if p.check(TokenFinal) {
		return true
	}
	if _, ok := primitiveTokens[p.peek().Kind]; ok {
		return !p.check(TokenVoid)
	}
	if !p.check(TokenIdent) {
		return false
	}
	p.advance()
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		p.advance()
	}
	if p.check(TokenLT) {
		p.skipTypeArguments()
	}
	for p.check(TokenLBracket) {
		p.advance()
		if !p.check(TokenRBracket) {
			return false
		}
		p.advance()
	}
	return p.check(TokenIdent)
}

func (p *Parser) skipTypeArguments() {
	p.advance()
	depth := 1
	for depth > 0 && !p.check(TokenEOF) {
		switch p.peek().Kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenUShr:
			depth -= 3
		case TokenSemicolon, TokenLBrace, TokenRBrace:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseLocalVarDecls() []ast.Node {
	start := p.peek().Span.Start
	mods := p.parseModifiers()
	if mods&^ast.ModFinal != 0 {
		p.errorf(start, "illegal modifier for local variable: %s", mods&^ast.ModFinal)
	}
	typ := p.parseType()
	p.checkNotVoid(typ)
	var decls []ast.Node
	for {
		decl := &ast.LocalVarDecl{Modifiers: mods, Init: ast.Absent}
		decl.Name = p.parseIdent()
		decl.Type = p.parseDims(typ)
		if p.check(TokenAssign) {
			p.advance()
			decl.Init = p.parseExpression()
		}
		decl.Span = p.span(start)
		decls = append(decls, decl)
		if !p.check(TokenComma) {
			return decls
		}
		p.advance()
		typ = cloneType(typ)
	}
}

func (p *Parser) parseStatement() ast.Node {
	start := p.peek().Span.Start
	switch p.peek().Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		p.advance()
		return &ast.EmptyStmt{Span: p.span(start)}
	case TokenIf:
		return p.parseIfStmt()
	case TokenWhile:
		p.advance()
		stmt := &ast.WhileStmt{}
		stmt.Cond = p.parseParenExpr()
		stmt.Body = p.parseStatement()
		stmt.Span = p.span(start)
		return stmt
	case TokenFor:
		return p.parseForStmt()
	case TokenReturn:
		p.advance()
		stmt := &ast.ReturnStmt{Expr: ast.Absent}
		if !p.check(TokenSemicolon) {
			stmt.Expr = p.parseExpression()
		}
		p.expect(TokenSemicolon)
		stmt.Span = p.span(start)
		return stmt
	}

	expr := p.parseStatementExpr()
	p.expect(TokenSemicolon)
	return &ast.ExprStmt{Span: p.span(start), Expr: expr}
}

func (p *Parser) parseStatementExpr() ast.Node {
	expr := p.parseExpression()
	switch e := expr.(type) {
	case *ast.AssignNode, *ast.MethodCallNode, *ast.AllocateNode:
		return expr
	case *ast.UnaryOpNode:
		if e.Op == "++" || e.Op == "--" {
			return expr
		}
	}
	p.errorf(expr.Pos(), "not a statement")
	return expr
}

func (p *Parser) parseIfStmt() ast.Node {
	start := p.expect(TokenIf).Span.Start
	stmt := &ast.IfStmt{Else: ast.Absent}
	stmt.Cond = p.parseParenExpr()
	stmt.Then = p.parseStatement()
	if p.check(TokenElse) {
		p.advance()
		stmt.Else = p.parseStatement()
	}
	stmt.Span = p.span(start)
	return stmt
}

func (p *Parser) parseForStmt() ast.Node {
	start := p.expect(TokenFor).Span.Start
	stmt := &ast.ForStmt{Cond: ast.Absent}
	p.expect(TokenLParen)
	if !p.check(TokenSemicolon) {
		if p.isLocalVarDecl() {
			stmt.Init = p.parseLocalVarDecls()
		} else {
			stmt.Init = p.parseStatementExprList()
		}
	}
	p.expect(TokenSemicolon)
	if !p.check(TokenSemicolon) {
		stmt.Cond = p.parseExpression()
	}
	p.expect(TokenSemicolon)
	if !p.check(TokenRParen) {
		stmt.Update = p.parseStatementExprList()
	}
	p.expect(TokenRParen)
	stmt.Body = p.parseStatement()
	stmt.Span = p.span(start)
	return stmt
}

func (p *Parser) parseStatementExprList() []ast.Node {
	var list []ast.Node
	for {
		start := p.peek().Span.Start
		expr := p.parseStatementExpr()
		list = append(list, &ast.ExprStmt{Span: p.span(start), Expr: expr})
		if !p.check(TokenComma) {
			return list
		}
		p.advance()
	}
}

func (p *Parser) parseParenExpr() ast.Node {
	p.expect(TokenLParen)
	expr := p.parseExpression()
	p.expect(TokenRParen)
	return expr
}

func (p *Parser) parseExpression() ast.Node {
	lhs := p.parseBinary(1)
	tok := p.peek()
	if !assignOps[tok.Kind] {
		return lhs
	}
	p.advance()
	switch lhs.(type) {
	case *ast.ObjectNode, *ast.ObjectFieldAccessNode, *ast.ArrayAccessNode:
	default:
		p.errorf(lhs.Pos(), "invalid assignment target")
	}
	rhs := p.parseExpression()
	return &ast.AssignNode{Span: p.span(lhs.Pos()), Op: tok.Literal, Lhs: lhs, Rhs: rhs}
}

// parseBinary is a precedence climber over binaryPrecedence; all binary
// operators associate to the left.
func (p *Parser) parseBinary(minPrec int) ast.Node {
	lhs := p.parseUnary()
	for {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		p.advance()
		rhs := p.parseBinary(prec + 1)
		lhs = &ast.BinaryOpNode{Span: p.span(lhs.Pos()), Op: tok.Literal, Lhs: lhs, Rhs: rhs}
	}
}

func (p *Parser) parseUnary() ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenPlus, TokenMinus, TokenNot, TokenBitNot, TokenIncrement, TokenDecrement:
		p.advance()
		operand := p.parseUnary()
		return &ast.UnaryOpNode{Span: p.span(tok.Span.Start), Op: tok.Literal, Operand: operand}
	case TokenLParen:
		if p.isCast() {
			return p.parseCast()
		}
	}
	return p.parsePostfix()
}

// isCast decides whether a parenthesis opens a cast rather than a
// parenthesised expression.
func (p *Parser) isCast() bool {
	save := p.pos
	defer func() { p.pos = save }()
	p.advance()

	if _, ok := primitiveTokens[p.peek().Kind]; ok {
		p.advance()
		for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
			p.advance()
			p.advance()
		}
		return p.check(TokenRParen)
	}
	if !p.check(TokenIdent) {
		return false
	}
	p.advance()
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		p.advance()
	}
	if p.check(TokenLT) {
		p.skipTypeArguments()
	}
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}
	if !p.check(TokenRParen) {
		return false
	}
	p.advance()
	switch p.peek().Kind {
	case TokenIdent, TokenThis, TokenNew, TokenLParen, TokenNot, TokenBitNot,
		TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral,
		TokenTrue, TokenFalse, TokenNull:
		return true
	}
	return false
}

func (p *Parser) parseCast() ast.Node {
	start := p.expect(TokenLParen).Span.Start
	typ := p.parseType()
	p.expect(TokenRParen)
	expr := p.parseUnary()
	return &ast.CastNode{Span: p.span(start), Type: typ, Expr: expr}
}

func (p *Parser) parsePostfix() ast.Node {
	expr := p.parsePrimary()
	for {
		start := expr.Pos()
		switch p.peek().Kind {
		case TokenDot:
			p.advance()
			name := p.parseIdent()
			if obj, ok := expr.(*ast.ObjectNode); ok {
				qualified := &ast.NameNode{Span: p.span(start), Qualifier: obj.Name, Ident: name.Ident}
				expr = &ast.ObjectNode{Span: qualified.Span, Name: qualified}
			} else {
				expr = &ast.ObjectFieldAccessNode{Span: p.span(start), Object: expr, Name: name}
			}
			if p.check(TokenLParen) {
				args := p.parseArguments()
				expr = &ast.MethodCallNode{Span: p.span(start), Method: expr, Args: args}
			}
		case TokenLBracket:
			p.advance()
			index := p.parseExpression()
			p.expect(TokenRBracket)
			expr = &ast.ArrayAccessNode{Span: p.span(start), Array: expr, Index: index}
		case TokenIncrement, TokenDecrement:
			tok := p.advance()
			expr = &ast.UnaryOpNode{Span: p.span(start), Op: tok.Literal, Postfix: true, Operand: expr}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenIntLiteral:
		p.advance()
		kind := ast.LitInt
		if strings.HasSuffix(tok.Literal, "l") || strings.HasSuffix(tok.Literal, "L") {
			kind = ast.LitLong
		}
		return &ast.LiteralNode{Span: tok.Span, Lit: kind, Text: tok.Literal}
	case TokenFloatLiteral:
		p.advance()
		kind := ast.LitDouble
		if strings.HasSuffix(tok.Literal, "f") || strings.HasSuffix(tok.Literal, "F") {
			kind = ast.LitFloat
		}
		return &ast.LiteralNode{Span: tok.Span, Lit: kind, Text: tok.Literal}
	case TokenCharLiteral:
		p.advance()
		return &ast.LiteralNode{Span: tok.Span, Lit: ast.LitChar, Text: tok.Literal}
	case TokenStringLiteral:
		p.advance()
		return &ast.LiteralNode{Span: tok.Span, Lit: ast.LitString, Text: tok.Literal}
	case TokenTrue, TokenFalse:
		p.advance()
		return &ast.LiteralNode{Span: tok.Span, Lit: ast.LitBool, Text: tok.Literal}
	case TokenNull:
		p.advance()
		return &ast.LiteralNode{Span: tok.Span, Lit: ast.LitNull, Text: tok.Literal}
	case TokenThis:
		p.advance()
		return &ast.ThisNode{Span: tok.Span}
	case TokenIdent:
		name := p.parseIdent()
		var expr ast.Node = &ast.ObjectNode{Span: name.Span, Name: name}
		if p.check(TokenLParen) {
			args := p.parseArguments()
			expr = &ast.MethodCallNode{Span: p.span(tok.Span.Start), Method: expr, Args: args}
		}
		return expr
	case TokenLParen:
		return p.parseParenExpr()
	case TokenNew:
		return p.parseNew()
	}
	p.errorf(tok.Span.Start, "expected expression, found %s", describe(tok))
	if !p.match(TokenSemicolon, TokenRParen, TokenRBrace, TokenEOF) {
		p.advance()
	}
	return &ast.LiteralNode{Span: tok.Span, Lit: ast.LitNull, Text: tok.Literal}
}

func (p *Parser) parseArguments() []ast.Node {
	var args []ast.Node
	p.expect(TokenLParen)
	if p.check(TokenRParen) {
		p.advance()
		return args
	}
	for {
		args = append(args, p.parseExpression())
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	p.expect(TokenRParen)
	return args
}

func (p *Parser) parseNew() ast.Node {
	start := p.expect(TokenNew).Span.Start
	tok := p.peek()
	if prim, ok := primitiveTokens[tok.Kind]; ok && tok.Kind != TokenVoid {
		p.advance()
		return p.parseArrayCreation(start, &ast.PrimitiveTypeNode{Span: tok.Span, Type: prim})
	}
	typ := p.parseClassType()
	if p.check(TokenLBracket) {
		return p.parseArrayCreation(start, typ)
	}
	args := p.parseArguments()
	return &ast.AllocateNode{Span: p.span(start), Type: typ, Args: args}
}

func (p *Parser) parseArrayCreation(start ast.Position, base ast.Node) ast.Node {
	alloc := &ast.AllocateArrayNode{Base: base}
	for p.check(TokenLBracket) {
		open := p.advance()
		if p.check(TokenRBracket) {
			p.advance()
			alloc.ExtraDims++
			continue
		}
		if alloc.ExtraDims > 0 {
			p.errorf(open.Span.Start, "array dimension expression after empty dimension")
		}
		alloc.Dims = append(alloc.Dims, p.parseExpression())
		p.expect(TokenRBracket)
	}
	if len(alloc.Dims) == 0 {
		p.errorf(start, "array creation requires a dimension expression")
	}
	alloc.Span = p.span(start)
	return alloc
}

// cloneType copies a type node so that declarators sharing a type
// (int a, b;) each own their subtree.
func cloneType(typ ast.Node) ast.Node {
	switch t := typ.(type) {
	case *ast.PrimitiveTypeNode:
		c := *t
		return &c
	case *ast.ArrayTypeNode:
		return &ast.ArrayTypeNode{Span: t.Span, Base: cloneType(t.Base)}
	case *ast.TypeNameNode:
		c := &ast.TypeNameNode{Span: t.Span, Name: cloneName(t.Name)}
		for _, arg := range t.TypeArgs {
			c.TypeArgs = append(c.TypeArgs, cloneType(arg))
		}
		return c
	}
	return typ
}

func cloneName(n *ast.NameNode) *ast.NameNode {
	c := &ast.NameNode{Span: n.Span, Qualifier: ast.Absent, Ident: n.Ident}
	if q := n.QualifierName(); q != nil {
		c.Qualifier = cloneName(q)
	}
	return c
}
