package format

import (
	"io"
	"strings"

	"github.com/dhamidi/javafront/java/ast"
)

// JavaEncoder prints a tree back as Java source. Layout is canonical:
// four-space indentation, one member or statement per line. Parentheses
// are inserted where operator precedence requires them.
type JavaEncoder struct {
	w      io.Writer
	sb     strings.Builder
	indent int
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(unit *ast.CompileUnit) error {
	_, err := io.WriteString(e.w, e.Source(unit))
	return err
}

// Source returns the Java text of n.
func (e *JavaEncoder) Source(n ast.Node) string {
	e.sb.Reset()
	e.indent = 0
	e.printNode(n)
	return e.sb.String()
}

const (
	precAssign  = 0
	precUnary   = 11
	precPostfix = 12
	precPrimary = 13
)

var binaryPrec = map[string]int{
	"||": 1, "&&": 2, "|": 3, "^": 4, "&": 5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8, ">>>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

func (e *JavaEncoder) write(s string) {
	e.sb.WriteString(s)
}

func (e *JavaEncoder) writeIndent() {
	e.sb.WriteString(strings.Repeat("    ", e.indent))
}

func (e *JavaEncoder) writeModifiers(mods ast.Modifier) {
	if mods != 0 {
		e.write(mods.String() + " ")
	}
}

func (e *JavaEncoder) printNode(n ast.Node) {
	switch n := n.(type) {
	case *ast.CompileUnit:
		e.printCompileUnit(n)
	case *ast.ClassDecl, *ast.InterfaceDecl:
		e.printTypeDecl(n)
	case *ast.FieldDecl, *ast.MethodDecl, *ast.ConstructorDecl:
		e.printMember(n)
	case *ast.Block, *ast.LocalVarDecl, *ast.ExprStmt, *ast.ReturnStmt,
		*ast.IfStmt, *ast.WhileStmt, *ast.ForStmt, *ast.EmptyStmt:
		e.printStmt(n)
	case *ast.PrimitiveTypeNode, *ast.TypeNameNode, *ast.ArrayTypeNode:
		e.printType(n)
	default:
		e.printExpr(n, precAssign)
	}
}

func (e *JavaEncoder) printCompileUnit(n *ast.CompileUnit) {
	if name := n.PackageName(); name != nil {
		e.write("package " + name.String() + ";\n\n")
	}
	for _, imp := range n.Imports {
		switch imp := imp.(type) {
		case *ast.ImportNode:
			e.write("import " + imp.Name.String() + ";\n")
		case *ast.ImportOnDemandNode:
			e.write("import " + imp.Name.String() + ".*;\n")
		}
	}
	if len(n.Imports) > 0 {
		e.write("\n")
	}
	for i, t := range n.Types {
		if i > 0 {
			e.write("\n")
		}
		e.printTypeDecl(t)
	}
}

func (e *JavaEncoder) printTypeDecl(n ast.Node) {
	e.writeIndent()
	switch n := n.(type) {
	case *ast.ClassDecl:
		e.writeModifiers(n.Modifiers)
		e.write("class " + n.Name.Ident)
		if !ast.IsAbsent(n.Super) {
			e.write(" extends ")
			e.printType(n.Super)
		}
		e.printTypeList(" implements ", n.Interfaces)
	case *ast.InterfaceDecl:
		e.writeModifiers(n.Modifiers)
		e.write("interface " + n.Name.Ident)
		e.printTypeList(" extends ", n.Extends)
	}
	e.write(" {\n")
	e.indent++
	for i, m := range ast.TypeDeclMembers(n) {
		if i > 0 && !isField(m) {
			e.write("\n")
		}
		e.printMember(m)
	}
	e.indent--
	e.writeIndent()
	e.write("}\n")
}

func isField(n ast.Node) bool {
	_, ok := n.(*ast.FieldDecl)
	return ok
}

func (e *JavaEncoder) printTypeList(keyword string, types []ast.Node) {
	if len(types) == 0 {
		return
	}
	e.write(keyword)
	for i, t := range types {
		if i > 0 {
			e.write(", ")
		}
		e.printType(t)
	}
}

func (e *JavaEncoder) printMember(n ast.Node) {
	e.writeIndent()
	switch n := n.(type) {
	case *ast.FieldDecl:
		e.writeModifiers(n.Modifiers)
		e.printType(n.Type)
		e.write(" " + n.Name.Ident)
		if !ast.IsAbsent(n.Init) {
			e.write(" = ")
			e.printExpr(n.Init, precAssign)
		}
		e.write(";\n")
	case *ast.MethodDecl:
		e.writeModifiers(n.Modifiers)
		e.printType(n.ReturnType)
		e.write(" " + n.Name.Ident)
		e.printParams(n.Params)
		e.printTypeList(" throws ", n.Throws)
		if ast.IsAbsent(n.Body) {
			e.write(";\n")
			return
		}
		e.write(" ")
		e.printBlock(n.Body.(*ast.Block))
		e.write("\n")
	case *ast.ConstructorDecl:
		e.writeModifiers(n.Modifiers)
		e.write(n.Name.Ident)
		e.printParams(n.Params)
		e.printTypeList(" throws ", n.Throws)
		e.write(" ")
		e.printBlock(n.Body)
		e.write("\n")
	}
}

func (e *JavaEncoder) printParams(params []*ast.ParameterNode) {
	e.write("(")
	for i, p := range params {
		if i > 0 {
			e.write(", ")
		}
		e.writeModifiers(p.Modifiers)
		e.printType(p.Type)
		e.write(" " + p.Name.Ident)
	}
	e.write(")")
}

func (e *JavaEncoder) printType(n ast.Node) {
	switch n := n.(type) {
	case *ast.PrimitiveTypeNode:
		e.write(n.Type.String())
	case *ast.ArrayTypeNode:
		e.printType(n.Base)
		e.write("[]")
	case *ast.TypeNameNode:
		e.write(n.Name.String())
		if len(n.TypeArgs) > 0 {
			e.write("<")
			for i, arg := range n.TypeArgs {
				if i > 0 {
					e.write(", ")
				}
				e.printType(arg)
			}
			e.write(">")
		}
	}
}

// printBlock writes a block starting at the current column and ending
// after its closing brace.
func (e *JavaEncoder) printBlock(n *ast.Block) {
	if len(n.Stmts) == 0 {
		e.write("{\n")
		e.writeIndent()
		e.write("}")
		return
	}
	e.write("{\n")
	e.indent++
	for _, s := range n.Stmts {
		e.printStmt(s)
	}
	e.indent--
	e.writeIndent()
	e.write("}")
}

func (e *JavaEncoder) printStmt(n ast.Node) {
	e.writeIndent()
	e.printStmtBody(n)
	e.write("\n")
}

// printStmtBody writes a statement without leading indentation or
// trailing newline.
func (e *JavaEncoder) printStmtBody(n ast.Node) {
	switch n := n.(type) {
	case *ast.Block:
		e.printBlock(n)
	case *ast.LocalVarDecl:
		e.printLocal(n, true)
		e.write(";")
	case *ast.ExprStmt:
		e.printExpr(n.Expr, precAssign)
		e.write(";")
	case *ast.ReturnStmt:
		e.write("return")
		if !ast.IsAbsent(n.Expr) {
			e.write(" ")
			e.printExpr(n.Expr, precAssign)
		}
		e.write(";")
	case *ast.IfStmt:
		e.write("if (")
		e.printExpr(n.Cond, precAssign)
		e.write(")")
		e.printBody(n.Then)
		if !ast.IsAbsent(n.Else) {
			if _, ok := n.Then.(*ast.Block); ok {
				e.write(" else")
			} else {
				e.write("\n")
				e.writeIndent()
				e.write("else")
			}
			if _, ok := n.Else.(*ast.IfStmt); ok {
				e.write(" ")
				e.printStmtBody(n.Else)
			} else {
				e.printBody(n.Else)
			}
		}
	case *ast.WhileStmt:
		e.write("while (")
		e.printExpr(n.Cond, precAssign)
		e.write(")")
		e.printBody(n.Body)
	case *ast.ForStmt:
		e.write("for (")
		for i, init := range n.Init {
			switch init := init.(type) {
			case *ast.LocalVarDecl:
				if i > 0 {
					e.write(", ")
				}
				e.printLocal(init, i == 0)
			case *ast.ExprStmt:
				if i > 0 {
					e.write(", ")
				}
				e.printExpr(init.Expr, precAssign)
			}
		}
		e.write(";")
		if !ast.IsAbsent(n.Cond) {
			e.write(" ")
			e.printExpr(n.Cond, precAssign)
		}
		e.write(";")
		for i, update := range n.Update {
			if i == 0 {
				e.write(" ")
			} else {
				e.write(", ")
			}
			if stmt, ok := update.(*ast.ExprStmt); ok {
				e.printExpr(stmt.Expr, precAssign)
			}
		}
		e.write(")")
		e.printBody(n.Body)
	case *ast.EmptyStmt:
		e.write(";")
	}
}

// printBody writes the body of a compound statement: blocks stay on the
// same line, other statements go on their own indented line.
func (e *JavaEncoder) printBody(n ast.Node) {
	if block, ok := n.(*ast.Block); ok {
		e.write(" ")
		e.printBlock(block)
		return
	}
	e.write("\n")
	e.indent++
	e.writeIndent()
	e.printStmtBody(n)
	e.indent--
}

func (e *JavaEncoder) printLocal(n *ast.LocalVarDecl, withType bool) {
	if withType {
		e.writeModifiers(n.Modifiers)
		e.printType(n.Type)
		e.write(" ")
	}
	e.write(n.Name.Ident)
	if !ast.IsAbsent(n.Init) {
		e.write(" = ")
		e.printExpr(n.Init, precAssign)
	}
}

func exprPrec(n ast.Node) int {
	switch n := n.(type) {
	case *ast.AssignNode:
		return precAssign
	case *ast.BinaryOpNode:
		return binaryPrec[n.Op]
	case *ast.UnaryOpNode:
		if n.Postfix {
			return precPostfix
		}
		return precUnary
	case *ast.CastNode:
		return precUnary
	}
	return precPrimary
}

// printExpr writes n, parenthesized when it binds less tightly than min.
func (e *JavaEncoder) printExpr(n ast.Node, min int) {
	if exprPrec(n) < min {
		e.write("(")
		defer e.write(")")
	}
	switch n := n.(type) {
	case *ast.LiteralNode:
		e.write(n.Text)
	case *ast.ThisNode:
		e.write("this")
	case *ast.ObjectNode:
		e.write(n.Name.String())
	case *ast.ObjectFieldAccessNode:
		e.printExpr(n.Object, precPostfix)
		e.write("." + n.Name.Ident)
	case *ast.MethodCallNode:
		e.printExpr(n.Method, precPostfix)
		e.printArgs(n.Args)
	case *ast.AllocateNode:
		e.write("new ")
		e.printType(n.Type)
		e.printArgs(n.Args)
	case *ast.AllocateArrayNode:
		e.write("new ")
		e.printType(n.Base)
		for _, dim := range n.Dims {
			e.write("[")
			e.printExpr(dim, precAssign)
			e.write("]")
		}
		e.write(strings.Repeat("[]", n.ExtraDims))
	case *ast.ArrayAccessNode:
		e.printExpr(n.Array, precPostfix)
		e.write("[")
		e.printExpr(n.Index, precAssign)
		e.write("]")
	case *ast.AssignNode:
		e.printExpr(n.Lhs, precPostfix)
		e.write(" " + n.Op + " ")
		e.printExpr(n.Rhs, precAssign)
	case *ast.BinaryOpNode:
		prec := binaryPrec[n.Op]
		e.printExpr(n.Lhs, prec)
		e.write(" " + n.Op + " ")
		e.printExpr(n.Rhs, prec+1)
	case *ast.UnaryOpNode:
		if n.Postfix {
			e.printExpr(n.Operand, precPostfix)
			e.write(n.Op)
			return
		}
		e.write(n.Op)
		if inner, ok := n.Operand.(*ast.UnaryOpNode); ok && !inner.Postfix && inner.Op[0] == n.Op[0] {
			e.write(" ")
		}
		e.printExpr(n.Operand, precUnary)
	case *ast.CastNode:
		e.write("(")
		e.printType(n.Type)
		e.write(") ")
		e.printExpr(n.Expr, precUnary)
	}
}

func (e *JavaEncoder) printArgs(args []ast.Node) {
	e.write("(")
	for i, arg := range args {
		if i > 0 {
			e.write(", ")
		}
		e.printExpr(arg, precAssign)
	}
	e.write(")")
}
