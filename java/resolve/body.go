package resolve

import (
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// bodyResolver resolves the member bodies of one unit. args[0] always
// holds the *sema.Environ of the scope being visited. Expression visits
// return the static *sema.Type of the expression, or nil when unknown.
type bodyResolver struct {
	ast.DefaultVisitor
	c    *Context
	u    *unit
	self *sema.TypeDecl
}

func (c *Context) resolveBodies(u *unit) {
	r := &bodyResolver{DefaultVisitor: ast.DefaultVisitor{Mode: ast.Custom}, c: c, u: u}
	env := c.Props.Environ(u.tree)
	ast.WalkList(r, u.tree.Types, ast.Args{env})
}

func envOf(args ast.Args) *sema.Environ {
	return args.Arg(0).(*sema.Environ)
}

func (r *bodyResolver) walk(n ast.Node, env *sema.Environ) *sema.Type {
	t, _ := ast.Walk(r, n, ast.Args{env}).(*sema.Type)
	return t
}

func (r *bodyResolver) walkAll(nodes []ast.Node, env *sema.Environ) []*sema.Type {
	types := make([]*sema.Type, len(nodes))
	for i, n := range nodes {
		types[i] = r.walk(n, env)
	}
	return types
}

func (r *bodyResolver) typed(n ast.Node, t *sema.Type) any {
	if t == nil {
		return nil
	}
	r.c.Props.SetType(n, t)
	return t
}

// classEnv binds the members inherited by t, then t's own members, so
// that own members shadow inherited ones and nearer supertypes shadow
// farther ones.
func (r *bodyResolver) classEnv(t *sema.TypeDecl, parent *sema.Environ) *sema.Environ {
	var chain []*sema.TypeDecl
	visited := map[*sema.TypeDecl]bool{t: true}
	queue := t.Supertypes()
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if visited[s] {
			continue
		}
		visited[s] = true
		chain = append(chain, s)
		queue = append(queue, s.Supertypes()...)
	}

	env := sema.NewEnviron(parent)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, d := range chain[i].Scope.Decls() {
			if d.Category() != sema.CategoryConstructor {
				env.Add(d)
			}
		}
	}
	env.CopyDeclList(t.Scope)
	return env
}

func (r *bodyResolver) visitType(n ast.Node, name *ast.NameNode, members []ast.Node, args ast.Args) any {
	t, ok := r.c.Props.Decl(name).(*sema.TypeDecl)
	if !ok {
		return nil
	}
	r.self = t
	env := r.classEnv(t, envOf(args))
	r.c.Props.SetEnviron(n, env)
	ast.WalkList(r, members, ast.Args{env})
	return nil
}

func (r *bodyResolver) VisitClassDecl(n *ast.ClassDecl, args ast.Args) any {
	return r.visitType(n, n.Name, n.Members, args)
}

func (r *bodyResolver) VisitInterfaceDecl(n *ast.InterfaceDecl, args ast.Args) any {
	return r.visitType(n, n.Name, n.Members, args)
}

func (r *bodyResolver) VisitFieldDecl(n *ast.FieldDecl, args ast.Args) any {
	r.walk(n.Init, envOf(args))
	return nil
}

func (r *bodyResolver) methodEnv(n ast.Node, name *ast.NameNode, parent *sema.Environ) *sema.Environ {
	env := sema.NewEnviron(parent)
	if m, ok := r.c.Props.Decl(name).(*sema.MemberDecl); ok {
		for _, p := range m.Params {
			env.Add(p)
		}
	}
	r.c.Props.SetEnviron(n, env)
	return env
}

func (r *bodyResolver) VisitMethodDecl(n *ast.MethodDecl, args ast.Args) any {
	env := r.methodEnv(n, n.Name, envOf(args))
	r.walk(n.Body, env)
	return nil
}

func (r *bodyResolver) VisitConstructorDecl(n *ast.ConstructorDecl, args ast.Args) any {
	env := r.methodEnv(n, n.Name, envOf(args))
	if n.Body != nil {
		r.walk(n.Body, env)
	}
	return nil
}

func (r *bodyResolver) VisitBlock(n *ast.Block, args ast.Args) any {
	env := sema.NewEnviron(envOf(args))
	r.c.Props.SetEnviron(n, env)
	r.walkAll(n.Stmts, env)
	return nil
}

// VisitLocalVarDecl binds the variable in the enclosing block's scope, so
// it is visible to the statements that follow it and to its own
// initializer.
func (r *bodyResolver) VisitLocalVarDecl(n *ast.LocalVarDecl, args ast.Args) any {
	env := envOf(args)
	d := sema.NewLocalDecl(n.Name.Ident, sema.CategoryLocal, n)
	d.TypeNode = n.Type
	d.Modifiers = n.Modifiers
	d.Type = r.c.resolveType(r.u, n.Type, env)
	env.Add(d)
	r.c.Props.SetDecl(n.Name, d)
	r.walk(n.Init, env)
	return nil
}

func (r *bodyResolver) VisitExprStmt(n *ast.ExprStmt, args ast.Args) any {
	r.walk(n.Expr, envOf(args))
	return nil
}

func (r *bodyResolver) VisitReturn(n *ast.ReturnStmt, args ast.Args) any {
	r.walk(n.Expr, envOf(args))
	return nil
}

func (r *bodyResolver) VisitIf(n *ast.IfStmt, args ast.Args) any {
	env := envOf(args)
	r.walk(n.Cond, env)
	r.walk(n.Then, env)
	r.walk(n.Else, env)
	return nil
}

func (r *bodyResolver) VisitWhile(n *ast.WhileStmt, args ast.Args) any {
	env := envOf(args)
	r.walk(n.Cond, env)
	r.walk(n.Body, env)
	return nil
}

func (r *bodyResolver) VisitFor(n *ast.ForStmt, args ast.Args) any {
	env := sema.NewEnviron(envOf(args))
	r.c.Props.SetEnviron(n, env)
	r.walkAll(n.Init, env)
	r.walk(n.Cond, env)
	r.walkAll(n.Update, env)
	r.walk(n.Body, env)
	return nil
}

func (r *bodyResolver) VisitEmptyStmt(n *ast.EmptyStmt, args ast.Args) any {
	return nil
}

func (r *bodyResolver) VisitPrimitiveType(n *ast.PrimitiveTypeNode, args ast.Args) any {
	return r.c.resolveType(r.u, n, envOf(args))
}

func (r *bodyResolver) VisitTypeName(n *ast.TypeNameNode, args ast.Args) any {
	return r.c.resolveType(r.u, n, envOf(args))
}

func (r *bodyResolver) VisitArrayType(n *ast.ArrayTypeNode, args ast.Args) any {
	return r.c.resolveType(r.u, n, envOf(args))
}

func (r *bodyResolver) VisitLiteral(n *ast.LiteralNode, args ast.Args) any {
	var t *sema.Type
	switch n.Lit {
	case ast.LitInt:
		t = sema.PrimitiveType(ast.PrimInt)
	case ast.LitLong:
		t = sema.PrimitiveType(ast.PrimLong)
	case ast.LitFloat:
		t = sema.PrimitiveType(ast.PrimFloat)
	case ast.LitDouble:
		t = sema.PrimitiveType(ast.PrimDouble)
	case ast.LitChar:
		t = sema.PrimitiveType(ast.PrimChar)
	case ast.LitBool:
		t = sema.PrimitiveType(ast.PrimBoolean)
	case ast.LitNull:
		t = sema.NullType
	case ast.LitString:
		if s := r.c.StringType(); s != nil {
			t = sema.ClassType(s)
		}
	}
	return r.typed(n, t)
}

func (r *bodyResolver) VisitThis(n *ast.ThisNode, args ast.Args) any {
	if r.self == nil {
		return nil
	}
	return r.typed(n, sema.ClassType(r.self))
}

func (r *bodyResolver) VisitObject(n *ast.ObjectNode, args ast.Args) any {
	d := ResolveName(r.c.Props, n.Name, envOf(args), sema.CategoryVariable)
	if d == nil {
		r.c.unresolved(r.u, n.Name, sema.CategoryVariable)
		return nil
	}
	t, _ := sema.TypeOf(d)
	return r.typed(n, t)
}

func (r *bodyResolver) VisitObjectFieldAccess(n *ast.ObjectFieldAccessNode, args ast.Args) any {
	errs := len(r.u.errs)
	recv := r.walk(n.Object, envOf(args))
	if recv == nil {
		r.untypedReceiver(n.Name, sema.CategoryField, errs)
		return nil
	}
	d := memberOfType(recv, n.Name.Ident, sema.CategoryField)
	if d == nil {
		r.c.unresolved(r.u, n.Name, sema.CategoryField)
		return nil
	}
	r.c.Props.SetDecl(n.Name, d)
	t, _ := sema.TypeOf(d)
	return r.typed(n, t)
}

// untypedReceiver handles a member selected from a receiver whose type is
// unknown. The member is reported unless walking the receiver already
// reported an error, which errs is the count from before.
func (r *bodyResolver) untypedReceiver(name *ast.NameNode, cat sema.Category, errs int) {
	if len(r.u.errs) > errs {
		r.c.reported[name] = true
		return
	}
	r.c.unresolved(r.u, name, cat)
}

func (r *bodyResolver) VisitMethodCall(n *ast.MethodCallNode, args ast.Args) any {
	env := envOf(args)
	argTypes := r.walkAll(n.Args, env)

	var (
		name       *ast.NameNode
		candidates []sema.Decl
	)
	switch m := n.Method.(type) {
	case *ast.ObjectNode:
		name = m.Name
		q := name.QualifierName()
		if q == nil {
			candidates = env.LookupAll(name.Ident, sema.CategoryMethod)
			break
		}
		prefix := lookupChain(q, env, qualifierCategory(sema.CategoryMethod))
		if prefix == nil {
			r.c.unresolved(r.u, q, qualifierCategory(sema.CategoryMethod))
			r.c.reported[name] = true
			return nil
		}
		bindChain(r.c.Props, q, prefix)
		candidates = methodsOf(prefix[len(prefix)-1], name.Ident)
	case *ast.ObjectFieldAccessNode:
		name = m.Name
		errs := len(r.u.errs)
		recv := r.walk(m.Object, env)
		if recv == nil {
			r.untypedReceiver(name, sema.CategoryMethod, errs)
			return nil
		}
		if recv.Kind == sema.TypeClass {
			candidates = recv.Decl.LookupMembers(name.Ident, sema.CategoryMethod)
		}
	default:
		return nil
	}

	method := chooseMethod(candidates, argTypes)
	if method == nil {
		r.c.unresolved(r.u, name, sema.CategoryMethod)
		return nil
	}
	r.c.Props.SetDecl(name, method)
	return r.typed(n, method.Type)
}

// methodsOf returns the methods called ident that can be invoked through
// d, which is a type (static call) or a variable (instance call).
func methodsOf(d sema.Decl, ident string) []sema.Decl {
	switch d := d.(type) {
	case *sema.TypeDecl:
		return d.LookupMembers(ident, sema.CategoryMethod)
	case *sema.PackageDecl:
		return nil
	}
	if t, ok := sema.TypeOf(d); ok && t.Kind == sema.TypeClass {
		return t.Decl.LookupMembers(ident, sema.CategoryMethod)
	}
	return nil
}

func (r *bodyResolver) VisitAllocate(n *ast.AllocateNode, args ast.Args) any {
	env := envOf(args)
	argTypes := r.walkAll(n.Args, env)
	t := r.c.resolveType(r.u, n.Type, env)
	if t == nil {
		return nil
	}
	ctors := t.Decl.Scope.LookupAllLocal(t.Decl.Name(), sema.CategoryConstructor)
	if ctor := chooseMethod(ctors, argTypes); ctor != nil {
		r.c.Props.SetDecl(n, ctor)
	}
	return r.typed(n, t)
}

func (r *bodyResolver) VisitAllocateArray(n *ast.AllocateArrayNode, args ast.Args) any {
	env := envOf(args)
	r.walkAll(n.Dims, env)
	t := r.c.resolveType(r.u, n.Base, env)
	if t == nil {
		return nil
	}
	for i := 0; i < len(n.Dims)+n.ExtraDims; i++ {
		t = sema.ArrayOf(t)
	}
	return r.typed(n, t)
}

func (r *bodyResolver) VisitArrayAccess(n *ast.ArrayAccessNode, args ast.Args) any {
	env := envOf(args)
	array := r.walk(n.Array, env)
	r.walk(n.Index, env)
	if array == nil || array.Kind != sema.TypeArray {
		return nil
	}
	return r.typed(n, array.Elem)
}

func (r *bodyResolver) VisitAssign(n *ast.AssignNode, args ast.Args) any {
	env := envOf(args)
	lhs := r.walk(n.Lhs, env)
	r.walk(n.Rhs, env)
	return r.typed(n, lhs)
}

func (r *bodyResolver) VisitBinaryOp(n *ast.BinaryOpNode, args ast.Args) any {
	env := envOf(args)
	lhs := r.walk(n.Lhs, env)
	rhs := r.walk(n.Rhs, env)
	return r.typed(n, r.binaryType(n.Op, lhs, rhs))
}

func (r *bodyResolver) binaryType(op string, lhs, rhs *sema.Type) *sema.Type {
	boolean := sema.PrimitiveType(ast.PrimBoolean)
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return boolean
	case "+":
		if str := r.c.StringType(); str != nil && (isClass(lhs, str) || isClass(rhs, str)) {
			return sema.ClassType(str)
		}
	case "<<", ">>", ">>>":
		return sema.Promote(lhs, sema.PrimitiveType(ast.PrimInt))
	case "&", "|", "^":
		if lhs.IsPrimitive(ast.PrimBoolean) && rhs.IsPrimitive(ast.PrimBoolean) {
			return boolean
		}
	}
	return sema.Promote(lhs, rhs)
}

func isClass(t *sema.Type, d *sema.TypeDecl) bool {
	return t != nil && t.Kind == sema.TypeClass && t.Decl == d
}

func (r *bodyResolver) VisitUnaryOp(n *ast.UnaryOpNode, args ast.Args) any {
	t := r.walk(n.Operand, envOf(args))
	switch n.Op {
	case "!":
		t = sema.PrimitiveType(ast.PrimBoolean)
	case "-", "+", "~":
		t = sema.Promote(t, sema.PrimitiveType(ast.PrimInt))
	}
	return r.typed(n, t)
}

func (r *bodyResolver) VisitCast(n *ast.CastNode, args ast.Args) any {
	env := envOf(args)
	r.walk(n.Expr, env)
	return r.typed(n, r.c.resolveType(r.u, n.Type, env))
}
