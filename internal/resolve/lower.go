package resolve

import (
	"github.com/stolas-lang/stolas/internal/ast"
	"github.com/stolas-lang/stolas/internal/diag"
	"github.com/stolas-lang/stolas/internal/lexer"
	"github.com/stolas-lang/stolas/internal/types"
)

var primitives = map[string]*types.Primitive{
	"int":   types.TypeInt,
	"float": types.TypeFloat,
	"bool":  types.TypeBool,
	"str":   types.TypeStr,
	"unit":  types.TypeUnit,
}

// AddFile lowers a parsed catalog file into the catalog. Trait declarations
// are processed before impls so an impl may reference a trait declared later
// in the same file. Lowering problems are reported as registration
// diagnostics alongside the validity checks.
func (c *Catalog) AddFile(file *ast.File) {
	for _, decl := range file.Decls {
		if td, ok := decl.(*ast.TraitDecl); ok {
			c.lowerTraitDecl(td)
		}
	}
	for _, decl := range file.Decls {
		if id, ok := decl.(*ast.ImplDecl); ok {
			c.lowerImplDecl(id)
		}
	}
}

// LowerQuery lowers a query's receiver type and trait reference. Queries
// have no declared variables, so every identifier is a primitive or a
// nominal type. Reported problems carry the query stage.
func (c *Catalog) LowerQuery(recv ast.TypeExpr, ref *ast.TraitRefExpr) (types.Type, types.TraitRef, []diag.Diagnostic) {
	l := &lowerer{stage: diag.StageQuery}
	t := l.lowerType(recv)
	r := l.lowerTraitRef(ref)
	return t, r, l.diags
}

// lowerer converts type expressions against a scope of declared names.
type lowerer struct {
	stage diag.Stage

	params    map[string]*types.Param // impl variables or trait parameters
	allowSelf bool                    // Self is only legal in trait method signatures

	diags []diag.Diagnostic
}

func (l *lowerer) report(code diag.Code, span lexer.Span, format string, args ...any) {
	l.diags = append(l.diags, diag.Errorf(l.stage, code, diag.Span{
		Filename: span.Filename,
		Line:     span.Line,
		Column:   span.Column,
		Start:    span.Start,
		End:      span.End,
	}, format, args...))
}

func (c *Catalog) lowerTraitDecl(td *ast.TraitDecl) {
	l := &lowerer{
		stage:     diag.StageRegister,
		params:    make(map[string]*types.Param),
		allowSelf: true,
	}

	t := &types.Trait{Name: td.Name.Name}
	for _, p := range td.Params {
		t.Params = append(t.Params, p.Name)
		l.params[p.Name] = types.Var(p.Name)
	}

	for _, sup := range td.Supers {
		t.Supers = append(t.Supers, l.lowerTraitRef(sup))
	}

	for _, sig := range td.Methods {
		m := types.Method{Name: sig.Name.Name}
		for _, p := range sig.Params {
			m.Params = append(m.Params, l.lowerType(p))
		}
		if sig.Return != nil {
			m.Return = l.lowerType(sig.Return)
		}
		t.Methods = append(t.Methods, m)
	}

	c.diags = append(c.diags, l.diags...)
	c.declareTraitAt(t, astSpan(td.Span()))
}

func (c *Catalog) lowerImplDecl(id *ast.ImplDecl) {
	l := &lowerer{
		stage:  diag.StageRegister,
		params: make(map[string]*types.Param),
	}

	im := Impl{Pos: astSpan(id.Span())}

	// Bind variable names first so bounds and the self type can refer to
	// any declared variable, then lower the bounds.
	for _, v := range id.Vars {
		l.params[v.Name.Name] = types.Var(v.Name.Name)
	}
	for _, v := range id.Vars {
		tv := TypeVar{Name: v.Name.Name}
		for _, b := range v.Bounds {
			tv.Bounds = append(tv.Bounds, l.lowerTraitRef(b))
		}
		im.Vars = append(im.Vars, tv)
	}

	im.Self = l.lowerType(id.SelfType)
	im.Trait = l.lowerTraitRef(id.Trait)

	c.diags = append(c.diags, l.diags...)
	if diag.HasErrors(l.diags) {
		return
	}
	c.Register(im)
}

func (l *lowerer) lowerType(expr ast.TypeExpr) types.Type {
	switch expr := expr.(type) {
	case *ast.NamedType:
		name := expr.Name.Name
		if param, ok := l.params[name]; ok {
			if len(expr.Args) > 0 {
				l.report(diag.CodeUnknownParameter, expr.Span(),
					"type variable %s cannot take arguments", name)
				return param
			}
			return param
		}
		if prim, ok := primitives[name]; ok {
			if len(expr.Args) > 0 {
				l.report(diag.CodeUnknownParameter, expr.Span(),
					"primitive type %s cannot take arguments", name)
				return prim
			}
			return prim
		}
		args := make([]types.Type, 0, len(expr.Args))
		for _, a := range expr.Args {
			args = append(args, l.lowerType(a))
		}
		return &types.Apply{Name: name, Args: args}
	case *ast.DynType:
		return &types.TraitObject{Trait: l.lowerTraitRef(expr.Trait)}
	case *ast.SelfTypeExpr:
		if !l.allowSelf {
			l.report(diag.CodeUnknownParameter, expr.Span(),
				"Self is only allowed inside trait method signatures")
		}
		return &types.SelfType{}
	default:
		return types.TypeUnit
	}
}

func (l *lowerer) lowerTraitRef(ref *ast.TraitRefExpr) types.TraitRef {
	out := types.TraitRef{Name: ref.Name.Name}
	for _, a := range ref.Args {
		out.Args = append(out.Args, l.lowerType(a))
	}
	return out
}

func astSpan(span lexer.Span) diag.Span {
	return diag.Span{
		Filename: span.Filename,
		Line:     span.Line,
		Column:   span.Column,
		Start:    span.Start,
		End:      span.End,
	}
}
