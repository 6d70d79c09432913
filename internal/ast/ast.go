package ast

import "github.com/stolas-lang/stolas/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Decl represents a top-level declaration in a catalog file.
type Decl interface {
	Node
	declNode()
}

// TypeExpr represents a type annotation expression.
type TypeExpr interface {
	Node
	typeNode()
}

// File represents a parsed catalog file.
type File struct {
	Decls []Decl
	span  lexer.Span
}

// Span returns the span covering the entire file.
func (f *File) Span() lexer.Span { return f.span }

// NewFile constructs a file node with the provided span.
func NewFile(span lexer.Span) *File {
	return &File{span: span}
}

// SetSpan updates the file span.
func (f *File) SetSpan(span lexer.Span) {
	f.span = span
}

// Ident represents an identifier.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// TraitRefExpr is a syntactic trait reference: a name with optional type
// arguments, e.g. Container[A].
type TraitRefExpr struct {
	Name *Ident
	Args []TypeExpr
	span lexer.Span
}

// Span returns the reference span.
func (r *TraitRefExpr) Span() lexer.Span { return r.span }

// NewTraitRefExpr constructs a trait reference node.
func NewTraitRefExpr(name *Ident, args []TypeExpr, span lexer.Span) *TraitRefExpr {
	return &TraitRefExpr{Name: name, Args: args, span: span}
}

// NamedType is a named type expression with optional arguments: int, Vec[A].
// Whether the name denotes a primitive, a nominal, or a declared type
// variable is decided during lowering, not parsing.
type NamedType struct {
	Name *Ident
	Args []TypeExpr
	span lexer.Span
}

// Span returns the type expression span.
func (t *NamedType) Span() lexer.Span { return t.span }

// NewNamedType constructs a named type node.
func NewNamedType(name *Ident, args []TypeExpr, span lexer.Span) *NamedType {
	return &NamedType{Name: name, Args: args, span: span}
}

func (*NamedType) typeNode() {}

// DynType is an erased trait instance type: dyn Eq, dyn Container[int].
type DynType struct {
	Trait *TraitRefExpr
	span  lexer.Span
}

// Span returns the type expression span.
func (t *DynType) Span() lexer.Span { return t.span }

// NewDynType constructs a dyn type node.
func NewDynType(trait *TraitRefExpr, span lexer.Span) *DynType {
	return &DynType{Trait: trait, span: span}
}

func (*DynType) typeNode() {}

// SelfTypeExpr is the Self placeholder inside trait method signatures.
type SelfTypeExpr struct {
	span lexer.Span
}

// Span returns the type expression span.
func (t *SelfTypeExpr) Span() lexer.Span { return t.span }

// NewSelfTypeExpr constructs a Self type node.
func NewSelfTypeExpr(span lexer.Span) *SelfTypeExpr {
	return &SelfTypeExpr{span: span}
}

func (*SelfTypeExpr) typeNode() {}

// MethodSig is a method signature inside a trait declaration. Only
// signatures are recorded; the engine needs them for object safety, not for
// dispatch.
type MethodSig struct {
	Name   *Ident
	Params []TypeExpr // excludes the self receiver
	Return TypeExpr   // nil for unit
	span   lexer.Span
}

// Span returns the signature span.
func (m *MethodSig) Span() lexer.Span { return m.span }

// NewMethodSig constructs a method signature node.
func NewMethodSig(name *Ident, params []TypeExpr, ret TypeExpr, span lexer.Span) *MethodSig {
	return &MethodSig{Name: name, Params: params, Return: ret, span: span}
}

// TraitDecl declares a trait: parameters, supertraits, method signatures.
type TraitDecl struct {
	Name    *Ident
	Params  []*Ident
	Supers  []*TraitRefExpr
	Methods []*MethodSig
	span    lexer.Span
}

// Span returns the declaration span.
func (d *TraitDecl) Span() lexer.Span { return d.span }

// NewTraitDecl constructs a trait declaration node.
func NewTraitDecl(name *Ident, params []*Ident, supers []*TraitRefExpr, methods []*MethodSig, span lexer.Span) *TraitDecl {
	return &TraitDecl{Name: name, Params: params, Supers: supers, Methods: methods, span: span}
}

func (*TraitDecl) declNode() {}

// TypeVarDecl declares an impl type variable with optional bounds:
// A, A: Eq, A: Eq + Ord.
type TypeVarDecl struct {
	Name   *Ident
	Bounds []*TraitRefExpr
	span   lexer.Span
}

// Span returns the declaration span.
func (d *TypeVarDecl) Span() lexer.Span { return d.span }

// NewTypeVarDecl constructs a type variable declaration node.
func NewTypeVarDecl(name *Ident, bounds []*TraitRefExpr, span lexer.Span) *TypeVarDecl {
	return &TypeVarDecl{Name: name, Bounds: bounds, span: span}
}

// ImplDecl declares an implementation: impl[vars] SelfType: TraitRef.
type ImplDecl struct {
	Vars     []*TypeVarDecl
	SelfType TypeExpr
	Trait    *TraitRefExpr
	span     lexer.Span
}

// Span returns the declaration span.
func (d *ImplDecl) Span() lexer.Span { return d.span }

// NewImplDecl constructs an impl declaration node.
func NewImplDecl(vars []*TypeVarDecl, selfType TypeExpr, trait *TraitRefExpr, span lexer.Span) *ImplDecl {
	return &ImplDecl{Vars: vars, SelfType: selfType, Trait: trait, span: span}
}

func (*ImplDecl) declNode() {}
