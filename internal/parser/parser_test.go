package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolas-lang/stolas/internal/ast"
)

func TestParseTraitDecls(t *testing.T) {
	input := `
trait Eq
trait Container[T]
trait Ord: Eq
trait Collection[T]: Container[T] + Sized
`
	p := New(input)
	file := p.ParseFile()
	require.Empty(t, p.Errors())
	require.Len(t, file.Decls, 4)

	eq := file.Decls[0].(*ast.TraitDecl)
	assert.Equal(t, "Eq", eq.Name.Name)
	assert.Empty(t, eq.Params)
	assert.Empty(t, eq.Supers)

	container := file.Decls[1].(*ast.TraitDecl)
	assert.Equal(t, "Container", container.Name.Name)
	require.Len(t, container.Params, 1)
	assert.Equal(t, "T", container.Params[0].Name)

	ord := file.Decls[2].(*ast.TraitDecl)
	require.Len(t, ord.Supers, 1)
	assert.Equal(t, "Eq", ord.Supers[0].Name.Name)

	collection := file.Decls[3].(*ast.TraitDecl)
	require.Len(t, collection.Supers, 2)
	assert.Equal(t, "Container", collection.Supers[0].Name.Name)
	require.Len(t, collection.Supers[0].Args, 1)
	assert.Equal(t, "Sized", collection.Supers[1].Name.Name)
}

func TestParseTraitDeclWithMethods(t *testing.T) {
	input := `
trait Ord: Eq {
	fn cmp(self, other: Self) -> int
	fn max(self, other: Self) -> Self
}
`
	p := New(input)
	file := p.ParseFile()
	require.Empty(t, p.Errors())
	require.Len(t, file.Decls, 1)

	ord := file.Decls[0].(*ast.TraitDecl)
	require.Len(t, ord.Methods, 2)

	cmp := ord.Methods[0]
	assert.Equal(t, "cmp", cmp.Name.Name)
	require.Len(t, cmp.Params, 1)
	_, isSelf := cmp.Params[0].(*ast.SelfTypeExpr)
	assert.True(t, isSelf)
	ret, isNamed := cmp.Return.(*ast.NamedType)
	require.True(t, isNamed)
	assert.Equal(t, "int", ret.Name.Name)

	maxSig := ord.Methods[1]
	_, isSelf = maxSig.Return.(*ast.SelfTypeExpr)
	assert.True(t, isSelf)
}

func TestParseImplDecls(t *testing.T) {
	input := `
impl int: Eq
impl[A: Eq] Vec[A]: Eq
impl[K: Eq + Hash, V] Map[K, V]: Container[V]
`
	p := New(input)
	file := p.ParseFile()
	require.Empty(t, p.Errors())
	require.Len(t, file.Decls, 3)

	plain := file.Decls[0].(*ast.ImplDecl)
	assert.Empty(t, plain.Vars)
	selfType := plain.SelfType.(*ast.NamedType)
	assert.Equal(t, "int", selfType.Name.Name)
	assert.Equal(t, "Eq", plain.Trait.Name.Name)

	vec := file.Decls[1].(*ast.ImplDecl)
	require.Len(t, vec.Vars, 1)
	assert.Equal(t, "A", vec.Vars[0].Name.Name)
	require.Len(t, vec.Vars[0].Bounds, 1)
	assert.Equal(t, "Eq", vec.Vars[0].Bounds[0].Name.Name)

	m := file.Decls[2].(*ast.ImplDecl)
	require.Len(t, m.Vars, 2)
	assert.Len(t, m.Vars[0].Bounds, 2)
	assert.Empty(t, m.Vars[1].Bounds)
	mapType := m.SelfType.(*ast.NamedType)
	require.Len(t, mapType.Args, 2)
	require.Len(t, m.Trait.Args, 1)
}

func TestParseDynType(t *testing.T) {
	p := New(`impl dyn Show: Printable`)
	file := p.ParseFile()
	require.Empty(t, p.Errors())
	require.Len(t, file.Decls, 1)

	impl := file.Decls[0].(*ast.ImplDecl)
	dyn, ok := impl.SelfType.(*ast.DynType)
	require.True(t, ok)
	assert.Equal(t, "Show", dyn.Trait.Name.Name)
}

func TestParseNestedTypeArgs(t *testing.T) {
	p := New(`impl Box[Vec[int]]: Eq`)
	file := p.ParseFile()
	require.Empty(t, p.Errors())

	impl := file.Decls[0].(*ast.ImplDecl)
	box := impl.SelfType.(*ast.NamedType)
	require.Len(t, box.Args, 1)
	vec := box.Args[0].(*ast.NamedType)
	assert.Equal(t, "Vec", vec.Name.Name)
	require.Len(t, vec.Args, 1)
}

func TestParseQuery(t *testing.T) {
	p := New(`Vec[int]: Eq`)
	recv, ref := p.ParseQuery()
	require.Empty(t, p.Errors())

	named := recv.(*ast.NamedType)
	assert.Equal(t, "Vec", named.Name.Name)
	assert.Equal(t, "Eq", ref.Name.Name)
}

func TestParseQueryTrailingInput(t *testing.T) {
	p := New(`Vec[int]: Eq junk`)
	recv, ref := p.ParseQuery()
	assert.Nil(t, recv)
	assert.Nil(t, ref)
	require.NotEmpty(t, p.Errors())
	assert.Contains(t, p.Errors()[0].Message, "unexpected input")
}

func TestParseRecoversAfterMalformedDecl(t *testing.T) {
	input := `
impl [: Eq
trait Eq
impl int: Eq
`
	p := New(input)
	file := p.ParseFile()

	require.NotEmpty(t, p.Errors())
	require.Len(t, file.Decls, 2)
	_, isTrait := file.Decls[0].(*ast.TraitDecl)
	assert.True(t, isTrait)
	_, isImpl := file.Decls[1].(*ast.ImplDecl)
	assert.True(t, isImpl)
}

func TestParseEmptyArgListRejected(t *testing.T) {
	p := New(`impl Vec[]: Eq`)
	p.ParseFile()
	require.NotEmpty(t, p.Errors())
	assert.Contains(t, p.Errors()[0].Message, "expected type expression")
}

func TestDiagnosticsCarryFilename(t *testing.T) {
	p := New(`impl ]`, WithFilename("bad.stc"))
	p.ParseFile()

	diags := p.Diagnostics()
	require.NotEmpty(t, diags)
	assert.Equal(t, "bad.stc", diags[0].Span.Filename)
}
