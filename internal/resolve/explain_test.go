package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolas-lang/stolas/internal/types"
)

func TestExplainNegative(t *testing.T) {
	out := Explain(types.TypeInt, types.Ref("Container"), Resolution{})
	assert.Equal(t, "int: Container => no\n", out)
}

func TestExplainImplWithObligations(t *testing.T) {
	c := NewCatalog()
	declareTraits(c, "Eq")
	c.Register(Impl{
		Vars:  []TypeVar{{Name: "A", Bounds: []types.TraitRef{types.Ref("Eq")}}},
		Self:  types.App("Vec", types.Var("A")),
		Trait: types.Ref("Eq"),
	})
	c.Register(Impl{Self: types.TypeInt, Trait: types.Ref("Eq")})
	e := newEngine(t, c)

	receiver := types.App("Vec", types.App("Vec", types.TypeInt))
	res, err := e.Implements(receiver, types.Ref("Eq"))
	require.NoError(t, err)
	require.True(t, res.Implemented)

	out := Explain(receiver, types.Ref("Eq"), res)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Vec[Vec[int]]: Eq => yes", lines[0])
	assert.Equal(t, "  via impl[A: Eq] Vec[A]: Eq with A = Vec[int]", lines[1])
	assert.Equal(t, "  Vec[int]: Eq => yes", lines[2])
	assert.Equal(t, "    via impl[A: Eq] Vec[A]: Eq with A = int", lines[3])
	assert.Equal(t, "    int: Eq => yes", lines[4])
	assert.Equal(t, "      via impl int: Eq", lines[5])
}

func TestExplainTraitObject(t *testing.T) {
	c := NewCatalog()
	declareTraits(c, "Show")
	e := newEngine(t, c)

	obj := &types.TraitObject{Trait: types.Ref("Show")}
	res, err := e.Implements(obj, types.Ref("Show"))
	require.NoError(t, err)

	out := Explain(obj, types.Ref("Show"), res)
	assert.Contains(t, out, "dyn Show: Show => yes")
	assert.Contains(t, out, "the receiver is an instance of the trait")
}

func TestExplainBound(t *testing.T) {
	c := NewCatalog()
	declareTraits(c, "Ord")
	e := newEngine(t, c)

	param := &types.Param{Name: "T", Bounds: []types.TraitRef{types.Ref("Ord")}}
	res, err := e.Implements(param, types.Ref("Ord"))
	require.NoError(t, err)

	out := Explain(param, types.Ref("Ord"), res)
	assert.Contains(t, out, "T: Ord: Ord => yes")
	assert.Contains(t, out, "satisfied by a declared parameter bound")
}
