package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepth(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want int
	}{
		{"primitive", TypeInt, 1},
		{"bare param", Var("A"), 1},
		{"bare nominal", Named("Sink"), 1},
		{"vec of int", App("Vec", TypeInt), 2},
		{"box box box int", App("Box", App("Box", App("Box", TypeInt))), 4},
		{"pair mixed", App("Pair", TypeInt, App("Vec", TypeStr)), 3},
		{"dyn with arg", &TraitObject{Trait: Ref("Container", App("Vec", TypeInt))}, 3},
		{"self", &SelfType{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Depth(tt.typ))
		})
	}
}

func TestSize(t *testing.T) {
	assert.Equal(t, 1, Size(TypeInt))
	assert.Equal(t, 2, Size(App("Vec", Var("A"))))
	assert.Equal(t, 4, Size(App("Map", Var("K"), App("Vec", Var("V")))))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(App("Vec", TypeInt), App("Vec", TypeInt)))
	assert.False(t, Equal(App("Vec", TypeInt), App("Vec", TypeStr)))
	assert.False(t, Equal(App("Vec", TypeInt), App("Box", TypeInt)))
	assert.False(t, Equal(Named("Vec"), App("Vec", TypeInt)))
	assert.True(t, Equal(Var("A"), Var("A")))
	assert.False(t, Equal(Var("A"), Var("B")))
	assert.True(t, Equal(&TraitObject{Trait: Ref("Eq")}, &TraitObject{Trait: Ref("Eq")}))
	assert.False(t, Equal(&TraitObject{Trait: Ref("Eq")}, &TraitObject{Trait: Ref("Ord")}))

	// Bounds are not part of parameter identity.
	bounded := &Param{Name: "A", Bounds: []TraitRef{Ref("Eq")}}
	assert.True(t, Equal(bounded, Var("A")))
}

func TestString(t *testing.T) {
	assert.Equal(t, "Vec[int]", App("Vec", TypeInt).String())
	assert.Equal(t, "Map[str, Vec[int]]", App("Map", TypeStr, App("Vec", TypeInt)).String())
	assert.Equal(t, "dyn Eq", (&TraitObject{Trait: Ref("Eq")}).String())
	assert.Equal(t, "Container[int]", Ref("Container", TypeInt).String())
	assert.Equal(t, "trait Container[T]", (&Trait{Name: "Container", Params: []string{"T"}}).String())
}

func TestOccurs(t *testing.T) {
	self := App("Map", Var("K"), App("Vec", Var("V")))

	assert.True(t, Occurs("K", self))
	assert.True(t, Occurs("V", self))
	assert.False(t, Occurs("W", self))

	assert.Equal(t, 2, CountOccurrences("A", App("Pair", Var("A"), Var("A"))))
	assert.Equal(t, 0, CountOccurrences("A", TypeInt))
}

func TestMentionsSelf(t *testing.T) {
	assert.True(t, MentionsSelf(&SelfType{}))
	assert.True(t, MentionsSelf(App("Vec", &SelfType{})))
	assert.False(t, MentionsSelf(App("Vec", TypeInt)))
}

func TestObjectSafe(t *testing.T) {
	eq := &Trait{
		Name: "Eq",
		Methods: []Method{
			{Name: "eq", Params: []Type{&SelfType{}}, Return: TypeBool},
		},
	}
	safe, method := eq.ObjectSafe()
	assert.False(t, safe)
	assert.Equal(t, "eq", method)

	show := &Trait{
		Name: "Show",
		Methods: []Method{
			{Name: "show", Params: nil, Return: TypeStr},
		},
	}
	safe, _ = show.ObjectSafe()
	assert.True(t, safe)

	// Self in return position is still conservative.
	clone := &Trait{
		Name: "Clone",
		Methods: []Method{
			{Name: "clone", Params: nil, Return: &SelfType{}},
		},
	}
	safe, method = clone.ObjectSafe()
	assert.False(t, safe)
	assert.Equal(t, "clone", method)
}
