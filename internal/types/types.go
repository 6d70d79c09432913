package types

import "strings"

// Type represents a type term in the Stolas type system. Types are finite
// trees: a well-formed Type never contains itself.
type Type interface {
	String() string
	// IsType is a marker method to ensure type safety.
	IsType()
}

// PrimitiveKind represents the kind of a primitive type.
type PrimitiveKind string

const (
	Int   PrimitiveKind = "int"
	Float PrimitiveKind = "float"
	Bool  PrimitiveKind = "bool"
	Str   PrimitiveKind = "str"
	Unit  PrimitiveKind = "unit"
)

// Primitive represents a primitive type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) IsType()        {}

// Common primitive instances
var (
	TypeInt   = &Primitive{Kind: Int}
	TypeFloat = &Primitive{Kind: Float}
	TypeBool  = &Primitive{Kind: Bool}
	TypeStr   = &Primitive{Kind: Str}
	TypeUnit  = &Primitive{Kind: Unit}
)

// Apply represents a named nominal type applied to zero or more type
// arguments. A bare nominal like Sink is an Apply with no arguments; wrapper
// forms like Box[T] or Vec[int] are Applys with arity >= 1.
type Apply struct {
	Name string
	Args []Type
}

func (a *Apply) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	var args []string
	for _, arg := range a.Args {
		args = append(args, arg.String())
	}
	return a.Name + "[" + strings.Join(args, ", ") + "]"
}
func (a *Apply) IsType() {}

// Named constructs a bare nominal type.
func Named(name string) *Apply {
	return &Apply{Name: name}
}

// App constructs a nominal type applied to the given arguments.
func App(name string, args ...Type) *Apply {
	return &Apply{Name: name, Args: args}
}

// Param represents a reference to a declared type parameter, optionally
// carrying the trait bounds declared for it.
type Param struct {
	Name   string
	Bounds []TraitRef
}

func (p *Param) String() string {
	if len(p.Bounds) == 0 {
		return p.Name
	}
	var bounds []string
	for _, b := range p.Bounds {
		bounds = append(bounds, b.String())
	}
	return p.Name + ": " + strings.Join(bounds, " + ")
}
func (p *Param) IsType() {}

// Var constructs a bound-less parameter reference.
func Var(name string) *Param {
	return &Param{Name: name}
}

// TraitObject represents an erased instance of a trait, written dyn N[...].
type TraitObject struct {
	Trait TraitRef
}

func (o *TraitObject) String() string { return "dyn " + o.Trait.String() }
func (o *TraitObject) IsType()        {}

// SelfType is the Self placeholder. It is only legal inside trait method
// signatures; it never appears in receiver types or impl declarations.
type SelfType struct{}

func (s *SelfType) String() string { return "Self" }
func (s *SelfType) IsType()        {}

// Depth returns the structural depth of a type: 1 for leaves, one more than
// the deepest child otherwise. Depth is the well-founded measure behind the
// resolution engine's termination guarantee.
func Depth(t Type) int {
	switch t := t.(type) {
	case *Apply:
		max := 0
		for _, arg := range t.Args {
			if d := Depth(arg); d > max {
				max = d
			}
		}
		return 1 + max
	case *TraitObject:
		max := 0
		for _, arg := range t.Trait.Args {
			if d := Depth(arg); d > max {
				max = d
			}
		}
		return 1 + max
	default:
		// Primitive, Param, SelfType
		return 1
	}
}

// Size returns the number of nodes in a type term. Used by the Paterson-style
// registration check, which compares term sizes rather than nesting depth.
func Size(t Type) int {
	switch t := t.(type) {
	case *Apply:
		n := 1
		for _, arg := range t.Args {
			n += Size(arg)
		}
		return n
	case *TraitObject:
		n := 1
		for _, arg := range t.Trait.Args {
			n += Size(arg)
		}
		return n
	default:
		return 1
	}
}

// Equal reports structural equality of two type terms. Parameter references
// compare by name; declared bounds do not participate.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Kind == b.Kind
	case *Apply:
		bb, ok := b.(*Apply)
		if !ok || a.Name != bb.Name || len(a.Args) != len(bb.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], bb.Args[i]) {
				return false
			}
		}
		return true
	case *Param:
		b, ok := b.(*Param)
		return ok && a.Name == b.Name
	case *TraitObject:
		b, ok := b.(*TraitObject)
		return ok && RefEqual(a.Trait, b.Trait)
	case *SelfType:
		_, ok := b.(*SelfType)
		return ok
	default:
		return false
	}
}

// MentionsSelf reports whether the type term contains the Self placeholder.
func MentionsSelf(t Type) bool {
	switch t := t.(type) {
	case *SelfType:
		return true
	case *Apply:
		for _, arg := range t.Args {
			if MentionsSelf(arg) {
				return true
			}
		}
		return false
	case *TraitObject:
		for _, arg := range t.Trait.Args {
			if MentionsSelf(arg) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Occurs reports whether the named parameter occurs anywhere in t.
func Occurs(name string, t Type) bool {
	switch t := t.(type) {
	case *Param:
		return t.Name == name
	case *Apply:
		for _, arg := range t.Args {
			if Occurs(name, arg) {
				return true
			}
		}
		return false
	case *TraitObject:
		for _, arg := range t.Trait.Args {
			if Occurs(name, arg) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// CountOccurrences returns how many times the named parameter occurs in t.
func CountOccurrences(name string, t Type) int {
	switch t := t.(type) {
	case *Param:
		if t.Name == name {
			return 1
		}
		return 0
	case *Apply:
		n := 0
		for _, arg := range t.Args {
			n += CountOccurrences(name, arg)
		}
		return n
	case *TraitObject:
		n := 0
		for _, arg := range t.Trait.Args {
			n += CountOccurrences(name, arg)
		}
		return n
	default:
		return 0
	}
}
