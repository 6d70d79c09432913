package types

import "strings"

// TraitRef is an instantiated reference to a trait: a trait name plus the
// ordered type arguments supplied for its parameters.
type TraitRef struct {
	Name string
	Args []Type
}

func (r TraitRef) String() string {
	if len(r.Args) == 0 {
		return r.Name
	}
	var args []string
	for _, a := range r.Args {
		args = append(args, a.String())
	}
	return r.Name + "[" + strings.Join(args, ", ") + "]"
}

// Ref constructs a trait reference.
func Ref(name string, args ...Type) TraitRef {
	return TraitRef{Name: name, Args: args}
}

// RefEqual reports structural equality of two trait references.
func RefEqual(a, b TraitRef) bool {
	if a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !Equal(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

// Method represents a method signature declared by a trait. Parameter and
// return types may mention Self and the trait's own parameters.
type Method struct {
	Name   string
	Params []Type
	Return Type
}

// Trait represents a declared trait: its parameter list, supertrait
// references (written over the trait's own parameters), and method
// signatures.
type Trait struct {
	Name    string
	Params  []string
	Supers  []TraitRef
	Methods []Method
}

// Arity returns the number of declared trait parameters.
func (t *Trait) Arity() int { return len(t.Params) }

func (t *Trait) String() string {
	if len(t.Params) == 0 {
		return "trait " + t.Name
	}
	return "trait " + t.Name + "[" + strings.Join(t.Params, ", ") + "]"
}

// ObjectSafe reports whether a dyn receiver may satisfy this trait directly.
// The rule is conservative: no method may mention the Self type in a
// parameter or return position, because a trait object only carries
// type-level knowledge of its instance. On failure the offending method name
// is returned.
func (t *Trait) ObjectSafe() (bool, string) {
	for _, m := range t.Methods {
		for _, p := range m.Params {
			if MentionsSelf(p) {
				return false, m.Name
			}
		}
		if m.Return != nil && MentionsSelf(m.Return) {
			return false, m.Name
		}
	}
	return true, ""
}
