package types

// Subst maps declared type-variable names to concrete types. A substitution
// is built during matching and lives for a single resolution frame.
type Subst map[string]Type

// Substitute replaces parameter references in t with their values from the
// substitution. Unbound parameters are left in place.
func Substitute(t Type, s Subst) Type {
	if t == nil {
		return nil
	}

	switch t := t.(type) {
	case *Param:
		if replacement, ok := s[t.Name]; ok {
			return replacement
		}
		return t
	case *Apply:
		var newArgs []Type
		changed := false
		for _, arg := range t.Args {
			newArg := Substitute(arg, s)
			if newArg != arg {
				changed = true
			}
			newArgs = append(newArgs, newArg)
		}
		if !changed {
			return t
		}
		return &Apply{Name: t.Name, Args: newArgs}
	case *TraitObject:
		ref := SubstituteRef(t.Trait, s)
		return &TraitObject{Trait: ref}
	default:
		return t
	}
}

// SubstituteRef applies the substitution to every argument of a trait
// reference.
func SubstituteRef(r TraitRef, s Subst) TraitRef {
	if len(r.Args) == 0 {
		return r
	}
	args := make([]Type, len(r.Args))
	for i, a := range r.Args {
		args[i] = Substitute(a, s)
	}
	return TraitRef{Name: r.Name, Args: args}
}

// Clone returns a shallow copy of the substitution.
func (s Subst) Clone() Subst {
	out := make(Subst, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
