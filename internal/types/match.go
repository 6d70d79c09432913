package types

// Match attempts to bind the pattern's parameter references so that
// substituting them into pattern reproduces target. Bindings accumulate into
// s; a parameter that is already bound must map to a type equal to the
// corresponding target subterm. Matching is deterministic: because every
// impl variable occurs in the pattern, the substitution is unique where it
// exists and no backtracking is needed.
//
// On failure s may contain partial bindings; callers discard it.
func Match(pattern, target Type, s Subst) bool {
	switch p := pattern.(type) {
	case *Param:
		if bound, ok := s[p.Name]; ok {
			return Equal(bound, target)
		}
		s[p.Name] = target
		return true
	case *Primitive:
		t, ok := target.(*Primitive)
		return ok && p.Kind == t.Kind
	case *Apply:
		t, ok := target.(*Apply)
		if !ok || p.Name != t.Name || len(p.Args) != len(t.Args) {
			return false
		}
		for i := range p.Args {
			if !Match(p.Args[i], t.Args[i], s) {
				return false
			}
		}
		return true
	case *TraitObject:
		t, ok := target.(*TraitObject)
		if !ok {
			return false
		}
		return MatchRef(p.Trait, t.Trait, s)
	case *SelfType:
		_, ok := target.(*SelfType)
		return ok
	default:
		return false
	}
}

// MatchRef matches a trait-reference pattern against a target reference,
// accumulating parameter bindings into s.
func MatchRef(pattern, target TraitRef, s Subst) bool {
	if pattern.Name != target.Name || len(pattern.Args) != len(target.Args) {
		return false
	}
	for i := range pattern.Args {
		if !Match(pattern.Args[i], target.Args[i], s) {
			return false
		}
	}
	return true
}
