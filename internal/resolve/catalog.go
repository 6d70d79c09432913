package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stolas-lang/stolas/internal/diag"
	"github.com/stolas-lang/stolas/internal/types"
)

// TypeVar is a type variable declared by an impl, together with its bound
// obligations.
type TypeVar struct {
	Name   string
	Bounds []types.TraitRef
}

// Impl declares that Self satisfies Trait, subject to the bound obligations
// on Vars. Impls are registered once and never mutated afterwards.
type Impl struct {
	Vars  []TypeVar
	Self  types.Type
	Trait types.TraitRef
	Pos   diag.Span // zero for programmatically built impls
}

func (im *Impl) String() string {
	var b strings.Builder
	b.WriteString("impl")
	if len(im.Vars) > 0 {
		b.WriteString("[")
		for i, v := range im.Vars {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.Name)
			for j, bound := range v.Bounds {
				if j == 0 {
					b.WriteString(": ")
				} else {
					b.WriteString(" + ")
				}
				b.WriteString(bound.String())
			}
		}
		b.WriteString("]")
	}
	fmt.Fprintf(&b, " %s: %s", im.Self, im.Trait)
	return b.String()
}

// Catalog is the process-wide table of trait declarations and impls. It is
// populated during a setup phase, then frozen; a frozen catalog is immutable
// and safe for unsynchronized concurrent readers. Impl order is insertion
// order, which the engine's linear scan relies on for determinism.
type Catalog struct {
	traits map[string]*types.Trait
	impls  []Impl
	diags  []diag.Diagnostic
	frozen bool

	paterson bool
}

// Option configures a catalog.
type Option func(*Catalog)

// WithPatersonCheck replaces the nesting rule with the finer Paterson-style
// registration gate: for every bound obligation, each variable occurs no
// more often in the obligation than in the impl head, and the obligation is
// strictly smaller than the head. This is strictly more permissive; it is a
// different validity check, never a query-time behavior change.
func WithPatersonCheck() Option {
	return func(c *Catalog) {
		c.paterson = true
	}
}

// NewCatalog creates an empty, unfrozen catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		traits: make(map[string]*types.Trait),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeclareTrait registers a trait declaration. Redeclaring a name is reported
// and the first declaration wins.
func (c *Catalog) DeclareTrait(t *types.Trait) {
	c.declareTraitAt(t, diag.Span{})
}

func (c *Catalog) declareTraitAt(t *types.Trait, pos diag.Span) {
	if c.frozen {
		panic("resolve: DeclareTrait on frozen catalog")
	}
	if _, exists := c.traits[t.Name]; exists {
		c.report(diag.Errorf(diag.StageRegister, diag.CodeDuplicateTrait, pos,
			"trait %s is already declared", t.Name))
		return
	}
	c.traits[t.Name] = t
}

// Register validates an impl declaration and, when well-formed, appends it
// to the catalog. Malformed impls are reported and never stored, so no query
// can ever consult them. Registration has partial-failure semantics: every
// declaration is examined and every violation reported.
func (c *Catalog) Register(im Impl) {
	if c.frozen {
		panic("resolve: Register on frozen catalog")
	}
	if !c.validateImpl(&im) {
		return
	}
	c.impls = append(c.impls, im)
}

// Trait looks up a declared trait by name.
func (c *Catalog) Trait(name string) (*types.Trait, bool) {
	t, ok := c.traits[name]
	return t, ok
}

// TraitCount returns the number of declared traits.
func (c *Catalog) TraitCount() int {
	return len(c.traits)
}

// Impls returns the registered well-formed impls in insertion order.
func (c *Catalog) Impls() []Impl {
	return c.impls
}

// Diagnostics returns every problem reported during registration.
func (c *Catalog) Diagnostics() []diag.Diagnostic {
	return c.diags
}

// Frozen reports whether the catalog has been sealed.
func (c *Catalog) Frozen() bool {
	return c.frozen
}

// Freeze runs whole-catalog checks, seals the catalog against further
// registration, and returns all accumulated diagnostics. A catalog that
// froze with outstanding errors refuses engine construction (fail closed).
func (c *Catalog) Freeze() []diag.Diagnostic {
	if !c.frozen {
		c.checkSupertraitCycles()
		c.frozen = true
	}
	return c.diags
}

func (c *Catalog) report(d diag.Diagnostic) {
	c.diags = append(c.diags, d)
}

// validateImpl applies the registration-time gate from the data model:
// references must resolve with the right arity, every declared variable must
// occur in the self type or trait reference, and the termination rule
// (nesting by default, Paterson when configured) must hold.
func (c *Catalog) validateImpl(im *Impl) bool {
	ok := true

	ok = c.checkRef(im, im.Trait) && ok
	for _, v := range im.Vars {
		for _, b := range v.Bounds {
			ok = c.checkRef(im, b) && ok
		}
	}

	seen := make(map[string]bool)
	for _, v := range im.Vars {
		if seen[v.Name] {
			c.report(diag.Errorf(diag.StageRegister, diag.CodeMalformedImpl, im.Pos,
				"%s: type variable %s is declared twice", im, v.Name))
			ok = false
			continue
		}
		seen[v.Name] = true

		if !types.Occurs(v.Name, im.Self) && !occursInRef(v.Name, im.Trait) {
			c.report(diag.Errorf(diag.StageRegister, diag.CodeMalformedImpl, im.Pos,
				"%s: type variable %s occurs in neither the self type nor the trait reference", im, v.Name))
			ok = false
		}
	}

	if c.paterson {
		ok = c.checkPaterson(im) && ok
	} else {
		ok = c.checkNesting(im) && ok
	}

	return ok
}

// checkRef validates that a trait reference names a declared trait with the
// right number of arguments.
func (c *Catalog) checkRef(im *Impl, ref types.TraitRef) bool {
	t, exists := c.traits[ref.Name]
	if !exists {
		c.report(diag.Errorf(diag.StageRegister, diag.CodeUnknownTrait, im.Pos,
			"%s: unknown trait %s", im, ref.Name))
		return false
	}
	if len(ref.Args) != t.Arity() {
		c.report(diag.Errorf(diag.StageRegister, diag.CodeArityMismatch, im.Pos,
			"%s: trait %s expects %d arguments, got %d", im, ref.Name, t.Arity(), len(ref.Args)))
		return false
	}
	return true
}

// checkNesting enforces the coarse termination rule: every declared variable
// occurs strictly inside the self type. The recursion measure argument rests
// on this alone: a matched variable binds a strict subterm of the receiver,
// so every recursive bound check strictly shrinks structural depth.
func (c *Catalog) checkNesting(im *Impl) bool {
	ok := true
	for _, v := range im.Vars {
		if selfParam, isParam := im.Self.(*types.Param); isParam && selfParam.Name == v.Name {
			c.report(diag.Errorf(diag.StageRegister, diag.CodeMalformedImpl, im.Pos,
				"%s: type variable %s is the self type verbatim", im, v.Name).
				WithHelp(fmt.Sprintf("nest the variable inside a concrete type, e.g. Box[%s]", v.Name)))
			ok = false
			continue
		}
		if !types.Occurs(v.Name, im.Self) {
			c.report(diag.Errorf(diag.StageRegister, diag.CodeMalformedImpl, im.Pos,
				"%s: type variable %s does not occur inside the self type", im, v.Name))
			ok = false
		}
	}
	return ok
}

// checkPaterson enforces the Paterson-style gate. The impl head is the
// target trait reference applied to the self type; each bound obligation of
// a variable X is the bound's trait applied to (X, bound args).
func (c *Catalog) checkPaterson(im *Impl) bool {
	headSize := 1 + types.Size(im.Self)
	for _, arg := range im.Trait.Args {
		headSize += types.Size(arg)
	}

	headCount := func(name string) int {
		n := types.CountOccurrences(name, im.Self)
		for _, arg := range im.Trait.Args {
			n += types.CountOccurrences(name, arg)
		}
		return n
	}

	ok := true
	for _, v := range im.Vars {
		for _, b := range v.Bounds {
			boundSize := 2 // the bound's trait constructor plus the variable itself
			for _, arg := range b.Args {
				boundSize += types.Size(arg)
			}
			if boundSize >= headSize {
				c.report(diag.Errorf(diag.StageRegister, diag.CodeMalformedImpl, im.Pos,
					"%s: bound %s: %s is not smaller than the impl head", im, v.Name, b))
				ok = false
				continue
			}

			for _, w := range im.Vars {
				occurrences := 0
				if w.Name == v.Name {
					occurrences++
				}
				for _, arg := range b.Args {
					occurrences += types.CountOccurrences(w.Name, arg)
				}
				if occurrences > headCount(w.Name) {
					c.report(diag.Errorf(diag.StageRegister, diag.CodeMalformedImpl, im.Pos,
						"%s: variable %s occurs more often in bound %s: %s than in the impl head", im, w.Name, v.Name, b))
					ok = false
				}
			}
		}
	}
	return ok
}

// checkSupertraitCycles rejects trait hierarchies whose supertrait edges
// form a cycle; the engine's supertrait walk assumes the graph is acyclic.
func (c *Catalog) checkSupertraitCycles() {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	state := make(map[string]int)

	var visit func(name string)
	visit = func(name string) {
		switch state[name] {
		case grey:
			c.report(diag.Errorf(diag.StageRegister, diag.CodeSupertraitCycle, diag.Span{},
				"trait %s participates in a supertrait cycle", name))
			return
		case black:
			return
		}
		state[name] = grey
		if t, ok := c.traits[name]; ok {
			for _, sup := range t.Supers {
				visit(sup.Name)
			}
		}
		state[name] = black
	}

	names := make([]string, 0, len(c.traits))
	for name := range c.traits {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		visit(name)
	}
}

func occursInRef(name string, ref types.TraitRef) bool {
	for _, arg := range ref.Args {
		if types.Occurs(name, arg) {
			return true
		}
	}
	return false
}
