package resolve

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stolas-lang/stolas/internal/diag"
	"github.com/stolas-lang/stolas/internal/types"
)

// Via records which decision case produced a positive resolution.
type Via string

const (
	ViaImpl        Via = "impl"
	ViaTraitObject Via = "trait-object"
	ViaBound       Via = "bound"
)

var (
	// ErrCatalogOpen is returned when an engine is built over a catalog
	// that was never frozen.
	ErrCatalogOpen = errors.New("resolve: catalog is not frozen")

	// ErrCatalogInvalid is returned when the catalog froze with
	// registration errors; a catalog with outstanding malformed
	// declarations refuses all queries.
	ErrCatalogInvalid = errors.New("resolve: catalog has registration errors")

	// ErrDepthLimit is a defensive guard for catalogs that bypassed the
	// registration gate. A gated catalog can never trip it.
	ErrDepthLimit = errors.New("resolve: recursion depth limit exceeded")
)

// UnknownTraitError is returned when a query references an undeclared trait.
type UnknownTraitError struct {
	Name string
}

func (e *UnknownTraitError) Error() string {
	return fmt.Sprintf("resolve: unknown trait %s", e.Name)
}

// ArityError is returned when a query's trait reference carries the wrong
// number of arguments. It is an error, never a negative resolution.
type ArityError struct {
	Trait string
	Want  int
	Got   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("resolve: trait %s expects %d arguments, got %d", e.Trait, e.Want, e.Got)
}

// Obligation is one bound check discharged while applying an impl.
type Obligation struct {
	Receiver types.Type
	Trait    types.TraitRef
	Result   Resolution
}

// Witness proves a positive resolution through an impl: the impl, the
// inferred substitution, and the discharged bound obligations in declaration
// order.
type Witness struct {
	Impl        *Impl
	Subst       types.Subst
	Obligations []Obligation
}

// Resolution is the outcome of one Implements query. Witness is non-nil only
// for ViaImpl results; trait-object and bound short-circuits carry no impl.
type Resolution struct {
	Implemented bool
	Via         Via
	Witness     *Witness
}

// Query pairs a receiver with a trait obligation, for batch resolution.
type Query struct {
	Receiver types.Type
	Trait    types.TraitRef
}

// EngineOption configures an engine.
type EngineOption func(*Engine)

// WithLogger attaches a logger; the engine traces case selection and impl
// candidacy at debug level.
func WithLogger(log *zap.Logger) EngineOption {
	return func(e *Engine) {
		e.log = log
	}
}

// WithDepthLimit overrides the defensive recursion cap.
func WithDepthLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.depthLimit = n
		}
	}
}

// DefaultDepthLimit bounds recursion depth defensively. Structural depth of
// any realistic receiver is far below it.
const DefaultDepthLimit = 512

// Engine answers Implements queries against a frozen catalog. It keeps no
// mutable state across queries, so one engine may serve concurrent callers.
type Engine struct {
	cat        *Catalog
	log        *zap.Logger
	depthLimit int
}

// NewEngine builds an engine over a frozen, error-free catalog. Construction
// fails closed on an open catalog or one with registration errors.
func NewEngine(cat *Catalog, opts ...EngineOption) (*Engine, error) {
	if !cat.Frozen() {
		return nil, ErrCatalogOpen
	}
	if diag.HasErrors(cat.Diagnostics()) {
		return nil, ErrCatalogInvalid
	}

	e := &Engine{
		cat:        cat,
		log:        zap.NewNop(),
		depthLimit: DefaultDepthLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Implements decides whether receiver satisfies the trait obligation. A
// negative resolution is a valid outcome, not an error; errors are reserved
// for ill-formed queries (unknown trait, arity mismatch) and the defensive
// depth guard.
func (e *Engine) Implements(receiver types.Type, ref types.TraitRef) (Resolution, error) {
	t, ok := e.cat.Trait(ref.Name)
	if !ok {
		return Resolution{}, &UnknownTraitError{Name: ref.Name}
	}
	if len(ref.Args) != t.Arity() {
		return Resolution{}, &ArityError{Trait: ref.Name, Want: t.Arity(), Got: len(ref.Args)}
	}

	return e.resolve(receiver, ref, 0)
}

// ImplementsAll resolves a batch of queries concurrently over the shared
// immutable catalog. Results are index-aligned with the queries; the first
// error cancels the remaining work.
func (e *Engine) ImplementsAll(ctx context.Context, queries []Query) ([]Resolution, error) {
	results := make([]Resolution, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Implements(q.Receiver, q.Trait)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolve runs the decision cases in priority order. The first case that
// decides wins; nothing falls through past a decision.
func (e *Engine) resolve(receiver types.Type, ref types.TraitRef, depth int) (Resolution, error) {
	if depth > e.depthLimit {
		return Resolution{}, ErrDepthLimit
	}

	// Case 1: the receiver already is an instance of the requested trait.
	if obj, isObj := receiver.(*types.TraitObject); isObj {
		if e.refReaches(obj.Trait, ref) {
			t, _ := e.cat.Trait(ref.Name)
			if safe, method := t.ObjectSafe(); safe {
				e.log.Debug("trait object satisfies trait directly",
					zap.String("receiver", receiver.String()),
					zap.String("trait", ref.String()))
				return Resolution{Implemented: true, Via: ViaTraitObject}, nil
			} else {
				e.log.Debug("trait object rejected, trait is not object safe",
					zap.String("trait", ref.Name),
					zap.String("method", method))
			}
		}
		// A non-matching or non-object-safe dyn receiver may still be
		// covered by an explicit impl; fall through to the search.
	}

	// Case 2: a bounded parameter satisfies exactly its declared bounds and
	// their supertraits. This case always decides: blanket impls over bare
	// parameters are rejected at registration, so searching would be futile.
	if param, isParam := receiver.(*types.Param); isParam {
		for _, bound := range param.Bounds {
			if e.refReaches(bound, ref) {
				return Resolution{Implemented: true, Via: ViaBound}, nil
			}
		}
		return Resolution{}, nil
	}

	// Case 3: linear scan of the impl catalog in insertion order; the first
	// impl whose head matches and whose bounds all hold wins.
	for i := range e.cat.impls {
		im := &e.cat.impls[i]

		s := types.Subst{}
		if !types.Match(im.Self, receiver, s) {
			continue
		}
		if !types.MatchRef(im.Trait, ref, s) {
			continue
		}

		e.log.Debug("impl head matched",
			zap.String("impl", im.String()),
			zap.String("receiver", receiver.String()))

		witness, err := e.checkBounds(im, s, depth)
		if err != nil {
			return Resolution{}, err
		}
		if witness == nil {
			// A failed bound rules out this impl only; later impls may
			// still apply.
			continue
		}
		return Resolution{Implemented: true, Via: ViaImpl, Witness: witness}, nil
	}

	// Case 4: nothing decided the query; the type does not implement.
	return Resolution{}, nil
}

// checkBounds discharges every bound obligation of the matched impl under
// the inferred substitution. Each recursive receiver is the binding of a
// variable nested strictly inside the impl's self type, so its structural
// depth is strictly smaller than the current receiver's.
func (e *Engine) checkBounds(im *Impl, s types.Subst, depth int) (*Witness, error) {
	w := &Witness{Impl: im, Subst: s}

	for _, v := range im.Vars {
		bound, ok := s[v.Name]
		if !ok {
			// Unreachable for gated catalogs: matching binds every
			// variable that occurs in the head.
			continue
		}
		for _, b := range v.Bounds {
			obligation := types.SubstituteRef(b, s)
			res, err := e.resolve(bound, obligation, depth+1)
			if err != nil {
				return nil, err
			}
			if !res.Implemented {
				e.log.Debug("bound obligation failed",
					zap.String("impl", im.String()),
					zap.String("obligation", obligation.String()))
				return nil, nil
			}
			w.Obligations = append(w.Obligations, Obligation{
				Receiver: bound,
				Trait:    obligation,
				Result:   res,
			})
		}
	}

	return w, nil
}

// refReaches reports whether the trait instance `have` satisfies the
// obligation `want` directly or through the supertrait hierarchy, with
// supertrait references instantiated by the instance's arguments. The
// supertrait graph is acyclic for frozen catalogs, so the walk terminates.
func (e *Engine) refReaches(have, want types.TraitRef) bool {
	if types.RefEqual(have, want) {
		return true
	}

	t, ok := e.cat.Trait(have.Name)
	if !ok {
		return false
	}

	s := types.Subst{}
	for i, p := range t.Params {
		if i < len(have.Args) {
			s[p] = have.Args[i]
		}
	}

	for _, sup := range t.Supers {
		if e.refReaches(types.SubstituteRef(sup, s), want) {
			return true
		}
	}
	return false
}
