package model

import (
	"fmt"

	"comma/internal/decls"
	"comma/internal/subst"
	"comma/internal/trace"
	"comma/internal/types"
)

// InstanceState is the lifecycle stage of a DomainInstance.
type InstanceState uint8

const (
	// StateUnbound: the definition has no body yet.
	StateUnbound InstanceState = iota
	// StatePending: the body exists but has not been rewritten for the
	// instance, either because the definition is not finalized or because
	// the instance was created during another rewrite and nothing has
	// asked for its body yet.
	StatePending
	// StateMaterialized: the body has been rewritten for this instance.
	StateMaterialized
)

func (s InstanceState) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StatePending:
		return "pending"
	case StateMaterialized:
		return "materialized"
	default:
		return fmt.Sprintf("InstanceState(%d)", s)
	}
}

// DomainInstance is a domain, or a functor applied to actual arguments.
// There is at most one per model and argument tuple.
//
// The public view mirrors the definition's public region. It is brought
// up to date on every read: declarations the definition gained since the
// last read are rewritten with the instance's bindings and appended.
type DomainInstance struct {
	def  definitionModel
	args []types.TypeID
	typ  types.TypeID

	rw     *subst.Rewriter
	view   *decls.Region
	synced int
	body   *decls.Region

	rep       types.TypeID
	resolving bool
}

func newView(c *Context) *decls.Region {
	return decls.NewRegion(c.Types)
}

// Model returns the underlying *Domain or *Functor.
func (d *DomainInstance) Model() Model { return d.def }

// Arguments returns the actual arguments. READONLY
func (d *DomainInstance) Arguments() []types.TypeID { return d.args }

// Formals returns the formal types the arguments bind.
func (d *DomainInstance) Formals() []types.TypeID { return d.def.domain().FormalTypes() }

// Type returns the handle of the instance.
func (d *DomainInstance) Type() types.TypeID { return d.typ }

// IsDependent reports whether an argument mentions a formal or a
// self-type. The representation of a dependent instance cannot be resolved
// until the enclosing generic context is bound.
func (d *DomainInstance) IsDependent() bool {
	return d.def.Context().IsDependent(d.typ)
}

// State reports where the instance is in its lifecycle.
func (d *DomainInstance) State() InstanceState {
	switch {
	case d.body != nil:
		return StateMaterialized
	case d.def.domain().impl == nil:
		return StateUnbound
	default:
		return StatePending
	}
}

// rewriter maps the definition's self-type to the instance and each
// formal to its actual. Arity was checked when the instance was made.
func (d *DomainInstance) rewriter() *subst.Rewriter {
	if d.rw == nil {
		rw := d.def.Context().NewRewriter()
		rw.AddRewrite(d.def.Percent(), d.typ)
		_ = rw.InstallRewrites(d)
		d.rw = rw
	}
	return d.rw
}

// PublicView returns the definition's public declarations as seen through
// this instance.
func (d *DomainInstance) PublicView() *decls.Region {
	d.sync()
	return d.view
}

func (d *DomainInstance) sync() {
	src := d.def.Public()
	if d.synced >= src.Version() {
		return
	}
	rw := d.rewriter()
	defer d.def.Context().beginRewrite()()
	for _, decl := range src.Since(d.synced) {
		rewritten := rw.RewriteDecl(decl)
		if decl.Overrides != nil {
			d.view.Override(rewritten)
		} else {
			d.view.Add(rewritten)
		}
	}
	d.synced = src.Version()
}

// Body returns the materialized body. It fails with ErrNotFinalized until
// the definition is finalized.
func (d *DomainInstance) Body() (*decls.Region, error) {
	if d.body != nil {
		return d.body, nil
	}
	if !d.def.domain().finalized {
		return nil, fmt.Errorf("%s: %w", d.def.Context().describe(d.typ), ErrNotFinalized)
	}
	if err := d.materialize(); err != nil {
		return nil, err
	}
	return d.body, nil
}

// materialize clones the definition's body with the instance's bindings.
// It runs at most once.
func (d *DomainInstance) materialize() error {
	if d.body != nil {
		return nil
	}
	ctx := d.def.Context()
	impl := d.def.domain().impl
	if impl == nil {
		err := &InternalError{Kind: InternalMissingImplementation, Op: "materialize", Model: ctx.ModelName(d.def)}
		trace.Failure(ctx.Tracer, trace.ScopeInstance, "materialize", err)
		return err
	}
	span := trace.Begin(ctx.Tracer, trace.ScopeInstance, "materialize", 0)
	if ctx.traced() {
		span.With("instance", ctx.describe(d.typ))
	}
	rw := d.rewriter()
	body := decls.NewRegion(ctx.Types)
	end := ctx.beginRewrite()
	for _, decl := range impl.decls.Roots() {
		body.Add(rw.RewriteDecl(decl))
	}
	end()
	d.body = body
	d.sync()
	span.End("")
	return nil
}

// Representation resolves the carrier of the instance to a type that is
// not itself a domain instance, following carriers through other
// instances. Dependent instances yield ErrDependent and instances of
// unfinalized definitions ErrNotFinalized; callers retry those later.
func (d *DomainInstance) Representation() (types.TypeID, error) {
	if d.rep != types.NoTypeID {
		return d.rep, nil
	}
	ctx := d.def.Context()
	if d.IsDependent() {
		return types.NoTypeID, fmt.Errorf("%s: %w", ctx.describe(d.typ), ErrDependent)
	}
	if !d.def.domain().finalized {
		return types.NoTypeID, fmt.Errorf("%s: %w", ctx.describe(d.typ), ErrNotFinalized)
	}
	if d.resolving {
		return types.NoTypeID, &InternalError{Kind: InternalRepresentationCycle, Op: "resolve representation of", Model: ctx.describe(d.typ)}
	}
	if ctx.chain >= maxRepresentationChain {
		return types.NoTypeID, &InternalError{Kind: InternalRepresentationCycle, Op: "expand representation of", Model: ctx.ModelName(d.def)}
	}
	d.resolving = true
	ctx.chain++
	defer func() {
		d.resolving = false
		ctx.chain--
	}()

	if err := d.materialize(); err != nil {
		return types.NoTypeID, err
	}
	carrier := d.body.Carrier()
	if carrier == nil {
		return types.NoTypeID, &InternalError{Kind: InternalMissingImplementation, Op: "resolve carrier of", Model: ctx.describe(d.typ)}
	}
	rep := carrier.Type
	if next, ok := ctx.DomainInstance(rep); ok {
		resolved, err := next.Representation()
		if err != nil {
			return types.NoTypeID, fmt.Errorf("%s: %w", ctx.describe(d.typ), err)
		}
		rep = resolved
	}
	d.rep = rep
	if ctx.traced() {
		trace.Point(ctx.Tracer, trace.ScopeInstance, "representation", ctx.describe(d.typ), 0)
	}
	return rep, nil
}

// In returns the counterpart of d inside enclosing: the instance obtained
// by rewriting d's handle with enclosing's bindings. A concrete d, or one
// whose formals enclosing does not bind, is returned unchanged.
func (d *DomainInstance) In(enclosing *DomainInstance) *DomainInstance {
	if enclosing == nil || !d.IsDependent() {
		return d
	}
	ctx := d.def.Context()
	bound, ok := ctx.DomainInstance(enclosing.rewriter().Rewrite(d.typ))
	if !ok {
		return d
	}
	return bound
}

// Signatures returns the signatures the instance satisfies: those of its
// definition with the definition's self-type and formals replaced.
func (d *DomainInstance) Signatures() []*SignatureInstance {
	ctx := d.def.Context()
	rw := d.rewriter()
	src := d.def.Signatures().all
	out := make([]*SignatureInstance, 0, len(src))
	for _, s := range src {
		if si, ok := ctx.SignatureInstance(rw.Rewrite(s.typ)); ok {
			out = append(out, si)
		}
	}
	return out
}
