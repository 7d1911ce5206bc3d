package model

import (
	"fmt"

	"fortio.org/safecast"

	"comma/internal/decls"
	"comma/internal/source"
	"comma/internal/subst"
	"comma/internal/trace"
	"comma/internal/types"
)

// Context owns every model of one compilation unit together with the type
// interner they share. It is not safe for concurrent use.
type Context struct {
	Types  *types.Interner
	Names  *source.Interner
	Tracer trace.Tracer

	models []Model

	// rewriting counts instance bodies and views being rewritten; instances
	// created meanwhile materialize on demand only.
	rewriting int
	// chain is the depth of the representation lookup in progress.
	chain int
}

// maxRepresentationChain bounds carrier chains; a longer chain can only
// come from a carrier that applies its own functor to a growing argument.
const maxRepresentationChain = 64

// traced reports whether trace events would be emitted, so callers can
// skip rendering their details.
func (c *Context) traced() bool {
	return c.Tracer != nil && c.Tracer.Enabled()
}

// beginRewrite marks an instance rewrite in progress until the returned
// func is called.
func (c *Context) beginRewrite() func() {
	c.rewriting++
	return func() { c.rewriting-- }
}

// NewContext creates an empty context. names may be shared with the
// front end; the context never interns identifiers itself.
func NewContext(names *source.Interner, tracer trace.Tracer) *Context {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Context{
		Types:  types.NewInterner(),
		Names:  names,
		Tracer: tracer,
		models: make([]Model, 1, 32),
	}
}

func slotOf(n int) uint32 {
	slot, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("model arena overflow: %w", err))
	}
	return slot
}

// Model returns the model with the given id.
func (c *Context) Model(id ID) (Model, bool) {
	if id == NoID || int(id) >= len(c.models) {
		return nil, false
	}
	return c.models[id], true
}

// Models returns all models in creation order.
func (c *Context) Models() []Model {
	return append([]Model(nil), c.models[1:]...)
}

func (c *Context) newBase(kind Kind, name source.StringID, span source.Span) base {
	id := ID(slotOf(len(c.models)))
	percent := c.Types.Intern(types.MakePercent(uint32(id)))
	return base{
		ctx:     c,
		id:      id,
		kind:    kind,
		name:    name,
		span:    span,
		percent: percent,
		sigs:    newSignatureSet(c, percent),
		public:  decls.NewRegion(c.Types),
	}
}

func (c *Context) register(m Model) {
	c.models = append(c.models, m)
	if c.traced() {
		trace.Point(c.Tracer, trace.ScopeModel, "model.new", fmt.Sprintf("%s %s", m.Kind(), c.name(m.Name())), 0)
	}
}

// NewSignature creates a signature. Its self-type exists from now on.
func (c *Context) NewSignature(name source.StringID, span source.Span) *Signature {
	s := &Signature{
		base:      c.newBase(KindSignature, name, span),
		instances: newInstanceArena[*SignatureInstance](),
	}
	c.register(s)
	return s
}

// NewVariety creates a parameterized signature; formals are added with
// AddFormal before the first application.
func (c *Context) NewVariety(name source.StringID, span source.Span) *Variety {
	v := &Variety{Signature: Signature{
		base:      c.newBase(KindVariety, name, span),
		instances: newInstanceArena[*SignatureInstance](),
	}}
	c.register(v)
	return v
}

// NewDomain creates a domain.
func (c *Context) NewDomain(name source.StringID, span source.Span) *Domain {
	d := &Domain{
		base:      c.newBase(KindDomain, name, span),
		instances: newInstanceArena[*DomainInstance](),
	}
	c.register(d)
	return d
}

// NewFunctor creates a parameterized domain.
func (c *Context) NewFunctor(name source.StringID, span source.Span) *Functor {
	f := &Functor{Domain: Domain{
		base:      c.newBase(KindFunctor, name, span),
		instances: newInstanceArena[*DomainInstance](),
	}}
	c.register(f)
	return f
}

func (c *Context) name(id source.StringID) string {
	if s, ok := c.Names.Lookup(id); ok && s != "" {
		return s
	}
	return fmt.Sprintf("<anon#%d>", id)
}

// ModelName returns the spelling of m's name for messages.
func (c *Context) ModelName(m Model) string {
	if m == nil {
		return "<nil>"
	}
	return c.name(m.Name())
}

// SignatureInstance resolves a signature instance handle.
func (c *Context) SignatureInstance(id types.TypeID) (*SignatureInstance, bool) {
	tt, ok := c.Types.Lookup(id)
	if !ok || tt.Kind != types.KindSignature {
		return nil, false
	}
	m, ok := c.Model(ID(tt.Owner))
	if !ok {
		return nil, false
	}
	sm, ok := m.(signatureModel)
	if !ok {
		return nil, false
	}
	return sm.signature().instances.get(tt.Index)
}

// DomainInstance resolves a domain instance handle.
func (c *Context) DomainInstance(id types.TypeID) (*DomainInstance, bool) {
	tt, ok := c.Types.Lookup(id)
	if !ok || tt.Kind != types.KindDomain {
		return nil, false
	}
	m, ok := c.Model(ID(tt.Owner))
	if !ok {
		return nil, false
	}
	dm, ok := m.(definitionModel)
	if !ok {
		return nil, false
	}
	return dm.domain().instances.get(tt.Index)
}

// Arguments returns the actual arguments behind an instance handle.
func (c *Context) Arguments(id types.TypeID) ([]types.TypeID, bool) {
	if si, ok := c.SignatureInstance(id); ok {
		return si.args, true
	}
	if di, ok := c.DomainInstance(id); ok {
		return di.args, true
	}
	return nil, false
}

// argsOf adapts Arguments for type walks.
func (c *Context) argsOf(id types.TypeID) []types.TypeID {
	args, _ := c.Arguments(id)
	return args
}

// Reapply applies the model behind handle id to args and returns the new
// handle, or NoTypeID when the application is impossible.
func (c *Context) Reapply(id types.TypeID, args []types.TypeID) types.TypeID {
	tt, ok := c.Types.Lookup(id)
	if !ok {
		return types.NoTypeID
	}
	m, ok := c.Model(ID(tt.Owner))
	if !ok {
		return types.NoTypeID
	}
	switch tt.Kind {
	case types.KindSignature:
		sm, ok := m.(signatureModel)
		if !ok {
			return types.NoTypeID
		}
		si, err := sm.signature().apply(args)
		if err != nil {
			return types.NoTypeID
		}
		return si.typ
	case types.KindDomain:
		dm, ok := m.(definitionModel)
		if !ok {
			return types.NoTypeID
		}
		di, err := dm.domain().apply(args)
		if err != nil {
			return types.NoTypeID
		}
		return di.typ
	default:
		return types.NoTypeID
	}
}

var _ subst.Instances = (*Context)(nil)

// NewRewriter returns an empty rewriter bound to this context.
func (c *Context) NewRewriter() *subst.Rewriter {
	return subst.New(c.Types, c)
}

// IsDependent reports whether t mentions a formal or a self-type, directly
// or through the arguments of an instance.
func (c *Context) IsDependent(t types.TypeID) bool {
	found := false
	c.Types.Walk(t, c.argsOf, func(id types.TypeID) bool {
		switch c.Types.KindOf(id) {
		case types.KindAbstract, types.KindPercent:
			found = true
			return false
		}
		return true
	})
	return found
}

// Formal resolves an abstract type to its formal parameter.
func (c *Context) Formal(t types.TypeID) (*AbstractDomain, bool) {
	info, ok := c.Types.AbstractInfo(t)
	if !ok {
		return nil, false
	}
	m, ok := c.Model(ID(info.Owner))
	if !ok || int(info.Index) >= m.Arity() {
		return nil, false
	}
	return m.Formals()[info.Index], true
}
