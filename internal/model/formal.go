package model

import (
	"comma/internal/decls"
	"comma/internal/source"
	"comma/internal/types"
)

// AbstractDomain is a formal parameter: an unknown domain that satisfies
// its principal signature.
type AbstractDomain struct {
	ctx       *Context
	owner     Model
	name      source.StringID
	span      source.Span
	index     int
	typ       types.TypeID
	principal *SignatureInstance
	sigs      *SignatureSet
	public    *decls.Region
}

func (a *AbstractDomain) Name() source.StringID { return a.name }
func (a *AbstractDomain) Span() source.Span     { return a.span }
func (a *AbstractDomain) Index() int            { return a.index }
func (a *AbstractDomain) Owner() Model          { return a.owner }

// Type is the abstract type standing for the formal.
func (a *AbstractDomain) Type() types.TypeID { return a.typ }

// Principal is the signature every actual must satisfy; nil when the
// formal is unconstrained.
func (a *AbstractDomain) Principal() *SignatureInstance { return a.principal }

// Signatures is the satisfaction set implied by the principal signature.
func (a *AbstractDomain) Signatures() *SignatureSet { return a.sigs }

// Public holds the declarations visible through the formal.
func (a *AbstractDomain) Public() *decls.Region { return a.public }

// AddFormal appends a formal parameter. It fails once the variety has
// been applied, since existing instances fix the arity.
func (v *Variety) AddFormal(name source.StringID, span source.Span, principal *SignatureInstance) (*AbstractDomain, error) {
	if v.instances.len() > 0 {
		return nil, &InternalError{Kind: InternalSealed, Op: "add formal to", Model: v.ctx.ModelName(v)}
	}
	return v.addFormal(v, name, span, principal), nil
}

// AddFormal appends a formal parameter. It fails once the functor has
// been applied.
func (f *Functor) AddFormal(name source.StringID, span source.Span, principal *SignatureInstance) (*AbstractDomain, error) {
	if f.instances.len() > 0 {
		return nil, &InternalError{Kind: InternalSealed, Op: "add formal to", Model: f.ctx.ModelName(f)}
	}
	return f.addFormal(f, name, span, principal), nil
}

func (b *base) addFormal(owner Model, name source.StringID, span source.Span, principal *SignatureInstance) *AbstractDomain {
	index := len(b.formals)
	typ := b.ctx.Types.RegisterAbstract(name, uint32(b.id), slotOf(index))
	a := &AbstractDomain{
		ctx:       b.ctx,
		owner:     owner,
		name:      name,
		span:      span,
		index:     index,
		typ:       typ,
		principal: principal,
		sigs:      newSignatureSet(b.ctx, typ),
		public:    decls.NewRegion(b.ctx.Types),
	}
	if principal != nil {
		a.sigs.AddDirectSignature(principal, nil)
		b.ctx.Inherit(a.public, principal, typ)
	}
	b.formals = append(b.formals, a)
	return a
}
