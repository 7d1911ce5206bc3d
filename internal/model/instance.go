package model

import (
	"fmt"
	"slices"
	"strings"

	"comma/internal/trace"
	"comma/internal/types"
)

// SignatureInstance is a signature, or a variety applied to actual
// arguments. There is at most one per model and argument tuple.
type SignatureInstance struct {
	model signatureModel
	args  []types.TypeID
	typ   types.TypeID
}

// Model returns the underlying *Signature or *Variety.
func (s *SignatureInstance) Model() Model { return s.model }

// Arguments returns the actual arguments. READONLY
func (s *SignatureInstance) Arguments() []types.TypeID { return s.args }

// Formals returns the formal types the arguments bind.
func (s *SignatureInstance) Formals() []types.TypeID { return s.model.signature().FormalTypes() }

// Type returns the handle of the instance.
func (s *SignatureInstance) Type() types.TypeID { return s.typ }

// IsDependent reports whether an argument mentions a formal or self-type.
func (s *SignatureInstance) IsDependent() bool {
	return s.model.Context().IsDependent(s.typ)
}

// Instance returns the sole instance of a signature. Unless the signature
// is a variety, this never fails.
func (s *Signature) Instance() (*SignatureInstance, error) {
	return s.apply(nil)
}

// Apply returns the canonical instance for args.
func (v *Variety) Apply(args []types.TypeID) (*SignatureInstance, error) {
	return v.apply(args)
}

// Instances returns every instance created so far, in creation order.
func (s *Signature) Instances() []*SignatureInstance {
	return slices.Clone(s.instances.all())
}

func (s *Signature) apply(args []types.TypeID) (*SignatureInstance, error) {
	if len(args) != s.Arity() {
		return nil, &InternalError{Kind: InternalArity, Op: "apply", Model: s.ctx.ModelName(s), Want: s.Arity(), Got: len(args)}
	}
	key := argsKey(args)
	if si, ok := s.instances.lookup(key); ok {
		return si, nil
	}
	self := s.self()
	typ := s.ctx.Types.Intern(types.MakeSignature(uint32(s.id), s.instances.next()))
	si := &SignatureInstance{model: self, args: slices.Clone(args), typ: typ}
	s.instances.allocate(key, si)
	if s.ctx.traced() {
		trace.Point(s.ctx.Tracer, trace.ScopeInstance, "instantiate", s.ctx.describe(typ), 0)
	}
	return si, nil
}

// self returns the outermost model embedding s; instances must point at
// the *Variety rather than the embedded *Signature.
func (s *Signature) self() signatureModel {
	if m, ok := s.ctx.Model(s.id); ok {
		if sm, ok := m.(signatureModel); ok {
			return sm
		}
	}
	return s
}

// Instance returns the sole instance of a domain. Unless the domain is a
// functor, this never fails.
func (d *Domain) Instance() (*DomainInstance, error) {
	return d.apply(nil)
}

// Apply returns the canonical instance for args. When the functor is
// already finalized the instance is materialized before it is returned.
// Instances created while another instance is being rewritten are left
// pending and materialize on first use of Body or Representation, so a
// body that applies its own functor to a larger argument terminates.
func (f *Functor) Apply(args []types.TypeID) (*DomainInstance, error) {
	return f.apply(args)
}

// Instances returns every instance created so far, in creation order.
func (d *Domain) Instances() []*DomainInstance {
	return slices.Clone(d.instances.all())
}

func (d *Domain) apply(args []types.TypeID) (*DomainInstance, error) {
	if len(args) != d.Arity() {
		return nil, &InternalError{Kind: InternalArity, Op: "apply", Model: d.ctx.ModelName(d), Want: d.Arity(), Got: len(args)}
	}
	key := argsKey(args)
	if di, ok := d.instances.lookup(key); ok {
		return di, nil
	}
	typ := d.ctx.Types.Intern(types.MakeDomain(uint32(d.id), d.instances.next()))
	di := &DomainInstance{
		def:  d.self(),
		args: slices.Clone(args),
		typ:  typ,
	}
	di.view = newView(d.ctx)
	d.instances.allocate(key, di)
	if d.ctx.traced() {
		trace.Point(d.ctx.Tracer, trace.ScopeInstance, "instantiate", d.ctx.describe(typ), 0)
	}
	if d.finalized && d.ctx.rewriting == 0 {
		if err := di.materialize(); err != nil {
			return di, err
		}
	}
	return di, nil
}

func (d *Domain) self() definitionModel {
	if m, ok := d.ctx.Model(d.id); ok {
		if dm, ok := m.(definitionModel); ok {
			return dm
		}
	}
	return d
}

// describe renders a type handle for traces.
func (c *Context) describe(t types.TypeID) string {
	tt, ok := c.Types.Lookup(t)
	if !ok {
		return "<invalid>"
	}
	switch tt.Kind {
	case types.KindSignature, types.KindDomain:
		m, ok := c.Model(ID(tt.Owner))
		if !ok {
			return fmt.Sprintf("type#%d", t)
		}
		args, _ := c.Arguments(t)
		if len(args) == 0 {
			return c.ModelName(m)
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = c.describe(a)
		}
		return fmt.Sprintf("%s(%s)", c.ModelName(m), strings.Join(parts, ", "))
	case types.KindPercent:
		if m, ok := c.Model(ID(tt.Owner)); ok {
			return "%" + c.ModelName(m)
		}
		return "%"
	case types.KindAbstract:
		if info, ok := c.Types.AbstractInfo(t); ok {
			return c.name(info.Name)
		}
		return fmt.Sprintf("type#%d", t)
	default:
		return fmt.Sprintf("%s#%d", tt.Kind, t)
	}
}
