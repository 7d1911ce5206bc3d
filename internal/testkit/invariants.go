package testkit

import (
	"fmt"

	"comma/internal/model"
)

// CheckModelInvariants walks every model of ctx and verifies the
// structural invariants of the instance engine:
// 1) every instance is the canonical one for its type handle and carries
// one argument per formal
// 2) every direct signature of a model is also in its transitive set
// 3) no instance of a finalized definition is unbound, and the public view
// of each names every public root of the definition
func CheckModelInvariants(ctx *model.Context) error {
	if ctx == nil {
		return fmt.Errorf("nil context")
	}
	for _, m := range ctx.Models() {
		name := ctx.ModelName(m)
		set := m.Signatures()
		for _, sig := range set.Direct() {
			if !set.Contains(sig) {
				return fmt.Errorf("%s: direct signature %s missing from the transitive set", name, ctx.ModelName(sig.Model()))
			}
			if set.IsIndirect(sig) {
				return fmt.Errorf("%s: signature %s is both direct and indirect", name, ctx.ModelName(sig.Model()))
			}
		}
		var err error
		switch m := m.(type) {
		case *model.Signature:
			err = checkSignatureInstances(ctx, name, m)
		case *model.Variety:
			err = checkSignatureInstances(ctx, name, &m.Signature)
		case *model.Domain:
			err = checkDomainInstances(ctx, name, m)
		case *model.Functor:
			err = checkDomainInstances(ctx, name, &m.Domain)
		default:
			err = fmt.Errorf("%s: unexpected model type %T", name, m)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func checkSignatureInstances(ctx *model.Context, name string, s *model.Signature) error {
	for _, inst := range s.Instances() {
		if got, ok := ctx.SignatureInstance(inst.Type()); !ok || got != inst {
			return fmt.Errorf("%s: instance handle %d is not canonical", name, inst.Type())
		}
		if len(inst.Arguments()) != s.Arity() {
			return fmt.Errorf("%s: instance has %d arguments, arity is %d", name, len(inst.Arguments()), s.Arity())
		}
	}
	return nil
}

func checkDomainInstances(ctx *model.Context, name string, d *model.Domain) error {
	for _, inst := range d.Instances() {
		if got, ok := ctx.DomainInstance(inst.Type()); !ok || got != inst {
			return fmt.Errorf("%s: instance handle %d is not canonical", name, inst.Type())
		}
		if len(inst.Arguments()) != d.Arity() {
			return fmt.Errorf("%s: instance has %d arguments, arity is %d", name, len(inst.Arguments()), d.Arity())
		}
		if !d.IsFinalized() {
			continue
		}
		if state := inst.State(); state == model.StateUnbound {
			return fmt.Errorf("%s: instance of a finalized definition is %s", name, state)
		}
		view := inst.PublicView()
		for _, decl := range d.Public().Roots() {
			if len(view.Lookup(decl.Name)) == 0 {
				return fmt.Errorf("%s: public view lacks %s", name, ctx.Names.MustLookup(decl.Name))
			}
		}
	}
	return nil
}
