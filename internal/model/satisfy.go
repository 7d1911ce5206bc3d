package model

import (
	"comma/internal/decls"
	"comma/internal/subst"
	"comma/internal/types"
)

// SignaturesOf returns the signatures type t is known to satisfy. Only
// self-types, formals and domain instances satisfy signatures.
func (c *Context) SignaturesOf(t types.TypeID) []*SignatureInstance {
	tt, ok := c.Types.Lookup(t)
	if !ok {
		return nil
	}
	switch tt.Kind {
	case types.KindPercent:
		if m, ok := c.Model(ID(tt.Owner)); ok {
			return m.Signatures().All()
		}
	case types.KindAbstract:
		if f, ok := c.Formal(t); ok {
			return f.sigs.All()
		}
	case types.KindDomain:
		if inst, ok := c.DomainInstance(t); ok {
			return inst.Signatures()
		}
	}
	return nil
}

// Satisfies reports whether t satisfies sig.
func (c *Context) Satisfies(t types.TypeID, sig *SignatureInstance) bool {
	if sig == nil {
		return true
	}
	for _, s := range c.SignaturesOf(t) {
		if s == sig {
			return true
		}
	}
	return false
}

// Inherit copies the declarations sig provides into dst, with sig's
// bindings applied and sig's self-type mapped to self. Outcomes are
// returned in order so the caller can report conflicts.
func (c *Context) Inherit(dst *decls.Region, sig *SignatureInstance, self types.TypeID) []decls.Outcome {
	rw := c.NewRewriter()
	_ = rw.InstallRewrites(sig)
	rw.AddRewrite(sig.model.Percent(), self)
	src := sig.model.Public().Roots()
	out := make([]decls.Outcome, 0, len(src))
	for _, d := range src {
		out = append(out, dst.Add(rw.RewriteDecl(d)))
	}
	return out
}

// BindFormals returns a rewriter that maps m's formals to args, for
// checking actuals against principal signatures that mention earlier
// formals.
func (c *Context) BindFormals(m Model, args []types.TypeID) *subst.Rewriter {
	rw := c.NewRewriter()
	for i, f := range m.Formals() {
		if i >= len(args) {
			break
		}
		rw.AddRewrite(f.typ, args[i])
	}
	return rw
}

// Rebind rewrites sig with rw and returns the resulting canonical
// instance.
func (c *Context) Rebind(sig *SignatureInstance, rw *subst.Rewriter) (*SignatureInstance, bool) {
	if sig == nil {
		return nil, false
	}
	return c.SignatureInstance(rw.Rewrite(sig.typ))
}
