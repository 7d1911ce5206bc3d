package sema

import (
	"errors"
	"fmt"

	"comma/internal/diag"
	"comma/internal/model"
	"comma/internal/source"
	"comma/internal/types"
)

// Apply checks an application of m to args and returns the handle of the
// canonical instance. Arity is validated before the engine is asked for
// the instance, and every actual must satisfy its formal's principal
// signature with the earlier formals bound.
func (c *Checker) Apply(m model.Model, args []types.TypeID, span source.Span) (types.TypeID, bool) {
	if !m.Kind().IsParameterized() {
		if len(args) > 0 {
			msg := fmt.Sprintf("'%s' is not parameterized", c.ctx.ModelName(m))
			diag.ReportError(c.reporter, diag.SemaNotParameterized, span, msg).About(m.Name()).Emit()
			return types.NoTypeID, false
		}
	} else if len(args) != m.Arity() {
		msg := fmt.Sprintf("'%s' takes %d arguments, got %d", c.ctx.ModelName(m), m.Arity(), len(args))
		diag.ReportError(c.reporter, diag.SemaArityMismatch, span, msg).About(m.Name()).Emit()
		return types.NoTypeID, false
	}
	if !c.checkActuals(m, args, span) {
		return types.NoTypeID, false
	}

	var (
		id  types.TypeID
		err error
	)
	switch m := m.(type) {
	case *model.Variety:
		var si *model.SignatureInstance
		if si, err = m.Apply(args); err == nil {
			id = si.Type()
		}
	case *model.Signature:
		var si *model.SignatureInstance
		if si, err = m.Instance(); err == nil {
			id = si.Type()
		}
	case *model.Functor:
		var di *model.DomainInstance
		if di, err = m.Apply(args); err == nil {
			id = di.Type()
		}
	case *model.Domain:
		var di *model.DomainInstance
		if di, err = m.Instance(); err == nil {
			id = di.Type()
		}
	default:
		err = fmt.Errorf("apply: unexpected model %T", m)
	}
	if err != nil {
		c.reportInternal(span, err)
		return types.NoTypeID, false
	}
	return id, true
}

func (c *Checker) checkActuals(m model.Model, args []types.TypeID, span source.Span) bool {
	ok := true
	rw := c.ctx.BindFormals(m, args)
	for i, formal := range m.Formals() {
		principal := formal.Principal()
		if principal == nil {
			continue
		}
		want, found := c.ctx.Rebind(principal, rw)
		if found && c.ctx.Satisfies(args[i], want) {
			continue
		}
		ok = false
		msg := fmt.Sprintf("argument %d of '%s' does not satisfy '%s'", i+1, c.ctx.ModelName(m), c.ctx.ModelName(principal.Model()))
		diag.ReportError(c.reporter, diag.SemaUnsatisfiedSignature, span, msg).
			About(formal.Name()).
			WithNote(formal.Span(), fmt.Sprintf("formal '%s' is declared here", c.name(formal.Name()))).
			Emit()
	}
	return ok
}

// Representation asks for the representation of inst. Instances whose
// definition is not finalized yet are queued and reported as not
// resolvable; RetryDeferred picks them up again. Dependent instances are
// recorded and resolve only through RepresentationIn.
func (c *Checker) Representation(inst *model.DomainInstance, span source.Span) (types.TypeID, bool) {
	if rep, ok := c.resolved[inst.Type()]; ok {
		return rep, true
	}
	rep, err := inst.Representation()
	switch {
	case err == nil:
		c.resolved[inst.Type()] = rep
		return rep, true
	case errors.Is(err, model.ErrDependent), errors.Is(err, model.ErrNotFinalized):
		c.deferRepresentation(inst, span, err)
		return types.NoTypeID, false
	default:
		c.reportInternal(span, err)
		return types.NoTypeID, false
	}
}

// RepresentationIn resolves inst as seen from inside enclosing: a dependent
// instance is first rebound to its concrete counterpart through the
// enclosing instance's arguments.
func (c *Checker) RepresentationIn(inst, enclosing *model.DomainInstance, span source.Span) (types.TypeID, bool) {
	return c.Representation(inst.In(enclosing), span)
}
