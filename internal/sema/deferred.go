package sema

import (
	"errors"
	"fmt"

	"comma/internal/diag"
	"comma/internal/model"
	"comma/internal/source"
	"comma/internal/types"
)

type deferredRep struct {
	inst   *model.DomainInstance
	span   source.Span
	reason error
}

// deferRepresentation queues inst. Instances waiting for a finalize are
// retried; dependent ones are only recorded, since their arguments never
// change and they resolve through RepresentationIn instead.
func (c *Checker) deferRepresentation(inst *model.DomainInstance, span source.Span, reason error) {
	queue := &c.deferred
	if errors.Is(reason, model.ErrDependent) {
		queue = &c.dependent
	}
	for i := range *queue {
		if (*queue)[i].inst == inst {
			(*queue)[i].reason = reason
			return
		}
	}
	*queue = append(*queue, deferredRep{inst: inst, span: span, reason: reason})
}

// Deferred counts representations waiting for their definition to be
// finalized.
func (c *Checker) Deferred() int {
	return len(c.deferred)
}

// Dependent counts dependent instances whose representation was asked for
// outside an enclosing instance.
func (c *Checker) Dependent() int {
	return len(c.dependent)
}

// Resolved returns a representation resolved earlier, directly or by
// RetryDeferred.
func (c *Checker) Resolved(inst *model.DomainInstance) (types.TypeID, bool) {
	rep, ok := c.resolved[inst.Type()]
	return rep, ok
}

// RetryDeferred tries every representation waiting for a finalize again
// and returns how many resolved.
func (c *Checker) RetryDeferred() int {
	if len(c.deferred) == 0 {
		return 0
	}
	pending := c.deferred
	c.deferred = nil
	n := 0
	for _, d := range pending {
		if _, ok := c.Representation(d.inst, d.span); ok {
			n++
		}
	}
	return n
}

// ReportPending warns about representations that stayed unresolvable
// because their definition was never finalized. Dependent instances are
// not reported; they are resolved through their concrete counterparts.
func (c *Checker) ReportPending() {
	for _, d := range c.deferred {
		msg := fmt.Sprintf("representation of '%s' was never resolved", c.ctx.ModelName(d.inst.Model()))
		diag.ReportWarning(c.reporter, diag.SemaDeferredInstance, d.span, msg).
			About(d.inst.Model().Name()).
			Emit()
	}
}
