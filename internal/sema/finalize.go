package sema

import (
	"fmt"

	"comma/internal/decls"
	"comma/internal/diag"
	"comma/internal/trace"
)

// CheckExports verifies that the body of m defines everything m exports,
// including what its signatures require, and that it has a carrier. A
// failing model is marked broken.
func (c *Checker) CheckExports(m definition) bool {
	impl := m.Implementation()
	if impl == nil {
		return false
	}
	ok := true
	for _, d := range m.Public().Roots() {
		if c.exported(impl.Decls(), d) {
			continue
		}
		ok = false
		name := c.name(d.Name)
		msg := fmt.Sprintf("'%s' does not define %s '%s'", c.ctx.ModelName(m), d.Kind, name)
		b := diag.ReportError(c.reporter, diag.SemaMissingExport, m.Span(), msg).About(d.Name)
		if root := d.Root(); root != nil && root.Span != d.Span {
			b.WithNote(root.Span, "required here")
		}
		b.Emit()
	}
	if impl.Carrier() == nil {
		ok = false
		msg := fmt.Sprintf("'%s' has no carrier", c.ctx.ModelName(m))
		diag.ReportError(c.reporter, diag.SemaMissingCarrier, m.Span(), msg).About(m.Name()).Emit()
	}
	if !ok {
		m.MarkBroken()
	}
	return ok
}

func (c *Checker) exported(body *decls.Region, d *decls.Decl) bool {
	if d.Defined {
		return true
	}
	switch d.Kind {
	case decls.KindType:
		return body.LookupKind(d.Name, decls.KindType) != nil
	case decls.KindEnumLiteral:
		return true
	default:
		found := body.Find(d)
		return found != nil && found.Defined
	}
}

// Finalize runs the export check and finalizes m, then retries deferred
// representations that may have been waiting for it. A model failing the
// export check is still finalized so that its instances stay inspectable.
func (c *Checker) Finalize(m definition) bool {
	span := trace.Begin(c.ctx.Tracer, trace.ScopeModel, "sema.finalize", 0).With("model", c.ctx.ModelName(m))
	if m.Implementation() == nil {
		c.reportInternal(m.Span(), fmt.Errorf("finalize %s: no implementation attached", c.ctx.ModelName(m)))
		m.MarkBroken()
		span.End("broken")
		return false
	}
	ok := c.CheckExports(m)
	if err := m.Finalize(); err != nil {
		c.reportInternal(m.Span(), err)
		ok = false
	}
	c.RetryDeferred()
	span.End(fmt.Sprintf("ok=%t", ok))
	return ok
}
