package sema

import (
	"fmt"

	"comma/internal/decls"
	"comma/internal/diag"
	"comma/internal/model"
	"comma/internal/source"
)

// AcquireSignature records that m satisfies sig and copies the
// declarations sig provides into m's public region. Each conflicting
// declaration is rejected and reported; the earlier one stays. Listing
// the same signature twice only warns.
func (c *Checker) AcquireSignature(m model.Model, sig *model.SignatureInstance, span source.Span) bool {
	if sig == nil {
		return false
	}
	if !m.Signatures().AddDirectSignature(sig, nil) {
		msg := fmt.Sprintf("'%s' already satisfies '%s'", c.ctx.ModelName(m), c.ctx.ModelName(sig.Model()))
		diag.ReportWarning(c.reporter, diag.SemaDuplicateSignature, span, msg).About(sig.Model().Name()).Emit()
		return false
	}
	for _, o := range c.ctx.Inherit(m.Public(), sig, m.Percent()) {
		c.reportOutcome(o)
	}
	return true
}

// Declare adds a local declaration to m's public region. A declaration
// indistinguishable from an inherited one replaces it.
func (c *Checker) Declare(m model.Model, d *decls.Decl) decls.Outcome {
	victim, out := m.Public().Override(d)
	if victim != nil && c.opts.NoteOverrides {
		name := c.name(d.Name)
		b := diag.NewReportBuilder(c.reporter, diag.SevInfo, diag.SemaOverride, d.Span, fmt.Sprintf("'%s' overrides an inherited declaration", name))
		b.About(d.Name).WithNote(victim.Root().Span, "inherited declaration is here").Emit()
	}
	c.reportOutcome(out)
	return out
}

// Define adds a declaration to the body of m.
func (c *Checker) Define(m definition, d *decls.Decl) decls.Outcome {
	impl := m.Implementation()
	if impl == nil {
		c.reportInternal(d.Span, fmt.Errorf("define %s in %s: no implementation attached", c.name(d.Name), c.ctx.ModelName(m)))
		return decls.Outcome{Decl: d, Result: decls.Conflict}
	}
	out := impl.Decls().Add(d)
	c.reportOutcome(out)
	return out
}
