package model

import (
	"errors"
	"strconv"

	"comma/internal/decls"
	"comma/internal/trace"
)

// Implementation is the body of a domain or the shared template of a
// functor.
type Implementation struct {
	decls *decls.Region
}

// NewImplementation returns an empty body.
func (c *Context) NewImplementation() *Implementation {
	return &Implementation{decls: decls.NewRegion(c.Types)}
}

// Decls is the region holding the body's declarations.
func (i *Implementation) Decls() *decls.Region { return i.decls }

// Carrier returns the representation declaration, if the body has one.
func (i *Implementation) Carrier() *decls.Decl { return i.decls.Carrier() }

// definition holds what domains and functors have beyond base.
type definition struct {
	impl      *Implementation
	finalized bool
	broken    bool
}

// Implementation returns the attached body, or nil.
func (d *Domain) Implementation() *Implementation { return d.impl }

// IsFinalized reports whether Finalize has run.
func (d *Domain) IsFinalized() bool { return d.finalized }

// Broken reports whether the model failed its export check; broken models
// must not reach code generation.
func (d *Domain) Broken() bool { return d.broken }

// MarkBroken flags the model as unusable for code generation.
func (d *Domain) MarkBroken() { d.broken = true }

// SetImplementation attaches the body. The body is frozen by Finalize.
func (d *Domain) SetImplementation(impl *Implementation) error {
	if d.finalized {
		return &InternalError{Kind: InternalSealed, Op: "set implementation of", Model: d.ctx.ModelName(d)}
	}
	d.impl = impl
	return nil
}

// Finalize makes the body available to instances and materializes every
// instance created so far; instances created later materialize at
// construction. A non-parameterized domain gets its sole instance here.
// Calling Finalize again does nothing.
func (d *Domain) Finalize() error {
	if d.finalized {
		return nil
	}
	name := d.ctx.ModelName(d)
	if d.impl == nil {
		err := &InternalError{Kind: InternalMissingImplementation, Op: "finalize", Model: name}
		trace.Failure(d.ctx.Tracer, trace.ScopeModel, "finalize", err)
		return err
	}
	span := trace.Begin(d.ctx.Tracer, trace.ScopeModel, "finalize", 0).With("model", name)
	d.finalized = true
	if !d.kind.IsParameterized() {
		if _, err := d.apply(nil); err != nil {
			span.End("error")
			return err
		}
	}
	var errs []error
	for _, inst := range d.instances.all() {
		if err := inst.materialize(); err != nil {
			errs = append(errs, err)
		}
	}
	span.End(strconv.Itoa(d.instances.len()) + " instances")
	return errors.Join(errs...)
}
