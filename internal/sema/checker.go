package sema

import (
	"fmt"

	"comma/internal/decls"
	"comma/internal/diag"
	"comma/internal/model"
	"comma/internal/source"
	"comma/internal/trace"
	"comma/internal/types"
)

// Options configure a Checker.
type Options struct {
	Reporter diag.Reporter
	// NoteOverrides emits an informational diagnostic whenever a local
	// declaration replaces an inherited one.
	NoteOverrides bool
}

// Checker assembles models on behalf of the front end and turns engine
// outcomes into diagnostics.
type Checker struct {
	ctx      *model.Context
	reporter diag.Reporter
	opts     Options

	deferred  []deferredRep
	dependent []deferredRep
	resolved  map[types.TypeID]types.TypeID
}

// definition is satisfied by *model.Domain and *model.Functor.
type definition interface {
	model.Model
	Implementation() *model.Implementation
	Finalize() error
	IsFinalized() bool
	Broken() bool
	MarkBroken()
}

var (
	_ definition = (*model.Domain)(nil)
	_ definition = (*model.Functor)(nil)
)

// New creates a checker for ctx.
func New(ctx *model.Context, opts Options) *Checker {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Checker{
		ctx:      ctx,
		reporter: reporter,
		opts:     opts,
		resolved: make(map[types.TypeID]types.TypeID),
	}
}

// Context returns the model context the checker works on.
func (c *Checker) Context() *model.Context { return c.ctx }

func (c *Checker) name(id source.StringID) string {
	if s, ok := c.ctx.Names.Lookup(id); ok && s != "" {
		return s
	}
	return fmt.Sprintf("<anon#%d>", id)
}

func (c *Checker) reportConflict(o decls.Outcome) {
	name := c.name(o.Decl.Name)
	msg := fmt.Sprintf("%s '%s' conflicts with an earlier declaration", o.Decl.Kind, name)
	b := diag.ReportError(c.reporter, diag.SemaConflictingDecl, o.Decl.Root().Span, msg).About(o.Decl.Name)
	if prev := o.Existing.Root(); prev != nil && prev.Span != (source.Span{}) {
		b.WithNote(prev.Span, fmt.Sprintf("previous declaration of '%s' is here", name))
	}
	b.Emit()
	trace.Point(c.ctx.Tracer, trace.ScopeModel, "conflict", name, 0)
}

func (c *Checker) reportOutcome(o decls.Outcome) {
	for _, conflict := range o.Conflicts() {
		c.reportConflict(conflict)
	}
}

func (c *Checker) reportInternal(span source.Span, err error) {
	diag.ReportError(c.reporter, diag.InternalConsistency, span, err.Error()).Emit()
	trace.Failure(c.ctx.Tracer, trace.ScopeModel, "internal", err)
}
