package driver

import (
	"context"
	"fmt"

	"comma/internal/diag"
	"comma/internal/model"
	"comma/internal/observ"
	"comma/internal/sema"
	"comma/internal/source"
	"comma/internal/trace"
)

// Unit is one compilation unit. Build declares the unit's models through
// the session's checker; units share nothing, so they may be checked in
// parallel.
type Unit interface {
	Name() string
	Build(ctx context.Context, s *Session) error
}

// UnitFunc adapts a function to Unit.
type UnitFunc struct {
	UnitName string
	Fn       func(ctx context.Context, s *Session) error
}

func (u UnitFunc) Name() string { return u.UnitName }

func (u UnitFunc) Build(ctx context.Context, s *Session) error {
	if u.Fn == nil {
		return nil
	}
	return u.Fn(ctx, s)
}

// Session is the state of checking one unit.
type Session struct {
	Unit    string
	Names   *source.Interner
	Models  *model.Context
	Checker *sema.Checker
	Bag     *diag.Bag
	Timer   *observ.Timer
}

func newSession(unit string, cfg Config, tracer trace.Tracer) *Session {
	names := source.NewInterner()
	models := model.NewContext(names, tracer)
	bag := diag.NewBag(cfg.Diagnostics.Max)
	var reporter diag.Reporter = diag.BagReporter{Bag: bag}
	if minSev, err := diag.ParseSeverity(cfg.Diagnostics.MinSeverity); err == nil && minSev > diag.SevInfo {
		reporter = diag.SeverityFilter{Next: reporter, Min: minSev}
	}
	if cfg.Diagnostics.Dedup {
		reporter = diag.NewDedupReporter(reporter)
	}
	return &Session{
		Unit:   unit,
		Names:  names,
		Models: models,
		Checker: sema.New(models, sema.Options{
			Reporter:      reporter,
			NoteOverrides: cfg.Diagnostics.NoteOverrides,
		}),
		Bag:   bag,
		Timer: observ.NewTimer(unit),
	}
}

// Intern is a shortcut for s.Names.Intern.
func (s *Session) Intern(name string) source.StringID {
	return s.Names.Intern(name)
}

// run builds the unit, then reports representations that never became
// resolvable.
func (s *Session) run(ctx context.Context, u Unit) error {
	tracer := s.Models.Tracer
	span := trace.Begin(tracer, trace.ScopeUnit, "unit", 0).With("unit", s.Unit)

	endBuild := s.Timer.Track("build")
	build := span.Child(trace.ScopeUnit, "build")
	err := u.Build(trace.WithSpan(ctx, build), s)
	summary := fmt.Sprintf("%d models", len(s.Models.Models()))
	build.End(summary)
	endBuild(summary)
	if err != nil {
		trace.Failure(tracer, trace.ScopeUnit, "unit.build", err)
		span.End("error")
		return fmt.Errorf("unit %s: %w", s.Unit, err)
	}

	endPending := s.Timer.Track("pending")
	resolved := s.Checker.RetryDeferred()
	s.Checker.ReportPending()
	endPending(fmt.Sprintf("%d resolved, %d deferred, %d dependent", resolved, s.Checker.Deferred(), s.Checker.Dependent()))

	s.Bag.Sort()
	span.End(fmt.Sprintf("%d diagnostics", s.Bag.Len()))
	return nil
}
