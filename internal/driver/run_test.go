package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"comma/internal/decls"
	"comma/internal/diag"
	"comma/internal/source"
	"comma/internal/trace"
	"comma/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stackUnit declares a signature S1 with f(x), a domain D satisfying it,
// and a functor Stack(T : S1) applied to D. With conflict set, D also
// inherits S2 with f(y).
func stackUnit(name string, conflict bool) Unit {
	return UnitFunc{UnitName: name, Fn: func(_ context.Context, s *Session) error {
		m, c := s.Models, s.Checker
		span := source.Span{File: 1}
		natural := m.Types.RegisterInteger(s.Intern("Natural"), span, 0, 1<<20)
		unary := func(keyword string) types.TypeID {
			return m.Types.RegisterFunction([]types.Param{{Name: s.Intern(keyword), Type: natural}}, natural)
		}

		s1 := m.NewSignature(s.Intern("S1"), span)
		s1.Public().Add(&decls.Decl{Kind: decls.KindFunction, Name: s.Intern("f"), Span: source.Span{File: 1, Start: 10, End: 11}, Type: unary("x")})
		si1, err := s1.Instance()
		if err != nil {
			return err
		}

		d := m.NewDomain(s.Intern("D"), span)
		c.AcquireSignature(d, si1, span)
		if conflict {
			s2 := m.NewSignature(s.Intern("S2"), span)
			s2.Public().Add(&decls.Decl{Kind: decls.KindFunction, Name: s.Intern("f"), Span: source.Span{File: 1, Start: 20, End: 21}, Type: unary("y")})
			si2, err := s2.Instance()
			if err != nil {
				return err
			}
			c.AcquireSignature(d, si2, span)
		}
		if err := d.SetImplementation(m.NewImplementation()); err != nil {
			return err
		}
		c.Define(d, &decls.Decl{Kind: decls.KindCarrier, Name: s.Intern("carrier"), Type: natural, Defined: true})
		c.Define(d, &decls.Decl{Kind: decls.KindFunction, Name: s.Intern("f"), Type: unary("x"), Defined: true})
		c.Finalize(d)
		dInst, err := d.Instance()
		if err != nil {
			return err
		}

		stack := m.NewFunctor(s.Intern("Stack"), span)
		elem, err := stack.AddFormal(s.Intern("T"), span, si1)
		if err != nil {
			return err
		}
		if err := stack.SetImplementation(m.NewImplementation()); err != nil {
			return err
		}
		c.Define(stack, &decls.Decl{Kind: decls.KindCarrier, Name: s.Intern("carrier"), Type: m.Types.Intern(types.MakeAccess(elem.Type())), Defined: true})
		handle, ok := c.Apply(stack, []types.TypeID{dInst.Type()}, span)
		if !ok {
			return errors.New("apply failed")
		}
		inst, _ := m.DomainInstance(handle)
		c.Representation(inst, span)
		c.Finalize(stack)
		return nil
	}}
}

func TestRunChecksUnitsIndependently(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Driver.Jobs = 2
	drv := NewWithTracer(cfg, nil)
	units := []Unit{stackUnit("a", false), stackUnit("b", true), stackUnit("c", false)}

	results, err := drv.Run(context.Background(), units)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if results[i].Unit != want || results[i].Err != nil {
			t.Fatalf("result %d: %+v", i, results[i])
		}
		if len(results[i].Timing.Phases) != 2 {
			t.Fatalf("expected build and pending phases, got %+v", results[i].Timing)
		}
	}
	if results[0].Failed() || results[2].Failed() {
		t.Fatalf("clean units failed: %v %v", results[0].Bag.Items(), results[2].Bag.Items())
	}
	if results[1].Bag.Count(diag.SemaConflictingDecl) != 1 {
		t.Fatalf("expected one conflict in unit b, got %v", results[1].Bag.Items())
	}
	if results[0].Models != 3 || results[1].Models != 4 {
		t.Fatalf("unexpected model counts: %d %d", results[0].Models, results[1].Models)
	}
	if merged := Merge(results); merged.Len() != 1 || !merged.HasErrors() {
		t.Fatalf("merged bag: %v", merged.Items())
	}
}

func TestFailFastCancelsRemainingUnits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Driver.Jobs = 1
	cfg.Driver.FailFast = true
	drv := NewWithTracer(cfg, nil)
	units := []Unit{stackUnit("bad", true), stackUnit("late", false), stackUnit("later", false)}

	results, err := drv.Run(context.Background(), units)
	if err != nil {
		t.Fatalf("fail-fast is not a run error: %v", err)
	}
	if !results[0].Failed() || results[0].Err != nil {
		t.Fatalf("first unit must fail with diagnostics: %+v", results[0])
	}
	for _, r := range results[1:] {
		if r.Err == nil || r.Bag != nil {
			t.Fatalf("unit %s must be cancelled, got %+v", r.Unit, r)
		}
	}
}

func TestBuildErrorIsKeptPerUnit(t *testing.T) {
	boom := errors.New("front end gave up")
	drv := NewWithTracer(DefaultConfig(), nil)
	results, err := drv.Run(context.Background(), []Unit{
		UnitFunc{UnitName: "broken", Fn: func(context.Context, *Session) error { return boom }},
		stackUnit("fine", false),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !errors.Is(results[0].Err, boom) || !results[0].Failed() {
		t.Fatalf("build error lost: %+v", results[0])
	}
	if results[1].Failed() {
		t.Fatalf("independent unit affected: %+v", results[1])
	}
}

func TestRunEmitsZapEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	drv := NewWithTracer(DefaultConfig(), trace.NewZapTracer(zap.New(core), trace.LevelDebug))
	if _, err := drv.Run(context.Background(), []Unit{stackUnit("traced", false)}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := drv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if n := logs.FilterMessage("unit").Len(); n != 2 {
		t.Fatalf("expected unit begin and end, got %d", n)
	}
	if logs.FilterMessage("finalize").Len() == 0 || logs.FilterMessage("instantiate").Len() == 0 {
		t.Fatalf("engine events missing: %d entries", logs.Len())
	}
}

func TestNewWithDisabledTracing(t *testing.T) {
	drv, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	results, err := drv.Run(context.Background(), nil)
	if err != nil || len(results) != 0 {
		t.Fatalf("empty run: %v %v", results, err)
	}
	if err := drv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	bad := DefaultConfig()
	bad.Trace.Level = "verbose"
	if _, err := New(bad); err == nil {
		t.Fatalf("invalid level accepted")
	}
}

func TestRunWritesHeapProfile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Profile.Mem = filepath.Join(t.TempDir(), "mem.pprof")
	drv := NewWithTracer(cfg, nil)
	if _, err := drv.Run(context.Background(), []Unit{stackUnit("profiled", false)}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(cfg.Profile.Mem); err != nil {
		t.Fatalf("heap profile missing: %v", err)
	}
}
