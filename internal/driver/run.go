package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"comma/internal/diag"
	"comma/internal/observ"
	"comma/internal/prof"
	"comma/internal/trace"
)

// errFailFast cancels the remaining units once one unit has errors.
var errFailFast = errors.New("unit reported errors")

// Result is the outcome of checking one unit.
type Result struct {
	Unit   string
	Bag    *diag.Bag
	Timing observ.Report
	Models int
	// Err is set when the unit could not be checked at all (build failure
	// or cancellation); diagnostics are in Bag.
	Err error
}

// Failed reports whether the unit has errors of any kind.
func (r Result) Failed() bool {
	return r.Err != nil || (r.Bag != nil && r.Bag.HasErrors())
}

// Driver checks compilation units.
type Driver struct {
	cfg    Config
	tracer trace.Tracer
}

// New creates a driver and opens the configured tracer.
func New(cfg Config) (*Driver, error) {
	tcfg, err := cfg.TracerConfig()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(tcfg)
	if err != nil {
		return nil, err
	}
	return &Driver{cfg: cfg, tracer: tracer}, nil
}

// NewWithTracer creates a driver that emits to tracer.
func NewWithTracer(cfg Config, tracer trace.Tracer) *Driver {
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Driver{cfg: cfg, tracer: tracer}
}

// Close flushes and closes the tracer.
func (d *Driver) Close() error {
	if err := d.tracer.Flush(); err != nil {
		return err
	}
	return d.tracer.Close()
}

// Run checks units in parallel, at most [driver].jobs at a time. Results
// are returned in the order of units. With [driver].fail_fast the first
// unit with errors cancels the units that have not started; they get
// Err set to the cancellation cause.
func (d *Driver) Run(ctx context.Context, units []Unit) (_ []Result, err error) {
	results := make([]Result, len(units))
	if len(units) == 0 {
		return results, nil
	}
	if paths := d.cfg.Profile.paths(); paths.Enabled() {
		p, perr := prof.Start(paths)
		if perr != nil {
			return nil, perr
		}
		defer func() {
			if stopErr := p.Stop(); stopErr != nil && err == nil {
				err = stopErr
			}
		}()
	}
	ctx = trace.WithTracer(ctx, d.tracer)
	jobs := d.cfg.Driver.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(units)))
	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = Result{Unit: u.Name(), Err: context.Cause(gctx)}
				return nil
			default:
			}
			results[i] = d.runUnit(gctx, u)
			if d.cfg.Driver.FailFast && results[i].Failed() {
				return fmt.Errorf("%s: %w", u.Name(), errFailFast)
			}
			return nil
		})
	}
	err = g.Wait()
	if errors.Is(err, errFailFast) {
		err = nil
	}
	if err == nil {
		err = ctx.Err()
	}
	return results, err
}

func (d *Driver) runUnit(ctx context.Context, u Unit) Result {
	s := newSession(u.Name(), d.cfg, trace.FromContext(ctx))
	err := s.run(ctx, u)
	return Result{
		Unit:   s.Unit,
		Bag:    s.Bag,
		Timing: s.Timer.Report(),
		Models: len(s.Models.Models()),
		Err:    err,
	}
}

// Merge collects the diagnostics of all results into one sorted bag.
func Merge(results []Result) *diag.Bag {
	out := diag.NewBag(0)
	for _, r := range results {
		out.Merge(r.Bag)
	}
	out.Sort()
	return out
}
