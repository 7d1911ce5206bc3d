package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Tracer receives trace events. Implementations must be goroutine-safe:
// the driver checks independent units in parallel against one tracer.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards every event.
var Nop Tracer = nopTracer{}

// Sink selects the tracer implementation.
type Sink uint8

const (
	SinkStream Sink = iota + 1 // text lines to a writer
	SinkZap                    // structured zap logger
)

// ParseSink converts a config string to a Sink.
func ParseSink(s string) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stream":
		return SinkStream, nil
	case "zap":
		return SinkZap, nil
	default:
		return SinkStream, fmt.Errorf("invalid trace sink: %q (expected: stream|zap)", s)
	}
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Sink       Sink
	Output     io.Writer   // stream sink; falls back to OutputPath
	OutputPath string      // "-" or "" means stderr
	Logger     *zap.Logger // zap sink; a production logger is built when nil
}

// New builds a Tracer from cfg. LevelOff always yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	switch cfg.Sink {
	case SinkZap:
		logger := cfg.Logger
		if logger == nil {
			zcfg := zap.NewProductionConfig()
			if cfg.Level >= LevelDebug {
				zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
			}
			var err error
			logger, err = zcfg.Build()
			if err != nil {
				return nil, fmt.Errorf("failed to build zap logger: %w", err)
			}
		}
		return NewZapTracer(logger, cfg.Level), nil
	case SinkStream, 0:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		return NewStreamTracer(w, cfg.Level), nil
	default:
		return nil, fmt.Errorf("unknown trace sink: %v", cfg.Sink)
	}
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

var (
	globalSeq   uint64
	globalSpans uint64
)

func nextSeq() uint64 { return atomic.AddUint64(&globalSeq, 1) }

func nextSpanID() uint64 { return atomic.AddUint64(&globalSpans, 1) }

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}

// Failure emits an internal-failure event; it passes every level except off.
func Failure(t Tracer, scope Scope, name string, err error) {
	if t == nil || !t.Enabled() || err == nil {
		return
	}
	t.Emit(&Event{
		Time:   time.Now(),
		Seq:    nextSeq(),
		Kind:   KindFailure,
		Scope:  scope,
		Name:   name,
		Detail: err.Error(),
	})
}
