package trace

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapTracer forwards events to a zap logger. Begin/point events log at
// debug, span ends at info, failures at error.
type ZapTracer struct {
	logger *zap.Logger
	level  Level
}

// NewZapTracer wraps logger.
func NewZapTracer(logger *zap.Logger, level Level) *ZapTracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapTracer{logger: logger.Named("comma"), level: level}
}

// Emit logs ev as structured fields.
func (t *ZapTracer) Emit(ev *Event) {
	if ev == nil {
		return
	}
	if ev.Kind != KindFailure && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	fields := make([]zap.Field, 0, 6+len(ev.Attrs))
	fields = append(fields,
		zap.Uint64("seq", ev.Seq),
		zap.String("scope", ev.Scope.String()),
		zap.String("kind", ev.Kind.String()),
	)
	if ev.SpanID != 0 {
		fields = append(fields, zap.Uint64("span", ev.SpanID))
	}
	if ev.ParentID != 0 {
		fields = append(fields, zap.Uint64("parent", ev.ParentID))
	}
	if ev.Detail != "" {
		fields = append(fields, zap.String("detail", ev.Detail))
	}
	for _, a := range ev.Attrs {
		fields = append(fields, zap.String(a.Key, a.Value))
	}
	lvl := zapcore.DebugLevel
	switch ev.Kind {
	case KindSpanEnd:
		lvl = zapcore.InfoLevel
	case KindFailure:
		lvl = zapcore.ErrorLevel
	}
	if ce := t.logger.Check(lvl, ev.Name); ce != nil {
		ce.Write(fields...)
	}
}

// Flush syncs the logger.
func (t *ZapTracer) Flush() error {
	// Sync on stderr/stdout returns EINVAL on some platforms; ignore it there.
	_ = t.logger.Sync() //nolint:errcheck
	return nil
}

func (t *ZapTracer) Close() error  { return t.Flush() }
func (t *ZapTracer) Level() Level  { return t.level }
func (t *ZapTracer) Enabled() bool { return t.level > LevelOff }
