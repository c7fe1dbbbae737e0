package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/framelearn/pkg/errors"
)

// ZerologLogger implements Logger on top of zerolog.
// Loggers derived through With share the level of their parent.
type ZerologLogger struct {
	logger zerolog.Logger
	level  *atomic.Int32
}

// NewZerologLogger creates a JSON logger writing to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	lv := &atomic.Int32{}
	lv.Store(int32(level))
	return &ZerologLogger{
		logger: zerolog.New(w).With().Timestamp().Logger(),
		level:  lv,
	}
}

// Debug implements Logger.Debug.
func (z *ZerologLogger) Debug(msg string, fields ...any) {
	if z.enabled(LevelDebug) {
		z.emit(z.logger.Debug(), msg, fields)
	}
}

// Info implements Logger.Info.
func (z *ZerologLogger) Info(msg string, fields ...any) {
	if z.enabled(LevelInfo) {
		z.emit(z.logger.Info(), msg, fields)
	}
}

// Warn implements Logger.Warn.
func (z *ZerologLogger) Warn(msg string, fields ...any) {
	if z.enabled(LevelWarn) {
		z.emit(z.logger.Warn(), msg, fields)
	}
}

// Error implements Logger.Error.
func (z *ZerologLogger) Error(msg string, fields ...any) {
	if z.enabled(LevelError) {
		z.emit(z.logger.Error(), msg, fields)
	}
}

// With implements Logger.With.
func (z *ZerologLogger) With(fields ...any) Logger {
	ctx := z.logger.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		switch v := fields[i+1].(type) {
		case error:
			ctx = ctx.AnErr(key, v)
		default:
			ctx = ctx.Interface(key, v)
		}
	}
	return &ZerologLogger{logger: ctx.Logger(), level: z.level}
}

// Enabled implements Logger.Enabled.
func (z *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return z.enabled(level)
}

func (z *ZerologLogger) enabled(level Level) bool {
	return Level(z.level.Load()) <= level
}

func (z *ZerologLogger) emit(ev *zerolog.Event, msg string, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		switch v := fields[i+1].(type) {
		case error:
			ev = ev.AnErr(key, v)
			if key == ErrAttrKey {
				if st := extractStacktrace(v); st != "" {
					ev = ev.Str(StacktraceAttrKey, st)
				}
			}
			if m, ok := v.(zerolog.LogObjectMarshaler); ok {
				ev = ev.Object(key+"_detail", m)
			}
		case zerolog.LogObjectMarshaler:
			ev = ev.Object(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	if len(fields)%2 == 1 {
		ev = ev.Interface("!BADKEY", fields[len(fields)-1])
	}
	ev.Msg(msg)
}

// ZerologProvider hands out component loggers sharing one writer and level.
type ZerologProvider struct {
	root *ZerologLogger
}

// NewZerologProvider creates a provider writing JSON records to w.
func NewZerologProvider(w io.Writer, level Level) *ZerologProvider {
	return &ZerologProvider{root: NewZerologLogger(w, level)}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	return p.root
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return p.root.With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *ZerologProvider) SetLevel(level Level) {
	p.root.level.Store(int32(level))
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(os.Stderr, LevelWarn)
)

func init() {
	errors.SetZerologWarnFunc(func(w error) {
		GetLoggerWithName("warnings").Warn(w.Error(), ErrAttrKey, w)
	})
}

// SetProvider replaces the process-wide provider and returns the previous one.
func SetProvider(p LoggerProvider) LoggerProvider {
	providerMu.Lock()
	defer providerMu.Unlock()
	prev := provider
	provider = p
	return prev
}

// SetLevel changes the level of the current provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	provider.SetLevel(level)
}

// GetLogger returns the default logger of the current provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a component logger of the current provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}
