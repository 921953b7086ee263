package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging interface used across the planner
// packages. It mirrors the subset of go.viam.com/rdk/logging that this
// repo actually exercises.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Named(name string) Logger
}

type impl struct {
	sugar *zap.SugaredLogger
}

func (l *impl) Debug(args ...interface{})                      { l.sugar.Debug(args...) }
func (l *impl) Debugf(template string, args ...interface{})    { l.sugar.Debugf(template, args...) }
func (l *impl) Debugw(msg string, kv ...interface{})           { l.sugar.Debugw(msg, kv...) }
func (l *impl) Info(args ...interface{})                       { l.sugar.Info(args...) }
func (l *impl) Infof(template string, args ...interface{})     { l.sugar.Infof(template, args...) }
func (l *impl) Infow(msg string, kv ...interface{})            { l.sugar.Infow(msg, kv...) }
func (l *impl) Warn(args ...interface{})                       { l.sugar.Warn(args...) }
func (l *impl) Warnf(template string, args ...interface{})     { l.sugar.Warnf(template, args...) }
func (l *impl) Warnw(msg string, kv ...interface{})            { l.sugar.Warnw(msg, kv...) }
func (l *impl) Error(args ...interface{})                      { l.sugar.Error(args...) }
func (l *impl) Errorf(template string, args ...interface{})    { l.sugar.Errorf(template, args...) }
func (l *impl) Errorw(msg string, kv ...interface{})           { l.sugar.Errorw(msg, kv...) }

func (l *impl) Named(name string) Logger {
	return &impl{sugar: l.sugar.Named(name)}
}

// NewLogger returns a production logger named name, logging at INFO and
// above to stderr in console form.
func NewLogger(name string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	z, err := cfg.Build()
	if err != nil {
		// Config above is static and always valid; fall back rather than panic.
		z = zap.NewNop()
	}
	return &impl{sugar: z.Named(name).Sugar()}
}

// testWriter adapts testing.TB.Log to an io.Writer so zap can write
// through the test's own logging, keeping -v output ordered per test.
type testWriter struct {
	tb testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}

func (w testWriter) Sync() error { return nil }

// NewTestLogger returns a Logger at DEBUG level that writes through tb.Log,
// for use in *_test.go files.
func NewTestLogger(tb testing.TB) Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(testWriter{tb}),
		zapcore.DebugLevel,
	)
	z := zap.New(core)
	return &impl{sugar: z.Sugar()}
}
