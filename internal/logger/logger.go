package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/MrSnakeDoc/kship/internal/printer"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON output (CI)
	Color bool      // colorize (console)
	Out   io.Writer // default os.Stdout
}

var (
	mu       sync.RWMutex
	zlog     *zap.SugaredLogger
	out      io.Writer = os.Stdout
	p        *printer.ColorPrinter
	curLevel = zapcore.InfoLevel
	ready    atomic.Bool
)

func init() {
	Configure(Options{Level: "info", Color: true})
}

// Configure sets up the global logger.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	configure(opts)
}

func configure(opts Options) {
	if opts.Out != nil {
		out = opts.Out
	}

	var enc zapcore.Encoder
	if opts.JSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = ""
		encCfg.CallerKey = ""
		encCfg.MessageKey = "msg"
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	}

	level := parseLevel(opts.Level)
	ws := zapcore.AddSync(writerAdapter{out})
	core := zapcore.NewCore(enc, ws, level)

	zlog = zap.New(core).Sugar()
	p = printer.NewColorPrinter(opts.Color && !opts.JSON)

	ready.Store(true)
}

// SetLevel adjusts current level at runtime ("debug","info","warn","error").
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	configure(Options{Level: level, Out: out, Color: p != nil && p.Colored})
}

// SetOutput replaces the logger writer (use io.Discard in tests).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	configure(Options{Level: curLevel.String(), Out: w, Color: p != nil && p.Colored})
}

// UseTestMode silences logs during tests.
func UseTestMode() {
	Configure(Options{
		Level: "error",
		Out:   io.Discard,
	})
}

// Out returns the current output writer (for tables).
func Out() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

// Highlight colors a value (pod names, commands) inside a message.
func Highlight(s string) string {
	mu.RLock()
	defer mu.RUnlock()
	if p == nil {
		return s
	}
	return p.Highlight("%s", s)
}

type colorFunc func(format string, args ...interface{}) string

// emit formats msg through the printer color for its kind and hands it to zap.
func emit(level zapcore.Level, color func(*printer.ColorPrinter) colorFunc, prefix, msg string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if !ready.Load() || p == nil || zlog == nil {
		return
	}

	line := color(p)(prefix+msg, args...)
	switch level {
	case zapcore.DebugLevel:
		zlog.Debug(line)
	case zapcore.WarnLevel:
		zlog.Warn(line)
	case zapcore.ErrorLevel:
		zlog.Error(line)
	default:
		zlog.Info(line)
	}
}

func Info(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, func(c *printer.ColorPrinter) colorFunc { return c.Info }, "✨ ", msg, args...)
}

// Step announces a task stage, e.g. "Applying all Kubernetes resources...".
func Step(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, func(c *printer.ColorPrinter) colorFunc { return c.Step }, "-----> ", msg, args...)
}

func Success(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, func(c *printer.ColorPrinter) colorFunc { return c.Success }, "✅ ", msg, args...)
}

func LogError(msg string, args ...interface{}) {
	emit(zapcore.ErrorLevel, func(c *printer.ColorPrinter) colorFunc { return c.Error }, "❌ ", msg, args...)
}

func Warn(msg string, args ...interface{}) {
	emit(zapcore.WarnLevel, func(c *printer.ColorPrinter) colorFunc { return c.Warning }, "⚠️ ", msg, args...)
}

func Debug(msg string, args ...interface{}) {
	emit(zapcore.DebugLevel, func(c *printer.ColorPrinter) colorFunc { return c.Debug }, "🛠️ ", msg, args...)
}

// ---- Tables ----

func CreateTable(headers []string) *tablewriter.Table {
	mu.RLock()
	defer mu.RUnlock()
	t := tablewriter.NewTable(out)
	t.Header(headers)
	return t
}

// ---- internals ----

type writerAdapter struct{ w io.Writer }

func (wa writerAdapter) Write(p []byte) (int, error) { return wa.w.Write(p) }

// parseLevel falls back to info for unknown names.
func parseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(s)
	if err != nil || s == "" {
		lvl = zapcore.InfoLevel
	}
	curLevel = lvl
	return lvl
}
