package log

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

// Options selects the log sink and minimum level.
type Options struct {
	Level Level
	// File, if set, receives all log output (appended, 0600).
	File string
	// Discard drops output when no File is configured. The terminal UI
	// sets this so log lines never land on the screen it is drawing.
	Discard bool
}

var (
	mu         sync.Mutex
	logger     *zap.SugaredLogger
	loggerOnce sync.Once
	sinkCloser io.Closer
	atom       = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// initLogger installs the default stderr logger on first use.
func initLogger() {
	loggerOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if logger == nil {
			logger = newLogger(zapcore.Lock(os.Stderr))
		}
	})
}

func newLogger(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeCaller = nil
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, atom)
	return zap.New(core).Sugar()
}

// Init replaces the global logger according to opts. Any previously opened
// log file is closed.
func Init(opts Options) error {
	loggerOnce.Do(func() {})

	var (
		ws     zapcore.WriteSyncer
		closer io.Closer
	)
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		ws = zapcore.AddSync(f)
		closer = f
	case opts.Discard:
		ws = zapcore.AddSync(io.Discard)
	default:
		ws = zapcore.Lock(os.Stderr)
	}

	mu.Lock()
	old := sinkCloser
	if logger != nil {
		_ = logger.Sync()
	}
	logger = newLogger(ws)
	sinkCloser = closer
	mu.Unlock()

	if opts.Level != "" {
		SetLevel(opts.Level)
	}
	if old != nil {
		return old.Close()
	}
	return nil
}

// Close flushes the logger and releases the log file, if any. Logging keeps
// working afterwards on stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return nil
	}
	// Sync on stderr/stdout returns EINVAL on some platforms; ignore it.
	_ = logger.Sync()
	logger = newLogger(zapcore.Lock(os.Stderr))
	if sinkCloser == nil {
		return nil
	}
	err := sinkCloser.Close()
	sinkCloser = nil
	return err
}

func SetLevel(l Level) {
	initLogger()
	switch l {
	case LevelDebug:
		atom.SetLevel(zapcore.DebugLevel)
	case LevelError:
		atom.SetLevel(zapcore.ErrorLevel)
	default:
		atom.SetLevel(zapcore.InfoLevel)
	}
}

// ParseLevel maps a config string ("debug", "info", "error") to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, errors.New("unknown log level: " + s)
	}
}

func Debug(msg string, kv ...any) {
	current().Debugw(msg, kv...)
}

func Info(msg string, kv ...any) {
	current().Infow(msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	// Prepend error into key-value list.
	extended := append([]any{"err", err}, kv...)
	current().Errorw(msg, extended...)
}

func current() *zap.SugaredLogger {
	initLogger()
	mu.Lock()
	defer mu.Unlock()
	return logger
}
