package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "tmux-popup-files.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	level        = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	zapLogger    *zap.Logger
	sink         *os.File
)

// current opens the log file on first use so that nothing is created on disk
// until there is something to write.
func current() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if zapLogger != nil {
		return zapLogger
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		zapLogger = zap.NewNop()
		return zapLogger
	}
	sink = f

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = "time"
	encoderCfg.MessageKey = "message"

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(f)),
		level,
	)
	zapLogger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return zapLogger
}

// Error writes err to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error(err.Error(), zap.Error(err))
}

// SetTraceEnabled toggles emission of structured trace entries. Verbose logr
// output follows the same switch.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
	if enabled {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	mu.Unlock()
	if !enabled {
		return
	}
	fields := []zap.Field{zap.String("event", event)}
	if payload != nil {
		fields = append(fields, zap.Any("payload", payload))
	}
	current().Info(event, fields...)
}

// Logger exposes the shared sink as a logr.Logger for packages that take one.
func Logger() logr.Logger {
	return zapr.NewLogger(current().WithOptions(zap.AddCallerSkip(-1)))
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	mu.Lock()
	zl := zapLogger
	mu.Unlock()
	if zl == nil {
		return
	}
	if err := zl.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

func closeLocked() {
	if zapLogger != nil {
		_ = zapLogger.Sync()
		zapLogger = nil
	}
	if sink != nil {
		_ = sink.Close()
		sink = nil
	}
}

func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF)
}
