package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Types int

const (
	Info Types = iota
	Error
	Warn
	Fatal
)

type Logger struct {
	tag  string
	base *zap.Logger
}

type manager struct {
	base    *zap.Logger
	logFile *os.File
}

var (
	logManager *manager
	once       sync.Once
	mu         sync.RWMutex
)

// InitLogger sets up the process-wide sinks. In dev mode lines go to view
// (the debug console); with a logPath, JSON lines go to a timestamped file.
// Only the first call has any effect.
func InitLogger(dev bool, logPath string, view io.Writer) error {
	var initErr error
	once.Do(func() {
		m, err := newManager(dev, logPath, view, time.Now())
		if err != nil {
			initErr = err
			return
		}
		mu.Lock()
		logManager = m
		mu.Unlock()
	})
	return initErr
}

func newManager(dev bool, logPath string, view io.Writer, now time.Time) (*manager, error) {
	m := &manager{}
	var cores []zapcore.Core

	if logPath != "" {
		fileName := fmt.Sprintf("docask_log_%s.log", now.Format("20060102_150405"))
		file, err := os.OpenFile(filepath.Join(logPath, fileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		m.logFile = file

		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), zapcore.DebugLevel))
	}

	if dev && view != nil {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encCfg.EncodeLevel = viewLevelEncoder
		encCfg.ConsoleSeparator = " "
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), newViewWriter(view), zapcore.DebugLevel))
	}

	if len(cores) == 0 {
		m.base = zap.NewNop()
		return m, nil
	}
	m.base = zap.New(zapcore.NewTee(cores...))
	return m, nil
}

type viewLine struct {
	data    []byte
	flushed chan struct{}
}

// viewWriter hands lines to the debug console from its own goroutine, so a
// log call made on the UI event goroutine never waits for a redraw. Lines are
// dropped while the console is backed up.
type viewWriter struct {
	out   io.Writer
	lines chan viewLine
}

func newViewWriter(out io.Writer) *viewWriter {
	w := &viewWriter{out: out, lines: make(chan viewLine, 100)}
	go w.processLogs()
	return w
}

func (w *viewWriter) Write(p []byte) (int, error) {
	line := viewLine{data: append([]byte(nil), p...)}
	select {
	case w.lines <- line:
	default:
	}
	return len(p), nil
}

func (w *viewWriter) processLogs() {
	for line := range w.lines {
		if line.flushed != nil {
			close(line.flushed)
			continue
		}
		w.out.Write(line.data)
	}
}

// Sync waits up to a second for queued lines to reach the console.
func (w *viewWriter) Sync() error {
	flushed := make(chan struct{})
	select {
	case w.lines <- viewLine{flushed: flushed}:
	default:
		return nil
	}
	select {
	case <-flushed:
	case <-time.After(time.Second):
	}
	return nil
}

// viewLevelEncoder colors levels with tview region tags.
func viewLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel, zapcore.InfoLevel:
		enc.AppendString("[green]" + l.CapitalString() + "[-]")
	case zapcore.WarnLevel:
		enc.AppendString("[yellow]" + l.CapitalString() + "[-]")
	default:
		enc.AppendString("[red]" + l.CapitalString() + "[-]")
	}
}

// NewLogger returns a logger named after tag. Before InitLogger it discards everything.
func NewLogger(tag string) *Logger {
	mu.RLock()
	defer mu.RUnlock()

	base := zap.NewNop()
	if logManager != nil {
		base = logManager.base
	}
	return &Logger{tag: tag, base: base.Named(tag)}
}

func (l *Logger) log(logTypes Types, msg string, fields ...zap.Field) {
	switch logTypes {
	case Info:
		l.base.Info(msg, fields...)
	case Warn:
		l.base.Warn(msg, fields...)
	case Error, Fatal:
		l.base.Error(msg, fields...)
	}
}

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.log(Info, msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.log(Error, msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.log(Warn, msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.log(Fatal, msg, fields...)
	Close()
	os.Exit(1)
}

// With returns a child logger carrying fields on every line.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{tag: l.tag, base: l.base.With(fields...)}
}

func (l *Logger) Tag() string {
	return l.tag
}

// Close flushes buffered lines and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logManager == nil {
		return
	}
	_ = logManager.base.Sync()
	if logManager.logFile != nil {
		logManager.logFile.Close()
		logManager.logFile = nil
	}
}

func (t Types) String() string {
	switch t {
	case Info:
		return "INFO"
	case Error:
		return "ERROR"
	case Warn:
		return "WARN"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}
