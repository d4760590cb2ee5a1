package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"techquiz-server/internal/shared/contextkeys"

	"github.com/sirupsen/logrus"
)

// Logger backends
const (
	BackendLogrus = "logrus"
	BackendZap    = "zap"
)

const (
	logFormatJSON   = "json"
	timestampFormat = "2006-01-02T15:04:05.000Z07:00"
	textTimestamp   = "2006-01-02 15:04:05"
)

// Logger defines the interface for structured logging operations
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	WithFields(fields map[string]interface{}) Logger
	WithContext(ctx context.Context) Logger
	WithComponent(component string) Logger
}

// New builds a logger for the given backend ("logrus" or "zap"). Unknown
// backends fall back to logrus.
func New(backend, level, format string) Logger {
	if backend == BackendZap {
		return NewZapLogger(level, format)
	}
	return NewLoggerWithConfig(level, format)
}

// NewLogger builds a logrus logger from LOG_LEVEL, LOG_FORMAT and ENVIRONMENT
func NewLogger() Logger {
	format := os.Getenv("LOG_FORMAT")
	switch os.Getenv("ENVIRONMENT") {
	case "production", "prod":
		format = logFormatJSON
	}
	return NewLoggerWithConfig(os.Getenv("LOG_LEVEL"), format)
}

// NewLoggerWithConfig creates a logrus logger writing to stdout.
// An unparseable level means info.
func NewLoggerWithConfig(level string, format string) Logger {
	return newLogrusLogger(os.Stdout, level, format)
}

func newLogrusLogger(out io.Writer, level, format string) *LogrusLogger {
	base := logrus.New()
	base.SetOutput(out)

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	base.SetLevel(parsed)

	if format == logFormatJSON {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: textTimestamp,
		})
	}

	return &LogrusLogger{entry: logrus.NewEntry(base)}
}

// LogrusLogger implements the Logger interface using logrus
type LogrusLogger struct {
	entry *logrus.Entry
}

func (l *LogrusLogger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *LogrusLogger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *LogrusLogger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *LogrusLogger) Error(args ...interface{}) { l.entry.Error(args...) }
func (l *LogrusLogger) Fatal(args ...interface{}) { l.entry.Fatal(args...) }

func (l *LogrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *LogrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *LogrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *LogrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }
func (l *LogrusLogger) Fatalf(format string, args ...interface{}) { l.entry.Fatalf(format, args...) }

// WithFields adds structured fields to the logger
func (l *LogrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithContext lifts the run, request, component and subject ids from ctx
func (l *LogrusLogger) WithContext(ctx context.Context) Logger {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.WithFields(fields)
}

// WithComponent adds component name to the logger
func (l *LogrusLogger) WithComponent(component string) Logger {
	return &LogrusLogger{entry: l.entry.WithField("component", component)}
}

// contextFieldNames maps context keys to the log field they populate
var contextFieldNames = []struct {
	key   interface{}
	field string
}{
	{contextkeys.RunIDKey, "run_id"},
	{contextkeys.RequestIDKey, "request_id"},
	{contextkeys.ComponentKey, "component"},
	{contextkeys.SubjectKey, "subject"},
}

// contextFields collects non-empty string values of the known context keys
func contextFields(ctx context.Context) map[string]interface{} {
	fields := map[string]interface{}{}
	if ctx == nil {
		return fields
	}
	for _, f := range contextFieldNames {
		if s, ok := ctx.Value(f.key).(string); ok && s != "" {
			fields[f.field] = s
		}
	}
	return fields
}

var (
	defaultOnce   sync.Once
	defaultLogger Logger
)

// Default returns the process-wide logger, built from the environment on
// first use. Commands use it before the configuration is loaded.
func Default() Logger {
	defaultOnce.Do(func() {
		defaultLogger = NewLogger()
	})
	return defaultLogger
}

// NopLogger discards everything
type NopLogger struct{}

// NewNopLogger returns a logger that drops all output
func NewNopLogger() Logger { return NopLogger{} }

func (NopLogger) Debug(args ...interface{})                         {}
func (NopLogger) Info(args ...interface{})                          {}
func (NopLogger) Warn(args ...interface{})                          {}
func (NopLogger) Error(args ...interface{})                         {}
func (NopLogger) Fatal(args ...interface{})                         {}
func (NopLogger) Debugf(format string, args ...interface{})         {}
func (NopLogger) Infof(format string, args ...interface{})          {}
func (NopLogger) Warnf(format string, args ...interface{})          {}
func (NopLogger) Errorf(format string, args ...interface{})         {}
func (NopLogger) Fatalf(format string, args ...interface{})         {}
func (n NopLogger) WithFields(fields map[string]interface{}) Logger { return n }
func (n NopLogger) WithContext(ctx context.Context) Logger          { return n }
func (n NopLogger) WithComponent(component string) Logger           { return n }
