// Package logger wraps zerolog behind the small structured API the rest of
// the codebase uses: leveled calls taking an optional field map.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger struct {
	logger zerolog.Logger
}

type Config struct {
	Level  string // debug, info, warn, error, fatal
	Format string // json, console
	Output io.Writer
	Color  bool
}

var global *Logger

// Initialize configures the global logger. Safe to call more than once.
func Initialize(cfg Config) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	out := io.Writer(os.Stdout)
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color,
		}
	}

	l := zerolog.New(out).With().Timestamp().Caller().Logger()
	global = &Logger{logger: l}
	log.Logger = l
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger, initializing it with defaults when needed.
func Get() *Logger {
	if global == nil {
		Initialize(Config{Level: "info", Format: "console", Color: true})
	}
	return global
}

// WithContext returns a logger carrying extra fields on every entry.
func (l *Logger) WithContext(fields map[string]interface{}) *Logger {
	ctx := l.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &Logger{logger: ctx.Logger()}
}

func (l *Logger) emit(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	if len(fields) > 0 {
		for k, v := range fields[0] {
			event = event.Interface(k, v)
		}
	}
	event.Msg(msg)
}

func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Debug(), msg, fields)
}

func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Info(), msg, fields)
}

func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.emit(l.logger.Warn(), msg, fields)
}

func (l *Logger) Error(msg string, err error, fields ...map[string]interface{}) {
	l.emit(l.logger.Error().Err(err), msg, fields)
}

func (l *Logger) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.emit(l.logger.Fatal().Err(err), msg, fields)
}

// Package-level convenience functions on the global logger.

func Debug(msg string, fields ...map[string]interface{}) { Get().Debug(msg, fields...) }

func Info(msg string, fields ...map[string]interface{}) { Get().Info(msg, fields...) }

func Warn(msg string, fields ...map[string]interface{}) { Get().Warn(msg, fields...) }

func Error(msg string, err error, fields ...map[string]interface{}) {
	Get().Error(msg, err, fields...)
}

func Fatal(msg string, err error, fields ...map[string]interface{}) {
	Get().Fatal(msg, err, fields...)
}

func WithContext(fields map[string]interface{}) *Logger {
	return Get().WithContext(fields)
}
