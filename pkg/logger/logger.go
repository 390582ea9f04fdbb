package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/feed"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *log.Logger

// Init initializes the logger
func Init(verbose bool) {
	level := parseLevel(config.GetString("log.level"))
	if verbose {
		level = log.DebugLevel
	}

	logger = log.NewWithOptions(openWriter(config.GetString("log.file")), log.Options{
		ReportTimestamp: true,
		Prefix:          "swipefeed",
	})
	logger.SetLevel(level)
}

// InitWithWriter points the logger at w instead of the configured file
func InitWithWriter(w io.Writer, level string) {
	logger = log.NewWithOptions(w, log.Options{Prefix: "swipefeed"})
	logger.SetLevel(parseLevel(level))
}

// openWriter returns a rotating file writer, or stderr when no file is set
func openWriter(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}

	// Probe the path so an unwritable location falls back to stderr
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return os.Stderr
	}
	_ = f.Close()

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.GetInt("log.max_size_mb"),
		MaxBackups: config.GetInt("log.max_backups"),
		MaxAge:     7,
	}
}

func parseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...interface{}) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...interface{}) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...interface{}) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

type engineLogger struct {
	component string
}

// Engine adapts the package logger to the feed engine's Logger interface.
// Every line carries a component key so engine output can be filtered.
func Engine() feed.Logger {
	return engineLogger{component: "feed"}
}

func (e engineLogger) Debug(msg string, keyvals ...interface{}) {
	Debug(msg, append([]interface{}{"component", e.component}, keyvals...)...)
}

func (e engineLogger) Warn(msg string, keyvals ...interface{}) {
	Warn(msg, append([]interface{}{"component", e.component}, keyvals...)...)
}

func (e engineLogger) Error(msg string, keyvals ...interface{}) {
	Error(msg, append([]interface{}{"component", e.component}, keyvals...)...)
}
