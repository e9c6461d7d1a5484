// Package logging configures the process logger for the command-line tools.
// Code running inside Nakama logs through runtime.Logger instead.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var logger = log.New(os.Stdout)

// Init sets the prefix and level of the shared logger. Unknown levels fall
// back to info.
func Init(appName, level string) {
	InitWriter(os.Stdout, appName, level)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, appName, level string) {
	logger = log.New(w)
	logger.SetPrefix(appName)
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)
	logger.SetLevel(ParseLevel(level))
}

// ParseLevel maps a level name to a log level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Logger exposes the shared logger for structured key/value logging.
func Logger() *log.Logger { return logger }

func Debug(format string, args ...any) { logger.Debugf(format, args...) }

func Info(format string, args ...any) { logger.Infof(format, args...) }

func Warn(format string, args ...any) { logger.Warnf(format, args...) }

func Error(format string, args ...any) { logger.Errorf(format, args...) }

func Fatal(format string, args ...any) { logger.Fatalf(format, args...) }
