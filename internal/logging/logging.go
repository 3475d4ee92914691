// Package logging wraps charmbracelet/log for the server.
//
// Stdout carries the MCP stdio transport, so logs go to stderr in normal
// operation and to a debug file when DEBUG is set. Never write log output
// to stdout.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// AppLogger is the structured logger used across the server.
type AppLogger struct {
	logger *log.Logger
	debug  bool
}

var (
	defaultLogger *AppLogger
	once          sync.Once
)

// GetDefault returns the shared logger instance.
func GetDefault() *AppLogger {
	once.Do(func() {
		defaultLogger = NewAppLogger()
	})
	return defaultLogger
}

// Package-level convenience functions.

func Info(msg string, keyvals ...any)  { GetDefault().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { GetDefault().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { GetDefault().Error(msg, keyvals...) }
func Debug(msg string, keyvals ...any) { GetDefault().Debug(msg, keyvals...) }

// NewAppLogger builds a logger from the environment. With DEBUG set it
// logs everything to specsmith.log in the working directory (truncated on
// each run); otherwise it logs warnings and errors to stderr.
func NewAppLogger() *AppLogger {
	debug := os.Getenv("DEBUG") != ""

	var logger *log.Logger

	if debug {
		cwd, err := os.Getwd()
		if err != nil {
			panic(fmt.Sprintf("getting working directory: %v", err))
		}
		logPath := filepath.Join(cwd, "specsmith.log")

		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			panic(fmt.Sprintf("creating debug log file: %v", err))
		}

		logger = log.NewWithOptions(logFile, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "specsmith",
		})
		logger.SetLevel(log.DebugLevel)
		logger.Info("Debug logging enabled", "log_file", logPath)
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "specsmith",
		})
		logger.SetLevel(log.WarnLevel)
	}

	return &AppLogger{logger: logger, debug: debug}
}

func (al *AppLogger) Info(msg string, keyvals ...any) {
	al.logger.Info(msg, keyvals...)
}

func (al *AppLogger) Warn(msg string, keyvals ...any) {
	al.logger.Warn(msg, keyvals...)
}

func (al *AppLogger) Error(msg string, keyvals ...any) {
	al.logger.Error(msg, keyvals...)
}

func (al *AppLogger) Debug(msg string, keyvals ...any) {
	if al.debug {
		al.logger.Debug(msg, keyvals...)
	}
}
