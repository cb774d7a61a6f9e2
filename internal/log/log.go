// Package log provides the singleton logger used across the application.
// Library code logs through this facade; the CLI decides the concrete
// adapter and verbosity at startup.
package log

import (
	"github.com/anchore/go-logger"
	"github.com/anchore/go-logger/adapter/discard"
)

// log is the singleton logger instance. Defaults to discarding everything
// until the calling application sets a real logger.
var log logger.Logger = discard.New()

// Set replaces the singleton logger.
func Set(l logger.Logger) {
	if l == nil {
		l = discard.New()
	}
	log = l
}

// Get returns the current singleton logger.
func Get() logger.Logger {
	return log
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

func Error(args ...interface{}) {
	log.Error(args...)
}

func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

func Warn(args ...interface{}) {
	log.Warn(args...)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Info(args ...interface{}) {
	log.Info(args...)
}

func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Debug(args ...interface{}) {
	log.Debug(args...)
}
