// Package logger defines the minimal logging interface used for optional
// parse diagnostics. The default is the no-op logger; tests typically
// plug in a testing.T through NewLogfLogger.
package logger

import (
	"io"
	"log"
)

// Logger is the destination for parse diagnostics.
type Logger interface {
	Printf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Printf(format string, v ...interface{}) {}
func (nopLogger) Debugf(format string, v ...interface{}) {}

type standardLogger struct {
	logger *log.Logger
	debug  bool
}

// NewStandardLogger returns a Logger writing to w. Debugf output is
// dropped; use NewVerboseLogger to keep it.
func NewStandardLogger(w io.Writer) Logger {
	return &standardLogger{logger: log.New(w, "", log.LstdFlags)}
}

// NewVerboseLogger returns a Logger writing to w, including Debugf output.
func NewVerboseLogger(w io.Writer) Logger {
	return &standardLogger{logger: log.New(w, "", log.LstdFlags), debug: true}
}

func (s *standardLogger) Printf(format string, v ...interface{}) {
	s.logger.Printf(format, v...)
}

func (s *standardLogger) Debugf(format string, v ...interface{}) {
	if s.debug {
		s.logger.Printf(format, v...)
	}
}

type logfLogger struct {
	logf func(format string, v ...interface{})
}

// NewLogfLogger returns a Logger forwarding everything to logf, which is
// usually (*testing.T).Logf.
func NewLogfLogger(logf func(format string, v ...interface{})) Logger {
	return &logfLogger{logf: logf}
}

func (l *logfLogger) Printf(format string, v ...interface{}) { l.logf(format, v...) }
func (l *logfLogger) Debugf(format string, v ...interface{}) { l.logf(format, v...) }
