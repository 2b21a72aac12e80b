// Package logx is a minimal leveled wrapper around the standard library's
// log.Logger, used internally by builder (Brute and NNDescent) to report
// discarded worker failures and other non-fatal events without pulling in a
// third-party logging dependency for what is, in this module, a handful of
// call sites.
package logx

import (
	"log"
	"os"
)

// Level orders log severity from most to least verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes leveled messages to an underlying *log.Logger, filtering out
// anything below its configured Level.
type Logger struct {
	min Level
	out *log.Logger
}

// New returns a Logger writing to os.Stdout with the standard flags,
// filtering messages below min.
func New(min Level) *Logger {
	return &Logger{min: min, out: log.New(os.Stdout, "", log.LstdFlags)}
}

func (l *Logger) log(level Level, prefix, format string, args ...any) {
	if level < l.min {
		return
	}
	l.out.Printf(prefix+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) { l.log(LevelDebug, "DEBUG: ", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(LevelInfo, "INFO: ", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(LevelWarn, "WARN: ", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(LevelError, "ERROR: ", format, args...) }

// Default is shared by packages that have no reason to hold their own Logger.
var Default = New(LevelInfo)
