// The package logger defines a simple logger with INFO, WARN and ERROR prints.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Aggregate groups one log.Logger per level, all writing to the same output.
type Aggregate struct {
	InfoLogger  *log.Logger
	WarnLogger  *log.Logger
	ErrorLogger *log.Logger
}

// New() returns an initialized Logger
func New(out io.Writer) *Aggregate {
	infoLogger := log.New(out, "INFO: ", log.LstdFlags)
	warnLogger := log.New(out, "WARN: ", log.LstdFlags)
	errorLogger := log.New(out, "ERROR: ", log.LstdFlags)

	return &Aggregate{
		InfoLogger:  infoLogger,
		WarnLogger:  warnLogger,
		ErrorLogger: errorLogger,
	}
}

// Discard() returns a Logger that drops every print.
func Discard() *Aggregate {
	return New(io.Discard)
}

// Info() prints an INFO log
func (l *Aggregate) Info(s string, v ...interface{}) {
	l.InfoLogger.Printf(s, v...)
}

// Warn() prints an WARN log
func (l *Aggregate) Warn(s string, v ...interface{}) {
	l.WarnLogger.Printf(s, v...)
}

// Error() prints an ERROR log
func (l *Aggregate) Error(s string, v ...interface{}) {
	l.ErrorLogger.Printf(s, v...)
}

// Init() initialise the logger and the file it prints to.
func Init(filePath string) (*Aggregate, *os.File, error) {
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %q: %w", filePath, err)
	}
	return New(file), file, nil
}

/*
Open() returns the Logger described by target:
  - a path ending in ".log" logs to that file (which the caller must close)
  - anything else, including the empty string, logs to stdout.
*/
func Open(target string) (*Aggregate, io.Closer, error) {
	if strings.HasSuffix(target, ".log") {
		l, file, err := Init(target)
		if err != nil {
			return nil, nil, err
		}
		return l, file, nil
	}
	return New(os.Stdout), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
