// Package logstest provides loggers for tests.
package logstest

import (
	"log"
	"os"
	"testing"

	"github.com/bombsimon/logrusr/v4"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/go-logr/stdr"
	logrusTest "github.com/sirupsen/logrus/hooks/test"
)

// NewNullTestLogger returns a logger to nothing
func NewNullTestLogger() logr.Logger {
	logger, _ := NewRecordingTestLogger()
	return logger
}

// NewRecordingTestLogger returns a logger which discards output but records every entry in the returned hook so that tests can assert on what was logged.
func NewRecordingTestLogger() (logr.Logger, *logrusTest.Hook) {
	internalLogger, hook := logrusTest.NewNullLogger()
	return logrusr.New(internalLogger), hook
}

// NewStdTestLogger returns a test logger to standard output.
func NewStdTestLogger() logr.Logger {
	return stdr.New(log.New(os.Stdout, "", log.LstdFlags))
}

// NewTestLogger returns a logger to use in tests
func NewTestLogger(t *testing.T) logr.Logger {
	return testr.New(t)
}
