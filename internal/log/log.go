// SPDX-License-Identifier: EPL-2.0

// Package log provides the structured logger shared by sndcore packages.
// It wraps logrus with a process-wide instance.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	mu     sync.Mutex
)

// Init (re)configures the global logger. Valid levels are the logrus level
// names; anything unparsable falls back to info.
func Init(level string) {
	mu.Lock()
	defer mu.Unlock()

	l := logrus.New()
	l.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if os.Getenv("GO_ENV") == "production" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger = l
}

// L returns the global logger instance.
func L() *logrus.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()

	if l == nil {
		Init("info")
		return L()
	}

	return l
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return L().WithField("component", name)
}

// Discard returns an entry that drops everything; used by tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return logrus.NewEntry(l)
}
