// Package log writes diagnostics to a file under the XDG state directory.
// The player shell owns the display, so nothing may be printed to stdout
// or stderr; logging is disabled entirely until Setup succeeds.
package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

// Setup runs on the main goroutine while engine callbacks log from
// their own, so the gate is atomic.
var enabled atomic.Bool

// Setup opens the daily log file and configures the backend. An empty
// level defaults to info; an unparseable level does too.
func Setup(level string) error {
	path, err := xdg.StateFile(filepath.Join("tide", fmt.Sprintf("%s.log", time.Now().Format("2006-01-02"))))
	if err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	enabled.Store(true)
	return nil
}

func Debugf(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Debugf(format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Infof(format, args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Warnf(format, args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Errorf(format, args...)
	}
}
