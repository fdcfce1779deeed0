// Package applog provides the run's logger: a stderr destination always
// on, plus an optional file destination, combined the way the teacher
// combines its own trace writers.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"mipspipe/config"
)

// Logger wraps a *log.Logger with the Infof/Debugf/Fatalf shape the
// run loop uses to report cycle-by-cycle trace and top-level status.
type Logger struct {
	std     *log.Logger
	verbose bool
	file    *os.File
}

// New builds a Logger from cfg: stderr always, plus a timestamped file
// under cfg.Logging.Dir when cfg.Logging.ToFile is set.
func New(cfg *config.Config) (*Logger, error) {
	dest := io.Writer(os.Stderr)
	l := &Logger{verbose: cfg.Logging.Verbose}

	if cfg.Logging.ToFile {
		dir := cfg.Logging.Dir
		if dir == "" {
			dir = config.GetLogPath()
		}
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("applog: failed to create log directory: %w", err)
		}
		name := fmt.Sprintf("mipspipe-%s.log", time.Now().Format("20060102-150405"))
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600) // #nosec G304 -- path built from config, not user input
		if err != nil {
			return nil, fmt.Errorf("applog: failed to open log file %s: %w", path, err)
		}
		l.file = f
		dest = io.MultiWriter(os.Stderr, f)
	}

	l.std = log.New(dest, "mipspipe: ", log.Ltime|log.Lmicroseconds)
	return l, nil
}

// Infof logs an always-on informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.std.Printf(format, args...)
}

// Debugf logs a message only when verbose mode is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.std.Printf(format, args...)
}

// Fatalf logs a message and exits the process with status 1.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.std.Fatalf(format, args...)
}

// Close releases the underlying log file, if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
