// Package debug provides optional file-based debug logging.
//
// When the FOCUS_DEBUG environment variable is set to a file path, debug
// messages are appended to that file. Otherwise, logging is a no-op.
package debug

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
	checked bool
)

// Log writes a message to the debug log with a timestamp.
// No-op unless FOCUS_DEBUG names a writable file path.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !checked {
		checked = true
		path := os.Getenv("FOCUS_DEBUG")
		if path == "" {
			return
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		logFile = f
	}
	if logFile == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, msg)
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	checked = false
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
