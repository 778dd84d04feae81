// Package log provides file-based logging plus a debug trace mode.
// Enable debug tracing by setting XPDESK_DEBUG=1.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Debug mode configuration
var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "xpdesk-debug.log")

// InitDebug initializes debug logging if XPDESK_DEBUG=1 is set.
// Called from Initialize.
func InitDebug() {
	if os.Getenv("XPDESK_DEBUG") != "1" {
		// Initialize DebugLog as a no-op logger to prevent nil pointer panics
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		if ErrorLog != nil {
			ErrorLog.Printf("could not open debug log file: %s", err)
		}
		// Fall back to no-op logger on error
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f

	DebugLog.Println("Debug mode enabled")
	DebugLog.Printf("Debug log: %s", debugLogFileName)
}

// CloseDebug closes the debug log file.
func CloseDebug() {
	if debugLogFile != nil {
		_ = debugLogFile.Close()
		fmt.Println("wrote debug logs to " + debugLogFileName)
		debugLogFile = nil
	}
}

// Debug logs a debug message if debug mode is enabled.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}

// InputTrace logs pointer and key handling events.
func InputTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[INPUT] "+format, v...)
	}
}

// LayoutTrace logs geometry computation events.
func LayoutTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[LAYOUT] "+format, v...)
	}
}

// StoreTrace logs session store reads and writes.
func StoreTrace(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("[STORE] "+format, v...)
	}
}
