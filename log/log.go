package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var logFileName = filepath.Join(os.TempDir(), "xpdesk.log")

var (
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger

	globalLogFile *os.File
)

// Loggers default to no-ops so library code and tests can log before
// Initialize runs.
func init() {
	InfoLog = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog = log.New(io.Discard, "", 0)
	DebugLog = log.New(io.Discard, "", 0)
}

// Initialize sets up logging to a file in the temp directory. The TUI owns
// stdout, so nothing is ever logged there.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// Fall back to no-op loggers so callers never have to nil-check.
		InfoLog = log.New(io.Discard, "", 0)
		WarningLog = log.New(io.Discard, "", 0)
		ErrorLog = log.New(io.Discard, "", 0)
		return
	}

	InfoLog = log.New(f, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(f, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(f, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	globalLogFile = f

	InitDebug()
}

// Close closes the log file. Call on program exit.
func Close() {
	CloseDebug()
	if globalLogFile != nil {
		stat, err := globalLogFile.Stat()
		_ = globalLogFile.Close()
		if err == nil && stat.Size() > 0 {
			fmt.Println("wrote logs to " + logFileName)
		}
		globalLogFile = nil
	}
}
