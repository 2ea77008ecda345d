package engine

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	LogDir     = "logs"
	MaxLogSize = 10 * 1024 * 1024
)

// SetupLogging routes the standard logger to logs/<name>.log when debug is set
// and discards it otherwise. A log above MaxLogSize is renamed with a timestamp first
// The caller closes the returned file; nil when logging is disabled or the file cannot be opened
func SetupLogging(name string, debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(LogDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(LogDir, name+".log")
	if info, err := os.Stat(path); err == nil && info.Size() > MaxLogSize {
		rotated := filepath.Join(LogDir, fmt.Sprintf("%s.%s.log", name, time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "rotate log: %v\n", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	log.Printf("%s: logging started", name)
	return f
}
