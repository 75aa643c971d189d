package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	debugEnabled bool
	debugMu      sync.Mutex
	debugFile    *os.File
	debugPath    = filepath.Join(os.TempDir(), appName+"-debug.log")
)

func EnableDebugLogging(enabled bool) {
	debugMu.Lock()
	debugEnabled = enabled
	debugMu.Unlock()
}

// DebugLogf appends one timestamped line to the debug log when -debug is set.
func DebugLogf(format string, args ...any) {
	debugMu.Lock()
	defer debugMu.Unlock()
	if !debugEnabled {
		return
	}
	if debugFile == nil {
		file, err := os.OpenFile(debugPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		debugFile = file
	}
	message := strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", " ")
	_, _ = fmt.Fprintf(debugFile, "%s %s\n", time.Now().Format(time.RFC3339), message)
}

func closeDebugLog() {
	debugMu.Lock()
	defer debugMu.Unlock()
	if debugFile != nil {
		_ = debugFile.Close()
		debugFile = nil
	}
}
