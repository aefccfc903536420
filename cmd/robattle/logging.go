package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "robattle.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging sends the log package to logs/robattle.log when debug is on
// and discards it otherwise, so log lines never land on the game screen.
// Files over maxLogSize are rotated away with a timestamp suffix.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	path := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("robattle-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(path, rotated)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(0)
	return f
}
