// Package logging provides the rotating file logger used by the CLI. The
// engine itself never logs; callers record what they asked for and what the
// optimizer decided.
package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes to a size-rotated log file, optionally as JSON lines when
// PROMPTFORGE_JSON_LOGS=1 is set.
type Logger struct {
	logger   *log.Logger
	rotator  *lumberjack.Logger
	jsonMode bool
}

// New opens a logger writing to dir/promptforge.log.
func New(dir string) *Logger {
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "promptforge.log"),
		MaxSize:    15, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	return &Logger{
		logger:   log.New(rotator, "", log.LstdFlags),
		rotator:  rotator,
		jsonMode: os.Getenv("PROMPTFORGE_JSON_LOGS") == "1",
	}
}

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	return l.rotator.Close()
}

// Logf records a formatted message.
func (l *Logger) Logf(format string, args ...any) {
	if l.jsonMode {
		_ = json.NewEncoder(l.logger.Writer()).Encode(map[string]any{
			"level": "info",
			"msg":   fmt.Sprintf(format, args...),
		})
		return
	}
	l.logger.Printf(format, args...)
}

// LogError records an error.
func (l *Logger) LogError(err error) {
	if l.jsonMode {
		_ = json.NewEncoder(l.logger.Writer()).Encode(map[string]any{
			"level": "error",
			"error": err.Error(),
		})
		return
	}
	l.logger.Printf("Error: %s", err)
}

// LogOptimization records the outcome of one optimize call.
func (l *Logger) LogOptimization(target, scenario, title string, score int, warnings int) {
	l.Logf("Optimization - Target: %s, Scenario: %s, Candidate: %s, Score: %d, Warnings: %d",
		target, scenario, title, score, warnings)
}
