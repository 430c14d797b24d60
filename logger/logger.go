package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

type logger struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	level  slog.Level
}

type logMessage struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"additional_info,omitempty"`
}

// Logs are discarded until SetOutput or SetDirectory is called.
var logInstance = &logger{out: io.Discard, level: slog.LevelInfo}

func (l *logger) log(level slog.Level, msg string, data map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	logData, err := json.Marshal(logMessage{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     level.String(),
		Message:   msg,
		Data:      data,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error marshaling log message:", err)
		return
	}

	l.out.Write(append(logData, '\n'))
}

func (l *logger) setOutput(w io.Writer, closer io.Closer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer != nil {
		if err := l.closer.Close(); err != nil {
			return err
		}
	}

	l.out = w
	l.closer = closer
	return nil
}

// SetOutput sends log lines to w.
func SetOutput(w io.Writer) error {
	if w == nil {
		w = io.Discard
	}
	return logInstance.setOutput(w, nil)
}

// SetDirectory writes logs to dir/app.YYYY-MM-DD.log, rotated daily with
// dir/app.log linked to the current file.
func SetDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	rotator, err := rotatelogs.New(
		filepath.Join(dir, "app.%Y-%m-%d.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, "app.log")),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize rotatelogs: %w", err)
	}

	return logInstance.setOutput(rotator, rotator)
}

// SetLevel drops messages below level.
func SetLevel(level slog.Level) {
	logInstance.mu.Lock()
	defer logInstance.mu.Unlock()

	logInstance.level = level
}

// Close releases the current log file, if any, and discards further output.
func Close() error {
	return logInstance.setOutput(io.Discard, nil)
}

func first(data []map[string]any) map[string]any {
	if len(data) > 0 {
		return data[0]
	}
	return nil
}

// Debug logs msg with optional structured data.
func Debug(msg string, data ...map[string]any) {
	logInstance.log(slog.LevelDebug, msg, first(data))
}

// Info logs msg with optional structured data.
func Info(msg string, data ...map[string]any) {
	logInstance.log(slog.LevelInfo, msg, first(data))
}

// Warn logs msg with optional structured data.
func Warn(msg string, data ...map[string]any) {
	logInstance.log(slog.LevelWarn, msg, first(data))
}

// Error logs msg with optional structured data.
func Error(msg string, data ...map[string]any) {
	logInstance.log(slog.LevelError, msg, first(data))
}

// ParseLogLevel maps debug, info, warn or error (any case) to a level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
