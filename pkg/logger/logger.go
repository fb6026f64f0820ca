// Package logger provides the bot's leveled logging.
// It writes colored console output, log files under logs/, and optionally
// mirrors entries to Discord webhooks.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity of a log entry.
type LogLevel int

const (
	LevelCritical LogLevel = iota
	LevelError
	LevelWarn
	LevelSuccess
	LevelInfo
	LevelDebug
	LevelSystem
)

// String returns the level name used in console and file output.
func (l LogLevel) String() string {
	switch l {
	case LevelCritical:
		return "CRITICAL"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelSuccess:
		return "SUCCESS"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelSystem:
		return "SYSTEM"
	default:
		return "UNKNOWN"
	}
}

// Color returns the ANSI color code for the level.
func (l LogLevel) Color() string {
	switch l {
	case LevelCritical:
		return "\033[1;31m"
	case LevelError:
		return "\033[31m"
	case LevelWarn:
		return "\033[33m"
	case LevelSuccess:
		return "\033[32m"
	case LevelInfo:
		return "\033[36m"
	case LevelDebug:
		return "\033[35m"
	case LevelSystem:
		return "\033[34m"
	default:
		return "\033[0m"
	}
}

// DiscordColor returns the embed color used when mirroring to a webhook.
func (l LogLevel) DiscordColor() int {
	switch l {
	case LevelCritical, LevelError:
		return 0xFF0000
	case LevelWarn:
		return 0xFFFF00
	case LevelSuccess:
		return 0x00FF00
	case LevelInfo:
		return 0x0000FF
	case LevelDebug:
		return 0x800080
	case LevelSystem:
		return 0x808080
	default:
		return 0xFFFFFF
	}
}

const colorReset = "\033[0m"

// Logger is the main logging structure.
type Logger struct {
	logrus          *logrus.Logger
	errorWebhookURL string
	logsWebhookURL  string
	logFile         *os.File
	errorFile       *os.File
	mu              sync.Mutex
}

var (
	logger *Logger
	once   sync.Once
)

// Init initializes the global logger instance.
func Init(errorWebhook, logsWebhook string) *Logger {
	once.Do(func() {
		logger = NewLogger(errorWebhook, logsWebhook)
	})
	return logger
}

// Get returns the global logger, initializing a webhook-less one if Init was
// never called.
func Get() *Logger {
	once.Do(func() {
		logger = NewLogger("", "")
	})
	return logger
}

// NewLogger creates a Logger writing to logs/combined.log and logs/error.log.
func NewLogger(errorWebhook, logsWebhook string) *Logger {
	l := &Logger{
		logrus:          logrus.New(),
		errorWebhookURL: errorWebhook,
		logsWebhookURL:  logsWebhook,
	}

	l.logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	l.logrus.SetOutput(io.Discard) // output is handled below

	logsDir := filepath.Join(".", "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Printf("Error creating logs directory: %v\n", err)
	}

	var err error
	l.logFile, err = os.OpenFile(filepath.Join(logsDir, "combined.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("Error opening combined log file: %v\n", err)
	}

	l.errorFile, err = os.OpenFile(filepath.Join(logsDir, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("Error opening error log file: %v\n", err)
	}

	return l
}

func (l *Logger) log(level LogLevel, message string, prefix string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	fmt.Printf("[%s] [%s%s%s] [%s]: %s\n",
		timestamp, level.Color(), level.String(), colorReset, prefix, message)

	fileMsg := fmt.Sprintf("[%s] [%s] [%s]: %s\n", timestamp, level.String(), prefix, message)
	if l.logFile != nil {
		l.logFile.WriteString(fileMsg)
	}
	if level <= LevelError && l.errorFile != nil {
		l.errorFile.WriteString(fileMsg)
	}

	go l.sendToWebhook(level, message, prefix)
}

// sendToWebhook mirrors the entry to the matching Discord webhook, if set.
func (l *Logger) sendToWebhook(level LogLevel, message, prefix string) {
	var webhookURL string
	if level <= LevelError && l.errorWebhookURL != "" {
		webhookURL = l.errorWebhookURL
	} else if l.logsWebhookURL != "" && level > LevelError {
		webhookURL = l.logsWebhookURL
	}
	if webhookURL == "" {
		return
	}

	embed := map[string]interface{}{
		"title":       fmt.Sprintf("[%s] %s", level.String(), prefix),
		"description": fmt.Sprintf("```%s```", message),
		"color":       level.DiscordColor(),
		"timestamp":   time.Now().Format(time.RFC3339),
		"footer": map[string]string{
			"text": "ParangBot Go",
		},
	}
	payload := map[string]interface{}{
		"embeds": []interface{}{embed},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest("POST", webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
}

// Close closes the log files.
func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
	if l.errorFile != nil {
		l.errorFile.Close()
	}
}

// Critical logs a critical message.
func (l *Logger) Critical(message string, prefix string) { l.log(LevelCritical, message, prefix) }

// Error logs an error message.
func (l *Logger) Error(message string, prefix string) { l.log(LevelError, message, prefix) }

// Warn logs a warning message.
func (l *Logger) Warn(message string, prefix string) { l.log(LevelWarn, message, prefix) }

// Success logs a success message.
func (l *Logger) Success(message string, prefix string) { l.log(LevelSuccess, message, prefix) }

// Info logs an info message.
func (l *Logger) Info(message string, prefix string) { l.log(LevelInfo, message, prefix) }

// Debug logs a debug message.
func (l *Logger) Debug(message string, prefix string) { l.log(LevelDebug, message, prefix) }

// System logs a system message.
func (l *Logger) System(message string, prefix string) { l.log(LevelSystem, message, prefix) }

// Package-level convenience functions using the global logger.

// Critical logs a critical message using the global logger.
func Critical(message string, prefix string) { Get().Critical(message, prefix) }

// Error logs an error message using the global logger.
func Error(message string, prefix string) { Get().Error(message, prefix) }

// Warn logs a warning message using the global logger.
func Warn(message string, prefix string) { Get().Warn(message, prefix) }

// Success logs a success message using the global logger.
func Success(message string, prefix string) { Get().Success(message, prefix) }

// Info logs an info message using the global logger.
func Info(message string, prefix string) { Get().Info(message, prefix) }

// Debug logs a debug message using the global logger.
func Debug(message string, prefix string) { Get().Debug(message, prefix) }

// System logs a system message using the global logger.
func System(message string, prefix string) { Get().System(message, prefix) }
