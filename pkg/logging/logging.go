// pkg/logging/logging.go - timestamped diagnostic logging for WampDoctor
//
// Every process run gets its own directory under the log base directory
// (YYYY-MM-DD-HHMMss) holding:
// - wampdoctor.log  plain text, one line per entry
// - events.jsonl    one JSON object per entry
// - events.yaml     YAML documents, one per entry
// - session.json    the workflow sessions of the run (see session.go)
// Old run directories are pruned once at startup.

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/windowsadmins/wampdoctor/pkg/config"
	"github.com/windowsadmins/wampdoctor/pkg/version"
	"gopkg.in/yaml.v3"
)

// LogLevel represents the severity of the log message.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the string representation of the LogLevel.
func (ll LogLevel) String() string {
	switch ll {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a configuration string to a LogLevel. Unknown values give LevelInfo.
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError
	case "WARN", "WARNING":
		return LevelWarn
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// LevelFromVerbosity maps the count of -v flags to a level.
func LevelFromVerbosity(v int) LogLevel {
	switch {
	case v <= 0:
		return LevelError
	case v == 1:
		return LevelWarn
	case v == 2:
		return LevelInfo
	default:
		return LevelDebug
	}
}

// LogEntry is one structured log record.
type LogEntry struct {
	Time       int64                  `json:"time" yaml:"time"`
	Timestamp  string                 `json:"timestamp" yaml:"timestamp"`
	Level      string                 `json:"level" yaml:"level"`
	Message    string                 `json:"message" yaml:"message"`
	Component  string                 `json:"component" yaml:"component"`
	PID        int                    `json:"pid" yaml:"pid"`
	Hostname   string                 `json:"hostname" yaml:"hostname"`
	Version    string                 `json:"version" yaml:"version"`
	SessionID  string                 `json:"session_id" yaml:"session_id"`
	Properties map[string]interface{} `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// RetentionPolicy defines log retention rules
type RetentionPolicy struct {
	KeepRuns   int // newest run directories kept regardless of age
	MaxAgeDays int // directories older than this are removed
}

// LoggerConfig holds configuration for the file logger
type LoggerConfig struct {
	BaseDir    string
	Component  string
	SessionID  string
	Level      LogLevel
	Retention  RetentionPolicy
	EnableJSON bool
	EnableYAML bool
	// Console receives the text lines as well; nil disables it.
	Console io.Writer
	// ConsoleColor colors console lines by level.
	ConsoleColor bool
}

// Logger writes diagnostic entries to the run directory.
type Logger struct {
	mu           sync.RWMutex
	logger       *log.Logger
	logLevel     LogLevel
	logFile      *os.File
	jsonFile     *os.File
	yamlFile     *os.File
	config       LoggerConfig
	sessionStart time.Time
	logDir       string
	hostname     string

	sessions []*Session
}

var (
	instance *Logger
	initMu   sync.Mutex
)

const runDirLayout = "2006-01-02-150405"

// Init initializes the singleton Logger from the application configuration.
// It must be called before any logging functions are used.
func Init(cfg *config.Configuration) error {
	return InitWithConfig(LoggerConfig{
		BaseDir:    cfg.LogDir,
		Component:  "wampdoctor",
		Level:      ParseLevel(cfg.LogLevel),
		Retention:  RetentionPolicy{KeepRuns: cfg.LogKeepRuns, MaxAgeDays: cfg.LogMaxAgeDays},
		EnableJSON: true,
		EnableYAML: true,
	})
}

// InitWithConfig initializes the logger with an explicit LoggerConfig.
// After a failure it may be called again, e.g. with another BaseDir.
func InitWithConfig(logCfg LoggerConfig) error {
	initMu.Lock()
	defer initMu.Unlock()
	if instance != nil {
		return nil
	}
	l, err := newLoggerWithConfig(logCfg)
	if err != nil {
		return err
	}
	instance = l
	return nil
}

func newLoggerWithConfig(cfg LoggerConfig) (*Logger, error) {
	sessionStart := time.Now()
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}

	if err := os.MkdirAll(cfg.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base log directory: %w", err)
	}

	logDir := filepath.Join(cfg.BaseDir, sessionStart.Format(runDirLayout))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "unknown"
	}

	l := &Logger{
		config:       cfg,
		logLevel:     cfg.Level,
		sessionStart: sessionStart,
		logDir:       logDir,
		hostname:     hostname,
	}
	if err := l.initializeLogFiles(); err != nil {
		l.closeFiles()
		return nil, err
	}

	l.logger = log.New(l.logFile, "", 0)
	if cfg.Console != nil && cfg.ConsoleColor {
		enableColors()
	}

	l.performCleanup(sessionStart)
	return l, nil
}

func (l *Logger) initializeLogFiles() error {
	var err error

	l.logFile, err = os.OpenFile(filepath.Join(l.logDir, "wampdoctor.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open main log file: %w", err)
	}

	if l.config.EnableJSON {
		l.jsonFile, err = os.OpenFile(filepath.Join(l.logDir, "events.jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open JSON log file: %w", err)
		}
	}

	if l.config.EnableYAML {
		l.yamlFile, err = os.OpenFile(filepath.Join(l.logDir, "events.yaml"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open YAML log file: %w", err)
		}
	}

	return nil
}

// performCleanup removes run directories beyond the retention policy.
// The directory of the current run is never removed.
func (l *Logger) performCleanup(now time.Time) {
	entries, err := os.ReadDir(l.config.BaseDir)
	if err != nil {
		return
	}

	current := filepath.Base(l.logDir)
	var runDirs []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == current {
			continue
		}
		if _, err := time.ParseInLocation(runDirLayout, entry.Name(), time.Local); err == nil {
			runDirs = append(runDirs, entry.Name())
		}
	}

	// newest first; the layout sorts chronologically
	sort.Sort(sort.Reverse(sort.StringSlice(runDirs)))

	retention := l.config.Retention
	for i, name := range runDirs {
		expired := false
		if retention.KeepRuns > 0 && i >= retention.KeepRuns-1 {
			expired = true
		}
		if retention.MaxAgeDays > 0 {
			created, _ := time.ParseInLocation(runDirLayout, name, time.Local)
			if now.Sub(created) > time.Duration(retention.MaxAgeDays)*24*time.Hour {
				expired = true
			}
		}
		if expired {
			_ = os.RemoveAll(filepath.Join(l.config.BaseDir, name))
		}
	}
}

func (l *Logger) createLogEntry(level LogLevel, message string, properties map[string]interface{}) LogEntry {
	now := time.Now()
	return LogEntry{
		Time:       now.Unix(),
		Timestamp:  now.Format(time.RFC3339),
		Level:      level.String(),
		Message:    message,
		Component:  l.config.Component,
		PID:        os.Getpid(),
		Hostname:   l.hostname,
		Version:    version.Version().Version,
		SessionID:  l.config.SessionID,
		Properties: properties,
	}
}

// CloseLogger flushes the session record and closes all log files.
func CloseLogger() {
	if instance == nil {
		return
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()
	_ = instance.writeSessions()
	instance.closeFiles()
}

func (l *Logger) closeFiles() {
	for _, f := range []**os.File{&l.logFile, &l.jsonFile, &l.yamlFile} {
		if *f != nil {
			_ = (*f).Close()
			*f = nil
		}
	}
}

// logMessage is the core logging method that writes to all configured outputs
func (l *Logger) logMessage(level LogLevel, message string, keyValues ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logger == nil || level > l.logLevel {
		return
	}

	properties := make(map[string]interface{}, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		properties[fmt.Sprintf("%v", keyValues[i])] = keyValues[i+1]
	}

	entry := l.createLogEntry(level, message, properties)
	l.writeMainLog(entry, keyValues)
	if l.jsonFile != nil {
		l.writeJSONLog(entry)
	}
	if l.yamlFile != nil {
		l.writeYAMLLog(entry)
	}
}

// writeMainLog writes "[ts] LEVEL message key=value ..." to the text log.
func (l *Logger) writeMainLog(entry LogEntry, keyValues []interface{}) {
	ts := time.Unix(entry.Time, 0).Format("2006-01-02 15:04:05")
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %-5s %s", ts, entry.Level, entry.Message)
	for i := 0; i+1 < len(keyValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyValues[i], keyValues[i+1])
	}
	line := b.String()
	l.logger.Println(line)
	if l.config.Console != nil {
		if l.config.ConsoleColor {
			line = colorize(ParseLevel(entry.Level), line)
		}
		fmt.Fprintln(l.config.Console, line)
	}
}

func (l *Logger) writeJSONLog(entry LogEntry) {
	if data, err := json.Marshal(entry); err == nil {
		_, _ = l.jsonFile.Write(append(data, '\n'))
	}
}

func (l *Logger) writeYAMLLog(entry LogEntry) {
	if data, err := yaml.Marshal(entry); err == nil {
		_, _ = l.yamlFile.WriteString("---\n" + string(data))
	}
}

// Info logs informational messages.
func Info(message string, keyValues ...interface{}) {
	if instance == nil {
		return
	}
	instance.logMessage(LevelInfo, message, keyValues...)
}

// Debug logs debug messages.
func Debug(message string, keyValues ...interface{}) {
	if instance == nil {
		return
	}
	instance.logMessage(LevelDebug, message, keyValues...)
}

// Warn logs warning messages.
func Warn(message string, keyValues ...interface{}) {
	if instance == nil {
		return
	}
	instance.logMessage(LevelWarn, message, keyValues...)
}

// Error logs error messages.
func Error(message string, keyValues ...interface{}) {
	if instance == nil {
		return
	}
	instance.logMessage(LevelError, message, keyValues...)
}

// SetLevel changes the minimum level of the singleton logger.
func SetLevel(level LogLevel) {
	if instance == nil {
		return
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()
	instance.logLevel = level
}

// GetCurrentLogDir returns the current timestamped log directory
func GetCurrentLogDir() string {
	if instance == nil {
		return ""
	}
	instance.mu.RLock()
	defer instance.mu.RUnlock()
	return instance.logDir
}

// GetSessionID returns the id stamped on every entry of this process.
func GetSessionID() string {
	if instance == nil {
		return ""
	}
	instance.mu.RLock()
	defer instance.mu.RUnlock()
	return instance.config.SessionID
}
