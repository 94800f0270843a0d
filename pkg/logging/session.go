// pkg/logging/session.go - per-workflow session records in the run directory

package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session is one Scan or Auto-Fix run within the process.
type Session struct {
	RunID     string                 `json:"run_id"`
	Workflow  string                 `json:"workflow"`
	StartTime time.Time              `json:"start_time"`
	EndTime   *time.Time             `json:"end_time,omitempty"`
	Status    string                 `json:"status"` // running, completed, aborted
	Summary   SessionSummary         `json:"summary"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// SessionSummary provides the outcome counters of a workflow run.
type SessionSummary struct {
	Progress        int           `json:"progress"`
	Missing         []string      `json:"missing,omitempty"`
	Installed       int           `json:"installed"`
	InstallFailures int           `json:"install_failures"`
	BusyPorts       []int         `json:"busy_ports,omitempty"`
	ServiceState    string        `json:"service_state,omitempty"`
	Duration        time.Duration `json:"duration"`
}

var errNotInitialized = errors.New("logging not initialized")

// StartSession records the start of a workflow run.
func StartSession(runID, workflow string, metadata map[string]interface{}) error {
	if instance == nil {
		return errNotInitialized
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()

	instance.sessions = append(instance.sessions, &Session{
		RunID:     runID,
		Workflow:  workflow,
		StartTime: time.Now(),
		Status:    "running",
		Metadata:  metadata,
	})
	return instance.writeSessions()
}

// EndSession completes the workflow run started with the same runID.
func EndSession(runID, status string, summary SessionSummary) error {
	if instance == nil {
		return errNotInitialized
	}
	instance.mu.Lock()
	defer instance.mu.Unlock()

	for _, s := range instance.sessions {
		if s.RunID != runID {
			continue
		}
		now := time.Now()
		s.EndTime = &now
		s.Status = status
		summary.Duration = now.Sub(s.StartTime)
		s.Summary = summary
		return instance.writeSessions()
	}
	return fmt.Errorf("unknown session %s", runID)
}

// writeSessions rewrites session.json; the caller holds l.mu.
func (l *Logger) writeSessions() error {
	if l.logDir == "" {
		return nil
	}
	data, err := json.MarshalIndent(l.sessions, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(l.logDir, "session.json"), data, 0644)
}
