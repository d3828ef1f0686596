package metrics

import (
	"sync"
	"time"
)

// Metrics collects counters for one process. In daemon mode they span
// multiple digest runs and back the /metrics and /health endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	EntriesScanned     int64
	DuplicatesFiltered int64
	ItemsEmitted       int64
	SummariesGenerated int64
	SummaryFailures    int64
	EmailsSent         int64
	EmailFailures      int64

	// Timings
	LastRunDuration  time.Duration
	TotalRunDuration time.Duration
	RunCount         int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementEntriesScanned() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesScanned++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementItemsEmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsEmitted++
}

func (m *Metrics) IncrementSummariesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesGenerated++
}

func (m *Metrics) IncrementSummaryFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryFailures++
}

func (m *Metrics) IncrementEmailsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailsSent++
}

func (m *Metrics) IncrementEmailFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailFailures++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"entries_scanned":      m.EntriesScanned,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"items_emitted":        m.ItemsEmitted,
		"summaries_generated":  m.SummariesGenerated,
		"summary_failures":     m.SummaryFailures,
		"emails_sent":          m.EmailsSent,
		"email_failures":       m.EmailFailures,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"run_count":            m.RunCount,
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
