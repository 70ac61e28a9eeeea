package evil

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Metrics collects keystroke and command statistics across views.
type Metrics struct {
	mu sync.RWMutex

	commands map[string]*CommandMetrics

	totalKeys        uint64
	totalPassthrough uint64
	totalCommands    uint64
	totalErrors      uint64
	totalDuration    time.Duration
}

// CommandMetrics holds the statistics of one command name.
type CommandMetrics struct {
	Name          string
	Count         uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastRun       time.Time
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commands: make(map[string]*CommandMetrics),
	}
}

// RecordKey counts one keystroke and whether it was passed to the host.
func (m *Metrics) RecordKey(passthrough bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalKeys++
	if passthrough {
		m.totalPassthrough++
	}
}

// RecordCommand records one executed command.
func (m *Metrics) RecordCommand(name string, duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalCommands++
	m.totalDuration += duration
	if failed {
		m.totalErrors++
	}

	cm := m.commands[name]
	if cm == nil {
		cm = &CommandMetrics{
			Name:        name,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.commands[name] = cm
	}

	cm.Count++
	cm.TotalDuration += duration
	cm.LastRun = time.Now()
	cm.MinDuration = min(cm.MinDuration, duration)
	cm.MaxDuration = max(cm.MaxDuration, duration)
	if failed {
		cm.ErrorCount++
	}
}

// CommandStats returns a copy of the statistics for name, or nil.
func (m *Metrics) CommandStats(name string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commands[name]
	if cm == nil {
		return nil
	}
	c := *cm
	return &c
}

// TopCommands returns the n most executed commands, most frequent first.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]*CommandMetrics, 0, len(m.commands))
	for _, cm := range m.commands {
		c := *cm
		list = append(list, &c)
	}
	slices.SortFunc(list, func(a, b *CommandMetrics) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	return list[:min(max(n, 0), len(list))]
}

// Reset clears all statistics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commands = make(map[string]*CommandMetrics)
	m.totalKeys = 0
	m.totalPassthrough = 0
	m.totalCommands = 0
	m.totalErrors = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the totals.
type MetricsSnapshot struct {
	Keys            uint64
	Passthrough     uint64
	Commands        uint64
	Errors          uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	CommandCount    int
	Timestamp       time.Time
}

// Snapshot returns the current totals.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSnapshot{
		Keys:          m.totalKeys,
		Passthrough:   m.totalPassthrough,
		Commands:      m.totalCommands,
		Errors:        m.totalErrors,
		TotalDuration: m.totalDuration,
		CommandCount:  len(m.commands),
		Timestamp:     time.Now(),
	}
	if m.totalCommands > 0 {
		s.AverageDuration = m.totalDuration / time.Duration(m.totalCommands)
	}
	return s
}

// Average returns the mean duration of the command.
func (cm *CommandMetrics) Average() time.Duration {
	if cm.Count == 0 {
		return 0
	}
	return cm.TotalDuration / time.Duration(cm.Count)
}

// ErrorRate returns the share of failed runs as a percentage.
func (cm *CommandMetrics) ErrorRate() float64 {
	if cm.Count == 0 {
		return 0
	}
	return float64(cm.ErrorCount) / float64(cm.Count) * 100
}
