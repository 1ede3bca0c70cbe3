package telemetry

import (
	"sync"
	"time"
)

// Log is a bounded in-memory action log. Once full, the oldest entries are
// dropped.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	limit   int
	nextID  int
}

func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = 500
	}
	return &Log{limit: limit, nextID: 1}
}

// Record appends one entry.
func (l *Log) Record(week int, kind Kind, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		ID:        l.nextID,
		Week:      week,
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now(),
	})
	l.nextID++
	if len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
}

// Entries returns a copy, oldest first, filtered by week and kinds when
// given. sinceWeek of 0 means everything; empty kinds means every kind.
func (l *Log) Entries(sinceWeek int, kinds []Kind) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	filter := map[Kind]bool{}
	for _, k := range kinds {
		filter[k] = true
	}

	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if e.Week < sinceWeek {
			continue
		}
		if len(kinds) > 0 && !filter[e.Kind] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Clear drops everything, for a new game.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.nextID = 1
}
