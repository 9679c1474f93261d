// Package potatolog provides an in-memory sink for zerolog's JSON output, used
// while the terminal is owned by the grid and stderr cannot be written to.
package potatolog

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LogEntry is a single log entry.
type LogEntry = map[string]any

// DefaultCapacity is the number of entries kept by GlobalMemoryLogReaderWriter.
const DefaultCapacity = 1000

// GlobalMemoryLogReaderWriter is a global MemoryLogReaderWriter.
var GlobalMemoryLogReaderWriter = NewMemoryLogReaderWriter(DefaultCapacity)

// MemoryLogReaderWriter is a simple in-memory log reader and writer.
// It keeps at most its capacity of entries, dropping the oldest.
type MemoryLogReaderWriter struct {
	mtx      sync.Mutex
	log      []LogEntry
	capacity int
}

// NewMemoryLogReaderWriter returns a log keeping at most capacity entries; a
// non-positive capacity means unbounded.
func NewMemoryLogReaderWriter(capacity int) *MemoryLogReaderWriter {
	return &MemoryLogReaderWriter{
		log:      []LogEntry{},
		capacity: capacity,
	}
}

// Write appends a log entry to the log.
func (w *MemoryLogReaderWriter) Write(p []byte) (int, error) {
	entry := LogEntry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.log = append(w.log, entry)
	if w.capacity > 0 && len(w.log) > w.capacity {
		w.log = w.log[len(w.log)-w.capacity:]
	}
	return len(p), nil
}

// Get returns a copy of the log.
func (w *MemoryLogReaderWriter) Get() []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	result := make([]LogEntry, len(w.log))
	copy(result, w.log)
	return result
}

// Last returns the most recent entry with one of the given levels, e.g.
// "warn" and "error".
func (w *MemoryLogReaderWriter) Last(levels ...string) (LogEntry, bool) {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	for i := len(w.log) - 1; i >= 0; i-- {
		level, _ := w.log[i]["level"].(string)
		for _, l := range levels {
			if level == l {
				return w.log[i], true
			}
		}
	}
	return nil, false
}

// LogReader allows reading access to a log.
type LogReader interface {
	Get() []LogEntry
	Last(levels ...string) (LogEntry, bool)
}
