package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// EventLog collects records during a simulation run. Records are append-only:
// once appended they are never mutated or removed, and Records exposes them
// in append order. Not safe for concurrent use; the simulation event loop is
// the only writer.
type EventLog struct {
	records []Record
}

// NewEventLog creates an EventLog ready for recording.
func NewEventLog() *EventLog {
	return &EventLog{records: make([]Record, 0)}
}

// Append adds a record to the end of the log.
func (l *EventLog) Append(r Record) {
	l.records = append(l.records, r)
}

// Len returns the number of records appended so far.
func (l *EventLog) Len() int {
	return len(l.records)
}

// Records returns the underlying record slice in append order. Callers must
// treat the result as read-only.
func (l *EventLog) Records() []Record {
	return l.records
}

// WriteFile persists the log as an indented JSON array, written once at the
// end of a run.
func (l *EventLog) WriteFile(path string) error {
	data, err := json.MarshalIndent(l.records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal event log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write event log: %w", err)
	}
	return nil
}

// ReadFile loads a persisted event log. The returned log compares equal to
// the one that produced the file, record for record.
func ReadFile(path string) (*EventLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse event log: %w", err)
	}
	return &EventLog{records: records}, nil
}
