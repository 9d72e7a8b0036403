// Package events describes what the reconciliation engine reports after a
// successful operation.
package events

import (
	"context"
	"time"

	"github.com/Ramsey-B/aster/pkg/models"
)

type Type string

const (
	RecordAsserted    Type = "record.asserted"
	EntryDeduplicated Type = "entry.deduplicated"
	EntryCreated      Type = "entry.created"
	EntryDeleted      Type = "entry.deleted"
)

type Event struct {
	Type         Type              `json:"type"`
	RecordID     string            `json:"record_id,omitempty"`
	RecordType   models.RecordType `json:"record_type,omitempty"`
	CollectionID string            `json:"collection_id,omitempty"`
	EntryID      string            `json:"entry_id,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`

	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`
}

// Key partitions events of the same record together. Deletions carry no
// record and fall back to the entry id.
func (e Event) Key() string {
	if e.RecordID != "" {
		return e.RecordID
	}
	return e.EntryID
}

// Emitter publishes events. Callers treat failures as non-fatal.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// NoopEmitter drops every event.
type NoopEmitter struct{}

func (NoopEmitter) Emit(context.Context, Event) error { return nil }

// ForRecord builds a record.asserted event.
func ForRecord(record models.Record) Event {
	return Event{
		Type:       RecordAsserted,
		RecordID:   record.RecordID,
		RecordType: record.RecordType,
	}
}

// ForEntry builds an entry event of the given type.
func ForEntry(eventType Type, entry models.Entry) Event {
	return Event{
		Type:         eventType,
		RecordID:     entry.Record.RecordID,
		RecordType:   entry.Record.RecordType,
		CollectionID: entry.CollectionID,
		EntryID:      entry.ID,
	}
}
