package audit

import (
	"context"
	"sync"
)

type recordKey struct {
	partitionKey string
	rowKey       string
}

// MemorySink is an in-memory implementation of Sink for tests and local
// development.
type MemorySink struct {
	mu   sync.Mutex
	rows map[recordKey]Record
}

// NewMemorySink constructs an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{rows: make(map[recordKey]Record)}
}

// InsertOrReplace upserts the record on its key.
func (s *MemorySink) InsertOrReplace(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[recordKey{record.PartitionKey, record.RowKey}] = record
	return nil
}

// Records returns a snapshot of all stored records.
func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, 0, len(s.rows))
	for _, record := range s.rows {
		out = append(out, record)
	}
	return out
}
