package eligibility

import (
	"context"
	"sync"
)

// SequenceStore hands out monotonically increasing submission numbers per
// session so that results resolving out of order can be recognised.
type SequenceStore interface {
	Next(ctx context.Context, sessionID string) (int64, error)
	Latest(ctx context.Context, sessionID string) (int64, error)
}

// Submission is one form post: the state the caller currently renders and
// the newly submitted history.
type Submission struct {
	SessionID      string `json:"sessionId,omitempty"`
	Previous       State  `json:"previous"`
	AccountHistory string `json:"accountHistory"`
}

// Outcome is a projected state tagged with its submission number. Stale is
// set when a newer submission on the same session started before this one
// resolved; callers should drop stale outcomes.
type Outcome struct {
	State    State `json:"state"`
	Sequence int64 `json:"sequence"`
	Stale    bool  `json:"stale"`
}

// MemorySequenceStore is an in-process SequenceStore.
type MemorySequenceStore struct {
	mu  sync.Mutex
	seq map[string]int64
}

func NewMemorySequenceStore() *MemorySequenceStore {
	return &MemorySequenceStore{seq: make(map[string]int64)}
}

func (m *MemorySequenceStore) Next(_ context.Context, sessionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq[sessionID]++
	return m.seq[sessionID], nil
}

func (m *MemorySequenceStore) Latest(_ context.Context, sessionID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq[sessionID], nil
}
