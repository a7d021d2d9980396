package requestlog

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// subscriberBuffer is the channel capacity handed to each subscriber.
const subscriberBuffer = 64

// MemoryStore is an append-only, goroutine-safe in-memory Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
	byID    map[string]*Entry

	subMu       sync.RWMutex
	subscribers map[Subscriber]struct{}
}

var _ SubscribableStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:        make(map[string]*Entry),
		subscribers: make(map[Subscriber]struct{}),
	}
}

// Log appends entry. Entries without a Request are ignored.
func (s *MemoryStore) Log(entry *Entry) {
	if entry == nil || entry.Request == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.byID[entry.ID] = entry
	s.mu.Unlock()

	// Slow subscribers miss entries rather than block the handler.
	s.subMu.RLock()
	for sub := range s.subscribers {
		select {
		case sub <- entry:
		default:
		}
	}
	s.subMu.RUnlock()
}

// Get retrieves an entry by ID.
func (s *MemoryStore) Get(id string) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// List returns a fresh slice of matching entries in log order. A filter
// with an invalid pattern matches nothing.
func (s *MemoryStore) List(filter *Filter) []*Entry {
	s.mu.RLock()
	snapshot := make([]*Entry, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.RUnlock()

	if filter == nil {
		return snapshot
	}
	m, err := filter.compile()
	if err != nil {
		return []*Entry{}
	}
	result := snapshot[:0]
	for _, e := range snapshot {
		if m.match(e) {
			result = append(result, e)
		}
	}
	return filter.page(result)
}

// Count returns the number of entries.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Subscribe registers a new subscriber.
func (s *MemoryStore) Subscribe() (Subscriber, func()) {
	sub := make(Subscriber, subscriberBuffer)
	s.subMu.Lock()
	s.subscribers[sub] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	return sub, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, sub)
			s.subMu.Unlock()
			close(sub)
		})
	}
}
