package memory

import "sync"

// Memory is a bounded, append-only stream of context entries an agent has
// observed: segment analyses, research findings, incorporated translations.
// When the capacity is exceeded the oldest entries are evicted first.
type Memory struct {
	entries  []string
	capacity int
	mu       sync.RWMutex
}

func NewMemory(capacity int) *Memory {
	return &Memory{
		entries:  make([]string, 0, capacity),
		capacity: capacity,
	}
}

// All returns a copy of the retained entries, oldest first.
func (m *Memory) All() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]string, len(m.entries))
	copy(entries, m.entries)
	return entries
}

// Store appends one entry, evicting the oldest when over capacity.
func (m *Memory) Store(entry string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	if len(m.entries) > m.capacity {
		m.entries = m.entries[1:]
	}
}

// Reset discards all entries.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = m.entries[:0]
}
