package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMemorySize is used when NewMemory is given a non-positive size.
const DefaultMemorySize = 256

// Memory is a thread-safe LRU Store.
type Memory struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	mu        sync.Mutex
	now       func() time.Time
}

// memoryItem is stored in the eviction list
type memoryItem struct {
	key       string
	entry     Entry
	expiresAt time.Time
}

// NewMemory creates an LRU store holding at most size entries.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &Memory{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
		now:       time.Now,
	}
}

// Get retrieves an entry and marks it most recently used.
func (m *Memory) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, exists := m.items[key]
	if !exists {
		return Entry{}, false, nil
	}

	item := node.Value.(*memoryItem)
	if !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt) {
		m.removeElement(node)
		return Entry{}, false, nil
	}

	m.evictList.MoveToFront(node)
	return item.entry, true, nil
}

// Set adds or replaces an entry, evicting the least recently used one when full.
func (m *Memory) Set(_ context.Context, key string, entry Entry, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	if node, exists := m.items[key]; exists {
		m.evictList.MoveToFront(node)
		item := node.Value.(*memoryItem)
		item.entry = entry
		item.expiresAt = expiresAt
		return nil
	}

	node := m.evictList.PushFront(&memoryItem{key: key, entry: entry, expiresAt: expiresAt})
	m.items[key] = node

	if m.evictList.Len() > m.size {
		if oldest := m.evictList.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if node, exists := m.items[key]; exists {
		m.removeElement(node)
	}
	return nil
}

// Clear removes all entries.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*list.Element)
	m.evictList.Init()
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.evictList.Len()
}

func (m *Memory) removeElement(node *list.Element) {
	m.evictList.Remove(node)
	delete(m.items, node.Value.(*memoryItem).key)
}
