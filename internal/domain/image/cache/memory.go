package cache

import (
	"container/list"
	"context"
	"sync"
)

const defaultCapacity = 500

type memoryStore struct {
	mutex    sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

type entry struct {
	key   string
	value string
}

// NewMemory builds a bounded in-memory LRU cache. When the capacity is
// exceeded the least recently used entry is evicted.
func NewMemory(cfg Config) Store {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &memoryStore{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	el, ok := s.items[key]
	if !ok {
		return "", false, nil
	}
	s.order.MoveToFront(el)
	return el.Value.(*entry).value, true, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if el, ok := s.items[key]; ok {
		el.Value.(*entry).value = value
		s.order.MoveToFront(el)
		return nil
	}
	s.items[key] = s.order.PushFront(&entry{key: key, value: value})
	if s.order.Len() > s.capacity {
		oldest := s.order.Back()
		if oldest != nil {
			s.order.Remove(oldest)
			delete(s.items, oldest.Value.(*entry).key)
		}
	}
	return nil
}

func (s *memoryStore) Len(_ context.Context) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.order.Len(), nil
}

func (s *memoryStore) Stats(ctx context.Context) (map[string]any, error) {
	n, _ := s.Len(ctx)
	return map[string]any{
		"type":     "memory",
		"size":     n,
		"capacity": s.capacity,
	}, nil
}

func (s *memoryStore) Close(context.Context) error { return nil }
