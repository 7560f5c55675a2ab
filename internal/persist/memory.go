package persist

import (
	"context"
	"fmt"
	"sync"
)

// MemoryPersister is an in-process Persister. It backs tests and lets the
// server run without Redis, at the cost of losing state on restart.
type MemoryPersister struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: make(map[string][]byte)}
}

func memKey(userID uint, key Key) string {
	return fmt.Sprintf("%d:%s", userID, key)
}

func (p *MemoryPersister) Save(_ context.Context, userID uint, key Key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	p.data[memKey(userID, key)] = cp
	return nil
}

func (p *MemoryPersister) Load(_ context.Context, userID uint, key Key) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	val, ok := p.data[memKey(userID, key)]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp, nil
}

func (p *MemoryPersister) Delete(_ context.Context, userID uint, key Key) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, memKey(userID, key))
	return nil
}

func (p *MemoryPersister) Close() error { return nil }
