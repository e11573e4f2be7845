// Package repo provides the repeated submission counter stores
package repo

import (
	"context"
	"sync"
)

// Memory counts in process, counts are lost on restart
type Memory struct {
	mu sync.Mutex
	m  map[string]int64
}

// NewMemory returns an empty in process counter
func NewMemory() *Memory { return &Memory{m: map[string]int64{}} }

// Incr implements leadform.CounterStore
func (c *Memory) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key]++
	return c.m[key], nil
}

// Count returns the current value for key
func (c *Memory) Count(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[key]
}
