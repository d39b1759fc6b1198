package cache

import (
	"context"
	"sync"
)

// Memory is a mutex-guarded in-process answer cache.
type Memory struct {
	mu      sync.RWMutex
	answers map[string]string
}

func NewInMemoryStore() *Memory {
	return &Memory{answers: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, question string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	answer, ok := m.answers[question]
	return answer, ok, nil
}

func (m *Memory) Set(_ context.Context, question, answer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answers[question] = answer
	return nil
}
