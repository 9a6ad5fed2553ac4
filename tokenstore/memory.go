package tokenstore

import (
	"context"
	"sync"
)

// Memory is an in-process token store. Intended for tests and demo mode.
type Memory struct {
	mu    sync.RWMutex
	token string
	set   bool

	// FailSave forces Save to return the given error. Test hook.
	FailSave error
}

// NewMemory creates an empty in-memory token store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(ctx context.Context, token string) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *Memory) Load(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set || m.token == "" {
		return "", ErrNotFound
	}
	return m.token, nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
