// Package session stores the order snapshot between conversation
// turns. The transport reads the snapshot before each Process call and
// writes the returned one back; concurrent writers are last-write-wins
// and callers are expected to serialize per session.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/ai-kiosk/api/internal/order"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a session id has no stored snapshot.
var ErrNotFound = errors.New("session not found")

// Store round-trips an order snapshot between turns.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*order.Order, error)
	Put(ctx context.Context, id uuid.UUID, o *order.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Memory is the in-process Store used by the demo kiosk and tests.
type Memory struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*order.Order
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[uuid.UUID]*order.Order)}
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (*order.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return o.Clone(), nil
}

func (m *Memory) Put(_ context.Context, id uuid.UUID, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = o.Clone()
	return nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
