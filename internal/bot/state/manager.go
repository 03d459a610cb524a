package state

import (
	"context"
	"sync"
)

// User states constants
const (
	None                 = "none"
	WaitingForPriceQuery = "waiting_for_price_query"
)

// StateManager keeps the conversation state of each Telegram user
type StateManager interface {
	GetUserState(ctx context.Context, userID int64) (string, error)
	SetUserState(ctx context.Context, userID int64, state string) error
	ClearUserState(ctx context.Context, userID int64) error
}

// Manager is an in-process StateManager; state is lost on restart
type Manager struct {
	userStates map[int64]string
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(ctx context.Context, userID int64, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state == None {
		delete(m.userStates, userID)
		return nil
	}
	m.userStates[userID] = state
	return nil
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(ctx context.Context, userID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None, nil
	}
	return state, nil
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
	return nil
}
