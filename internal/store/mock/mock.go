package mock

import (
	"sync"
	"sync/atomic"

	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/store"
)

// MockStore is an in-memory store.Repository for tests. Hooks override the
// default map-backed behavior; states are cloned in and out so callers can
// not alias stored data.
type MockStore struct {
	LoadFunc func(ledgerID string) (*model.State, error)
	SaveFunc func(ledgerID string, state *model.State) error

	mu     sync.Mutex
	states map[string]*model.State

	loadCalls int64
	saveCalls int64
}

func New() *MockStore {
	return &MockStore{states: map[string]*model.State{}}
}

// Seed stores state for ledgerID without counting a Save.
func (m *MockStore) Seed(ledgerID string, state *model.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.states == nil {
		m.states = map[string]*model.State{}
	}
	m.states[ledgerID] = state.Clone()
}

// Stored returns a copy of what was last saved for ledgerID.
func (m *MockStore) Stored(ledgerID string) (*model.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[ledgerID]
	if !ok {
		return nil, false
	}
	return st.Clone(), true
}

func (m *MockStore) Load(ledgerID string) (*model.State, error) {
	atomic.AddInt64(&m.loadCalls, 1)
	if m.LoadFunc != nil {
		return m.LoadFunc(ledgerID)
	}

	st, ok := m.Stored(ledgerID)
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return st, nil
}

func (m *MockStore) Save(ledgerID string, state *model.State) error {
	atomic.AddInt64(&m.saveCalls, 1)
	if m.SaveFunc != nil {
		if err := m.SaveFunc(ledgerID, state); err != nil {
			return err
		}
	}
	m.Seed(ledgerID, state)
	return nil
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) LoadCalls() int {
	return int(atomic.LoadInt64(&m.loadCalls))
}

func (m *MockStore) SaveCalls() int {
	return int(atomic.LoadInt64(&m.saveCalls))
}
