package room

import (
	"sync"

	"github.com/arjunmehra/stumped/internal/cricket"
)

// MockStore is a mock implementation of the RoomStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetSettingsFunc          func() (Settings, error)
	SaveSettingsFunc         func(settings Settings) error
	UpsertPlayersFunc        func(players []cricket.Player) error
	GetAllPlayersFunc        func() ([]cricket.Player, error)
	IsKnownPlayerFunc        func(playerID string) bool
	UpsertMatchFunc          func(match *cricket.Match) error
	UpsertMatchesFunc        func(matches []*cricket.Match) error
	GetMatchFunc             func(matchID string) (*cricket.Match, error)
	GetMatchByExternalIDFunc func(externalID string) (*cricket.Match, error)
	GetAllMatchesFunc        func() ([]*cricket.Match, error)
	ClearMatchFunc           func(matchID string)
	ClearFunc                func()

	// Call records
	SaveSettingsCalls  []Settings
	UpsertPlayersCalls [][]cricket.Player
	UpsertMatchCalls   []*cricket.Match
	UpsertMatchesCalls [][]*cricket.Match
	ClearMatchCalls    []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveSettingsCalls = nil
	m.UpsertPlayersCalls = nil
	m.UpsertMatchCalls = nil
	m.UpsertMatchesCalls = nil
	m.ClearMatchCalls = nil
}

func (m *MockStore) GetSettings() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc()
	}
	return DefaultSettings(), nil
}

func (m *MockStore) SaveSettings(settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveSettingsCalls = append(m.SaveSettingsCalls, settings)
	if m.SaveSettingsFunc != nil {
		return m.SaveSettingsFunc(settings)
	}
	return nil
}

func (m *MockStore) UpsertPlayers(players []cricket.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetAllPlayers() ([]cricket.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) UpsertMatch(match *cricket.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchCalls = append(m.UpsertMatchCalls, match)
	if m.UpsertMatchFunc != nil {
		return m.UpsertMatchFunc(match)
	}
	return nil
}

func (m *MockStore) UpsertMatches(matches []*cricket.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchesCalls = append(m.UpsertMatchesCalls, matches)
	if m.UpsertMatchesFunc != nil {
		return m.UpsertMatchesFunc(matches)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*cricket.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, cricket.ErrNotFound
}

func (m *MockStore) GetMatchByExternalID(externalID string) (*cricket.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchByExternalIDFunc != nil {
		return m.GetMatchByExternalIDFunc(externalID)
	}
	return nil, cricket.ErrNotFound
}

func (m *MockStore) GetAllMatches() ([]*cricket.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) ClearMatch(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
	if m.ClearMatchFunc != nil {
		m.ClearMatchFunc(matchID)
	}
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
