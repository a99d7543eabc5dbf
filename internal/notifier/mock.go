package notifier

import (
	"sync"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/standings"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendInningsResultFunc func(match *cricket.Match, innings cricket.InningsNumber, players []cricket.Player, dryRun bool) (string, error)
	SendLeaderboardFunc   func(rows []standings.Row, dryRun bool) error

	// Call records
	SendInningsResultCalls []struct {
		Match   *cricket.Match
		Innings cricket.InningsNumber
	}
	SendLeaderboardCalls [][]standings.Row
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendInningsResult(match *cricket.Match, innings cricket.InningsNumber, players []cricket.Player, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendInningsResultCalls = append(m.SendInningsResultCalls, struct {
		Match   *cricket.Match
		Innings cricket.InningsNumber
	}{match, innings})
	if m.SendInningsResultFunc != nil {
		return m.SendInningsResultFunc(match, innings, players, dryRun)
	}
	return "", nil
}

func (m *Mock) SendLeaderboard(rows []standings.Row, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, rows)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(rows, dryRun)
	}
	return nil
}
