package goalserve

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the FeedClient interface for testing.
type MockClient struct {
	mu sync.Mutex

	GetScheduleFunc       func(ctx context.Context) ([]ScheduleEntry, error)
	GetTossCandidatesFunc func(ctx context.Context) ([]TossCandidate, error)

	GetScheduleCalls       int
	GetTossCandidatesCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GetSchedule(ctx context.Context) ([]ScheduleEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetScheduleCalls++
	if m.GetScheduleFunc != nil {
		return m.GetScheduleFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) GetTossCandidates(ctx context.Context) ([]TossCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTossCandidatesCalls++
	if m.GetTossCandidatesFunc != nil {
		return m.GetTossCandidatesFunc(ctx)
	}
	return nil, nil
}
