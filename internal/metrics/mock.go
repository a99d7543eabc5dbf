package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	syncRuns             int
	predictionsSubmitted int
	inningsScored        int
	feedSyncFailures     int
	notifSent            int
	notifFailed          int
	snapshotDurations    []float64
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		snapshotDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSyncRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncRuns++
}

func (m *Mock) IncPredictionsSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.predictionsSubmitted++
}

func (m *Mock) IncInningsScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inningsScored++
}

func (m *Mock) IncFeedSyncFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedSyncFailures++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) ObserveSnapshotDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotDurations = append(m.snapshotDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SyncRuns returns the number of times IncSyncRuns was called.
func (m *Mock) SyncRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncRuns
}

// PredictionsSubmitted returns the number of accepted predictions recorded.
func (m *Mock) PredictionsSubmitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.predictionsSubmitted
}

// InningsScored returns the number of scored innings recorded.
func (m *Mock) InningsScored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inningsScored
}

// FeedSyncFailures returns the number of failed sync attempts recorded.
func (m *Mock) FeedSyncFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.feedSyncFailures
}
