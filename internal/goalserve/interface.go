package goalserve

import "context"

// FeedClient defines the interface for fetching cricket fixture data from the
// Goalserve feeds.
type FeedClient interface {
	GetSchedule(ctx context.Context) ([]ScheduleEntry, error)
	GetTossCandidates(ctx context.Context) ([]TossCandidate, error)
}
