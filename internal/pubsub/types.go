package pubsub

import (
	gpubsub "cloud.google.com/go/pubsub"
)

// Topics the room publishes to. Push subscriptions route them back into the
// HTTP layer for fan-out work (notifications), keeping the mutating request
// path fast.
const (
	TopicInningsScored = "innings-scored"
	TopicTossSet       = "toss-set"
)

// InningsScoredEvent is published when an admin finalizes an innings score.
type InningsScoredEvent struct {
	MatchID string   `msgpack:"match_id"`
	Innings int      `msgpack:"innings"`
	Score   int      `msgpack:"score"`
	Winners []string `msgpack:"winners"`
}

// TossSetEvent is published when a toss is recorded, manually or via feed sync.
type TossSetEvent struct {
	MatchID  string `msgpack:"match_id"`
	Winner   string `msgpack:"winner"`
	Decision string `msgpack:"decision"`
}

type client struct {
	client   *gpubsub.Client
	teardown func()
}
