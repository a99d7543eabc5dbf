package slack

import (
	"context"
	"testing"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/metrics"
	"github.com/arjunmehra/stumped/internal/standings"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlackAPI struct {
	calls int
	err   error
}

func (f *fakeSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return channelID, "123.456", nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func resultMatch() ([]cricket.Player, *cricket.Match) {
	players := []cricket.Player{{ID: "p1", Name: "Asha"}, {ID: "p2", Name: "Bilal"}}
	m := &cricket.Match{
		TeamA:    "India",
		TeamB:    "Australia",
		Toss:     &cricket.Toss{Winner: "India", Decision: cricket.DecisionBat},
		Innings1: &cricket.Innings{Status: cricket.InningsScored, Score: intPtr(182)},
		Innings2: &cricket.Innings{Status: cricket.InningsOpen},
		Result: &cricket.MatchResult{
			Innings1: &cricket.InningsResult{Winners: []string{"p1"}, ClosestDiff: intPtr(0)},
		},
	}
	return players, m
}

func TestSendInningsResult(t *testing.T) {
	players, m := resultMatch()
	api := &fakeSlackAPI{}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	ts, err := n.SendInningsResult(m, cricket.FirstInnings, players, false)
	require.NoError(t, err)
	assert.Equal(t, "123.456", ts)
	assert.Equal(t, 1, api.calls)
}

func TestSendInningsResultDryRun(t *testing.T) {
	players, m := resultMatch()
	api := &fakeSlackAPI{}
	n := NewNotifierWithAPI(api, "C123", metrics.NewMock())

	_, err := n.SendInningsResult(m, cricket.FirstInnings, players, true)
	require.NoError(t, err)
	assert.Zero(t, api.calls, "dry run must not hit the API")
}

func TestFormatInningsResultExactHit(t *testing.T) {
	players, m := resultMatch()
	n := NewNotifierWithAPI(&fakeSlackAPI{}, "C123", metrics.NewMock())

	msg := n.formatInningsResult(m, cricket.FirstInnings, players)
	text := blocksText(msg)
	assert.Contains(t, text, "India made 182")
	assert.Contains(t, text, "Asha")
	assert.Contains(t, text, "nailed the exact score")
}

func TestFormatInningsResultNoPredictions(t *testing.T) {
	players, m := resultMatch()
	m.Result.Innings1 = &cricket.InningsResult{Winners: []string{}}
	n := NewNotifierWithAPI(&fakeSlackAPI{}, "C123", metrics.NewMock())

	msg := n.formatInningsResult(m, cricket.FirstInnings, players)
	assert.Contains(t, blocksText(msg), "Nobody predicted")
}

func TestFormatLeaderboard(t *testing.T) {
	n := NewNotifierWithAPI(&fakeSlackAPI{}, "C123", metrics.NewMock())

	rows := []standings.Row{
		{PlayerName: "Asha", Points: 5, Wins: 3, ExactHits: 1, AvgDiff: floatPtr(7.25)},
		{PlayerName: "Bilal", Points: 2, Wins: 2},
	}
	msg := n.formatLeaderboard(rows)
	text := blocksText(msg)
	assert.Contains(t, text, "🥇 Asha — 5 pts")
	assert.Contains(t, text, "7.25")
	assert.Contains(t, text, "🥈 Bilal — 2 pts")
	// Bilal never predicted, so no average is shown.
	assert.Contains(t, text, "avg off —")
}

// blocksText flattens every text object in a Block Kit message for assertions.
func blocksText(msg slackapi.Message) string {
	var out string
	for _, block := range msg.Blocks.BlockSet {
		switch b := block.(type) {
		case *slackapi.HeaderBlock:
			out += b.Text.Text + "\n"
		case *slackapi.SectionBlock:
			if b.Text != nil {
				out += b.Text.Text + "\n"
			}
		case *slackapi.ContextBlock:
			for _, el := range b.ContextElements.Elements {
				if t, ok := el.(*slackapi.TextBlockObject); ok {
					out += t.Text + "\n"
				}
			}
		}
	}
	return out
}
