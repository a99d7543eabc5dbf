package goalserve

import (
	"testing"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTeamName(t *testing.T) {
	assert.Equal(t, "srilanka", NormalizeTeamName("Sri-Lanka"))
	assert.Equal(t, "srilanka", NormalizeTeamName("SRI LANKA"))
	assert.Equal(t, "newzealand", NormalizeTeamName("New Zealand"))
	assert.Equal(t, "", NormalizeTeamName("---"))
}

func TestParseToss(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantWinner   string
		wantDecision cricket.TossDecision
		wantOK       bool
	}{
		{
			name:         "elected to bat",
			text:         "India won the toss and elected to bat",
			wantWinner:   "India",
			wantDecision: cricket.DecisionBat,
			wantOK:       true,
		},
		{
			name:         "opted to field",
			text:         "Australia won the toss and opted to field",
			wantWinner:   "Australia",
			wantDecision: cricket.DecisionField,
			wantOK:       true,
		},
		{
			name:         "bowl first counts as field",
			text:         "Australia win toss, will bowl first",
			wantWinner:   "Australia",
			wantDecision: cricket.DecisionField,
			wantOK:       true,
		},
		{
			name:         "feed spelling differs from stored name",
			text:         "SRI LANKA won the toss and chose batting",
			wantWinner:   "Sri-Lanka",
			wantDecision: cricket.DecisionBat,
			wantOK:       true,
		},
		{
			name:   "no decision keyword",
			text:   "India won the toss",
			wantOK: false,
		},
		{
			name:   "no team mentioned",
			text:   "Toss delayed due to rain, will bat later",
			wantOK: false,
		},
		{
			name:   "empty",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teamA, teamB := "India", "Australia"
			if tt.name == "feed spelling differs from stored name" {
				teamA, teamB = "Sri-Lanka", "Bangladesh"
			}
			toss, ok := ParseToss(tt.text, teamA, teamB)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantWinner, toss.Winner)
				assert.Equal(t, tt.wantDecision, toss.Decision)
			}
		})
	}
}
