package goalserve

import (
	"strings"

	"github.com/arjunmehra/stumped/internal/cricket"
)

// NormalizeTeamName reduces a team name to lowercase alphanumerics so feed
// spellings ("Sri-Lanka", "SRI LANKA") compare equal to stored ones.
func NormalizeTeamName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseToss extracts a toss outcome from the feed's free-text annotation,
// e.g. "India won the toss and elected to bat". Both the winning team and a
// bat/field keyword must be found; otherwise false.
func ParseToss(text, teamA, teamB string) (cricket.Toss, bool) {
	norm := NormalizeTeamName(text)
	if norm == "" {
		return cricket.Toss{}, false
	}

	var winner string
	a, b := NormalizeTeamName(teamA), NormalizeTeamName(teamB)
	// When one team name contains the other ("India" / "India A"), prefer the
	// longer match.
	if len(b) > len(a) {
		a, b = b, a
		teamA, teamB = teamB, teamA
	}
	switch {
	case a != "" && strings.Contains(norm, a):
		winner = teamA
	case b != "" && strings.Contains(norm, b):
		winner = teamB
	default:
		return cricket.Toss{}, false
	}

	lower := strings.ToLower(text)
	var decision cricket.TossDecision
	switch {
	case strings.Contains(lower, "field"), strings.Contains(lower, "bowl"):
		decision = cricket.DecisionField
	case strings.Contains(lower, "bat"):
		decision = cricket.DecisionBat
	default:
		return cricket.Toss{}, false
	}

	return cricket.Toss{Winner: winner, Decision: decision}, true
}
