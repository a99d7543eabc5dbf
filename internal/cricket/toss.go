package cricket

// BattingOrder names the team batting in each innings.
type BattingOrder struct {
	Innings1 string `json:"innings1"`
	Innings2 string `json:"innings2"`
}

// ResolveBattingOrder derives who bats when from the toss. The winner bats
// first when they chose to bat, second when they chose to field; the other
// team takes the remaining innings. Returns false while the toss is unset or
// incomplete.
func ResolveBattingOrder(m *Match) (BattingOrder, bool) {
	if m.Toss == nil || m.Toss.Winner == "" || m.Toss.Decision == "" {
		return BattingOrder{}, false
	}
	other := m.TeamA
	if m.Toss.Winner == m.TeamA {
		other = m.TeamB
	}
	if m.Toss.Decision == DecisionBat {
		return BattingOrder{Innings1: m.Toss.Winner, Innings2: other}, true
	}
	return BattingOrder{Innings1: other, Innings2: m.Toss.Winner}, true
}
