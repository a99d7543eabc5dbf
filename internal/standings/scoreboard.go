// Package standings folds every scored innings across all matches into the
// room's cumulative leaderboard.
package standings

import (
	"math"
	"sort"

	"github.com/arjunmehra/stumped/internal/cricket"
)

// Row is one player's cumulative standing.
type Row struct {
	PlayerID        string   `json:"player_id"`
	PlayerName      string   `json:"player_name"`
	Wins            int      `json:"wins"`
	ExactHits       int      `json:"exact_hits"`
	Points          int      `json:"points"`
	PredictionCount int      `json:"prediction_count"`
	TotalDiff       int      `json:"total_diff"`
	AvgDiff         *float64 `json:"avg_diff"`
}

// Build computes the leaderboard from all matches. Only innings that are
// scored and carry a score contribute. A win is 1 point; an exact-hit win
// earns bonusExact on top when the bonus is enabled. Rows order by points
// descending, then average difference ascending (rows with no predictions
// rank as worst), then player name.
func Build(matches []*cricket.Match, players []cricket.Player, bonusExact int) []Row {
	acc := make(map[string]*Row, len(players))
	for _, p := range players {
		acc[p.ID] = &Row{PlayerID: p.ID, PlayerName: p.Name}
	}

	for _, m := range matches {
		for _, n := range []cricket.InningsNumber{cricket.FirstInnings, cricket.SecondInnings} {
			foldInnings(acc, m, n, bonusExact)
		}
	}

	rows := make([]Row, 0, len(acc))
	for _, r := range acc {
		if r.PredictionCount > 0 {
			avg := math.Round(float64(r.TotalDiff)/float64(r.PredictionCount)*100) / 100
			r.AvgDiff = &avg
		}
		rows = append(rows, *r)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if ad, bd := sortDiff(a), sortDiff(b); ad != bd {
			return ad < bd
		}
		return a.PlayerName < b.PlayerName
	})
	return rows
}

// sortDiff makes the comparator total: a player with no predictions ranks as
// infinitely far off rather than tripping an inconsistent comparison.
func sortDiff(r Row) float64 {
	if r.AvgDiff == nil {
		return math.Inf(1)
	}
	return *r.AvgDiff
}

func foldInnings(acc map[string]*Row, m *cricket.Match, n cricket.InningsNumber, bonusExact int) {
	in := m.Innings(n)
	if in == nil || in.Status != cricket.InningsScored || in.Score == nil {
		return
	}
	preds := m.PredictionsFor(n)

	res := storedResult(m, n)
	if res == nil {
		res = cricket.ComputeInningsResult(in.Score, preds)
	}

	diffs := make(map[string]int, len(preds))
	for playerID, guess := range preds {
		row, ok := acc[playerID]
		if !ok {
			continue
		}
		diff := guess - *in.Score
		if diff < 0 {
			diff = -diff
		}
		diffs[playerID] = diff
		row.TotalDiff += diff
		row.PredictionCount++
		if diff == 0 {
			row.ExactHits++
		}
	}

	for _, playerID := range res.Winners {
		row, ok := acc[playerID]
		if !ok {
			continue
		}
		row.Wins++
		row.Points++
		if bonusExact > 0 && diffs[playerID] == 0 {
			row.Points += bonusExact
		}
	}
}

func storedResult(m *cricket.Match, n cricket.InningsNumber) *cricket.InningsResult {
	if m.Result == nil {
		return nil
	}
	if n == cricket.FirstInnings {
		return m.Result.Innings1
	}
	return m.Result.Innings2
}
