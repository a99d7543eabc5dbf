package cricket

import "sort"

// ComputeInningsResult determines the nearest-guess winners for one innings.
// Every player who achieves the minimum absolute difference shares the win;
// ties are not broken. Returns nil when there is no actual score yet, and an
// empty result when nobody predicted.
func ComputeInningsResult(actual *int, preds map[string]int) *InningsResult {
	if actual == nil {
		return nil
	}
	res := &InningsResult{Winners: []string{}}
	for playerID, guess := range preds {
		diff := absDiff(guess, *actual)
		switch {
		case res.ClosestDiff == nil || diff < *res.ClosestDiff:
			d := diff
			res.ClosestDiff = &d
			res.Winners = []string{playerID}
		case diff == *res.ClosestDiff:
			res.Winners = append(res.Winners, playerID)
		}
	}
	sort.Strings(res.Winners)
	return res
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
