package slack

import (
	"fmt"
	"strings"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/standings"
	"github.com/slack-go/slack"
)

// formatInningsResult creates the Slack message for a finalized innings using Block Kit.
func (s *Notifier) formatInningsResult(match *cricket.Match, innings cricket.InningsNumber, players []cricket.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏏 Innings result is in! 🏏", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	in := match.Innings(innings)
	battingTeam := ""
	if order, ok := cricket.ResolveBattingOrder(match); ok {
		if innings == cricket.FirstInnings {
			battingTeam = order.Innings1
		} else {
			battingTeam = order.Innings2
		}
	}
	details := fmt.Sprintf("%s vs %s — innings %d", match.TeamA, match.TeamB, innings)
	if battingTeam != "" && in != nil && in.Score != nil {
		details = fmt.Sprintf("%s vs %s — %s made %d", match.TeamA, match.TeamB, battingTeam, *in.Score)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, false, false), nil, nil))

	res := inningsResult(match, innings)
	if res != nil && len(res.Winners) > 0 {
		names := make(map[string]string, len(players))
		for _, p := range players {
			names[p.ID] = p.Name
		}
		var winnerNames []string
		for _, id := range res.Winners {
			if name, ok := names[id]; ok {
				winnerNames = append(winnerNames, name)
			}
		}
		verdict := fmt.Sprintf("Closest guess: %s", strings.Join(winnerNames, ", "))
		if res.ClosestDiff != nil && *res.ClosestDiff == 0 {
			verdict = fmt.Sprintf("Spot on! %s nailed the exact score 🎯", strings.Join(winnerNames, ", "))
		} else if res.ClosestDiff != nil {
			verdict = fmt.Sprintf("%s (off by %d)", verdict, *res.ClosestDiff)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", verdict, true, false), nil, nil))
	} else {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text", "Nobody predicted this innings.", false, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the standings message using Block Kit.
func (s *Notifier) formatLeaderboard(rows []standings.Row) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Prediction Pool Standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(rows) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "No standings yet.", false, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	medals := []string{"🥇", "🥈", "🥉"}
	for i, row := range rows {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		avg := "—"
		if row.AvgDiff != nil {
			avg = fmt.Sprintf("%.2f", *row.AvgDiff)
		}
		lines = append(lines, fmt.Sprintf("%s %s — %d pts (%d wins, %d exact, avg off %s)",
			rank, row.PlayerName, row.Points, row.Wins, row.ExactHits, avg))
	}
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

func inningsResult(match *cricket.Match, innings cricket.InningsNumber) *cricket.InningsResult {
	if match.Result == nil {
		return nil
	}
	if innings == cricket.FirstInnings {
		return match.Result.Innings1
	}
	return match.Result.Innings2
}
