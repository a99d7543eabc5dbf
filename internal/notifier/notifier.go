package notifier

import (
	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/standings"
)

// Notifier defines a high-level interface for announcing room events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendInningsResult announces a finalized innings with its winners.
	SendInningsResult(match *cricket.Match, innings cricket.InningsNumber, players []cricket.Player, dryRun bool) (string, error)
	// SendLeaderboard posts the current standings.
	SendLeaderboard(rows []standings.Row, dryRun bool) error
}
