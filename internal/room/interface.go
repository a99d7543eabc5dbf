package room

import "github.com/arjunmehra/stumped/internal/cricket"

// RoomStore defines the interface for interacting with the room's data.
// All mutations run under a single writer lock so the service layer can treat
// read-modify-write sequences on a match as serialized.
type RoomStore interface {
	GetSettings() (Settings, error)
	SaveSettings(settings Settings) error

	UpsertPlayers(players []cricket.Player) error
	GetAllPlayers() ([]cricket.Player, error)
	IsKnownPlayer(playerID string) bool

	UpsertMatch(match *cricket.Match) error
	UpsertMatches(matches []*cricket.Match) error
	GetMatch(matchID string) (*cricket.Match, error)
	GetMatchByExternalID(externalID string) (*cricket.Match, error)
	GetAllMatches() ([]*cricket.Match, error)
	ClearMatch(matchID string)
	Clear()
}
