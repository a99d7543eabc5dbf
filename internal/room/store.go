package room

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/charmbracelet/log"
)

// New creates a new RoomStore.
func New(db *sql.DB) RoomStore {
	return &store{
		db: db,
	}
}

// matchState is the blob portion of a match row. Everything that is not an
// identity or descriptive scalar lives here; legacy flat fields decode
// through it so Normalize can migrate old records on read.
type matchState struct {
	Toss        *cricket.Toss        `json:"toss,omitempty"`
	Innings1    *cricket.Innings     `json:"innings1,omitempty"`
	Innings2    *cricket.Innings     `json:"innings2,omitempty"`
	Predictions cricket.Predictions  `json:"predictions"`
	Result      *cricket.MatchResult `json:"result,omitempty"`

	LegacyStatus   string      `json:"status,omitempty"`
	LegacyLockTime *time.Time  `json:"lockTime,omitempty"`
	LegacyScore    *int        `json:"actualScore,omitempty"`
	GoalserveID    string      `json:"goalserve_match_id,omitempty"`
}

func (s *store) GetSettings() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT room_name, pin_required, admin_pin_hash, min_score, max_score, bonus_exact,
		       lock_offset_minutes, sync_source, last_schedule_sync, last_toss_sync, auto_sync_enabled
		FROM room_settings WHERE id = 1`)

	var (
		settings               Settings
		pinRequired, autoSync  int
		scheduleSync, tossSync sql.NullInt64
	)
	err := row.Scan(
		&settings.RoomName, &pinRequired, &settings.AdminPINHash,
		&settings.MinScore, &settings.MaxScore, &settings.BonusExact,
		&settings.LockOffsetMinutes, &settings.SyncSource,
		&scheduleSync, &tossSync, &autoSync,
	)
	if err == sql.ErrNoRows {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read room settings: %w", err)
	}
	settings.PinRequired = pinRequired != 0
	settings.AutoSyncEnabled = autoSync != 0
	if scheduleSync.Valid {
		t := time.Unix(scheduleSync.Int64, 0).UTC()
		settings.LastScheduleSync = &t
	}
	if tossSync.Valid {
		t := time.Unix(tossSync.Int64, 0).UTC()
		settings.LastTossSync = &t
	}
	return settings, nil
}

func (s *store) SaveSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO room_settings (id, room_name, pin_required, admin_pin_hash, min_score, max_score, bonus_exact,
		                           lock_offset_minutes, sync_source, last_schedule_sync, last_toss_sync, auto_sync_enabled)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			room_name = excluded.room_name,
			pin_required = excluded.pin_required,
			admin_pin_hash = excluded.admin_pin_hash,
			min_score = excluded.min_score,
			max_score = excluded.max_score,
			bonus_exact = excluded.bonus_exact,
			lock_offset_minutes = excluded.lock_offset_minutes,
			sync_source = excluded.sync_source,
			last_schedule_sync = excluded.last_schedule_sync,
			last_toss_sync = excluded.last_toss_sync,
			auto_sync_enabled = excluded.auto_sync_enabled;`,
		settings.RoomName, boolToInt(settings.PinRequired), settings.AdminPINHash,
		settings.MinScore, settings.MaxScore, settings.BonusExact,
		settings.LockOffsetMinutes, settings.SyncSource,
		unixOrNil(settings.LastScheduleSync), unixOrNil(settings.LastTossSync),
		boolToInt(settings.AutoSyncEnabled),
	)
	return err
}

func (s *store) UpsertPlayers(players []cricket.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name;`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) GetAllPlayers() ([]cricket.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []cricket.Player
	for rows.Next() {
		var p cricket.Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var one int
	err := s.db.QueryRow(`SELECT 1 FROM players WHERE id = ?`, playerID).Scan(&one)
	return err == nil
}

// UpsertMatch inserts a new match or updates an existing one by ID.
func (s *store) UpsertMatch(match *cricket.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertMatchLocked(match)
}

func (s *store) UpsertMatches(matches []*cricket.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range matches {
		if err := s.upsertMatchLocked(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) upsertMatchLocked(match *cricket.Match) error {
	stateJSON, err := json.Marshal(matchState{
		Toss:        match.Toss,
		Innings1:    match.Innings1,
		Innings2:    match.Innings2,
		Predictions: match.Predictions,
		Result:      match.Result,
		GoalserveID: match.GoalserveMatchID,
	})
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO matches (id, external_id, goalserve_match_id, team_a, team_b, venue, grp, stage,
		                     match_number, round_number, match_date, state_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			external_id = excluded.external_id,
			goalserve_match_id = excluded.goalserve_match_id,
			team_a = excluded.team_a,
			team_b = excluded.team_b,
			venue = excluded.venue,
			grp = excluded.grp,
			stage = excluded.stage,
			match_number = excluded.match_number,
			round_number = excluded.round_number,
			match_date = excluded.match_date,
			state_json = excluded.state_json;`,
		match.ID, match.ExternalID, match.GoalserveMatchID,
		match.TeamA, match.TeamB, match.Venue, match.Group, match.Stage,
		match.MatchNumber, match.RoundNumber, unixOrNil(match.MatchDate), string(stateJSON),
	)
	return err
}

func (s *store) GetMatch(matchID string) (*cricket.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectMatch+` WHERE id = ?`, matchID)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: match %s", cricket.ErrNotFound, matchID)
	}
	return m, err
}

func (s *store) GetMatchByExternalID(externalID string) (*cricket.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectMatch+` WHERE external_id = ?`, externalID)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: external id %s", cricket.ErrNotFound, externalID)
	}
	return m, err
}

func (s *store) GetAllMatches() ([]*cricket.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectMatch + ` ORDER BY match_date IS NULL, match_date, match_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*cricket.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM matches WHERE id = ?`, matchID); err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
	}
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"matches", "players", "room_settings"} {
		if _, err := s.db.Exec(`DELETE FROM ` + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
		}
	}
}

const selectMatch = `
	SELECT id, external_id, goalserve_match_id, team_a, team_b, venue, grp, stage,
	       match_number, round_number, match_date, state_json
	FROM matches`

// scanMatch reads one match row. Blob decoding is tolerant: a malformed
// state blob leaves the match with defaults for Normalize to repair.
func scanMatch(scanner interface{ Scan(...any) error }) (*cricket.Match, error) {
	var (
		m                        cricket.Match
		externalID, goalserveID  sql.NullString
		matchDate                sql.NullInt64
		stateJSON                string
	)
	err := scanner.Scan(
		&m.ID, &externalID, &goalserveID, &m.TeamA, &m.TeamB, &m.Venue, &m.Group, &m.Stage,
		&m.MatchNumber, &m.RoundNumber, &matchDate, &stateJSON,
	)
	if err != nil {
		return nil, err
	}
	m.ExternalID = externalID.String
	m.GoalserveMatchID = goalserveID.String
	if matchDate.Valid {
		t := time.Unix(matchDate.Int64, 0).UTC()
		m.MatchDate = &t
	}

	var state matchState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		log.Error("Failed to unmarshal match state", "error", err, "matchID", m.ID)
	}
	m.Toss = state.Toss
	m.Innings1 = state.Innings1
	m.Innings2 = state.Innings2
	m.Predictions = state.Predictions
	m.Result = state.Result
	m.LegacyStatus = state.LegacyStatus
	m.LegacyLockTime = state.LegacyLockTime
	m.LegacyScore = state.LegacyScore
	if m.GoalserveMatchID == "" {
		m.GoalserveMatchID = state.GoalserveID
	}
	return &m, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}
