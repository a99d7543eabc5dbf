package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/arjunmehra/stumped/internal/service"
	"github.com/charmbracelet/log"
)

// writeError maps the service's error categories onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, cricket.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, cricket.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, cricket.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cricket.ErrStateConflict):
		status = http.StatusConflict
	case errors.Is(err, cricket.ErrFeedSync):
		status = http.StatusBadGateway
	}
	http.Error(w, err.Error(), status)
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// RoomHandler serves the full room view: settings, players, matches, and the
// scoreboard in one response.
func (s *Server) RoomHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := s.Service.Snapshot()
		if err != nil {
			log.Error("Failed to build room snapshot", "error", err)
			writeError(w, err)
			return
		}
		respondJSON(w, view)
	}
}

func (s *Server) ListMembersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			log.Error("Failed to get players from store", "error", err)
			writeError(w, err)
			return
		}
		respondJSON(w, players)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := s.Service.Snapshot()
		if err != nil {
			log.Error("Failed to get matches", "error", err)
			writeError(w, err)
			return
		}
		respondJSON(w, view.Matches)
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Service.Leaderboard()
		if err != nil {
			log.Error("Failed to build leaderboard", "error", err)
			writeError(w, err)
			return
		}
		respondJSON(w, rows)
	}
}

func (s *Server) SetupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params service.SetupParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		players, err := s.Service.SetupRoom(params)
		if err != nil {
			log.Error("Room setup failed", "error", err)
			writeError(w, err)
			return
		}
		respondJSON(w, players)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	type request struct {
		TeamA     string     `json:"team_a"`
		TeamB     string     `json:"team_b"`
		Venue     string     `json:"venue"`
		MatchDate *time.Time `json:"match_date"`
		LockTime  *time.Time `json:"lock_time"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		m, err := s.Service.CreateMatch(req.TeamA, req.TeamB, req.Venue, req.MatchDate, req.LockTime)
		if err != nil {
			log.Error("Failed to create match", "error", err)
			writeError(w, err)
			return
		}
		respondJSON(w, m)
	}
}

func (s *Server) PredictHandler() http.HandlerFunc {
	type request struct {
		MatchID  string  `json:"match_id"`
		Innings  int     `json:"innings"`
		PlayerID string  `json:"player_id"`
		Score    float64 `json:"score"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Service.SubmitPrediction(req.MatchID, req.Innings, req.PlayerID, req.Score); err != nil {
			log.Warn("Prediction rejected", "matchID", req.MatchID, "playerID", req.PlayerID, "error", err)
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Prediction recorded.")
	}
}

func (s *Server) TossHandler() http.HandlerFunc {
	type request struct {
		MatchID  string `json:"match_id"`
		Winner   string `json:"winner"`
		Decision string `json:"decision"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Service.SetToss(req.MatchID, req.Winner, cricket.TossDecision(req.Decision)); err != nil {
			log.Warn("Toss rejected", "matchID", req.MatchID, "error", err)
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Toss recorded.")
	}
}

func (s *Server) LockHandler() http.HandlerFunc {
	type request struct {
		MatchID string `json:"match_id"`
		Innings int    `json:"innings"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Service.LockInnings(req.MatchID, req.Innings); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Innings locked.")
	}
}

func (s *Server) ScoreHandler() http.HandlerFunc {
	type request struct {
		MatchID       string     `json:"match_id"`
		Innings       int        `json:"innings"`
		Score         float64    `json:"score"`
		Innings2Start *time.Time `json:"innings2_start"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Service.ScoreInnings(req.MatchID, req.Innings, req.Score, req.Innings2Start); err != nil {
			log.Warn("Score rejected", "matchID", req.MatchID, "innings", req.Innings, "error", err)
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Innings scored.")
	}
}

// ReopenHandler resets one innings when 'innings' is given, otherwise the
// whole match.
func (s *Server) ReopenHandler() http.HandlerFunc {
	type request struct {
		MatchID string `json:"match_id"`
		Innings int    `json:"innings"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		var err error
		if req.Innings == 0 {
			err = s.Service.ReopenMatch(req.MatchID)
		} else {
			err = s.Service.ReopenInnings(req.MatchID, req.Innings)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Reopened.")
	}
}

func (s *Server) SyncScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting schedule sync...")
		report, err := s.Service.SyncSchedule()
		if err != nil {
			log.Error("Schedule sync failed", "error", err)
			writeError(w, err)
			return
		}
		respondJSON(w, report)
	}
}

func (s *Server) SyncTossHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting toss sync...")
		applied, err := s.Service.SyncToss()
		if err != nil {
			log.Error("Toss sync failed", "error", err)
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Toss sync completed, %d applied.\n", applied)
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Store.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
		}
	}
}

// decodePushMessage unwraps a pubsub push delivery: outer JSON envelope, then
// base64, leaving the raw MessagePack payload.
func decodePushMessage(r *http.Request) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	var pubsubMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"`
		} `json:"message"`
	}
	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		return nil, fmt.Errorf("unmarshal wrapper: %w", err)
	}
	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return rawData, nil
}

// NotifyInningsResultHandler is the push endpoint for the innings-scored
// subscription. It announces the result in Slack off the scoring path.
func (s *Server) NotifyInningsResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushMessage(r)
		if err != nil {
			log.Error("Failed to decode push message", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}
		var event struct {
			MatchID string `msgpack:"match_id"`
			Innings int    `msgpack:"innings"`
		}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode event payload", "error", err)
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		if err := s.Service.NotifyInningsResult(event.MatchID, event.Innings, isDryRun); err != nil {
			log.Error("Failed to notify innings result", "matchID", event.MatchID, "error", err)
			writeError(w, err)
			return
		}
		w.Write([]byte("OK"))
	}
}

// NotifyLeaderboardHandler posts the current standings to Slack. Wired to a
// scheduler rather than a subscription, but it goes through the same notifier.
func (s *Server) NotifyLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := s.Service.Leaderboard()
		if err != nil {
			log.Error("Failed to build leaderboard", "error", err)
			writeError(w, err)
			return
		}
		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendLeaderboard(rows, isDryRun); err != nil {
			log.Error("Failed to send leaderboard", "error", err)
			writeError(w, err)
			return
		}
		w.Write([]byte("OK"))
	}
}
