package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(roomCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(tossCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(reopenCmd)
	rootCmd.AddCommand(syncScheduleCmd)
	rootCmd.AddCommand(syncTossCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var roomCmd = &cobra.Command{
	Use:   "room",
	Short: "Show the full room view: settings, players, matches and scoreboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/room")
	},
}

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the players in the room",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/members")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List all matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the cumulative scoreboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict <matchID> <innings> <playerID> <score>",
	Short: "Submit a prediction for an innings",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		innings, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("innings must be a number: %w", err)
		}
		score, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("score must be a number: %w", err)
		}
		return performPostRequest("/predict", map[string]any{
			"match_id":  args[0],
			"innings":   innings,
			"player_id": args[2],
			"score":     score,
		})
	},
}

var tossCmd = &cobra.Command{
	Use:   "toss <matchID> <winner> <bat|field>",
	Short: "Record the toss outcome for a match",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/toss", map[string]any{
			"match_id": args[0],
			"winner":   args[1],
			"decision": args[2],
		})
	},
}

var lockCmd = &cobra.Command{
	Use:   "lock <matchID> <innings>",
	Short: "Lock an innings for predictions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		innings, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("innings must be a number: %w", err)
		}
		return performPostRequest("/lock", map[string]any{
			"match_id": args[0],
			"innings":  innings,
		})
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <matchID> <innings> <runs>",
	Short: "Finalize an innings with its actual score",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		innings, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("innings must be a number: %w", err)
		}
		runs, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("runs must be a number: %w", err)
		}
		return performPostRequest("/score", map[string]any{
			"match_id": args[0],
			"innings":  innings,
			"score":    runs,
		})
	},
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <matchID> [innings]",
	Short: "Reopen an innings, or the whole match when no innings is given",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]any{"match_id": args[0]}
		if len(args) == 2 {
			innings, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("innings must be a number: %w", err)
			}
			body["innings"] = innings
		}
		return performPostRequest("/reopen", body)
	},
}

var syncScheduleCmd = &cobra.Command{
	Use:   "sync-schedule",
	Short: "Pull the fixture list from the goalserve feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/sync/schedule", map[string]any{})
	},
}

var syncTossCmd = &cobra.Command{
	Use:   "sync-toss",
	Short: "Pull toss announcements from the goalserve live feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/sync/toss", map[string]any{})
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body map[string]any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	req, err := http.NewRequest("POST", url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if pin != "" {
		req.Header.Set("X-Admin-Pin", pin)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
