package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	createID          string
	createPlayer1     string
	createPlayer2     string
	createFirstServer int
	tournamentName    string
	tournamentPlayers []string
)

func init() {
	createCmd.Flags().StringVar(&createID, "id", "", "Match ID (generated when empty)")
	createCmd.Flags().StringVar(&createPlayer1, "player1", "", "Name of the first player")
	createCmd.Flags().StringVar(&createPlayer2, "player2", "", "Name of the second player")
	createCmd.Flags().IntVar(&createFirstServer, "first-server", 1, "Side serving the opening game (1 or 2)")

	tournamentCmd.Flags().StringVar(&tournamentName, "name", "", "Tournament name")
	tournamentCmd.Flags().StringSliceVar(&tournamentPlayers, "players", nil, "Comma-separated list of entrants")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(pointCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(tournamentCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(clearCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new match",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]any{
			"id":           createID,
			"player1":      createPlayer1,
			"player2":      createPlayer2,
			"first_server": createFirstServer,
		}
		return performPostRequest("/matches/create", params)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List all matches in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score <matchID>",
	Short: "Show the scoreboard of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/get?matchID=" + url.QueryEscape(args[0]))
	},
}

var pointCmd = &cobra.Command{
	Use:   "point <matchID> <winner> <expectedVersion>",
	Short: "Score a point for side 1 or 2",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("matchID", args[0])
		query.Set("winner", args[1])
		query.Set("expected_version", args[2])
		return performPostRequest("/matches/point?"+query.Encode(), nil)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo <matchID> <expectedVersion>",
	Short: "Revert the last point of a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("matchID", args[0])
		query.Set("expected_version", args[1])
		return performPostRequest("/matches/undo?"+query.Encode(), nil)
	},
}

var logCmd = &cobra.Command{
	Use:   "log <matchID>",
	Short: "Show the append-only score log of a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/log?matchID=" + url.QueryEscape(args[0]))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <matchID>",
	Short: "Export the score log of a match as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/export?matchID=" + url.QueryEscape(args[0]))
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the player standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings")
	},
}

var tournamentCmd = &cobra.Command{
	Use:   "tournament [tournamentID]",
	Short: "Create a bracket, or show one when an ID is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/tournaments/get?tournamentID=" + url.QueryEscape(args[0]))
		}
		params := map[string]any{
			"name":    tournamentName,
			"players": tournamentPlayers,
		}
		return performPostRequest("/tournaments/create", params)
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the post-match processing pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/process")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear [matchID]",
	Short: "Clear the store, or a single match when an ID is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/clear?matchID=" + url.QueryEscape(args[0]))
		}
		return performGetRequest("/clear")
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

func performPostRequest(endpoint string, params any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	var body io.Reader
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	resp, err := http.Post(url, "application/json", body)
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
