package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/courtside/courtside/internal/scoring"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

// completedState plays a straight-sets match through the engine and returns
// the serialized final state plus its version.
func completedState() (string, int64) {
	mode := scoring.DefaultMode()
	mode.UseAdvantage = false

	m, err := scoring.NewMatch(mode, scoring.Side1)
	if err != nil {
		log.Fatalf("Failed to initialize scoring engine: %s", err)
	}
	for !m.State.Complete {
		if _, err := m.ApplyPoint(scoring.Side1, m.State.Version); err != nil {
			log.Fatalf("Failed to play out dummy match: %s", err)
		}
	}

	blob, err := json.Marshal(m)
	if err != nil {
		log.Fatalf("Failed to marshal scoring state: %s", err)
	}
	return string(blob), m.State.Version
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	dummyPlayers := []string{
		"Seeder Player A",
		"Seeder Player B",
		"Seeder Player C",
		"Seeder Player D",
	}

	stateBlob, version := completedState()

	const batchSize = 100 // Insert 100 matches at a time
	const numMatches = 10000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*11) // 11 columns per match

	for i := 0; i < numMatches; i++ {
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		winner := dummyPlayers[rand.Intn(len(dummyPlayers))]
		loser := dummyPlayers[rand.Intn(len(dummyPlayers))]
		for loser == winner {
			loser = dummyPlayers[rand.Intn(len(dummyPlayers))]
		}

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			winner,
			loser,
			"", // tournament_id
			0,  // round
			0,  // slot
			"DONE",
			stateBlob,
			version,
			matchTime.Unix(),
			matchTime.Add(90*time.Minute).Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			stmt := fmt.Sprintf(`
				INSERT INTO matches (id, player1, player2, tournament_id, round, slot,
					processing_status, state_json, version, created_at, updated_at)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*11)
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
}
