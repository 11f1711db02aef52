package match

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/courtside/courtside/internal/scoring"
)

// ErrMatchNotFound is returned when a match ID does not exist.
var ErrMatchNotFound = errors.New("match not found")

// ErrTournamentNotFound is returned when a tournament ID does not exist.
var ErrTournamentNotFound = errors.New("tournament not found")

// store handles database operations for matches, the score log, standings
// and tournaments.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new match store.
func New(db *sql.DB) MatchStore {
	return &store{db: db}
}

var _ MatchStore = (*store)(nil)

// CreateMatch initializes scoring state and persists the match. A second
// create for the same ID is rejected with scoring.ErrAlreadyInitialized:
// initialization happens exactly once, re-initializing would destroy a live
// score.
func (s *store) CreateMatch(params CreateMatchParams) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, err := scoring.NewMatch(params.Mode, params.FirstServer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scoring: %w", err)
	}

	id := params.ID
	if id == "" {
		id = uuid.New().String()
	}

	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM matches WHERE id = ?`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check for existing match: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("%w: %s", scoring.ErrAlreadyInitialized, id)
	}

	now := time.Now().UTC()
	m := &Match{
		ID:               id,
		Player1:          params.Player1,
		Player2:          params.Player2,
		TournamentID:     params.TournamentID,
		Round:            params.Round,
		Slot:             params.Slot,
		ProcessingStatus: StatusLive,
		Scoring:          *engine,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	blob, err := json.Marshal(&m.Scoring)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scoring state: %w", err)
	}

	query := `
		INSERT INTO matches (
			id, player1, player2, tournament_id, round, slot,
			processing_status, state_json, version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		m.ID, m.Player1, m.Player2, m.TournamentID, m.Round, m.Slot,
		string(m.ProcessingStatus), blob, m.Version(), m.CreatedAt.Unix(), m.UpdatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	log.Info("Created match", "id", m.ID, "player1", m.Player1, "player2", m.Player2)
	return m, nil
}

// GetMatch retrieves a match by ID.
func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scanMatch(s.db.QueryRow(selectMatch+` WHERE id = ?`, matchID), matchID)
}

// GetAllMatches returns every match, newest first.
func (s *store) GetAllMatches() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(selectMatch + ` ORDER BY created_at DESC, id`)
}

// GetMatchesForProcessing returns matches whose lifecycle is not finished.
func (s *store) GetMatchesForProcessing() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(selectMatch+` WHERE processing_status NOT IN (?, ?) ORDER BY created_at, id`,
		string(StatusLive), string(StatusDone))
}

// ApplyPoint scores one point through the engine and persists the result
// atomically: the state update, the version bump and the score log row
// commit together or not at all. The persisted row is guarded a second time
// by the version predicate of the UPDATE, so a concurrent writer that
// slipped past the in-process lock still loses cleanly.
func (s *store) ApplyPoint(matchID string, winner scoring.Side, expectedVersion int64) (*Match, scoring.PointResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, scoring.PointResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m, err := scanMatch(tx.QueryRow(selectMatch+` WHERE id = ?`, matchID), matchID)
	if err != nil {
		return nil, scoring.PointResult{}, err
	}

	res, err := m.Scoring.ApplyPoint(winner, expectedVersion)
	if err != nil {
		return nil, scoring.PointResult{}, err
	}
	if res.JustCompleted {
		m.ProcessingStatus = StatusCompleted
	}

	if err := s.persistScoring(tx, m, expectedVersion); err != nil {
		return nil, scoring.PointResult{}, err
	}
	if err := appendLog(tx, m.ID, LogEntry{
		Seq:       res.Record.Seq,
		EntryType: LogEntryPoint,
		Winner:    winner,
		Scoreline: res.Record.Scoreline,
		Tiebreak:  res.Record.Tiebreak,
	}); err != nil {
		return nil, scoring.PointResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return nil, scoring.PointResult{}, fmt.Errorf("failed to commit point: %w", err)
	}

	log.Info("Point scored", "matchID", m.ID, "winner", winner, "score", res.Record.Scoreline, "version", m.Version())
	if res.JustCompleted {
		log.Info("Match complete", "matchID", m.ID, "winner", m.PlayerName(m.Scoring.State.Winner), "score", res.Record.Scoreline)
	}
	return m, res, nil
}

// UndoPoint walks the scoring state one point back. The score log keeps the
// full trail: the undone point stays and an UNDO row is appended. Undoing
// the match-ending point reopens the lifecycle.
func (s *store) UndoPoint(matchID string, expectedVersion int64) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m, err := scanMatch(tx.QueryRow(selectMatch+` WHERE id = ?`, matchID), matchID)
	if err != nil {
		return nil, err
	}

	if err := m.Scoring.Undo(expectedVersion); err != nil {
		return nil, err
	}
	if m.ProcessingStatus != StatusLive && !m.Scoring.State.Complete {
		m.ProcessingStatus = StatusLive
	}

	if err := s.persistScoring(tx, m, expectedVersion); err != nil {
		return nil, err
	}
	if err := appendLog(tx, m.ID, LogEntry{
		Seq:       m.Version(),
		EntryType: LogEntryUndo,
		Scoreline: m.Scoring.Scoreline(),
		Tiebreak:  m.Scoring.State.IsTiebreak,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit undo: %w", err)
	}

	log.Info("Point undone", "matchID", m.ID, "score", m.Scoring.Scoreline(), "version", m.Version())
	return m, nil
}

// persistScoring writes the mutated scoring state back, predicated on the
// version the caller scored against.
func (s *store) persistScoring(tx *sql.Tx, m *Match, expectedVersion int64) error {
	blob, err := json.Marshal(&m.Scoring)
	if err != nil {
		return fmt.Errorf("failed to marshal scoring state: %w", err)
	}
	m.UpdatedAt = time.Now().UTC()

	result, err := tx.Exec(`
		UPDATE matches
		SET state_json = ?, version = ?, processing_status = ?, updated_at = ?
		WHERE id = ? AND version = ?
	`, blob, m.Version(), string(m.ProcessingStatus), m.UpdatedAt.Unix(), m.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to persist scoring state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: match %s moved past version %d", scoring.ErrVersionConflict, m.ID, expectedVersion)
	}
	return nil
}

func appendLog(tx *sql.Tx, matchID string, e LogEntry) error {
	_, err := tx.Exec(`
		INSERT INTO score_log (match_id, seq, entry_type, winner, scoreline, tiebreak, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, matchID, e.Seq, string(e.EntryType), int(e.Winner), e.Scoreline, e.Tiebreak, time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to append score log: %w", err)
	}
	return nil
}

// GetScoreLog returns the full append-only log for a match, oldest first.
func (s *store) GetScoreLog(matchID string) ([]LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, match_id, seq, entry_type, winner, scoreline, tiebreak, created_at
		FROM score_log
		WHERE match_id = ?
		ORDER BY id
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query score log: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		var entryType string
		var winner int
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Seq, &entryType, &winner, &e.Scoreline, &e.Tiebreak, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan score log entry: %w", err)
		}
		e.EntryType = LogEntryType(entryType)
		e.Winner = scoring.Side(winner)
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateProcessingStatus advances the lifecycle status.
func (s *store) UpdateProcessingStatus(matchID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`UPDATE matches SET processing_status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Unix(), matchID)
	if err != nil {
		return fmt.Errorf("failed to update processing status: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	log.Debug("Updated processing status", "matchID", matchID, "status", status)
	return nil
}

// SetMatchPlayer seats a player into a bracket placeholder match.
func (s *store) SetMatchPlayer(matchID string, side scoring.Side, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !side.Valid() {
		return fmt.Errorf("%w: %d", scoring.ErrInvalidSide, side)
	}
	column := "player1"
	if side == scoring.Side2 {
		column = "player2"
	}
	result, err := s.db.Exec(`UPDATE matches SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC().Unix(), matchID)
	if err != nil {
		return fmt.Errorf("failed to set match player: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	log.Debug("Seated player", "matchID", matchID, "side", side, "player", name)
	return nil
}

// UpdateStandings folds a completed match into both players' standings.
func (s *store) UpdateStandings(m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &m.Scoring.State
	if !st.Complete {
		return fmt.Errorf("match %s is not complete", m.ID)
	}
	sets := st.SetsWon()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO standings (player, matches_played, matches_won, sets_won, sets_lost)
		VALUES (?, 1, ?, ?, ?)
		ON CONFLICT(player) DO UPDATE SET
			matches_played = matches_played + 1,
			matches_won = matches_won + excluded.matches_won,
			sets_won = sets_won + excluded.sets_won,
			sets_lost = sets_lost + excluded.sets_lost
	`
	won := func(side scoring.Side) int {
		if st.Winner == side {
			return 1
		}
		return 0
	}
	if _, err := tx.Exec(upsert, m.Player1, won(scoring.Side1), sets[0], sets[1]); err != nil {
		return fmt.Errorf("failed to update standings for %s: %w", m.Player1, err)
	}
	if _, err := tx.Exec(upsert, m.Player2, won(scoring.Side2), sets[1], sets[0]); err != nil {
		return fmt.Errorf("failed to update standings for %s: %w", m.Player2, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit standings: %w", err)
	}

	log.Info("Updated standings", "matchID", m.ID, "winner", m.PlayerName(st.Winner))
	return nil
}

// GetStandings returns the table ordered by wins, then set difference.
func (s *store) GetStandings() ([]PlayerStanding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player, matches_played, matches_won, sets_won, sets_lost
		FROM standings
		ORDER BY matches_won DESC, (sets_won - sets_lost) DESC, player
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	var standings []PlayerStanding
	for rows.Next() {
		var st PlayerStanding
		if err := rows.Scan(&st.Player, &st.MatchesPlayed, &st.MatchesWon, &st.SetsWon, &st.SetsLost); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		standings = append(standings, st)
	}
	return standings, rows.Err()
}

// CreateTournament persists a new bracket record.
func (s *store) CreateTournament(t *Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO tournaments (id, name, size, complete, winner, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Size, t.Complete, t.Winner, t.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	log.Info("Created tournament", "id", t.ID, "name", t.Name, "size", t.Size)
	return nil
}

// GetTournament retrieves a tournament by ID.
func (s *store) GetTournament(tournamentID string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t Tournament
	var createdAt int64
	err := s.db.QueryRow(`
		SELECT id, name, size, complete, winner, created_at
		FROM tournaments
		WHERE id = ?
	`, tournamentID).Scan(&t.ID, &t.Name, &t.Size, &t.Complete, &t.Winner, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, tournamentID)
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &t, nil
}

// GetTournamentMatches returns a bracket's matches ordered by round and slot.
func (s *store) GetTournamentMatches(tournamentID string) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryMatches(selectMatch+` WHERE tournament_id = ? ORDER BY round, slot`, tournamentID)
}

// SetTournamentWinner marks a bracket complete.
func (s *store) SetTournamentWinner(tournamentID, winner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE tournaments SET complete = 1, winner = ? WHERE id = ?`, winner, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to set tournament winner: %w", err)
	}
	log.Info("Tournament complete", "tournamentID", tournamentID, "winner", winner)
	return nil
}

// Clear wipes all tables. Test and development helper.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"score_log", "matches", "standings", "tournaments"} {
		if _, err := s.db.Exec(`DELETE FROM ` + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

// ClearMatch removes a single match and its score log.
func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM score_log WHERE match_id = ?`, matchID); err != nil {
		log.Error("Failed to clear score log", "matchID", matchID, "error", err)
	}
	if _, err := s.db.Exec(`DELETE FROM matches WHERE id = ?`, matchID); err != nil {
		log.Error("Failed to clear match", "matchID", matchID, "error", err)
	}
}

const selectMatch = `
	SELECT id, player1, player2, tournament_id, round, slot,
		   processing_status, state_json, created_at, updated_at
	FROM matches`

// rowScanner covers *sql.Row.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner, matchID string) (*Match, error) {
	var m Match
	var status string
	var blob []byte
	var createdAt, updatedAt int64

	err := row.Scan(
		&m.ID, &m.Player1, &m.Player2, &m.TournamentID, &m.Round, &m.Slot,
		&status, &blob, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}

	m.ProcessingStatus = ProcessingStatus(status)
	m.CreatedAt = time.Unix(createdAt, 0).UTC()
	m.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	if err := json.Unmarshal(blob, &m.Scoring); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scoring state for %s: %w", m.ID, err)
	}
	return &m, nil
}

func (s *store) queryMatches(query string, args ...any) ([]*Match, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := scanMatch(rows, "")
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
