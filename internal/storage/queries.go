package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ultistats/go-ufa-metrics/internal/batch"
	"github.com/ultistats/go-ufa-metrics/internal/model"
)

// GameExists returns true if a (game, team) stream is already stored.
func (db *DB) GameExists(gameID, teamID string) (bool, error) {
	var count int
	err := db.conn.QueryRow(
		"SELECT COUNT(1) FROM games WHERE game_id = ? AND team_id = ?",
		gameID, teamID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertGame inserts a game record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertGame(g model.GameSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO games(game_id, team_id, opponent_id, season, start_date)
		VALUES (?, ?, ?, ?, ?)`,
		g.GameID, g.TeamID, g.OpponentID, g.Season, g.StartDate,
	)
	return err
}

// InsertGameEvents bulk-inserts one stream's events in a transaction.
func (db *DB) InsertGameEvents(gameID, teamID string, events []model.Event) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO game_events(
			game_id, team_id, sequence_index, event_kind,
			thrower_id, receiver_id, defender_id,
			thrower_x, thrower_y, receiver_x, receiver_y, turnover_x, turnover_y,
			game_clock_s
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err = stmt.Exec(
			gameID, teamID, ev.SequenceIndex, int(ev.Kind),
			nullStr(ev.ThrowerID), nullStr(ev.ReceiverID), nullStr(ev.DefenderID),
			nullFloat(ev.ThrowerX), nullFloat(ev.ThrowerY),
			nullFloat(ev.ReceiverX), nullFloat(ev.ReceiverY),
			nullFloat(ev.TurnoverX), nullFloat(ev.TurnoverY),
			nullInt(ev.GameClockSeconds),
		)
		if err != nil {
			return fmt.Errorf("insert event %d for %s/%s: %w", ev.SequenceIndex, teamID, gameID, err)
		}
	}
	return tx.Commit()
}

// ListGames returns all stored games ordered by start_date desc.
func (db *DB) ListGames() ([]model.GameSummary, error) {
	rows, err := db.conn.Query(`
		SELECT game_id, team_id, opponent_id, season, start_date
		FROM games ORDER BY start_date DESC, game_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.GameSummary
	for rows.Next() {
		var g model.GameSummary
		if err := rows.Scan(&g.GameID, &g.TeamID, &g.OpponentID, &g.Season, &g.StartDate); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// FetchGameEvents returns one stream's events ordered by sequence_index.
func (db *DB) FetchGameEvents(teamID, gameID string) ([]model.Event, error) {
	rows, err := db.conn.Query(eventColumns+`
		FROM game_events e
		WHERE e.team_id = ? AND e.game_id = ?
		ORDER BY e.sequence_index`, teamID, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		ev, _, _, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// FetchEvents returns every stored event for the given teams in one query,
// grouped by (team, game) and ordered by sequence_index within each stream.
// season == "" means all seasons. Implements batch.EventSource.
func (db *DB) FetchEvents(ctx context.Context, teams []string, season string) (map[batch.GameKey][]model.Event, error) {
	if len(teams) == 0 {
		return map[batch.GameKey][]model.Event{}, nil
	}

	placeholders := strings.Repeat("?,", len(teams))
	placeholders = placeholders[:len(placeholders)-1]

	query := eventColumns + `
		FROM game_events e
		JOIN games g ON g.game_id = e.game_id AND g.team_id = e.team_id
		WHERE e.team_id IN (` + placeholders + `)`
	args := make([]any, 0, len(teams)+1)
	for _, t := range teams {
		args = append(args, t)
	}
	if season != "" {
		query += " AND g.season = ?"
		args = append(args, season)
	}
	query += " ORDER BY e.team_id, e.game_id, e.sequence_index"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[batch.GameKey][]model.Event)
	for rows.Next() {
		ev, teamID, gameID, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		key := batch.GameKey{TeamID: teamID, GameID: gameID}
		out[key] = append(out[key], ev)
	}
	return out, rows.Err()
}

// DeleteGame removes one (game, team) stream and its events.
func (db *DB) DeleteGame(gameID, teamID string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM game_events WHERE game_id = ? AND team_id = ?", gameID, teamID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM games WHERE game_id = ? AND team_id = ?", gameID, teamID); err != nil {
		return err
	}
	return tx.Commit()
}

const eventColumns = `
		SELECT e.game_id, e.team_id, e.sequence_index, e.event_kind,
		       e.thrower_id, e.receiver_id, e.defender_id,
		       e.thrower_x, e.thrower_y, e.receiver_x, e.receiver_y,
		       e.turnover_x, e.turnover_y, e.game_clock_s`

func scanEvent(rows *sql.Rows) (model.Event, string, string, error) {
	var (
		ev               model.Event
		gameID, teamID   string
		kind             int
		thr, rec, def    sql.NullString
		tx, ty, rx, ry   sql.NullFloat64
		tox, toy         sql.NullFloat64
		clock            sql.NullInt64
	)
	err := rows.Scan(&gameID, &teamID, &ev.SequenceIndex, &kind,
		&thr, &rec, &def, &tx, &ty, &rx, &ry, &tox, &toy, &clock)
	if err != nil {
		return model.Event{}, "", "", err
	}
	ev.Kind = model.EventKind(kind)
	ev.ThrowerID = thr.String
	ev.ReceiverID = rec.String
	ev.DefenderID = def.String
	ev.ThrowerX = floatPtr(tx)
	ev.ThrowerY = floatPtr(ty)
	ev.ReceiverX = floatPtr(rx)
	ev.ReceiverY = floatPtr(ry)
	ev.TurnoverX = floatPtr(tox)
	ev.TurnoverY = floatPtr(toy)
	if clock.Valid {
		v := int(clock.Int64)
		ev.GameClockSeconds = &v
	}
	return ev, teamID, gameID, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}
