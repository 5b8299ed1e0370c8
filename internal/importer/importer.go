// Package importer decodes game-event export files into the engine's model.
//
// One JSON document describes one recording team's stream for one game, with
// events in the feed's compact key form:
//
//	{
//	  "game_id": "2025-06-21-SLC-DAL",
//	  "team_id": "shred",
//	  "opponent_id": "legion",
//	  "season": "2025",
//	  "start_date": "2025-06-21",
//	  "events": [
//	    {"t": 2},
//	    {"t": 18, "x": 20.0, "y": 35.5, "rx": 24.1, "ry": 61.0, "th": "p1", "re": "p2"},
//	    {"t": 19, "x": 24.1, "y": 95.0, "th": "p2", "re": "p3"}
//	  ]
//	}
//
// sequence_index is assigned from array order. Missing optional keys decode
// to absent fields, never to zero positions.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ultistats/go-ufa-metrics/internal/model"
)

// GameFile is the decoded form of one export document.
type GameFile struct {
	Summary model.GameSummary
	Events  []model.Event
}

type gameDoc struct {
	GameID     string     `json:"game_id"`
	TeamID     string     `json:"team_id"`
	OpponentID string     `json:"opponent_id"`
	Season     string     `json:"season"`
	StartDate  string     `json:"start_date"`
	Events     []eventDoc `json:"events"`
}

type eventDoc struct {
	Type       int      `json:"t"`
	ThrowerX   *float64 `json:"x"`
	ThrowerY   *float64 `json:"y"`
	ReceiverX  *float64 `json:"rx"`
	ReceiverY  *float64 `json:"ry"`
	TurnoverX  *float64 `json:"tx"`
	TurnoverY  *float64 `json:"ty"`
	ThrowerID  string   `json:"th"`
	ReceiverID string   `json:"re"`
	DefenderID string   `json:"de"`
	ClockSec   *int     `json:"s"`
}

// ReadFile decodes one export file.
func ReadFile(path string) (*GameFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses one export document.
func Decode(data []byte) (*GameFile, error) {
	var doc gameDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode game document: %w", err)
	}
	if doc.GameID == "" || doc.TeamID == "" {
		return nil, fmt.Errorf("game document missing game_id or team_id")
	}

	gf := &GameFile{
		Summary: model.GameSummary{
			GameID:     doc.GameID,
			TeamID:     doc.TeamID,
			OpponentID: doc.OpponentID,
			Season:     doc.Season,
			StartDate:  doc.StartDate,
		},
		Events: make([]model.Event, 0, len(doc.Events)),
	}
	for i, ed := range doc.Events {
		gf.Events = append(gf.Events, model.Event{
			SequenceIndex:    i,
			Kind:             model.EventKind(ed.Type),
			ThrowerID:        ed.ThrowerID,
			ReceiverID:       ed.ReceiverID,
			DefenderID:       ed.DefenderID,
			ThrowerX:         ed.ThrowerX,
			ThrowerY:         ed.ThrowerY,
			ReceiverX:        ed.ReceiverX,
			ReceiverY:        ed.ReceiverY,
			TurnoverX:        ed.TurnoverX,
			TurnoverY:        ed.TurnoverY,
			GameClockSeconds: ed.ClockSec,
		})
	}
	return gf, nil
}
