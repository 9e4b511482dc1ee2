package store

import (
	"context"
	errs "errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/DaanHessen/castaway/internal/engine"
)

var (
	// ErrNoSave covers every reason to start fresh: no save, empty save or unreadable save.
	ErrNoSave   = errs.New("no saved game")
	ErrNoChange = errs.New("no change")
)

// DefaultSlot names the single save kept by database backends.
const DefaultSlot = "default"

// Store persists one saved game.
type Store interface {
	// Save overwrites the saved game.
	Save(ctx context.Context, rec SaveRecord) error
	// Load returns ErrNoSave (possibly wrapped) when nothing usable is stored.
	Load(ctx context.Context) (SaveRecord, error)
	// Delete removes the saved game; deleting nothing succeeds.
	Delete(ctx context.Context) error
	Close() error
}

// SaveRecord is the persisted shape of a game in progress.
type SaveRecord struct {
	Day       int          `json:"day" yaml:"day"`
	TotalDays int          `json:"total_days" yaml:"total_days"`
	Player    PlayerRecord `json:"player" yaml:"player"`
}

type PlayerRecord struct {
	Name         string `json:"name" yaml:"name"`
	Hunger       int    `json:"hunger" yaml:"hunger"`
	Thirst       int    `json:"thirst" yaml:"thirst"`
	Energy       int    `json:"energy" yaml:"energy"`
	DaysSurvived int    `json:"days_survived" yaml:"days_survived"`
}

// NewRecord snapshots a player and its session goal.
func NewRecord(p engine.Player, totalDays int) SaveRecord {
	return SaveRecord{
		Day:       p.DaysSurvived,
		TotalDays: totalDays,
		Player: PlayerRecord{
			Name:         p.Name,
			Hunger:       p.Hunger,
			Thirst:       p.Thirst,
			Energy:       p.Energy,
			DaysSurvived: p.DaysSurvived,
		},
	}
}

// Restore rebuilds the player, clamping anything out of range.
func (r SaveRecord) Restore() engine.Player {
	p := r.Player
	return engine.RestorePlayer(p.Name, p.Hunger, p.Thirst, p.Energy, p.DaysSurvived)
}

// freshRecord holds the values used for absent fields.
func freshRecord() SaveRecord {
	return NewRecord(engine.NewPlayer(""), 0)
}

// recordFromDocument reads a decoded key/value document, defaulting each missing
// or mistyped field individually.
func recordFromDocument(doc map[string]any) SaveRecord {
	rec := freshRecord()
	rec.Day = intField(doc, "day", rec.Day)
	rec.TotalDays = intField(doc, "total_days", rec.TotalDays)
	player, _ := doc["player"].(map[string]any)
	rec.Player.Name = stringField(player, "name", rec.Player.Name)
	rec.Player.Hunger = intField(player, "hunger", rec.Player.Hunger)
	rec.Player.Thirst = intField(player, "thirst", rec.Player.Thirst)
	rec.Player.Energy = intField(player, "energy", rec.Player.Energy)
	rec.Player.DaysSurvived = intField(player, "days_survived", rec.Player.DaysSurvived)
	return rec
}

func intField(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		if v > math.MaxInt32 {
			return def
		}
		return int(v)
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return def
		}
		return int(v)
	default:
		return def
	}
}

func stringField(m map[string]any, key string, def string) string {
	if v, ok := m[key].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

// IsPostgres reports whether a save location is a Postgres DSN.
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// Open picks a backend from the save location:
// "postgres://..." uses Postgres, "sqlite:<path>" uses SQLite, a path ending in .yaml or
// .yml uses a YAML file and any other path a JSON file.
func Open(ctx context.Context, location string) (Store, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, fmt.Errorf("missing save location")
	case IsPostgres(location):
		pg, err := OpenPostgres(ctx, location, DefaultSlot)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case strings.HasPrefix(location, "sqlite:"):
		lite, err := OpenSQLite(ctx, strings.TrimPrefix(location, "sqlite:"), DefaultSlot)
		if err != nil {
			return nil, err
		}
		return lite, nil
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return NewFileStore(location, FormatYAML), nil
	default:
		return NewFileStore(location, FormatJSON), nil
	}
}
