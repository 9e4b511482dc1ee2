package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS saves (
	slot          TEXT PRIMARY KEY,
	id            TEXT NOT NULL,
	day           INTEGER,
	total_days    INTEGER,
	name          TEXT,
	hunger        INTEGER,
	thirst        INTEGER,
	energy        INTEGER,
	days_survived INTEGER,
	updated_at    DATETIME NOT NULL
);`

type sqliteRow struct {
	Day          sql.NullInt64  `db:"day"`
	TotalDays    sql.NullInt64  `db:"total_days"`
	Name         sql.NullString `db:"name"`
	Hunger       sql.NullInt64  `db:"hunger"`
	Thirst       sql.NullInt64  `db:"thirst"`
	Energy       sql.NullInt64  `db:"energy"`
	DaysSurvived sql.NullInt64  `db:"days_survived"`
}

// SQLiteStore keeps the save as one row of a local SQLite database.
type SQLiteStore struct {
	conn *sqlx.DB
	slot string
}

// OpenSQLite creates the database file and schema if needed.
func OpenSQLite(ctx context.Context, path, slot string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("missing sqlite path")
	}
	if slot == "" {
		slot = DefaultSlot
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create database directory")
	}
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "ping sqlite database")
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	return &SQLiteStore{conn: conn, slot: slot}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, rec SaveRecord) error {
	_, err := s.conn.NamedExecContext(ctx, `INSERT INTO saves(slot, id, day, total_days, name, hunger, thirst, energy, days_survived, updated_at)
	VALUES (:slot, :id, :day, :total_days, :name, :hunger, :thirst, :energy, :days_survived, :updated_at)
	ON CONFLICT (slot) DO UPDATE SET id=excluded.id, day=excluded.day, total_days=excluded.total_days, name=excluded.name,
		hunger=excluded.hunger, thirst=excluded.thirst, energy=excluded.energy, days_survived=excluded.days_survived, updated_at=excluded.updated_at`,
		map[string]any{
			"slot":          s.slot,
			"id":            uuid.New().String(),
			"day":           rec.Day,
			"total_days":    rec.TotalDays,
			"name":          rec.Player.Name,
			"hunger":        rec.Player.Hunger,
			"thirst":        rec.Player.Thirst,
			"energy":        rec.Player.Energy,
			"days_survived": rec.Player.DaysSurvived,
			"updated_at":    time.Now().UTC(),
		})
	return errors.Wrap(err, "save game")
}

func (s *SQLiteStore) Load(ctx context.Context) (SaveRecord, error) {
	var row sqliteRow
	err := s.conn.GetContext(ctx, &row, `SELECT day, total_days, name, hunger, thirst, energy, days_survived FROM saves WHERE slot = ?`, s.slot)
	if err != nil {
		if errs.Is(err, sql.ErrNoRows) {
			return SaveRecord{}, ErrNoSave
		}
		return SaveRecord{}, fmt.Errorf("%w: %v", ErrNoSave, err)
	}
	rec := freshRecord()
	rec.Day = nullInt(row.Day, rec.Day)
	rec.TotalDays = nullInt(row.TotalDays, rec.TotalDays)
	if row.Name.Valid && row.Name.String != "" {
		rec.Player.Name = row.Name.String
	}
	rec.Player.Hunger = nullInt(row.Hunger, rec.Player.Hunger)
	rec.Player.Thirst = nullInt(row.Thirst, rec.Player.Thirst)
	rec.Player.Energy = nullInt(row.Energy, rec.Player.Energy)
	rec.Player.DaysSurvived = nullInt(row.DaysSurvived, rec.Player.DaysSurvived)
	return rec, nil
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, s.slot)
	return errors.Wrap(err, "delete save")
}

func (s *SQLiteStore) Close() error { return s.conn.Close() }

func nullInt(v sql.NullInt64, def int) int {
	if !v.Valid {
		return def
	}
	return int(v.Int64)
}
