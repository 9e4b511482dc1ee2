package store

import (
	"context"
	errs "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DaanHessen/castaway/internal/engine"
)

func samplePlayer() engine.Player {
	return engine.Player{Name: "Wilson", Hunger: 60, Thirst: 45, Energy: 80, DaysSurvived: 7}
}

func assertRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	want := NewRecord(samplePlayer(), 25)
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
	if p := got.Restore(); p != samplePlayer() {
		t.Fatalf("restored player %+v", p)
	}
	// a second save overwrites the first
	next := NewRecord(engine.Player{Name: "Wilson", Hunger: 10, Thirst: 20, Energy: 30, DaysSurvived: 8}, 25)
	if err := s.Save(ctx, next); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if got, _ := s.Load(ctx); got != next {
		t.Fatalf("overwrite mismatch: got %+v", got)
	}
	if err := s.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx); !errs.Is(err, ErrNoSave) {
		t.Fatalf("expected ErrNoSave after delete, got %v", err)
	}
	if err := s.Delete(ctx); err != nil {
		t.Fatalf("second delete should succeed, got %v", err)
	}
}

func TestFileStoreJSONRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nested", "save.json"), FormatJSON)
	assertRoundTrip(t, s)
}

func TestFileStoreYAMLRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "save.yaml"), FormatYAML)
	assertRoundTrip(t, s)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "castaway.db"), "")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	assertRoundTrip(t, s)
}

func TestPostgresStoreRoundTrip(t *testing.T) {
	dsn := os.Getenv("CASTAWAY_TEST_DSN")
	if dsn == "" {
		t.Skip("CASTAWAY_TEST_DSN not set")
	}
	ctx := context.Background()
	m, err := NewMigrator(dsn)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Up(ctx); err != nil && !errs.Is(err, ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}
	s, err := OpenPostgres(ctx, dsn, "test-"+t.Name())
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer s.Close()
	assertRoundTrip(t, s)
}

func TestJSONFileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	s := NewFileStore(path, FormatJSON)
	if err := s.Save(context.Background(), NewRecord(samplePlayer(), 30)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "day": 7,
  "total_days": 30,
  "player": {
    "name": "Wilson",
    "hunger": 60,
    "thirst": 45,
    "energy": 80,
    "days_survived": 7
  }
}`
	if string(data) != want {
		t.Fatalf("unexpected save layout:\n%s", data)
	}
}

func TestLoadUnusableFiles(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"whitespace": "  \n\t",
		"corrupt":    `{"day": 3, "player": {`,
		"not object": `[1, 2, 3]`,
		"null":       `null`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "save.json")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := NewFileStore(path, FormatJSON).Load(context.Background())
			if !errs.Is(err, ErrNoSave) {
				t.Fatalf("expected ErrNoSave, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "absent.json"), FormatJSON)
	if _, err := s.Load(context.Background()); err != ErrNoSave {
		t.Fatalf("expected bare ErrNoSave, got %v", err)
	}
}

func TestLoadDefaultsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	body := `{"total_days": 12, "player": {"name": "Ada", "thirst": 40, "energy": "lots"}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	rec, err := NewFileStore(path, FormatJSON).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.TotalDays != 12 || rec.Day != 0 {
		t.Fatalf("unexpected header fields %+v", rec)
	}
	want := PlayerRecord{Name: "Ada", Hunger: 100, Thirst: 40, Energy: 100, DaysSurvived: 0}
	if rec.Player != want {
		t.Fatalf("got %+v want %+v", rec.Player, want)
	}
}

func TestLoadWithoutPlayerUsesFreshPlayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.yaml")
	if err := os.WriteFile(path, []byte("day: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec, err := NewFileStore(path, FormatYAML).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Player.Name != engine.DefaultName || rec.Player.Hunger != 100 {
		t.Fatalf("expected fresh player, got %+v", rec.Player)
	}
}

func TestRestoreClampsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	body := `{"day": 2, "total_days": 20, "player": {"name": "Max", "hunger": 150, "thirst": -30, "energy": 50.0, "days_survived": -4}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	rec, err := NewFileStore(path, FormatJSON).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := rec.Restore()
	if p.Hunger != 100 || p.Thirst != 0 || p.Energy != 50 || p.DaysSurvived != 0 {
		t.Fatalf("restore did not clamp: %+v", p)
	}
}

func TestIntFieldRejectsFractions(t *testing.T) {
	m := map[string]any{"a": 3.5, "b": 4.0, "c": "7"}
	if got := intField(m, "a", -1); got != -1 {
		t.Fatalf("fraction accepted: %d", got)
	}
	if got := intField(m, "b", -1); got != 4 {
		t.Fatalf("integral float rejected: %d", got)
	}
	if got := intField(m, "c", -1); got != -1 {
		t.Fatalf("string accepted: %d", got)
	}
}

func TestOpenDispatch(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cases := []struct {
		location string
		check    func(Store) bool
	}{
		{filepath.Join(dir, "save.json"), func(s Store) bool { f, ok := s.(*FileStore); return ok && f.format == FormatJSON }},
		{filepath.Join(dir, "save.YML"), func(s Store) bool { f, ok := s.(*FileStore); return ok && f.format == FormatYAML }},
		{filepath.Join(dir, "save"), func(s Store) bool { f, ok := s.(*FileStore); return ok && f.format == FormatJSON }},
		{"sqlite:" + filepath.Join(dir, "db", "save.db"), func(s Store) bool { _, ok := s.(*SQLiteStore); return ok }},
	}
	for _, tc := range cases {
		s, err := Open(ctx, tc.location)
		if err != nil {
			t.Fatalf("open %s: %v", tc.location, err)
		}
		if !tc.check(s) {
			t.Fatalf("wrong backend %T for %s", s, tc.location)
		}
		s.Close()
	}
	if _, err := Open(ctx, "  "); err == nil {
		t.Fatal("expected error for empty location")
	}
	if !IsPostgres("postgresql://u@h/db") || IsPostgres("save.json") {
		t.Fatal("IsPostgres misclassified")
	}
}
