package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/castaway/internal/engine"
	"github.com/DaanHessen/castaway/internal/game"
	"github.com/DaanHessen/castaway/internal/store"
)

type tableRand map[int]int

func (t tableRand) Intn(n int) int { return t[n] }

func testModel(t *testing.T, st store.Store, r engine.Rand) model {
	t.Helper()
	seed, err := engine.NewRunSeed("ui")
	if err != nil {
		t.Fatal(err)
	}
	runner := game.NewRunner(st, seed, game.WithRand(func(int) engine.Rand { return r }))
	m := newModel(context.Background(), runner, "gruvbox")
	m.mdStyle = "notty"
	return m
}

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestNewGameFlow(t *testing.T) {
	st := store.NewFileStore(filepath.Join(t.TempDir(), "save.json"), store.FormatJSON)
	m := testModel(t, st, tableRand{2: 0, 11: 8})

	m = send(t, m, keys("n"))
	if m.view != viewName {
		t.Fatalf("expected name view, got %s", m.view)
	}
	m = send(t, m, keys("Ada"), enter)
	if m.view != viewTarget || !strings.Contains(m.notice, "Welcome, Ada!") {
		t.Fatalf("expected target view after name, got %s (%q)", m.view, m.notice)
	}
	m = send(t, m, keys("7"), enter)
	if m.view != viewTarget || m.notice != "Please enter a number between 10 and 50." {
		t.Fatalf("out of range target accepted: %s %q", m.view, m.notice)
	}
	m = send(t, m, keys("abc"), enter)
	if m.notice != "Please enter a valid number." {
		t.Fatalf("unexpected notice %q", m.notice)
	}
	m = send(t, m, keys("12"), enter)
	if m.view != viewPlay {
		t.Fatalf("expected play view, got %s", m.view)
	}

	m = send(t, m, keys("1"))
	s := m.runner.Session()
	if s.Player.DaysSurvived != 1 || s.Player.Energy != 87 {
		t.Fatalf("turn not applied: %+v", s.Player)
	}
	if !strings.Contains(strings.Join(m.logText, "\n"), "You caught a fish!") {
		t.Fatalf("log missing outcome:\n%s", strings.Join(m.logText, "\n"))
	}
	if m.save != "saved" {
		t.Fatalf("expected autosave, got %q", m.save)
	}
	if view := m.View(); !strings.Contains(view, "Day 1/12") || !strings.Contains(view, "ADA") {
		t.Fatalf("play view missing header:\n%s", view)
	}

	next, cmd := m.Update(keys("q"))
	m = next.(model)
	if cmd == nil || m.view != viewBye {
		t.Fatalf("quit should end the program, view %s", m.view)
	}
	rec, err := st.Load(context.Background())
	if err != nil || rec.Player.Name != "Ada" || rec.TotalDays != 12 {
		t.Fatalf("expected save after quit, got %+v, %v", rec, err)
	}
}

func TestResumeSkipsSetup(t *testing.T) {
	ctx := context.Background()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "save.json"), store.FormatJSON)
	p := engine.Player{Name: "Ada", Hunger: 50, Thirst: 50, Energy: 50, DaysSurvived: 4}
	if err := st.Save(ctx, store.NewRecord(p, 15)); err != nil {
		t.Fatal(err)
	}
	m := send(t, testModel(t, st, tableRand{11: 8}), keys("y"))
	if m.view != viewPlay {
		t.Fatalf("expected play view, got %s", m.view)
	}
	if s := m.runner.Session(); s.Player != p || s.DayTarget != 15 {
		t.Fatalf("unexpected session %+v", s)
	}
	if !strings.Contains(m.notice, "Welcome back, Ada!") {
		t.Fatalf("unexpected notice %q", m.notice)
	}
}

func TestEnterDoesNotAct(t *testing.T) {
	st := store.NewFileStore(filepath.Join(t.TempDir(), "save.json"), store.FormatJSON)
	m := send(t, testModel(t, st, tableRand{11: 8}), keys("n"), enter, keys("10"), enter)
	m = send(t, m, enter, keys("x"))
	if m.runner.Session().Player.DaysSurvived != 0 {
		t.Fatal("non action keys should not play a turn")
	}
	if m.notice != "Press 1-5 to choose an action." {
		t.Fatalf("unexpected notice %q", m.notice)
	}
}

func TestRescueShowsEndingAndReplays(t *testing.T) {
	ctx := context.Background()
	st := store.NewFileStore(filepath.Join(t.TempDir(), "save.json"), store.FormatJSON)
	m := send(t, testModel(t, st, tableRand{11: 10}), keys("n"), enter, keys("10"), enter, keys("2"))
	if m.view != viewEnding {
		t.Fatalf("expected ending view, got %s", m.view)
	}
	if !strings.Contains(m.ending, "RESCUED! You survived 1 days and got rescued!") {
		t.Fatalf("unexpected ending:\n%s", m.ending)
	}
	if _, err := st.Load(ctx); !errors.Is(err, store.ErrNoSave) {
		t.Fatalf("save should be cleared, got %v", err)
	}
	m = send(t, m, keys("y"))
	if m.view != viewLoad || len(m.logText) != 0 {
		t.Fatalf("replay should return to the load prompt, got %s", m.view)
	}
}

func TestCtrlCSavesOngoingGame(t *testing.T) {
	st := store.NewFileStore(filepath.Join(t.TempDir(), "save.json"), store.FormatJSON)
	m := send(t, testModel(t, st, tableRand{11: 8}), keys("n"), keys("Ada"), enter, keys("20"), enter)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if rec, err := st.Load(context.Background()); err != nil || rec.TotalDays != 20 {
		t.Fatalf("expected save on ctrl+c, got %+v, %v", rec, err)
	}
}

type failingStore struct{ store.Store }

func (failingStore) Save(context.Context, store.SaveRecord) error { return errors.New("disk full") }

func TestCtrlCReportsSaveFailure(t *testing.T) {
	st := failingStore{store.NewFileStore(filepath.Join(t.TempDir(), "save.json"), store.FormatJSON)}
	m := send(t, testModel(t, st, tableRand{11: 8}), keys("n"), enter, keys("20"), enter)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.view != viewBye || !strings.Contains(m.View(), "Error saving game: ") || !strings.Contains(m.View(), "disk full") {
		t.Fatalf("save failure not shown:\n%s", m.View())
	}
}

func TestThemeCycle(t *testing.T) {
	names := ThemeNames()
	if nextThemeName(names[len(names)-1], 1) != names[0] {
		t.Fatal("theme cycle should wrap forward")
	}
	if nextThemeName(names[0], -1) != names[len(names)-1] {
		t.Fatal("theme cycle should wrap backward")
	}
	if paletteFor("missing") != palettes[defaultTheme] {
		t.Fatal("unknown theme should fall back to the default palette")
	}
}
