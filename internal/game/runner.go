// Package game runs sessions against a save store: setup, turns with autosave,
// save-and-quit and end-of-game cleanup.
package game

import (
	"context"
	errs "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/DaanHessen/castaway/internal/command"
	"github.com/DaanHessen/castaway/internal/engine"
	"github.com/DaanHessen/castaway/internal/store"
)

var ErrNoSession = errs.New("no session in progress")

// Runner drives one session at a time. It is not safe for concurrent use.
type Runner struct {
	engine *engine.Engine
	store  store.Store
	logger *slog.Logger
	rand   func(game int) engine.Rand

	games   int
	id      uuid.UUID
	session *engine.Session
}

type Option func(*Runner)

func WithLogger(l *slog.Logger) Option { return func(r *Runner) { r.logger = l } }
func WithEngine(e *engine.Engine) Option { return func(r *Runner) { r.engine = e } }

// WithRand replaces the seeded per-game streams.
func WithRand(fn func(game int) engine.Rand) Option { return func(r *Runner) { r.rand = fn } }

// NewRunner plays games drawn from seed, one stream per game.
func NewRunner(st store.Store, seed engine.RunSeed, opts ...Option) *Runner {
	r := &Runner{
		engine: engine.NewEngine(),
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		rand:   func(game int) engine.Rand { return seed.GameStream(game) },
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Runner) Engine() *engine.Engine { return r.engine }
func (r *Runner) Session() *engine.Session { return r.session }
func (r *Runner) SessionID() uuid.UUID { return r.id }

// Resumed describes the outcome of looking for a saved game.
type Resumed struct {
	Found  bool
	Player engine.Player
	// DayTarget is zero when the save carries no usable goal.
	DayTarget int
	Notice    string
}

// Resume loads the saved game. A missing or unreadable save is not an error:
// Found is false and Notice says why a new game starts.
func (r *Runner) Resume(ctx context.Context) (Resumed, error) {
	rec, err := r.store.Load(ctx)
	switch {
	case err == nil:
	case err == store.ErrNoSave:
		return Resumed{Notice: "No save file found. Starting a new game..."}, nil
	case errs.Is(err, store.ErrNoSave):
		r.logger.Warn("unusable save", "err", err)
		return Resumed{Notice: "Save file is empty or corrupted. Starting a new game..."}, nil
	default:
		return Resumed{}, err
	}
	p := rec.Restore()
	res := Resumed{
		Found:  true,
		Player: p,
		Notice: fmt.Sprintf("Game loaded! Welcome back, %s!\nResuming from day %d...", p.Name, p.DaysSurvived),
	}
	if engine.ValidateDayTarget(rec.TotalDays) == nil {
		res.DayTarget = rec.TotalDays
	}
	return res, nil
}

// Start begins a fresh session. An empty name becomes "Survivor".
func (r *Runner) Start(name string, target int) (*engine.Session, error) {
	return r.Restore(engine.NewPlayer(strings.TrimSpace(name)), target)
}

// Restore begins a session from an existing player. A player that is already
// finished ends the session at once.
func (r *Runner) Restore(p engine.Player, target int) (*engine.Session, error) {
	if err := engine.ValidateDayTarget(target); err != nil {
		return nil, err
	}
	r.games++
	r.id = uuid.New()
	r.session = r.engine.NewSession(p, target, r.rand(r.games))
	r.session.Evaluate()
	r.logger.Info("session started", "session", r.id, "name", p.Name, "day", p.DaysSurvived, "target", target, "status", r.session.Status)
	return r.session, nil
}

// Result is what one Play call did.
type Result struct {
	Report *engine.TurnReport
	Quit   bool
	// Saved reports a successful save after a turn or on quit.
	Saved bool
	// Deleted reports the save was removed because the game ended.
	Deleted bool
	Err     error
}

// Over is true when the session ended or the player quit.
func (res Result) Over() bool {
	return res.Quit || (res.Report != nil && res.Report.Status.Terminal())
}

// Play applies one selector. Store failures never stop the game; they are logged
// and surface in Result.Err.
func (r *Runner) Play(ctx context.Context, sel command.Selector) (Result, error) {
	if r.session == nil {
		return Result{}, ErrNoSession
	}
	s := r.session
	if sel.SaveQuit {
		res := Result{Quit: true}
		res.Err = r.save(ctx)
		res.Saved = res.Err == nil
		return res, nil
	}
	rep, err := s.Turn(sel.Action)
	if err != nil {
		return Result{}, err
	}
	r.logger.Info("turn",
		"session", r.id,
		"action", sel.Action,
		"event", rep.Event.Kind,
		"day", rep.Player.DaysSurvived,
		"hunger", rep.Player.Hunger,
		"thirst", rep.Player.Thirst,
		"energy", rep.Player.Energy,
		"status", rep.Status,
	)
	res := Result{Report: &rep}
	if rep.Status.Terminal() {
		res.Err = r.Finish(ctx)
		res.Deleted = res.Err == nil
		return res, nil
	}
	res.Err = r.save(ctx)
	res.Saved = res.Err == nil
	return res, nil
}

// Finish removes the save of a session that has ended.
func (r *Runner) Finish(ctx context.Context) error {
	if r.session != nil {
		r.logger.Info("session over", "session", r.id, "status", r.session.Status, "cause", engine.CauseText(r.session.Cause), "day", r.session.Player.DaysSurvived)
	}
	if err := r.store.Delete(ctx); err != nil {
		r.logger.Error("delete save failed", "session", r.id, "err", err)
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

func (r *Runner) save(ctx context.Context) error {
	s := r.session
	if err := r.store.Save(ctx, store.NewRecord(s.Player, s.DayTarget)); err != nil {
		r.logger.Error("save failed", "session", r.id, "err", err)
		return fmt.Errorf("save game: %w", err)
	}
	r.logger.Debug("saved", "session", r.id, "day", s.Player.DaysSurvived)
	return nil
}
