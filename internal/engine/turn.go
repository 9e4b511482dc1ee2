package engine

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinDayTarget = 10
	MaxDayTarget = 50
)

var (
	ErrSessionOver      = errors.New("session is over")
	ErrInvalidDayTarget = errors.New("day target must be between 10 and 50")
)

// MaintenanceDecay is the passive cost of surviving one more turn. It is applied on
// every resolved turn, sleep included.
var MaintenanceDecay = Delta{Hunger: -5, Thirst: -5, Energy: -3}

// ValidateDayTarget checks a session goal against the 10-50 bounds.
func ValidateDayTarget(n int) error {
	if n < MinDayTarget || n > MaxDayTarget {
		return ErrInvalidDayTarget
	}
	return nil
}

// Engine holds the rule tables shared by sessions.
type Engine struct {
	actions ActionTable
	events  EventTable
	decay   Delta
}

// Option configures an Engine.
type Option func(*Engine)

func WithActions(t ActionTable) Option { return func(e *Engine) { e.actions = t } }
func WithEvents(t EventTable) Option   { return func(e *Engine) { e.events = t } }
func WithDecay(d Delta) Option         { return func(e *Engine) { e.decay = d } }

// NewEngine returns an engine with the default island rules unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{actions: DefaultActions(), events: DefaultEvents(), decay: MaintenanceDecay}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Actions exposes the engine's action table.
func (e *Engine) Actions() ActionTable { return e.actions }

// Session is one game: it owns the player and the random stream for its whole life.
type Session struct {
	Player    Player
	DayTarget int
	Status    Status
	Cause     []Gauge

	engine *Engine
	rand   Rand
}

// NewSession starts an ongoing session. The day target is trusted here; callers
// validate it with ValidateDayTarget.
func (e *Engine) NewSession(p Player, dayTarget int, r Rand) *Session {
	return &Session{Player: p, DayTarget: dayTarget, Status: StatusOngoing, engine: e, rand: r}
}

// TurnReport describes one resolved turn.
type TurnReport struct {
	Action Outcome
	Decay  Delta
	Event  EventResult
	Player Player
	Status Status
	Cause  []Gauge
}

// Turn resolves one day: action, maintenance decay, one day advance, event, end check.
// A rescue ends the session before the end check runs.
func (s *Session) Turn(a Action) (TurnReport, error) {
	if s.Status.Terminal() {
		return TurnReport{}, ErrSessionOver
	}
	if !a.Validate() {
		return TurnReport{}, fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	out, err := s.engine.actions.Resolve(&s.Player, a, s.rand)
	if err != nil {
		return TurnReport{}, err
	}
	s.Player.ApplyDelta(s.engine.decay)
	// sleep's own day advance is this one; never count a turn twice
	s.Player.AdvanceDay()

	rep := TurnReport{Action: out, Decay: s.engine.decay}
	rep.Event = s.engine.events.Resolve(&s.Player, s.rand)
	if rep.Event.Rescue {
		s.Status = StatusRescued
		s.Cause = nil
	} else {
		s.Evaluate()
	}
	rep.Player = s.Player
	rep.Status = s.Status
	rep.Cause = append([]Gauge(nil), s.Cause...)
	return rep, nil
}

// Evaluate applies the end conditions to the current player: defeat when any gauge is
// depleted, victory once the day target is reached. Terminal sessions are left as they are.
func (s *Session) Evaluate() Status {
	if s.Status.Terminal() {
		return s.Status
	}
	if !s.Player.IsAlive() {
		s.Status = StatusDefeat
		s.Cause = s.Player.DepletedGauges()
		return s.Status
	}
	if s.Player.DaysSurvived >= s.DayTarget {
		s.Status = StatusVictory
		return s.Status
	}
	s.Status = StatusOngoing
	return s.Status
}

// CauseText joins depleted gauges as "hunger and energy".
func CauseText(cause []Gauge) string {
	parts := make([]string, len(cause))
	for i, g := range cause {
		parts[i] = string(g)
	}
	return strings.Join(parts, " and ")
}
