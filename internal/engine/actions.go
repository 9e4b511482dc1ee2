package engine

import (
	"errors"
	"fmt"
)

var ErrUnknownAction = errors.New("unknown action")

// Outcome is the resolved effect of one player action.
type Outcome struct {
	Action      Action
	Delta       Delta
	Message     string
	AdvancesDay bool
}

type actionOutcome struct {
	Delta   Delta
	Message string
}

// actionRule lists equally likely outcomes; a single outcome is deterministic and draws nothing.
type actionRule struct {
	Intro       string
	Outcomes    []actionOutcome
	AdvancesDay bool
}

// ActionTable resolves the four island actions against a player.
type ActionTable struct {
	rules map[Action]actionRule
}

// DefaultActions returns the standard island action table.
func DefaultActions() ActionTable {
	return ActionTable{rules: map[Action]actionRule{
		ActionFish: {
			Intro: "You try to fish...",
			Outcomes: []actionOutcome{
				{Delta{Hunger: 20, Energy: -10}, "You caught a fish!"},
				{Delta{Energy: -15}, "The fish got away..."},
			},
		},
		ActionSleep: {
			Intro: "You go to sleep...",
			Outcomes: []actionOutcome{
				{Delta{Hunger: -10, Thirst: -10, Energy: 50}, "You slept well!"},
			},
			AdvancesDay: true,
		},
		ActionSearchWater: {
			Intro: "You search for water...",
			Outcomes: []actionOutcome{
				{Delta{Thirst: 30, Energy: -5}, "You found fresh water!"},
				{Delta{Energy: -10}, "No water found..."},
			},
		},
		ActionExplore: {
			Intro: "You explore the island...",
			Outcomes: []actionOutcome{
				{Delta{Hunger: 15, Energy: -10}, "You found some berries!"},
				{Delta{Energy: -15}, "You found nothing useful..."},
				{Delta{Thirst: 20, Energy: -10}, "You found a water source!"},
				{Delta{Energy: -20}, "You got lost and wasted energy..."},
			},
		},
	}}
}

// Resolve applies the chosen action to p exactly once and returns what happened.
// It never evaluates end conditions and never touches the day counter.
func (t ActionTable) Resolve(p *Player, a Action, r Rand) (Outcome, error) {
	rule, ok := t.rules[a]
	if !ok || len(rule.Outcomes) == 0 {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	pick := rule.Outcomes[0]
	if len(rule.Outcomes) > 1 {
		pick = rule.Outcomes[r.Intn(len(rule.Outcomes))]
	}
	p.ApplyDelta(pick.Delta)
	return Outcome{
		Action:      a,
		Delta:       pick.Delta,
		Message:     pick.Message,
		AdvancesDay: rule.AdvancesDay,
	}, nil
}

// Intro is the flavour line shown before an action resolves.
func (t ActionTable) Intro(a Action) string { return t.rules[a].Intro }
