package engine

import "fmt"

// EventBlueprint holds the weight and announcement of an event kind.
type EventBlueprint struct {
	Kind        EventKind
	Weight      int
	Description string
}

// EventResult is the resolved effect of one post-turn event.
// Rescue marks the boat rescue; it carries no delta.
type EventResult struct {
	Kind    EventKind
	Delta   Delta
	Message string
	Rescue  bool
}

type eventResolver func(p *Player, r Rand) EventResult

// Catalog of island events. Weights are relative, not normalised.
var eventCatalog = []EventBlueprint{
	{Kind: EventRain, Weight: 2, Description: "A tropical rain falls..."},
	{Kind: EventAnimalEncounter, Weight: 2, Description: "You encounter a wild animal!"},
	{Kind: EventFruitFound, Weight: 3, Description: "You find some delicious fruits!"},
	{Kind: EventInjury, Weight: 1, Description: "You got injured!"},
	{Kind: EventNothing, Weight: 2, Description: "Nothing interesting happens..."},
	{Kind: EventBoatRescue, Weight: 1, Description: "A rescue boat spots you!"},
}

var eventResolvers = map[EventKind]eventResolver{
	EventRain: func(p *Player, _ Rand) EventResult {
		return applyEvent(p, EventRain, Delta{Thirst: 25}, "A tropical rain falls, your thirst decreases significantly.")
	},
	EventAnimalEncounter: func(p *Player, r Rand) EventResult {
		if coinFlip(r) {
			return applyEvent(p, EventAnimalEncounter, Delta{Energy: -20}, "You encounter a wild animal and flee in panic! You lose energy.")
		}
		return applyEvent(p, EventAnimalEncounter, Delta{Hunger: 30, Energy: -25}, "You encounter a wild animal and manage to hunt it! You gain food but lose energy.")
	},
	EventFruitFound: func(p *Player, _ Rand) EventResult {
		return applyEvent(p, EventFruitFound, Delta{Hunger: 20}, "You find some delicious fruits! Your hunger decreases.")
	},
	EventInjury: func(p *Player, _ Rand) EventResult {
		return applyEvent(p, EventInjury, Delta{Energy: -30}, "You got injured while exploring! You lose a lot of energy.")
	},
	EventNothing: func(_ *Player, _ Rand) EventResult {
		return EventResult{Kind: EventNothing, Message: "Nothing interesting happens on this day..."}
	},
	EventBoatRescue: func(_ *Player, _ Rand) EventResult {
		return EventResult{Kind: EventBoatRescue, Message: "A rescue boat spots you! They're coming to save you!", Rescue: true}
	},
}

func applyEvent(p *Player, kind EventKind, d Delta, msg string) EventResult {
	p.ApplyDelta(d)
	return EventResult{Kind: kind, Delta: d, Message: msg}
}

// EventTable draws weighted events and dispatches them to their resolvers.
type EventTable struct {
	blueprints []EventBlueprint
	total      int
}

// DefaultEvents returns the standard island event table.
func DefaultEvents() EventTable {
	t, _ := NewEventTable(eventCatalog)
	return t
}

// NewEventTable validates blueprints: known kinds, positive weights, no duplicates.
func NewEventTable(bps []EventBlueprint) (EventTable, error) {
	seen := make(map[EventKind]bool, len(bps))
	total := 0
	for _, bp := range bps {
		if !bp.Kind.Validate() {
			return EventTable{}, fmt.Errorf("unknown event kind %q", bp.Kind)
		}
		if _, ok := eventResolvers[bp.Kind]; !ok {
			return EventTable{}, fmt.Errorf("event %q has no resolver", bp.Kind)
		}
		if bp.Weight <= 0 {
			return EventTable{}, fmt.Errorf("event %q weight must be positive, got %d", bp.Kind, bp.Weight)
		}
		if seen[bp.Kind] {
			return EventTable{}, fmt.Errorf("event %q listed twice", bp.Kind)
		}
		seen[bp.Kind] = true
		total += bp.Weight
	}
	if total == 0 {
		return EventTable{}, fmt.Errorf("event table is empty")
	}
	return EventTable{blueprints: append([]EventBlueprint{}, bps...), total: total}, nil
}

// TotalWeight is the sum of all event weights.
func (t EventTable) TotalWeight() int { return t.total }

// Blueprints returns a copy of the table in draw order.
func (t EventTable) Blueprints() []EventBlueprint {
	return append([]EventBlueprint{}, t.blueprints...)
}

// Draw picks an event kind with probability weight/total.
func (t EventTable) Draw(r Rand) EventKind {
	n := r.Intn(t.total)
	for _, bp := range t.blueprints {
		if n < bp.Weight {
			return bp.Kind
		}
		n -= bp.Weight
	}
	return t.blueprints[len(t.blueprints)-1].Kind
}

// Resolve draws one event and applies it to p.
func (t EventTable) Resolve(p *Player, r Rand) EventResult {
	return eventResolvers[t.Draw(r)](p, r)
}
