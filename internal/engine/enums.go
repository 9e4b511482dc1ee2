package engine

// String backed enums so saves and logs stay readable.

type Action string
type EventKind string
type Status string
type Gauge string

const (
	ActionFish        Action = "fish"
	ActionSleep       Action = "sleep"
	ActionSearchWater Action = "search_water"
	ActionExplore     Action = "explore"
)

// AllActions is ordered as the in-game menu (1-4).
var AllActions = []Action{ActionFish, ActionSleep, ActionSearchWater, ActionExplore}

const (
	EventRain            EventKind = "rain"
	EventAnimalEncounter EventKind = "animal_encounter"
	EventFruitFound      EventKind = "fruit_found"
	EventInjury          EventKind = "injury"
	EventNothing         EventKind = "nothing"
	EventBoatRescue      EventKind = "boat_rescue"
)

var AllEventKinds = []EventKind{EventRain, EventAnimalEncounter, EventFruitFound, EventInjury, EventNothing, EventBoatRescue}

const (
	StatusOngoing Status = "ongoing"
	StatusVictory Status = "victory"
	StatusDefeat  Status = "defeat"
	StatusRescued Status = "rescued"
)

const (
	GaugeHunger Gauge = "hunger"
	GaugeThirst Gauge = "thirst"
	GaugeEnergy Gauge = "energy"
)

var AllGauges = []Gauge{GaugeHunger, GaugeThirst, GaugeEnergy}

func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (a Action) Validate() bool { return contains(AllActions, a) }
func (e EventKind) Validate() bool { return contains(AllEventKinds, e) }

// Terminal reports whether no further turns can be played.
func (s Status) Terminal() bool { return s != StatusOngoing && s != "" }

// Label is the menu caption for an action.
func (a Action) Label() string {
	switch a {
	case ActionFish:
		return "Fish"
	case ActionSleep:
		return "Sleep"
	case ActionSearchWater:
		return "Search for water"
	case ActionExplore:
		return "Explore"
	default:
		return string(a)
	}
}

// ListActions returns a copy of AllActions in menu order.
func ListActions() []Action { return append([]Action{}, AllActions...) }
