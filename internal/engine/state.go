package engine

const (
	GaugeMin = 0
	GaugeMax = 100

	DefaultName = "Survivor"
)

// Delta is a signed change to the three gauges.
type Delta struct {
	Hunger int `json:"hunger"`
	Thirst int `json:"thirst"`
	Energy int `json:"energy"`
}

// Value reads the change to one gauge.
func (d Delta) Value(g Gauge) int {
	switch g {
	case GaugeHunger:
		return d.Hunger
	case GaugeThirst:
		return d.Thirst
	case GaugeEnergy:
		return d.Energy
	default:
		return 0
	}
}

// Player is the castaway: three gauges, a day counter and a display name.
type Player struct {
	Name         string
	Hunger       int
	Thirst       int
	Energy       int
	DaysSurvived int
}

// NewPlayer returns a fresh castaway with full gauges on day 0.
func NewPlayer(name string) Player {
	if name == "" {
		name = DefaultName
	}
	return Player{Name: name, Hunger: GaugeMax, Thirst: GaugeMax, Energy: GaugeMax}
}

// RestorePlayer rebuilds a castaway from persisted values, clamping gauges and
// flooring the day counter at zero.
func RestorePlayer(name string, hunger, thirst, energy, days int) Player {
	if name == "" {
		name = DefaultName
	}
	if days < 0 {
		days = 0
	}
	return Player{Name: name, Hunger: Clamp(hunger), Thirst: Clamp(thirst), Energy: Clamp(energy), DaysSurvived: days}
}

// Clamp restricts a gauge value to 0-100.
func Clamp(v int) int {
	if v < GaugeMin {
		return GaugeMin
	}
	if v > GaugeMax {
		return GaugeMax
	}
	return v
}

// ApplyDelta is the single mutation path for gauges.
func (p *Player) ApplyDelta(d Delta) {
	p.Hunger = Clamp(p.Hunger + d.Hunger)
	p.Thirst = Clamp(p.Thirst + d.Thirst)
	p.Energy = Clamp(p.Energy + d.Energy)
}

// AdvanceDay counts one more survived day.
func (p *Player) AdvanceDay() { p.DaysSurvived++ }

// IsAlive is true while every gauge is above zero.
func (p Player) IsAlive() bool {
	return p.Hunger > 0 && p.Thirst > 0 && p.Energy > 0
}

// DepletedGauges lists the gauges at or below zero in hunger, thirst, energy order.
func (p Player) DepletedGauges() []Gauge {
	var out []Gauge
	for _, g := range AllGauges {
		if p.Value(g) <= 0 {
			out = append(out, g)
		}
	}
	return out
}

// Value reads a gauge by key.
func (p Player) Value(g Gauge) int {
	switch g {
	case GaugeHunger:
		return p.Hunger
	case GaugeThirst:
		return p.Thirst
	case GaugeEnergy:
		return p.Energy
	default:
		return 0
	}
}
