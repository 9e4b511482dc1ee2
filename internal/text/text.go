package text

import (
	"fmt"
	"strings"

	"github.com/DaanHessen/castaway/internal/engine"
)

// Narrator renders game state as prose.
type Narrator interface {
	Turn(rep engine.TurnReport) string
	Status(p engine.Player, target int) string
	// Ending is empty while the session is still ongoing.
	Ending(s *engine.Session) string
}

// EndingLine is the one-line verdict shared by every narrator.
func EndingLine(s *engine.Session) string {
	days := s.Player.DaysSurvived
	switch s.Status {
	case engine.StatusDefeat:
		return fmt.Sprintf("GAME OVER! You died from %s...", engine.CauseText(s.Cause))
	case engine.StatusVictory:
		return fmt.Sprintf("VICTORY! You survived %d days on the island!", days)
	case engine.StatusRescued:
		return fmt.Sprintf("RESCUED! You survived %d days and got rescued!", days)
	default:
		return ""
	}
}

// Goal introduces a new session.
func Goal(target int) string {
	return fmt.Sprintf("Your goal: Survive %d days on a desert island!\nManage your hunger, thirst, and energy wisely.", target)
}

// markdownNarrator writes markdown for the TUI, which renders it with glamour.
type markdownNarrator struct {
	actions engine.ActionTable
}

func NewMarkdownNarrator(actions engine.ActionTable) Narrator {
	return &markdownNarrator{actions: actions}
}

func (n *markdownNarrator) Turn(rep engine.TurnReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Day %d\n\n", rep.Player.DaysSurvived)
	fmt.Fprintf(&b, "*%s* **%s**", n.actions.Intro(rep.Action.Action), rep.Action.Message)
	if d := deltaText(rep.Action.Delta); d != "" {
		fmt.Fprintf(&b, " (%s)", d)
	}
	b.WriteString("\n\n")
	if d := deltaText(rep.Decay); d != "" {
		fmt.Fprintf(&b, "The day takes its toll: %s.\n\n", d)
	}
	fmt.Fprintf(&b, "> %s", rep.Event.Message)
	if d := deltaText(rep.Event.Delta); d != "" {
		fmt.Fprintf(&b, " (%s)", d)
	}
	b.WriteString("\n")
	return b.String()
}

func (n *markdownNarrator) Status(p engine.Player, target int) string {
	return fmt.Sprintf("**Day %d/%d** · %s\n\n| Hunger | Thirst | Energy |\n|---|---|---|\n| %d | %d | %d |\n",
		p.DaysSurvived, target, strings.ToUpper(p.Name), p.Hunger, p.Thirst, p.Energy)
}

func (n *markdownNarrator) Ending(s *engine.Session) string {
	line := EndingLine(s)
	if line == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("# " + line + "\n\n")
	p := s.Player
	fmt.Fprintf(&b, "- Castaway: %s\n- Days survived: %d of %d\n- Hunger %d · Thirst %d · Energy %d\n",
		p.Name, p.DaysSurvived, s.DayTarget, p.Hunger, p.Thirst, p.Energy)
	return b.String()
}

// plainNarrator reproduces the line console layout.
type plainNarrator struct {
	actions engine.ActionTable
}

func NewPlainNarrator(actions engine.ActionTable) Narrator {
	return &plainNarrator{actions: actions}
}

const rule = "========================================"

func (n *plainNarrator) Turn(rep engine.TurnReport) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString(n.actions.Intro(rep.Action.Action) + "\n")
	msg := rep.Action.Message
	if rep.Action.AdvancesDay {
		msg = fmt.Sprintf("%s Day %d", msg, rep.Player.DaysSurvived)
	}
	b.WriteString(msg + "\n")
	b.WriteString(strings.Repeat("-", 40) + "\n\n")
	b.WriteString("Random event...\n")
	b.WriteString(rep.Event.Message + "\n")
	return b.String()
}

func (n *plainNarrator) Status(p engine.Player, target int) string {
	return fmt.Sprintf("Day %d/%d - %s\n%s\nHunger: %d/100 | Thirst: %d/100 | Energy: %d/100\n%s\n",
		p.DaysSurvived, target, strings.ToUpper(p.Name), rule, p.Hunger, p.Thirst, p.Energy, rule)
}

func (n *plainNarrator) Ending(s *engine.Session) string {
	line := EndingLine(s)
	if line == "" {
		return ""
	}
	banner := strings.Repeat("=", 50)
	return banner + "\n" + line + "\n" + banner + "\n"
}

// deltaText formats non-zero gauge changes as "+20 hunger, -10 energy".
func deltaText(d engine.Delta) string {
	var parts []string
	for _, g := range engine.AllGauges {
		if v := d.Value(g); v != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", v, g))
		}
	}
	return strings.Join(parts, ", ")
}
