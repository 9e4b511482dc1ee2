// Package command turns raw player input into a turn selector.
package command

import (
	errs "errors"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/DaanHessen/castaway/internal/engine"
)

var ErrUnknownCommand = errs.New("unknown command")

// Selector is what the player picked: one action, or save and quit.
type Selector struct {
	Action   engine.Action
	SaveQuit bool
}

// SaveAndQuit is the selector for menu entry 5.
var SaveAndQuit = Selector{SaveQuit: true}

// Act selects an action.
func Act(a engine.Action) Selector { return Selector{Action: a} }

func (s Selector) String() string {
	if s.SaveQuit {
		return "save_quit"
	}
	return string(s.Action)
}

// Entry is one menu line.
type Entry struct {
	Key      string
	Label    string
	Selector Selector
	Aliases  []string
}

const saveQuitLabel = "Quit and save"

var actionAliases = map[engine.Action][]string{
	engine.ActionFish:        {"f", "fishing", "catch fish"},
	engine.ActionSleep:       {"rest", "nap", "s"},
	engine.ActionSearchWater: {"water", "drink", "search water", "search for water", "w"},
	engine.ActionExplore:     {"walk", "wander", "e"},
}

var saveQuitAliases = []string{"q", "quit", "save", "exit", "quit and save"}

// Menu numbers the actions in engine order, then save and quit.
func Menu() []Entry {
	actions := engine.ListActions()
	out := make([]Entry, 0, len(actions)+1)
	for i, a := range actions {
		out = append(out, Entry{
			Key:      strconv.Itoa(i + 1),
			Label:    a.Label(),
			Selector: Act(a),
			Aliases:  append([]string(nil), actionAliases[a]...),
		})
	}
	return append(out, Entry{
		Key:      strconv.Itoa(len(actions) + 1),
		Label:    saveQuitLabel,
		Selector: SaveAndQuit,
		Aliases:  append([]string(nil), saveQuitAliases...),
	})
}

type phrase struct {
	text     string
	selector Selector
	alias    bool
}

type candidate struct {
	selector Selector
	score    float64
}

// Parser matches input against the menu.
type Parser struct {
	keys    map[string]Selector
	phrases []phrase
}

func NewParser(entries []Entry) *Parser {
	p := &Parser{keys: make(map[string]Selector, len(entries))}
	for _, e := range entries {
		p.keys[e.Key] = e.Selector
		p.phrases = append(p.phrases, phrase{text: normalise(e.Selector.String()), selector: e.Selector})
		p.phrases = append(p.phrases, phrase{text: normalise(e.Label), selector: e.Selector, alias: true})
		for _, a := range e.Aliases {
			if n := normalise(a); n != "" {
				p.phrases = append(p.phrases, phrase{text: n, selector: e.Selector, alias: true})
			}
		}
	}
	return p
}

var defaultParser = NewParser(Menu())

// Parse uses the default menu.
func Parse(raw string) (Selector, error) { return defaultParser.Parse(raw) }

// Parse tries, in order, a menu key, an exact name or alias, a unique prefix and
// finally the closest name within a small edit distance.
func (p *Parser) Parse(raw string) (Selector, error) {
	in := normalise(raw)
	if in == "" {
		return Selector{}, ErrUnknownCommand
	}
	if sel, ok := p.keys[in]; ok {
		return sel, nil
	}
	var cands []candidate
	for _, ph := range p.phrases {
		switch {
		case in == ph.text:
			score := 1.0
			if ph.alias {
				score = 0.97
			}
			cands = append(cands, candidate{ph.selector, score})
		case len(in) >= 2 && strings.HasPrefix(ph.text, in):
			cands = append(cands, candidate{ph.selector, 0.9})
		case len(in) >= 3:
			dist := levenshtein.ComputeDistance(in, ph.text)
			if dist > levenshteinLimit(len(ph.text)) {
				continue
			}
			cands = append(cands, candidate{ph.selector, 0.72 - 0.08*float64(dist)})
		}
	}
	if len(cands) == 0 {
		return Selector{}, ErrUnknownCommand
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })
	best := cands[0]
	// two different picks tied at the top is ambiguous
	for _, c := range cands[1:] {
		if c.score < best.score {
			break
		}
		if c.selector != best.selector {
			return Selector{}, ErrUnknownCommand
		}
	}
	return best.selector, nil
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func normalise(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
