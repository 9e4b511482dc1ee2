package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/castaway/internal/command"
	"github.com/DaanHessen/castaway/internal/engine"
	"github.com/DaanHessen/castaway/internal/game"
	"github.com/DaanHessen/castaway/internal/text"
)

const (
	viewLoad   = "load"
	viewName   = "name"
	viewTarget = "target"
	viewPlay   = "play"
	viewEnding = "ending"
	viewBye    = "bye"
)

const sidebarWidth = 34

type model struct {
	ctx      context.Context
	runner   *game.Runner
	narrator text.Narrator

	theme  string
	pal    palette
	styles styles

	// mdStyle names a glamour style; empty picks one from the terminal
	mdStyle string

	view    string
	input   textinput.Model
	log     viewport.Model
	logText []string
	notice  string
	save    string
	ending  string

	// player picked during setup, before a session exists
	player engine.Player
	width  int
	height int
}

func newModel(ctx context.Context, r *game.Runner, theme string) model {
	if _, ok := palettes[theme]; !ok {
		theme = defaultTheme
	}
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 32
	m := model{
		ctx:      ctx,
		runner:   r,
		narrator: text.NewMarkdownNarrator(r.Engine().Actions()),
		view:     viewLoad,
		input:    ti,
		log:      viewport.New(60, 16),
		width:    100,
		height:   30,
	}
	m.setTheme(theme)
	return m
}

func (m *model) setTheme(name string) {
	m.theme = name
	m.pal = paletteFor(name)
	m.styles = newStyles(m.pal)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeLog()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		switch m.view {
		case viewLoad:
			return m.updateLoad(msg)
		case viewName, viewTarget:
			return m.updateInput(msg)
		case viewPlay:
			return m.updatePlay(msg)
		case viewEnding:
			return m.updateEnding(msg)
		}
		return m, nil
	}
	if m.view == viewName || m.view == viewTarget {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateLoad(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		res, err := m.runner.Resume(m.ctx)
		if err != nil {
			m.notice = fmt.Sprintf("Error loading game: %v. Starting a new game...", err)
			return m.askName()
		}
		m.notice = res.Notice
		if !res.Found {
			return m.askName()
		}
		m.player = res.Player
		if res.DayTarget == 0 {
			return m.askTarget()
		}
		return m.begin(res.DayTarget)
	case "n", "enter":
		m.notice = ""
		return m.askName()
	case "q", "esc":
		m.view = viewBye
		return m, tea.Quit
	}
	return m, nil
}

func (m model) askName() (tea.Model, tea.Cmd) {
	m.view = viewName
	m.input.Reset()
	m.input.Placeholder = engine.DefaultName
	m.input.Focus()
	return m, textinput.Blink
}

func (m model) askTarget() (tea.Model, tea.Cmd) {
	m.view = viewTarget
	m.input.Reset()
	m.input.Placeholder = "10-50"
	m.input.Focus()
	return m, textinput.Blink
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.quit()
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if m.view == viewName {
			m.player = engine.NewPlayer(value)
			m.notice = fmt.Sprintf("Welcome, %s! Good luck!", m.player.Name)
			return m.askTarget()
		}
		n, err := strconv.Atoi(value)
		switch {
		case err != nil:
			m.notice = "Please enter a valid number."
			m.input.Reset()
			return m, nil
		case engine.ValidateDayTarget(n) != nil:
			m.notice = "Please enter a number between 10 and 50."
			m.input.Reset()
			return m, nil
		}
		return m.begin(n)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) begin(target int) (tea.Model, tea.Cmd) {
	s, err := m.runner.Restore(m.player, target)
	if err != nil {
		m.notice = err.Error()
		return m.askTarget()
	}
	m.input.Blur()
	m.logText = []string{m.markdown("## " + strings.ReplaceAll(text.Goal(target), "\n", "\n\n"))}
	m.refreshLog()
	if s.Status.Terminal() {
		if err := m.runner.Finish(m.ctx); err != nil {
			m.save = "delete failed: " + err.Error()
		}
		return m.end(s)
	}
	m.view = viewPlay
	return m, nil
}

func (m model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "t":
		m.setTheme(nextThemeName(m.theme, 1))
		return m, nil
	case "pgup", "pgdown", "up", "down", "k", "j":
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	case "esc":
		key = "q"
	default:
		// only single characters select actions; named keys like enter never do
		if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
			return m, nil
		}
	}
	sel, err := command.Parse(key)
	if err != nil {
		m.notice = "Press 1-5 to choose an action."
		return m, nil
	}
	return m.play(sel)
}

func (m model) play(sel command.Selector) (tea.Model, tea.Cmd) {
	res, err := m.runner.Play(m.ctx, sel)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""
	switch {
	case res.Saved:
		m.save = "saved"
	case res.Deleted:
		m.save = "save cleared"
	case res.Err != nil:
		m.save = "save failed: " + res.Err.Error()
	}
	if res.Quit {
		if !res.Saved {
			// stay in the game so nothing is lost
			m.notice = "Error saving game. Press q to try again or ctrl+c to leave."
			return m, nil
		}
		m.notice = "Game saved! See you next time!"
		m.view = viewBye
		return m, tea.Quit
	}
	m.logText = append(m.logText, m.markdown(m.narrator.Turn(*res.Report)))
	m.refreshLog()
	if res.Over() {
		return m.end(m.runner.Session())
	}
	return m, nil
}

func (m model) end(s *engine.Session) (tea.Model, tea.Cmd) {
	m.view = viewEnding
	m.ending = m.markdown(m.narrator.Ending(s))
	return m, nil
}

func (m model) updateEnding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.view = viewLoad
		m.notice = ""
		m.save = ""
		m.ending = ""
		m.logText = nil
		m.refreshLog()
		return m, nil
	case "n", "q", "esc", "enter":
		m.view = viewBye
		return m, tea.Quit
	}
	return m, nil
}

// quit saves an ongoing game before leaving.
func (m model) quit() (tea.Model, tea.Cmd) {
	if s := m.runner.Session(); m.view == viewPlay && s != nil && !s.Status.Terminal() {
		m.notice = "Game saved! See you next time!"
		if res, _ := m.runner.Play(m.ctx, command.SaveAndQuit); res.Err != nil {
			m.notice = "Error saving game: " + res.Err.Error()
		}
	}
	m.view = viewBye
	return m, tea.Quit
}

func (m *model) resizeLog() {
	w := m.width - sidebarWidth - 4
	if w < 30 {
		w = 30
	}
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	m.log.Width, m.log.Height = w, h
	m.refreshLog()
}

func (m *model) refreshLog() {
	m.log.SetContent(strings.Join(m.logText, "\n"))
	m.log.GotoBottom()
}

// markdown renders with glamour, falling back to the raw text.
func (m model) markdown(md string) string {
	width := m.log.Width
	if width <= 0 {
		width = 60
	}
	style := glamour.WithAutoStyle()
	if m.mdStyle != "" {
		style = glamour.WithStandardStyle(m.mdStyle)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m model) View() string {
	switch m.view {
	case viewLoad:
		return m.frame(m.renderLoad())
	case viewName:
		return m.frame(m.styles.title.Render("Enter your name:") + "\n\n" + m.input.View())
	case viewTarget:
		return m.frame(m.styles.title.Render("How many days do you think you can survive? (10-50)") + "\n\n" + m.input.View())
	case viewPlay:
		return m.renderPlay()
	case viewEnding:
		return m.frame(m.ending + "\n\n" + m.styles.title.Render("Do you want to play again? (y/n)"))
	default:
		if m.notice != "" {
			return m.notice + "\n"
		}
		return "Thanks for playing! See you next time!\n"
	}
}

func (m model) frame(body string) string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("WELCOME TO SURVIVE ISLAND") + "\n\n")
	if m.notice != "" {
		b.WriteString(m.styles.notice.Render(m.notice) + "\n\n")
	}
	b.WriteString(body + "\n")
	return b.String()
}

func (m model) renderLoad() string {
	return m.styles.title.Render("Do you want to load a saved game?") + "\n\n" +
		m.styles.key.Render("[y]") + " load  " + m.styles.key.Render("[n]") + " new game  " + m.styles.key.Render("[q]") + " quit"
}

func (m model) renderPlay() string {
	s := m.runner.Session()
	top := m.renderTopBar(s)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.panel.Width(m.log.Width+2).Render(m.log.View()),
		m.styles.panel.Width(sidebarWidth).Render(m.renderSidebar(s)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, body, m.renderBottomBar())
}

func (m model) renderTopBar(s *engine.Session) string {
	left := "SURVIVE ISLAND • " + strings.ToUpper(s.Player.Name)
	right := fmt.Sprintf("Day %d/%d", s.Player.DaysSurvived, s.DayTarget)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.styles.title.Render(left + strings.Repeat(" ", gap) + right)
}

func (m model) renderSidebar(s *engine.Session) string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("GAUGES") + "\n")
	for _, g := range engine.AllGauges {
		v := s.Player.Value(g)
		fmt.Fprintf(&b, "%-7s %3d\n%s\n", gaugeLabel(g), v, gaugeBar(m.pal, v))
	}
	b.WriteString("\n" + m.styles.title.Render("ACTIONS") + "\n")
	for _, e := range command.Menu() {
		b.WriteString(m.styles.key.Render("["+e.Key+"]") + " " + e.Label + "\n")
	}
	return b.String()
}

func (m model) renderBottomBar() string {
	help := "[1-5] act  [↑/↓ pgup/pgdn] scroll  [t] theme (" + m.theme + ")  [q] save & quit"
	out := m.styles.muted.Render(help)
	if m.save != "" {
		st := m.styles.muted
		if strings.Contains(m.save, "failed") {
			st = m.styles.danger
		}
		out += st.Render("  • " + m.save)
	}
	if m.notice != "" {
		out += "\n" + m.styles.notice.Render(m.notice)
	}
	return out
}

func gaugeLabel(g engine.Gauge) string {
	name := string(g)
	return strings.ToUpper(name[:1]) + name[1:]
}
