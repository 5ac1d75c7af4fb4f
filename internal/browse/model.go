package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/focus"
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/input"
)

// reloadMsg carries a freshly loaded document.
type reloadMsg struct {
	tree *document.Tree
	err  error
}

// model is the bubbletea model for the document browser.
type model struct {
	path   string
	load   func(path string) (*document.Tree, error)
	tree   *document.Tree
	state  *focus.NavigationState
	ctrl   *focus.Controller
	rules  index.Rules
	nav    input.Handler
	keymap input.Keymap

	throttle time.Duration
	keys     keyMap
	help     help.Model
	status   string
	err      string

	width  int
	height int
}

func newModel(path string, tree *document.Tree, opts Options) model {
	if len(opts.Rules.Tags) == 0 && len(opts.Rules.Roles) == 0 && !opts.Rules.Tabindex {
		opts.Rules = index.DefaultRules()
	}
	m := model{
		path:     path,
		load:     document.LoadFile,
		state:    focus.NewState(),
		rules:    opts.Rules,
		keymap:   input.ViKeys(),
		throttle: opts.Throttle,
		keys:     defaultKeyMap(),
		help:     help.New(),
		status:   "press an arrow key to enter the document",
	}
	m.setTree(tree)
	return m
}

// setTree swaps the document while keeping the navigation state. Focus is
// re-applied when the focused id exists in the new document.
func (m *model) setTree(tree *document.Tree) {
	m.tree = tree
	rules := m.rules
	m.ctrl = focus.NewController(tree, m.state, focus.Config{Rules: &rules})
	m.nav = input.Throttle(m.ctrl.Navigate, m.throttle)

	if cur, ok := m.ctrl.Current(); ok {
		if err := m.ctrl.Focus(cur.ID()); err != nil {
			m.ctrl.Reset()
		}
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case reloadMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			return m, nil
		}
		m.err = ""
		m.setTree(msg.tree)
		m.status = "reloaded " + m.path
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Reset):
			m.ctrl.Reset()
			m.status = "focus cleared"
			return m, nil

		case key.Matches(msg, m.keys.Remove):
			cur, ok := m.ctrl.Current()
			if !ok {
				m.status = "nothing focused"
				return m, nil
			}
			if err := m.tree.Remove(cur.ID()); err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.status = fmt.Sprintf("removed %s", cur.ID())
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			return m, m.reloadCmd()
		}

		if dir, ok := m.keymap.Lookup(msg.String()); ok {
			if m.nav(dir) {
				cur, _ := m.ctrl.Current()
				m.status = fmt.Sprintf("%s → %s", dir, cur.ID())
			} else {
				m.status = fmt.Sprintf("%s: no target", dir)
			}
		}
	}
	return m, nil
}

func (m model) reloadCmd() tea.Cmd {
	path, load := m.path, m.load
	return func() tea.Msg {
		tree, err := load(path)
		return reloadMsg{tree: tree, err: err}
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	canvasStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := titleStyle.Render("spatialnav browse  " + m.path)
	status := statusStyle.Width(m.width).Render(m.statusLine())
	helpBar := m.help.View(m.keys)

	var errLine string
	if m.err != "" {
		errLine = errorStyle.Render(m.err)
	}

	used := lipgloss.Height(title) + lipgloss.Height(status) + lipgloss.Height(helpBar)
	if errLine != "" {
		used += lipgloss.Height(errLine)
	}
	canvasHeight := max(m.height-used, 3)

	cur, _ := m.ctrl.Current()
	targets := m.rules.Collect(m.tree, nil)
	canvas := renderCanvas(m.tree.Viewport(), targets, cur.ID(), m.width, canvasHeight)

	parts := []string{title, canvasStyle.Render(strings.Join(canvas, "\n")), status}
	if errLine != "" {
		parts = append(parts, errLine)
	}
	parts = append(parts, helpBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) statusLine() string {
	snap := m.ctrl.State()
	focused := "none"
	if snap.Focused {
		focused = fmt.Sprintf("%s %v", snap.CurrentID, snap.CurrentRect)
	}
	scroll := m.tree.Scroll()
	return fmt.Sprintf("focus: %s  scroll: %.0f,%.0f  %s", focused, scroll.DX, scroll.DY, m.status)
}
