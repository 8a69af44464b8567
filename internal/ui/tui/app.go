package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/diatonic/internal/domain"
	"github.com/aalvaropc/diatonic/internal/interval"
	"github.com/aalvaropc/diatonic/internal/usecase"
)

type screen int

const (
	screenHome screen = iota
	screenQuery
	screenIntervals
	screenSheets
)

const (
	menuConstruct = "Construct"
	menuIdentify  = "Identify"
	menuIntervals = "Intervals"
	menuSheets    = "Sheets"
	menuInit      = "Init workspace"
	menuQuit      = "Quit"
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type sheetItem struct {
	ref domain.SheetRef
}

func (s sheetItem) Title() string       { return s.ref.Name }
func (s sheetItem) Description() string { return s.ref.Path }
func (s sheetItem) FilterValue() string { return s.ref.Name }

type model struct {
	theme   Theme
	deps    Deps
	compute *usecase.Compute

	scr  screen
	menu list.Model

	op     domain.Operation
	input  textinput.Model
	answer *domain.Answer
	errMsg string

	sheets  list.Model
	running bool
	run     *domain.RunResult
	runID   string

	workspaceFound bool
	workspaceRoot  string
	cwd            string

	toast string
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	t := DefaultTheme()

	if deps.Engine == nil {
		deps.Engine = interval.Default()
	}

	items := []list.Item{
		menuItem{menuConstruct, "Interval + start note → note (M3 C asc)"},
		menuItem{menuIdentify, "Two notes → interval (C G asc)"},
		menuItem{menuIntervals, "Supported interval specifiers"},
		menuItem{menuSheets, "Run query sheets from the workspace"},
		menuItem{menuInit, "Create diatonic.yaml and a demo sheet here"},
		menuItem{menuQuit, "Exit diatonic"},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "diatonic"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	sl.Title = "Sheets"
	sl.SetShowStatusBar(false)
	sl.SetShowHelp(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64

	m := model{
		theme:   t,
		deps:    deps,
		compute: usecase.NewCompute(deps.Engine, deps.DefaultDirection, deps.Logger),
		scr:     screenHome,
		menu:    l,
		sheets:  sl,
		input:   ti,
	}

	wd, err := os.Getwd()
	if err == nil {
		m.cwd = wd
		if deps.WorkspaceLocator != nil {
			root, findErr := deps.WorkspaceLocator.FindRoot(wd)
			if findErr == nil {
				m.workspaceFound = true
				m.workspaceRoot = root
			}
		}
	}

	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width, msg.Height
		m.menu.SetSize(w-4, h-10)
		m.sheets.SetSize(w-4, h/2)
		m.input.Width = w - 12
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if msg.cwd != "" {
			m.cwd = msg.cwd
		}
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = "Init failed: " + userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace ready at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case sheetsLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.refs))
		for _, r := range msg.refs {
			items = append(items, sheetItem{ref: r})
		}
		if len(items) == 0 {
			m.toast = "No sheets found"
		}
		return m, m.sheets.SetItems(items)

	case sheetRunDoneMsg:
		m.running = false
		m.run = &msg.run
		m.runID = msg.id
		if msg.err != nil {
			m.toast = userMessage(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.scr {
		case screenHome:
			return m.updateHome(msg)
		case screenQuery:
			return m.updateQuery(msg)
		case screenIntervals:
			switch msg.String() {
			case "esc", "b", "q":
				m.scr = screenHome
			}
			return m, nil
		case screenSheets:
			return m.updateSheets(msg)
		}
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenHome:
		m.menu, cmd = m.menu.Update(msg)
	case screenQuery:
		m.input, cmd = m.input.Update(msg)
	case screenSheets:
		m.sheets, cmd = m.sheets.Update(msg)
	}
	return m, cmd
}

func (m model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.menu.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "enter":
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.toast = ""
		switch it.title {
		case menuQuit:
			return m, tea.Quit
		case menuConstruct:
			return m.openQuery(domain.OpConstruct, "M3 C asc")
		case menuIdentify:
			return m.openQuery(domain.OpIdentify, "C G asc")
		case menuIntervals:
			m.scr = screenIntervals
			return m, nil
		case menuSheets:
			if !m.workspaceFound {
				m.toast = "No workspace found (choose Init workspace first)"
				return m, nil
			}
			m.scr = screenSheets
			m.run = nil
			m.runID = ""
			return m, cmdLoadSheets(m.workspaceRoot)
		case menuInit:
			if m.cwd == "" {
				m.toast = "Cannot determine the working directory"
				return m, nil
			}
			return m, cmdInitWorkspaceHere(m.deps, m.cwd)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) openQuery(op domain.Operation, placeholder string) (tea.Model, tea.Cmd) {
	m.scr = screenQuery
	m.op = op
	m.answer = nil
	m.errMsg = ""
	m.input.Reset()
	m.input.Placeholder = placeholder
	return m, m.input.Focus()
}

func (m model) updateQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.scr = screenHome
		return m, nil

	case "enter":
		m.submitQuery()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) submitQuery() {
	args := strings.Fields(m.input.Value())
	a, err := m.compute.Execute(m.op, args)
	if err != nil {
		m.answer = nil
		m.errMsg = userMessage(err)
		return
	}
	m.answer = &a
	m.errMsg = ""
}

func (m model) updateSheets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sheets.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.sheets, cmd = m.sheets.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "b", "q":
		if m.running {
			m.toast = "Sheet is still running"
			return m, nil
		}
		m.scr = screenHome
		return m, nil

	case "enter":
		if m.running {
			return m, nil
		}
		it, ok := m.sheets.SelectedItem().(sheetItem)
		if !ok {
			return m, nil
		}
		m.running = true
		m.run = nil
		m.toast = ""
		_, cmd := startSheetRunAsync(m.workspaceRoot, it.ref.Path, m.deps.Engine, m.deps.Logger, m.deps.Debug)
		return m, cmd
	}

	var cmd tea.Cmd
	m.sheets, cmd = m.sheets.Update(msg)
	return m, cmd
}

func opTitle(op domain.Operation) string {
	if op == domain.OpIdentify {
		return menuIdentify
	}
	return menuConstruct
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("diatonic") + "\n" +
		m.theme.Subtitle.Render("interval construction and identification on the diatonic ring") + "\n"

	var workspaceBanner string
	if m.workspaceFound {
		workspaceBanner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		workspaceBanner = m.theme.Help.Render("No workspace (defaults in use)")
	}

	var toast string
	if m.toast != "" {
		toast = "\n" + m.theme.Fail.Render(m.toast) + "\n"
	}

	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + m.theme.Card.Render(m.menu.View()) + toast + "\n" + help)

	case screenQuery:
		var out string
		switch {
		case m.answer != nil:
			out = m.theme.Result.Render(m.answer.Result) + "\n\n" + renderAnswerDetails(*m.answer)
		case m.errMsg != "":
			out = m.theme.Fail.Render(m.errMsg)
		default:
			out = m.theme.Help.Render("type the arguments and press enter")
		}
		card := m.theme.Card.Render(
			fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s",
				m.theme.Title.Render(opTitle(m.op)),
				m.input.View(),
				out,
				m.theme.Help.Render("enter compute • esc back • ctrl+c quit"),
			),
		)
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + card)

	case screenIntervals:
		card := m.theme.Card.Render(
			m.theme.Title.Render("Intervals") + "\n\n" + renderIntervalTable() + "\n" +
				m.theme.Help.Render("esc/b back"),
		)
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" + card)

	case screenSheets:
		var out string
		switch {
		case m.running:
			out = m.theme.Help.Render("running…")
		case m.run != nil:
			out = renderRun(m.theme, *m.run, m.runID)
		}
		help := m.theme.Help.Render("enter run • / search • esc back")
		return wrap.Render(header + "\n" + workspaceBanner + "\n\n" +
			m.theme.Card.Render(m.sheets.View()) + "\n" + out + toast + "\n" + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}
