// Package tui is the interactive task screen. It observes the controller's
// published list and re-projects it whenever the list or the view settings change.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/state"
	"github.com/Makepad-fr/tada/internal/view"
)

// Controller is the part of *state.Controller the screen drives.
type Controller interface {
	Subscribe() *state.Subscription
	AddTask(ctx context.Context, description string) error
	ToggleCompletion(ctx context.Context, task model.Task) error
	EditTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, task model.Task) error
	DeleteAllTasks(ctx context.Context) error
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
)

// tasksMsg carries a newly published list.
type tasksMsg []model.Task

// subClosedMsg is sent once the subscription channel closes.
type subClosedMsg struct{}

// opDoneMsg reports the end of a controller operation.
type opDoneMsg struct {
	op  string
	err error
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	clearBind  = key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete all"))
	doneBind   = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "completed"))
	pendBind   = key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pending"))
	searchBind = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	sortBind   = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort"))
)

type Model struct {
	ctx  context.Context
	ctrl Controller
	sub  *state.Subscription

	all    []model.Task // last published list
	params view.Params

	list  list.Model
	input textinput.Model
	mode  mode

	editing      model.Task
	inputErr     string
	status       string
	confirmClear bool
}

// New builds the screen and subscribes to ctrl. Close the model's
// subscription with Close when the program ends.
func New(ctx context.Context, ctrl Controller, params view.Params) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("task", "tasks")
	l.KeyMap.Quit.SetEnabled(false)
	short := []key.Binding{addBind, editBind, toggleBind, deleteBind, searchBind, sortBind}
	full := append(short, clearBind, doneBind, pendBind)
	l.AdditionalShortHelpKeys = func() []key.Binding { return short }
	l.AdditionalFullHelpKeys = func() []key.Binding { return full }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		ctx:    ctx,
		ctrl:   ctrl,
		sub:    ctrl.Subscribe(),
		all:    []model.Task{},
		params: params,
		list:   l,
		input:  ti,
	}
	m.refresh()
	return m
}

// Close stops observing the controller.
func (m Model) Close() { m.sub.Close() }

// Run shows the screen until the user quits.
func Run(ctx context.Context, ctrl Controller, params view.Params) error {
	m := New(ctx, ctrl, params)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func waitForTasks(sub *state.Subscription) tea.Cmd {
	return func() tea.Msg {
		tasks, ok := <-sub.C()
		if !ok {
			return subClosedMsg{}
		}
		return tasksMsg(tasks)
	}
}

// launch runs a controller operation off the update loop.
func (m Model) launch(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

// refresh recomputes the projection and the header.
func (m *Model) refresh() {
	shown := view.Project(m.all, m.params)
	m.list.SetItems(toItems(shown))

	d, p := view.Counts(m.all)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Tasks"),
		successStyle.Render("✔"), d,
		pendingStyle.Render("•"), p,
		accentStyle.Render("Total"), len(m.all),
	)
}

func (m Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	return it.Task, ok
}

func (m Model) Init() tea.Cmd { return waitForTasks(m.sub) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksMsg:
		m.all = msg
		m.refresh()
		return m, waitForTasks(m.sub)
	case subClosedMsg:
		return m, nil
	case opDoneMsg:
		if msg.err != nil {
			m.status = msg.op + ": " + msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeList {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	if m.mode != modeList {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k != "D" {
		m.confirmClear = false
	}

	switch k {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "a":
		return m.openInput(modeAdd, "", "New task...")
	case "e":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editing = task
		return m.openInput(modeEdit, task.Description, "Edit task...")
	case "/":
		return m.openInput(modeSearch, m.params.Query, "Search...")
	case " ":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.launch("toggle", func(ctx context.Context) error {
			return m.ctrl.ToggleCompletion(ctx, task)
		})
	case "d":
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.launch("delete", func(ctx context.Context) error {
			return m.ctrl.DeleteTask(ctx, task)
		})
	case "D":
		if !m.confirmClear {
			m.confirmClear = true
			m.status = "press D again to delete every task"
			return m, nil
		}
		m.confirmClear = false
		m.status = ""
		return m, m.launch("delete all", m.ctrl.DeleteAllTasks)
	case "c":
		m.params.ShowCompleted = !m.params.ShowCompleted
		m.refresh()
		return m, nil
	case "p":
		m.params.ShowPending = !m.params.ShowPending
		m.refresh()
		return m, nil
	case "s":
		m.params.Sort = m.params.Sort.Next()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) openInput(md mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.inputErr = ""
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) closeInput() Model {
	m.mode = modeList
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.mode == modeSearch {
			m.params.Query = ""
			m.refresh()
		}
		return m.closeInput(), nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeSearch:
			m.params.Query = m.input.Value()
			m.refresh()
			return m.closeInput(), nil
		case modeAdd:
			if text == "" {
				m.inputErr = "Description cannot be empty"
				return m, nil
			}
			m = m.closeInput()
			return m, m.launch("add", func(ctx context.Context) error {
				return m.ctrl.AddTask(ctx, text)
			})
		case modeEdit:
			if text == "" {
				m.inputErr = "Description cannot be empty"
				return m, nil
			}
			edited := m.editing
			edited.Description = text
			m = m.closeInput()
			return m, m.launch("edit", func(ctx context.Context) error {
				return m.ctrl.EditTask(ctx, edited)
			})
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeSearch {
		// search is live
		m.params.Query = m.input.Value()
		m.refresh()
	}
	return m, cmd
}

func (m Model) View() string {
	content := m.list.View()

	filters := fmt.Sprintf("completed:%s  pending:%s  sort:%s",
		onOff(m.params.ShowCompleted), onOff(m.params.ShowPending), m.params.Sort)
	if m.params.Query != "" {
		filters += fmt.Sprintf("  search:%q", m.params.Query)
	}
	content += "\n" + mutedStyle.Render(filters)

	if m.mode != modeList {
		title := map[mode]string{modeAdd: "Add task", modeEdit: "Edit task", modeSearch: "Search"}[m.mode]
		if m.inputErr != "" {
			title += " - " + errorStyle.Render(m.inputErr)
		}
		content += "\n" + barStyle.Render(title+"\n"+m.input.View())
	}
	if m.status != "" {
		content += "\n" + errorStyle.Render(m.status)
	}
	return panelStyle.Render(content)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
