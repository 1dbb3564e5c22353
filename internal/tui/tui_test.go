package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/state"
	"github.com/Makepad-fr/tada/internal/store/memstore"
	"github.com/Makepad-fr/tada/internal/view"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

// settle feeds the next published list into m.
func settle(t *testing.T, m Model) Model {
	t.Helper()
	got := make(chan tea.Msg, 1)
	go func() { got <- waitForTasks(m.sub)() }()
	select {
	case msg := <-got:
		next, _ := m.Update(msg)
		return next.(Model)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published tasks")
		return m
	}
}

// runOp executes a launched operation and applies its result.
func runOp(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected an operation command")
	}
	msg, ok := cmd().(opDoneMsg)
	if !ok {
		t.Fatalf("got %T, want opDoneMsg", msg)
	}
	if msg.err != nil {
		t.Fatalf("%s: %v", msg.op, msg.err)
	}
	next, _ := m.Update(msg)
	return settle(t, next.(Model))
}

func shown(m Model) []model.Task {
	var out []model.Task
	for _, it := range m.list.Items() {
		out = append(out, it.(taskItem).Task)
	}
	return out
}

func newTestModel(t *testing.T, seed ...string) Model {
	t.Helper()
	ctx := context.Background()
	ctrl := state.New(memstore.New(seed...))
	if err := ctrl.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	m := New(ctx, ctrl, view.DefaultParams())
	t.Cleanup(m.Close)
	return settle(t, m)
}

func TestAddToggleEditDelete(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, "a", "Buy milk")
	m, cmd := press(t, m, "enter")
	m = runOp(t, m, cmd)
	tasks := shown(m)
	if len(tasks) != 1 || tasks[0].Description != "Buy milk" || tasks[0].IsCompleted {
		t.Fatalf("after add shown = %+v", tasks)
	}

	m, cmd = press(t, m, " ")
	m = runOp(t, m, cmd)
	if !shown(m)[0].IsCompleted {
		t.Fatalf("after toggle shown = %+v", shown(m))
	}

	m, _ = press(t, m, "e")
	if m.input.Value() != "Buy milk" {
		t.Fatalf("edit input prefilled with %q", m.input.Value())
	}
	m.input.SetValue("Buy oat milk")
	m, cmd = press(t, m, "enter")
	m = runOp(t, m, cmd)
	got := shown(m)[0]
	if got.Description != "Buy oat milk" || !got.IsCompleted || got.ID != tasks[0].ID {
		t.Fatalf("after edit shown = %+v", got)
	}

	m, cmd = press(t, m, "d")
	m = runOp(t, m, cmd)
	if len(shown(m)) != 0 {
		t.Fatalf("after delete shown = %+v", shown(m))
	}
}

func TestEmptyAddIsRejected(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "a", "   ")
	m, cmd := press(t, m, "enter")
	if cmd != nil {
		t.Error("empty description launched an operation")
	}
	if m.mode != modeAdd || m.inputErr == "" {
		t.Errorf("mode = %v, inputErr = %q", m.mode, m.inputErr)
	}
	if !strings.Contains(m.View(), "Description cannot be empty") {
		t.Error("view does not show the validation error")
	}
}

func TestFiltersSearchAndSort(t *testing.T) {
	m := newTestModel(t, "b walk dog", "a Buy Milk", "c call mom")
	m, cmd := press(t, m, " ") // toggle first shown: "a Buy Milk"
	m = runOp(t, m, cmd)

	m, _ = press(t, m, "c")
	if len(shown(m)) != 2 {
		t.Errorf("completed hidden: shown = %+v", shown(m))
	}
	m, _ = press(t, m, "p")
	if len(shown(m)) != 0 {
		t.Errorf("both hidden: shown = %+v", shown(m))
	}
	m, _ = press(t, m, "c", "p")

	m, _ = press(t, m, "/", "MILK")
	if got := shown(m); len(got) != 1 || got[0].Description != "a Buy Milk" {
		t.Errorf("live search shown = %+v", got)
	}
	m, _ = press(t, m, "enter")
	if m.mode != modeList || m.params.Query != "MILK" {
		t.Errorf("after enter mode = %v query = %q", m.mode, m.params.Query)
	}
	m, _ = press(t, m, "/", "esc")
	if m.params.Query != "" || len(shown(m)) != 3 {
		t.Errorf("esc did not clear search: %q %+v", m.params.Query, shown(m))
	}

	m, _ = press(t, m, "s")
	if m.params.Sort != model.SortByStatus {
		t.Fatalf("sort = %v", m.params.Sort)
	}
	if got := shown(m); got[2].Description != "a Buy Milk" {
		t.Errorf("status sort shown = %+v", got)
	}
}

func TestDeleteAllNeedsConfirmation(t *testing.T) {
	m := newTestModel(t, "a", "b")

	m, cmd := press(t, m, "D")
	if cmd != nil || !m.confirmClear {
		t.Fatal("first D should only ask for confirmation")
	}
	m, cmd = press(t, m, "j")
	if m.confirmClear {
		t.Error("other key should cancel confirmation")
	}

	m, _ = press(t, m, "D")
	m, cmd = press(t, m, "D")
	m = runOp(t, m, cmd)
	if len(shown(m)) != 0 {
		t.Errorf("shown = %+v, want empty", shown(m))
	}
}

func TestOperationErrorShownInStatus(t *testing.T) {
	m := newTestModel(t, "a")
	next, _ := m.Update(opDoneMsg{op: "add", err: context.Canceled})
	m = next.(Model)
	if !strings.Contains(m.View(), "add: context canceled") {
		t.Errorf("status not rendered:\n%s", m.View())
	}
}
