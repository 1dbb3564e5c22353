package ui

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/view"
)

const maxTitle = 80

// Header renders the title line with counts over all tasks.
func (p *Printer) Header(all []model.Task) []string {
	t := p.Theme
	d, pn := view.Counts(all)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		p.C(t.Title, "Tasks"),
		p.C(t.Success, t.SymDone), d,
		p.C(t.Pending, t.SymPending), pn,
		p.C(t.Accent, "Total"), len(all),
	)
	return []string{header, p.C(t.Muted, ProgressBar(d, d+pn, 28))}
}

// TaskLines renders one line per task, prefixed with its id.
func (p *Printer) TaskLines(tasks []model.Task) []string {
	t := p.Theme
	if len(tasks) == 0 {
		return []string{p.C(t.Muted, "no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		id := fmt.Sprintf("%3d.", task.ID)
		box, color := t.BoxUnchecked, t.Muted
		if task.IsCompleted {
			box, color = t.BoxChecked, t.Success
		}
		title := []rune(task.Description)
		if len(title) > maxTitle {
			title = append(title[:maxTitle-3], []rune("...")...)
		}
		out = append(out, fmt.Sprintf("%s %s %s", p.C(dim, id), p.C(color, box), string(title)))
	}
	return out
}

// GroupLines renders pending then done sections, keeping the given order within each.
func (p *Printer) GroupLines(tasks []model.Task) []string {
	var pend, done []model.Task
	for _, task := range tasks {
		if task.IsCompleted {
			done = append(done, task)
		} else {
			pend = append(pend, task)
		}
	}
	section := func(name string, ts []model.Task) []string {
		lines := []string{p.C(p.Theme.Accent, name)}
		if len(ts) == 0 {
			return append(lines, p.C(p.Theme.Muted, "(none)"))
		}
		return append(lines, p.TaskLines(ts)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
