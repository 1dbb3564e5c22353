package state

import (
	"slices"
	"sync"

	"github.com/Makepad-fr/tada/internal/model"
)

// Holder is an observable task list. It starts empty; Publish replaces the
// value and notifies subscribers unless the new list equals the current one.
type Holder struct {
	mu      sync.Mutex
	current []model.Task
	subs    map[*Subscription]struct{}
}

func NewHolder() *Holder {
	return &Holder{
		current: []model.Task{},
		subs:    map[*Subscription]struct{}{},
	}
}

// Value returns a copy of the current list.
func (h *Holder) Value() []model.Task {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.current)
}

// Publish stores a copy of tasks. It reports whether the value changed.
func (h *Holder) Publish(tasks []model.Task) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if tasks == nil {
		tasks = []model.Task{}
	}
	if slices.Equal(h.current, tasks) {
		return false
	}
	h.current = slices.Clone(tasks)
	for s := range h.subs {
		s.offer(h.current)
	}
	return true
}

// Subscribe registers a new observer. The first value on C is the current list.
func (h *Holder) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := &Subscription{holder: h, ch: make(chan []model.Task, 1)}
	s.offer(h.current)
	h.subs[s] = struct{}{}
	return s
}

func (h *Holder) unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
}

// Subscription delivers the latest published list. Slow readers only ever see
// the most recent value; intermediate ones are dropped.
type Subscription struct {
	holder *Holder
	ch     chan []model.Task
}

// C yields a copy of each newly published list. It is closed by Close.
func (s *Subscription) C() <-chan []model.Task { return s.ch }

// Latest returns the holder's current list.
func (s *Subscription) Latest() []model.Task { return s.holder.Value() }

func (s *Subscription) Close() { s.holder.unsubscribe(s) }

// offer replaces any unread value. Called with the holder lock held, so
// nothing else sends on ch concurrently.
func (s *Subscription) offer(tasks []model.Task) {
	select {
	case <-s.ch:
	default:
	}
	s.ch <- slices.Clone(tasks)
}
