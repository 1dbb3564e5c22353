// Package state owns the in-memory task list and keeps it in step with the store.
//
// Every mutation goes to the repository first, then the full list is reloaded
// and published. The published list is always a snapshot of the store, never
// a locally patched copy. A failed step returns its error and skips the
// publish, so observers keep the last good value.
package state

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// Controller mediates between a Repository and its observers.
//
// It does not validate descriptions; callers trim and reject empty input.
// Operations are not serialized unless WithSerializedOps is set, so two
// overlapping operations publish in whatever order their reloads finish.
type Controller struct {
	repo   store.Repository
	holder *Holder
	logger *log.Logger

	serialize bool
	opMu      sync.Mutex
}

type Option func(*Controller)

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithHolder publishes into h instead of a fresh Holder.
func WithHolder(h *Holder) Option {
	return func(c *Controller) { c.holder = h }
}

// WithSerializedOps runs controller operations one at a time.
func WithSerializedOps() Option {
	return func(c *Controller) { c.serialize = true }
}

func New(repo store.Repository, opts ...Option) *Controller {
	c := &Controller{repo: repo}
	for _, opt := range opts {
		opt(c)
	}
	if c.holder == nil {
		c.holder = NewHolder()
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// Init loads the full list in the background and publishes it. Until then
// observers see an empty list. The channel receives the load result once.
func (c *Controller) Init(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- c.Reload(ctx)
		close(done)
	}()
	return done
}

// Tasks returns the last published list.
func (c *Controller) Tasks() []model.Task { return c.holder.Value() }

// Subscribe observes the published list.
func (c *Controller) Subscribe() *Subscription { return c.holder.Subscribe() }

// Reload reads every task from the repository and publishes the result.
func (c *Controller) Reload(ctx context.Context) error {
	return c.run(ctx, "reload", nil)
}

func (c *Controller) AddTask(ctx context.Context, description string) error {
	return c.run(ctx, "add", func(ctx context.Context) error {
		return c.repo.Insert(ctx, description)
	})
}

// ToggleCompletion stores task with its completion flag negated.
func (c *Controller) ToggleCompletion(ctx context.Context, task model.Task) error {
	return c.run(ctx, "toggle", func(ctx context.Context) error {
		return c.repo.Update(ctx, task.Toggled())
	})
}

// EditTask stores task as given; the caller has already changed its description.
func (c *Controller) EditTask(ctx context.Context, task model.Task) error {
	return c.run(ctx, "edit", func(ctx context.Context) error {
		return c.repo.Update(ctx, task)
	})
}

func (c *Controller) DeleteTask(ctx context.Context, task model.Task) error {
	return c.run(ctx, "delete", func(ctx context.Context) error {
		return c.repo.DeleteByID(ctx, task.ID)
	})
}

// DeleteAllTasks clears the store and publishes the empty list before the
// confirming reload.
func (c *Controller) DeleteAllTasks(ctx context.Context) error {
	return c.run(ctx, "delete all", func(ctx context.Context) error {
		if err := c.repo.DeleteAll(ctx); err != nil {
			return err
		}
		c.holder.Publish(nil)
		return nil
	})
}

// run applies mutate (if any), then reloads and publishes.
func (c *Controller) run(ctx context.Context, op string, mutate func(context.Context) error) error {
	if c.serialize {
		c.opMu.Lock()
		defer c.opMu.Unlock()
	}

	if mutate != nil {
		if err := mutate(ctx); err != nil {
			c.logger.Error("task operation failed", "op", op, "err", err)
			return err
		}
	}
	tasks, err := c.repo.ListAll(ctx)
	if err != nil {
		c.logger.Error("reload failed", "op", op, "err", err)
		return err
	}
	changed := c.holder.Publish(tasks)
	c.logger.Debug("published", "op", op, "tasks", len(tasks), "changed", changed)
	return nil
}
