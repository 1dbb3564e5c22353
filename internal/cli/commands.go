package cli

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/view"
)

// lookup parses a task id argument and finds it in the loaded list.
func (a *app) lookup(verb, arg string) (model.Task, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return model.Task{}, usagef("%s: not a number: %s", verb, arg)
	}
	tasks := a.ctrl.Tasks()
	i := slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == id })
	if i < 0 {
		return model.Task{}, usagef("%s: no task with id %d (have %d tasks)", verb, id, len(tasks))
	}
	return tasks[i], nil
}

// description joins words and rejects blank input; the controller stores
// whatever it is given.
func description(verb string, words []string) (string, error) {
	d := strings.TrimSpace(strings.Join(words, " "))
	if d == "" {
		return "", usagef("%s: empty description", verb)
	}
	return d, nil
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <description...>",
		Short:   "Add a new task (description can be multiple words)",
		Example: `  tada add "Buy milk"`,
		Args:    minArgs(1, "tada add <description...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := description("add", args)
			if err != nil {
				return err
			}
			if err := a.ctrl.AddTask(cmd.Context(), d); err != nil {
				return err
			}
			a.print.OK("added")
			return nil
		},
	}
}

func (a *app) lsCmd() *cobra.Command {
	var (
		completed, pending, group bool
		search, sortName          string
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    exactArgs(0, "tada ls [flags]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := a.cfg.ViewParams()
			if cmd.Flags().Changed("completed") {
				params.ShowCompleted = completed
			}
			if cmd.Flags().Changed("pending") {
				params.ShowPending = pending
			}
			if cmd.Flags().Changed("sort") {
				s, err := model.ParseSortOption(sortName)
				if err != nil {
					return usagef("ls: %v", err)
				}
				params.Sort = s
			}
			params.Query = search

			all := a.ctrl.Tasks()
			shown := view.Project(all, params)

			lines := a.print.Header(all)
			lines = append(lines, "")
			if group {
				lines = append(lines, a.print.GroupLines(shown)...)
			} else {
				lines = append(lines, a.print.TaskLines(shown)...)
			}
			lines = append(lines, "", a.print.C(a.print.Theme.Muted, "Tip: add with `tada add \"Buy milk\"`"))
			a.print.Panel(lines)
			return nil
		},
	}
	f := cmd.Flags()
	f.BoolVar(&completed, "completed", true, "show completed tasks")
	f.BoolVar(&pending, "pending", true, "show pending tasks")
	f.StringVarP(&search, "search", "q", "", "only tasks containing this text (case-insensitive)")
	f.StringVar(&sortName, "sort", "name", "sort by name, status or id")
	f.BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func (a *app) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of a task",
		Args:  exactArgs(1, "tada done <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.lookup("done", args[0])
			if err != nil {
				return err
			}
			if err := a.ctrl.ToggleCompletion(cmd.Context(), task); err != nil {
				return err
			}
			a.print.OK("toggled")
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <description...>",
		Short: "Replace the description of a task",
		Args:  minArgs(2, "tada edit <id> <description...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.lookup("edit", args[0])
			if err != nil {
				return err
			}
			task.Description, err = description("edit", args[1:])
			if err != nil {
				return err
			}
			if err := a.ctrl.EditTask(cmd.Context(), task); err != nil {
				return err
			}
			a.print.OK("edited")
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  exactArgs(1, "tada rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.lookup("rm", args[0])
			if err != nil {
				a.print.Hint("Hint: run `tada ls` to see task ids")
				return err
			}
			if err := a.ctrl.DeleteTask(cmd.Context(), task); err != nil {
				return err
			}
			a.print.OK("removed")
			return nil
		},
	}
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every task",
		Args:  exactArgs(0, "tada clear"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := len(a.ctrl.Tasks())
			if err := a.ctrl.DeleteAllTasks(cmd.Context()); err != nil {
				return err
			}
			a.print.OK(fmt.Sprintf("removed %d tasks", n))
			return nil
		},
	}
}

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive screen",
		Args:  exactArgs(0, "tada tui"),
		RunE:  a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	return tui.Run(cmd.Context(), a.ctrl, a.cfg.ViewParams())
}

func (a *app) configCmd() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	var project, force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Args:        exactArgs(0, "tada config init [--project]"),
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GlobalPath()
			if project {
				path = config.ProjectPath()
			}
			if path == "" {
				return fmt.Errorf("config init: cannot resolve config directory")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return usagef("config init: %s already exists (use --force)", path)
			}
			if err := config.Write(path, config.Default()); err != nil {
				return fmt.Errorf("config init: %w", err)
			}
			a.print.OK("wrote " + path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&project, "project", false, "write ./.tada/config.yaml instead of ~/.tada/config.yaml")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration",
		Args:        exactArgs(0, "tada config show"),
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.cfg
			fmt.Fprintf(a.out, "store.backend: %s\nstore.path: %s\n", c.Store.Backend, c.Store.Path)
			fmt.Fprintf(a.out, "view.show_completed: %t\nview.show_pending: %t\nview.sort: %s\n",
				c.View.ShowCompleted, c.View.ShowPending, c.View.Sort)
			fmt.Fprintf(a.out, "ui.theme: %s\nlog.level: %s\ncontroller.serialize: %t\n",
				c.UI.Theme, c.Log.Level, c.Controller.Serialize)
			return nil
		},
	}

	cfgCmd.AddCommand(initCmd, showCmd)
	return cfgCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Args:        exactArgs(0, "tada version"),
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tada %s\n", Version)
			return nil
		},
	}
}
