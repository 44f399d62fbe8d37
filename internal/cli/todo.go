package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todochat/internal/form"
	"github.com/idilsaglam/todochat/internal/model"
	"github.com/idilsaglam/todochat/internal/store"
	"github.com/idilsaglam/todochat/internal/ui"
)

func newTodoCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo list",
		Example: `  todochat todo add "Buy milk"
  todochat todo ls --filter uncompleted
  todochat todo done 1718000000000
  todochat todo rm 1718000000000`,
	}
	cmd.AddCommand(newTodoAddCmd(o), newTodoListCmd(o), newTodoDoneCmd(o), newTodoRemoveCmd(o))
	return cmd
}

func newTodoAddCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new item (text can be multiple words)",
		Args:  minArgs(1, "<text...>"),
		RunE: o.withApp(func(a *App, cmd *cobra.Command, args []string) error {
			text, err := form.TodoText(strings.Join(args, " "))
			if err != nil {
				return usagef("add: %v", err)
			}
			a.Store.Dispatch(store.AddTodo{Text: text})
			todos := a.Store.Snapshot().Todos.Todos
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %d", todos[len(todos)-1].ID))
			return nil
		}),
	}
}

func newTodoListCmd(o *rootOptions) *cobra.Command {
	var (
		filterFlag string
		group      bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    exactArgs(0, ""),
		RunE: o.withApp(func(a *App, cmd *cobra.Command, args []string) error {
			filter := a.Bridge.LoadFilter()
			if cmd.Flags().Changed("filter") {
				f, err := model.ParseFilter(filterFlag)
				if err != nil {
					return usagef("ls: %v", err)
				}
				filter = f
				if err := a.Bridge.SaveFilter(f); err != nil {
					return fmt.Errorf("save filter: %w", err)
				}
			}

			st := a.Store.Snapshot().Todos
			items := store.FilteredTodos(st, filter)

			lines := ui.TodoHeader(store.Stats(st), filter)
			lines = append(lines, "")
			if group || a.Config.UI.Group {
				lines = append(lines, ui.GroupedTodoLines(items)...)
			} else {
				lines = append(lines, ui.TodoLines(items)...)
			}
			lines = append(lines, "")
			lines = append(lines, ui.C(ui.Current().Muted, "Tip: add with `todochat todo add \"Buy milk\"`"))
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "Show all, uncompleted or completed items (remembered)")
	cmd.Flags().BoolVarP(&group, "group", "g", false, "Group output by pending/done")
	return cmd
}

func newTodoDoneCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of an item",
		Args:  exactArgs(1, "<id>"),
		RunE: o.withApp(func(a *App, cmd *cobra.Command, args []string) error {
			id, err := parseID("done", args[0])
			if err != nil {
				return err
			}
			item, ok := findTodo(a.Store, id)
			if !ok {
				return usagef("done: no item with id %d", id)
			}
			item = item.Toggled()
			a.Store.Dispatch(store.UpdateTodo{Item: item})
			state := "pending"
			if item.Completed {
				state = "done"
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%d marked %s", id, state))
			return nil
		}),
	}
}

func newTodoRemoveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an item",
		Args:  exactArgs(1, "<id>"),
		RunE: o.withApp(func(a *App, cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			if a.Store.Dispatch(store.RemoveTodo{ID: id}) == store.Ignored {
				return usagef("rm: no item with id %d", id)
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %d", id))
			return nil
		}),
	}
}

func parseID(verb, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, usagef("%s: not a number: %s", verb, s)
	}
	return id, nil
}

func findTodo(s *store.Store, id int64) (model.TodoItem, bool) {
	for _, t := range s.Snapshot().Todos.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.TodoItem{}, false
}
