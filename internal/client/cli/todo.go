package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
)

var errUsage = errors.New("wrong arguments, see 'help'")

// ListTodos prints the user's lists, optionally filtered by args.
func (a *App) ListTodos(ctx context.Context, args []string) error {
	p, err := a.todoService.ListTodos(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(p.Data) == 0 {
		fmt.Fprintln(a.out, "No todo lists")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tID")
	for i, t := range p.Data {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, t.Name, t.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if p.Pagination.Total > len(p.Data) {
		fmt.Fprintf(a.out, "(%d of %d shown)\n", len(p.Data), p.Pagination.Total)
	}
	return nil
}

// Todo handles "todo add|rename|rm".
func (a *App) Todo(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return errUsage
		}
		t, err := a.todoService.CreateTodo(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created %q (%s)\n", t.Name, t.ID)

	case "rename":
		if len(args) < 3 {
			return errUsage
		}
		t, err := a.todoService.RenameTodo(ctx, args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Renamed to %q\n", t.Name)

	case "rm":
		if len(args) != 2 {
			return errUsage
		}
		if err := a.todoService.DeleteTodo(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Deleted")

	default:
		return errUsage
	}
	return nil
}
