package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"
)

// ListTasks prints the tasks of one list: "tasks <todo> [search]".
func (a *App) ListTasks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	p, err := a.todoService.ListTasks(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	if len(p.Data) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDESCRIPTION\tDUE\tSTATUS\tCODE\tID")
	for i, t := range p.Data {
		code := "-"
		if t.Code != nil {
			code = *t.Code
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, t.Description,
			t.DueDate.Local().Format(localLayout), t.Status, code, t.ID)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if p.Pagination.Total > len(p.Data) {
		fmt.Fprintf(a.out, "(%d of %d shown)\n", len(p.Data), p.Pagination.Total)
	}
	return nil
}

// Task handles "task add|done|rm".
func (a *App) Task(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}

	switch args[0] {
	case "add":
		return a.addTask(ctx, args[1])

	case "done":
		t, err := a.todoService.CompleteTask(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Completed %q\n", t.Description)

	case "rm":
		if err := a.todoService.DeleteTask(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Deleted")

	default:
		return errUsage
	}
	return nil
}

func (a *App) addTask(ctx context.Context, todoRef string) error {
	description, err := getSimpleText(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	rawDue, err := getSimpleText(a.reader, "Enter due date (YYYY-MM-DD HH:MM, RFC 3339 or +2h/+3d)", a.out)
	if err != nil {
		return err
	}
	due, err := parseDueDate(rawDue, a.now(), time.Local)
	if err != nil {
		return err
	}

	t, err := a.todoService.CreateTask(ctx, todoRef, description, due)
	if err != nil {
		return err
	}
	code := "-"
	if t.Code != nil {
		code = *t.Code
	}
	fmt.Fprintf(a.out, "Added %q due %s [%s]\n", t.Description, t.DueDate.Local().Format(localLayout), code)
	return nil
}
