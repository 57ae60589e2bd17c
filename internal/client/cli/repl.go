package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ListTodos(ctx context.Context, args []string) error
	Todo(ctx context.Context, args []string) error
	ListTasks(ctx context.Context, args []string) error
	Task(ctx context.Context, args []string) error
}

const (
	guestHelp = "Available commands: signup, login, help, exit"
	userHelp  = `Available commands:
  todos [search]               list your todo lists
  todo add <name>              create a list
  todo rename <todo> <name>    rename a list
  todo rm <todo>               delete a list
  tasks <todo> [search]        list tasks of a list
  task add <todo>              add a task (prompts for details)
  task done <task>             mark a task completed
  task rm <task>               delete a task
  logout, help, exit
<todo> and <task> are ids or numbers from the last listing.`
)

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. A failing command prints its error and the loop
// goes on. After an authentication failure the session is gone on the
// server, so the user is told to log in again.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tk (%s) > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		cmd, args := parts[0], parts[1:]
		var cmdErr error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "signup":
			cmdErr = a.Signup(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "logout", "todos", "todo", "tasks", "task":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				break
			}
			switch cmd {
			case "logout":
				cmdErr = a.Logout(ctx)
			case "todos":
				cmdErr = a.ListTodos(ctx, args)
			case "todo":
				cmdErr = a.Todo(ctx, args)
			case "tasks":
				cmdErr = a.ListTasks(ctx, args)
			case "task":
				cmdErr = a.Task(ctx, args)
			}

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
			if errors.Is(cmdErr, client.ErrUnauthorized) && a.isLoggedIn() {
				printlnFn("Your session is no longer valid; log in again")
			}
		}

		if err != nil {
			return
		}
	}
}
