package client

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-todo-keeper/internal/adapter"
	"github.com/MKhiriev/go-todo-keeper/internal/logger"
	"github.com/MKhiriev/go-todo-keeper/internal/tui"
	"github.com/MKhiriev/go-todo-keeper/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type App struct {
	server   adapter.ServerAdapter
	out      io.Writer
	commands map[string]command

	logger *logger.Logger
}

func NewApp(server adapter.ServerAdapter, out io.Writer, logger *logger.Logger) *App {
	a := &App{server: server, out: out, logger: logger}
	a.commands = map[string]command{
		"register":        {usage: "-email E -password P -first-name F -last-name L", run: a.register},
		"login":           {usage: "-email E -password P", run: a.login},
		"me":              {usage: "", run: a.me},
		"change-password": {usage: "-current C -new N", run: a.changePassword},
		"add":             {usage: "-description D [-due RFC3339] [-priority P]", run: a.add},
		"list":            {usage: "[-completed true|false]", run: a.list},
		"get":             {usage: "<id>", run: a.get},
		"update":          {usage: "<id> -description D [-due RFC3339] [-priority P]", run: a.update},
		"complete":        {usage: "<id>", run: a.complete},
		"delete":          {usage: "<id>", run: a.delete},
		"browse":          {usage: "", run: a.browse},
		"version":         {usage: "", run: a.version},
	}
	return a
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return fmt.Errorf("%w: no command given", ErrMissingArgument)
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("command", args[0]).Msg("running command")
	return cmd.run(ctx, args[1:])
}

func (a *App) printUsage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage: todo-client [-address A] [-token T] <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-16s %s\n", name, a.commands[name].usage)
	}
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// todoIDArg splits "<id> [flags]" into the id and the remaining flags.
func todoIDArg(args []string) (uuid.UUID, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return uuid.Nil, nil, fmt.Errorf("%w: todo id", ErrMissingArgument)
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid todo id %q: %w", args[0], err)
	}
	return id, args[1:], nil
}

func (a *App) register(ctx context.Context, args []string) error {
	var req models.RegisterUserRequest
	fs := newFlagSet("register", a.out)
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.server.Register(ctx, req)
	if err != nil {
		return err
	}
	return a.printJSON(user)
}

// login prints only the token so that it can be captured into TODO_TOKEN.
func (a *App) login(ctx context.Context, args []string) error {
	var email, password string
	fs := newFlagSet("login", a.out)
	fs.StringVar(&email, "email", "", "account email")
	fs.StringVar(&password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	token, err := a.server.Login(ctx, email, password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, token.AccessToken)
	return err
}

func (a *App) me(ctx context.Context, _ []string) error {
	user, err := a.server.Me(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(user)
}

func (a *App) changePassword(ctx context.Context, args []string) error {
	var change models.PasswordChange
	fs := newFlagSet("change-password", a.out)
	fs.StringVar(&change.CurrentPassword, "current", "", "current password")
	fs.StringVar(&change.NewPassword, "new", "", "new password")
	fs.StringVar(&change.NewPasswordConfirm, "confirm", "", "new password again (defaults to -new)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if change.NewPasswordConfirm == "" {
		change.NewPasswordConfirm = change.NewPassword
	}

	if err := a.server.ChangePassword(ctx, change); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.out, "password changed")
	return err
}

// parseTodoFlags reads the todo body flags shared by add and update.
func parseTodoFlags(name string, out io.Writer, args []string) (models.TodoCreate, error) {
	var (
		req      models.TodoCreate
		due      string
		priority string
	)
	fs := newFlagSet(name, out)
	fs.StringVar(&req.Description, "description", "", "todo description")
	fs.StringVar(&due, "due", "", "due date, RFC 3339")
	fs.StringVar(&priority, "priority", "", "Normal, Low, Medium, High or Top")
	if err := fs.Parse(args); err != nil {
		return models.TodoCreate{}, err
	}

	if due != "" {
		dueDate, err := time.Parse(time.RFC3339, due)
		if err != nil {
			return models.TodoCreate{}, fmt.Errorf("invalid -due %q: %w", due, err)
		}
		req.DueDate = &dueDate
	}
	req.Priority = models.Priority(priority)

	return req, nil
}

func (a *App) add(ctx context.Context, args []string) error {
	req, err := parseTodoFlags("add", a.out, args)
	if err != nil {
		return err
	}

	todo, err := a.server.CreateTodo(ctx, req)
	if err != nil {
		return err
	}
	return a.printJSON(todo)
}

func (a *App) list(ctx context.Context, args []string) error {
	var completed string
	fs := newFlagSet("list", a.out)
	fs.StringVar(&completed, "completed", "", "only completed (true) or open (false) todos")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var filter *bool
	switch completed {
	case "":
	case "true", "false":
		v := completed == "true"
		filter = &v
	default:
		return fmt.Errorf("invalid -completed %q: want true or false", completed)
	}

	todos, err := a.server.ListTodos(ctx, filter)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tDUE\tDESCRIPTION")
	for _, todo := range todos {
		due := "-"
		if todo.DueDate != nil {
			due = todo.DueDate.Format(time.RFC3339)
		}
		done := " "
		if todo.IsCompleted {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", todo.ID, done, todo.Priority, due, todo.Description)
	}
	return tw.Flush()
}

func (a *App) get(ctx context.Context, args []string) error {
	id, _, err := todoIDArg(args)
	if err != nil {
		return err
	}

	todo, err := a.server.GetTodo(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(todo)
}

func (a *App) update(ctx context.Context, args []string) error {
	id, rest, err := todoIDArg(args)
	if err != nil {
		return err
	}
	req, err := parseTodoFlags("update", a.out, rest)
	if err != nil {
		return err
	}

	todo, err := a.server.UpdateTodo(ctx, id, req)
	if err != nil {
		return err
	}
	return a.printJSON(todo)
}

func (a *App) complete(ctx context.Context, args []string) error {
	id, _, err := todoIDArg(args)
	if err != nil {
		return err
	}

	todo, err := a.server.CompleteTodo(ctx, id)
	if err != nil {
		return err
	}
	return a.printJSON(todo)
}

func (a *App) delete(ctx context.Context, args []string) error {
	id, _, err := todoIDArg(args)
	if err != nil {
		return err
	}

	if err = a.server.DeleteTodo(ctx, id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "todo %s deleted\n", id)
	return err
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.server.Version(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, v)
	return err
}

// browse opens the interactive todo browser.
func (a *App) browse(ctx context.Context, _ []string) error {
	if a.server.Token() == "" {
		return adapter.ErrNoToken
	}
	return tui.Browse(ctx, a.server)
}
