package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"varboard/internal/logger"
	"varboard/internal/model"
	"varboard/internal/session"
)

var errUsage = errors.New("usage")

const (
	loginHelp = `commands:
  login                      log in with an existing account
  register                   create an account and log in
  quit`
	dashboardHelp = `commands:
  new                        create a project
  open <id>                  open a project
  reload | logout | quit`
	projectHelp = `commands:
  rename                     rename the project
  delete                     delete the project
  table new
  table rename <table>
  table delete <table>
  var new <table>            add a string variable
  var update <table> <name>  edit a variable's type
  var save <table> <name>    save an edited variable
  var delete <table> <name>
  back | reload | logout | quit`
)

// Shell is the dashboard's event loop. It owns the current location, enters
// the matching page after every navigation and dispatches typed commands to
// that page's controller.
type Shell struct {
	api     API
	session *session.Session
	console *Console
	out     io.Writer
	log     logger.Logger

	auth      *AuthController
	dashboard *DashboardController
	project   *ProjectController

	location string
	entered  bool
}

func NewShell(api API, sess *session.Session, console *Console, out io.Writer, log logger.Logger) *Shell {
	s := &Shell{
		api:     api,
		session: sess,
		console: console,
		out:     out,
		log:     log.WithComponent("view.shell"),
	}
	s.auth = NewAuthController(api, sess, console, s)
	s.dashboard = NewDashboardController(api, console, s, out)
	return s
}

// Navigate switches location; the page is entered before the next command.
func (s *Shell) Navigate(location string) {
	s.location = location
	s.entered = false
}

func (s *Shell) Location() string {
	return s.location
}

// Run starts on the dashboard when a credential is already stored and on
// the login page otherwise. It returns nil when input ends or the user
// quits.
func (s *Shell) Run(ctx context.Context) error {
	if s.location == "" {
		if s.session.Authenticated() {
			s.Navigate(LocationDashboard)
		} else {
			s.Navigate(LocationLogin)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.entered {
			s.entered = true
			if err := s.enter(ctx); err != nil {
				s.warn(err, "load page")
			}
		}

		line, err := s.readCommand(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		quit, err := s.Exec(ctx, line)
		if err != nil {
			s.warn(err, line)
		}
		if quit {
			return nil
		}
	}
}

type readResult struct {
	line string
	err  error
}

// readCommand waits for the next command line or for ctx to end. A line
// that arrives after cancellation is discarded.
func (s *Shell) readCommand(ctx context.Context) (string, error) {
	prompt := s.location + "> "
	done := make(chan readResult, 1)
	go func() {
		line, err := s.console.ReadLine(prompt)
		done <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return res.line, res.err
	}
}

func (s *Shell) warn(err error, action string) {
	if errors.Is(err, errUsage) {
		fmt.Fprintln(s.out, err.Error())
		return
	}
	s.log.WithError(err).WithFields(map[string]interface{}{
		"location": s.location,
		"action":   action,
	}).Warnf("command failed")
}

// enter drops the previous project controller first so that commands at an
// unknown location never reach it.
func (s *Shell) enter(ctx context.Context) error {
	s.project = nil
	switch s.location {
	case LocationLogin:
		fmt.Fprintln(s.out, loginHelp)
		return nil
	case LocationDashboard:
		return s.dashboard.Load(ctx)
	}

	projectID, err := ParseProjectLocation(s.location)
	if err != nil {
		return err
	}
	s.project = NewProjectController(s.api, projectID, s.console, s.console, s, s.out, s.log)
	return s.project.Load(ctx)
}

// Exec runs one command line at the current location.
func (s *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, s.help())
		return false, nil
	case "reload":
		s.Navigate(s.location)
		return false, nil
	case "go":
		if len(fields) != 2 {
			return false, fmt.Errorf("%w: go <location>", errUsage)
		}
		s.Navigate(fields[1])
		return false, nil
	case "logout":
		return false, s.auth.Logout(ctx)
	}

	switch {
	case s.location == LocationLogin:
		return false, s.execLogin(ctx, fields)
	case s.location == LocationDashboard:
		return false, s.execDashboard(ctx, fields)
	case s.project != nil:
		return false, s.execProject(ctx, fields)
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownLocation, s.location)
}

func (s *Shell) help() string {
	switch {
	case s.location == LocationLogin:
		return loginHelp
	case s.location == LocationDashboard:
		return dashboardHelp
	}
	return projectHelp
}

func (s *Shell) execLogin(ctx context.Context, fields []string) error {
	switch fields[0] {
	case "login", "register":
	default:
		return fmt.Errorf("%w: %s", errUsage, loginHelp)
	}

	username, err := s.console.ReadLine("Username: ")
	if err != nil {
		return err
	}
	password, err := s.console.Secret("Password: ")
	if err != nil {
		return err
	}
	username = strings.TrimSpace(username)

	if fields[0] == "register" {
		return s.auth.Register(ctx, username, password)
	}
	return s.auth.Login(ctx, username, password)
}

func (s *Shell) execDashboard(ctx context.Context, fields []string) error {
	switch fields[0] {
	case "new":
		return s.dashboard.CreateProject(ctx)
	case "open":
		if len(fields) != 2 {
			return fmt.Errorf("%w: open <id>", errUsage)
		}
		id, err := parseID(fields[1])
		if err != nil {
			return err
		}
		s.dashboard.OpenProject(id)
		return nil
	}
	return fmt.Errorf("%w: %s", errUsage, dashboardHelp)
}

func (s *Shell) execProject(ctx context.Context, fields []string) error {
	switch fields[0] {
	case "back":
		s.Navigate(LocationDashboard)
		return nil
	case "rename":
		return s.project.Rename(ctx)
	case "delete":
		return s.project.Delete(ctx)
	case "table":
		return s.execTable(ctx, fields[1:])
	case "var":
		return s.execVariable(ctx, fields[1:])
	}
	return fmt.Errorf("%w: %s", errUsage, projectHelp)
}

func (s *Shell) execTable(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "new" {
		return s.project.CreateTable(ctx)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: table new | table rename <table> | table delete <table>", errUsage)
	}
	tableID, err := parseID(args[1])
	if err != nil {
		return err
	}
	switch args[0] {
	case "rename":
		return s.project.RenameTable(ctx, tableID)
	case "delete":
		return s.project.DeleteTable(ctx, tableID)
	}
	return fmt.Errorf("%w: unknown table command %q", errUsage, args[0])
}

func (s *Shell) execVariable(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: var new <table> | var update|save|delete <table> <name>", errUsage)
	}
	tableID, err := parseID(args[1])
	if err != nil {
		return err
	}
	if args[0] == "new" {
		return s.project.NewVariable(ctx, tableID)
	}
	if len(args) < 3 {
		return fmt.Errorf("%w: var %s <table> <name>", errUsage, args[0])
	}
	name := strings.Join(args[2:], " ")

	switch args[0] {
	case "update":
		return s.project.BeginEdit(tableID, name)
	case "delete":
		return s.project.DeleteVariable(ctx, tableID, name)
	case "save":
		return s.saveVariable(ctx, tableID, name)
	}
	return fmt.Errorf("%w: unknown var command %q", errUsage, args[0])
}

// saveVariable fills the edit form of an Editing row. Cancelling either
// field keeps the row in Editing.
func (s *Shell) saveVariable(ctx context.Context, tableID uint, name string) error {
	row := s.project.Row(tableID, name)
	if row == nil || row.State() != Editing {
		return s.project.SaveEdit(ctx, tableID, name, "", "")
	}

	newName, ok := s.console.Prompt("Name:", row.Variable.Name)
	if !ok {
		return nil
	}
	typ, ok := s.console.Prompt("Type ("+typeChoices()+"):", string(row.Variable.Type))
	if !ok {
		return nil
	}
	return s.project.SaveEdit(ctx, tableID, name, newName, typ)
}

func typeChoices() string {
	choices := make([]string, 0, len(model.VariableTypes))
	for _, t := range model.VariableTypes {
		choices = append(choices, string(t))
	}
	return strings.Join(choices, ", ")
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an id", errUsage, raw)
	}
	return uint(id), nil
}
