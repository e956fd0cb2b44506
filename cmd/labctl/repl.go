package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iliyamo/lab-desk/internal/config"
	"github.com/iliyamo/lab-desk/internal/labapi"
	"github.com/iliyamo/lab-desk/internal/screen"
)

const helpText = `Commands:
  open <view>        open a view (login, menu, catalog-types, order-events,
                     admin, admin-tests, admin-orders, admin-shows,
                     admin-reservations, public-orders, public-reservations)
  refresh            reload the current view
  set <field>=<val>  fill a form field
  submit             create, or update when editing
  edit <id>          load a row into the form
  delete <id>        delete a row
  clear              reset the form
  back               return to the previous view
  logout             sign out and return to login
  help               show this text
  quit               exit
`

type repl struct {
	client  *labapi.Client
	nav     *screen.Navigator
	email   string
	timeout time.Duration
	out     io.Writer
	st      styles
	current screen.Screen
}

func newREPL(client *labapi.Client, cfg config.ClientConfig, out io.Writer) *repl {
	return &repl{
		client:  client,
		nav:     screen.NewNavigator(client),
		email:   cfg.Email,
		timeout: cfg.Timeout,
		out:     out,
		st:      newStyles(cfg.Color),
	}
}

func (r *repl) run(in io.Reader) error {
	fmt.Fprintf(r.out, "labctl connected to %s. Type help for commands.\n", r.client.BaseURL())
	r.mount()
	r.render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(r.out, "%s> ", r.nav.Current())
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := r.execute(line); quit {
			return nil
		}
	}
}

// execute runs one command line.  It reports whether the user asked to
// quit.  Failures are printed and never end the session.
func (r *repl) execute(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var err error
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(r.out, helpText)
		return false
	case "open", "go":
		err = r.open(ctx, arg)
	case "refresh":
		err = r.current.Load(ctx)
	case "set":
		err = r.set(arg)
	case "submit":
		err = r.submit(ctx)
	case "edit":
		err = r.edit(arg)
	case "delete":
		err = r.delete(ctx, arg)
	case "clear":
		err = r.clear()
	case "back":
		if _, ok := r.nav.Back(); ok {
			r.mountAndLoad(ctx)
		}
	case "logout":
		_ = r.nav.Logout(ctx)
		r.mountAndLoad(ctx)
	default:
		err = fmt.Errorf("unknown command %q, try help", cmd)
	}
	if err != nil {
		fmt.Fprintln(r.out, r.st.err.Render("✗ "+err.Error()))
		return false
	}

	// A login moves the navigator on its own.
	if r.nav.Current() != r.current.View() {
		r.mountAndLoad(ctx)
	}
	r.render()
	return false
}

func (r *repl) mount() {
	s, err := screen.Mount(r.nav.Current(), r.client, r.nav, r.email)
	if err != nil {
		r.nav.Reset(screen.ViewLogin)
		s, _ = screen.Mount(screen.ViewLogin, r.client, r.nav, r.email)
	}
	r.current = s
}

func (r *repl) mountAndLoad(ctx context.Context) {
	r.mount()
	_ = r.current.Load(ctx)
}

func (r *repl) render() {
	renderScreen(r.out, r.st, r.current, r.client.Session())
}

func (r *repl) open(ctx context.Context, name string) error {
	v, err := screen.ParseView(name)
	if err != nil {
		return fmt.Errorf("%w %q", err, name)
	}
	if err := r.nav.Push(v); err != nil {
		return err
	}
	r.mountAndLoad(ctx)
	return nil
}

var errNoForm = errors.New("this view has no form")

func (r *repl) creator() (screen.Creator, error) {
	c, ok := r.current.(screen.Creator)
	if !ok {
		return nil, errNoForm
	}
	return c, nil
}

func (r *repl) set(arg string) error {
	c, err := r.creator()
	if err != nil {
		return err
	}
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		return errors.New("usage: set <field>=<value>")
	}
	return c.Set(strings.TrimSpace(name), value)
}

func (r *repl) submit(ctx context.Context) error {
	c, err := r.creator()
	if err != nil {
		return err
	}
	return c.Submit(ctx)
}

func (r *repl) clear() error {
	c, err := r.creator()
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}

func (r *repl) edit(id string) error {
	e, ok := r.current.(screen.Editor)
	if !ok {
		return errors.New("rows of this view cannot be edited")
	}
	if id == "" {
		return errors.New("usage: edit <id>")
	}
	return e.Edit(id)
}

func (r *repl) delete(ctx context.Context, id string) error {
	d, ok := r.current.(screen.Deleter)
	if !ok {
		return errors.New("rows of this view cannot be deleted")
	}
	if id == "" {
		return errors.New("usage: delete <id>")
	}
	return d.Delete(ctx, id)
}
