// Package cli is the interactive terminal front end of the booking client.
package cli

import (
	"autoDetailing/internal/client/app"
	"autoDetailing/internal/lib/logger/sl"
	"autoDetailing/internal/models"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const helpText = `Commands:
  help                  show this list
  home | dashboard      switch page
  services              show services and pricing
  login                 sign in
  register              create an account
  jobs                  reload the jobs list
  book                  fill in and submit the booking form
  close                 discard the booking form
  export [file]         save all jobs as xlsx (admin)
  logout                sign out
  exit | quit           leave`

var errProfileRequired = errors.New("name and address are required")

type Catalog interface {
	Services(ctx context.Context) ([]models.ServiceInfo, error)
}

type Exporter interface {
	Export(ctx context.Context, w io.Writer) error
}

type CLI struct {
	log      *slog.Logger
	app      *app.App
	catalog  Catalog
	exporter Exporter

	reader       *bufio.Reader
	out          io.Writer
	readPassword func(prompt string) (string, error)
}

func New(log *slog.Logger, a *app.App, catalog Catalog, exporter Exporter, in io.Reader, out io.Writer) *CLI {
	r := bufio.NewReader(in)

	return &CLI{
		log:          log.With(slog.String("component", "cli")),
		app:          a,
		catalog:      catalog,
		exporter:     exporter,
		reader:       r,
		out:          out,
		readPassword: passwordReader(in, r, out),
	}
}

// Run reads commands until EOF, exit or ctx is done. The current page is
// rendered after every command.
func (c *CLI) Run(ctx context.Context) error {
	renderPage(c.out, c.app)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := readLine(c.reader, c.out, fmt.Sprintf("\ndetailing [%s]> ", c.app.Router.Current()))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		quit, err := c.dispatch(ctx, parts[0], parts[1:])
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
		}
		if quit {
			fmt.Fprintln(c.out, "Bye!")
			return nil
		}

		c.app.Jobs.Wait()
		renderPage(c.out, c.app)
	}
}

func (c *CLI) dispatch(ctx context.Context, cmd string, args []string) (bool, error) {
	switch cmd {
	case "help":
		fmt.Fprintln(c.out, helpText)
	case "home", "dashboard":
		p, _ := app.ParsePage(cmd)
		c.app.Router.Navigate(p)
	case "services":
		return false, c.services(ctx)
	case "login":
		return false, c.login(ctx)
	case "register":
		return false, c.register(ctx)
	case "jobs":
		c.app.Jobs.Refresh(ctx)
	case "book":
		return false, c.book(ctx)
	case "close":
		c.app.Form.Close()
	case "export":
		return false, c.export(ctx, args)
	case "logout":
		c.app.Session.Logout(ctx)
	case "exit", "quit":
		return true, nil
	default:
		fmt.Fprintln(c.out, "Unknown command:", cmd)
	}

	return false, nil
}

func (c *CLI) services(ctx context.Context) error {
	services, err := c.catalog.Services(ctx)
	if err != nil {
		c.log.Warn("failed to fetch catalog, showing built-in list", sl.Err(err))
		services = models.Catalog
	}

	fmt.Fprintln(c.out, "Our Pricing")
	renderServices(c.out, services)

	return nil
}

// login and register report failures through alerts, so their errors are
// not printed a second time.
func (c *CLI) login(ctx context.Context) error {
	c.app.Router.Navigate(app.PageLogin)

	email, err := readLine(c.reader, c.out, "Email: ")
	if err != nil {
		return err
	}
	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	_ = c.app.Session.Login(ctx, email, password)

	return nil
}

func (c *CLI) register(ctx context.Context) error {
	c.app.Router.Navigate(app.PageRegister)

	name, err := readLine(c.reader, c.out, "Name: ")
	if err != nil {
		return err
	}
	email, err := readLine(c.reader, c.out, "Email: ")
	if err != nil {
		return err
	}
	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}
	address, err := readLine(c.reader, c.out, "Address: ")
	if err != nil {
		return err
	}

	if name == "" || address == "" {
		return errProfileRequired
	}

	_ = c.app.Session.Register(ctx, name, email, password, address)

	return nil
}

// book walks the form fields. An empty answer keeps the current value, so
// a failed submission can be retried without retyping everything.
func (c *CLI) book(ctx context.Context) error {
	c.app.Form.Open()

	draft := c.app.Form.Draft()
	for _, field := range models.DraftFields {
		if field == models.FieldService {
			c.printServiceChoices()
		}

		prompt := fieldLabel(field)
		if cur := draft.Get(field); cur != "" {
			prompt += " [" + cur + "]"
		}

		v, err := readLine(c.reader, c.out, prompt+": ")
		if err != nil {
			return err
		}
		if v == "" {
			continue
		}

		if field == models.FieldService {
			v = resolveService(v)
		}

		if err = c.app.Form.UpdateField(field, v); err != nil {
			return err
		}
	}

	err := c.app.SubmitBooking(ctx)

	var submitErr *app.SubmitError
	if errors.As(err, &submitErr) {
		return nil
	}

	return err
}

func (c *CLI) printServiceChoices() {
	for i, s := range models.Catalog {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, s.Label())
	}
}

func (c *CLI) export(ctx context.Context, args []string) error {
	path := "jobs.xlsx"
	if len(args) > 0 {
		path = args[0]
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = c.exporter.Export(ctx, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Saved", path)

	return nil
}

// resolveService accepts a 1-based catalog number as well as a name.
func resolveService(v string) string {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > len(models.Catalog) {
		return v
	}

	return string(models.Catalog[n-1].Name)
}

func fieldLabel(field string) string {
	switch field {
	case models.FieldDate:
		return "Date (YYYY-MM-DD)"
	case models.FieldService:
		return "Service"
	}

	return strings.ToUpper(field[:1]) + field[1:]
}
