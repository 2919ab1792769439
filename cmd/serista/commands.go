// Copyright (c) 2026 Serista. All rights reserved.
// Author: hello@serista.app

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/serista/serista/internal/core/account"
	"github.com/serista/serista/internal/core/series"
	"github.com/serista/serista/internal/platform/apperr"
	"github.com/serista/serista/internal/platform/busy"
	"github.com/serista/serista/pkg/pointer"
)

const usage = `serista — track your TV series watch progress

Usage: serista <command> [flags]

Account:
  register   -name -email -password     create an account
  login      -email -password           authenticate and store the session
  logout                                end the session
  whoami                                show the authenticated profile

Series:
  list   [-title] [-status] [-min-rating] [-max-rating] [-local]
  add    -title [-rating] -seasons -episodes [-watched] [-status]
  get    <id>
  set    <id> -title [-rating] -seasons -episodes [-watched] [-status]
  edit   <id> [-title] [-rating] [-seasons] [-episodes] [-watched] [-status]
  rm     <id>
`

// app holds the wired collaborators the subcommands operate on.
type app struct {
	session *account.Session
	series  *series.Client
	busy    *busy.Indicator
	out     io.Writer
}

// run dispatches one subcommand. Commands that operate on the account's
// data first resume any persisted session, mirroring how the web client
// restores its auth state on page load.
func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	command, rest := args[0], args[1:]
	switch command {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.session.Logout(ctx)
	case "whoami":
		return a.authenticated(ctx, func(ctx context.Context) error { return a.whoami() })
	case "list":
		return a.authenticated(ctx, func(ctx context.Context) error { return a.list(ctx, rest) })
	case "add":
		return a.authenticated(ctx, func(ctx context.Context) error { return a.add(ctx, rest) })
	case "get":
		return a.authenticated(ctx, func(ctx context.Context) error { return a.get(ctx, rest) })
	case "set":
		return a.authenticated(ctx, func(ctx context.Context) error { return a.replace(ctx, rest) })
	case "edit":
		return a.authenticated(ctx, func(ctx context.Context) error { return a.edit(ctx, rest) })
	case "rm":
		return a.authenticated(ctx, func(ctx context.Context) error { return a.remove(ctx, rest) })
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q (run 'serista help')", command)
	}
}

// authenticated resumes the persisted session before running fn.
func (a *app) authenticated(ctx context.Context, fn func(context.Context) error) error {
	if err := a.session.Resume(ctx); err != nil {
		return err
	}
	return fn(ctx)
}

func (a *app) register(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("register", flag.ContinueOnError)
	name := flags.String("name", "", "display name")
	email := flags.String("email", "", "email address")
	password := flags.String("password", "", "password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	err := a.session.Register(ctx, account.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "account created — run 'serista login' to sign in")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("login", flag.ContinueOnError)
	email := flags.String("email", "", "email address")
	password := flags.String("password", "", "password")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := a.session.Login(ctx, *email, *password); err != nil {
		return err
	}
	user := a.session.User()
	fmt.Fprintf(a.out, "logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) whoami() error {
	user := a.session.User()
	if user == nil {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	title := flags.String("title", "", "title substring")
	status := flags.String("status", "", "planned, watching, or completed")
	minRating := flags.Int("min-rating", -1, "minimum rating (0-10)")
	maxRating := flags.Int("max-rating", -1, "maximum rating (0-10)")
	local := flags.Bool("local", false, "fetch everything and filter locally")
	if err := flags.Parse(args); err != nil {
		return err
	}

	filter := series.Filter{Title: *title, Status: series.Status(*status)}
	if *minRating >= 0 {
		filter.MinRating = pointer.To(*minRating)
	}
	if *maxRating >= 0 {
		filter.MaxRating = pointer.To(*maxRating)
	}

	var list []series.Series
	var err error
	if *local {
		// Dashboard-style: one full fetch, then filter the transient copy.
		list, err = a.series.List(ctx, series.Filter{})
		if err == nil {
			list = series.Apply(list, filter)
		}
	} else {
		list, err = a.series.List(ctx, filter)
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "no series found")
		return nil
	}
	for _, s := range list {
		a.printSeries(s)
	}
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	record, _, err := seriesFlags("add", args)
	if err != nil {
		return err
	}

	stored, err := a.series.Create(ctx, *record)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %s\n", stored.ID)
	return nil
}

func (a *app) get(ctx context.Context, args []string) error {
	id, err := requireArg(args, "get")
	if err != nil {
		return err
	}
	stored, err := a.series.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printSeries(*stored)
	return nil
}

func (a *app) replace(ctx context.Context, args []string) error {
	id, err := requireArg(args, "set")
	if err != nil {
		return err
	}
	record, _, err := seriesFlags("set", args[1:])
	if err != nil {
		return err
	}

	stored, err := a.series.Replace(ctx, id, *record)
	if err != nil {
		return err
	}
	a.printSeries(*stored)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	id, err := requireArg(args, "edit")
	if err != nil {
		return err
	}
	record, set, err := seriesFlags("edit", args[1:])
	if err != nil {
		return err
	}

	// Only flags the user actually passed become part of the patch.
	patch := series.Patch{}
	if set["title"] {
		patch.Title = pointer.To(record.Title)
	}
	if set["rating"] {
		patch.Rating = pointer.To(record.Rating)
	}
	if set["seasons"] {
		patch.TotalSeasons = pointer.To(record.TotalSeasons)
	}
	if set["episodes"] {
		patch.TotalEpisodes = pointer.To(record.TotalEpisodes)
	}
	if set["watched"] {
		patch.WatchedEpisodes = pointer.To(record.WatchedEpisodes)
	}
	if set["status"] {
		patch.Status = pointer.To(record.Status)
	}

	stored, err := a.series.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	a.printSeries(*stored)
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	id, err := requireArg(args, "rm")
	if err != nil {
		return err
	}
	if err := a.series.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "removed %s\n", id)
	return nil
}

func (a *app) printSeries(s series.Series) {
	fmt.Fprintf(a.out, "%-26s %-42s %2d/10  %dx%d  %3d watched  %s\n",
		s.ID, s.Title, s.Rating, s.TotalSeasons, s.TotalEpisodes, s.WatchedEpisodes, s.Status)
}

// seriesFlags parses the shared record flags and reports which were set.
func seriesFlags(name string, args []string) (*series.Series, map[string]bool, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	title := flags.String("title", "", "series title")
	rating := flags.Int("rating", 0, "rating (0-10)")
	seasons := flags.Int("seasons", 1, "total seasons")
	episodes := flags.Int("episodes", 1, "total episodes")
	watched := flags.Int("watched", 0, "episodes watched")
	status := flags.String("status", string(series.StatusPlanned), "planned, watching, or completed")
	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}

	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	return &series.Series{
		Title:           *title,
		Rating:          *rating,
		TotalSeasons:    *seasons,
		TotalEpisodes:   *episodes,
		WatchedEpisodes: *watched,
		Status:          series.Status(*status),
	}, set, nil
}

func requireArg(args []string, command string) (string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", fmt.Errorf("%s: a series id is required", command)
	}
	return args[0], nil
}

// renderError turns the apperr taxonomy into one line for the terminal.
// The view layer is the only place failures are presented to the user.
func renderError(err error) string {
	ae := apperr.As(err)
	if ae == nil {
		return "error: " + err.Error()
	}

	switch ae.Code {
	case apperr.CodeValidation:
		lines := []string{"invalid input:"}
		for _, detail := range ae.Details {
			lines = append(lines, fmt.Sprintf("  %s: %s", detail.Field, detail.Message))
		}
		if len(ae.Details) == 0 {
			lines = []string{"invalid input: " + ae.Message}
		}
		return strings.Join(lines, "\n")
	case apperr.CodeTokenExpired:
		return "session expired — please log in again"
	case apperr.CodeNetwork:
		return "could not reach the server: " + ae.Message
	default:
		return fmt.Sprintf("server error (%d): %s", ae.HTTPStatus, ae.Message)
	}
}
