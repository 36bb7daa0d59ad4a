package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parseWithID accepts the entry id before or after the flags.
func parseWithID(fs *flag.FlagSet, args []string) (uuid.UUID, error) {
	var raw string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		raw, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return uuid.Nil, err
	}
	if raw == "" {
		raw = fs.Arg(0)
	}
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: entry id", ErrMissingArgument)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidEntryID, raw)
	}
	return id, nil
}

func (a *App) secretOrPrompt(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.promptSecret(prompt)
}

// ── account ──────────────────────────────────────────────────────────────────

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.newFlagSet("register")
	username := fs.String("username", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw, err := a.secretOrPrompt(*password, "Password")
	if err != nil {
		return err
	}

	resp, err := a.api.Register(ctx, models.RegisterRequest{Username: *username, Email: *email, Password: pw})
	if err != nil {
		return err
	}
	if err = a.tokens.Save(resp.Token); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "registered %s\n", resp.User.Email)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		var err error
		if *email, err = a.readLine("Email"); err != nil {
			return err
		}
	}
	pw, err := a.secretOrPrompt(*password, "Password")
	if err != nil {
		return err
	}

	resp, err := a.api.Login(ctx, models.LoginRequest{Email: *email, Password: pw})
	if err != nil {
		return err
	}
	if err = a.tokens.Save(resp.Token); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "logged in as %s\n", resp.User.Email)
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	user, err := a.api.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderUser(user))

	// display only; the server already accepted the token above
	if claims, err := utils.ParseUnverifiedClaims(a.api.Token()); err == nil && claims.ExpiresAt != nil {
		fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("session expires"), claims.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

// ── entries ──────────────────────────────────────────────────────────────────

func (a *App) add(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	site := fs.String("site", "", "site name")
	url := fs.String("url", "", "site url")
	username := fs.String("username", "", "login on the site")
	password := fs.String("password", "", "site password (prompted when empty)")
	notes := fs.String("notes", "", "free-form notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw, err := a.secretOrPrompt(*password, "Site password")
	if err != nil {
		return err
	}

	req := models.CreateEntryRequest{
		SiteName: *site,
		Username: *username,
		Password: pw,
	}
	if *url != "" {
		req.SiteURL = url
	}
	if *notes != "" {
		req.Notes = notes
	}

	entry, err := a.api.CreateEntry(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "saved %s\n", entry.ID)
	return nil
}

func (a *App) list(ctx context.Context, _ []string) error {
	list, err := a.api.ListEntries(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, renderEntryTable(list.Entries))
	if warning := renderUndecryptable(list.Undecryptable); warning != "" {
		fmt.Fprintln(a.errOut, warning)
	}
	return nil
}

func (a *App) get(ctx context.Context, args []string) error {
	fs := a.newFlagSet("get")
	reveal := fs.Bool("reveal", false, "print the password")
	copyPassword := fs.Bool("copy", false, "copy the password to the clipboard")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	entry, err := a.api.GetEntry(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, renderEntry(entry, *reveal))

	if *copyPassword {
		if err = a.copyToClipboard(entry.Password); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(a.errOut, "password copied to clipboard")
	}
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := a.newFlagSet("update")
	fs.String("site", "", "new site name")
	fs.String("url", "", "new site url (empty clears it)")
	fs.String("username", "", "new login on the site")
	fs.String("password", "", "new site password")
	fs.String("notes", "", "new notes (empty clears them)")
	promptPassword := fs.Bool("prompt-password", false, "prompt for the new password")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	// Only flags given on the command line are sent, so "-url=" clears the
	// url while omitting -url keeps it.
	var req models.UpdateEntryRequest
	fields := map[string]**string{
		"site":     &req.SiteName,
		"url":      &req.SiteURL,
		"username": &req.Username,
		"password": &req.Password,
		"notes":    &req.Notes,
	}
	fs.Visit(func(f *flag.Flag) {
		if dst, ok := fields[f.Name]; ok {
			v := f.Value.String()
			*dst = &v
		}
	})

	if *promptPassword {
		pw, err := a.promptSecret("New site password")
		if err != nil {
			return err
		}
		req.Password = &pw
	}

	if req == (models.UpdateEntryRequest{}) {
		return ErrNothingToUpdate
	}

	entry, err := a.api.UpdateEntry(ctx, id, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "updated %s\n", entry.ID)
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	id, err := parseWithID(a.newFlagSet("delete"), args)
	if err != nil {
		return err
	}

	if err = a.api.DeleteEntry(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "deleted %s\n", id)
	return nil
}

// ── server ───────────────────────────────────────────────────────────────────

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.api.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, v)
	return nil
}

func (a *App) health(ctx context.Context, _ []string) error {
	h, err := a.api.Health(ctx)
	printHealth(a.out, h)
	return err
}

func printHealth(w io.Writer, h models.HealthResponse) {
	if h.Status == "" {
		return
	}
	fmt.Fprintf(w, "status: %s\ndatabase: %s\n", h.Status, h.Database)
}
