package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

type command struct {
	usage string
	// auth commands load the saved token before running.
	auth bool
	run  func(ctx context.Context, args []string) error
}

// App runs one client subcommand per invocation.
type App struct {
	api    adapter.VaultClient
	tokens *TokenStore

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	readSecret      func() ([]byte, error)
	copyToClipboard func(string) error

	logger *logger.Logger
}

func NewApp(api adapter.VaultClient, cfg *config.ClientConfig, logger *logger.Logger) *App {
	in := bufio.NewReader(os.Stdin)

	return &App{
		api:             api,
		tokens:          NewTokenStore(cfg.TokenFile),
		in:              in,
		out:             os.Stdout,
		errOut:          os.Stderr,
		readSecret:      terminalSecretReader(in),
		copyToClipboard: clipboard.WriteAll,
		logger:          logger,
	}
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"register": {usage: "register -username NAME -email EMAIL [-password PW]", run: a.register},
		"login":    {usage: "login -email EMAIL [-password PW]", run: a.login},
		"logout":   {usage: "logout", run: a.logout},
		"whoami":   {usage: "whoami", auth: true, run: a.whoami},
		"add":      {usage: "add -site NAME -username USER [-url URL] [-notes TEXT] [-password PW]", auth: true, run: a.add},
		"list":     {usage: "list", auth: true, run: a.list},
		"get":      {usage: "get ID [-reveal] [-copy]", auth: true, run: a.get},
		"update":   {usage: "update ID [-site NAME] [-url URL] [-username USER] [-notes TEXT] [-password PW | -prompt-password]", auth: true, run: a.update},
		"delete":   {usage: "delete ID", auth: true, run: a.delete},
		"version":  {usage: "version", run: a.version},
		"health":   {usage: "health", run: a.health},
	}
}

// Run executes the subcommand named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	commands := a.commands()

	if len(args) == 0 {
		a.usage(commands)
		return fmt.Errorf("%w: command", ErrMissingArgument)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.usage(commands)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	if cmd.auth {
		token, err := a.tokens.Load()
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("%w: run \"login\" first", adapter.ErrNotLoggedIn)
		}
		a.api.SetToken(token)
	}

	err := cmd.run(ctx, args[1:])
	if cmd.auth && errors.Is(err, adapter.ErrUnauthorized) {
		a.logger.Info().Str("command", args[0]).Msg("saved token rejected by server")
		return fmt.Errorf("%w: session expired, run \"login\" again", err)
	}

	return err
}

func (a *App) usage(commands map[string]command) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.errOut, "usage: go-pass-client <command> [flags]")
	fmt.Fprintln(a.errOut)
	for _, name := range names {
		fmt.Fprintf(a.errOut, "  %s\n", commands[name].usage)
	}
}
