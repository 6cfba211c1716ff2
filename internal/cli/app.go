package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/config"
	"github.com/dmitrijs2005/keychain/internal/logging"
	"github.com/dmitrijs2005/keychain/internal/session"
	"github.com/dmitrijs2005/keychain/internal/storage"
	"github.com/dmitrijs2005/keychain/internal/vault"
	"golang.org/x/term"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repo    storage.Repository
	session *session.Session
	reader  *bufio.Reader
	out     io.Writer
	screen  *screen

	// ttyIn enables no-echo secret input.
	ttyIn bool
	dirty bool
}

// NewApp opens the configured storage backend and attaches the app to the
// process terminal.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, err := storage.Open(ctx, c.Storage, c.VaultPath, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		logger: logger,
		repo:   repo,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		screen: newScreen(os.Stdout, c.ClearScreen),
		ttyIn:  term.IsTerminal(int(os.Stdin.Fd())),
	}, nil
}

// Run loads the vault, unlocks it and serves the menu until the user exits
// or input ends. It returns an error only when the session could not start.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	snap, err := a.load(ctx)
	if err != nil {
		return err
	}
	if err := a.unlock(ctx, snap); err != nil {
		return err
	}

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) close(ctx context.Context) {
	if a.session != nil {
		a.session.Close()
	}
	if err := a.repo.Close(); err != nil {
		a.logger.Error(ctx, "closing storage", "error", err)
	}
}

// load reads the vault. Malformed contents are moved aside and the session
// starts with an empty vault.
func (a *App) load(ctx context.Context) (*vault.Snapshot, error) {
	snap, err := a.repo.Load(ctx)
	if errors.Is(err, common.ErrMalformedVault) {
		a.logger.Warn(ctx, "vault is malformed", "error", err)
		dst, qerr := a.repo.Quarantine(ctx)
		if qerr != nil {
			return nil, fmt.Errorf("%w; moving it aside failed: %v", err, qerr)
		}
		fmt.Fprintf(a.out, "The vault could not be read and was moved to %s.\n", dst)
		fmt.Fprintln(a.out, "Starting with an empty vault.")
		return &vault.Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "vault loaded", "records", len(snap.Records), "storage", a.config.Storage)
	return snap, nil
}

func (a *App) status() string {
	s := fmt.Sprintf("%d records", a.session.Len())
	if a.dirty {
		s += ", unsaved"
	}
	return "(" + s + ")"
}

// pause waits for Enter in interactive mode.
func (a *App) pause() {
	if !a.screen.enabled {
		return
	}
	fmt.Fprintln(a.out, "Press Enter to continue...")
	_, _ = a.reader.ReadString('\n')
}

func (a *App) Clear() {
	a.screen.clear()
}
