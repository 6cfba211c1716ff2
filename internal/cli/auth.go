package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/session"
	"github.com/dmitrijs2005/keychain/internal/vault"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

// readSecret reads a line that should not be echoed when stdin is a
// terminal.
func (a *App) readSecret(prompt string) ([]byte, error) {
	if a.ttyIn {
		return getPassword(prompt, a.out)
	}
	s, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// unlock opens the session for snap. A passphrase given with -p is tried
// once; an interactive one is asked for again until it is non-empty and
// matches the vault.
func (a *App) unlock(ctx context.Context, snap *vault.Snapshot) error {
	if a.config.Passphrase != "" {
		s, err := session.Open([]byte(a.config.Passphrase), snap)
		if errors.Is(err, common.ErrWrongPassphrase) {
			a.logger.Warn(ctx, "wrong passphrase")
		}
		if err != nil {
			return err
		}
		a.session = s
		return nil
	}

	for {
		pw, err := a.readSecret("Enter password:")
		if err != nil {
			return err
		}
		if len(pw) == 0 {
			continue
		}

		s, err := session.Open(pw, snap)
		common.WipeByteArray(pw)

		if errors.Is(err, common.ErrWrongPassphrase) {
			a.logger.Warn(ctx, "wrong passphrase")
			fmt.Fprintln(a.out, "Wrong password!")
			continue
		}
		if err != nil {
			return err
		}

		a.session = s
		return nil
	}
}
