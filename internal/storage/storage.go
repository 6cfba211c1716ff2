// Package storage selects and opens the persistence backend for a vault.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/logging"
	"github.com/dmitrijs2005/keychain/internal/storage/jsonfile"
	"github.com/dmitrijs2005/keychain/internal/storage/sqlite"
	"github.com/dmitrijs2005/keychain/internal/vault"
)

// Backend kinds accepted by Open.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Repository persists vault snapshots. Secret fields are passed through as
// ciphertext; a backend never sees plaintext or the key.
type Repository interface {
	// Load returns the stored snapshot, or an empty one for a new vault.
	// Unreadable contents are reported as common.ErrMalformedVault.
	Load(ctx context.Context) (*vault.Snapshot, error)

	// Save replaces the stored snapshot. On error the previous contents are
	// left in place.
	Save(ctx context.Context, snap *vault.Snapshot) error

	// Quarantine keeps a copy of malformed contents under a new name and
	// returns it. The next Load sees an empty vault.
	Quarantine(ctx context.Context) (string, error)

	Close() error
}

var (
	_ Repository = (*jsonfile.Repository)(nil)
	_ Repository = (*sqlite.Repository)(nil)
)

// Open returns the backend of the given kind for path.
func Open(ctx context.Context, kind, path string, logger logging.Logger) (Repository, error) {
	switch kind {
	case KindJSON, "":
		return jsonfile.NewRepository(path, logger), nil
	case KindSQLite:
		r, err := sqlite.Open(ctx, path, logger)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, fmt.Errorf("%w: unknown storage %q", common.ErrorValidation, kind)
}
