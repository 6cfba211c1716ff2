// Package sqlite stores the vault in a SQLite database driven by
// modernc.org/sqlite. The schema is managed with goose; the vault header
// lives in the metadata table and every record is one row.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/cryptox"
	"github.com/dmitrijs2005/keychain/internal/dbx"
	"github.com/dmitrijs2005/keychain/internal/filex"
	"github.com/dmitrijs2005/keychain/internal/logging"
	"github.com/dmitrijs2005/keychain/internal/vault"
)

// CorruptSuffix names the copy taken of a database that failed to load.
const CorruptSuffix = ".corrupt"

type Repository struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string, logger logging.Logger) (*Repository, error) {
	logger = logger.With("storage", "sqlite", "path", path)

	if _, err := filex.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	db, err := InitDatabase(ctx, path, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", common.ErrPersistence, err)
	}
	return &Repository{db: db, path: path, logger: logger}, nil
}

// Load reads the header and all records. A database without a header is a
// vault that was never saved.
func (r *Repository) Load(ctx context.Context) (*vault.Snapshot, error) {
	meta, err := NewMetadataRepository(r.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	if v, ok := meta[keyFormatVersion]; ok && string(v) != strconv.Itoa(vault.FormatVersion) {
		return nil, fmt.Errorf("%w: unsupported format version %q", common.ErrMalformedVault, v)
	}

	snap := &vault.Snapshot{}
	if raw, ok := meta[keyKDF]; ok {
		var kdf cryptox.KDFParams
		if err := json.Unmarshal(raw, &kdf); err != nil {
			return nil, fmt.Errorf("%w: kdf: %v", common.ErrMalformedVault, err)
		}
		snap.Header = &vault.Header{KDF: kdf, Verifier: meta[keyVerifier]}
	}

	records, err := NewRecordRepository(r.db).List(ctx)
	if err != nil {
		if errors.Is(err, common.ErrMalformedVault) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	snap.Records = records

	if err := snap.Validate(); err != nil {
		return nil, err
	}

	r.logger.Debug(ctx, "vault database read", "records", len(records))
	return snap, nil
}

// Save replaces the stored header and records in one transaction.
func (r *Repository) Save(ctx context.Context, snap *vault.Snapshot) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := NewMetadataRepository(tx)
		if err := meta.Clear(ctx); err != nil {
			return err
		}
		if err := meta.Set(ctx, keyFormatVersion, []byte(strconv.Itoa(vault.FormatVersion))); err != nil {
			return err
		}
		if snap.Header != nil {
			kdf, err := json.Marshal(snap.Header.KDF)
			if err != nil {
				return err
			}
			if err := meta.Set(ctx, keyKDF, kdf); err != nil {
				return err
			}
			if err := meta.Set(ctx, keyVerifier, snap.Header.Verifier); err != nil {
				return err
			}
		}
		return NewRecordRepository(tx).ReplaceAll(ctx, snap.Records)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	r.logger.Debug(ctx, "vault database written", "records", len(snap.Records))
	return nil
}

// Quarantine copies the database to <path>.corrupt and empties it, so the
// next save starts from a clean schema without losing the old contents.
func (r *Repository) Quarantine(ctx context.Context) (string, error) {
	dst := r.path + CorruptSuffix
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	if _, err := r.db.ExecContext(ctx, `VACUUM INTO ?`, dst); err != nil {
		return "", fmt.Errorf("%w: copy database: %v", common.ErrPersistence, err)
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := NewMetadataRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return NewRecordRepository(tx).ReplaceAll(ctx, nil)
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	r.logger.Warn(ctx, "vault database copied aside and cleared", "to", dst)
	return dst, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
