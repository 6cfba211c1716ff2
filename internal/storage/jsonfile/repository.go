// Package jsonfile stores the vault as a single JSON document on disk. It is
// the default backend.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/filex"
	"github.com/dmitrijs2005/keychain/internal/logging"
	"github.com/dmitrijs2005/keychain/internal/vault"
)

// CorruptSuffix is appended to a vault file that failed to load.
const CorruptSuffix = ".corrupt"

// document is the on-disk layout. Secret fields are base64 ciphertext.
type document struct {
	Version int            `json:"version"`
	Header  *vault.Header  `json:"header,omitempty"`
	Records []vault.Record `json:"records"`
}

type Repository struct {
	path   string
	logger logging.Logger
}

func NewRepository(path string, logger logging.Logger) *Repository {
	return &Repository{path: path, logger: logger.With("storage", "json", "path", path)}
}

// Load reads the vault file. A missing or empty file is a new vault.
func (r *Repository) Load(ctx context.Context) (*vault.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		r.logger.Info(ctx, "vault file not found, starting empty")
		return &vault.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read vault: %v", common.ErrPersistence, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return &vault.Snapshot{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		if errors.Is(err, common.ErrMalformedVault) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedVault, err)
	}
	if doc.Version != vault.FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", common.ErrMalformedVault, doc.Version)
	}

	snap := &vault.Snapshot{Header: doc.Header, Records: doc.Records}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	r.logger.Debug(ctx, "vault file read", "records", len(snap.Records))
	return snap, nil
}

// Save replaces the vault file atomically.
func (r *Repository) Save(ctx context.Context, snap *vault.Snapshot) error {
	doc := document{Version: vault.FormatVersion, Header: snap.Header, Records: snap.Records}
	if doc.Records == nil {
		doc.Records = []vault.Record{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode vault: %v", common.ErrPersistence, err)
	}
	if err := filex.WriteFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	r.logger.Debug(ctx, "vault file written", "records", len(doc.Records), "bytes", len(data))
	return nil
}

// Quarantine moves the current vault file to <path>.corrupt so the next
// save does not overwrite it.
func (r *Repository) Quarantine(ctx context.Context) (string, error) {
	dst, err := filex.MoveAside(r.path, CorruptSuffix)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	r.logger.Warn(ctx, "vault file moved aside", "to", dst)
	return dst, nil
}

func (r *Repository) Close() error {
	return nil
}
