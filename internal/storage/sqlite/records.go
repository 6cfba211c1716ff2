package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/keychain/internal/common"
	"github.com/dmitrijs2005/keychain/internal/dbx"
	"github.com/dmitrijs2005/keychain/internal/vault"
	"github.com/google/uuid"
)

// RecordRepository reads and writes rows of the records table.
type RecordRepository struct {
	db dbx.DBTX
}

func NewRecordRepository(db dbx.DBTX) *RecordRepository {
	return &RecordRepository{db: db}
}

// nullBlob binds an absent secret as SQL NULL rather than an empty blob.
func nullBlob(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}

// ReplaceAll deletes every row and inserts records in the given order.
// Call it inside a transaction.
//
// Row ids are surrogate keys minted on every call and only name a row in
// error messages. A record is addressed by its position.
func (r *RecordRepository) ReplaceAll(ctx context.Context, records []vault.Record) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	for i, rec := range records {
		subs := rec.Subdomains
		if subs == nil {
			subs = []string{}
		}
		subsJSON, err := json.Marshal(subs)
		if err != nil {
			return fmt.Errorf("failed to encode subdomains: %w", err)
		}
		date, err := rec.Date.MarshalText()
		if err != nil {
			return fmt.Errorf("failed to encode date: %w", err)
		}

		_, err = r.db.ExecContext(ctx, `
			INSERT INTO records (id, position, domain, subdomains, date, login, password, remark)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), i+1, rec.Domain, string(subsJSON), string(date),
			nullBlob(rec.Login), nullBlob(rec.Password), nullBlob(rec.Remark))
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
	}
	return nil
}

// List returns all records ordered by their stored position. Rows that
// cannot be decoded are reported as common.ErrMalformedVault.
func (r *RecordRepository) List(ctx context.Context) ([]vault.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, domain, subdomains, date, login, password, remark
		FROM records
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var result []vault.Record
	for rows.Next() {
		var (
			id, subs, date string
			rec            vault.Record
		)
		if err := rows.Scan(&id, &rec.Domain, &subs, &date, &rec.Login, &rec.Password, &rec.Remark); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		if err := json.Unmarshal([]byte(subs), &rec.Subdomains); err != nil {
			return nil, fmt.Errorf("%w: record %s: subdomains: %v", common.ErrMalformedVault, id, err)
		}
		if len(rec.Subdomains) == 0 {
			rec.Subdomains = nil
		}
		if err := rec.Date.UnmarshalText([]byte(date)); err != nil {
			return nil, fmt.Errorf("record %s: %w", id, err)
		}
		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate record rows: %w", err)
	}

	return result, nil
}
