package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE records (position INTEGER PRIMARY KEY, domain TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO records(position, domain) VALUES (1, 'seed.com')`)
	require.NoError(t, err)
	return db
}

func domains(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT domain FROM records ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var d string
		require.NoError(t, rows.Scan(&d))
		out = append(out, d)
	}
	require.NoError(t, rows.Err())
	return out
}

// replaceAll mirrors how a vault save swaps the whole record set.
func replaceAll(ctx context.Context, tx DBTX, list ...string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	for i, d := range list {
		if _, err := tx.ExecContext(ctx, `INSERT INTO records(position, domain) VALUES (?, ?)`, i+1, d); err != nil {
			return err
		}
	}
	return nil
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return replaceAll(ctx, tx, "a.com", "b.com")
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a.com", "b.com"}, domains(t, db))
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, replaceAll(ctx, tx, "a.com"))
		return errors.New("boom")
	})
	require.Error(t, err)

	require.Equal(t, []string{"seed.com"}, domains(t, db), "previous rows must survive a failed save")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, []string{"seed.com"}, domains(t, db), "must rollback on panic")
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, replaceAll(ctx, tx))
		panic("kaput")
	})
}

func TestWithTx_BeginFailsOnClosedDB(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)
}
