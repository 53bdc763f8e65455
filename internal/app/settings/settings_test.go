package settings

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whisper-sync/internal/app/errors"
)

func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, errors.ErrSettingNotFound)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	v, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	require.NoError(t, store.Set(ctx, "k", "v2"))
	v, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v, "set overwrites")

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, errors.ErrSettingNotFound)

	assert.NoError(t, store.Delete(ctx, "k"), "deleting an unknown key is fine")
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.db")
	store, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer store.Close()

	storeContract(t, store)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.db")

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewCredentialService(first).Set(ctx, "sk-persisted"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	key, err := NewCredentialService(second).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-persisted", key)
}

func TestSQLStore_QueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db)
	ctx := context.Background()
	boom := stderrors.New("disk I/O error")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM settings WHERE key = ?`)).
		WithArgs(CredentialKey).
		WillReturnError(boom)
	_, err = store.Get(ctx, CredentialKey)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, errors.ErrSettingNotFound)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO settings`)).
		WithArgs(CredentialKey, "sk-x", sqlmock.AnyArg()).
		WillReturnError(boom)
	assert.ErrorIs(t, store.Set(ctx, CredentialKey, "sk-x"), boom)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS settings`)).
		WillReturnError(boom)
	assert.ErrorIs(t, store.Migrate(ctx), boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM settings WHERE key = ?`)).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err = NewSQLStore(db).Get(context.Background(), "absent")
	assert.ErrorIs(t, err, errors.ErrSettingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("WSYNC_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WSYNC_TEST_REDIS_ADDR not set")
	}
	store, err := NewRedisStore(context.Background(), addr, "", 0)
	require.NoError(t, err)
	defer store.Close()

	storeContract(t, store)
}

func TestCredentialService(t *testing.T) {
	ctx := context.Background()
	creds := NewCredentialService(NewMemoryStore())

	key, err := creds.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, key, "unset credential reads as empty")

	assert.ErrorIs(t, creds.Set(ctx, "   "), errors.ErrMissingCredential)

	require.NoError(t, creds.Set(ctx, "  sk-abc  "))
	key, err = creds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-abc", key)

	require.NoError(t, creds.Seed(ctx, "sk-env"))
	key, _ = creds.Get(ctx)
	assert.Equal(t, "sk-abc", key, "seed never overwrites")

	require.NoError(t, creds.Clear(ctx))
	require.NoError(t, creds.Seed(ctx, "sk-env"))
	key, _ = creds.Get(ctx)
	assert.Equal(t, "sk-env", key)
}
