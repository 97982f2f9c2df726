package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore(openDB(t))
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	tok, err := s.LoadToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	_, ok, err := s.SavedAt(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveToken(ctx, "abc123"))

	tok, err = s.LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)

	at, ok, err := s.SavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, fixed.Equal(at))

	require.NoError(t, s.DeleteToken(ctx))
	require.NoError(t, s.DeleteToken(ctx))

	tok, err = s.LoadToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestTokenStore_SurvivesNewStore(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	require.NoError(t, NewTokenStore(db).SaveToken(ctx, "persisted"))

	tok, err := NewTokenStore(db).LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", tok)
}

func TestTokenStore_SaveRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO metadata").
		WithArgs("token", []byte("abc123")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO metadata").
		WithArgs("token_saved_at", sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewTokenStore(db).SaveToken(context.Background(), "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save token")
	assert.Contains(t, err.Error(), "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenStore_LoadError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT value FROM metadata").
		WithArgs("token").
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	tok, err := NewTokenStore(db).LoadToken(context.Background())
	require.Error(t, err)
	assert.Empty(t, tok)
	assert.Contains(t, err.Error(), "load token")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenStore_DeleteBeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	err = NewTokenStore(db).DeleteToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin tx")
	require.NoError(t, mock.ExpectationsWereMet())
}
