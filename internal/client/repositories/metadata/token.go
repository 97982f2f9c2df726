package metadata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/dbx"
)

const tokenSavedAtKey = "token_saved_at"

// TokenStore persists the credential token under common.TokenMetadataKey.
// It satisfies session.TokenStorage.
type TokenStore struct {
	db  dbx.TxStarter
	now func() time.Time
}

// NewTokenStore returns a store writing through db. Pass *sql.DB.
func NewTokenStore(db dbx.TxStarter) *TokenStore {
	return &TokenStore{db: db, now: time.Now}
}

// LoadToken returns "" when no token is stored.
func (s *TokenStore) LoadToken(ctx context.Context) (string, error) {
	var token string
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		v, err := NewSQLiteRepository(tx).Get(ctx, common.TokenMetadataKey)
		if err != nil {
			return err
		}
		token = strings.TrimSpace(string(v))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

// SaveToken stores token together with the time it was saved.
func (s *TokenStore) SaveToken(ctx context.Context, token string) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenMetadataKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, tokenSavedAtKey, []byte(s.now().UTC().Format(time.RFC3339)))
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// DeleteToken removes the token. Deleting a missing token is not an error.
func (s *TokenStore) DeleteToken(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.TokenMetadataKey); err != nil {
			return err
		}
		return repo.Delete(ctx, tokenSavedAtKey)
	})
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// SavedAt reports when the current token was stored. ok is false when there
// is no token.
func (s *TokenStore) SavedAt(ctx context.Context) (t time.Time, ok bool, err error) {
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		v, err := NewSQLiteRepository(tx).Get(ctx, tokenSavedAtKey)
		if err != nil || v == nil {
			return err
		}
		t, err = time.Parse(time.RFC3339, string(v))
		if err != nil {
			return fmt.Errorf("bad %s value: %w", tokenSavedAtKey, err)
		}
		ok = true
		return nil
	})
	return t, ok, err
}
