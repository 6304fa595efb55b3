package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authdemo/internal/dbx"
)

// Keys under which the tokens live in the metadata table.
const (
	AccessTokenKey  = "access"
	RefreshTokenKey = "refresh"
)

// TokenStore persists the session tokens between runs. Load returns empty
// Tokens when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (models.Tokens, error)
	Save(ctx context.Context, tokens models.Tokens) error
	Clear(ctx context.Context) error
}

type tokenStore struct {
	db   *sql.DB
	repo metadata.Factory
}

func NewTokenStore(db *sql.DB) TokenStore {
	return newTokenStore(db, metadata.NewSQLite)
}

func newTokenStore(db *sql.DB, repo metadata.Factory) *tokenStore {
	return &tokenStore{db: db, repo: repo}
}

func (s *tokenStore) Load(ctx context.Context) (models.Tokens, error) {
	repo := s.repo(s.db)

	access, err := repo.Get(ctx, AccessTokenKey)
	if err != nil {
		return models.Tokens{}, fmt.Errorf("load tokens: %w", err)
	}
	refresh, err := repo.Get(ctx, RefreshTokenKey)
	if err != nil {
		return models.Tokens{}, fmt.Errorf("load tokens: %w", err)
	}
	return models.Tokens{Access: string(access), Refresh: string(refresh)}, nil
}

// Save replaces both tokens in one transaction. An empty refresh token
// removes any stored one.
func (s *tokenStore) Save(ctx context.Context, tokens models.Tokens) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Put(ctx, AccessTokenKey, []byte(tokens.Access)); err != nil {
			return err
		}
		if tokens.Refresh == "" {
			return repo.Delete(ctx, RefreshTokenKey)
		}
		return repo.Put(ctx, RefreshTokenKey, []byte(tokens.Refresh))
	})
	if err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

func (s *tokenStore) Clear(ctx context.Context) error {
	if err := s.repo(s.db).Delete(ctx, AccessTokenKey, RefreshTokenKey); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}
