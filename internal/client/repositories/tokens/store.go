// Package tokens persists the session token pair between runs.
//
// The pair lives as one JSON record under the "tokens" metadata key; the
// login email is kept next to it under "username". A record that is missing,
// malformed or only half filled loads as "no session".
package tokens

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/scanboard/internal/client/models"
	"github.com/dmitrijs2005/scanboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/scanboard/internal/common"
	"github.com/dmitrijs2005/scanboard/internal/dbx"
	"github.com/dmitrijs2005/scanboard/internal/logging"
)

// Store is the persisted session contract consumed by the auth service.
type Store interface {
	Load(ctx context.Context) (*models.TokenPair, error)
	Save(ctx context.Context, pair models.TokenPair, username string) error
	Clear(ctx context.Context) error
	Username(ctx context.Context) (string, error)
}

type SQLiteStore struct {
	db  *sql.DB
	log logging.Logger
}

func NewSQLiteStore(db *sql.DB, log logging.Logger) *SQLiteStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SQLiteStore{db: db, log: log}
}

func (s *SQLiteStore) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Load returns the stored pair or (nil, nil) when there is none. Only
// storage failures are reported as errors.
func (s *SQLiteStore) Load(ctx context.Context) (*models.TokenPair, error) {
	raw, err := s.repo().Get(ctx, common.TokensMetadataKey)
	if err != nil {
		return nil, fmt.Errorf("load tokens: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var pair models.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		s.log.Warn(ctx, "ignoring malformed token record", "error", err)
		return nil, nil
	}
	if !pair.Complete() {
		s.log.Warn(ctx, "ignoring incomplete token record")
		return nil, nil
	}
	return &pair, nil
}

// Save writes the pair and the username in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, pair models.TokenPair, username string) error {
	if !pair.Complete() {
		return common.ErrIncompletePair
	}
	raw, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokensMetadataKey, raw); err != nil {
			return err
		}
		if username == "" {
			return repo.Delete(ctx, common.UsernameMetadataKey)
		}
		return repo.Set(ctx, common.UsernameMetadataKey, []byte(username))
	})
}

// Clear removes the session. Clearing an empty store is not an error.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.TokensMetadataKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.UsernameMetadataKey)
	})
}

func (s *SQLiteStore) Username(ctx context.Context) (string, error) {
	raw, err := s.repo().Get(ctx, common.UsernameMetadataKey)
	if err != nil {
		return "", fmt.Errorf("load username: %w", err)
	}
	return string(raw), nil
}
