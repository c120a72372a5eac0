package gameconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

var (
	ErrNotInitialized = errors.New("game config not initialized")
	ErrAlreadyExists  = errors.New("game config already exists")
	ErrCreatorExists  = errors.New("creator already registered")
)

type Configs interface {
	Create(tx *sql.Tx, cfg game.Config) error
	Get(ctx context.Context) (game.Config, error)
	GetTx(tx *sql.Tx) (game.Config, error)
	// LockAndGetTx takes FOR UPDATE on the config row, serializing
	// transactions that check capacity against the creator or pool sets.
	LockAndGetTx(tx *sql.Tx) (game.Config, error)
	AddCreator(tx *sql.Tx, id game.Identity, position int) error
}
