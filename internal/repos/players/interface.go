package players

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already registered")
)

// Players persists player economy ledgers. Mutations happen through
// LockAndGet + Save inside one transaction; the service computes the
// overflow-checked deltas in between.
type Players interface {
	Create(tx *sql.Tx, p game.Profile) error
	Get(ctx context.Context, owner game.Identity) (game.Profile, error)
	LockAndGet(tx *sql.Tx, owner game.Identity) (game.Profile, error)
	Save(tx *sql.Tx, p game.Profile) error
}
