package listings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrDuplicateListing = errors.New("card already listed")
)

// Listings persists marketplace escrows. A listing is keyed by the card
// reference, so a second listing for the same card fails structurally.
// Terminal transitions (cancel, buy) delete the record.
type Listings interface {
	Insert(tx *sql.Tx, l game.Listing) error
	Get(ctx context.Context, card game.CardRef) (game.Listing, error)
	LockAndGet(tx *sql.Tx, card game.CardRef) (game.Listing, error)
	Delete(tx *sql.Tx, card game.CardRef) error
	List(ctx context.Context) ([]game.Listing, error)
}
