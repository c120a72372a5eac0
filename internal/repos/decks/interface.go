package decks

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

var ErrDeckNotFound = errors.New("deck not found")

type Decks interface {
	Upsert(tx *sql.Tx, d game.Deck) error
	Get(ctx context.Context, owner game.Identity, slot uint8) (game.Deck, error)
	GetTx(tx *sql.Tx, owner game.Identity, slot uint8) (game.Deck, error)
	// Clear empties a deck in place so the slot stays reusable.
	Clear(tx *sql.Tx, owner game.Identity, slot uint8) error
}
