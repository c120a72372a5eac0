package cards

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

var ErrCardNotFound = errors.New("card not found")

type Cards interface {
	Insert(tx *sql.Tx, c game.Card) error
	Get(ctx context.Context, ref game.CardRef) (game.Card, error)
	LockAndGet(tx *sql.Tx, ref game.CardRef) (game.Card, error)
	SetOwner(tx *sql.Tx, ref game.CardRef, owner game.Identity) error
	SetCustody(tx *sql.Tx, ref game.CardRef, custody game.Custody) error
	ListByOwner(ctx context.Context, owner game.Identity) ([]game.Card, error)
}
