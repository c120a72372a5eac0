package pools

import (
	"context"
	"database/sql"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

// Pools is the per-rarity membership set of eligible card types.
// Membership is append-only and deduplicated; the store's composite key
// guarantees set semantics.
type Pools interface {
	Members(ctx context.Context, rarity game.Rarity) ([]uint32, error)
	MembersTx(tx *sql.Tx, rarity game.Rarity) ([]uint32, error)
	// Append inserts ids not already present, keeping insertion order.
	// It returns the number of ids actually added.
	Append(tx *sql.Tx, rarity game.Rarity, ids []uint32) (int, error)
}
