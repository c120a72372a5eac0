package pools

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/repos/pools"
)

var _ pools.Pools = (*poolsRepo)(nil)

type poolsRepo struct{ db *sql.DB }

func New(db *sql.DB) *poolsRepo {
	return &poolsRepo{db: db}
}

const selectMembers = `
	SELECT card_type_id
	FROM rarity_pool_cards
	WHERE rarity = $1
	ORDER BY position
`

func (r *poolsRepo) Members(ctx context.Context, rarity game.Rarity) ([]uint32, error) {
	rows, err := r.db.QueryContext(ctx, selectMembers, rarity)
	if err != nil {
		return nil, fmt.Errorf("query pool members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

func (r *poolsRepo) MembersTx(tx *sql.Tx, rarity game.Rarity) ([]uint32, error) {
	rows, err := tx.Query(selectMembers, rarity)
	if err != nil {
		return nil, fmt.Errorf("query pool members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

// Append relies on ON CONFLICT DO NOTHING for deduplication; position
// continues from the current maximum so ordering survives re-appends.
func (r *poolsRepo) Append(tx *sql.Tx, rarity game.Rarity, ids []uint32) (int, error) {
	added := 0

	for _, id := range ids {
		res, err := tx.Exec(`
			INSERT INTO rarity_pool_cards (rarity, card_type_id, position)
			VALUES ($1, $2,
				(SELECT COALESCE(MAX(position), -1) + 1
				 FROM rarity_pool_cards WHERE rarity = $1))
			ON CONFLICT (rarity, card_type_id) DO NOTHING
		`, rarity, int64(id))
		if err != nil {
			return added, fmt.Errorf("append pool member %d: %w", id, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("rows affected: %w", err)
		}

		added += int(n)
	}

	return added, nil
}

func collectMembers(rows *sql.Rows) ([]uint32, error) {
	var members []uint32

	for rows.Next() {
		var id int64

		err := rows.Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("scan pool member: %w", err)
		}

		members = append(members, uint32(id))
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate pool members: %w", err)
	}

	return members, nil
}
