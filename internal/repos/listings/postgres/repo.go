package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/repos/listings"
)

var _ listings.Listings = (*listingsRepo)(nil)

type listingsRepo struct{ db *sql.DB }

func New(db *sql.DB) *listingsRepo {
	return &listingsRepo{db: db}
}

func (r *listingsRepo) Insert(tx *sql.Tx, l game.Listing) error {
	_, err := tx.Exec(`
		INSERT INTO listings (card_ref, seller, price, active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, l.Card[:], l.Seller[:], l.Price, l.Active, l.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return listings.ErrDuplicateListing
		}

		return fmt.Errorf("insert listing: %w", err)
	}

	return nil
}

const selectListing = `
	SELECT card_ref, seller, price, active, created_at
	FROM listings
	WHERE card_ref = $1
`

func (r *listingsRepo) Get(ctx context.Context, card game.CardRef) (game.Listing, error) {
	return scanListing(r.db.QueryRowContext(ctx, selectListing, card[:]))
}

func (r *listingsRepo) LockAndGet(tx *sql.Tx, card game.CardRef) (game.Listing, error) {
	return scanListing(tx.QueryRow(selectListing+`FOR UPDATE`, card[:]))
}

func (r *listingsRepo) Delete(tx *sql.Tx, card game.CardRef) error {
	res, err := tx.Exec(`DELETE FROM listings WHERE card_ref = $1`, card[:])
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return listings.ErrListingNotFound
	}

	return nil
}

func (r *listingsRepo) List(ctx context.Context) ([]game.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT card_ref, seller, price, active, created_at
		FROM listings
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	var out []game.Listing

	for rows.Next() {
		var (
			l            game.Listing
			card, seller []byte
		)

		err := rows.Scan(&card, &seller, &l.Price, &l.Active, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}

		copy(l.Card[:], card)
		copy(l.Seller[:], seller)
		out = append(out, l)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	return out, nil
}

func scanListing(row *sql.Row) (game.Listing, error) {
	var (
		l            game.Listing
		card, seller []byte
	)

	err := row.Scan(&card, &seller, &l.Price, &l.Active, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.Listing{}, listings.ErrListingNotFound
		}

		return game.Listing{}, fmt.Errorf("scan listing: %w", err)
	}

	copy(l.Card[:], card)
	copy(l.Seller[:], seller)

	return l, nil
}
