package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/repos/cards"
)

var _ cards.Cards = (*cardsRepo)(nil)

type cardsRepo struct{ db *sql.DB }

func New(db *sql.DB) *cardsRepo {
	return &cardsRepo{db: db}
}

func (r *cardsRepo) Insert(tx *sql.Tx, c game.Card) error {
	_, err := tx.Exec(`
		INSERT INTO card_instances (ref, card_type_id, attack, health, owner, custody)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.Ref[:], int64(c.CardTypeID), c.Attack, c.Health, c.Owner[:], c.Custody.String())
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}

	return nil
}

const selectCard = `
	SELECT ref, card_type_id, attack, health, owner, custody
	FROM card_instances
	WHERE ref = $1
`

func (r *cardsRepo) Get(ctx context.Context, ref game.CardRef) (game.Card, error) {
	return scanCard(r.db.QueryRowContext(ctx, selectCard, ref[:]))
}

func (r *cardsRepo) LockAndGet(tx *sql.Tx, ref game.CardRef) (game.Card, error) {
	return scanCard(tx.QueryRow(selectCard+`FOR UPDATE`, ref[:]))
}

func (r *cardsRepo) SetOwner(tx *sql.Tx, ref game.CardRef, owner game.Identity) error {
	return r.update(tx, `UPDATE card_instances SET owner = $2 WHERE ref = $1`, ref[:], owner[:])
}

func (r *cardsRepo) SetCustody(tx *sql.Tx, ref game.CardRef, custody game.Custody) error {
	return r.update(tx, `UPDATE card_instances SET custody = $2 WHERE ref = $1`, ref[:], custody.String())
}

func (r *cardsRepo) ListByOwner(ctx context.Context, owner game.Identity) ([]game.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ref, card_type_id, attack, health, owner, custody
		FROM card_instances
		WHERE owner = $1
		ORDER BY ref
	`, owner[:])
	if err != nil {
		return nil, fmt.Errorf("query cards by owner: %w", err)
	}
	defer rows.Close()

	var out []game.Card

	for rows.Next() {
		var (
			c        game.Card
			ref, own []byte
			id       int64
			custody  string
		)

		err := rows.Scan(&ref, &id, &c.Attack, &c.Health, &own, &custody)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}

		copy(c.Ref[:], ref)
		copy(c.Owner[:], own)
		c.CardTypeID = uint32(id)

		c.Custody, err = game.ParseCustody(custody)
		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}

	return out, nil
}

func (r *cardsRepo) update(tx *sql.Tx, query string, args ...any) error {
	res, err := tx.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return cards.ErrCardNotFound
	}

	return nil
}

func scanCard(row *sql.Row) (game.Card, error) {
	var (
		c          game.Card
		ref, owner []byte
		id         int64
		custody    string
	)

	err := row.Scan(&ref, &id, &c.Attack, &c.Health, &owner, &custody)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.Card{}, cards.ErrCardNotFound
		}

		return game.Card{}, fmt.Errorf("scan card: %w", err)
	}

	copy(c.Ref[:], ref)
	copy(c.Owner[:], owner)
	c.CardTypeID = uint32(id)

	c.Custody, err = game.ParseCustody(custody)
	if err != nil {
		return game.Card{}, err
	}

	return c, nil
}
