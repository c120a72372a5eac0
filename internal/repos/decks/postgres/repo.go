package decks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/repos/decks"
)

var _ decks.Decks = (*decksRepo)(nil)

type decksRepo struct{ db *sql.DB }

func New(db *sql.DB) *decksRepo {
	return &decksRepo{db: db}
}

func (r *decksRepo) Upsert(tx *sql.Tx, d game.Deck) error {
	cardsJSON, err := marshalCards(d.Cards)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO player_decks (owner, slot, name, cards, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner, slot) DO UPDATE
		SET name = EXCLUDED.name, cards = EXCLUDED.cards, active = EXCLUDED.active
	`, d.Owner[:], d.Slot, d.Name, cardsJSON, d.Active)
	if err != nil {
		return fmt.Errorf("upsert deck: %w", err)
	}

	return nil
}

const selectDeck = `
	SELECT owner, slot, name, cards, active
	FROM player_decks
	WHERE owner = $1 AND slot = $2
`

func (r *decksRepo) Get(ctx context.Context, owner game.Identity, slot uint8) (game.Deck, error) {
	return scanDeck(r.db.QueryRowContext(ctx, selectDeck, owner[:], slot))
}

func (r *decksRepo) GetTx(tx *sql.Tx, owner game.Identity, slot uint8) (game.Deck, error) {
	return scanDeck(tx.QueryRow(selectDeck+`FOR UPDATE`, owner[:], slot))
}

func (r *decksRepo) Clear(tx *sql.Tx, owner game.Identity, slot uint8) error {
	res, err := tx.Exec(`
		UPDATE player_decks
		SET name = '', cards = '[]'::jsonb, active = FALSE
		WHERE owner = $1 AND slot = $2
	`, owner[:], slot)
	if err != nil {
		return fmt.Errorf("clear deck: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return decks.ErrDeckNotFound
	}

	return nil
}

func marshalCards(refs []game.CardRef) ([]byte, error) {
	hexed := make([]string, 0, len(refs))
	for _, ref := range refs {
		hexed = append(hexed, ref.String())
	}

	b, err := json.Marshal(hexed)
	if err != nil {
		return nil, fmt.Errorf("marshal deck cards: %w", err)
	}

	return b, nil
}

func scanDeck(row *sql.Row) (game.Deck, error) {
	var (
		d         game.Deck
		owner     []byte
		cardsJSON []byte
	)

	err := row.Scan(&owner, &d.Slot, &d.Name, &cardsJSON, &d.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.Deck{}, decks.ErrDeckNotFound
		}

		return game.Deck{}, fmt.Errorf("scan deck: %w", err)
	}

	copy(d.Owner[:], owner)

	var hexed []string

	err = json.Unmarshal(cardsJSON, &hexed)
	if err != nil {
		return game.Deck{}, fmt.Errorf("unmarshal deck cards: %w", err)
	}

	for _, h := range hexed {
		ref, err := game.ParseCardRef(h)
		if err != nil {
			return game.Deck{}, err
		}

		d.Cards = append(d.Cards, ref)
	}

	return d, nil
}
