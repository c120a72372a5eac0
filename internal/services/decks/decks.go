// Package decks implements saved-deck management. Decks are bounded slots
// cleared in place on delete so the slot stays reusable.
package decks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgutils"
	"github.com/Patrick0307/404-ZOO/internal/repos/decks"
	pgdecks "github.com/Patrick0307/404-ZOO/internal/repos/decks/postgres"
)

var ErrDeckNotFound = decks.ErrDeckNotFound

type Service struct {
	db    *sql.DB
	decks decks.Decks
}

func New(db *sql.DB) *Service {
	return &Service{db: db, decks: pgdecks.New(db)}
}

// Save creates or replaces the caller's deck in the given slot.
func (s *Service) Save(ctx context.Context, caller game.Identity, slot uint8, name string, cardRefs []game.CardRef) error {
	if slot >= game.MaxDecks {
		return game.ErrInvalidDeckSlot
	}
	if len(cardRefs) > game.MaxDeckCards {
		return game.ErrTooManyDeckCards
	}

	err := game.RequireMaxLen(name, game.MaxNameLen)
	if err != nil {
		return err
	}

	deck := game.Deck{
		Owner:  caller,
		Slot:   slot,
		Name:   name,
		Cards:  cardRefs,
		Active: true,
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.decks.Upsert(tx, deck)
	})
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}

	return nil
}

// Delete clears the caller's deck in place.
func (s *Service) Delete(ctx context.Context, caller game.Identity, slot uint8) error {
	if slot >= game.MaxDecks {
		return game.ErrInvalidDeckSlot
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		d, err := s.decks.GetTx(tx, caller, slot)
		if err != nil {
			return err
		}

		if d.Owner != caller {
			return game.ErrUnauthorized
		}

		return s.decks.Clear(tx, caller, slot)
	})
	if err != nil {
		if errors.Is(err, decks.ErrDeckNotFound) {
			return fmt.Errorf("delete deck: %w", decks.ErrDeckNotFound)
		}

		return fmt.Errorf("delete deck: %w", err)
	}

	return nil
}

// Get is the read-only deck lookup.
func (s *Service) Get(ctx context.Context, owner game.Identity, slot uint8) (game.Deck, error) {
	d, err := s.decks.Get(ctx, owner, slot)
	if err != nil {
		return game.Deck{}, fmt.Errorf("get deck: %w", err)
	}

	return d, nil
}
