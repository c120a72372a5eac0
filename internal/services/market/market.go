// Package market implements the escrow exchange: list, cancel, buy. Each
// operation is a single transaction; a card moved without currency moved
// (or vice versa) is never observable.
package market

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Patrick0307/404-ZOO/internal/feed"
	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgutils"
	"github.com/Patrick0307/404-ZOO/internal/repos/cards"
	pgcards "github.com/Patrick0307/404-ZOO/internal/repos/cards/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/listings"
	pglistings "github.com/Patrick0307/404-ZOO/internal/repos/listings/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/players"
	pgplayers "github.com/Patrick0307/404-ZOO/internal/repos/players/postgres"
)

type Service struct {
	db       *sql.DB
	cards    cards.Cards
	listings listings.Listings
	players  players.Players
	hub      *feed.Hub
	now      func() time.Time
}

func New(db *sql.DB, hub *feed.Hub) *Service {
	return &Service{
		db:       db,
		cards:    pgcards.New(db),
		listings: pglistings.New(db),
		players:  pgplayers.New(db),
		hub:      hub,
		now:      time.Now,
	}
}

// List escrows the caller's card at the given price. While listed, the
// listing holds custody: the seller keeps the owner field but loses
// transfer rights until cancel or buy resolves.
func (s *Service) List(ctx context.Context, caller game.Identity, card game.CardRef, price int64) (game.Listing, error) {
	if price <= 0 {
		return game.Listing{}, game.ErrInvalidPrice
	}

	listing := game.Listing{
		Seller:    caller,
		Card:      card,
		Price:     price,
		Active:    true,
		CreatedAt: s.now().UTC(),
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		c, err := s.cards.LockAndGet(tx, card)
		if err != nil {
			return err
		}

		if c.Owner != caller {
			return game.ErrUnauthorized
		}
		if c.Custody == game.CustodyEscrow {
			return game.ErrCardInEscrow
		}

		err = s.listings.Insert(tx, listing)
		if errors.Is(err, listings.ErrDuplicateListing) {
			return game.ErrDuplicateListing
		}
		if err != nil {
			return err
		}

		return s.cards.SetCustody(tx, card, game.CustodyEscrow)
	})
	if err != nil {
		return game.Listing{}, fmt.Errorf("list card: %w", err)
	}

	s.hub.Publish(feed.Event{Type: feed.EventListingCreated, Payload: map[string]any{
		"card":   card.String(),
		"seller": caller.String(),
		"price":  price,
	}})

	return listing, nil
}

// Cancel returns the card to the seller and destroys the listing.
func (s *Service) Cancel(ctx context.Context, caller game.Identity, card game.CardRef) error {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		l, err := s.listings.LockAndGet(tx, card)
		if errors.Is(err, listings.ErrListingNotFound) {
			return game.ErrListingNotActive
		}
		if err != nil {
			return err
		}

		if !l.Active {
			return game.ErrListingNotActive
		}
		if l.Seller != caller {
			return game.ErrUnauthorized
		}

		err = s.cards.SetCustody(tx, card, game.CustodyOwner)
		if err != nil {
			return err
		}

		return s.listings.Delete(tx, card)
	})
	if err != nil {
		return fmt.Errorf("cancel listing: %w", err)
	}

	s.hub.Publish(feed.Event{Type: feed.EventListingCancelled, Payload: map[string]any{
		"card": card.String(),
	}})

	return nil
}

// Buy settles the escrow: buyer pays the full price, the seller receives
// the price net of the burned fee, and the card changes owner — all in one
// transaction.
func (s *Service) Buy(ctx context.Context, caller game.Identity, card game.CardRef) error {
	var (
		seller game.Identity
		price  int64
	)

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		l, err := s.listings.LockAndGet(tx, card)
		if errors.Is(err, listings.ErrListingNotFound) {
			return game.ErrListingNotActive
		}
		if err != nil {
			return err
		}

		if !l.Active {
			return game.ErrListingNotActive
		}
		if caller == l.Seller {
			return game.ErrCannotBuyOwnCard
		}

		seller, price = l.Seller, l.Price

		buyer, err := s.players.LockAndGet(tx, caller)
		if err != nil {
			return err
		}

		sellerProfile, err := s.players.LockAndGet(tx, l.Seller)
		if err != nil {
			return err
		}

		if buyer.Currency < l.Price {
			return game.ErrInsufficientBalance
		}

		fee, err := marketFee(l.Price)
		if err != nil {
			return err
		}

		sellerAmount, err := game.CheckedSub64(l.Price, fee)
		if err != nil {
			return err
		}

		buyer.Currency, err = game.CheckedSub64(buyer.Currency, l.Price)
		if err != nil {
			return err
		}

		sellerProfile.Currency, err = game.CheckedAdd64(sellerProfile.Currency, sellerAmount)
		if err != nil {
			return err
		}

		err = s.cards.SetOwner(tx, card, caller)
		if err != nil {
			return err
		}

		err = s.cards.SetCustody(tx, card, game.CustodyOwner)
		if err != nil {
			return err
		}

		err = s.listings.Delete(tx, card)
		if err != nil {
			return err
		}

		err = s.players.Save(tx, buyer)
		if err != nil {
			return err
		}

		return s.players.Save(tx, sellerProfile)
	})
	if err != nil {
		return fmt.Errorf("buy card: %w", err)
	}

	s.hub.Publish(feed.Event{Type: feed.EventCardSold, Payload: map[string]any{
		"card":   card.String(),
		"seller": seller.String(),
		"buyer":  caller.String(),
		"price":  price,
	}})

	return nil
}

// Listings is the read-only market view.
func (s *Service) Listings(ctx context.Context) ([]game.Listing, error) {
	out, err := s.listings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	return out, nil
}

// marketFee is floor(price * 25 / 1000). The fee is burned: nobody is
// credited with it.
func marketFee(price int64) (int64, error) {
	product, err := game.CheckedMul64(price, game.FeeNumerator)
	if err != nil {
		return 0, err
	}

	return product / game.FeeDenominator, nil
}
