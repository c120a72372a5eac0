// Package gacha implements the card-draw operations: the read-only roll,
// the single ticket draw, and the pack purchase.
package gacha

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Patrick0307/404-ZOO/internal/chain"
	"github.com/Patrick0307/404-ZOO/internal/draw"
	"github.com/Patrick0307/404-ZOO/internal/feed"
	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgutils"
	"github.com/Patrick0307/404-ZOO/internal/repos/cards"
	pgcards "github.com/Patrick0307/404-ZOO/internal/repos/cards/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/gameconfig"
	pgconfig "github.com/Patrick0307/404-ZOO/internal/repos/gameconfig/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/players"
	pgplayers "github.com/Patrick0307/404-ZOO/internal/repos/players/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/pools"
	pgpools "github.com/Patrick0307/404-ZOO/internal/repos/pools/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/templates"
	pgtemplates "github.com/Patrick0307/404-ZOO/internal/repos/templates/postgres"
)

// The stat roll of pack card i uses salt i+statSaltOffset so it cannot
// correlate with the selection roll of any card in the same pack. Pack
// size is capped at game.MaxPackCards, well below the offset.
const statSaltOffset = 1000

type Service struct {
	db        *sql.DB
	players   players.Players
	templates templates.Templates
	pools     pools.Pools
	cards     cards.Cards
	configs   gameconfig.Configs
	heights   chain.HeightSource
	minter    chain.Minter
	hub       *feed.Hub
	now       func() time.Time
}

func New(db *sql.DB, heights chain.HeightSource, minter chain.Minter, hub *feed.Hub) *Service {
	return &Service{
		db:        db,
		players:   pgplayers.New(db),
		templates: pgtemplates.New(db),
		pools:     pgpools.New(db),
		cards:     pgcards.New(db),
		configs:   pgconfig.New(db),
		heights:   heights,
		minter:    minter,
		hub:       hub,
		now:       time.Now,
	}
}

// RollResult is the advisory outcome of a read-only roll.
type RollResult struct {
	Rarity     game.Rarity
	CardTypeID uint32
}

// Roll derives the rarity and card type a draw submitted right now would
// target. It commits nothing: the subsequent Draw trusts whatever template
// the caller submits, so roll and draw are deliberately unbound.
func (s *Service) Roll(ctx context.Context, caller game.Identity) (RollResult, error) {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return RollResult{}, fmt.Errorf("roll: %w", err)
	}

	height, err := s.heights.Height(ctx)
	if err != nil {
		return RollResult{}, fmt.Errorf("roll: %w", err)
	}

	value := draw.Entropy{
		Height: height,
		Unix:   s.now().Unix(),
		Caller: caller,
		Salt:   height,
	}.Value()

	bands := draw.Bands{CommonPct: cfg.CommonPct, RarePct: cfg.RarePct, LegendaryPct: cfg.LegendaryPct}
	rarity := bands.Roll(value)

	pool, err := s.pools.Members(ctx, rarity)
	if err != nil {
		return RollResult{}, fmt.Errorf("roll: %w", err)
	}

	cardTypeID, err := draw.SelectCard(pool, value)
	if err != nil {
		return RollResult{}, err
	}

	return RollResult{Rarity: rarity, CardTypeID: cardTypeID}, nil
}

// Draw spends one ticket and mints a card of the submitted template with
// freshly rolled stats.
func (s *Service) Draw(ctx context.Context, caller game.Identity, cardTypeID uint32) (game.Card, error) {
	var card game.Card

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := s.players.LockAndGet(tx, caller)
		if err != nil {
			return err
		}

		if p.Tickets < 1 {
			return game.ErrInsufficientTickets
		}

		p.Tickets, err = game.CheckedSub64(p.Tickets, 1)
		if err != nil {
			return err
		}

		tmpl, err := s.templates.GetTx(tx, cardTypeID)
		if err != nil {
			return err
		}

		height, err := s.heights.Height(ctx)
		if err != nil {
			return err
		}

		value := draw.Entropy{Height: height, Unix: s.now().Unix(), Caller: caller, Salt: height}.Value()
		attack, health := draw.RollStats(tmpl, value)

		ref, err := game.NewCardRef()
		if err != nil {
			return err
		}

		card = game.Card{
			Ref:        ref,
			CardTypeID: tmpl.CardTypeID,
			Attack:     attack,
			Health:     health,
			Owner:      caller,
			Custody:    game.CustodyOwner,
		}

		err = s.cards.Insert(tx, card)
		if err != nil {
			return err
		}

		err = s.minter.Mint(ctx, caller, ref)
		if err != nil {
			return fmt.Errorf("mint: %w", err)
		}

		return s.players.Save(tx, p)
	})
	if err != nil {
		return game.Card{}, fmt.Errorf("draw: %w", err)
	}

	s.hub.Publish(feed.Event{Type: feed.EventCardDrawn, Payload: map[string]any{
		"owner": caller.String(),
		"ref":   card.Ref.String(),
		"type":  card.CardTypeID,
	}})

	return card, nil
}

// PurchasePack debits the pack price and draws the configured number of
// cards, each persisted and minted like a single draw. Card i rolls its
// selection with salt i and its stats with salt i+statSaltOffset.
func (s *Service) PurchasePack(ctx context.Context, caller game.Identity) ([]game.Card, error) {
	var drawn []game.Card

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.configs.GetTx(tx)
		if err != nil {
			return err
		}

		p, err := s.players.LockAndGet(tx, caller)
		if err != nil {
			return err
		}

		if p.Currency < cfg.PackPrice {
			return game.ErrInsufficientBalance
		}

		p.Currency, err = game.CheckedSub64(p.Currency, cfg.PackPrice)
		if err != nil {
			return err
		}

		height, err := s.heights.Height(ctx)
		if err != nil {
			return err
		}

		unix := s.now().Unix()
		bands := draw.Bands{CommonPct: cfg.CommonPct, RarePct: cfg.RarePct, LegendaryPct: cfg.LegendaryPct}

		for i := 0; i < cfg.PackCardCount; i++ {
			value := draw.Entropy{Height: height, Unix: unix, Caller: caller, Salt: uint64(i)}.Value()
			rarity := bands.Roll(value)

			pool, err := s.pools.MembersTx(tx, rarity)
			if err != nil {
				return err
			}

			cardTypeID, err := draw.SelectCard(pool, value)
			if err != nil {
				return err
			}

			tmpl, err := s.templates.GetTx(tx, cardTypeID)
			if err != nil {
				return err
			}

			statsValue := draw.Entropy{Height: height, Unix: unix, Caller: caller, Salt: uint64(i) + statSaltOffset}.Value()
			attack, health := draw.RollStats(tmpl, statsValue)

			ref, err := game.NewCardRef()
			if err != nil {
				return err
			}

			card := game.Card{
				Ref:        ref,
				CardTypeID: tmpl.CardTypeID,
				Attack:     attack,
				Health:     health,
				Owner:      caller,
				Custody:    game.CustodyOwner,
			}

			err = s.cards.Insert(tx, card)
			if err != nil {
				return err
			}

			err = s.minter.Mint(ctx, caller, ref)
			if err != nil {
				return fmt.Errorf("mint: %w", err)
			}

			drawn = append(drawn, card)
		}

		return s.players.Save(tx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("purchase pack: %w", err)
	}

	s.hub.Publish(feed.Event{Type: feed.EventPackOpened, Payload: map[string]any{
		"owner": caller.String(),
		"cards": len(drawn),
	}})

	return drawn, nil
}

// ListCards is the read-only collection view.
func (s *Service) ListCards(ctx context.Context, owner game.Identity) ([]game.Card, error) {
	out, err := s.cards.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return out, nil
}
