// Package economy implements the player ledger operations: registration,
// the one-shot starter grant, and the currency/ticket purchases.
package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"github.com/Patrick0307/404-ZOO/internal/chain"
	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgutils"
	"github.com/Patrick0307/404-ZOO/internal/repos/gameconfig"
	pgconfig "github.com/Patrick0307/404-ZOO/internal/repos/gameconfig/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/players"
	pgplayers "github.com/Patrick0307/404-ZOO/internal/repos/players/postgres"
)

type Service struct {
	db       *sql.DB
	players  players.Players
	configs  gameconfig.Configs
	token    chain.TokenTransfer
	treasury game.Identity
}

func New(db *sql.DB, token chain.TokenTransfer, treasury game.Identity) *Service {
	return &Service{
		db:       db,
		players:  pgplayers.New(db),
		configs:  pgconfig.New(db),
		token:    token,
		treasury: treasury,
	}
}

// Register creates a fresh zeroed profile. Registering twice fails on the
// owner key.
func (s *Service) Register(ctx context.Context, caller game.Identity, username string) error {
	err := game.ValidateName(username, game.MaxUsernameLen)
	if err != nil {
		return err
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.players.Create(tx, game.Profile{Owner: caller, Username: username})
		if errors.Is(err, players.ErrPlayerExists) {
			return game.ErrPlayerExists
		}

		return err
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return nil
}

// ClaimStarterTickets grants the one-shot free ticket allowance.
func (s *Service) ClaimStarterTickets(ctx context.Context, caller game.Identity) error {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := s.players.LockAndGet(tx, caller)
		if err != nil {
			return err
		}

		if p.StarterClaimed {
			return game.ErrStarterClaimed
		}

		p.Tickets, err = game.CheckedAdd64(p.Tickets, game.FreeStarterTickets)
		if err != nil {
			return err
		}

		p.StarterClaimed = true

		return s.players.Save(tx, p)
	})
	if err != nil {
		return fmt.Errorf("claim starter tickets: %w", err)
	}

	return nil
}

// BuyCurrency converts externalAmount base units into ledger currency at
// the configured rate. The external transfer to the treasury runs before
// the credit; if it fails nothing is credited.
func (s *Service) BuyCurrency(ctx context.Context, caller game.Identity, externalAmount int64) (int64, error) {
	if externalAmount <= 0 {
		return 0, game.ErrInvalidAmount
	}

	var credited int64

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.configs.GetTx(tx)
		if err != nil {
			return err
		}

		credit, err := convert(externalAmount, cfg.ExchangeRate)
		if err != nil {
			return err
		}
		if credit == 0 {
			return game.ErrInvalidAmount
		}

		err = s.token.Transfer(ctx, caller, s.treasury, externalAmount)
		if err != nil {
			return fmt.Errorf("external transfer: %w", err)
		}

		p, err := s.players.LockAndGet(tx, caller)
		if err != nil {
			return err
		}

		p.Currency, err = game.CheckedAdd64(p.Currency, credit)
		if err != nil {
			return err
		}

		credited = credit

		return s.players.Save(tx, p)
	})
	if err != nil {
		return 0, fmt.Errorf("buy currency: %w", err)
	}

	return credited, nil
}

// BuyTickets exchanges currency for gacha tickets at the configured price.
func (s *Service) BuyTickets(ctx context.Context, caller game.Identity, count int64) error {
	if count <= 0 {
		return game.ErrInvalidAmount
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.configs.GetTx(tx)
		if err != nil {
			return err
		}

		cost, err := game.CheckedMul64(cfg.TicketPrice, count)
		if err != nil {
			return err
		}

		p, err := s.players.LockAndGet(tx, caller)
		if err != nil {
			return err
		}

		if p.Currency < cost {
			return game.ErrInsufficientBalance
		}

		p.Currency, err = game.CheckedSub64(p.Currency, cost)
		if err != nil {
			return err
		}

		p.Tickets, err = game.CheckedAdd64(p.Tickets, count)
		if err != nil {
			return err
		}

		return s.players.Save(tx, p)
	})
	if err != nil {
		return fmt.Errorf("buy tickets: %w", err)
	}

	return nil
}

// GetProfile is the read-only profile lookup.
func (s *Service) GetProfile(ctx context.Context, owner game.Identity) (game.Profile, error) {
	p, err := s.players.Get(ctx, owner)
	if err != nil {
		return game.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return p, nil
}

// convert computes floor(amount * rate / ExchangeScale) in wide arithmetic
// so an intermediate overflow cannot wrap.
func convert(amount, rate int64) (int64, error) {
	product := new(big.Int).Mul(big.NewInt(amount), big.NewInt(rate))
	product.Div(product, big.NewInt(game.ExchangeScale))

	if !product.IsInt64() {
		return 0, game.ErrOverflow
	}

	return product.Int64(), nil
}
