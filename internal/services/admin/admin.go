// Package admin implements the authority-gated configuration operations:
// game initialization, the creator allow-list, the template registry, and
// the rarity pools.
package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Patrick0307/404-ZOO/internal/draw"
	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgutils"
	"github.com/Patrick0307/404-ZOO/internal/repos/gameconfig"
	pgconfig "github.com/Patrick0307/404-ZOO/internal/repos/gameconfig/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/players"
	pgplayers "github.com/Patrick0307/404-ZOO/internal/repos/players/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/pools"
	pgpools "github.com/Patrick0307/404-ZOO/internal/repos/pools/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/templates"
	pgtemplates "github.com/Patrick0307/404-ZOO/internal/repos/templates/postgres"
)

type Service struct {
	db        *sql.DB
	configs   gameconfig.Configs
	templates templates.Templates
	pools     pools.Pools
	players   players.Players
}

func New(db *sql.DB) *Service {
	return &Service{
		db:        db,
		configs:   pgconfig.New(db),
		templates: pgtemplates.New(db),
		pools:     pgpools.New(db),
		players:   pgplayers.New(db),
	}
}

// InitParams are the one-time game settings fixed at initialization.
type InitParams struct {
	PackPrice     int64
	PackCardCount int
	ExchangeRate  int64
	TicketPrice   int64
	Bands         draw.Bands
}

// Initialize creates the singleton config with the caller as authority.
func (s *Service) Initialize(ctx context.Context, caller game.Identity, p InitParams) error {
	err := p.Bands.Validate()
	if err != nil {
		return err
	}

	if p.PackCardCount <= 0 {
		return game.ErrInvalidAmount
	}
	if p.PackCardCount > game.MaxPackCards {
		return game.ErrPackTooLarge
	}
	if p.PackPrice < 0 || p.TicketPrice < 0 {
		return game.ErrInvalidPrice
	}
	if p.ExchangeRate < 0 {
		return game.ErrInvalidAmount
	}

	cfg := game.Config{
		Authority:     caller,
		PackPrice:     p.PackPrice,
		PackCardCount: p.PackCardCount,
		ExchangeRate:  p.ExchangeRate,
		TicketPrice:   p.TicketPrice,
		CommonPct:     p.Bands.CommonPct,
		RarePct:       p.Bands.RarePct,
		LegendaryPct:  p.Bands.LegendaryPct,
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.configs.Create(tx, cfg)
		if errors.Is(err, gameconfig.ErrAlreadyExists) {
			return game.ErrAlreadyInitialized
		}

		return err
	})
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	return nil
}

// AddCardCreator appends to the capped creator set. Authority only.
func (s *Service) AddCardCreator(ctx context.Context, caller, creator game.Identity) error {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// Lock the config row: the cap check below must count committed
		// creators, not a snapshot racing another append.
		cfg, err := s.configs.LockAndGetTx(tx)
		if err != nil {
			return err
		}

		if caller != cfg.Authority {
			return game.ErrUnauthorized
		}
		if len(cfg.CardCreators) >= game.MaxCardCreators {
			return game.ErrCreatorsListFull
		}

		err = s.configs.AddCreator(tx, creator, len(cfg.CardCreators))
		if errors.Is(err, gameconfig.ErrCreatorExists) {
			return game.ErrCreatorExists
		}

		return err
	})
	if err != nil {
		return fmt.Errorf("add card creator: %w", err)
	}

	return nil
}

// CreateTemplate registers an immutable card template. Re-creation at the
// same card type id fails.
func (s *Service) CreateTemplate(ctx context.Context, caller game.Identity, t game.Template) error {
	err := t.Validate()
	if err != nil {
		return err
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.configs.GetTx(tx)
		if err != nil {
			return err
		}

		if !cfg.IsAuthorizedCreator(caller) {
			return game.ErrUnauthorized
		}

		err = s.templates.Create(tx, t)
		if errors.Is(err, templates.ErrDuplicateTemplate) {
			return game.ErrDuplicateTemplate
		}

		return err
	})
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}

	return nil
}

// UpdateRarityPool appends card type ids to a tier's pool. Membership is
// deduplicated; the tier itself is fixed by the pool key. Authority only.
func (s *Service) UpdateRarityPool(ctx context.Context, caller game.Identity, rarityDisc uint8, ids []uint32) error {
	rarity, err := game.ParseRarity(rarityDisc)
	if err != nil {
		return err
	}

	err = pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// Lock the config row so concurrent appends cannot both pass the
		// pool capacity check on the same member count.
		cfg, err := s.configs.LockAndGetTx(tx)
		if err != nil {
			return err
		}

		if caller != cfg.Authority {
			return game.ErrUnauthorized
		}

		members, err := s.pools.MembersTx(tx, rarity)
		if err != nil {
			return err
		}

		if len(members)+countNew(members, ids) > game.MaxPoolCards {
			return game.ErrPoolFull
		}

		_, err = s.pools.Append(tx, rarity, ids)

		return err
	})
	if err != nil {
		return fmt.Errorf("update rarity pool: %w", err)
	}

	return nil
}

// AddTickets grants gacha tickets to a player. Authority only.
func (s *Service) AddTickets(ctx context.Context, caller, player game.Identity, amount int64) error {
	if amount <= 0 {
		return game.ErrInvalidAmount
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.configs.GetTx(tx)
		if err != nil {
			return err
		}

		if caller != cfg.Authority {
			return game.ErrUnauthorized
		}

		p, err := s.players.LockAndGet(tx, player)
		if err != nil {
			return err
		}

		p.Tickets, err = game.CheckedAdd64(p.Tickets, amount)
		if err != nil {
			return err
		}

		return s.players.Save(tx, p)
	})
	if err != nil {
		return fmt.Errorf("add tickets: %w", err)
	}

	return nil
}

func countNew(members []uint32, ids []uint32) int {
	present := make(map[uint32]struct{}, len(members))
	for _, m := range members {
		present[m] = struct{}{}
	}

	added := 0

	for _, id := range ids {
		if _, ok := present[id]; !ok {
			present[id] = struct{}{}
			added++
		}
	}

	return added
}
