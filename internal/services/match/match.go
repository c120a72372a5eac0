// Package match applies win/loss outcomes to two player ledgers with the
// deterministic trophy and reward formulas.
package match

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Patrick0307/404-ZOO/internal/feed"
	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/infra/pgutils"
	"github.com/Patrick0307/404-ZOO/internal/repos/gameconfig"
	pgconfig "github.com/Patrick0307/404-ZOO/internal/repos/gameconfig/postgres"
	"github.com/Patrick0307/404-ZOO/internal/repos/players"
	pgplayers "github.com/Patrick0307/404-ZOO/internal/repos/players/postgres"
)

type Service struct {
	db      *sql.DB
	players players.Players
	configs gameconfig.Configs
	hub     *feed.Hub
}

func New(db *sql.DB, hub *feed.Hub) *Service {
	return &Service{
		db:      db,
		players: pgplayers.New(db),
		configs: pgconfig.New(db),
		hub:     hub,
	}
}

// Result reports the applied outcome.
type Result struct {
	TrophyGain     int32
	WinnerTrophies int32
	WinnerStreak   int32
	LoserTrophies  int32
}

// RecordMatch applies a match outcome. The winner's streak increments
// first, so the gain is 30+newStreak and consecutive wins yield strictly
// increasing gains. The loser's trophies saturate at zero and their streak
// resets. Any overflow aborts the whole update. Authority only.
func (s *Service) RecordMatch(ctx context.Context, caller, winner, loser game.Identity) (Result, error) {
	if winner == loser {
		return Result{}, game.ErrSamePlayer
	}

	var res Result

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		cfg, err := s.configs.GetTx(tx)
		if err != nil {
			return err
		}

		if caller != cfg.Authority {
			return game.ErrUnauthorized
		}

		w, err := s.players.LockAndGet(tx, winner)
		if err != nil {
			return err
		}

		l, err := s.players.LockAndGet(tx, loser)
		if err != nil {
			return err
		}

		w.WinStreak, err = game.CheckedAdd32(w.WinStreak, 1)
		if err != nil {
			return err
		}

		gain, err := game.CheckedAdd32(game.BaseTrophyGain, w.WinStreak)
		if err != nil {
			return err
		}

		w.Trophies, err = game.CheckedAdd32(w.Trophies, gain)
		if err != nil {
			return err
		}

		l.Trophies = game.SaturatingSub32(l.Trophies, game.TrophyLoss)
		l.WinStreak = 0

		w.TotalWins, err = game.CheckedAdd32(w.TotalWins, 1)
		if err != nil {
			return err
		}

		l.TotalLosses, err = game.CheckedAdd32(l.TotalLosses, 1)
		if err != nil {
			return err
		}

		w.Currency, err = game.CheckedAdd64(w.Currency, game.WinReward)
		if err != nil {
			return err
		}

		err = s.players.Save(tx, w)
		if err != nil {
			return err
		}

		err = s.players.Save(tx, l)
		if err != nil {
			return err
		}

		res = Result{
			TrophyGain:     gain,
			WinnerTrophies: w.Trophies,
			WinnerStreak:   w.WinStreak,
			LoserTrophies:  l.Trophies,
		}

		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("record match: %w", err)
	}

	s.hub.Publish(feed.Event{Type: feed.EventMatchRecorded, Payload: map[string]any{
		"winner": winner.String(),
		"loser":  loser.String(),
		"gain":   res.TrophyGain,
	}})

	return res, nil
}
