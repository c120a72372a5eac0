package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/repos/players"
)

var _ players.Players = (*playersRepo)(nil)

type playersRepo struct{ db *sql.DB }

func New(db *sql.DB) *playersRepo {
	return &playersRepo{db: db}
}

func (r *playersRepo) Create(tx *sql.Tx, p game.Profile) error {
	_, err := tx.Exec(`
		INSERT INTO player_profiles
			(owner, username, starter_claimed, tickets, currency,
			 trophies, total_wins, total_losses, win_streak)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.Owner[:], p.Username, p.StarterClaimed, p.Tickets, p.Currency,
		p.Trophies, p.TotalWins, p.TotalLosses, p.WinStreak)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return players.ErrPlayerExists
		}

		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

const selectProfile = `
	SELECT owner, username, starter_claimed, tickets, currency,
	       trophies, total_wins, total_losses, win_streak
	FROM player_profiles
	WHERE owner = $1
`

func (r *playersRepo) Get(ctx context.Context, owner game.Identity) (game.Profile, error) {
	return scanProfile(r.db.QueryRowContext(ctx, selectProfile, owner[:]))
}

func (r *playersRepo) LockAndGet(tx *sql.Tx, owner game.Identity) (game.Profile, error) {
	return scanProfile(tx.QueryRow(selectProfile+`FOR UPDATE`, owner[:]))
}

func (r *playersRepo) Save(tx *sql.Tx, p game.Profile) error {
	res, err := tx.Exec(`
		UPDATE player_profiles
		SET username = $2, starter_claimed = $3, tickets = $4, currency = $5,
		    trophies = $6, total_wins = $7, total_losses = $8, win_streak = $9
		WHERE owner = $1
	`, p.Owner[:], p.Username, p.StarterClaimed, p.Tickets, p.Currency,
		p.Trophies, p.TotalWins, p.TotalLosses, p.WinStreak)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return players.ErrPlayerNotFound
	}

	return nil
}

func scanProfile(row *sql.Row) (game.Profile, error) {
	var (
		p     game.Profile
		owner []byte
	)

	err := row.Scan(&owner, &p.Username, &p.StarterClaimed, &p.Tickets,
		&p.Currency, &p.Trophies, &p.TotalWins, &p.TotalLosses, &p.WinStreak)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.Profile{}, players.ErrPlayerNotFound
		}

		return game.Profile{}, fmt.Errorf("scan profile: %w", err)
	}

	copy(p.Owner[:], owner)

	return p, nil
}
