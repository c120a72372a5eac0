package gameconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/repos/gameconfig"
)

var _ gameconfig.Configs = (*configsRepo)(nil)

type configsRepo struct{ db *sql.DB }

func New(db *sql.DB) *configsRepo {
	return &configsRepo{db: db}
}

func (r *configsRepo) Create(tx *sql.Tx, cfg game.Config) error {
	_, err := tx.Exec(`
		INSERT INTO game_config
			(id, authority, pack_price, pack_card_count, exchange_rate,
			 ticket_price, common_pct, rare_pct, legendary_pct)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
	`, cfg.Authority[:], cfg.PackPrice, cfg.PackCardCount, cfg.ExchangeRate,
		cfg.TicketPrice, cfg.CommonPct, cfg.RarePct, cfg.LegendaryPct)
	if err != nil {
		if isUniqueViolation(err) {
			return gameconfig.ErrAlreadyExists
		}

		return fmt.Errorf("insert config: %w", err)
	}

	return nil
}

func (r *configsRepo) Get(ctx context.Context) (game.Config, error) {
	cfg, err := scanConfig(r.db.QueryRowContext(ctx, selectConfig))
	if err != nil {
		return game.Config{}, err
	}

	rows, err := r.db.QueryContext(ctx, selectCreators)
	if err != nil {
		return game.Config{}, fmt.Errorf("query creators: %w", err)
	}
	defer rows.Close()

	return appendCreators(cfg, rows)
}

func (r *configsRepo) GetTx(tx *sql.Tx) (game.Config, error) {
	return getTx(tx, selectConfig)
}

// LockAndGetTx reads the config row under FOR UPDATE. Concurrent callers
// queue here, so capacity checks against the creator and pool sets see
// committed counts.
func (r *configsRepo) LockAndGetTx(tx *sql.Tx) (game.Config, error) {
	return getTx(tx, selectConfig+lockClause)
}

func getTx(tx *sql.Tx, query string) (game.Config, error) {
	cfg, err := scanConfig(tx.QueryRow(query))
	if err != nil {
		return game.Config{}, err
	}

	rows, err := tx.Query(selectCreators)
	if err != nil {
		return game.Config{}, fmt.Errorf("query creators: %w", err)
	}
	defer rows.Close()

	return appendCreators(cfg, rows)
}

func (r *configsRepo) AddCreator(tx *sql.Tx, id game.Identity, position int) error {
	_, err := tx.Exec(`
		INSERT INTO card_creators (pubkey, position) VALUES ($1, $2)
	`, id[:], position)
	if err != nil {
		if isUniqueViolation(err) {
			return gameconfig.ErrCreatorExists
		}

		return fmt.Errorf("insert creator: %w", err)
	}

	return nil
}

const selectConfig = `
	SELECT authority, pack_price, pack_card_count, exchange_rate,
	       ticket_price, common_pct, rare_pct, legendary_pct
	FROM game_config
	WHERE id = 1
`

const lockClause = `
	FOR UPDATE
`

const selectCreators = `
	SELECT pubkey FROM card_creators ORDER BY position
`

func scanConfig(row *sql.Row) (game.Config, error) {
	var (
		cfg       game.Config
		authority []byte
	)

	err := row.Scan(&authority, &cfg.PackPrice, &cfg.PackCardCount,
		&cfg.ExchangeRate, &cfg.TicketPrice, &cfg.CommonPct, &cfg.RarePct,
		&cfg.LegendaryPct)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.Config{}, gameconfig.ErrNotInitialized
		}

		return game.Config{}, fmt.Errorf("scan config: %w", err)
	}

	copy(cfg.Authority[:], authority)

	return cfg, nil
}

func appendCreators(cfg game.Config, rows *sql.Rows) (game.Config, error) {
	for rows.Next() {
		var raw []byte

		err := rows.Scan(&raw)
		if err != nil {
			return game.Config{}, fmt.Errorf("scan creator: %w", err)
		}

		var id game.Identity
		copy(id[:], raw)
		cfg.CardCreators = append(cfg.CardCreators, id)
	}

	err := rows.Err()
	if err != nil {
		return game.Config{}, fmt.Errorf("iterate creators: %w", err)
	}

	return cfg, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
