package templates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/Patrick0307/404-ZOO/internal/repos/templates"
)

var _ templates.Templates = (*templatesRepo)(nil)

type templatesRepo struct{ db *sql.DB }

func New(db *sql.DB) *templatesRepo {
	return &templatesRepo{db: db}
}

func (r *templatesRepo) Create(tx *sql.Tx, t game.Template) error {
	_, err := tx.Exec(`
		INSERT INTO card_templates
			(card_type_id, name, trait, rarity, min_attack, max_attack,
			 min_health, max_health, description, image_uri)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, int64(t.CardTypeID), t.Name, t.Trait, t.Rarity, t.MinAttack,
		t.MaxAttack, t.MinHealth, t.MaxHealth, t.Description, t.ImageURI)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return templates.ErrDuplicateTemplate
		}

		return fmt.Errorf("insert template: %w", err)
	}

	return nil
}

const selectTemplate = `
	SELECT card_type_id, name, trait, rarity, min_attack, max_attack,
	       min_health, max_health, description, image_uri
	FROM card_templates
	WHERE card_type_id = $1
`

func (r *templatesRepo) Get(ctx context.Context, cardTypeID uint32) (game.Template, error) {
	return scanTemplate(r.db.QueryRowContext(ctx, selectTemplate, int64(cardTypeID)))
}

func (r *templatesRepo) GetTx(tx *sql.Tx, cardTypeID uint32) (game.Template, error) {
	return scanTemplate(tx.QueryRow(selectTemplate, int64(cardTypeID)))
}

func scanTemplate(row *sql.Row) (game.Template, error) {
	var (
		t  game.Template
		id int64
	)

	err := row.Scan(&id, &t.Name, &t.Trait, &t.Rarity, &t.MinAttack,
		&t.MaxAttack, &t.MinHealth, &t.MaxHealth, &t.Description, &t.ImageURI)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.Template{}, templates.ErrTemplateNotFound
		}

		return game.Template{}, fmt.Errorf("scan template: %w", err)
	}

	t.CardTypeID = uint32(id)

	return t, nil
}
