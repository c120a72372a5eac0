package templates

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

var (
	ErrDuplicateTemplate = errors.New("card type id already exists")
	ErrTemplateNotFound  = errors.New("card template not found")
)

type Templates interface {
	Create(tx *sql.Tx, t game.Template) error
	Get(ctx context.Context, cardTypeID uint32) (game.Template, error)
	GetTx(tx *sql.Tx, cardTypeID uint32) (game.Template, error)
}
