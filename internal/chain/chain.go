// Package chain holds the external collaborators the economy core consumes
// but does not implement: a token-transfer leg, a unique-token mint leg,
// and a slowly-changing height counter feeding the draw entropy.
//
// The interfaces keep the service layer chain-agnostic; failures of either
// leg abort the enclosing ledger transaction.
package chain

import (
	"context"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

// HeightSource supplies the monotonic counter mixed into draw entropy.
type HeightSource interface {
	Height(ctx context.Context) (uint64, error)
}

// TokenTransfer moves external-token value between accounts. It is invoked
// before the ledger credit in a currency purchase; if it fails, the whole
// transaction (including the credit) rolls back.
type TokenTransfer interface {
	Transfer(ctx context.Context, from, to game.Identity, amount int64) error
}

// Minter mints a unique token for a drawn card and records its reference.
type Minter interface {
	Mint(ctx context.Context, owner game.Identity, ref game.CardRef) error
}

// Backend bundles all three collaborators behind one wiring point.
type Backend interface {
	HeightSource
	TokenTransfer
	Minter
}
