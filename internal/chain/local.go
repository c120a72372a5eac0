package chain

import (
	"context"
	"log/slog"
	"time"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

var _ Backend = (*LocalBackend)(nil)

// LocalBackend is the dev/test collaborator: the token and mint legs are
// acknowledged without external settlement, and the height counter is a
// coarse wall-clock slot. Draw values stay exactly as predictable as with
// a real chain, which is the documented property of this randomness.
type LocalBackend struct {
	// SlotLength controls how fast the pseudo block height advances.
	SlotLength time.Duration
}

func NewLocalBackend() *LocalBackend {
	return &LocalBackend{SlotLength: 400 * time.Millisecond}
}

func (b *LocalBackend) Height(_ context.Context) (uint64, error) {
	return uint64(time.Now().UnixNano() / int64(b.SlotLength)), nil
}

func (b *LocalBackend) Transfer(_ context.Context, from, to game.Identity, amount int64) error {
	slog.Info("local token transfer", "from", from, "to", to, "amount", amount)

	return nil
}

func (b *LocalBackend) Mint(_ context.Context, owner game.Identity, ref game.CardRef) error {
	slog.Info("local mint", "owner", owner, "ref", ref)

	return nil
}
