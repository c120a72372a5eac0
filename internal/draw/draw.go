// Package draw derives pseudo-random values and converts them into rarity
// tiers, card selections, and rolled stats.
//
// The randomness is publicly predictable: anyone who knows the block
// height, timestamp, caller identity, and salt before commit can compute
// the same value. That is an accepted property of this economy, not a
// security guarantee.
package draw

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/Patrick0307/404-ZOO/internal/game"
)

// Entropy is the full input set of one pseudo-random derivation.
type Entropy struct {
	Height uint64
	Unix   int64
	Caller game.Identity
	Salt   uint64
}

// Value hashes the entropy inputs and interprets the first 8 bytes of the
// digest as an unsigned little-endian 64-bit integer.
func (e Entropy) Value() uint64 {
	buf := make([]byte, 0, 8+8+len(e.Caller)+8)
	buf = binary.LittleEndian.AppendUint64(buf, e.Height)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(e.Unix))
	buf = append(buf, e.Caller[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, e.Salt)

	sum := sha256.Sum256(buf)

	return binary.LittleEndian.Uint64(sum[:8])
}

// Bands is a rarity-band configuration. The three widths must sum to 100;
// each width is the probability (in percent) of its tier.
type Bands struct {
	CommonPct    uint8
	RarePct      uint8
	LegendaryPct uint8
}

// DefaultBands is the stock 70/27/3 configuration.
var DefaultBands = Bands{CommonPct: 70, RarePct: 27, LegendaryPct: 3}

// Validate checks that the bands partition [0,100) exhaustively.
func (b Bands) Validate() error {
	if int(b.CommonPct)+int(b.RarePct)+int(b.LegendaryPct) != 100 {
		return game.ErrInvalidBands
	}

	return nil
}

// Roll maps a random value onto a rarity tier. roll = value mod 100 falls
// into cumulative bands in fixed order; a tie lands in the lower band.
func (b Bands) Roll(value uint64) game.Rarity {
	roll := uint8(value % 100)

	switch {
	case roll < b.CommonPct:
		return game.RarityCommon
	case roll < b.CommonPct+b.RarePct:
		return game.RarityRare
	default:
		return game.RarityLegendary
	}
}

// SelectCard picks a card type from a rarity pool by value mod pool size.
func SelectCard(pool []uint32, value uint64) (uint32, error) {
	if len(pool) == 0 {
		return 0, game.ErrEmptyPool
	}

	return pool[value%uint64(len(pool))], nil
}

// RollStats rolls attack and health within the template's ranges, using
// disjoint bit ranges of the same value so the two rolls do not correlate
// bit-for-bit. min == max yields the fixed stat.
func RollStats(t game.Template, value uint64) (attack, health uint16) {
	attackRange := uint64(t.MaxAttack-t.MinAttack) + 1
	healthRange := uint64(t.MaxHealth-t.MinHealth) + 1

	attack = t.MinAttack + uint16(value%attackRange)
	health = t.MinHealth + uint16((value>>32)%healthRange)

	return attack, health
}
