package draw

import (
	"testing"

	"github.com/Patrick0307/404-ZOO/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropyValue(t *testing.T) {
	t.Parallel()

	base := Entropy{
		Height: 123456,
		Unix:   1700000000,
		Caller: game.Identity{1, 2, 3},
		Salt:   7,
	}

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, base.Value(), base.Value())
	})

	t.Run("every_input_matters", func(t *testing.T) {
		t.Parallel()

		v := base.Value()

		height := base
		height.Height++
		assert.NotEqual(t, v, height.Value())

		unix := base
		unix.Unix++
		assert.NotEqual(t, v, unix.Value())

		caller := base
		caller.Caller[31] = 0xff
		assert.NotEqual(t, v, caller.Value())

		salt := base
		salt.Salt++
		assert.NotEqual(t, v, salt.Value())
	})
}

func TestBandsValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, DefaultBands.Validate())
	assert.NoError(t, Bands{CommonPct: 100}.Validate())
	assert.ErrorIs(t, Bands{CommonPct: 70, RarePct: 27, LegendaryPct: 4}.Validate(), game.ErrInvalidBands)
	assert.ErrorIs(t, Bands{}.Validate(), game.ErrInvalidBands)
}

func TestBandsRoll(t *testing.T) {
	t.Parallel()

	b := DefaultBands

	// every residue lands in exactly one band at the documented boundaries
	tests := []struct {
		roll uint64
		want game.Rarity
	}{
		{roll: 0, want: game.RarityCommon},
		{roll: 69, want: game.RarityCommon},
		{roll: 70, want: game.RarityRare},
		{roll: 96, want: game.RarityRare},
		{roll: 97, want: game.RarityLegendary},
		{roll: 99, want: game.RarityLegendary},
		{roll: 100, want: game.RarityCommon}, // wraps mod 100
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Roll(tt.roll), "roll %d", tt.roll)
	}

	// exhaustive partition: each residue maps to some tier, counts match widths
	var counts [3]int
	for v := uint64(0); v < 100; v++ {
		counts[b.Roll(v)]++
	}

	assert.Equal(t, 70, counts[game.RarityCommon])
	assert.Equal(t, 27, counts[game.RarityRare])
	assert.Equal(t, 3, counts[game.RarityLegendary])
}

func TestSelectCard(t *testing.T) {
	t.Parallel()

	t.Run("empty_pool", func(t *testing.T) {
		t.Parallel()

		_, err := SelectCard(nil, 42)
		assert.ErrorIs(t, err, game.ErrEmptyPool)
	})

	t.Run("single_member", func(t *testing.T) {
		t.Parallel()

		got, err := SelectCard([]uint32{9}, 123456789)
		require.NoError(t, err)
		assert.Equal(t, uint32(9), got)
	})

	t.Run("wraps_by_len", func(t *testing.T) {
		t.Parallel()

		pool := []uint32{10, 20, 30}

		got, err := SelectCard(pool, 4) // 4 % 3 == 1
		require.NoError(t, err)
		assert.Equal(t, uint32(20), got)
	})
}

func TestRollStats(t *testing.T) {
	t.Parallel()

	tpl := game.Template{
		MinAttack: 10, MaxAttack: 20,
		MinHealth: 30, MaxHealth: 40,
	}

	t.Run("always_in_range", func(t *testing.T) {
		t.Parallel()

		for _, v := range []uint64{0, 1, 99, 1 << 31, 1<<63 - 1, ^uint64(0)} {
			attack, health := RollStats(tpl, v)
			assert.GreaterOrEqual(t, attack, tpl.MinAttack)
			assert.LessOrEqual(t, attack, tpl.MaxAttack)
			assert.GreaterOrEqual(t, health, tpl.MinHealth)
			assert.LessOrEqual(t, health, tpl.MaxHealth)
		}
	})

	t.Run("fixed_stat", func(t *testing.T) {
		t.Parallel()

		fixed := game.Template{MinAttack: 5, MaxAttack: 5, MinHealth: 7, MaxHealth: 7}

		attack, health := RollStats(fixed, ^uint64(0))
		assert.Equal(t, uint16(5), attack)
		assert.Equal(t, uint16(7), health)
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		a1, h1 := RollStats(tpl, 0x00000001_00000005)
		a2, h2 := RollStats(tpl, 0x00000001_00000005)
		assert.Equal(t, a1, a2)
		assert.Equal(t, h1, h2)
	})
}
