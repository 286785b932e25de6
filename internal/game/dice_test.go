package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnd-server/internal/game"
)

func TestWrapDiceRolls(t *testing.T) {
	t.Run("wraps bracketed notation", func(t *testing.T) {
		got := game.WrapDiceRolls("Make a check [d20+5] and damage [2d6]")
		assert.Equal(t, "Make a check `[d20+5]` and damage `[2d6]`", got)
	})

	t.Run("idempotent", func(t *testing.T) {
		text := "Roll `[d20+5]` now"
		assert.Equal(t, text, game.WrapDiceRolls(text))
		assert.Equal(t, text, game.WrapDiceRolls(game.WrapDiceRolls(text)))
	})

	t.Run("mixed wrapped and unwrapped", func(t *testing.T) {
		got := game.WrapDiceRolls("attack `[1d20]` then damage [1d8-1]")
		assert.Equal(t, "attack `[1d20]` then damage `[1d8-1]`", got)
	})

	t.Run("leaves other bracketed text alone", func(t *testing.T) {
		text := "This is [not dice] and [d20x] too"
		assert.Equal(t, text, game.WrapDiceRolls(text))
	})

	t.Run("negative modifier", func(t *testing.T) {
		assert.Equal(t, "`[4d6-2]`", game.WrapDiceRolls("[4d6-2]"))
	})
}

func TestParseNotation(t *testing.T) {
	t.Run("count defaults to one", func(t *testing.T) {
		n, err := game.ParseNotation("d20")
		require.NoError(t, err)
		assert.Equal(t, game.Notation{Count: 1, Sides: 20}, n)
	})

	t.Run("full notation", func(t *testing.T) {
		n, err := game.ParseNotation("2d6+3")
		require.NoError(t, err)
		assert.Equal(t, game.Notation{Count: 2, Sides: 6, Modifier: 3}, n)
	})

	t.Run("negative modifier", func(t *testing.T) {
		n, err := game.ParseNotation("4d8-1")
		require.NoError(t, err)
		assert.Equal(t, game.Notation{Count: 4, Sides: 8, Modifier: -1}, n)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, s := range []string{"", "20", "d", "2d", "dd20", "2d6+", "1d6 + 2x"} {
			_, err := game.ParseNotation(s)
			assert.Error(t, err, "notation %q", s)
		}
	})

	t.Run("rejects out of range", func(t *testing.T) {
		_, err := game.ParseNotation("999d6")
		assert.Error(t, err)

		_, err = game.ParseNotation("1d1")
		assert.Error(t, err)

		_, err = game.ParseNotation("0d6")
		assert.Error(t, err)
	})
}

func TestRoll(t *testing.T) {
	t.Run("totals within bounds", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			result, err := game.Roll("2d6+3")
			require.NoError(t, err)

			assert.Len(t, result.Rolls, 2)
			assert.Equal(t, 3, result.Modifier)
			assert.GreaterOrEqual(t, result.Total, 5)
			assert.LessOrEqual(t, result.Total, 15)

			sum := result.Modifier
			for _, r := range result.Rolls {
				assert.GreaterOrEqual(t, r, 1)
				assert.LessOrEqual(t, r, 6)
				sum += r
			}
			assert.Equal(t, result.Total, sum)
		}
	})

	t.Run("invalid notation", func(t *testing.T) {
		_, err := game.Roll("banana")
		assert.Error(t, err)
	})
}
