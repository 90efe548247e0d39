package tictactoe

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2)) //nolint: gosec // deterministic tests
}

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"easy":   Easy,
		"medium": Medium,
		"hard":   Hard,
		"":       Hard,
	}

	for input, want := range cases {
		got, err := ParseDifficulty(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDifficulty("impossible")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestNewStrategy(t *testing.T) {
	t.Run("Unknown difficulty", func(t *testing.T) {
		_, err := NewStrategy("nightmare", newTestRand())

		assert.ErrorIs(t, err, ErrUnknownDifficulty)
	})

	t.Run("Every strategy plays a legal move", func(t *testing.T) {
		for _, difficulty := range []Difficulty{Easy, Medium, Hard} {
			// Given: a strategy and a board in progress
			strategy, err := NewStrategy(difficulty, newTestRand())
			require.NoError(t, err)

			board := Board{x, o, e, e, x, e, e, e, e}

			// When: asking for a move
			cell, err := strategy.NextMove(board, PlayerO)

			// Then: an empty cell is returned
			require.NoError(t, err, difficulty)
			assert.Equal(t, EmptyCell, board[cell], difficulty)
		}
	})

	t.Run("Every strategy fails on a full board", func(t *testing.T) {
		for _, difficulty := range []Difficulty{Easy, Medium, Hard} {
			strategy, err := NewStrategy(difficulty, nil)
			require.NoError(t, err)

			cell, err := strategy.NextMove(Board{o, x, o, o, x, x, x, o, x}, PlayerX)

			require.ErrorIs(t, err, ErrNoAvailableMoves, difficulty)
			assert.Equal(t, NoMove, cell)
		}
	})
}

func TestRuleStrategy(t *testing.T) {
	strategy, err := NewStrategy(Medium, newTestRand())
	require.NoError(t, err)

	t.Run("Wins when possible", func(t *testing.T) {
		// Given: O can complete the middle column while X threatens the left column
		board := Board{x, o, x, e, o, e, x, e, e}

		// When: asking for O's move
		cell, err := strategy.NextMove(board, PlayerO)

		// Then: O takes the win
		require.NoError(t, err)
		assert.Equal(t, 7, cell)
	})

	t.Run("Blocks when it must", func(t *testing.T) {
		// Given: X threatens the top row
		board := Board{x, x, e, e, o, e, e, e, e}

		// When: asking for O's move
		cell, err := strategy.NextMove(board, PlayerO)

		// Then: O blocks
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Takes the centre", func(t *testing.T) {
		cell, err := strategy.NextMove(Board{x, e, e, e, e, e, e, e, e}, PlayerO)

		require.NoError(t, err)
		assert.Equal(t, 4, cell)
	})

	t.Run("Takes a corner after the centre", func(t *testing.T) {
		cell, err := strategy.NextMove(Board{e, e, e, e, x, e, e, e, e}, PlayerO)

		require.NoError(t, err)
		assert.Contains(t, cornerCells, cell)
	})

	t.Run("Takes a side when only sides are left", func(t *testing.T) {
		// Given: only the sides are left
		board := Board{x, e, o, e, x, e, o, e, o}

		// When: asking for X's move
		cell, err := strategy.NextMove(board, PlayerX)

		// Then: a side is chosen
		require.NoError(t, err)
		assert.Contains(t, sideCells, cell)
	})
}

func TestRandomStrategy_CoversAllCells(t *testing.T) {
	// Given: an easy strategy and a board with three empty cells
	strategy, err := NewStrategy(Easy, newTestRand())
	require.NoError(t, err)

	board := Board{x, o, x, o, e, o, x, e, e}
	seen := make(map[int]bool)

	// When: asking for many moves
	for range 200 {
		cell, err := strategy.NextMove(board, PlayerX)
		require.NoError(t, err)
		seen[cell] = true
	}

	// Then: every empty cell is eventually chosen
	assert.Equal(t, map[int]bool{4: true, 7: true, 8: true}, seen)
}
