package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var centerOpening = entity.Board{4: entity.X}

func TestRedisMoveCache(t *testing.T) {
	t.Run("Set then Get returns the cell", func(t *testing.T) {
		ctx, st := suite.New(t)

		cache := NewRedisMoveCache(st.Storage, 0)

		// Given: a stored move for O after the center opening
		err := cache.Set(ctx, centerOpening, entity.O, 0)
		require.NoError(t, err)

		// When: Get is called with the same board and mark
		cell, err := cache.Get(ctx, centerOpening, entity.O)

		// Then: the stored cell is returned
		require.NoError(t, err)
		assert.Equal(t, 0, cell)

		// Then: the key is readable and has no expiry
		ttl, err := st.Storage.TTL(ctx, "move:....X....:O").Result()
		require.NoError(t, err)
		assert.Equal(t, time.Duration(-1), ttl)
	})

	t.Run("Get on a missing move returns ErrMoveNotCached", func(t *testing.T) {
		ctx, st := suite.New(t)

		cache := NewRedisMoveCache(st.Storage, time.Minute)

		// When: Get is called for a board that was never stored
		_, err := cache.Get(ctx, centerOpening, entity.X)

		// Then: ErrMoveNotCached is returned
		require.ErrorIs(t, err, ErrMoveNotCached)
	})

	t.Run("Set applies the ttl", func(t *testing.T) {
		ctx, st := suite.New(t)

		cache := NewRedisMoveCache(st.Storage, time.Minute)

		// When: a move is stored with a ttl
		require.NoError(t, cache.Set(ctx, centerOpening, entity.O, 0))

		// Then: the key expires
		ttl, err := st.Storage.TTL(ctx, "move:....X....:O").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})
}

func TestMemoryMoveCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Keys by board and mark", func(t *testing.T) {
		cache := NewMemoryMoveCache()

		// Given: a stored move for O
		require.NoError(t, cache.Set(ctx, centerOpening, entity.O, 2))

		// Then: the same board with the other mark is a miss
		cell, err := cache.Get(ctx, centerOpening, entity.O)
		require.NoError(t, err)
		assert.Equal(t, 2, cell)

		_, err = cache.Get(ctx, centerOpening, entity.X)
		require.ErrorIs(t, err, ErrMoveNotCached)
	})

	t.Run("Safe for concurrent use", func(t *testing.T) {
		cache := NewMemoryMoveCache()

		var wg sync.WaitGroup
		for i := 0; i < entity.BoardSize; i++ {
			wg.Add(1)
			go func(cell int) {
				defer wg.Done()

				board := entity.Board{}
				board[cell] = entity.X
				_ = cache.Set(ctx, board, entity.O, cell)
				_, _ = cache.Get(ctx, board, entity.O)
			}(i)
		}
		wg.Wait()

		cell, err := cache.Get(ctx, entity.Board{8: entity.X}, entity.O)
		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})
}

func TestNoopMoveCache(t *testing.T) {
	ctx := context.Background()
	cache := NewNoopMoveCache()

	require.NoError(t, cache.Set(ctx, centerOpening, entity.O, 0))

	_, err := cache.Get(ctx, centerOpening, entity.O)
	require.ErrorIs(t, err, ErrMoveNotCached)
}
