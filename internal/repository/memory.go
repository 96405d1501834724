package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type memoryKey struct {
	board entity.Board
	mark  entity.Mark
}

type memoryMoveCache struct {
	mu    sync.RWMutex
	moves map[memoryKey]int
}

func NewMemoryMoveCache() MoveCache {
	return &memoryMoveCache{
		moves: make(map[memoryKey]int),
	}
}

func (that *memoryMoveCache) Get(_ context.Context, board entity.Board, mark entity.Mark) (int, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	cell, ok := that.moves[memoryKey{board: board, mark: mark}]
	if !ok {
		return 0, ErrMoveNotCached
	}

	return cell, nil
}

func (that *memoryMoveCache) Set(_ context.Context, board entity.Board, mark entity.Mark, cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.moves[memoryKey{board: board, mark: mark}] = cell

	return nil
}

type noopMoveCache struct{}

// NewNoopMoveCache - cache that never stores anything.
func NewNoopMoveCache() MoveCache {
	return noopMoveCache{}
}

func (noopMoveCache) Get(context.Context, entity.Board, entity.Mark) (int, error) {
	return 0, ErrMoveNotCached
}

func (noopMoveCache) Set(context.Context, entity.Board, entity.Mark, int) error {
	return nil
}
