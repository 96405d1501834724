package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrMoveNotCached = errors.New("move not cached")

// MoveCache - stores best moves computed for a board and the side to move.
type MoveCache interface {
	Get(ctx context.Context, board entity.Board, mark entity.Mark) (int, error)
	Set(ctx context.Context, board entity.Board, mark entity.Mark, cell int) error
}

type cachedMove struct {
	Board string `json:"board"`
	Mark  string `json:"mark"`
	Cell  int    `json:"cell"`
}

type redisMoveCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMoveCache - ttl of zero keeps entries forever.
func NewRedisMoveCache(client *redis.Client, ttl time.Duration) MoveCache {
	return &redisMoveCache{
		client: client,
		ttl:    ttl,
	}
}

func (that *redisMoveCache) Get(ctx context.Context, board entity.Board, mark entity.Mark) (int, error) {
	response, err := that.client.Get(ctx, moveKey(board, mark)).Result()

	if errors.Is(err, redis.Nil) {
		return 0, ErrMoveNotCached
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get move: %w", err)
	}

	var move cachedMove
	if err = json.Unmarshal([]byte(response), &move); err != nil {
		return 0, fmt.Errorf("failed to unmarshal move: %w", err)
	}

	return move.Cell, nil
}

func (that *redisMoveCache) Set(ctx context.Context, board entity.Board, mark entity.Mark, cell int) error {
	moveJSON, err := json.Marshal(cachedMove{
		Board: board.Key(),
		Mark:  mark.String(),
		Cell:  cell,
	})
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	if err = that.client.Set(ctx, moveKey(board, mark), moveJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set move: %w", err)
	}

	return nil
}

func moveKey(board entity.Board, mark entity.Mark) string {
	return "move:" + board.Key() + ":" + mark.String()
}
