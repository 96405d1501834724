package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
)

type BotService interface {
	ChooseCell(ctx context.Context, board entity.Board, mark entity.Mark) (int, error)
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type moveCache interface {
	Get(ctx context.Context, board entity.Board, mark entity.Mark) (int, error)
	Set(ctx context.Context, board entity.Board, mark entity.Mark, cell int) error
}

type botService struct {
	logger *slog.Logger
	cache  moveCache
}

func NewBotService(logger *slog.Logger, cache moveCache) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		cache:  cache,
	}
}

// ChooseCell - returns the optimal cell for mark. The cache only short-cuts the search,
// its failures are logged and otherwise ignored.
func (that *botService) ChooseCell(ctx context.Context, board entity.Board, mark entity.Mark) (int, error) {
	log := that.logger.With("method", "ChooseCell", "board", board.Key(), "mark", mark.String())

	availableCells := board.AvailableCells()
	if len(availableCells) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	cell, err := that.cache.Get(ctx, board, mark)
	switch {
	case err == nil && slices.Contains(availableCells, cell):
		log.Debug("move cache hit", "cell", cell)
		return cell, nil
	case err == nil:
		log.Warn("cached move is not available, ignoring it", "cell", cell)
	case !errors.Is(err, repository.ErrMoveNotCached):
		log.Warn("failed to read move cache", "error", err)
	}

	cell, err = minimax.BestMove(board, mark)
	if err != nil {
		return 0, fmt.Errorf("failed to find best move: %w", err)
	}

	if err = that.cache.Set(ctx, board, mark, cell); err != nil {
		log.Warn("failed to write move cache", "error", err)
	}

	log.Debug("best move found", "cell", cell)

	return cell, nil
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	cell, err := that.ChooseCell(ctx, game.Board, game.Turn)
	if err != nil {
		return err
	}

	if err = game.MakeTurn(game.Turn, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
