// Package minimax finds the game-theoretically optimal move on a tic-tac-toe board
// with an exhaustive alpha-beta search.
package minimax

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	winScore = 10

	negInf = math.MinInt
	posInf = math.MaxInt
)

// openingCell is what the search returns for X on an empty board: every opening draws,
// so the lowest index wins the tie.
const openingCell = 0

// Score - static evaluation of a finished board, depth is the number of plies since the search root.
// X maximizes, O minimizes. Faster wins and slower losses score better.
func Score(board *entity.Board, depth int) int {
	switch board.Winner().Winner {
	case entity.X:
		return winScore - depth
	case entity.O:
		return depth - winScore
	default:
		return 0
	}
}

// Search - minimax with alpha-beta pruning. Every placement is undone before the next sibling
// is tried, so the board is identical on return.
func Search(board *entity.Board, depth, alpha, beta int, maximizing bool) int {
	var s searcher
	return s.search(board, depth, alpha, beta, maximizing)
}

// searcher counts the positions visited by one search.
type searcher struct {
	nodes int
}

func (s *searcher) search(board *entity.Board, depth, alpha, beta int, maximizing bool) int {
	s.nodes++

	outcome := board.Winner()
	if !outcome.IsOngoing() {
		return Score(board, depth)
	}

	mark, best := entity.O, posInf
	if maximizing {
		mark, best = entity.X, negInf
	}

	for _, cell := range board.AvailableCells() {
		board[cell] = mark
		result := s.search(board, depth+1, alpha, beta, !maximizing)
		board[cell] = entity.Empty

		if maximizing {
			best = max(best, result)
			alpha = max(alpha, result)
		} else {
			best = min(best, result)
			beta = min(beta, result)
		}

		if beta <= alpha {
			break
		}
	}

	return best
}

// BestMove - returns the optimal cell for mark. Equal scores keep the lowest cell index.
// The board is taken by value and never mutated.
func BestMove(board entity.Board, mark entity.Mark) (int, error) {
	if !mark.IsPlayer() {
		return 0, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if board == (entity.Board{}) && mark == entity.X {
		return openingCell, nil
	}

	return search(&board, mark)
}

func search(board *entity.Board, mark entity.Mark) (int, error) {
	cells := board.AvailableCells()
	if len(cells) == 0 {
		return 0, apperror.ErrNoAvailableMoves
	}

	maximizing := mark == entity.X
	bestCell, bestScore := -1, posInf
	if maximizing {
		bestScore = negInf
	}

	for _, cell := range cells {
		board[cell] = mark
		score := Search(board, 0, negInf, posInf, !maximizing)
		board[cell] = entity.Empty

		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestCell, bestScore = cell, score
		}
	}

	return bestCell, nil
}
