package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

type Game struct {
	ID      string
	Board   Board
	Turn    Mark
	Status  string
	Outcome Outcome
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Turn:   X,
		Status: StatusOngoing,
	}
}

// MakeTurn - validates and applies a move, then passes the turn or finishes the game.
func (that *Game) MakeTurn(mark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, that.Turn)
	}

	if err := that.Board.Place(cell, mark); err != nil {
		return err
	}

	that.Turn = mark.Opponent()
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	that.Outcome = that.Board.Winner()

	if that.Outcome.IsOngoing() {
		that.Status = StatusOngoing
		return
	}

	that.Status = StatusFinished
	that.Turn = Empty
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
