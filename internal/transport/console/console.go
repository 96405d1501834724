package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	promptMark = "Play as X or O? "
	promptCell = "Enter Number: "

	msgCellNotAvailable = "Cell Not Available."
)

type turnMaker interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type inputLine struct {
	text string
	err  error
}

// Console - plays games against the bot over a line-based text stream.
type Console struct {
	logger *slog.Logger
	bot    turnMaker

	in         *bufio.Scanner
	lines      chan inputLine
	readerOnce sync.Once
	out        io.Writer
}

func New(logger *slog.Logger, bot turnMaker, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		bot:    bot,
		in:     bufio.NewScanner(in),
		lines:  make(chan inputLine, 1),
		out:    out,
	}
}

// AskMark - asks which side the human plays until a valid mark is entered.
func (that *Console) AskMark(ctx context.Context) (entity.Mark, error) {
	for {
		line, err := that.readLine(ctx, promptMark)
		if err != nil {
			return entity.Empty, err
		}

		mark, err := entity.ParseMark(line)
		if err == nil {
			return mark, nil
		}
	}
}

// Play - runs one game, the human plays humanMark and the bot the other side.
func (that *Console) Play(ctx context.Context, humanMark entity.Mark) (entity.Outcome, error) {
	if !humanMark.IsPlayer() {
		return entity.Ongoing, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, humanMark)
	}

	game := entity.NewGame(uuid.NewString())
	log := that.logger.With("gameID", game.ID, "human", humanMark.String())
	log.Info("game started")

	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return entity.Ongoing, fmt.Errorf("game interrupted: %w", err)
		}

		if game.Turn == humanMark {
			if err := that.humanTurn(ctx, game, humanMark); err != nil {
				return entity.Ongoing, err
			}
			continue
		}

		if err := that.bot.MakeTurn(ctx, game); err != nil {
			return entity.Ongoing, fmt.Errorf("bot turn failed: %w", err)
		}
	}

	that.printBoard(game.Board)
	that.println(game.Outcome.String())

	log.Info("game finished", "outcome", game.Outcome.String())

	return game.Outcome, nil
}

// humanTurn - reads 1-indexed cells until one is accepted by the game.
func (that *Console) humanTurn(ctx context.Context, game *entity.Game, mark entity.Mark) error {
	that.printBoard(game.Board)

	for {
		line, err := that.readLine(ctx, promptCell)
		if err != nil {
			return err
		}

		number, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			that.rejectCell(game.Board)
			continue
		}

		err = game.MakeTurn(mark, number-1)
		if errors.Is(err, apperror.ErrInvalidMove) {
			that.rejectCell(game.Board)
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		return nil
	}
}

// readLine - waits for the next input line or for ctx to be done, whichever comes first.
// A read blocked on stdin is left behind when ctx is canceled.
func (that *Console) readLine(ctx context.Context, prompt string) (string, error) {
	that.readerOnce.Do(func() {
		go that.readInput()
	})

	fmt.Fprint(that.out, prompt)

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("input interrupted: %w", ctx.Err())
	case line, ok := <-that.lines:
		if !ok {
			return "", io.ErrUnexpectedEOF
		}

		return line.text, line.err
	}
}

func (that *Console) readInput() {
	defer close(that.lines)

	for that.in.Scan() {
		that.lines <- inputLine{text: that.in.Text()}
	}

	if err := that.in.Err(); err != nil {
		that.lines <- inputLine{err: fmt.Errorf("failed to read input: %w", err)}
	}
}

func (that *Console) rejectCell(board entity.Board) {
	that.printBoard(board)
	that.println(msgCellNotAvailable)
}

func (that *Console) printBoard(board entity.Board) {
	fmt.Fprintf(that.out, "\n%s\n", board.String())
}

func (that *Console) println(msg string) {
	fmt.Fprintln(that.out, msg)
}
