package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// every number once: the human always takes the lowest free cell
const ascendingCells = "1\n2\n3\n4\n5\n6\n7\n8\n9\n"

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}

	return newConsole(strings.NewReader(input), out), out
}

func newConsole(in io.Reader, out io.Writer) *Console {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	bot := service.NewBotService(logger, repository.NewMemoryMoveCache())

	return New(logger, bot, in, out)
}

func TestConsole_AskMark(t *testing.T) {
	t.Run("Re-prompts until X or O is entered", func(t *testing.T) {
		// Given: an invalid answer followed by a valid one
		c, out := newTestConsole("z\no\n")

		// When: asking for the mark
		mark, err := c.AskMark(context.Background())

		// Then: O is chosen after two prompts
		require.NoError(t, err)
		assert.Equal(t, entity.O, mark)
		assert.Equal(t, 2, strings.Count(out.String(), promptMark))
	})

	t.Run("EOF is an error", func(t *testing.T) {
		c, _ := newTestConsole("")

		_, err := c.AskMark(context.Background())
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestConsole_Play(t *testing.T) {
	ctx := context.Background()

	for _, human := range []entity.Mark{entity.X, entity.O} {
		t.Run("Human never beats the bot as "+human.String(), func(t *testing.T) {
			// Given: a human that always plays the lowest free cell
			c, out := newTestConsole(ascendingCells)

			// When: playing a full game
			outcome, err := c.Play(ctx, human)

			// Then: the game ends with the bot winning or a tie
			require.NoError(t, err)
			assert.False(t, outcome.IsOngoing())
			assert.NotEqual(t, entity.Win(human), outcome)
			assert.True(t, strings.HasSuffix(out.String(), outcome.String()+"\n"))
		})
	}

	t.Run("Bot answers the center with a corner", func(t *testing.T) {
		// Given: the human plays X in the center and then runs out of input
		c, out := newTestConsole("5\n")

		// When: playing
		_, err := c.Play(ctx, entity.X)

		// Then: the board shown on the next human turn has O in the first corner
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Contains(t, out.String(), "    O|2|3\n    4|X|6\n    7|8|9\n")
	})

	t.Run("Rejects invalid and occupied cells with a re-prompt", func(t *testing.T) {
		// Given: garbage, out-of-range input, then the center, then the occupied corner
		c, out := newTestConsole("abc\n0\n10\n5\n1\n" + ascendingCells)

		// When: playing
		_, err := c.Play(ctx, entity.X)

		// Then: each bad input is answered with the board and a re-prompt
		require.NoError(t, err)
		assert.GreaterOrEqual(t, strings.Count(out.String(), msgCellNotAvailable), 4)
		assert.Contains(t, out.String(), "Enter Number: \n    1|2|3\n    4|5|6\n    7|8|9\n\n"+msgCellNotAvailable+"\n")
		assert.Contains(t, out.String(), "Enter Number: \n    O|2|3\n    4|X|6\n    7|8|9\n\n"+msgCellNotAvailable+"\n")
	})

	t.Run("Invalid human mark", func(t *testing.T) {
		c, _ := newTestConsole("")

		_, err := c.Play(ctx, entity.Empty)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Canceling while waiting for input stops the game", func(t *testing.T) {
		// Given: a human whose input never arrives
		reader, writer := io.Pipe()
		t.Cleanup(func() { _ = writer.Close() })
		c := newConsole(reader, io.Discard)

		waiting, cancel := context.WithCancel(ctx)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			_, err := c.Play(waiting, entity.X)
			done <- err
		}()

		// When: the context is canceled while Play waits for a cell
		time.AfterFunc(50*time.Millisecond, cancel)

		// Then: Play returns promptly with the cancellation
		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("Play is still waiting for input after the context was canceled")
		}
	})

	t.Run("Canceled context stops the game", func(t *testing.T) {
		// Given: a canceled context
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		c, _ := newTestConsole(ascendingCells)

		// When: playing
		_, err := c.Play(canceled, entity.X)

		// Then: the game is interrupted
		require.ErrorIs(t, err, context.Canceled)
	})
}
