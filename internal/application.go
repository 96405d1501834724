package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/transport/console"
)

var (
	ErrAddrNotFound       = errors.New("redis address string is empty")
	ErrUnknownCacheDriver = errors.New("unknown cache driver")
)

// RunApp - runs one game between the human on in/out and the bot.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	cache, closeCache, err := newMoveCache(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeCache(); closeErr != nil {
			log.Error("could not close move cache", "error", closeErr)
		}
	}()

	botService := service.NewBotService(logger, cache)
	gameConsole := console.New(logger, botService, in, out)

	humanMark, err := resolveHumanMark(ctx, conf, gameConsole)
	if err != nil {
		return err
	}

	outcome, err := gameConsole.Play(ctx, humanMark)
	if err != nil {
		return fmt.Errorf("game failed: %w", err)
	}

	log.Info("Game over", "outcome", outcome.String())

	return nil
}

func resolveHumanMark(ctx context.Context, conf *config.Config, gameConsole *console.Console) (entity.Mark, error) {
	if conf.HumanMark != "" {
		mark, err := entity.ParseMark(conf.HumanMark)
		if err != nil {
			return entity.Empty, fmt.Errorf("invalid human-mark in config: %w", err)
		}

		return mark, nil
	}

	mark, err := gameConsole.AskMark(ctx)
	if err != nil {
		return entity.Empty, fmt.Errorf("could not read human mark: %w", err)
	}

	return mark, nil
}

func newMoveCache(ctx context.Context, conf *config.Config) (repository.MoveCache, func() error, error) {
	noClose := func() error { return nil }

	switch conf.Cache.Driver {
	case config.CacheDriverNone:
		return repository.NewNoopMoveCache(), noClose, nil
	case config.CacheDriverMemory, "":
		return repository.NewMemoryMoveCache(), noClose, nil
	case config.CacheDriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == ":" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisMoveCache(redisStorage, conf.Cache.TTL), redisStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCacheDriver, conf.Cache.Driver)
	}
}
