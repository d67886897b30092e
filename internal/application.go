package application

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/wordgame-backend/internal/config"
	"github.com/rocketscienceinc/wordgame-backend/internal/lock"
	"github.com/rocketscienceinc/wordgame-backend/internal/notify"
	"github.com/rocketscienceinc/wordgame-backend/internal/repository"
	"github.com/rocketscienceinc/wordgame-backend/internal/repository/storage"
	"github.com/rocketscienceinc/wordgame-backend/internal/service"
	"github.com/rocketscienceinc/wordgame-backend/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger zerolog.Logger, conf *config.Config) error {
	log := logger.With().Str("component", "app").Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info().Stringer("signal", sig).Msg("Received signal, shutting down")
		cancel()
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error().Err(err).Msg("could not close sqlite storage")
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	var redisStorage *storage.RedisStorage
	if conf.Redis.Enabled {
		if redisStorage, err = storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr()); err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error().Err(err).Msg("could not close redis storage")
			}
		}()
	}

	var locker lock.Locker = lock.NewSQLLocker(sqliteStorage.Connection)
	if conf.Lock.Backend == config.LockBackendRedis {
		locker = lock.NewRedisLocker(redisStorage.Connection)
	}

	notifier := notify.NewNopNotifier()
	if redisStorage != nil {
		notifier = notify.NewRedisNotifier(redisStorage.Connection, conf.Notifications.Channel)
	}

	asyncNotifier := notify.NewAsyncNotifier(logger, notifier, conf.Notifications.Timeout())
	defer asyncNotifier.Wait()

	gameRepo := repository.NewGameRepository(sqliteStorage.Connection)
	moveRepo := repository.NewMoveRepository(sqliteStorage.Connection)
	layoutRepo := repository.NewBoardLayoutRepository(sqliteStorage.Connection)
	dictionaryRepo := repository.NewDictionaryRepository(sqliteStorage.Connection)

	catalog, err := service.Bootstrap(ctx, logger, layoutRepo, dictionaryRepo, conf.Dictionary.Name, wordList(conf.Dictionary.ImportPath))
	if err != nil {
		return fmt.Errorf("could not bootstrap catalog: %w", err)
	}

	lockOpts := lock.Options{Expire: conf.Lock.Expire(), Block: conf.Lock.Block()}
	gamePlayService := service.NewGamePlayService(logger, locker, lockOpts, gameRepo, dictionaryRepo, asyncNotifier)
	gameService := service.NewGameService(logger, gameRepo, moveRepo, layoutRepo, asyncNotifier)
	authService := service.NewAuthService(conf.JWTSecretKey)

	handler := rest.NewRouter(logger, authService, rest.NewGameHandler(gamePlayService, gameService, lockOpts.Expire, *catalog))

	log.Info().Str("port", conf.HTTPPort).Str("lock", conf.Lock.Backend).Bool("redis", conf.Redis.Enabled).Msg("Starting HTTP server")
	if err = rest.Start(ctx, conf.HTTPPort, handler); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info().Msg("Application context canceled, shutting down")

	return nil
}

func wordList(path string) func() (io.ReadCloser, error) {
	if path == "" {
		return nil
	}

	return func() (io.ReadCloser, error) {
		return os.Open(path)
	}
}
