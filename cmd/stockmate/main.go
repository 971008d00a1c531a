package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ariefcatur/stockmate.git/internal/catalog"
	"github.com/ariefcatur/stockmate.git/internal/config"
	"github.com/ariefcatur/stockmate.git/internal/inventory"
	"github.com/ariefcatur/stockmate.git/internal/memstore"
	"github.com/ariefcatur/stockmate.git/internal/menu"
	"github.com/ariefcatur/stockmate.git/internal/orders"
	"github.com/ariefcatur/stockmate.git/internal/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl+C mid-prompt: cancel in-flight store work AND close stdin,
	// otherwise the menu stays blocked in its read until the next keypress.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("shutting down...")
		cancel()
		_ = os.Stdin.Close()
	}()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store init")
	}

	cat := catalog.New(store, log.Logger)
	eng := orders.NewEngine(store, log.Logger)
	m := menu.New(os.Stdin, os.Stdout, cat, eng, log.Logger)

	runErr := m.Run(ctx)
	store.Close() // flush before reporting the failure
	if runErr != nil {
		log.Error().Err(runErr).Msg("session ended with storage failure")
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.Config) (inventory.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		db, err := postgres.Connect(connCtx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.StoreDriver).Msg("store ready")
		return postgres.NewStore(db), nil
	default:
		log.Info().Str("driver", config.DriverMemory).Msg("store ready (state is not persisted)")
		return memstore.New(), nil
	}
}

func setupLogging(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
