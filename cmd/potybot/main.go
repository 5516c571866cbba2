// Command potybot runs the Telegram global-chat relay bot: an HTTP webhook
// server that fans dot-prefixed messages out to every registered user,
// re-threads replies onto each recipient's own copy, and serves the coin
// wallet, games, and admin panel.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/iman0037/PotyBot/internal/bot"
	"github.com/iman0037/PotyBot/internal/config"
	httpapi "github.com/iman0037/PotyBot/internal/http"
	"github.com/iman0037/PotyBot/internal/observability"
	"github.com/iman0037/PotyBot/internal/relay"
	"github.com/iman0037/PotyBot/internal/repo"
	"github.com/iman0037/PotyBot/internal/services"
	"github.com/iman0037/PotyBot/internal/sysutil"
	"github.com/iman0037/PotyBot/internal/transport"
)

const version = "0.1.0"

// rosterDirectory adapts the user table to the relay's recipient directory.
type rosterDirectory struct {
	db *gorm.DB
}

func (d rosterDirectory) ListRecipients(ctx context.Context) ([]int64, error) {
	return repo.ListUserIDs(ctx, d.db)
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	tg, err := transport.New(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram setup failed")
	}

	// Relay wiring: registry + delivery log + dispatcher share state.
	registry := relay.NewRegistry()
	dlog := relay.NewDeliveryLog(tg)
	dispatcher := relay.NewDispatcher(registry, dlog, tg, rosterDirectory{db: db}, tg,
		cfg.BroadcastRPS, cfg.BroadcastBurst)
	go registry.Run(ctx, cfg.SweepInterval, cfg.OriginTTL)

	// Retention for the webhook dedup table.
	go func() {
		t := time.NewTicker(cfg.SweepInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				n, err := repo.PurgeProcessedBefore(ctx, db, time.Now().Add(-cfg.UpdateDedupTTL))
				if err != nil {
					log.Warn().Err(err).Msg("dedup purge failed")
				} else if n > 0 {
					log.Debug().Int64("purged", n).Msg("dedup purge")
				}
			}
		}
	}()

	admins := make(map[int64]struct{}, len(cfg.Admins))
	for _, id := range cfg.Admins {
		admins[id] = struct{}{}
	}

	handler := &bot.Handler{
		DB:     db,
		Sender: tg,
		Relay:  dispatcher,
		Wallet: &services.WalletService{DB: db, InitialWallet: cfg.InitialWallet, Admins: cfg.Admins},
		Games:  &services.GameService{DB: db, Floor: cfg.WalletFloor},

		Admins:        admins,
		InitialWallet: cfg.InitialWallet,
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, handler, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
