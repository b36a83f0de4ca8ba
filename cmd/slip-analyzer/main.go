package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AC350144/ClutchCall/internal/config"
	"github.com/AC350144/ClutchCall/internal/handlers"
	"github.com/AC350144/ClutchCall/internal/insight"
	"github.com/AC350144/ClutchCall/internal/logger"
	mw "github.com/AC350144/ClutchCall/internal/middleware"
	"github.com/AC350144/ClutchCall/internal/service"
	"github.com/AC350144/ClutchCall/internal/teams"
	"github.com/AC350144/ClutchCall/internal/telegram"
	"github.com/AC350144/ClutchCall/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid config")
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting slip analyzer")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Team data
	directory := teams.NewDirectory()
	if err := directory.Init(); err != nil {
		log.WithError(err).Fatal("failed to load team directory")
	}

	var chain teams.Chain
	var pg *teams.PostgresLookup
	if cfg.Teams.PostgresDSN != "" {
		pg, err = teams.NewPostgresLookup(cfg.Teams.PostgresDSN, directory)
		if err != nil {
			log.WithError(err).Warn("team stats database unavailable, continuing without it")
		} else {
			chain = append(chain, pg)
			log.Info("connected to team stats database")
		}
	}
	if cfg.Teams.FixtureEnabled {
		chain = append(chain, directory)
	}

	var lookup teams.Lookup = chain
	var redisClient *redis.Client
	if cfg.Redis.URL != "" && len(chain) > 0 {
		redisClient, err = connectRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, team stats will not be cached")
			redisClient = nil
		} else {
			lookup = teams.NewCachedLookup(redisClient, chain, cfg.Redis.TTL, log)
			log.WithField("ttl", cfg.Redis.TTL).Info("team stats cache enabled")
		}
	}

	var enricher *insight.Enricher
	if len(chain) > 0 {
		enricher = insight.NewEnricher(lookup, directory, cfg.Analysis.LookupTimeout, log)
	}

	analyzer := service.NewAnalyzer(enricher, service.Options{
		MaxInputChars:   cfg.Analysis.MaxInputChars,
		DefaultBankroll: cfg.Analysis.DefaultBankroll,
	}, log)

	// Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handler := handlers.NewHandler(analyzer, log)
	if pg != nil {
		handler.AddHealthCheck("postgres", pg)
	}
	if redisClient != nil {
		handler.AddHealthCheck("redis", handlers.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
		handler.Routes(r)
	})
	r.Method(http.MethodGet, "/ws/analyze",
		ws.NewHandler(ctx, analyzer, cfg.Server.RequestTimeout, cfg.Server.CORSOrigins, log))

	// Telegram
	if cfg.Telegram.Enabled {
		bot, err := telegram.NewBot(cfg.Telegram.BotToken, analyzer,
			cfg.Telegram.MaxRetries, cfg.Telegram.RetryDelay, cfg.Server.RequestTimeout, log)
		if err != nil {
			log.WithError(err).Warn("telegram bot disabled")
		} else {
			go bot.Listen(ctx)
		}
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":             cfg.Server.Addr,
			"team_sources":     len(chain),
			"default_bankroll": cfg.Analysis.DefaultBankroll,
		}).Info("slip analyzer listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down gracefully")

	// stops websocket sessions and the bot
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
	}

	if redisClient != nil {
		redisClient.Close()
	}
	if pg != nil {
		pg.Close()
	}

	log.Info("slip analyzer stopped")
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
