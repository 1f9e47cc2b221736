// Command boolsearch поднимает HTTP API поиска статей по доменам
// и, если задан токен, телеграм-бота поверх тех же сервисов.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/boolsearch/internal/config"
	"github.com/kitbuilder587/boolsearch/internal/httpapi"
	"github.com/kitbuilder587/boolsearch/internal/metrics"
	"github.com/kitbuilder587/boolsearch/internal/probe"
	"github.com/kitbuilder587/boolsearch/internal/ratelimit"
	"github.com/kitbuilder587/boolsearch/internal/repository"
	"github.com/kitbuilder587/boolsearch/internal/repository/postgres"
	"github.com/kitbuilder587/boolsearch/internal/resolver"
	"github.com/kitbuilder587/boolsearch/internal/routing"
	"github.com/kitbuilder587/boolsearch/internal/search"
	"github.com/kitbuilder587/boolsearch/internal/search/serpapi"
	"github.com/kitbuilder587/boolsearch/internal/search/valueserp"
	"github.com/kitbuilder587/boolsearch/internal/service"
	"github.com/kitbuilder587/boolsearch/internal/telegram"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("fatal", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	m := metrics.New()

	rules, err := loadRules(cfg.Routing)
	if err != nil {
		return err
	}

	prober := probe.New(probe.Config{
		Timeout:     cfg.Probe.Timeout,
		SlowTimeout: cfg.Probe.SlowTimeout,
	}, rules, logger, m)

	standard, alternate := buildProviders(cfg, logger)

	res := resolver.New(resolver.Deps{
		Classifier: routing.NewClassifier(rules),
		Prober:     prober,
		Standard:   standard,
		Alternate:  alternate,
		Logger:     logger,
		Metrics:    m,
	})

	var runs repository.RunRepository
	if cfg.HasStorage() {
		db, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		runs = postgres.NewRunRepo(db)
		logger.Info("run storage enabled")
	} else {
		logger.Warn("DATABASE_URL not set, run history disabled")
	}

	searchSvc := service.NewSearchService(service.SearchServiceDeps{
		Resolver: res,
		Logger:   logger,
		Metrics:  m,
	})
	runSvc := service.NewRunService(service.RunServiceDeps{
		Search:  searchSvc,
		Runs:    runs,
		Logger:  logger,
		Metrics: m,
		Config: service.RunConfig{
			Concurrency: cfg.Run.Concurrency,
			Pause:       cfg.Run.Pause,
			MaxPairs:    cfg.Run.MaxPairs,
		},
	})

	deps := httpapi.Deps{
		Search:         searchSvc,
		Runs:           runSvc,
		Logger:         logger,
		Metrics:        m,
		MetricsHandler: metrics.Handler(),
		Health: httpapi.Health{
			HasAPIKey:       res.HasStandard(),
			HasAlternateKey: res.HasAlternate(),
			Storage:         runs != nil,
		},
	}
	// 0 - лимит выключен
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter := ratelimit.New(ratelimit.Config{RequestsPerMinute: cfg.RateLimit.RequestsPerMinute})
		defer limiter.Stop()
		deps.Limiter = limiter
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           httpapi.New(deps).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	var bot *telegram.Bot
	if cfg.HasTelegram() {
		bot, err = telegram.New(telegram.BotConfig{
			Token:             cfg.Telegram.Token,
			Debug:             cfg.Telegram.Debug,
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		}, searchSvc, runSvc, logger, m)
		if err != nil {
			return fmt.Errorf("telegram bot: %w", err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening",
			zap.String("addr", srv.Addr),
			zap.Bool("valueserp", standard != nil),
			zap.Bool("alternate", alternate != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if bot != nil {
		g.Go(func() error {
			return bot.Run(ctx)
		})
	}

	return g.Wait()
}

func loadRules(cfg config.RoutingConfig) (*routing.Rules, error) {
	if cfg.File == "" {
		return routing.DefaultRules()
	}
	rules, err := routing.LoadRules(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("load routing rules: %w", err)
	}
	return rules, nil
}

// buildProviders: msn.com идет через SerpAPI, если есть ключ, иначе через bing в ValueSERP.
// Без ключа ValueSERP внешний поиск не настроен вовсе.
func buildProviders(cfg *config.Config, logger *zap.Logger) (standard, alternate search.Provider) {
	if cfg.ValueSERP.APIKey != "" {
		standard = valueserp.New(valueserp.Config{
			APIKey:   cfg.ValueSERP.APIKey,
			BaseURL:  cfg.ValueSERP.BaseURL,
			Location: cfg.Search.Location,
			Country:  cfg.Search.Country,
			Language: cfg.Search.Language,
			Timeout:  cfg.Search.Timeout,
		}, logger)
	}

	switch {
	case cfg.SerpAPI.APIKey != "":
		alternate = serpapi.New(serpapi.Config{
			APIKey:  cfg.SerpAPI.APIKey,
			BaseURL: cfg.SerpAPI.BaseURL,
			Country: cfg.Search.Country,
			Timeout: cfg.Search.Timeout,
		}, logger)
	case cfg.ValueSERP.APIKey != "":
		alternate = valueserp.New(valueserp.Config{
			APIKey:   cfg.ValueSERP.APIKey,
			BaseURL:  cfg.ValueSERP.BaseURL,
			Engine:   valueserp.EngineBing,
			Location: cfg.Search.Location,
			Country:  cfg.Search.Country,
			Language: cfg.Search.Language,
			Timeout:  cfg.Search.Timeout,
		}, logger)
	}

	return standard, alternate
}
