package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	newsletter "vesalius/contexts/community-experience/newsletter-service"
	newsletteremail "vesalius/contexts/community-experience/newsletter-service/adapters/email"
	newsletterpostgres "vesalius/contexts/community-experience/newsletter-service/adapters/postgres"
	accounts "vesalius/contexts/identity-access/account-service"
	accountsemail "vesalius/contexts/identity-access/account-service/adapters/email"
	accountsevents "vesalius/contexts/identity-access/account-service/adapters/events"
	accountspostgres "vesalius/contexts/identity-access/account-service/adapters/postgres"
	accountsworkers "vesalius/contexts/identity-access/account-service/application/workers"
	authorization "vesalius/contexts/identity-access/authorization-service"
	"vesalius/contexts/identity-access/authorization-service/adapters/supabase"
	authzports "vesalius/contexts/identity-access/authorization-service/ports"
	articles "vesalius/contexts/knowledge-base/article-service"
	"vesalius/contexts/knowledge-base/article-service/adapters/imagegen"
	articlespostgres "vesalius/contexts/knowledge-base/article-service/adapters/postgres"
	articlesports "vesalius/contexts/knowledge-base/article-service/ports"
	"vesalius/internal/platform/config"
	"vesalius/internal/platform/db"
	"vesalius/internal/platform/httpserver"
	"vesalius/internal/platform/messaging"
	"vesalius/internal/platform/ratelimit"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	kafka    *messaging.KafkaPublisher
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	kafka        *messaging.KafkaPublisher
	outboxRelay  accountsworkers.OutboxRelay
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	bus, kafka, err := buildEventPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}
	publisher := accountsevents.NewPublisher(bus, cfg.KafkaEventTopic, logger)
	accountsNotifier := accountsemail.NewNotifier(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom, logger)
	newsletterNotifier := newsletteremail.NewNotifier(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.EmailFrom, logger)

	var images articlesports.ImageGenerator
	if strings.TrimSpace(cfg.ImageAPIURL) != "" {
		images = imagegen.NewClient(cfg.ImageAPIURL, cfg.ImageAPIKey, logger)
	}

	var (
		pg               *db.Postgres
		accountsModule   accounts.Module
		newsletterModule newsletter.Module
		articlesModule   articles.Module
		directory        authzports.Directory
	)

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(allModels()...); err != nil {
			_ = pg.Close()
			return nil, err
		}

		accountsRepo := accountspostgres.NewRepository(pg.DB, logger)
		accountsModule = accounts.NewModule(accounts.Dependencies{
			Repository:      accountsRepo,
			Outbox:          accountsRepo,
			Notifier:        accountsNotifier,
			Publisher:       publisher,
			Clock:           accountspostgres.SystemClock{},
			IDGenerator:     accountspostgres.UUIDGenerator{},
			OutboxBatchSize: cfg.OutboxBatchSize,
			Logger:          logger,
		})
		directory = accountDirectory{accounts: accountsRepo}

		newsletterModule = newsletter.NewModule(newsletter.Dependencies{
			Repository: newsletterpostgres.NewRepository(pg.DB, logger),
			Clock:      newsletterpostgres.SystemClock{},
			Tokens:     newsletterpostgres.UUIDTokens{},
			Notifier:   newsletterNotifier,
			Logger:     logger,
		})
		articlesModule = articles.NewModule(articles.Dependencies{
			Repository:  articlespostgres.NewRepository(pg.DB, logger),
			Images:      images,
			Clock:       articlespostgres.SystemClock{},
			IDGenerator: articlespostgres.UUIDGenerator{},
			Logger:      logger,
		})
	} else {
		logger.Warn("POSTGRES_DSN not set, using in-memory storage",
			"event", "bootstrap_memory_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		accountsModule = accounts.NewInMemoryModule(accountsNotifier, publisher, logger)
		directory = accountDirectory{accounts: accountsModule.Store}
		newsletterModule = newsletter.NewInMemoryModule(newsletterNotifier, logger)
		articlesModule = articles.NewInMemoryModule(images, logger)
	}

	verifier := supabase.NewVerifier(supabase.Config{
		URL:       cfg.SupabaseURL,
		AnonKey:   cfg.SupabaseAnonKey,
		JWTSecret: cfg.SupabaseJWTSecret,
	}, logger)
	authzModule := authorization.NewModule(authorization.Dependencies{
		Verifier:  verifier,
		Directory: directory,
		Logger:    logger,
	})

	server := httpserver.New(
		accountsModule,
		authzModule,
		newsletterModule,
		articlesModule,
		ratelimit.New(nil),
		httpserver.RateLimits{
			AdminLimit:   cfg.AdminRateLimit,
			AdminWindow:  cfg.AdminRateWindow,
			PublicLimit:  cfg.PublicRateLimit,
			PublicWindow: cfg.PublicRateWindow,
		},
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		kafka:    kafka,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	bus, kafka, err := buildEventPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}
	publisher := accountsevents.NewPublisher(bus, cfg.KafkaEventTopic, logger)

	var (
		pg     *db.Postgres
		outbox accountsworkers.OutboxRelay
	)
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		repo := accountspostgres.NewRepository(pg.DB, logger)
		outbox = accountsworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: publisher,
			Clock:     accountspostgres.SystemClock{},
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		}
	} else {
		// The in-memory store is process-local, so a standalone worker
		// relays an always-empty outbox. Wire it anyway to keep local
		// smoke runs honest.
		logger.Warn("POSTGRES_DSN not set, worker relays an in-memory outbox",
			"event", "bootstrap_memory_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		module := accounts.NewInMemoryModule(nil, publisher, logger)
		outbox = module.Relay
	}

	return &WorkerApp{
		postgres:     pg,
		kafka:        kafka,
		outboxRelay:  outbox,
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.kafka != nil {
		_ = a.kafka.Close()
	}
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.kafka != nil {
		_ = w.kafka.Close()
	}
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// buildEventPublisher picks the external broker when configured and the
// in-process bus otherwise. The Kafka handle is returned separately so
// Close can flush it.
func buildEventPublisher(cfg config.Config, logger *slog.Logger) (messaging.Publisher, *messaging.KafkaPublisher, error) {
	if cfg.EnableKafka {
		kafka, err := messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaEventTopic, logger)
		if err != nil {
			return nil, nil, err
		}
		return kafka, kafka, nil
	}
	return messaging.NewBus(logger), nil, nil
}

func allModels() []any {
	models := accountspostgres.Models()
	models = append(models, newsletterpostgres.Models()...)
	models = append(models, articlespostgres.Models()...)
	return models
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
