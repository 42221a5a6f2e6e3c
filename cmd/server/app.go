package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taskhub/taskhub-api/internal/api"
	"github.com/taskhub/taskhub-api/internal/config"
	"github.com/taskhub/taskhub-api/internal/generation"
	"github.com/taskhub/taskhub-api/internal/platform/gemini"
	"github.com/taskhub/taskhub-api/internal/platform/kafka"
	"github.com/taskhub/taskhub-api/internal/platform/memory"
	"github.com/taskhub/taskhub-api/internal/platform/pokeapi"
	"github.com/taskhub/taskhub-api/internal/platform/postgres"
	"github.com/taskhub/taskhub-api/internal/platform/rediscache"
	"github.com/taskhub/taskhub-api/internal/platform/supabase"
	"github.com/taskhub/taskhub-api/internal/service"
	"github.com/taskhub/taskhub-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Optional backing services; nil when not configured.
	db     *sql.DB
	redis  *redis.Client
	events *kafka.TaskEventPublisher

	taskService    service.TaskService
	blogService    service.BlogService // nil disables /blog
	accountService service.AccountService
	jwtService     auth.JWTService
	creatures      api.CreatureClient
	agent          generation.Agent // nil disables /ai/query
}

// newApplication creates a new application instance with all dependencies
// initialized. Optional components are only built when configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	var taskOpts []service.TaskServiceOption
	if cfg.Events.Enabled() {
		app.events = kafka.NewTaskEventPublisher(cfg.Events, logger)
		taskOpts = append(taskOpts, service.WithEventPublisher(app.events))
		logger.Info("Publishing task events", "topic", cfg.Events.Topic, "brokers", len(cfg.Events.KafkaBrokers))
	}

	registry := memory.NewTaskRegistry(logger, memory.WithLatency(registryLatency(cfg.Registry)))
	app.taskService, err = service.NewTaskService(registry, logger, taskOpts...)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT verification initialized", "audience", cfg.Auth.Audience)

	identity := supabase.NewAuthClient(cfg.Auth, logger)
	app.accountService, err = service.NewAccountService(identity, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	var creatures api.CreatureClient = pokeapi.NewClient(cfg.PokeAPI, logger)
	if cfg.PokeAPI.CacheEnabled() {
		app.redis, err = rediscache.Open(ctx, cfg.PokeAPI.CacheURL)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to connect to PokeAPI cache: %w", err)
		}
		creatures = rediscache.NewCreatureCache(app.redis, creatures, cfg.PokeAPI.CacheTTL(), logger)
		logger.Info("PokeAPI response cache enabled", "ttl", cfg.PokeAPI.CacheTTL())
	}
	app.creatures = creatures

	if cfg.Database.Enabled() {
		if err := app.setupDatabase(ctx); err != nil {
			app.cleanup()
			return nil, err
		}
	} else {
		logger.Warn("No database configured, blog endpoints disabled")
	}

	if cfg.LLM.Enabled() {
		agent, err := gemini.NewAgent(ctx, logger, cfg.LLM, gemini.NewPokemonInfoTool(creatures))
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to initialize LLM agent: %w", err)
		}
		app.agent = agent
		logger.Info("LLM agent initialized successfully", "model", cfg.LLM.ModelName)
	} else {
		logger.Warn("No Gemini API key configured, agent endpoint disabled")
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupDatabase connects to Postgres, applies pending migrations and builds
// the blog service on top of the connection.
func (app *application) setupDatabase(ctx context.Context) error {
	db, err := postgres.Open(ctx, app.config.Database.URL, app.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.db = db

	if err := postgres.Migrate(ctx, db, app.logger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app.blogService, err = service.NewBlogService(postgres.NewPostgresBlogStore(db, app.logger), app.logger)
	if err != nil {
		return fmt.Errorf("failed to create blog service: %w", err)
	}
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.events != nil {
		if err := app.events.Close(); err != nil {
			app.logger.Error("Error flushing task events", "error", err)
		}
		app.events = nil
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing cache connection", "error", err)
		}
		app.redis = nil
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}

	app.logger.Info("Application shutdown completed")
}

func registryLatency(cfg config.RegistryConfig) memory.Latency {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return memory.Latency{
		List:   ms(cfg.ListLatencyMS),
		Get:    ms(cfg.GetLatencyMS),
		Create: ms(cfg.CreateLatencyMS),
		Toggle: ms(cfg.ToggleLatencyMS),
		Delete: ms(cfg.DeleteLatencyMS),
	}
}
