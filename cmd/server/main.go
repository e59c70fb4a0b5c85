package main

import (
	"context"
	"html/template"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/saeid-a/KickoffCoachWeb/internal/backend"
	"github.com/saeid-a/KickoffCoachWeb/internal/config"
	"github.com/saeid-a/KickoffCoachWeb/internal/database"
	"github.com/saeid-a/KickoffCoachWeb/internal/handlers"
	"github.com/saeid-a/KickoffCoachWeb/internal/middleware"
	"github.com/saeid-a/KickoffCoachWeb/internal/repository"
	"github.com/saeid-a/KickoffCoachWeb/internal/routes"
	"github.com/saeid-a/KickoffCoachWeb/internal/session"
	"github.com/saeid-a/KickoffCoachWeb/internal/views"
	availabilityws "github.com/saeid-a/KickoffCoachWeb/internal/websocket"
	"github.com/saeid-a/KickoffCoachWeb/pkg/utils"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := utils.NewLogger("production", "info")
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	logger := utils.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if cfg.EnvFileMissing {
		logger.Info().Msg("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Session store
	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("store", cfg.SessionStore).Msg("failed to open session store")
	}
	defer closeStore()

	manager, err := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session manager")
	}
	if err := manager.Init(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise sessions")
	}
	go manager.RunJanitor(ctx, cfg.SessionPurge)

	// 3. Backend client, hub, views
	client := backend.NewClient(backend.Options{
		BaseURL:           cfg.APIURL,
		CookieName:        cfg.BackendCookieName,
		Timeout:           cfg.BackendTimeout,
		RequestsPerSecond: cfg.BackendRPS,
		Burst:             cfg.BackendBurst,
		Logger:            &logger,
	})

	hub := availabilityws.NewHub(logger)
	go hub.Run(ctx)

	engine, err := views.New(cfg.IsDevelopment())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load templates")
	}
	about, err := loadAbout(cfg.AboutFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to render about page")
	}

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          handlers.ErrorHandler(logger),
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.TrimSpace(cfg.CORSOrigins),
			AllowCredentials: true,
		}))
	}

	routes.RegisterRoutes(app, cfg, routes.Dependencies{
		Backend:  client,
		Sessions: manager,
		Hub:      hub,
		About:    about,
		Logger:   logger,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown")
		}
	}()

	// 5. Start Server
	logger.Info().Str("port", cfg.Port).Str("api_url", cfg.APIURL).Str("session_store", cfg.SessionStore).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server failed to start")
	}
}

func openSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStorePostgres:
		pool, err := database.Connect(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewWebSessionRepository(pool)
		return session.NewPostgresStore(repo), pool.Close, nil
	case config.SessionStoreRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client), func() { _ = client.Close() }, nil
	case config.SessionStoreMemory:
		return session.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, session.ErrUnknownDriver
	}
}

func loadAbout(path string) (template.HTML, error) {
	source := views.DefaultAbout()
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		source = content
	}
	return views.RenderMarkdown(source)
}
