package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/WIlski54/Adaptives-Lernsystem/internal/ai"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/curriculum"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/engine"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/media"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/oracle"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/platform/cache"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/platform/config"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/platform/database"
	"github.com/WIlski54/Adaptives-Lernsystem/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv, cleanup, err := buildServer(ctx, cfg)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogging(cfg config.LogConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// buildServer wires the curriculum, media index, AI providers, session
// store and dialog engine from configuration. The returned cleanup
// closes any opened connections.
func buildServer(ctx context.Context, cfg *config.Config) (*server, func(), error) {
	registry, err := loadCurriculum(cfg.Curriculum)
	if err != nil {
		return nil, nil, fmt.Errorf("load curriculum: %w", err)
	}

	index, err := loadMedia(cfg.Media)
	if err != nil {
		return nil, nil, fmt.Errorf("load media index: %w", err)
	}

	router := ai.NewRouter()
	if cfg.AI.OpenAI.APIKey != "" {
		opts := []ai.OpenAIOption{ai.WithModel(cfg.AI.OpenAI.Model)}
		if cfg.AI.OpenAI.BaseURL != "" {
			opts = append(opts, ai.WithBaseURL(cfg.AI.OpenAI.BaseURL))
		}
		router.Register("openai", ai.NewOpenAIProvider(cfg.AI.OpenAI.APIKey, opts...))
	}
	if cfg.AI.DeepSeek.APIKey != "" {
		router.Register("deepseek", ai.NewDeepSeekProvider(cfg.AI.DeepSeek.APIKey,
			ai.WithModel(cfg.AI.DeepSeek.Model)))
	}

	adapter := oracle.New(router,
		oracle.WithTimeout(time.Duration(cfg.Oracle.TimeoutSec)*time.Second),
		oracle.WithMaxTokens(cfg.Oracle.MaxTokens),
	)

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var (
		store  session.Store
		events engine.EventLogger = engine.NopEventLogger{}
		ready  []healthChecker
		db     *database.DB
	)

	connectDB := func() error {
		db, err = database.Connect(ctx, database.Options{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		cleanups = append(cleanups, db.Close)
		ready = append(ready, db)
		return nil
	}

	switch cfg.Engine.SessionStore {
	case "postgres":
		if err := connectDB(); err != nil {
			cleanup()
			return nil, nil, err
		}
		store, err = session.NewPostgresStore(ctx, db.Pool)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("init session store: %w", err)
		}
	case "redis":
		c, err := cache.Connect(ctx, cfg.Cache.URL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect cache: %w", err)
		}
		cleanups = append(cleanups, func() { _ = c.Close() })
		ready = append(ready, c)

		ttl := time.Duration(cfg.Cache.SessionTTLMin) * time.Minute
		store = session.NewRedisStore(c.Client, ttl)
	default:
		store = session.NewMemoryStore()
	}

	if cfg.Engine.EventLog {
		if db == nil {
			if err := connectDB(); err != nil {
				cleanup()
				return nil, nil, err
			}
		}
		events, err = engine.NewPostgresEventLogger(ctx, db.Pool)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("init event log: %w", err)
		}
	}

	eng := engine.New(engine.Config{
		Registry:        registry,
		Media:           index,
		Oracle:          adapter,
		Store:           store,
		Events:          events,
		Scoring:         engine.ScoringPolicy(cfg.Engine.ScoringPolicy),
		SourceThreshold: cfg.Engine.SourceThreshold,
	})

	return newServer(eng, registry, ready...), cleanup, nil
}

func loadCurriculum(cfg config.CurriculumConfig) (*curriculum.Registry, error) {
	if cfg.Dir == "" {
		return curriculum.Default(), nil
	}
	return curriculum.NewRegistryFromDir(cfg.Dir)
}

func loadMedia(cfg config.MediaConfig) (*media.Index, error) {
	if cfg.Dir == "" {
		return media.Default(cfg.BaseURL), nil
	}
	return media.NewIndexFromDir(cfg.BaseURL, cfg.Dir)
}
