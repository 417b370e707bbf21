package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"

	"github.com/councilkit/council/core/billing"
	"github.com/councilkit/council/core/config"
	"github.com/councilkit/council/core/council"
	"github.com/councilkit/council/core/fanout"
	"github.com/councilkit/council/core/persona"
	"github.com/councilkit/council/core/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "councild:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var logCfg logConfig
	config.MustLoad(&logCfg)
	log := newLogger(logCfg)

	var appCfg appConfig
	config.MustLoad(&appCfg)

	var srvCfg server.Config
	config.MustLoad(&srvCfg)

	recorder, err := newRecorder(ctx, appCfg)
	if err != nil {
		return fmt.Errorf("billing: %w", err)
	}

	factory, err := newFactory(ctx, appCfg)
	if err != nil {
		return fmt.Errorf("provider: %w", err)
	}

	svc, err := council.New(persona.DefaultCouncil(appCfg.Model), factory,
		council.WithRecorder(recorder),
		council.WithFetchTimeout(appCfg.FetchTimeout),
		council.WithLogger(log),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("POST /v1/council/stream", council.Handler(svc, log))

	srv, err := server.NewFromConfig(srvCfg, server.WithLogger(log))
	if err != nil {
		return err
	}

	log.Info("councild starting",
		slog.String("addr", srvCfg.Addr),
		slog.String("provider", appCfg.Provider),
		slog.String("model", appCfg.Model),
		slog.String("billing", appCfg.Billing),
	)

	err = srv.Start(ctx, mux)
	if errors.Is(err, context.Canceled) {
		return srv.Stop()
	}
	return err
}

func newLogger(cfg logConfig) *slog.Logger {
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
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func newRecorder(ctx context.Context, cfg appConfig) (fanout.UsageRecorder, error) {
	switch strings.ToLower(cfg.Billing) {
	case "memory":
		return billing.NewMemory(), nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return billing.NewRedis(client, billing.WithTTL(cfg.UsageTTL))
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return billing.NewPostgres(pool)
	default:
		return nil, fmt.Errorf("unknown billing backend %q", cfg.Billing)
	}
}

func newFactory(ctx context.Context, cfg appConfig) (council.ProducerFactory, error) {
	factories := council.Factories{}

	if cfg.OpenAIAPIKey != "" {
		client := openai.NewClient(openaiopt.WithAPIKey(cfg.OpenAIAPIKey))
		factories.OpenAI = &client
	}
	if cfg.AnthropicAPIKey != "" {
		client := anthropic.NewClient(anthropicopt.WithAPIKey(cfg.AnthropicAPIKey))
		factories.Anthropic = &client
	}
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		factories.Gemini = client
	}

	return factories.FactoryFor(strings.ToLower(cfg.Provider))
}
