package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/interview-bot/backend/internal/analysis/fallback"
	"github.com/zhouzirui/interview-bot/backend/internal/config"
	"github.com/zhouzirui/interview-bot/backend/internal/handler"
	"github.com/zhouzirui/interview-bot/backend/internal/model/profile"
	"github.com/zhouzirui/interview-bot/backend/internal/service/ai"
	"github.com/zhouzirui/interview-bot/backend/internal/service/dispatch"
	"github.com/zhouzirui/interview-bot/backend/internal/service/interview"
	"github.com/zhouzirui/interview-bot/backend/internal/service/knowledge"
	"github.com/zhouzirui/interview-bot/backend/internal/service/memory"
	"github.com/zhouzirui/interview-bot/backend/internal/service/tracker"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logx.Init()
		logx.Fatal().Err(err).Msg("failed to load configuration")
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment(), Level: cfg.LogLevel})
	if envErr != nil {
		logx.Debug().Err(envErr).Msg("no .env file loaded, continuing with system environment variables only")
	}

	profiles := profile.NewMemoryStore(profile.Seed())
	candidate := profiles.Get()

	mem, closeMemory := newMemory(ctx, cfg)
	defer closeMemory()
	graph, closeGraph := newKnowledge(ctx, cfg.Graph)
	defer closeGraph()

	// 模型不可用时使用关键词回退
	var assistant interview.QuestionAnswerer
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			logx.Warn().Err(err).Str("provider", cfg.AI.Provider).Msg("failed to initialize AI service, continuing with fallback responses")
		} else {
			assistant = interview.NewAssistant(ctx, aiSvc, profiles, mem, graph, interview.AssistantOptions{
				ModelName:    aiSvc.ModelName(),
				ContextLimit: cfg.Memory.ContextLimit,
			})
			logx.Info().Str("provider", cfg.AI.Provider).Str("model", aiSvc.ModelName()).Msg("AI service initialized")
		}
	} else {
		logx.Warn().Str("provider", cfg.AI.Provider).Msg("model credentials not configured, skipping AI initialization")
	}

	responder := interview.NewResponder(assistant, fallback.New(candidate), interview.BreakerSettings{
		ConsecutiveFailures: cfg.AI.BreakerFailures,
		Cooldown:            cfg.AI.BreakerCooldown,
	})
	dispatcher := dispatch.New(tracker.New(), responder)

	router := handler.NewRouter(handler.Dependencies{
		Profiles:      profiles,
		Dispatcher:    dispatcher,
		Responder:     responder,
		Memory:        mem,
		Knowledge:     graph,
		Provider:      cfg.AI.Provider,
		ModelName:     cfg.AI.ModelName(),
		AllowedOrigin: cfg.Server.AllowedOrigin,
		StaticDir:     cfg.Server.StaticDir,
	})

	logx.Info().
		Str("candidate", candidate.Name).
		Str("role", candidate.Role).
		Str("ai_status", responder.Status()).
		Bool("memory", mem.Available()).
		Bool("knowledge_graph", graph.Available()).
		Msg("Voice Interview Bot starting")

	startServer(ctx, cfg.Server, router)
}

func newMemory(ctx context.Context, cfg *config.Config) (memory.Store, func()) {
	noop := func() {}
	switch cfg.Memory.Backend {
	case config.MemoryDisabled:
		logx.Info().Msg("conversation memory disabled by configuration")
		return memory.Disabled{}, noop
	case config.MemoryRedis:
		rdb, err := cfg.Redis.NewContext(ctx)
		if err != nil {
			logx.Warn().Err(err).Msg("redis unavailable, falling back to in-process memory")
			break
		}
		store, err := memory.NewRedis(ctx, rdb, cfg.Memory.UserID, cfg.Memory.TTL)
		if err != nil {
			_ = rdb.Close()
			logx.Warn().Err(err).Msg("failed to initialize redis memory, falling back to in-process memory")
			break
		}
		logx.Info().Str("user_id", cfg.Memory.UserID).Msg("redis conversation memory enabled")
		return store, func() {
			if err := rdb.Close(); err != nil {
				logx.Warn().Err(err).Msg("failed to close redis client")
			}
		}
	}

	logx.Info().Str("user_id", cfg.Memory.UserID).Msg("in-process conversation memory enabled")
	return memory.NewLocal(cfg.Memory.UserID), noop
}

func newKnowledge(ctx context.Context, cfg config.GraphConfig) (knowledge.Source, func()) {
	noop := func() {}
	if !cfg.Enabled() {
		logx.Info().Msg("NEO4J_URI not set, knowledge graph disabled")
		return knowledge.Unavailable{}, noop
	}

	extractor, err := knowledge.Connect(ctx, cfg)
	if err != nil {
		logx.Warn().Err(err).Str("uri", cfg.URI).Msg("knowledge graph unavailable, using basic profile context")
		return knowledge.Unavailable{}, noop
	}
	logx.Info().Str("uri", cfg.URI).Msg("knowledge graph connected")

	return extractor, func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := extractor.Close(closeCtx); err != nil {
			logx.Warn().Err(err).Msg("failed to close knowledge graph driver")
		}
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logx.Info().Str("addr", addr).Msg("Voice Interview Bot listening")
	if err := runServer(ctx, srv); err != nil {
		logx.Fatal().Err(err).Msg("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
