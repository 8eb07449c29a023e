package handler

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/interview-bot/backend/internal/handler/ask"
	"github.com/zhouzirui/interview-bot/backend/internal/handler/conversation"
	"github.com/zhouzirui/interview-bot/backend/internal/handler/health"
	"github.com/zhouzirui/interview-bot/backend/internal/handler/knowledge"
	"github.com/zhouzirui/interview-bot/backend/internal/handler/profile"
	"github.com/zhouzirui/interview-bot/backend/internal/handler/realtime"
	"github.com/zhouzirui/interview-bot/backend/internal/handler/stream"
	middlewarePkg "github.com/zhouzirui/interview-bot/backend/internal/middleware"
	profileModel "github.com/zhouzirui/interview-bot/backend/internal/model/profile"
	"github.com/zhouzirui/interview-bot/backend/internal/service/dispatch"
	"github.com/zhouzirui/interview-bot/backend/internal/service/interview"
	knowledgeService "github.com/zhouzirui/interview-bot/backend/internal/service/knowledge"
	"github.com/zhouzirui/interview-bot/backend/internal/service/memory"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
	"github.com/zhouzirui/interview-bot/backend/pkg/utils"
)

const notFoundMessage = "Endpoint not found"

// Dependencies are the services the HTTP layer is wired to.
type Dependencies struct {
	Profiles   profileModel.Store
	Dispatcher *dispatch.Dispatcher
	Responder  *interview.Responder
	Memory     memory.Store
	Knowledge  knowledgeService.Source

	Provider      string
	ModelName     string
	AllowedOrigin string
	// StaticDir serves the browser frontend at / when set.
	StaticDir string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	r.Use(middlewarePkg.Recoverer)
	r.Use(middlewarePkg.CORSWithOrigin(deps.AllowedOrigin))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Route("/api", func(api chi.Router) {
		api.NotFound(notFound)
		api.MethodNotAllowed(methodNotAllowed)

		ask.New(deps.Dispatcher).RegisterRoutes(api)
		stream.New(deps.Dispatcher).RegisterRoutes(api)
		realtime.New(deps.Dispatcher).RegisterRoutes(api)
		conversation.New(deps.Memory).RegisterRoutes(api)
		profile.New(deps.Profiles).RegisterRoutes(api)
		knowledge.New(deps.Knowledge).RegisterRoutes(api)

		health.New(health.Options{
			Profiles:  deps.Profiles,
			Answers:   answerStatus(deps.Responder),
			Requests:  deps.Dispatcher,
			Memory:    deps.Memory,
			Knowledge: deps.Knowledge,
			Provider:  deps.Provider,
			ModelName: deps.ModelName,
		}).RegisterRoutes(api)
	})

	if deps.StaticDir != "" {
		if info, err := os.Stat(deps.StaticDir); err != nil || !info.IsDir() {
			logx.Warn().Err(err).Str("dir", deps.StaticDir).Msg("static directory unavailable, frontend not served")
		} else {
			r.Handle("/*", http.FileServer(http.Dir(deps.StaticDir)))
		}
	}

	return r
}

// answerStatus keeps a nil *Responder from becoming a non-nil interface.
func answerStatus(r *interview.Responder) health.AnswerStatus {
	if r == nil {
		return nil
	}
	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.RespondError(w, http.StatusNotFound, notFoundMessage)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	utils.RespondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}
