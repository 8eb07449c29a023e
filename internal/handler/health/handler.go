package health

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/interview-bot/backend/internal/model/profile"
	"github.com/zhouzirui/interview-bot/backend/internal/service/knowledge"
	"github.com/zhouzirui/interview-bot/backend/internal/service/memory"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
	"github.com/zhouzirui/interview-bot/backend/pkg/utils"
)

const (
	// Version is reported by the health endpoint.
	Version = "2.0.0"

	runningMessage = "Voice Interview Bot is running!"
	aiFramework    = "Eino"
	audioMethod    = "Web Speech API (Browser-based)"
)

// AnswerStatus reports which path currently answers questions.
type AnswerStatus interface {
	ModelEnabled() bool
	Status() string
}

// InFlightCounter reports how many questions are being answered.
type InFlightCounter interface {
	InFlight() int
}

// Options 健康检查所需的依赖
type Options struct {
	Profiles  profile.Store
	Answers   AnswerStatus
	Requests  InFlightCounter
	Memory    memory.Store
	Knowledge knowledge.Source
	// Provider 与 ModelName 只用于展示
	Provider  string
	ModelName string
}

// Handler 健康检查的HTTP处理器
type Handler struct {
	opts Options
}

// New 创建健康检查处理器
func New(opts Options) *Handler {
	if opts.Memory == nil {
		opts.Memory = memory.Disabled{}
	}
	if opts.Knowledge == nil {
		opts.Knowledge = knowledge.Unavailable{}
	}
	return &Handler{opts: opts}
}

// RegisterRoutes 注册健康检查路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

// Report 健康检查响应体
type Report struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	Version          string `json:"version"`
	APIKeyConfigured bool   `json:"api_key_configured"`
	CandidateName    string `json:"candidate_name"`
	AIFramework      string `json:"ai_framework"`
	AIProvider       string `json:"ai_provider"`
	AIModel          string `json:"ai_model,omitempty"`
	AIStatus         string `json:"ai_status"`
	MemoryStatus     string `json:"memory_status"`
	KnowledgeStatus  string `json:"knowledge_status"`
	AudioMethod      string `json:"audio_method"`
	InFlight         int    `json:"in_flight"`
}

// handleHealth 只要没有内部异常就返回 healthy，与模型是否配置无关
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			logx.Error().Interface("panic", rec).Msg("health check failed")
			utils.RespondJSON(w, http.StatusInternalServerError, map[string]string{
				"status": "unhealthy",
				"error":  fmt.Sprint(rec),
			})
		}
	}()

	utils.RespondJSON(w, http.StatusOK, h.report())
}

func (h *Handler) report() Report {
	rep := Report{
		Status:          "healthy",
		Message:         runningMessage,
		Version:         Version,
		CandidateName:   h.opts.Profiles.Get().Name,
		AIFramework:     aiFramework,
		AIProvider:      h.opts.Provider,
		AIModel:         h.opts.ModelName,
		AIStatus:        "not available",
		MemoryStatus:    availability(h.opts.Memory.Available()),
		KnowledgeStatus: availability(h.opts.Knowledge.Available()),
		AudioMethod:     audioMethod,
	}
	if h.opts.Answers != nil {
		rep.APIKeyConfigured = h.opts.Answers.ModelEnabled()
		rep.AIStatus = h.opts.Answers.Status()
	}
	if h.opts.Requests != nil {
		rep.InFlight = h.opts.Requests.InFlight()
	}
	return rep
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "not available"
}
