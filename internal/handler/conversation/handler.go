package conversation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	errx "github.com/zhouzirui/interview-bot/backend/internal/core/error"
	"github.com/zhouzirui/interview-bot/backend/internal/service/memory"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
	"github.com/zhouzirui/interview-bot/backend/pkg/utils"
)

const (
	memoryUnavailableMessage = "Memory not available"
	clearedMessage           = "Conversation memory cleared"
)

// Handler 对话记忆的HTTP处理器
type Handler struct {
	memory memory.Store
}

// New 创建对话记忆处理器
func New(mem memory.Store) *Handler {
	if mem == nil {
		mem = memory.Disabled{}
	}
	return &Handler{memory: mem}
}

// RegisterRoutes 注册对话记忆相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/conversation-summary", h.handleSummary)
	r.Post("/clear-conversation", h.handleClear)
	r.Get("/conversation-export", h.handleExport)
}

// handleSummary 返回当前会话的摘要
func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !h.memory.Available() {
		respondUnavailable(w)
		return
	}

	summary, err := h.memory.Summary(r.Context())
	if err != nil {
		respondMemoryError(w, "summary", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "summary": summary})
}

// handleClear 清空当前会话并开启新会话
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if !h.memory.Available() {
		respondUnavailable(w)
		return
	}

	if err := h.memory.Clear(r.Context()); err != nil {
		respondMemoryError(w, "clear", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "message": clearedMessage})
}

// handleExport 导出当前会话的完整记录
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if !h.memory.Available() {
		respondUnavailable(w)
		return
	}

	export, err := h.memory.Export(r.Context())
	if err != nil {
		respondMemoryError(w, "export", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "export": export})
}

func respondUnavailable(w http.ResponseWriter) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": false, "message": memoryUnavailableMessage})
}

// respondMemoryError 记忆后端故障不影响问答，统一以 200 + success=false 返回
func respondMemoryError(w http.ResponseWriter, op string, err error) {
	logx.Warn().Err(err).Str("op", op).Msg("memory operation failed")
	utils.RespondFailure(w, http.StatusOK, errx.MessageOf(err))
}
