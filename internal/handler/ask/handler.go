package ask

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	errx "github.com/zhouzirui/interview-bot/backend/internal/core/error"
	"github.com/zhouzirui/interview-bot/backend/internal/service/dispatch"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
	"github.com/zhouzirui/interview-bot/backend/pkg/utils"
)

const (
	answeredMessage    = "Response generated successfully"
	cancelledMessage   = "Response generation cancelled"
	noRequestMessage   = "No ongoing request to cancel"
	invalidBodyMessage = "invalid request body"
)

// Handler 问答与取消的HTTP处理器
type Handler struct {
	dispatcher *dispatch.Dispatcher
}

// New 创建问答处理器
func New(dispatcher *dispatch.Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// RegisterRoutes 注册问答相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ask", h.handleAsk)
	r.Post("/cancel", h.handleCancel)
}

type askRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

type askResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Outcome   string `json:"outcome"`
}

// handleAsk 同步生成回答，生成失败时回答本身携带错误说明
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload askRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondFailure(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	result, err := h.dispatcher.HandleQuestion(r.Context(), payload.Question, payload.SessionID)
	if err != nil {
		status := errx.StatusOf(err)
		if status >= http.StatusInternalServerError {
			logx.Error().Err(err).Msg("ask failed")
		}
		utils.RespondFailure(w, status, errx.MessageOf(err))
		return
	}

	utils.RespondJSON(w, http.StatusOK, askResponse{
		Success:   true,
		Response:  result.Answer,
		Message:   answeredMessage,
		SessionID: result.SessionID,
		Outcome:   string(result.Outcome),
	})
}

// handleCancel 标记会话中的请求为取消，未找到时返回 success=false
func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondFailure(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	if h.dispatcher.CancelQuestion(payload.SessionID) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "message": cancelledMessage})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": false, "message": noRequestMessage})
}
