package knowledge

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	errx "github.com/zhouzirui/interview-bot/backend/internal/core/error"
	"github.com/zhouzirui/interview-bot/backend/internal/service/knowledge"
	logx "github.com/zhouzirui/interview-bot/backend/pkg/logger"
	"github.com/zhouzirui/interview-bot/backend/pkg/utils"
)

const unavailableMessage = "Knowledge graph not available"

// Handler 知识图谱的HTTP处理器
type Handler struct {
	graph knowledge.Source
}

// New 创建知识图谱处理器
func New(graph knowledge.Source) *Handler {
	if graph == nil {
		graph = knowledge.Unavailable{}
	}
	return &Handler{graph: graph}
}

// RegisterRoutes 注册知识图谱相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/knowledge", func(kr chi.Router) {
		kr.Get("/schema", h.handleSchema)
		kr.Get("/entities/{name}", h.handleEntity)
	})
}

// handleSchema 返回提示词中使用的图谱结构描述；图谱不可用时附带降级文本
func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	if !h.graph.Available() {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"message": unavailableMessage,
			"schema":  knowledge.FallbackSchema,
		})
		return
	}

	schema, err := h.graph.SchemaContext(r.Context())
	if err != nil {
		logx.Error().Err(err).Msg("knowledge schema query failed")
		utils.RespondFailure(w, errx.StatusOf(err), errx.MessageOf(err))
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "schema": schema})
}

// handleEntity 按名称查询实体及其直接关联
func (h *Handler) handleEntity(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		utils.RespondFailure(w, http.StatusBadRequest, "entity name is required")
		return
	}
	if !h.graph.Available() {
		utils.RespondJSON(w, http.StatusOK, map[string]any{"success": false, "message": unavailableMessage})
		return
	}

	entity, err := h.graph.Entity(r.Context(), name)
	switch {
	case errors.Is(err, knowledge.ErrEntityNotFound):
		utils.RespondFailure(w, http.StatusNotFound, err.Error())
	case err != nil:
		logx.Error().Err(err).Str("entity", name).Msg("knowledge entity query failed")
		utils.RespondFailure(w, errx.StatusOf(err), errx.MessageOf(err))
	default:
		utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "entity": entity})
	}
}
