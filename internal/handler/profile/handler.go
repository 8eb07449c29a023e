package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/interview-bot/backend/internal/model/profile"
	"github.com/zhouzirui/interview-bot/backend/pkg/utils"
)

// Handler 候选人档案的HTTP处理器
type Handler struct {
	profiles profile.Store
}

// New 创建档案处理器
func New(profiles profile.Store) *Handler {
	return &Handler{profiles: profiles}
}

// RegisterRoutes 注册档案相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/profile", h.handleGetProfile)
}

// handleGetProfile 返回候选人档案
func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.profiles.Get())
}
