package api_router

import (
	pkgapp "github.com/inkwells/smart-note-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 统计相关处理器
// Unauthenticated read-only view.
// 无需认证的只读视图。
type AnalyticsHandler struct {
	*Handler
}

func NewAnalyticsHandler(base *Handler) *AnalyticsHandler {
	return &AnalyticsHandler{Handler: base}
}

// Get GET /v1/analytics/
func (h *AnalyticsHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	analytics, err := h.app.AnalyticsService.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, "analytics failed", err)
		return
	}
	response.ToResponse(analytics)
}

// Notes GET /v1/analytics/notes
func (h *AnalyticsHandler) Notes(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	notes, err := h.app.AnalyticsService.ListNotes(c.Request.Context())
	if err != nil {
		h.respondError(c, "analytics notes failed", err)
		return
	}
	response.ToResponse(notes)
}
