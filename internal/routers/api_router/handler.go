// Package api_router 实现 HTTP 处理器
package api_router

import (
	internalApp "github.com/inkwells/smart-note-service/internal/app"
	"github.com/inkwells/smart-note-service/internal/middleware"
	"github.com/inkwells/smart-note-service/pkg/code"
	apperrors "github.com/inkwells/smart-note-service/pkg/errors"
	"github.com/inkwells/smart-note-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 处理器基类，持有应用容器
type Handler struct {
	app    *internalApp.App
	logger *zap.Logger
}

func NewHandler(app *internalApp.App) *Handler {
	return &Handler{
		app:    app,
		logger: app.Logger(),
	}
}

// logError 带追踪 ID 记录处理器错误
func (h *Handler) logError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		zap.String(logger.FieldTraceID, middleware.GetTraceID(c)),
		zap.String(logger.FieldPath, c.Request.URL.Path),
		zap.Error(err),
	)
}

// respondError logs unexpected failures and renders the wire error
// respondError 记录非预期失败并渲染传输错误
func (h *Handler) respondError(c *gin.Context, msg string, err error) {
	if _, expected := err.(*code.Code); !expected {
		h.logError(c, msg, err)
	}
	apperrors.ErrorResponse(c, err)
}
