package api_router

import (
	"github.com/inkwells/smart-note-service/internal/dto"
	pkgapp "github.com/inkwells/smart-note-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证相关处理器
type AuthHandler struct {
	*Handler
}

func NewAuthHandler(base *Handler) *AuthHandler {
	return &AuthHandler{Handler: base}
}

// SignUp POST /v1/auth/sign_up
func (h *AuthHandler) SignUp(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.SignUpRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		response.ToValidationErrorResponse(errs)
		return
	}

	token, err := h.app.UserService.SignUp(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, "sign up failed", err)
		return
	}
	response.ToCreatedResponse(token)
}

// Login POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params := &dto.LoginRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		response.ToValidationErrorResponse(errs)
		return
	}

	token, err := h.app.UserService.Login(c.Request.Context(), params)
	if err != nil {
		h.respondError(c, "login failed", err)
		return
	}
	response.ToResponse(token)
}

// Refresh POST /v1/auth/refresh, requires a refresh token
// Refresh POST /v1/auth/refresh，需要刷新令牌
func (h *AuthHandler) Refresh(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	token, err := h.app.UserService.Refresh(c.Request.Context(), pkgapp.GetUID(c))
	if err != nil {
		h.respondError(c, "token refresh failed", err)
		return
	}
	response.ToResponse(token)
}

// Me GET /v1/auth/me, requires an access token
// Me GET /v1/auth/me，需要访问令牌
func (h *AuthHandler) Me(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	user, err := h.app.UserService.Me(c.Request.Context(), pkgapp.GetUID(c))
	if err != nil {
		h.respondError(c, "get profile failed", err)
		return
	}
	response.ToResponse(user)
}
