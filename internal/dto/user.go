// Package dto 定义请求与响应的数据传输对象
package dto

// SignUpRequest 注册请求
type SignUpRequest struct {
	Username string `json:"username" binding:"required,min=2,max=150"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=2,max=150"`
	Password string `json:"password" binding:"required"`
}

// Token 令牌对响应
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// BaseUser 对外暴露的用户信息
type BaseUser struct {
	Username string `json:"username"`
}
