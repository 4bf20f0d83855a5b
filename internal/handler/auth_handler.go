package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/opsmind/mcp-platform/internal/middleware"
	"github.com/opsmind/mcp-platform/internal/service"
	"github.com/opsmind/mcp-platform/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.Services
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(svc *service.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register 注册新用户（仅管理员）
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "please provide a username and password")
		return
	}

	user, err := h.svc.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalid):
			BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrUsernameExists):
			Conflict(c, "username '"+req.Username+"' already exists")
		case errors.Is(err, auth.ErrEmailExists):
			Conflict(c, "email '"+req.Email+"' already in use")
		default:
			Error(c, err)
		}
		return
	}

	Created(c, gin.H{"message": "user created", "user": user})
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "please provide a username and password")
		return
	}

	user, token, err := h.svc.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalid):
			BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			Unauthorized(c, "invalid username or password")
		case errors.Is(err, auth.ErrAccountDisabled):
			Forbidden(c, "this account has been disabled")
		default:
			Error(c, err)
		}
		return
	}

	OK(c, gin.H{"message": "login successful", "user": user, "token": token})
}

// Me 获取当前用户信息
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		Unauthorized(c, "please log in first")
		return
	}
	OK(c, user)
}

// ListUsers 获取用户列表（仅管理员）
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.Auth.ListUsers(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, users)
}

// GetUser 获取单个用户信息（仅管理员）
func (h *AuthHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.svc.Auth.GetUser(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, user)
}

// UpdateUser 更新用户信息（仅管理员）
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req auth.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.Auth.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalid):
			BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrEmailExists):
			Conflict(c, "email already in use")
		default:
			Error(c, err)
		}
		return
	}

	OK(c, gin.H{"message": "user updated", "user": user})
}

// ChangePassword 用户修改自己的密码
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		Unauthorized(c, "please log in first")
		return
	}

	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "please provide the current and new password")
		return
	}

	err := h.svc.Auth.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalid):
			BadRequest(c, err.Error())
		case errors.Is(err, auth.ErrWrongPassword):
			Unauthorized(c, "current password is incorrect")
		default:
			Error(c, err)
		}
		return
	}

	OK(c, gin.H{"message": "password updated"})
}
