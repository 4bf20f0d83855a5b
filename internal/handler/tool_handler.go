package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opsmind/mcp-platform/internal/model"
	"github.com/opsmind/mcp-platform/internal/repository"
	"github.com/opsmind/mcp-platform/internal/service"
	"github.com/opsmind/mcp-platform/internal/service/tool"
)

// ToolHandler 工具处理器
type ToolHandler struct {
	repos *repository.Repositories
	svc   *service.Services
}

// NewToolHandler 创建工具处理器
func NewToolHandler(repos *repository.Repositories, svc *service.Services) *ToolHandler {
	return &ToolHandler{repos: repos, svc: svc}
}

// List 获取工具列表，支持过滤和分页
func (h *ToolHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c, 10)

	// 未知的枚举过滤值忽略，不视为错误
	filter := repository.ToolFilter{Search: c.Query("search")}
	if t := c.Query("type"); model.IsValidToolType(t) {
		filter.Type = t
	}
	if s := c.Query("status"); model.IsValidToolStatus(s) {
		filter.Status = s
	}

	tools, total, err := h.repos.Tool.List(filter, page, perPage)
	if err != nil {
		Error(c, err)
		return
	}
	OKList(c, tools, total, page, perPage)
}

// Get 获取单个工具详情
func (h *ToolHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.repos.Tool.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, t)
}

// CreateToolRequest 工具创建请求
type CreateToolRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Command     string        `json:"command"`
	Config      model.JSONMap `json:"config"`
}

// Create 创建新工具
func (h *ToolHandler) Create(c *gin.Context) {
	var req CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" {
		BadRequest(c, "tool name is required")
		return
	}

	if _, err := h.repos.Tool.GetByName(req.Name); err == nil {
		Conflict(c, "tool name '"+req.Name+"' already exists")
		return
	}

	t := &model.Tool{
		Name:        req.Name,
		Description: req.Description,
		Type:        model.NormalizeToolType(req.Type),
		Status:      "inactive",
		Command:     req.Command,
		Config:      req.Config,
	}
	if err := h.repos.Tool.Create(t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "tool name '"+req.Name+"' already exists")
			return
		}
		Error(c, err)
		return
	}

	Created(c, t)
}

// UpdateToolRequest 工具更新请求，字段存在时才生效
type UpdateToolRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Type        *string        `json:"type"`
	Command     *string        `json:"command"`
	Config      *model.JSONMap `json:"config"`
	Status      *string        `json:"status"`
}

// Update 更新工具信息
func (h *ToolHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.repos.Tool.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}

	var req UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if req.Name != nil && *req.Name != "" {
		// 排除自身后检查名称唯一性
		if existing, err := h.repos.Tool.GetByName(*req.Name); err == nil && existing.ID != id {
			Conflict(c, "tool name '"+*req.Name+"' already exists")
			return
		}
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	// 无效枚举值忽略，字段保持不变
	if req.Type != nil && model.IsValidToolType(*req.Type) {
		t.Type = *req.Type
	}
	if req.Command != nil {
		t.Command = *req.Command
	}
	if req.Config != nil {
		t.Config = *req.Config
	}
	if req.Status != nil && model.IsValidToolStatus(*req.Status) {
		t.Status = *req.Status
	}

	if err := h.repos.Tool.Update(t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "tool name already exists")
			return
		}
		Error(c, err)
		return
	}
	OK(c, t)
}

// Delete 删除工具
// 关联日志不会级联删除
func (h *ToolHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.repos.Tool.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}
	if err := h.repos.Tool.Delete(id); err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"message": "tool '" + t.Name + "' deleted"})
}

// Activate 激活工具
func (h *ToolHandler) Activate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.svc.Tool.Start(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"message": "tool '" + t.Name + "' activated", "tool": t})
}

// Deactivate 停用工具
func (h *ToolHandler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.svc.Tool.Stop(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"message": "tool '" + t.Name + "' deactivated", "tool": t})
}

// Invoke 调用工具
func (h *ToolHandler) Invoke(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Params model.JSONMap `json:"params"`
	}
	// 请求体可为空
	_ = c.ShouldBindJSON(&req)

	t, result, err := h.svc.Tool.Invoke(c.Request.Context(), id, req.Params)
	if err != nil {
		if errors.Is(err, tool.ErrNotActive) {
			BadRequest(c, "tool '"+t.Name+"' is not active")
			return
		}
		Error(c, err)
		return
	}

	OK(c, gin.H{
		"message": "tool '" + t.Name + "' invoked successfully",
		"tool":    t,
		"result":  result,
	})
}

// Status 查询工具状态
func (h *ToolHandler) Status(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	info, err := h.svc.Tool.Status(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, info)
}
