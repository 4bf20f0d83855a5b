package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opsmind/mcp-platform/internal/model"
	"github.com/opsmind/mcp-platform/internal/repository"
)

// TemplateHandler 模板处理器
type TemplateHandler struct {
	repos *repository.Repositories
}

// NewTemplateHandler 创建模板处理器
func NewTemplateHandler(repos *repository.Repositories) *TemplateHandler {
	return &TemplateHandler{repos: repos}
}

// List 获取模板列表，支持过滤和分页
func (h *TemplateHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c, 10)

	filter := repository.TemplateFilter{Search: c.Query("search")}
	if t := c.Query("type"); model.IsValidToolType(t) {
		filter.Type = t
	}

	templates, total, err := h.repos.Template.List(filter, page, perPage)
	if err != nil {
		Error(c, err)
		return
	}
	OKList(c, templates, total, page, perPage)
}

// Get 获取单个模板详情
func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tpl, err := h.repos.Template.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, tpl)
}

// CreateTemplateRequest 模板创建请求
type CreateTemplateRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Content     model.JSONMap `json:"content"`
	Scenarios   string        `json:"scenarios"`
}

// Create 创建新模板
// 模板类型必须是有效的工具类型
func (h *TemplateHandler) Create(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" || req.Content == nil || req.Type == "" {
		BadRequest(c, "template name, content and type are required")
		return
	}
	if !model.IsValidToolType(req.Type) {
		BadRequest(c, "invalid tool type: '"+req.Type+"'")
		return
	}

	if _, err := h.repos.Template.GetByName(req.Name); err == nil {
		Conflict(c, "template name '"+req.Name+"' already exists")
		return
	}

	tpl := &model.Template{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Content:     req.Content,
		Scenarios:   req.Scenarios,
	}
	if err := h.repos.Template.Create(tpl); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "template name '"+req.Name+"' already exists")
			return
		}
		Error(c, err)
		return
	}
	Created(c, tpl)
}

// UpdateTemplateRequest 模板更新请求，字段存在时才生效
type UpdateTemplateRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Type        *string        `json:"type"`
	Content     *model.JSONMap `json:"content"`
	Scenarios   *string        `json:"scenarios"`
}

// Update 更新模板信息
func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tpl, err := h.repos.Template.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if req.Name != nil && *req.Name != "" {
		if existing, err := h.repos.Template.GetByName(*req.Name); err == nil && existing.ID != id {
			Conflict(c, "template name '"+*req.Name+"' already exists")
			return
		}
		tpl.Name = *req.Name
	}
	if req.Description != nil {
		tpl.Description = *req.Description
	}
	if req.Scenarios != nil {
		tpl.Scenarios = *req.Scenarios
	}
	if req.Type != nil {
		if !model.IsValidToolType(*req.Type) {
			BadRequest(c, "invalid tool type: '"+*req.Type+"'")
			return
		}
		tpl.Type = *req.Type
	}
	if req.Content != nil {
		tpl.Content = *req.Content
	}

	if err := h.repos.Template.Update(tpl); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "template name already exists")
			return
		}
		Error(c, err)
		return
	}
	OK(c, tpl)
}

// Delete 删除模板
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tpl, err := h.repos.Template.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}
	if err := h.repos.Template.Delete(id); err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"message": "template '" + tpl.Name + "' deleted"})
}

// ImportTemplateRequest 模板导入请求，字段均为可选覆盖项
type ImportTemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Command     string `json:"command"`
}

// Import 从模板导入创建工具
// 新工具的类型取自模板类型，配置取自模板内容
func (h *TemplateHandler) Import(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tpl, err := h.repos.Template.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}

	var req ImportTemplateRequest
	// 请求体可为空
	_ = c.ShouldBindJSON(&req)

	toolName := req.Name
	if toolName == "" {
		toolName = fmt.Sprintf("%s_tool_%d", tpl.Name, tpl.ID)
	}
	description := req.Description
	if description == "" {
		description = tpl.Description
	}

	if _, err := h.repos.Tool.GetByName(toolName); err == nil {
		Conflict(c, "tool name '"+toolName+"' already exists")
		return
	}

	t := &model.Tool{
		Name:        toolName,
		Description: description,
		Type:        tpl.Type,
		Status:      "inactive",
		Command:     req.Command,
		Config:      tpl.Content,
	}
	if err := h.repos.Tool.Create(t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "tool name '"+toolName+"' already exists")
			return
		}
		Error(c, err)
		return
	}

	Created(c, gin.H{
		"message": "tool created from template '" + tpl.Name + "'",
		"tool":    t,
	})
}
