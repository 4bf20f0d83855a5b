package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/opsmind/mcp-platform/internal/model"
	"github.com/opsmind/mcp-platform/internal/repository"
)

// ConfigHandler 配置处理器
type ConfigHandler struct {
	repos *repository.Repositories
}

// NewConfigHandler 创建配置处理器
func NewConfigHandler(repos *repository.Repositories) *ConfigHandler {
	return &ConfigHandler{repos: repos}
}

// List 获取配置列表，支持过滤和分页
func (h *ConfigHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c, 10)

	filter := repository.ConfigFilter{Search: c.Query("search")}
	if t := c.Query("type"); model.IsValidConfigType(t) {
		filter.Type = t
	}
	if raw := c.Query("is_active"); raw != "" {
		active := strings.EqualFold(raw, "true")
		filter.IsActive = &active
	}

	configs, total, err := h.repos.Config.List(filter, page, perPage)
	if err != nil {
		Error(c, err)
		return
	}
	OKList(c, configs, total, page, perPage)
}

// Get 获取单个配置详情
func (h *ConfigHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cfg, err := h.repos.Config.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, cfg)
}

// CreateConfigRequest 配置创建请求
type CreateConfigRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Content     model.JSONMap `json:"content"`
	IsActive    *bool         `json:"is_active"`
}

// Create 创建新配置
func (h *ConfigHandler) Create(c *gin.Context) {
	var req CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.Name == "" || req.Content == nil {
		BadRequest(c, "config name and content are required")
		return
	}

	if _, err := h.repos.Config.GetByName(req.Name); err == nil {
		Conflict(c, "config name '"+req.Name+"' already exists")
		return
	}

	cfg := &model.Config{
		Name:        req.Name,
		Description: req.Description,
		Type:        model.NormalizeConfigType(req.Type),
		Content:     req.Content,
		IsActive:    true,
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	if err := h.repos.Config.Create(cfg); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "config name '"+req.Name+"' already exists")
			return
		}
		Error(c, err)
		return
	}
	Created(c, cfg)
}

// UpdateConfigRequest 配置更新请求，字段存在时才生效
type UpdateConfigRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Type        *string        `json:"type"`
	Content     *model.JSONMap `json:"content"`
	IsActive    *bool          `json:"is_active"`
}

// Update 更新配置信息
func (h *ConfigHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cfg, err := h.repos.Config.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}

	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if req.Name != nil && *req.Name != "" {
		if existing, err := h.repos.Config.GetByName(*req.Name); err == nil && existing.ID != id {
			Conflict(c, "config name '"+*req.Name+"' already exists")
			return
		}
		cfg.Name = *req.Name
	}
	if req.Description != nil {
		cfg.Description = *req.Description
	}
	if req.Type != nil && model.IsValidConfigType(*req.Type) {
		cfg.Type = *req.Type
	}
	if req.Content != nil {
		cfg.Content = *req.Content
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	if err := h.repos.Config.Update(cfg); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Conflict(c, "config name already exists")
			return
		}
		Error(c, err)
		return
	}
	OK(c, cfg)
}

// Delete 删除配置
func (h *ConfigHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cfg, err := h.repos.Config.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}
	if err := h.repos.Config.Delete(id); err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"message": "config '" + cfg.Name + "' deleted"})
}

// Activate 激活配置
func (h *ConfigHandler) Activate(c *gin.Context) {
	h.setActive(c, true, "activated")
}

// Deactivate 停用配置
func (h *ConfigHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false, "deactivated")
}

func (h *ConfigHandler) setActive(c *gin.Context, active bool, verb string) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cfg, err := h.repos.Config.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}
	cfg.IsActive = active
	if err := h.repos.Config.Update(cfg); err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"message": "config '" + cfg.Name + "' " + verb, "config": cfg})
}
