package repository

import (
	"github.com/opsmind/mcp-platform/internal/model"
	"gorm.io/gorm"
)

// ToolRepository 工具数据访问
type ToolRepository struct {
	db *gorm.DB
}

// NewToolRepository 创建工具仓库
func NewToolRepository(db *gorm.DB) *ToolRepository {
	return &ToolRepository{db: db}
}

// ToolFilter 工具列表过滤条件
type ToolFilter struct {
	Type   string
	Status string
	Search string
}

// Create 创建工具
func (r *ToolRepository) Create(tool *model.Tool) error {
	return r.db.Create(tool).Error
}

// GetByID 获取工具
func (r *ToolRepository) GetByID(id uint) (*model.Tool, error) {
	var tool model.Tool
	err := r.db.Where("id = ?", id).First(&tool).Error
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

// GetByName 按名称获取工具
func (r *ToolRepository) GetByName(name string) (*model.Tool, error) {
	var tool model.Tool
	err := r.db.Where("name = ?", name).First(&tool).Error
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

// List 分页列出工具
func (r *ToolRepository) List(filter ToolFilter, page, perPage int) ([]*model.Tool, int64, error) {
	query := r.db.Model(&model.Tool{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tools []*model.Tool
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&tools).Error
	return tools, total, err
}

// Update 更新工具
func (r *ToolRepository) Update(tool *model.Tool) error {
	return r.db.Save(tool).Error
}

// Delete 删除工具
func (r *ToolRepository) Delete(id uint) error {
	return r.db.Delete(&model.Tool{}, "id = ?", id).Error
}
