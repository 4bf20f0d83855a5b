package repository

import (
	"github.com/opsmind/mcp-platform/internal/model"
	"gorm.io/gorm"
)

// TemplateRepository 模板数据访问
type TemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建模板仓库
func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// TemplateFilter 模板列表过滤条件
type TemplateFilter struct {
	Type   string
	Search string
}

// Create 创建模板
func (r *TemplateRepository) Create(template *model.Template) error {
	return r.db.Create(template).Error
}

// GetByID 获取模板
func (r *TemplateRepository) GetByID(id uint) (*model.Template, error) {
	var template model.Template
	err := r.db.Where("id = ?", id).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// GetByName 按名称获取模板
func (r *TemplateRepository) GetByName(name string) (*model.Template, error) {
	var template model.Template
	err := r.db.Where("name = ?", name).First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// List 分页列出模板，按名称排序
func (r *TemplateRepository) List(filter TemplateFilter, page, perPage int) ([]*model.Template, int64, error) {
	query := r.db.Model(&model.Template{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR scenarios LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templates []*model.Template
	err := query.Order("name").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&templates).Error
	return templates, total, err
}

// Update 更新模板
func (r *TemplateRepository) Update(template *model.Template) error {
	return r.db.Save(template).Error
}

// Delete 删除模板
func (r *TemplateRepository) Delete(id uint) error {
	return r.db.Delete(&model.Template{}, "id = ?", id).Error
}
