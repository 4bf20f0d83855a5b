package repository

import (
	"github.com/opsmind/mcp-platform/internal/model"
	"gorm.io/gorm"
)

// ConfigRepository 配置数据访问
type ConfigRepository struct {
	db *gorm.DB
}

// NewConfigRepository 创建配置仓库
func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// ConfigFilter 配置列表过滤条件
type ConfigFilter struct {
	Type     string
	IsActive *bool
	Search   string
}

// Create 创建配置
func (r *ConfigRepository) Create(config *model.Config) error {
	return r.db.Create(config).Error
}

// GetByID 获取配置
func (r *ConfigRepository) GetByID(id uint) (*model.Config, error) {
	var config model.Config
	err := r.db.Where("id = ?", id).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// GetByName 按名称获取配置
func (r *ConfigRepository) GetByName(name string) (*model.Config, error) {
	var config model.Config
	err := r.db.Where("name = ?", name).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// List 分页列出配置
func (r *ConfigRepository) List(filter ConfigFilter, page, perPage int) ([]*model.Config, int64, error) {
	query := r.db.Model(&model.Config{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var configs []*model.Config
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&configs).Error
	return configs, total, err
}

// Update 更新配置
func (r *ConfigRepository) Update(config *model.Config) error {
	return r.db.Save(config).Error
}

// Delete 删除配置
func (r *ConfigRepository) Delete(id uint) error {
	return r.db.Delete(&model.Config{}, "id = ?", id).Error
}
