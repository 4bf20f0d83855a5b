package repository

import (
	"time"

	"github.com/opsmind/mcp-platform/internal/model"
	"gorm.io/gorm"
)

// LogRepository 日志数据访问
type LogRepository struct {
	db *gorm.DB
}

// NewLogRepository 创建日志仓库
func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// LogFilter 日志列表过滤条件
type LogFilter struct {
	Level     string
	ToolID    *uint
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}

// ClearFilter 日志清除条件
type ClearFilter struct {
	Level      string
	ToolID     *uint
	DaysBefore int
}

// Create 创建日志
func (r *LogRepository) Create(log *model.Log) error {
	return r.db.Create(log).Error
}

// GetByID 获取日志
func (r *LogRepository) GetByID(id uint) (*model.Log, error) {
	var log model.Log
	err := r.db.Where("id = ?", id).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// List 分页列出日志，按创建时间倒序
func (r *LogRepository) List(filter LogFilter, page, perPage int) ([]*model.Log, int64, error) {
	query := r.applyFilter(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*model.Log
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&logs).Error
	return logs, total, err
}

// Delete 删除日志
func (r *LogRepository) Delete(id uint) error {
	return r.db.Delete(&model.Log{}, "id = ?", id).Error
}

// Clear 按条件批量删除日志，返回删除数量
func (r *LogRepository) Clear(filter ClearFilter) (int64, error) {
	query := r.db.Model(&model.Log{})

	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.ToolID != nil {
		query = query.Where("tool_id = ?", *filter.ToolID)
	}
	if filter.DaysBefore > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -filter.DaysBefore)
		query = query.Where("created_at < ?", cutoff)
	}

	result := query.Delete(&model.Log{})
	return result.RowsAffected, result.Error
}

func (r *LogRepository) applyFilter(filter LogFilter) *gorm.DB {
	query := r.db.Model(&model.Log{})

	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.ToolID != nil {
		query = query.Where("tool_id = ?", *filter.ToolID)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		query = query.Where("message LIKE ?", "%"+filter.Search+"%")
	}
	return query
}
