package repository

import (
	"time"

	"github.com/opsmind/mcp-platform/internal/model"
	"gorm.io/gorm"
)

// DashboardRepository 仪表盘只读查询
type DashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountTools 统计全部工具数量
func (r *DashboardRepository) CountTools() (int64, error) {
	var count int64
	err := r.db.Model(&model.Tool{}).Count(&count).Error
	return count, err
}

// CountToolsByStatus 按状态统计工具数量
func (r *DashboardRepository) CountToolsByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Tool{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountToolsByType 按类型统计工具数量
func (r *DashboardRepository) CountToolsByType(toolType string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Tool{}).Where("type = ?", toolType).Count(&count).Error
	return count, err
}

// CountLogs 统计全部日志数量
func (r *DashboardRepository) CountLogs() (int64, error) {
	var count int64
	err := r.db.Model(&model.Log{}).Count(&count).Error
	return count, err
}

// CountLogsByLevel 按级别统计日志数量
func (r *DashboardRepository) CountLogsByLevel(level string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Log{}).Where("level = ?", level).Count(&count).Error
	return count, err
}

// CountLogsBetween 统计时间区间内的日志数量，level 为空时不限级别
func (r *DashboardRepository) CountLogsBetween(start, end time.Time, level string) (int64, error) {
	query := r.db.Model(&model.Log{}).
		Where("created_at >= ? AND created_at <= ?", start, end)
	if level != "" {
		query = query.Where("level = ?", level)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// RecentLogs 最近创建的日志
func (r *DashboardRepository) RecentLogs(limit int) ([]*model.Log, error) {
	var logs []*model.Log
	err := r.db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// TopInvokedTools 按调用次数排序的工具
func (r *DashboardRepository) TopInvokedTools(limit int) ([]*model.Tool, error) {
	var tools []*model.Tool
	err := r.db.Order("invoke_count DESC").Limit(limit).Find(&tools).Error
	return tools, err
}

// ToolName 查询工具名称，工具不存在时返回 false
func (r *DashboardRepository) ToolName(id uint) (string, bool) {
	var tool model.Tool
	if err := r.db.Select("name").Where("id = ?", id).First(&tool).Error; err != nil {
		return "", false
	}
	return tool.Name, true
}
