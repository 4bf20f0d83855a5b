package dashboard

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/opsmind/mcp-platform/internal/model"
	"github.com/opsmind/mcp-platform/internal/repository"
)

// Service 仪表盘服务，只读聚合查询
type Service struct {
	repo *repository.Repositories
}

// NewService 创建仪表盘服务
func NewService(repo *repository.Repositories) *Service {
	return &Service{repo: repo}
}

// ToolStats 工具统计
type ToolStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Error    int64 `json:"error"`
}

// LogStats 日志统计
type LogStats struct {
	Total   int64        `json:"total"`
	Info    int64        `json:"info"`
	Warning int64        `json:"warning"`
	Error   int64        `json:"error"`
	Recent  []*model.Log `json:"recent"`
}

// SystemStats 主机资源使用情况
type SystemStats struct {
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
}

// Overview 仪表盘概览
type Overview struct {
	Tools       ToolStats     `json:"tools"`
	Logs        LogStats      `json:"logs"`
	ActiveTools []*model.Tool `json:"active_tools"`
	System      SystemStats   `json:"system"`
}

// DailyStat 单日统计
type DailyStat struct {
	Date   string `json:"date"`
	Calls  int64  `json:"calls"`
	Errors int64  `json:"errors"`
}

// TypeStat 工具类型分布
type TypeStat struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// Activity 最近活动
type Activity struct {
	ID        uint      `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Tool      string    `json:"tool"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// GetOverview 获取仪表盘概览数据
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	var overview Overview
	var err error

	if overview.Tools.Total, err = s.repo.Dashboard.CountTools(); err != nil {
		return nil, err
	}
	if overview.Tools.Active, err = s.repo.Dashboard.CountToolsByStatus("active"); err != nil {
		return nil, err
	}
	if overview.Tools.Inactive, err = s.repo.Dashboard.CountToolsByStatus("inactive"); err != nil {
		return nil, err
	}
	if overview.Tools.Error, err = s.repo.Dashboard.CountToolsByStatus("error"); err != nil {
		return nil, err
	}

	if overview.Logs.Total, err = s.repo.Dashboard.CountLogs(); err != nil {
		return nil, err
	}
	if overview.Logs.Info, err = s.repo.Dashboard.CountLogsByLevel("info"); err != nil {
		return nil, err
	}
	if overview.Logs.Warning, err = s.repo.Dashboard.CountLogsByLevel("warning"); err != nil {
		return nil, err
	}
	if overview.Logs.Error, err = s.repo.Dashboard.CountLogsByLevel("error"); err != nil {
		return nil, err
	}
	if overview.Logs.Recent, err = s.repo.Dashboard.RecentLogs(5); err != nil {
		return nil, err
	}

	if overview.ActiveTools, err = s.repo.Dashboard.TopInvokedTools(5); err != nil {
		return nil, err
	}

	// 资源采集失败时回退为零值，不让请求失败
	overview.System = collectSystemStats()
	return &overview, nil
}

// GetDailyStats 获取过去 30 天的每日统计数据
func (s *Service) GetDailyStats(ctx context.Context) ([]DailyStat, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	stats := make([]DailyStat, 0, 30)

	// 从最早到最近排序
	for i := 29; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		start := day
		end := day.Add(24*time.Hour - time.Nanosecond)

		calls, err := s.repo.Dashboard.CountLogsBetween(start, end, "")
		if err != nil {
			return nil, err
		}
		errCount, err := s.repo.Dashboard.CountLogsBetween(start, end, "error")
		if err != nil {
			return nil, err
		}

		stats = append(stats, DailyStat{
			Date:   day.Format("2006-01-02"),
			Calls:  calls,
			Errors: errCount,
		})
	}
	return stats, nil
}

// GetToolTypes 获取工具类型分布
func (s *Service) GetToolTypes(ctx context.Context) ([]TypeStat, error) {
	stats := make([]TypeStat, 0, len(model.ToolTypes))
	for _, toolType := range model.ToolTypes {
		count, err := s.repo.Dashboard.CountToolsByType(toolType)
		if err != nil {
			return nil, err
		}
		stats = append(stats, TypeStat{Type: toolType, Count: count})
	}
	return stats, nil
}

// GetRecentActivities 获取最近活动，关联工具名称
func (s *Service) GetRecentActivities(ctx context.Context) ([]Activity, error) {
	logs, err := s.repo.Dashboard.RecentLogs(10)
	if err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(logs))
	for _, entry := range logs {
		// 工具已被删除时显示 Unknown
		toolName := "Unknown"
		if entry.ToolID != nil {
			if name, ok := s.repo.Dashboard.ToolName(*entry.ToolID); ok {
				toolName = name
			}
		}
		activities = append(activities, Activity{
			ID:        entry.ID,
			Timestamp: entry.CreatedAt,
			Tool:      toolName,
			Level:     entry.Level,
			Message:   entry.Message,
		})
	}
	return activities, nil
}

// collectSystemStats 采集主机资源使用率，失败时取零值
func collectSystemStats() SystemStats {
	var stats SystemStats

	if percents, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(percents) > 0 {
		stats.CPUUsage = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryUsage = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskUsage = du.UsedPercent
	}
	return stats
}
