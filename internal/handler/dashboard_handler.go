package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/opsmind/mcp-platform/internal/service/dashboard"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	svc *dashboard.Service
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Overview 获取仪表盘概览
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.svc.GetOverview(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, overview)
}

// DailyStats 获取过去 30 天的每日统计
func (h *DashboardHandler) DailyStats(c *gin.Context) {
	stats, err := h.svc.GetDailyStats(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"items": stats})
}

// ToolTypes 获取工具类型分布
func (h *DashboardHandler) ToolTypes(c *gin.Context) {
	stats, err := h.svc.GetToolTypes(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"items": stats})
}

// RecentActivities 获取最近活动
func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	activities, err := h.svc.GetRecentActivities(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"items": activities})
}
