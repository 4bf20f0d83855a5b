package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opsmind/mcp-platform/internal/model"
	"github.com/opsmind/mcp-platform/internal/repository"
)

// LogHandler 日志处理器
type LogHandler struct {
	repos *repository.Repositories
}

// NewLogHandler 创建日志处理器
func NewLogHandler(repos *repository.Repositories) *LogHandler {
	return &LogHandler{repos: repos}
}

// List 获取日志列表，支持过滤和分页
func (h *LogHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c, 20)

	filter := repository.LogFilter{Search: c.Query("search")}
	if lvl := c.Query("level"); model.IsValidLogLevel(lvl) {
		filter.Level = lvl
	}
	if raw := c.Query("tool_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			toolID := uint(id)
			filter.ToolID = &toolID
		}
	}
	// 无法解析的日期忽略
	if start, ok := parseDate(c.Query("start_date")); ok {
		filter.StartDate = &start
	}
	if end, ok := parseDate(c.Query("end_date")); ok {
		filter.EndDate = &end
	}

	logs, total, err := h.repos.Log.List(filter, page, perPage)
	if err != nil {
		Error(c, err)
		return
	}
	OKList(c, logs, total, page, perPage)
}

// Get 获取单个日志详情
func (h *LogHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.repos.Log.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, entry)
}

// CreateLogRequest 日志创建请求
type CreateLogRequest struct {
	Message  string        `json:"message"`
	ToolID   *uint         `json:"tool_id"`
	Level    string        `json:"level"`
	Params   model.JSONMap `json:"params"`
	Result   model.JSONMap `json:"result"`
	Duration int           `json:"duration"`
	Caller   string        `json:"caller"`
}

// Create 创建新日志
func (h *LogHandler) Create(c *gin.Context) {
	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.Message == "" {
		BadRequest(c, "log message is required")
		return
	}
	if req.ToolID != nil {
		if _, err := h.repos.Tool.GetByID(*req.ToolID); err != nil {
			BadRequest(c, fmt.Sprintf("tool id %d does not exist", *req.ToolID))
			return
		}
	}

	entry := &model.Log{
		ToolID:   req.ToolID,
		Level:    model.NormalizeLogLevel(req.Level),
		Message:  req.Message,
		Params:   req.Params,
		Result:   req.Result,
		Duration: req.Duration,
		Caller:   req.Caller,
	}
	if err := h.repos.Log.Create(entry); err != nil {
		Error(c, err)
		return
	}
	Created(c, entry)
}

// Delete 删除日志
func (h *LogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.repos.Log.GetByID(id); err != nil {
		Error(c, err)
		return
	}
	if err := h.repos.Log.Delete(id); err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"message": fmt.Sprintf("log %d deleted", id)})
}

// ClearLogsRequest 日志清除请求
type ClearLogsRequest struct {
	Level      string `json:"level"`
	ToolID     *uint  `json:"tool_id"`
	DaysBefore int    `json:"days_before"`
}

// Clear 按条件清除日志，返回删除数量
func (h *LogHandler) Clear(c *gin.Context) {
	var req ClearLogsRequest
	// 请求体可为空，表示清除全部
	_ = c.ShouldBindJSON(&req)

	filter := repository.ClearFilter{
		ToolID:     req.ToolID,
		DaysBefore: req.DaysBefore,
	}
	if model.IsValidLogLevel(req.Level) {
		filter.Level = req.Level
	}

	count, err := h.repos.Log.Clear(filter)
	if err != nil {
		Error(c, err)
		return
	}
	OK(c, gin.H{"message": fmt.Sprintf("%d log entries cleared", count), "count": count})
}

// ListByTool 获取指定工具的日志
func (h *LogHandler) ListByTool(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	t, err := h.repos.Tool.GetByID(id)
	if err != nil {
		Error(c, err)
		return
	}

	page, perPage := parsePagination(c, 20)
	filter := repository.LogFilter{ToolID: &t.ID}
	if lvl := c.Query("level"); model.IsValidLogLevel(lvl) {
		filter.Level = lvl
	}

	logs, total, err := h.repos.Log.List(filter, page, perPage)
	if err != nil {
		Error(c, err)
		return
	}

	pages := int(total) / perPage
	if int(total)%perPage > 0 {
		pages++
	}
	OK(c, gin.H{
		"tool":  t.Name,
		"items": logs,
		"total": total,
		"pages": pages,
		"page":  page,
	})
}

// parseDate 解析 ISO8601 日期参数
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
