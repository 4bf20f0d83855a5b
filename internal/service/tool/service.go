package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/opsmind/mcp-platform/internal/model"
	"github.com/opsmind/mcp-platform/internal/repository"
)

// ErrNotActive 工具未激活，不能调用
var ErrNotActive = errors.New("tool is not active")

// Service 工具服务，负责工具的启动、停止和调用
type Service struct {
	repo   *repository.Repositories
	logger *zap.Logger
}

// NewService 创建工具服务
func NewService(repo *repository.Repositories, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// InvokeResult 调用结果
type InvokeResult struct {
	Success  bool          `json:"success"`
	Result   model.JSONMap `json:"result,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration int           `json:"duration"`
}

// Start 启动工具服务
// 工具已处于活跃状态时直接成功
func (s *Service) Start(ctx context.Context, id uint) (*model.Tool, error) {
	t, err := s.repo.Tool.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t.Status == "active" {
		return t, nil
	}

	t.Status = "active"
	if err := s.repo.Tool.Update(t); err != nil {
		s.markError(t, fmt.Sprintf("tool '%s' failed to start: %v", t.Name, err))
		return nil, err
	}

	s.writeLog(t.ID, "info", fmt.Sprintf("tool '%s' started", t.Name), nil, nil, 0)
	return t, nil
}

// Stop 停止工具服务
// 工具已处于非活跃状态时直接成功
func (s *Service) Stop(ctx context.Context, id uint) (*model.Tool, error) {
	t, err := s.repo.Tool.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t.Status == "inactive" {
		return t, nil
	}

	t.Status = "inactive"
	if err := s.repo.Tool.Update(t); err != nil {
		s.writeLog(t.ID, "error", fmt.Sprintf("tool '%s' failed to stop: %v", t.Name, err), nil, nil, 0)
		return nil, err
	}

	s.writeLog(t.ID, "info", fmt.Sprintf("tool '%s' stopped", t.Name), nil, nil, 0)
	return t, nil
}

// Invoke 调用工具
// 没有真实的执行引擎，调用只更新计数并返回桩结果
func (s *Service) Invoke(ctx context.Context, id uint, params model.JSONMap) (*model.Tool, *InvokeResult, error) {
	t, err := s.repo.Tool.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if t.Status != "active" {
		return t, nil, ErrNotActive
	}

	start := time.Now()
	result := model.JSONMap{"status": "success", "data": map[string]interface{}{}}
	duration := int(time.Since(start).Milliseconds())

	now := time.Now().UTC()
	t.LastInvokedAt = &now
	t.InvokeCount++
	if err := s.repo.Tool.Update(t); err != nil {
		// 存储失败记录为错误日志并返回结构化失败结果，不向上传播
		s.writeLog(t.ID, "error", fmt.Sprintf("tool '%s' invocation failed: %v", t.Name, err), params, nil, duration)
		return t, &InvokeResult{Success: false, Error: err.Error(), Duration: duration}, nil
	}

	s.writeLog(t.ID, "info", fmt.Sprintf("tool '%s' invoked successfully", t.Name), params, result, duration)
	return t, &InvokeResult{Success: true, Result: result, Duration: duration}, nil
}

// StatusInfo 工具状态信息
type StatusInfo struct {
	Status        string     `json:"status"`
	LastInvokedAt *time.Time `json:"last_invoked_at"`
	InvokeCount   int        `json:"invoke_count"`
}

// Status 查询工具状态
func (s *Service) Status(ctx context.Context, id uint) (*StatusInfo, error) {
	t, err := s.repo.Tool.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &StatusInfo{
		Status:        t.Status,
		LastInvokedAt: t.LastInvokedAt,
		InvokeCount:   t.InvokeCount,
	}, nil
}

// markError 将工具置为错误状态并记录错误日志
func (s *Service) markError(t *model.Tool, message string) {
	t.Status = "error"
	if err := s.repo.Tool.Update(t); err != nil {
		s.logger.Error("failed to mark tool as error", zap.Uint("tool_id", t.ID), zap.Error(err))
	}
	s.writeLog(t.ID, "error", message, nil, nil, 0)
}

// writeLog 写入审计日志，失败时只记录到应用日志
func (s *Service) writeLog(toolID uint, level, message string, params, result model.JSONMap, duration int) {
	entry := &model.Log{
		ToolID:   &toolID,
		Level:    level,
		Message:  message,
		Params:   params,
		Result:   result,
		Duration: duration,
		Caller:   "tool_service",
	}
	if err := s.repo.Log.Create(entry); err != nil {
		s.logger.Error("failed to write tool log", zap.Uint("tool_id", toolID), zap.Error(err))
	}
}
