package service

import (
	"go.uber.org/zap"

	"github.com/opsmind/mcp-platform/internal/config"
	"github.com/opsmind/mcp-platform/internal/repository"
	"github.com/opsmind/mcp-platform/internal/service/auth"
	"github.com/opsmind/mcp-platform/internal/service/dashboard"
	"github.com/opsmind/mcp-platform/internal/service/tool"
)

// Services 服务集合
type Services struct {
	Auth      *auth.Service
	Tool      *tool.Service
	Dashboard *dashboard.Service
}

// NewServices 创建所有服务
func NewServices(repos *repository.Repositories, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth:      auth.NewService(repos, cfg.JWT),
		Tool:      tool.NewService(repos, logger),
		Dashboard: dashboard.NewService(repos),
	}
}
