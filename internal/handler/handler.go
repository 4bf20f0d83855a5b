package handler

import (
	"github.com/opsmind/mcp-platform/internal/repository"
	"github.com/opsmind/mcp-platform/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth      *AuthHandler
	Tool      *ToolHandler
	Config    *ConfigHandler
	Template  *TemplateHandler
	Log       *LogHandler
	Dashboard *DashboardHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(repos *repository.Repositories, svc *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc),
		Tool:      NewToolHandler(repos, svc),
		Config:    NewConfigHandler(repos),
		Template:  NewTemplateHandler(repos),
		Log:       NewLogHandler(repos),
		Dashboard: NewDashboardHandler(svc.Dashboard),
	}
}
