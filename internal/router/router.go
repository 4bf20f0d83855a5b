package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/opsmind/mcp-platform/internal/handler"
	"github.com/opsmind/mcp-platform/internal/middleware"
	"github.com/opsmind/mcp-platform/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS())

	authed := middleware.RequireAuth(svc.Auth)
	adminOnly := middleware.RequireRoles("admin")
	canWrite := middleware.RequireRoles("admin", "operator")

	api := r.Group("/api")

	// 健康检查
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth 认证与用户管理
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/register", authed, adminOnly, h.Auth.Register)
		authGroup.GET("/me", authed, h.Auth.Me)
		authGroup.POST("/change-password", authed, h.Auth.ChangePassword)
		authGroup.GET("/users", authed, adminOnly, h.Auth.ListUsers)
		authGroup.GET("/users/:id", authed, adminOnly, h.Auth.GetUser)
		authGroup.PUT("/users/:id", authed, adminOnly, h.Auth.UpdateUser)
	}

	// Tool 工具管理
	tools := api.Group("/tools", authed)
	{
		tools.GET("", h.Tool.List)
		tools.POST("", canWrite, h.Tool.Create)
		tools.GET("/:id", h.Tool.Get)
		tools.PUT("/:id", canWrite, h.Tool.Update)
		tools.DELETE("/:id", canWrite, h.Tool.Delete)
		tools.POST("/:id/activate", canWrite, h.Tool.Activate)
		tools.POST("/:id/deactivate", canWrite, h.Tool.Deactivate)
		tools.POST("/:id/invoke", canWrite, h.Tool.Invoke)
		tools.GET("/:id/status", h.Tool.Status)
	}

	// Config 配置管理
	configs := api.Group("/configs", authed)
	{
		configs.GET("", h.Config.List)
		configs.POST("", canWrite, h.Config.Create)
		configs.GET("/:id", h.Config.Get)
		configs.PUT("/:id", canWrite, h.Config.Update)
		configs.DELETE("/:id", canWrite, h.Config.Delete)
		configs.POST("/:id/activate", canWrite, h.Config.Activate)
		configs.POST("/:id/deactivate", canWrite, h.Config.Deactivate)
	}

	// Template 模板管理
	templates := api.Group("/templates", authed)
	{
		templates.GET("", h.Template.List)
		templates.POST("", canWrite, h.Template.Create)
		templates.GET("/:id", h.Template.Get)
		templates.PUT("/:id", canWrite, h.Template.Update)
		templates.DELETE("/:id", canWrite, h.Template.Delete)
		templates.POST("/:id/import", canWrite, h.Template.Import)
	}

	// Log 日志管理
	logs := api.Group("/logs", authed)
	{
		logs.GET("", h.Log.List)
		logs.POST("", canWrite, h.Log.Create)
		logs.GET("/:id", h.Log.Get)
		logs.DELETE("/:id", canWrite, h.Log.Delete)
		logs.POST("/clear", canWrite, h.Log.Clear)
		logs.GET("/tool/:id", h.Log.ListByTool)
	}

	// Dashboard 仪表盘
	dashboardGroup := api.Group("/dashboard", authed)
	{
		dashboardGroup.GET("/overview", h.Dashboard.Overview)
		dashboardGroup.GET("/stats/daily", h.Dashboard.DailyStats)
		dashboardGroup.GET("/tool_types", h.Dashboard.ToolTypes)
		dashboardGroup.GET("/recent_activities", h.Dashboard.RecentActivities)
	}

	return r
}
