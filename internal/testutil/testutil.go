// Package testutil 提供测试辅助函数
package testutil

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/opsmind/mcp-platform/internal/config"
	"github.com/opsmind/mcp-platform/internal/database"
	"github.com/opsmind/mcp-platform/internal/handler"
	"github.com/opsmind/mcp-platform/internal/repository"
	"github.com/opsmind/mcp-platform/internal/router"
	"github.com/opsmind/mcp-platform/internal/service"
)

// NewTestDB 创建内存数据库，完成迁移和初始管理员写入
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// NewTestRepos 创建基于内存数据库的仓储集合
func NewTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	return repository.NewRepositories(NewTestDB(t))
}

// TestConfig 测试用配置
func TestConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "mcp-platform", Debug: false},
		Server: config.ServerConfig{Mode: gin.TestMode},
		JWT: config.JWTConfig{
			Secret:      "test_secret",
			ExpireHours: 1,
		},
	}
}

// App 测试应用上下文
type App struct {
	Repos    *repository.Repositories
	Services *service.Services
	Router   *gin.Engine
}

// NewTestApp 构建完整的测试应用，包含路由和初始管理员
func NewTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := NewTestRepos(t)
	cfg := TestConfig()
	services := service.NewServices(repos, cfg, zap.NewNop())
	handlers := handler.NewHandlers(repos, services)

	return &App{
		Repos:    repos,
		Services: services,
		Router:   router.SetupRouter(handlers, services, zap.NewNop()),
	}
}
