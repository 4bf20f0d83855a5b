package repository

import "gorm.io/gorm"

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB        *gorm.DB // 直接访问数据库
	Tool      *ToolRepository
	Config    *ConfigRepository
	Template  *TemplateRepository
	Log       *LogRepository
	User      *UserRepository
	Dashboard *DashboardRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:        db,
		Tool:      NewToolRepository(db),
		Config:    NewConfigRepository(db),
		Template:  NewTemplateRepository(db),
		Log:       NewLogRepository(db),
		User:      NewUserRepository(db),
		Dashboard: NewDashboardRepository(db),
	}
}
