package model

import "time"

// 配置类型枚举
var ConfigTypes = []string{
	"tool",        // 工具配置
	"environment", // 环境配置
	"system",      // 系统配置
	"user",        // 用户配置
	"other",       // 其他配置
}

// Config 配置
type Config struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:50;index;not null" json:"type"`
	Content     JSONMap   `gorm:"type:text;not null" json:"content"`
	IsActive    bool      `gorm:"index;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Config) TableName() string {
	return "configs"
}

// NormalizeConfigType 规范化配置类型，未知类型回退为 other
func NormalizeConfigType(t string) string {
	if IsValidConfigType(t) {
		return t
	}
	return "other"
}

// IsValidConfigType 判断配置类型是否有效
func IsValidConfigType(t string) bool {
	return contains(ConfigTypes, t)
}
