package model

import "time"

// Template MCP 工具模板
type Template struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"size:50;index;not null" json:"type"`
	Content     JSONMap   `gorm:"type:text;not null" json:"content"`
	Scenarios   string    `gorm:"size:200" json:"scenarios"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Template) TableName() string {
	return "templates"
}
