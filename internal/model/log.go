package model

import "time"

// 日志级别枚举
var LogLevels = []string{
	"info",    // 信息
	"warning", // 警告
	"error",   // 错误
	"debug",   // 调试
}

// Log MCP 工具日志
// tool_id 是弱引用：删除工具不会级联删除日志
type Log struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ToolID    *uint     `gorm:"index" json:"tool_id"`
	Level     string    `gorm:"size:20;index;not null;default:info" json:"level"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Params    JSONMap   `gorm:"type:text" json:"params"`
	Result    JSONMap   `gorm:"type:text" json:"result"`
	Duration  int       `json:"duration"`
	Caller    string    `gorm:"size:100" json:"caller"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Log) TableName() string {
	return "logs"
}

// NormalizeLogLevel 规范化日志级别，未知级别回退为 info
func NormalizeLogLevel(l string) string {
	if IsValidLogLevel(l) {
		return l
	}
	return "info"
}

// IsValidLogLevel 判断日志级别是否有效
func IsValidLogLevel(l string) bool {
	return contains(LogLevels, l)
}
