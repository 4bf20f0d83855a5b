package model

import "time"

// 工具类型枚举
var ToolTypes = []string{
	"filesystem",    // 文件系统工具
	"network",       // 网络工具
	"data_analysis", // 数据分析工具
	"media",         // 媒体处理工具
	"system",        // 系统工具
	"puppeteer",     // 浏览器自动化工具
	"other",         // 其他类型
}

// 工具状态枚举
var ToolStatuses = []string{
	"active",   // 活跃状态
	"inactive", // 非活跃状态
	"error",    // 错误状态
}

// Tool MCP 工具
type Tool struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description   string     `gorm:"type:text" json:"description"`
	Type          string     `gorm:"size:50;index;not null" json:"type"`
	Status        string     `gorm:"size:20;index;default:inactive" json:"status"`
	Command       string     `gorm:"size:200" json:"command"`
	Config        JSONMap    `gorm:"type:text" json:"config"`
	LastInvokedAt *time.Time `json:"last_invoked_at"`
	InvokeCount   int        `gorm:"default:0" json:"invoke_count"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Tool) TableName() string {
	return "tools"
}

// NormalizeToolType 规范化工具类型，未知类型回退为 other
func NormalizeToolType(t string) string {
	if IsValidToolType(t) {
		return t
	}
	return "other"
}

// IsValidToolType 判断工具类型是否有效
func IsValidToolType(t string) bool {
	return contains(ToolTypes, t)
}

// IsValidToolStatus 判断工具状态是否有效
func IsValidToolStatus(s string) bool {
	return contains(ToolStatuses, s)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
