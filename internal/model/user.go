package model

import "time"

// 用户角色枚举
var UserRoles = []string{
	"admin",    // 管理员
	"operator", // 操作员
	"viewer",   // 查看者
}

// User 用户
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"size:256;not null" json:"-"`
	Email        *string    `gorm:"size:100;uniqueIndex" json:"email"`
	Role         string     `gorm:"size:20;not null;default:viewer" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// NormalizeUserRole 规范化用户角色，未知角色回退为 viewer
func NormalizeUserRole(r string) string {
	if IsValidUserRole(r) {
		return r
	}
	return "viewer"
}

// IsValidUserRole 判断用户角色是否有效
func IsValidUserRole(r string) bool {
	return contains(UserRoles, r)
}
