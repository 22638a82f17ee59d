package user

import (
	"time"
)

// Role 定义了用户角色的枚举类型
type Role string

const (
	// RoleAdmin 表示管理员，隐式已验证
	RoleAdmin Role = "ADMIN"
	// RoleVoter 表示选民，需要管理员验证后才能投票
	RoleVoter Role = "VOTER"
)

// User 定义了用户在SQLite数据库中的持久化模型。
// Username 是业务主键，唯一且永久地标识一条用户记录。
type User struct {
	// Username 是用户的主键，由注册或种子数据写入
	Username string `gorm:"primarykey;type:varchar(64)" json:"username"`

	// DisplayName 是展示给界面的名称
	DisplayName string `json:"display_name"`

	// Role 是用户的角色，ADMIN 或 VOTER
	Role Role `gorm:"type:varchar(16);not null" json:"role"`

	// Verified 仅对VOTER有意义；管理员始终视为已验证
	Verified bool `json:"verified"`

	// 由GORM自动管理
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
