package election

import "gorm.io/gorm"

// Setting 定义了存储系统设置的键值对表结构
type Setting struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Key 是设置项的唯一键，例如 "electionActive"
	Key string `gorm:"uniqueIndex;not null;type:varchar(255)"`

	// Value 存储设置项的值（以文本形式）
	Value string `gorm:"type:varchar(255)"`
}
