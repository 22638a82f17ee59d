package user

import (
	"errors"
	"fmt"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"gorm.io/gorm"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("无法迁移user表: %w", err)
	}
	fmt.Println("User数据库表迁移成功。")
	return nil
}

// seedUsers 写入首次初始化时的种子账号：
// 一个未验证的演示选民和一个预先验证的管理员。
// 重复执行是幂等的。
func seedUsers() error {
	seeds := []User{
		{Username: "voter1", DisplayName: "Voter One", Role: RoleVoter, Verified: false},
		{Username: "admin", DisplayName: "Administrator", Role: RoleAdmin, Verified: true},
	}
	for _, seed := range seeds {
		if err := database.DB.Create(&seed).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue // 已存在，跳过
			}
			return fmt.Errorf("无法写入种子用户 %s: %w", seed.Username, err)
		}
	}
	return nil
}

// PrimeDB 是user模块的初始化总入口
func PrimeDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := seedUsers(); err != nil {
		return err
	}
	return nil
}
