package vote

import (
	"fmt"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
)

// PrimeDB 负责初始化vote模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&VotedUser{}); err != nil {
		return fmt.Errorf("无法迁移voted_users表: %w", err)
	}
	fmt.Println("VotedUser数据库表迁移成功。")
	return nil
}
