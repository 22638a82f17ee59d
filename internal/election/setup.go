package election

import (
	"fmt"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
)

// PrimeDB 负责初始化election模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Setting{}); err != nil {
		return fmt.Errorf("无法迁移settings表: %w", err)
	}
	fmt.Println("Settings数据库表迁移成功。")

	// 首次初始化时写入选举未开启的默认状态
	valueStr, err := GetValue(database.DB, ActiveKey)
	if err != nil {
		return fmt.Errorf("无法读取选举状态种子: %w", err)
	}
	if valueStr == "" {
		if err := SetValue(database.DB, ActiveKey, "false"); err != nil {
			return fmt.Errorf("无法写入选举状态种子: %w", err)
		}
	}
	return nil
}
