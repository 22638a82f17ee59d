package candidate

import (
	"errors"
	"fmt"

	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"gorm.io/gorm"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Candidate{}); err != nil {
		return fmt.Errorf("无法迁移candidate表: %w", err)
	}
	fmt.Println("Candidate数据库表迁移成功。")
	return nil
}

// seedCandidates 写入首次初始化时的两位演示候选人，票数为0。
// 重复执行是幂等的。
func seedCandidates() error {
	seeds := []Candidate{
		{Name: "Alice", Manifesto: "Transparency and Innovation", Votes: 0},
		{Name: "Bob", Manifesto: "Community and Growth", Votes: 0},
	}
	for _, seed := range seeds {
		if err := database.DB.Create(&seed).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue // 已存在，跳过
			}
			return fmt.Errorf("无法写入种子候选人 %s: %w", seed.Name, err)
		}
	}
	return nil
}

// PrimeCachedDB 负责初始化candidate模块的数据库和计票镜像
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := seedCandidates(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
