package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// UseTestDB 为单元测试初始化一个内存SQLite数据库。
// 它会替换全局的DB实例，并把Redis标记为不可用，
// 使计票镜像的写入在测试中被自动跳过。
func UseTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("无法打开内存SQLite数据库: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("无法获取底层数据库连接: %v", err)
	}
	// 与生产配置一致：单连接串行化写事务
	sqlDB.SetMaxOpenConns(1)

	DB = db
	UpdateStatus(false, "")

	t.Cleanup(func() {
		_ = sqlDB.Close()
		DB = nil
	})
}
