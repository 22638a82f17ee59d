package database

import (
	"fmt"
	"log"
	"os"

	"github.com/SlpAus/evoting-backend/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例，供项目其他部分使用
var DB *gorm.DB

// InitDB 初始化数据库连接
func InitDB(cfg config.SqliteConfig) {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	// 连接到SQLite数据库
	// TranslateError让GORM将驱动错误翻译为gorm.ErrDuplicatedKey等统一错误
	DB, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	// SQLite同一时刻只允许一个写事务，串行化底层连接以避免SQLITE_BUSY
	sqlDB, err := DB.DB()
	if err != nil {
		panic("无法获取底层数据库连接: " + err.Error())
	}
	sqlDB.SetMaxOpenConns(1)

	fmt.Println("数据库连接成功！")
}
