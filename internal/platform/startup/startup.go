package startup

import (
	"fmt"

	"github.com/SlpAus/evoting-backend/internal/candidate"
	"github.com/SlpAus/evoting-backend/internal/election"
	"github.com/SlpAus/evoting-backend/internal/platform/config"
	"github.com/SlpAus/evoting-backend/internal/user"
	"github.com/SlpAus/evoting-backend/internal/vote"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 按依赖顺序初始化各模块：迁移表结构、写入种子数据、预热计票镜像。
// 所有步骤都是幂等的，重复启动不会产生重复数据。
func InitializeApplication(cfg *config.Config) error {
	fmt.Println("开始应用首次初始化...")

	// 注入管理员凭据校验器（占位实现：配置中的固定账号）
	user.SetCredentialVerifier(user.NewFixedPairVerifier(cfg.Admin.Username, cfg.Admin.Password))

	if err := election.PrimeDB(); err != nil {
		return err
	}
	if err := user.PrimeDB(); err != nil {
		return err
	}
	if err := candidate.PrimeCachedDB(); err != nil {
		return err
	}
	if err := vote.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis计票镜像的函数
func RebuildCache() error {
	fmt.Println("开始计票镜像热重建...")

	if err := candidate.WarmupCache(); err != nil {
		return err
	}

	fmt.Println("计票镜像热重建完成。")
	return nil
}
