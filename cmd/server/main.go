package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/evoting-backend/api"
	"github.com/SlpAus/evoting-backend/internal/candidate"
	"github.com/SlpAus/evoting-backend/internal/platform/config"
	"github.com/SlpAus/evoting-backend/internal/platform/database"
	"github.com/SlpAus/evoting-backend/internal/platform/health"
	"github.com/SlpAus/evoting-backend/internal/platform/shutdown"
	"github.com/SlpAus/evoting-backend/internal/platform/startup"
	"github.com/SlpAus/evoting-backend/pkg/lifecycle"
	"github.com/SlpAus/evoting-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置并准备会话密钥
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}
	token.GenerateSecretKey()

	// 2. 初始化存储：SQLite是权威存储，Redis是可降级的计票镜像
	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)
	health.InitializeRunID()

	// 3. 执行应用首次启动初始化流程（迁移、种子数据、镜像预热）
	if err := startup.InitializeApplication(cfg); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 4. 启动后台服务：健康检查器和计票镜像同步
	gracefulManager := lifecycle.NewManager()
	forcefulManager := lifecycle.NewManager()

	healthHandle, err := gracefulManager.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	health.StartRedisHealthCheck(healthHandle)

	resyncHandle, err := gracefulManager.NewServiceHandle("tally-mirror-resync")
	if err != nil {
		panic(err)
	}
	candidate.StartResyncService(resyncHandle)

	// 5. 配置并启动HTTP服务器
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Println("服务器已准备就绪，开始监听 " + cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 6. 阻塞等待停机信号，执行两阶段优雅停机
	coordinator := shutdown.NewCoordinator(gracefulManager, forcefulManager)
	coordinator.ListenForSignalsAndShutdown(server)
}
