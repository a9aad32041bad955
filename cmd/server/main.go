package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/anything-tier-backend/api"
	"github.com/SlpAus/anything-tier-backend/internal/image"
	"github.com/SlpAus/anything-tier-backend/internal/platform/config"
	"github.com/SlpAus/anything-tier-backend/internal/platform/database"
	"github.com/SlpAus/anything-tier-backend/internal/platform/health"
	"github.com/SlpAus/anything-tier-backend/internal/platform/shutdown"
	"github.com/SlpAus/anything-tier-backend/internal/tournament"
	"github.com/SlpAus/anything-tier-backend/pkg/lifecycle"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env用于本地开发时携带API密钥，缺失不是错误
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("配置加载失败，无法启动: %v", err))
	}

	// 1. 本地镜像是投票数据的权威后备，必须可用
	if err := database.InitDB(cfg.Database.Sqlite); err != nil {
		panic(fmt.Sprintf("本地镜像初始化失败，无法启动: %v", err))
	}
	if err := tournament.InitializeMirror(); err != nil {
		panic(fmt.Sprintf("本地镜像表初始化失败，无法启动: %v", err))
	}

	// 2. 主存储是可选的：未配置或连不上都只是降级
	database.InitRedis(cfg.Database.Redis)

	// 3. 图片解析链
	image.Initialize(cfg.Image)

	// 4. 启动后台健康检查器，驱动主存储的可用状态
	manager := lifecycle.NewManager()
	healthHandle, err := manager.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(fmt.Sprintf("无法注册健康检查器: %v", err))
	}
	go health.StartRedisHealthCheck(healthHandle)

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
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
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 阻塞等待停机信号并编排优雅停机
	coordinator := shutdown.NewCoordinator(manager)
	coordinator.ListenForSignalsAndShutdown(server)
}
