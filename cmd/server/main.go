package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/zero-to-ninety-nine-backend/api"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/game"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/leaderboard"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/config"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/database"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/health"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/shutdown"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/startup"
	"github.com/SlpAus/zero-to-ninety-nine-backend/pkg/lifecycle"
	"github.com/SlpAus/zero-to-ninety-nine-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败，无法启动: %v", err))
	}

	// 2. 初始化基础设施
	token.GenerateSecretKey()
	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 3. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 4. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 5. 创建生命周期管理器并装配各模块
	manager := lifecycle.NewManager()

	syncerHandle, err := manager.NewServiceHandle("排行榜同步器")
	if err != nil {
		panic(err)
	}
	leaderboard.ConfigureModule(cfg.Leaderboard.TopSize, syncerHandle)
	game.ConfigureModule(leaderboard.Module())

	healthHandle, err := manager.NewServiceHandle("Redis健康检查器")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	// 6. 创建Gin引擎并配置中间件
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	// 7. 启动服务器并等待停机信号
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

	coordinator := shutdown.NewCoordinator(manager)
	coordinator.ListenForSignalsAndShutdown(server)
}
