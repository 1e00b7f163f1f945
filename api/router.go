package api

import (
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/game"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/leaderboard"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/player"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 启动入口：铸造/加载玩家身份，恢复会话，同步排行榜
		api.GET("/home", player.EnsurePlayerCookieMiddleware(), player.LoadPlayerMiddleware(), game.GetHome)

		// 游戏会话相关的路由组 /api/game
		gameRoutes := api.Group("/game", player.LoadPlayerMiddleware())
		{
			gameRoutes.GET("", game.GetActiveGame)
			gameRoutes.POST("", game.StartNewGame)
			gameRoutes.POST("/guess", game.SubmitGuess)
			gameRoutes.POST("/again", game.PlayAgain)
			gameRoutes.DELETE("", game.QuitGame)
		}

		// 战绩统计
		api.GET("/stats", player.LoadPlayerMiddleware(), game.GetStats)

		// 排行榜
		api.GET("/leaderboard", leaderboard.GetLeaderboard)
	}
}
