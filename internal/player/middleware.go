package player

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName   = "player-id"
	CookieMaxAge = 365 * 24 * 60 * 60
	PlayerIDKey  = "playerID"
	FirstRunKey  = "firstRun"
)

// EnsurePlayerCookieMiddleware 确保客户端携带一个格式正确的player-id cookie。
// 如果没有或格式不正确，它会生成一个新的临时ID并设置cookie，
// 同时在上下文中标记本次请求属于"首次启动"。
func EnsurePlayerCookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, err := c.Cookie(CookieName)

		// 如果Cookie不存在，或存在但格式不正确，则分发一个新的
		if err != nil || !IsValidUUID(playerID) {
			if err != nil && err != http.ErrNoCookie {
				fmt.Printf("检测到无效的玩家Cookie: %s, err: %v\n", playerID, err)
			}
			provisionalID, err := CreateProvisionalPlayer()
			if err != nil {
				fmt.Printf("创建临时玩家ID时发生错误: %v\n", err)
			} else {
				c.SetCookie(CookieName, provisionalID, CookieMaxAge, "/", "", false, true)
				c.Set(PlayerIDKey, provisionalID)
				c.Set(FirstRunKey, true)
			}
			c.Next()
			return
		}

		// Cookie格式正确但归档中没有这名玩家（例如服务端数据被重置），
		// 同样按首次启动处理，沿用原有的ID重新激活。
		known, err := IsKnownPlayer(playerID)
		if err != nil {
			fmt.Printf("查询玩家记录时发生错误: %v\n", err)
		} else if !known {
			c.Set(FirstRunKey, true)
		}
		c.Set(PlayerIDKey, playerID)

		c.Next()
	}
}

// LoadPlayerMiddleware 读取cookie并将其值放入Gin上下文中。
func LoadPlayerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// EnsurePlayerCookieMiddleware 可能已经在本次请求中写入了新ID
		if _, exists := c.Get(PlayerIDKey); exists {
			c.Next()
			return
		}
		playerID, _ := c.Cookie(CookieName)
		c.Set(PlayerIDKey, playerID)
		c.Next()
	}
}
