package database

import (
	"context"
	"fmt"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是一个全局的Redis客户端实例，扮演远程计分存储的角色
var RDB *redis.Client

// Ctx 是一个全局的上下文，用于Redis操作
var Ctx = context.Background()

// InitRedis 初始化与Redis数据库的连接
// 排行榜是尽力而为的社交功能，连接失败不会阻止应用启动，
// 只会把远程存储标记为不可用，等待健康检查恢复。
func InitRedis(cfg config.RedisConfig) {
	// 创建一个新的Redis客户端
	// 使用从配置文件加载的参数
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 使用Ping命令来测试连接是否成功
	_, err := RDB.Ping(Ctx).Result()
	if err != nil {
		fmt.Printf("警告: 无法连接到Redis: %v，排行榜功能暂时不可用。\n", err)
		UpdateStatus(false)
		return
	}

	fmt.Println("Redis 连接成功！")
}
