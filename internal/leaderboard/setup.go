package leaderboard

import (
	"github.com/SlpAus/zero-to-ninety-nine-backend/pkg/lifecycle"
)

// globalClient 是模块的私有单例，由ConfigureModule在启动时装配
var globalClient *Client

// ConfigureModule 装配排行榜模块：基于全局RDB构建远程计分存储，
// 创建客户端，并在给定的生命周期句柄下启动后台同步器。
func ConfigureModule(topSize int, handle *lifecycle.Handle) {
	globalClient = NewClient(DefaultStore(), topSize)
	StartSyncWorker(globalClient, handle)
}

// Module 返回装配好的排行榜客户端，供编排层和Handler使用。
func Module() *Client {
	return globalClient
}
