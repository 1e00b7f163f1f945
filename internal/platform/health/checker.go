package health

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/database"
	"github.com/SlpAus/zero-to-ninety-nine-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

// pingRedis 在有限的超时内探测一次Redis连接。
func pingRedis() error {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()
	return database.RDB.Ping(ctx).Err()
}

// PerformCheck 执行一次健康检查并更新全局状态。
// 它在启动时被阻塞式地调用一次，之后由后台检查器周期性调用。
func PerformCheck() {
	err := pingRedis()
	database.UpdateStatus(err == nil)
}

// StartRedisHealthCheck 启动一个后台Goroutine来周期性地检查Redis连接。
// 远程计分存储是尽力而为的：这里只负责翻转健康标志，
// 不做任何重试或告警，失败的推送会在下次启动时被重新计算的数据自然覆盖。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("健康检查器: 收到停机信号，正在关闭...")
			return
		}
		PerformCheck()
	}
}
