package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/database"
	"github.com/SlpAus/zero-to-ninety-nine-backend/pkg/lifecycle"
)

const pushTimeout = 5 * time.Second

// StartSyncWorker 启动排行榜同步器：一个单一消费者，把push队列中的
// 上报按顺序写入远程存储，使远程调用与游戏状态变更完全解耦。
// 收到停机信号后会尽力排空队列中剩余的上报再退出。
func StartSyncWorker(client *Client, handle *lifecycle.Handle) {
	go runSyncLoop(client, handle)
}

func runSyncLoop(client *Client, handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("排行榜同步器 (Leaderboard Syncer) 已启动。")

	for {
		select {
		case <-handle.Done():
			// 收到停机信号，排空队列后退出
			drainQueue(client)
			fmt.Println("排行榜同步器: 停机完成。")
			return
		case req := <-client.pushChan:
			applyPush(client, req)
		}
	}
}

// drainQueue 在停机时处理队列中尚未上报的请求。
// 这里同样是尽力而为：失败即放弃。
func drainQueue(client *Client) {
	for {
		select {
		case req := <-client.pushChan:
			applyPush(client, req)
		default:
			return
		}
	}
}

// applyPush 执行一次上报。失败只记录日志，永不重试：
// 下一次启动推送的是从归档重新计算的局数，自然覆盖本次丢失。
func applyPush(client *Client, req pushRequest) {
	if !database.IsRedisHealthy() {
		fmt.Printf("排行榜同步器: 远程存储不可用，放弃上报 (玩家: %s)。\n", req.PlayerID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := client.store.Upsert(ctx, req.PlayerID, req.GamesWon); err != nil {
		fmt.Printf("警告: 上报玩家 %s 的战绩失败: %v\n", req.PlayerID, err)
	}
}
