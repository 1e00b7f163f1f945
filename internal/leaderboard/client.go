package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/database"
)

const fetchTimeout = 5 * time.Second

// pushRequest 是一次待同步的计分上报
type pushRequest struct {
	PlayerID string
	GamesWon int
}

// Client 负责与远程计分存储的全部交互：上报本机玩家的获胜局数，
// 以及拉取前N名的排名视图。所有远程调用都是异步、非阻塞的，
// 绝不阻塞游戏主路径上的任何操作。
type Client struct {
	store   ScoreStore
	topSize int

	// push队列由后台同步器串行消费
	pushChan chan pushRequest

	// 排名视图的本地快照
	mu       sync.RWMutex
	entries  []Entry
	loading  bool
	fetchSeq uint64 // 已发起的最新一次拉取的序号，过期响应被丢弃
}

// View 是排名视图的一致快照。
// Loading 在拉取发起时为true，在第一个完成的响应（成功或失败）后为false，
// 调用方用它来区分"加载中"与"确实没有数据"。
type View struct {
	Loading bool    `json:"loading"`
	Entries []Entry `json:"entries"`
}

// NewClient 创建一个排行榜客户端。排行榜初始处于加载中状态。
func NewClient(store ScoreStore, topSize int) *Client {
	return &Client{
		store:    store,
		topSize:  topSize,
		pushChan: make(chan pushRequest, 64),
		loading:  true,
	}
}

// Push 请求把玩家的获胜局数上报到远程存储。
// 这是发射后不管的操作：入队失败只打印警告，永远不向玩家暴露，
// 也不自动重试——下次启动会用重新计算的局数自然地再推一次。
func (c *Client) Push(playerID string, gamesWon int) {
	select {
	case c.pushChan <- pushRequest{PlayerID: playerID, GamesWon: gamesWon}:
	default:
		fmt.Printf("警告: 排行榜同步队列已满，放弃本次上报 (玩家: %s)。\n", playerID)
	}
}

// RefreshTop 异步发起一次前N名的拉取。
// 响应带序号：如果在它完成之前又发起了新的拉取，过期的结果会被丢弃。
func (c *Client) RefreshTop() {
	c.mu.Lock()
	c.fetchSeq++
	seq := c.fetchSeq
	c.loading = true
	c.mu.Unlock()

	go func() {
		entries := c.fetchOnce()

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.fetchSeq {
			// 已经有更新的拉取在途，丢弃本次结果
			return
		}
		c.entries = entries
		c.loading = false
	}()
}

// fetchOnce 执行一次同步拉取。远程不可用时恢复为空结果，
// 错误只记录，不向上传播。
func (c *Client) fetchOnce() []Entry {
	if !database.IsRedisHealthy() {
		return []Entry{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	entries, err := c.store.QueryTop(ctx, c.topSize)
	if err != nil {
		fmt.Printf("警告: 拉取排行榜失败: %v\n", err)
		return []Entry{}
	}
	return entries
}

// Snapshot 返回排名视图的当前快照。
func (c *Client) Snapshot() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return View{Loading: c.loading, Entries: entries}
}

// FetchTop 同步地查询前n名，主要供测试和诊断使用。
func (c *Client) FetchTop(ctx context.Context, n int) ([]Entry, error) {
	return c.store.QueryTop(ctx, n)
}
