package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// --- Redis 键名常量 ---

const (
	// PlayersKey 是一个 Redis Hash 的键，按玩家UUID存储计分文档。
	// Field: 玩家UUID
	// Value: playerDoc 结构体的JSON序列化字符串 {"id": ..., "gamesWon": ...}
	PlayersKey = "leaderboard:players"

	// RankingKey 是一个 Redis Sorted Set 的键，按获胜局数对玩家实时排序。
	// Score: 玩家的获胜局数
	// Member: 玩家UUID
	RankingKey = "leaderboard:ranking"
)

// Entry 是排行榜中的一条记录
type Entry struct {
	PlayerID string `json:"playerId"`
	GamesWon int    `json:"gamesWon"`
}

// ScoreStore 把远程计分存储建模为能力接口：按玩家ID键控的
// upsert，加上按获胜局数降序、限量的查询。任何满足该契约的
// 后端（Redis、云端文档库、内存测试替身）都可以充当实现。
type ScoreStore interface {
	// Upsert 写入或覆盖一个玩家的计分文档
	Upsert(ctx context.Context, playerID string, gamesWon int) error
	// QueryTop 返回按获胜局数降序的前n条记录。
	// 单条损坏的文档会被静默丢弃，而不是让整次查询失败。
	QueryTop(ctx context.Context, n int) ([]Entry, error)
}

// playerDoc 是远程存储中单个玩家文档的结构。
// 字段用指针建模，以便把"字段缺失"与零值区分开。
type playerDoc struct {
	ID       *string `json:"id"`
	GamesWon *int    `json:"gamesWon"`
}

// parsePlayerDoc 解析一条原始文档。任何一个必需字段缺失或
// JSON损坏都会返回false：一条坏记录不应该让整个排行榜变空。
func parsePlayerDoc(raw string) (Entry, bool) {
	var doc playerDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Entry{}, false
	}
	if doc.ID == nil || doc.GamesWon == nil {
		return Entry{}, false
	}
	return Entry{PlayerID: *doc.ID, GamesWon: *doc.GamesWon}, true
}

// redisStore 是 ScoreStore 的Redis实现，使用全局RDB客户端。
type redisStore struct {
	rdb *redis.Client
}

// NewRedisStore 创建一个基于给定Redis客户端的计分存储。
func NewRedisStore(rdb *redis.Client) ScoreStore {
	return &redisStore{rdb: rdb}
}

// Upsert 使用Pipeline把玩家文档和排名分数一次性写入。
func (s *redisStore) Upsert(ctx context.Context, playerID string, gamesWon int) error {
	doc := playerDoc{ID: &playerID, GamesWon: &gamesWon}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("无法序列化玩家计分文档: %w", err)
	}

	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, PlayersKey, playerID, docJSON)
	pipe.ZAdd(ctx, RankingKey, redis.Z{Score: float64(gamesWon), Member: playerID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("无法向远程计分存储写入: %w", err)
	}
	return nil
}

// QueryTop 从Sorted Set取出前n名的ID，再批量取回各自的文档。
func (s *redisStore) QueryTop(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}

	// 1. 按分数从高到低取前n个玩家ID
	playerIDs, err := s.rdb.ZRevRange(ctx, RankingKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis获取排行榜ID: %w", err)
	}
	if len(playerIDs) == 0 {
		return []Entry{}, nil
	}

	// 2. 批量获取对应的计分文档
	docJSONs, err := s.rdb.HMGet(ctx, PlayersKey, playerIDs...).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis批量获取玩家文档: %w", err)
	}

	// 3. 逐条解析，损坏或缺失的文档直接跳过
	entries := make([]Entry, 0, len(playerIDs))
	for i := range playerIDs {
		raw, ok := docJSONs[i].(string)
		if !ok {
			continue
		}
		entry, ok := parsePlayerDoc(raw)
		if !ok {
			fmt.Printf("警告: 排行榜中玩家 %s 的文档损坏，已跳过。\n", playerIDs[i])
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DefaultStore 返回一个绑定到全局RDB的计分存储。
func DefaultStore() ScoreStore {
	return NewRedisStore(database.RDB)
}
