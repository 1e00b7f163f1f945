package game

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Archive 是所有游戏记录加上单个活跃会话的持久化归属地。
// 它构建在本地SQLite存储之上；本地存储读写失败对当前操作是致命的，
// 必须向调用方传播，否则游戏进度会在无人察觉的情况下丢失。
type Archive struct {
	db *gorm.DB
}

// Stats 是归档聚合出的战绩统计
type Stats struct {
	Played int `json:"played"`
	Won    int `json:"won"`
}

// NewArchive 创建一个基于给定数据库连接的归档。
// 连接作为显式依赖传入，便于测试时替换为内存SQLite。
func NewArchive(db *gorm.DB) *Archive {
	return &Archive{db: db}
}

// ActiveGame 返回玩家当前占据"会话槽位"的一局游戏（Archived=false），
// 不存在时返回 (nil, nil)。刚终结但尚未归档的游戏也会被返回，
// 以便其最终棋盘状态在归档前仍然可见。
func (a *Archive) ActiveGame(playerID string) (*Game, error) {
	var g Game
	err := a.db.Where("player_id = ? AND archived = ?", playerID, false).First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("无法从SQLite查询活跃会话: %w", err)
	}
	return &g, nil
}

// InsertActive 存入一局新的活跃游戏。
// 单玩家单设备模型下，每个玩家最多只允许一个活跃会话；
// 该不变量由归档负责强制，违反时返回 ErrInvalidState。
func (a *Archive) InsertActive(g *Game) error {
	var count int64
	err := a.db.Model(&Game{}).Where("player_id = ? AND archived = ?", g.PlayerID, false).Count(&count).Error
	if err != nil {
		return fmt.Errorf("无法检查活跃会话数量: %w", err)
	}
	if count > 0 {
		return ErrInvalidState
	}
	if err := a.db.Create(g).Error; err != nil {
		return fmt.Errorf("无法在SQLite中创建新游戏: %w", err)
	}
	return nil
}

// SaveProgress 持久化活跃会话的最新状态（新增的猜测、终结标志），
// 使进行中的游戏能在下次启动时被恢复。
func (a *Archive) SaveProgress(g *Game) error {
	if g.Archived {
		return ErrInvalidState
	}
	if err := a.db.Save(g).Error; err != nil {
		return fmt.Errorf("无法持久化游戏进度: %w", err)
	}
	return nil
}

// Commit 将一局已终结的游戏正式归档为不可变记录。
// 对未终结的会话调用属于调用层的编程错误，返回 ErrInvalidState。
func (a *Archive) Commit(g *Game) error {
	if !g.GameOver || g.Archived {
		return ErrInvalidState
	}
	g.Archived = true
	if err := a.db.Save(g).Error; err != nil {
		g.Archived = false
		return fmt.Errorf("无法归档游戏记录: %w", err)
	}
	return nil
}

// DeleteActive 删除当前活跃会话而不归档。
// 用于"退出游戏"：零猜测时直接删除；有猜测时编排层必须已经
// 获得玩家的明确确认。中途退出丢弃进度，不计入战绩。
func (a *Archive) DeleteActive(g *Game) error {
	if g.Archived {
		return ErrInvalidState
	}
	if err := a.db.Unscoped().Delete(g).Error; err != nil {
		return fmt.Errorf("无法删除活跃会话: %w", err)
	}
	return nil
}

// PlayerStats 统计一个玩家的战绩。
// played只统计已终结的游戏：进行中的会话在终结前不计入。
func (a *Archive) PlayerStats(playerID string) (Stats, error) {
	var played, won int64
	err := a.db.Model(&Game{}).Where("player_id = ? AND game_over = ?", playerID, true).Count(&played).Error
	if err != nil {
		return Stats{}, fmt.Errorf("无法统计已完成的游戏数: %w", err)
	}
	err = a.db.Model(&Game{}).Where("player_id = ? AND player_won = ?", playerID, true).Count(&won).Error
	if err != nil {
		return Stats{}, fmt.Errorf("无法统计获胜的游戏数: %w", err)
	}
	return Stats{Played: int(played), Won: int(won)}, nil
}

// WonGamesByAttemptCount 将玩家所有获胜的游戏按猜测次数(1..5)分桶计数，
// 供前端绘制"获胜用时"图表。
func (a *Archive) WonGamesByAttemptCount(playerID string) (map[int]int, error) {
	var wonGames []Game
	err := a.db.Where("player_id = ? AND player_won = ?", playerID, true).Find(&wonGames).Error
	if err != nil {
		return nil, fmt.Errorf("无法读取获胜的游戏记录: %w", err)
	}

	buckets := make(map[int]int, MaxAttempts)
	for i := 1; i <= MaxAttempts; i++ {
		buckets[i] = 0
	}
	for _, g := range wonGames {
		n := len(g.Attempts)
		if n >= 1 && n <= MaxAttempts {
			buckets[n]++
		}
	}
	return buckets, nil
}
