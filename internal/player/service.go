package player

import (
	"errors"
	"fmt"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProvisionalPlayer 生成一个临时的、尚未持久化的新玩家UUID。
// 这个UUID将被设置到cookie中，在首次启动流程完成前尚未被"认证"。
func CreateProvisionalPlayer() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsValidUUID 检查一个字符串是否是合法的UUID格式。
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsKnownPlayer 检查一个给定的UUID是否已经被持久化。
// 未知的UUID意味着这是该安装的首次启动，调用方应当展示引导页
// 并跳过本次排行榜同步。
func IsKnownPlayer(playerID string) (bool, error) {
	if playerID == "" {
		return false, nil
	}
	var count int64
	err := database.DB.Model(&Player{}).Where("uuid = ?", playerID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("无法查询玩家记录: %w", err)
	}
	return count > 0, nil
}

// ActivatePlayer 把一个临时UUID正式持久化为已知玩家。
// 重复激活不是错误：已存在的记录保持不变。
func ActivatePlayer(playerID string) error {
	newPlayer := Player{UUID: playerID}
	err := database.DB.Create(&newPlayer).Error
	if err != nil {
		// 记录已存在不是真正的错误
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("无法在SQLite中创建新玩家: %w", err)
	}
	return nil
}
