package player

import (
	"time"

	"gorm.io/gorm"
)

// Player 定义了玩家在SQLite数据库中的持久化模型。
// 一次安装对应一个玩家：UUID在首次启动时生成一次，之后保持稳定。
// 获胜局数不在这里存储，每次同步时都从游戏归档重新计算。
type Player struct {
	// UUID 是玩家的主键，来自客户端Cookie。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
