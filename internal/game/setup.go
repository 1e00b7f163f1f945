package game

import (
	"fmt"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/database"
)

// globalOrchestrator 是供Handler使用的模块单例，由ConfigureModule装配
var globalOrchestrator *Orchestrator

// PrimeDB 负责初始化game模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Game{}); err != nil {
		return fmt.Errorf("无法迁移game表: %w", err)
	}
	fmt.Println("Game数据库表迁移成功。")
	return nil
}

// ConfigureModule 装配game模块：基于全局DB构建归档，
// 注入排行榜客户端，组装编排器。
func ConfigureModule(board Board) {
	globalOrchestrator = NewOrchestrator(NewArchive(database.DB), board)
}
