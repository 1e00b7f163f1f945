package player

import (
	"fmt"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/platform/database"
)

// PrimeDB 负责初始化player模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Player{}); err != nil {
		return fmt.Errorf("无法迁移player表: %w", err)
	}
	fmt.Println("Player数据库表迁移成功。")
	return nil
}
