package startup

import (
	"fmt"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/game"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/player"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := player.PrimeDB(); err != nil {
		return err
	}
	if err := game.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
