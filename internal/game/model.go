package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// MaxNumber 是目标数字和猜测值的上界（含）
	MaxNumber = 99
	// MaxAttempts 是一局游戏允许的最大猜测次数
	MaxAttempts = 5
)

// GuessOutcome 定义了单次猜测结果的枚举类型
type GuessOutcome string

const (
	// OutcomeCorrect 表示猜中目标数字，游戏以胜利结束
	OutcomeCorrect GuessOutcome = "CORRECT"
	// OutcomeTooHigh 表示猜测值高于目标数字
	OutcomeTooHigh GuessOutcome = "TOO_HIGH"
	// OutcomeTooLow 表示猜测值低于目标数字
	OutcomeTooLow GuessOutcome = "TOO_LOW"
	// OutcomeExhausted 表示第5次猜测仍未命中，游戏以失败结束并揭示目标
	OutcomeExhausted GuessOutcome = "EXHAUSTED"
)

// Game 定义了一局猜数字游戏在SQLite数据库中的持久化模型。
// 一行既可以是进行中的会话（GameOver=false），也可以是已终结的记录。
// Archived 标记该行是否已被正式归档；归档后该行不再被修改。
type Game struct {
	// ID 是游戏的主键，创建时分配的UUID，之后不可变
	ID string `gorm:"primarykey;type:varchar(36)"`

	// PlayerID 是本局游戏所属玩家的UUID
	PlayerID string `gorm:"index;type:varchar(36);not null"`

	// Target 是本局的目标数字，创建时从[0,99]均匀抽取，生命周期内不可变
	Target int

	// Attempts 是按顺序记录的猜测序列，只追加，每次合法猜测增长一个元素
	Attempts []int `gorm:"serializer:json"`

	// GameOver 标记游戏是否已终结，只能从false单调变为true
	GameOver bool

	// PlayerWon 当且仅当游戏以猜中结束时为true
	PlayerWon bool

	// Archived 标记该局是否已作为不可变记录归档。
	// 终结的游戏在玩家选择"再来一局"或开新局时才被惰性归档。
	Archived bool `gorm:"index"`

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// NewGame 创建一局新游戏：空的猜测序列，随机目标，状态为进行中。
func NewGame(playerID string) (*Game, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &Game{
		ID:       id.String(),
		PlayerID: playerID,
		Target:   rand.Intn(MaxNumber + 1),
		Attempts: []int{},
	}, nil
}

// SubmitGuess 是会话状态机唯一的变更操作。
// 前置条件：value在[0,99]内，且游戏尚未终结。
// 违反前置条件时不修改任何状态，分别返回 ErrOutOfRange / ErrInvalidState。
func (g *Game) SubmitGuess(value int) (GuessOutcome, error) {
	// 输入解析层应当在调用前拒绝非法值，这里仍然做防御性检查
	if value < 0 || value > MaxNumber {
		return "", ErrOutOfRange
	}
	if g.GameOver {
		return "", ErrInvalidState
	}

	g.Attempts = append(g.Attempts, value)

	// 1. 猜中：以胜利终结
	if value == g.Target {
		g.GameOver = true
		g.PlayerWon = true
		return OutcomeCorrect, nil
	}

	// 2. 用尽5次机会：以失败终结，由调用方向玩家揭示目标
	if len(g.Attempts) >= MaxAttempts {
		g.GameOver = true
		return OutcomeExhausted, nil
	}

	// 3. 未终结：返回方向提示
	if value > g.Target {
		return OutcomeTooHigh, nil
	}
	return OutcomeTooLow, nil
}

// OutcomeOf 返回历史猜测序列中某个猜测值相对目标的结果。
// 用于在响应中重放整个棋盘的高/低/中提示。
func (g *Game) OutcomeOf(value int) GuessOutcome {
	switch {
	case value == g.Target:
		return OutcomeCorrect
	case value > g.Target:
		return OutcomeTooHigh
	default:
		return OutcomeTooLow
	}
}
