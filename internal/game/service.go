package game

import (
	"fmt"

	"github.com/SlpAus/zero-to-ninety-nine-backend/pkg/token"
)

// Board 是编排器对排行榜客户端的依赖面。
// 两个方法都是异步、发射后不管的，绝不阻塞游戏主路径。
type Board interface {
	// Push 上报玩家重新计算出的获胜局数
	Push(playerID string, gamesWon int)
	// RefreshTop 触发一次排名视图的后台刷新
	RefreshTop()
}

// Orchestrator 是顶层协调者：启动时恢复未完成的会话、开启新会话、
// 把终结的会话送入归档，并触发排行榜同步。
// 依赖通过构造函数显式注入，核心不持有任何隐藏的全局状态。
type Orchestrator struct {
	archive *Archive
	board   Board
}

// NewOrchestrator 创建一个编排器。
func NewOrchestrator(archive *Archive, board Board) *Orchestrator {
	return &Orchestrator{archive: archive, board: board}
}

// LaunchResult 是一次启动流程的结果
type LaunchResult struct {
	FirstRun   bool
	ActiveGame *Game // 可恢复的未终结会话，没有则为nil
	Stats      Stats
}

// Launch 执行应用启动流程。
// 首次启动：跳过战绩上报（还没有可上报的数据），只触发排名拉取，
// 调用方负责展示引导页并持久化新铸造的玩家标识。
// 老玩家：恢复未终结的会话（而不是悄悄丢弃进行中的状态），
// 把从归档重新计算的获胜局数推送到远程存储，并拉取前N名。
func (o *Orchestrator) Launch(playerID string, firstRun bool) (*LaunchResult, error) {
	if firstRun {
		o.board.RefreshTop()
		return &LaunchResult{FirstRun: true}, nil
	}

	stats, err := o.archive.PlayerStats(playerID)
	if err != nil {
		return nil, err
	}

	active, err := o.archive.ActiveGame(playerID)
	if err != nil {
		return nil, err
	}
	// 刚终结但尚未归档的游戏不参与恢复，只有进行中的会话才被续上
	if active != nil && active.GameOver {
		active = nil
	}

	o.board.Push(playerID, stats.Won)
	o.board.RefreshTop()

	return &LaunchResult{ActiveGame: active, Stats: stats}, nil
}

// StartNewGame 为玩家开启一局新游戏并占据会话槽位。
// 如果槽位上残留着一局已终结但未归档的游戏（玩家上次直接关闭了结算页），
// 先把它惰性归档并重推战绩；槽位上还有进行中的游戏则返回 ErrInvalidState。
func (o *Orchestrator) StartNewGame(playerID string) (*Game, error) {
	active, err := o.archive.ActiveGame(playerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		if !active.GameOver {
			return nil, ErrInvalidState
		}
		if err := o.archive.Commit(active); err != nil {
			return nil, err
		}
		o.pushStats(playerID)
	}

	newGame, err := NewGame(playerID)
	if err != nil {
		return nil, err
	}
	if err := o.archive.InsertActive(newGame); err != nil {
		return nil, err
	}
	return newGame, nil
}

// GuessResult 是一次猜测提交的结果。
// NeedsConfirm 为true时表示本次猜测与提示区间矛盾且尚未经玩家确认：
// 会话状态未被修改，调用方应当用返回的签名引导玩家二次确认。
type GuessResult struct {
	Outcome          GuessOutcome
	Game             *Game
	NeedsConfirm     bool
	ConfirmSignature string
}

// SubmitGuess 把一次猜测送入活跃会话。
// 矛盾检测是软警告：携带有效确认签名重新提交后，猜测被正常处理——
// 玩家永远是基准，游戏在"不合逻辑"的猜测之后也必须保持可猜。
func (o *Orchestrator) SubmitGuess(playerID string, value int, confirmSignature string) (*GuessResult, error) {
	// 防御性范围检查，在触碰任何状态之前拒绝非法值
	if value < 0 || value > MaxNumber {
		return nil, ErrOutOfRange
	}

	active, err := o.archive.ActiveGame(playerID)
	if err != nil {
		return nil, err
	}
	if active == nil || active.GameOver {
		return nil, ErrInvalidState
	}

	// 矛盾的再猜测需要玩家确认后才能继续
	hint := HintFor(active)
	if hint.Contradicts(value) {
		payload := token.ConfirmPayload{GameID: active.ID, Guess: value}
		if confirmSignature == "" || !token.ValidateConfirmSignature(payload, confirmSignature) {
			signature, err := token.GenerateConfirmSignature(payload)
			if err != nil {
				return nil, err
			}
			return &GuessResult{Game: active, NeedsConfirm: true, ConfirmSignature: signature}, nil
		}
	}

	outcome, err := active.SubmitGuess(value)
	if err != nil {
		return nil, err
	}

	// 本地存储失败对当前操作是致命的，向调用方传播
	if err := o.archive.SaveProgress(active); err != nil {
		return nil, err
	}

	// 终结的会话留在槽位上尚不归档，最终棋盘对玩家保持可见；
	// 归档在playAgain或开新局时惰性发生。
	return &GuessResult{Outcome: outcome, Game: active}, nil
}

// PlayAgain 结束当前回合并立即开始下一局：
// 归档槽位上已终结的游戏，创建新会话，并重推更新后的战绩
// （刚才可能新增了一场胜利）。
func (o *Orchestrator) PlayAgain(playerID string) (*Game, error) {
	active, err := o.archive.ActiveGame(playerID)
	if err != nil {
		return nil, err
	}
	if active == nil || !active.GameOver {
		return nil, ErrInvalidState
	}

	if err := o.archive.Commit(active); err != nil {
		return nil, err
	}

	newGame, err := NewGame(playerID)
	if err != nil {
		return nil, err
	}
	if err := o.archive.InsertActive(newGame); err != nil {
		return nil, err
	}

	o.pushStats(playerID)
	return newGame, nil
}

// Quit 放弃当前进行中的会话：直接删除，不归档，不计入战绩。
// 有过猜测的会话需要玩家确认，但提示确认是表现层的职责——
// 调用到这里时确认必须已经完成。
func (o *Orchestrator) Quit(playerID string) error {
	active, err := o.archive.ActiveGame(playerID)
	if err != nil {
		return err
	}
	if active == nil || active.GameOver {
		return ErrInvalidState
	}
	return o.archive.DeleteActive(active)
}

// ActiveGame 返回玩家当前占据槽位的游戏，供表现层查询。
func (o *Orchestrator) ActiveGame(playerID string) (*Game, error) {
	return o.archive.ActiveGame(playerID)
}

// Stats 返回玩家的战绩统计和获胜次数分布。
func (o *Orchestrator) Stats(playerID string) (Stats, map[int]int, error) {
	stats, err := o.archive.PlayerStats(playerID)
	if err != nil {
		return Stats{}, nil, err
	}
	buckets, err := o.archive.WonGamesByAttemptCount(playerID)
	if err != nil {
		return Stats{}, nil, err
	}
	return stats, buckets, nil
}

// pushStats 重新计算玩家战绩并异步上报。
// 统计失败不影响主流程，只打印警告——排行榜是尽力而为的。
func (o *Orchestrator) pushStats(playerID string) {
	stats, err := o.archive.PlayerStats(playerID)
	if err != nil {
		fmt.Printf("警告: 重新计算玩家 %s 的战绩失败，跳过本次上报: %v\n", playerID, err)
		return
	}
	o.board.Push(playerID, stats.Won)
}
