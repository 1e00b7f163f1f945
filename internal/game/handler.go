package game

import (
	"errors"
	"net/http"

	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/leaderboard"
	"github.com/SlpAus/zero-to-ninety-nine-backend/internal/player"
	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

// AttemptResponse 是棋盘上一行猜测的表示：猜测值和它相对目标的方向
type AttemptResponse struct {
	Value   int          `json:"value"`
	Outcome GuessOutcome `json:"outcome"`
}

// GameResponse 是一局游戏对客户端的完整表示。
// 目标数字只在游戏终结后揭示。
type GameResponse struct {
	ID           string            `json:"id"`
	Attempts     []AttemptResponse `json:"attempts"`
	AttemptsLeft int               `json:"attemptsLeft"`
	GameOver     bool              `json:"gameOver"`
	PlayerWon    bool              `json:"playerWon"`
	Target       *int              `json:"target,omitempty"`
	Hint         RangeHint         `json:"hint"`
}

// GuessAPIResponse 是猜测提交的响应
type GuessAPIResponse struct {
	Outcome GuessOutcome `json:"outcome"`
	Game    GameResponse `json:"game"`
}

// ConfirmRequiredResponse 表示矛盾的猜测需要玩家二次确认
type ConfirmRequiredResponse struct {
	NeedsConfirm bool      `json:"needsConfirm"`
	Guess        int       `json:"guess"`
	Hint         RangeHint `json:"hint"`
	Signature    string    `json:"signature"`
}

// StatsResponse 是战绩统计API的响应
type StatsResponse struct {
	Played        int         `json:"played"`
	Won           int         `json:"won"`
	WonByAttempts map[int]int `json:"wonByAttempts"`
}

// HomeResponse 对应应用主界面一次启动所需的全部数据
type HomeResponse struct {
	FirstRun    bool                            `json:"firstRun"`
	ActiveGame  *GameResponse                   `json:"activeGame,omitempty"`
	Stats       StatsResponse                   `json:"stats"`
	Leaderboard leaderboard.LeaderboardResponse `json:"leaderboard"`
}

// formatGame 把领域模型格式化为API表示
func formatGame(g *Game) GameResponse {
	attempts := make([]AttemptResponse, 0, len(g.Attempts))
	for _, v := range g.Attempts {
		attempts = append(attempts, AttemptResponse{Value: v, Outcome: g.OutcomeOf(v)})
	}
	resp := GameResponse{
		ID:           g.ID,
		Attempts:     attempts,
		AttemptsLeft: MaxAttempts - len(g.Attempts),
		GameOver:     g.GameOver,
		PlayerWon:    g.PlayerWon,
		Hint:         HintFor(g),
	}
	if g.GameOver {
		target := g.Target
		resp.Target = &target
	}
	return resp
}

// --- 请求模型 ---

// GuessRequestBody 定义了提交猜测时请求体的JSON结构。
// Signature 只在重提交一个已被标记为矛盾的猜测时携带。
type GuessRequestBody struct {
	Value     *int   `json:"value" binding:"required"`
	Signature string `json:"signature"`
}

// --- 控制器函数 ---

// currentPlayerID 从上下文中取出中间件注入的玩家ID
func currentPlayerID(c *gin.Context) string {
	return c.GetString(player.PlayerIDKey)
}

// GetHome 执行启动流程并返回主界面数据。
// 对应原生应用的onAppear：首次启动展示引导，老玩家恢复会话并同步排行榜。
func GetHome(c *gin.Context) {
	playerID := currentPlayerID(c)
	firstRun := c.GetBool(player.FirstRunKey)

	// 新铸造的玩家标识在首次启动时被持久化
	if firstRun {
		if err := player.ActivatePlayer(playerID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "无法初始化玩家身份"})
			return
		}
	}

	result, err := globalOrchestrator.Launch(playerID, firstRun)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "启动流程失败"})
		return
	}

	stats, buckets, err := globalOrchestrator.Stats(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法读取战绩统计"})
		return
	}

	resp := HomeResponse{
		FirstRun:    result.FirstRun,
		Stats:       StatsResponse{Played: stats.Played, Won: stats.Won, WonByAttempts: buckets},
		Leaderboard: leaderboard.FormatView(leaderboard.Module().Snapshot()),
	}
	if result.ActiveGame != nil {
		g := formatGame(result.ActiveGame)
		resp.ActiveGame = &g
	}
	c.JSON(http.StatusOK, resp)
}

// GetActiveGame 返回当前占据会话槽位的游戏
func GetActiveGame(c *gin.Context) {
	active, err := globalOrchestrator.ActiveGame(currentPlayerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法查询活跃会话"})
		return
	}
	if active == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "当前没有进行中的游戏"})
		return
	}
	c.JSON(http.StatusOK, formatGame(active))
}

// StartNewGame 开启一局新游戏
func StartNewGame(c *gin.Context) {
	newGame, err := globalOrchestrator.StartNewGame(currentPlayerID(c))
	if err != nil {
		if errors.Is(err, ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "已有进行中的游戏，请先完成或退出"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法创建新游戏"})
		return
	}
	c.JSON(http.StatusCreated, formatGame(newGame))
}

// SubmitGuess 处理一次猜测提交。
// 与提示区间矛盾且未经确认的猜测返回409和确认签名，状态不变。
func SubmitGuess(c *gin.Context) {
	var body GuessRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	result, err := globalOrchestrator.SubmitGuess(currentPlayerID(c), *body.Value, body.Signature)
	if err != nil {
		switch {
		case errors.Is(err, ErrOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "猜测必须在0到99之间"})
		case errors.Is(err, ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": "当前没有可以猜测的游戏"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "处理猜测失败"})
		}
		return
	}

	if result.NeedsConfirm {
		c.JSON(http.StatusConflict, ConfirmRequiredResponse{
			NeedsConfirm: true,
			Guess:        *body.Value,
			Hint:         HintFor(result.Game),
			Signature:    result.ConfirmSignature,
		})
		return
	}

	c.JSON(http.StatusOK, GuessAPIResponse{Outcome: result.Outcome, Game: formatGame(result.Game)})
}

// PlayAgain 归档刚结束的一局并立即开始下一局
func PlayAgain(c *gin.Context) {
	newGame, err := globalOrchestrator.PlayAgain(currentPlayerID(c))
	if err != nil {
		if errors.Is(err, ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "当前没有已结束的游戏可以续局"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法开始下一局"})
		return
	}
	c.JSON(http.StatusCreated, formatGame(newGame))
}

// QuitGame 放弃当前进行中的游戏。
// 已经消耗过猜测机会的会话需要显式确认（confirm=1），
// 确认对话本身由表现层负责。
func QuitGame(c *gin.Context) {
	playerID := currentPlayerID(c)

	active, err := globalOrchestrator.ActiveGame(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法查询活跃会话"})
		return
	}
	if active == nil || active.GameOver {
		c.JSON(http.StatusConflict, gin.H{"error": "当前没有可以退出的游戏"})
		return
	}

	if len(active.Attempts) > 0 && c.Query("confirm") != "1" {
		c.JSON(http.StatusConflict, gin.H{
			"needsConfirm": true,
			"error":        "退出将丢失本局进度，请确认后重试",
		})
		return
	}

	if err := globalOrchestrator.Quit(playerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "退出游戏失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "游戏已退出"})
}

// GetStats 返回玩家的战绩统计
func GetStats(c *gin.Context) {
	stats, buckets, err := globalOrchestrator.Stats(currentPlayerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法读取战绩统计"})
		return
	}
	c.JSON(http.StatusOK, StatsResponse{Played: stats.Played, Won: stats.Won, WonByAttempts: buckets})
}
