package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestArchive 构建一个基于内存SQLite的归档，每个测试用例独立一份
func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Game{}))
	return NewArchive(db)
}

// mustInsertActive 创建并存入一局目标固定的活跃游戏
func mustInsertActive(t *testing.T, a *Archive, playerID string, target int) *Game {
	t.Helper()
	g, err := NewGame(playerID)
	require.NoError(t, err)
	g.Target = target
	require.NoError(t, a.InsertActive(g))
	return g
}

func TestArchive_ActiveGame_EmptyArchive(t *testing.T) {
	a := newTestArchive(t)

	g, err := a.ActiveGame("player-1")
	require.NoError(t, err)
	assert.Nil(t, g)
}

// 单玩家最多一个活跃会话：第二次InsertActive必须失败
func TestArchive_InsertActive_EnforcesSingleActive(t *testing.T) {
	a := newTestArchive(t)
	mustInsertActive(t, a, "player-1", 42)

	second, err := NewGame("player-1")
	require.NoError(t, err)
	assert.ErrorIs(t, a.InsertActive(second), ErrInvalidState)

	// 不同玩家不受影响
	other, err := NewGame("player-2")
	require.NoError(t, err)
	assert.NoError(t, a.InsertActive(other))
}

func TestArchive_SaveProgress_Resumable(t *testing.T) {
	a := newTestArchive(t)
	g := mustInsertActive(t, a, "player-1", 42)

	_, err := g.SubmitGuess(50)
	require.NoError(t, err)
	require.NoError(t, a.SaveProgress(g))

	// 重新读取，进行中的会话连同猜测历史一起被恢复
	resumed, err := a.ActiveGame("player-1")
	require.NoError(t, err)
	require.NotNil(t, resumed)
	assert.Equal(t, g.ID, resumed.ID)
	assert.Equal(t, []int{50}, resumed.Attempts)
	assert.Equal(t, 42, resumed.Target)
	assert.False(t, resumed.GameOver)
}

// 对未终结的会话调用Commit属于调用层编程错误
func TestArchive_Commit_RequiresTerminalSession(t *testing.T) {
	a := newTestArchive(t)
	g := mustInsertActive(t, a, "player-1", 42)

	assert.ErrorIs(t, a.Commit(g), ErrInvalidState)

	_, err := g.SubmitGuess(42)
	require.NoError(t, err)
	require.NoError(t, a.SaveProgress(g))

	assert.NoError(t, a.Commit(g))
	assert.True(t, g.Archived)

	// 归档后槽位被释放
	active, err := a.ActiveGame("player-1")
	require.NoError(t, err)
	assert.Nil(t, active)

	// 重复归档同一局是非法的
	assert.ErrorIs(t, a.Commit(g), ErrInvalidState)
}

func TestArchive_DeleteActive_DiscardsProgress(t *testing.T) {
	a := newTestArchive(t)
	g := mustInsertActive(t, a, "player-1", 42)
	_, err := g.SubmitGuess(50)
	require.NoError(t, err)
	require.NoError(t, a.SaveProgress(g))

	require.NoError(t, a.DeleteActive(g))

	active, err := a.ActiveGame("player-1")
	require.NoError(t, err)
	assert.Nil(t, active)

	// 中途退出不计入战绩
	stats, err := a.PlayerStats("player-1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Played: 0, Won: 0}, stats)
}

// 新归档的played/won均为0；进行中的会话在终结前不计入played
func TestArchive_PlayerStats(t *testing.T) {
	a := newTestArchive(t)

	stats, err := a.PlayerStats("player-1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Played: 0, Won: 0}, stats)

	// 一局胜利（场景A收尾后归档）
	won := mustInsertActive(t, a, "player-1", 42)
	for _, v := range []int{50, 25, 40, 45, 42} {
		_, err := won.SubmitGuess(v)
		require.NoError(t, err)
	}
	require.NoError(t, a.SaveProgress(won))
	require.NoError(t, a.Commit(won))

	stats, err = a.PlayerStats("player-1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Played: 1, Won: 1}, stats)

	// 一局失败（场景B收尾后归档）
	lost := mustInsertActive(t, a, "player-1", 10)
	for _, v := range []int{20, 30, 40, 50, 60} {
		_, err := lost.SubmitGuess(v)
		require.NoError(t, err)
	}
	require.NoError(t, a.SaveProgress(lost))
	require.NoError(t, a.Commit(lost))

	stats, err = a.PlayerStats("player-1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Played: 2, Won: 1}, stats)

	// 进行中的第三局不计入played
	mustInsertActive(t, a, "player-1", 77)
	stats, err = a.PlayerStats("player-1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Played: 2, Won: 1}, stats)
}

func TestArchive_WonGamesByAttemptCount(t *testing.T) {
	a := newTestArchive(t)

	// 1次命中
	g1 := mustInsertActive(t, a, "player-1", 5)
	_, err := g1.SubmitGuess(5)
	require.NoError(t, err)
	require.NoError(t, a.SaveProgress(g1))
	require.NoError(t, a.Commit(g1))

	// 3次命中
	g2 := mustInsertActive(t, a, "player-1", 42)
	for _, v := range []int{50, 25, 42} {
		_, err := g2.SubmitGuess(v)
		require.NoError(t, err)
	}
	require.NoError(t, a.SaveProgress(g2))
	require.NoError(t, a.Commit(g2))

	// 再来一局3次命中
	g3 := mustInsertActive(t, a, "player-1", 7)
	for _, v := range []int{50, 3, 7} {
		_, err := g3.SubmitGuess(v)
		require.NoError(t, err)
	}
	require.NoError(t, a.SaveProgress(g3))
	require.NoError(t, a.Commit(g3))

	// 一局失败不参与分桶
	g4 := mustInsertActive(t, a, "player-1", 10)
	for _, v := range []int{20, 30, 40, 50, 60} {
		_, err := g4.SubmitGuess(v)
		require.NoError(t, err)
	}
	require.NoError(t, a.SaveProgress(g4))
	require.NoError(t, a.Commit(g4))

	buckets, err := a.WonGamesByAttemptCount("player-1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 2, 4: 0, 5: 0}, buckets)
}
