package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 提示区间随着每次高/低反馈单调收紧
func TestHintFor_Narrowing(t *testing.T) {
	g := newFixedGame(42)

	hint := HintFor(g)
	assert.Equal(t, RangeHint{Low: 0, High: MaxNumber}, hint)

	_, err := g.SubmitGuess(50) // 猜高 → 上界收紧到49
	require.NoError(t, err)
	assert.Equal(t, RangeHint{Low: 0, High: 49}, HintFor(g))

	_, err = g.SubmitGuess(25) // 猜低 → 下界收紧到26
	require.NoError(t, err)
	assert.Equal(t, RangeHint{Low: 26, High: 49}, HintFor(g))

	// 区间外的重复信息不会放宽已有边界
	_, err = g.SubmitGuess(60)
	require.NoError(t, err)
	assert.Equal(t, RangeHint{Low: 26, High: 49}, HintFor(g))
}

// 场景C：已知目标≥25时猜20属于矛盾猜测，需要确认；
// 但它依然是合法输入，确认后由SubmitGuess正常处理。
func TestRangeHint_Contradicts(t *testing.T) {
	g := newFixedGame(42)
	_, err := g.SubmitGuess(24) // 猜低 → Low=25
	require.NoError(t, err)

	hint := HintFor(g)
	assert.True(t, hint.Contradicts(20))
	assert.False(t, hint.Contradicts(25))
	assert.False(t, hint.Contradicts(99))

	// 矛盾的猜测被确认后正常进入状态机
	outcome, err := g.SubmitGuess(20)
	require.NoError(t, err)
	assert.Equal(t, OutcomeTooLow, outcome)
	assert.Len(t, g.Attempts, 2)
}

// 新的一局从[0,99]重新开始
func TestHintFor_FreshGame(t *testing.T) {
	g, err := NewGame("player-1")
	require.NoError(t, err)
	assert.Equal(t, RangeHint{Low: 0, High: MaxNumber}, HintFor(g))
}
