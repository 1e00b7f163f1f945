package game

// RangeHint 是依附于会话的咨询性状态：根据历史高/低反馈推断出的
// 目标所在区间[Low, High]。它不属于会话的持久化身份，只用于检测
// "自相矛盾的再猜测"。新的一局从[0,99]重新开始。
type RangeHint struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// HintFor 从一局游戏的猜测历史中重建提示区间。
// 每次非终结猜测后：猜高则收紧上界到value-1，猜低则收紧下界到value+1。
func HintFor(g *Game) RangeHint {
	hint := RangeHint{Low: 0, High: MaxNumber}
	for _, v := range g.Attempts {
		if v > g.Target {
			if v-1 < hint.High {
				hint.High = v - 1
			}
		} else if v < g.Target {
			if v+1 > hint.Low {
				hint.Low = v + 1
			}
		}
	}
	return hint
}

// Contradicts 判断一个新猜测是否落在提示区间之外。
// 矛盾的猜测依然是合法输入：提交层必须先要求玩家确认（软警告），
// 确认后由 SubmitGuess 正常处理。玩家永远是基准，即使出现过
// "不合逻辑"的猜测，游戏也必须保持可猜。
func (h RangeHint) Contradicts(value int) bool {
	return value < h.Low || value > h.High
}
