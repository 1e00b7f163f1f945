package leaderboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

// LeaderboardEntryResponse 是排行榜中一条记录的API表示
type LeaderboardEntryResponse struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"playerId"`
	GamesWon int    `json:"gamesWon"`
}

// LeaderboardResponse 是排行榜API的完整响应
type LeaderboardResponse struct {
	Loading bool                       `json:"loading"`
	Entries []LeaderboardEntryResponse `json:"entries"`
}

// FormatView 把排名视图快照格式化为API响应。
// 名次从1开始；并列分数的先后顺序由底层查询决定，不做额外承诺。
func FormatView(view View) LeaderboardResponse {
	entries := make([]LeaderboardEntryResponse, 0, len(view.Entries))
	for i, e := range view.Entries {
		entries = append(entries, LeaderboardEntryResponse{
			Rank:     i + 1,
			PlayerID: e.PlayerID,
			GamesWon: e.GamesWon,
		})
	}
	return LeaderboardResponse{Loading: view.Loading, Entries: entries}
}

// GetLeaderboard 返回排行榜的当前快照，并顺带触发一次后台刷新，
// 让下一次请求能看到更新的数据。
func GetLeaderboard(c *gin.Context) {
	client := Module()
	view := client.Snapshot()
	client.RefreshTop()

	c.JSON(http.StatusOK, FormatView(view))
}
