package vote

import (
	"errors"
	"net/http"

	"github.com/SlpAus/anything-tier-backend/internal/tournament"
	"github.com/gin-gonic/gin"
)

// VoteRequestBody 定义了前端提交投票时，请求体的JSON结构
type VoteRequestBody struct {
	TournamentID string `json:"tournamentId" binding:"required"`
	WinnerID     string `json:"winnerId" binding:"required"`
	LoserID      string `json:"loserId" binding:"required"`
}

// SubmitVote 处理 POST /api/vote
func SubmitVote(c *gin.Context) {
	var body VoteRequestBody

	// 1. 绑定并验证请求体
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	// 2. 结算对决
	result, err := ProcessVote(body.TournamentID, body.WinnerID, body.LoserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrTournamentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrItemNotInRoster):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "处理投票失败: " + err.Error()})
		}
		return
	}

	// 3. 成功返回
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// GetMatchup 处理 GET /api/matchup?id=...&excludeA=...&excludeB=...
// 为指定锦标赛挑选下一场对决，excludeA/excludeB通常传上一场的两位。
func GetMatchup(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少锦标赛ID"})
		return
	}

	t := tournament.GetTournament(id)
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到该锦标赛"})
		return
	}

	exclude := map[string]bool{}
	if a := c.Query("excludeA"); a != "" {
		exclude[a] = true
	}
	if b := c.Query("excludeB"); b != "" {
		exclude[b] = true
	}

	itemA, itemB, err := SelectPair(t.Items, exclude)
	if err != nil {
		// 名单不足两人：投票停摆但不是服务器错误
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"itemA": itemA,
		"itemB": itemB,
	})
}
