package tournament

import (
	"net/http"
	"strings"

	"github.com/SlpAus/anything-tier-backend/internal/contender"
	"github.com/gin-gonic/gin"
)

// CreateTournamentRequestBody 定义了创建锦标赛时请求体的JSON结构
// Items为空时由服务端自动生成一份名单并走图片解析链
type CreateTournamentRequestBody struct {
	Topic string `json:"topic"`
	Items []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		ImageURL string `json:"imageUrl"`
	} `json:"items"`
}

// CreateTournamentHandler 处理 POST /api/tournament
func CreateTournamentHandler(c *gin.Context) {
	var body CreateTournamentRequestBody

	// 1. 绑定并验证请求体
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if strings.TrimSpace(body.Topic) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少主题(topic)"})
		return
	}

	// 2. 使用用户提供的候选者，否则自动生成名单
	var seeds []Seed
	enrich := false
	if len(body.Items) > 0 {
		seeds = make([]Seed, 0, len(body.Items))
		for _, item := range body.Items {
			seeds = append(seeds, Seed{
				ID:       item.ID,
				Name:     item.Name,
				ImageURL: item.ImageURL,
			})
		}
	} else {
		for _, g := range contender.Generate(c.Request.Context(), body.Topic) {
			seeds = append(seeds, Seed{
				ID:             g.ID,
				Name:           g.Name,
				ImageURL:       g.ImageURL,
				ImageSource:    ImageSource(g.Source),
				ImageSourceURL: g.SourceURL,
			})
		}
		// 只有自动生成的名单走图片解析链，用户自带的URL原样保留
		enrich = true
	}

	// 3. 创建（降级不失败：主存储写不进去也返回200，用persisted标记）
	result := CreateTournament(c.Request.Context(), body.Topic, seeds, enrich)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"tournamentId": result.Tournament.ID,
		"tournament":   result.Tournament,
		"persisted":    result.Persisted,
	})
}

// GetTournamentHandler 处理 GET /api/tournament?id=...
func GetTournamentHandler(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少锦标赛ID"})
		return
	}

	t := GetTournament(id)
	if t == nil {
		// "不存在"与"主存储不可用"合并为404，调用方不应假定404代表永久缺失
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到该锦标赛"})
		return
	}

	c.JSON(http.StatusOK, t)
}

// GetLeaderboardHandler 处理 GET /api/tournament/leaderboard?id=...
func GetLeaderboardHandler(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少锦标赛ID"})
		return
	}

	items := GetLeaderboard(id)
	if items == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到该锦标赛"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
