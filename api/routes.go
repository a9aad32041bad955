package api

import (
	"github.com/SlpAus/anything-tier-backend/internal/tournament"
	"github.com/SlpAus/anything-tier-backend/internal/vote"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 锦标赛相关的路由 /api/tournament
		api.POST("/tournament", tournament.CreateTournamentHandler)
		api.GET("/tournament", tournament.GetTournamentHandler)
		api.GET("/tournament/leaderboard", tournament.GetLeaderboardHandler)

		// 对决与投票相关的路由
		api.GET("/matchup", vote.GetMatchup)
		api.POST("/vote", vote.SubmitVote)
	}
}
