package api

import (
	"github.com/SlpAus/evoting-backend/internal/candidate"
	"github.com/SlpAus/evoting-backend/internal/election"
	"github.com/SlpAus/evoting-backend/internal/results"
	"github.com/SlpAus/evoting-backend/internal/user"
	"github.com/SlpAus/evoting-backend/internal/vote"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 认证相关的路由组 /api/auth
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/admin/login", user.LoginAdmin)
			authRoutes.POST("/voter/login", user.LoginVoter)
			authRoutes.POST("/logout", user.Logout)
		}

		// 选民管理，全部为管理员专用 /api/voters
		voterRoutes := api.Group("/voters", user.RequireAdmin())
		{
			voterRoutes.GET("", user.List)
			voterRoutes.POST("", user.Register)
			voterRoutes.POST("/:username/verify", user.Verify)
			voterRoutes.DELETE("/:username", user.Remove)
		}

		// 候选人相关的路由组 /api/candidates
		candidateRoutes := api.Group("/candidates")
		{
			candidateRoutes.GET("", candidate.GetCandidates)
			candidateRoutes.GET("/:id", candidate.GetCandidateByID)
			candidateRoutes.POST("", user.RequireAdmin(), candidate.CreateCandidateHandler)
			candidateRoutes.PUT("/:id", user.RequireAdmin(), candidate.UpdateCandidateHandler)
			candidateRoutes.DELETE("/:id", user.RequireAdmin(), candidate.DeleteCandidateHandler)
		}

		// 选举窗口控制 /api/election
		electionRoutes := api.Group("/election")
		{
			electionRoutes.GET("/status", election.GetStatus)
			electionRoutes.POST("/start", user.RequireAdmin(), election.StartElection)
			electionRoutes.POST("/end", user.RequireAdmin(), election.EndElection)
		}

		// 投票，选民专用 /api/vote
		api.POST("/vote", user.RequireVoter(), vote.SubmitVote)

		// 计票与结果 /api/results
		resultRoutes := api.Group("/results")
		{
			resultRoutes.GET("/tally", results.GetLiveTally)
			resultRoutes.GET("/announce", results.AnnounceResults)
		}
	}
}
