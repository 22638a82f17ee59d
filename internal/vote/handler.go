package vote

import (
	"errors"
	"net/http"

	"github.com/SlpAus/evoting-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// VoteRequestBody 定义了前端提交投票时，请求体的JSON结构
type VoteRequestBody struct {
	CandidateID uint `json:"candidate_id" binding:"required"`
}

// SubmitVote 处理选民提交的投票
func SubmitVote(c *gin.Context) {
	var body VoteRequestBody

	// 1. 绑定并验证请求体
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	// 2. 从会话中间件注入的上下文中取出选民身份
	username := c.GetString(user.UsernameKey)
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": user.ErrUnauthorized.Error()})
		return
	}

	// 3. 调用投票引擎
	newTally, err := CastVote(username, body.CandidateID)
	if err != nil {
		switch {
		case errors.Is(err, ErrElectionNotActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyVoted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUnknownCandidate):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "处理投票失败: " + err.Error()})
		}
		return
	}

	// 4. 成功返回最新票数
	c.JSON(http.StatusOK, gin.H{"message": "投票成功", "votes": newTally})
}
