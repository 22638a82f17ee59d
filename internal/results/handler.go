package results

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLiveTally 返回实时计票
func GetLiveTally(c *gin.Context) {
	tallies, err := LiveTally()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取实时计票失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tally": tallies})
}

// AnnounceResults 公布选举结果
func AnnounceResults(c *gin.Context) {
	outcome, err := Announce()
	if err != nil {
		switch {
		case errors.Is(err, ErrElectionStillActive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNoCandidates):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "公布结果失败: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, outcome)
}
