package election

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatus 返回当前选举是否开放
func GetStatus(c *gin.Context) {
	active, err := IsActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取选举状态失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

// StartElection 处理管理员开启选举
func StartElection(c *gin.Context) {
	if err := Start(); err != nil {
		if errors.Is(err, ErrAlreadyActive) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "开启选举失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "选举已开启"})
}

// EndElection 处理管理员结束选举
func EndElection(c *gin.Context) {
	if err := End(); err != nil {
		if errors.Is(err, ErrNotActive) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "结束选举失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "选举已结束"})
}
