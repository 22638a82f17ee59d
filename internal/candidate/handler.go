package candidate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CandidateRequestBody 定义了创建/修改候选人请求体的JSON结构
type CandidateRequestBody struct {
	Name      string `json:"name" binding:"required"`
	Manifesto string `json:"manifesto"`
}

// parseID 从路径参数中解析候选人ID
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的候选人ID"})
		return 0, false
	}
	return uint(id), true
}

// GetCandidates 返回所有候选人
func GetCandidates(c *gin.Context) {
	candidates, err := ListCandidates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取候选人列表失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// GetCandidateByID 返回单个候选人
func GetCandidateByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := GetCandidate(id)
	if err != nil {
		if errors.Is(err, ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取候选人失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateCandidateHandler 处理管理员添加候选人
func CreateCandidateHandler(c *gin.Context) {
	var body CandidateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	created, err := CreateCandidate(body.Name, body.Manifesto)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建候选人失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCandidateHandler 处理管理员修改候选人
func UpdateCandidateHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var body CandidateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	if err := UpdateCandidate(id, body.Name, body.Manifesto); err != nil {
		switch {
		case errors.Is(err, ErrCandidateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "更新候选人失败: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "候选人已更新"})
}

// DeleteCandidateHandler 处理管理员移除候选人
func DeleteCandidateHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := DeleteCandidate(id); err != nil {
		if errors.Is(err, ErrCandidateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "移除候选人失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "候选人已移除"})
}
